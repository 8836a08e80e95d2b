// Package websocket exposes the training environment to external trainers
// over a JSON request/response protocol. Each connection owns a private
// environment instance, so concurrent trainers never share state.
package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/gym"
	"github.com/burnlearn/go-lander/pkg/logging"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Trainers connect from anywhere; there is no browser origin to pin.
		return true
	},
}

// Request is one command from a trainer. Action is decoded against the
// session's configured action space: a bare number for discrete, a
// {throttle, rotation} object for continuous.
type Request struct {
	Cmd    string          `json:"cmd"` // "reset", "step", or "spec"
	Seed   *uint64         `json:"seed,omitempty"`
	Action json.RawMessage `json:"action,omitempty"`
}

// Response is the reply to one request.
type Response struct {
	Type          string           `json:"type"`
	Observation   *gym.Observation `json:"observation,omitempty"`
	Result        *gym.StepResult  `json:"result,omitempty"`
	ActionSpace   string           `json:"action_space,omitempty"`
	RewardVariant string           `json:"reward_variant,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// Server accepts trainer connections and runs one session per connection.
type Server struct {
	cfg    *config.GameConfig
	logger *logging.Logger

	active atomic.Int64
	nextID atomic.Uint64
}

// NewServer creates an environment server from a validated configuration.
func NewServer(cfg *config.GameConfig) *Server {
	return &Server{
		cfg:    cfg,
		logger: logging.NewLogger(),
	}
}

// ActiveSessions returns the number of connected trainers.
func (s *Server) ActiveSessions() int {
	return int(s.active.Load())
}

// Handler returns the http mux serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/env", s.ServeWS)
	return mux
}

// ServeWS upgrades one trainer connection and runs its session to
// completion. Connections beyond the session cap are refused before the
// upgrade.
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := logging.WithCorrelationID(r.Context(), "")

	if int(s.active.Load()) >= s.cfg.Server.MaxSessions {
		s.logger.Warn(ctx, "session limit reached, refusing connection",
			"max_sessions", s.cfg.Server.MaxSessions)
		http.Error(w, "session limit reached", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(ctx, "websocket upgrade failed", err)
		return
	}

	env, err := gym.NewEnv(s.cfg)
	if err != nil {
		s.logger.Error(ctx, "environment creation failed", err)
		conn.Close()
		return
	}

	sess := &session{
		id:     s.nextID.Add(1),
		server: s,
		conn:   conn,
		env:    env,
		ctx:    ctx,
	}

	s.active.Add(1)
	s.logger.Info(ctx, "trainer connected",
		"session_id", sess.id,
		"action_space", env.ActionSpace(),
		"reward_variant", env.RewardVariant(),
		"active_sessions", s.ActiveSessions(),
	)

	go sess.run()
}

// session is one connected trainer with its private environment. Requests
// are handled strictly in order, so the environment never needs a lock; the
// write mutex only serializes responses against keepalive pings.
type session struct {
	id     uint64
	server *Server
	conn   *websocket.Conn
	env    *gym.Env
	ctx    context.Context

	writeMu sync.Mutex
}

func (c *session) run() {
	defer func() {
		c.conn.Close()
		c.server.active.Add(-1)
		c.server.logger.Info(c.ctx, "trainer disconnected",
			"session_id", c.id,
			"active_sessions", c.server.ActiveSessions(),
		)
	}()

	done := make(chan struct{})
	defer close(done)
	go c.pingLoop(done)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var req Request
		if err := c.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.server.logger.Warn(c.ctx, "session read failed",
					"session_id", c.id, "error", err.Error())
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(pongWait))

		if err := c.write(c.handle(req)); err != nil {
			return
		}
	}
}

func (c *session) pingLoop(done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.writeMu.Lock()
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := c.conn.WriteMessage(websocket.PingMessage, nil)
			c.writeMu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func (c *session) write(resp Response) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(resp)
}

// handle executes one command. Protocol errors produce an error response on
// the open connection rather than a disconnect, so a trainer can recover
// from a malformed action.
func (c *session) handle(req Request) Response {
	switch req.Cmd {
	case "reset":
		var obs gym.Observation
		if req.Seed != nil {
			obs = c.env.ResetWithSeed(*req.Seed)
		} else {
			obs = c.env.Reset()
		}
		return Response{Type: "reset", Observation: &obs}

	case "step":
		action, err := c.decodeAction(req.Action)
		if err != nil {
			return errorResponse(err)
		}
		result, err := c.env.Step(action)
		if err != nil {
			return errorResponse(err)
		}
		return Response{Type: "step", Result: &result}

	case "spec":
		return Response{
			Type:          "spec",
			ActionSpace:   c.env.ActionSpace(),
			RewardVariant: c.env.RewardVariant(),
		}

	default:
		return errorResponse(fmt.Errorf("unknown command %q", req.Cmd))
	}
}

// decodeAction parses the wire action for this session's action space.
func (c *session) decodeAction(raw json.RawMessage) (any, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("step requires an action")
	}

	switch c.env.ActionSpace() {
	case "discrete":
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, fmt.Errorf("discrete action must be an integer: %w", err)
		}
		return gym.DiscreteAction(n), nil
	case "continuous":
		var a gym.ContinuousAction
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("continuous action must be an object: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown action space %q", c.env.ActionSpace())
	}
}

func errorResponse(err error) Response {
	return Response{Type: "error", Error: err.Error()}
}
