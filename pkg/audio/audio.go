// Package audio maps physics events to sound playback. It is a best-effort
// collaborator: any failure disables audio without ever touching the
// simulation tick. Start and stop are idempotent, so repeated "already
// stopped" events are harmless.
package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/hajimehoshi/oto"
	"github.com/sony/gobreaker"

	"github.com/burnlearn/go-lander/pkg/config"
	"github.com/burnlearn/go-lander/pkg/event"
	"github.com/burnlearn/go-lander/pkg/logging"
)

const (
	channelCount    = 2
	bytesPerSample  = 2
	playerBufferLen = 8192
	writeChunkLen   = 4096
)

// SoundManager owns the audio device and the looped/one-shot channels for
// the rocket's sounds.
type SoundManager struct {
	mu      sync.Mutex
	enabled bool
	cfg     config.AudioConfig
	logger  *logging.Logger
	breaker *gobreaker.CircuitBreaker

	otoCtx     *oto.Context
	sampleRate int
	sounds     map[string][]byte // decoded 16-bit stereo PCM

	engine *loopChannel
	rcs    *loopChannel
}

// NewSoundManager loads the configured sound files and opens the audio
// device. On any failure it returns a disabled manager rather than an error:
// a missing sound card or sound file must never stop the game.
func NewSoundManager(cfg config.AudioConfig) *SoundManager {
	logger := logging.NewLogger()
	ctx := context.Background()

	m := &SoundManager{
		cfg:    cfg,
		logger: logger,
		sounds: make(map[string][]byte),
	}

	m.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "lander-audio",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			if to == gobreaker.StateOpen {
				logger.Warn(ctx, "audio circuit opened, playback suspended", "name", name)
			}
		},
	})

	if !cfg.Enabled {
		return m
	}

	if err := m.initialize(); err != nil {
		logger.Warn(ctx, "audio unavailable, running silent", "error", err.Error())
		return m
	}

	m.enabled = true
	logger.Info(ctx, "audio system initialized", "sample_rate", m.sampleRate)
	return m
}

func (m *SoundManager) initialize() error {
	files := map[string]string{
		"engine":    m.cfg.EngineSound,
		"rcs":       m.cfg.RCSSound,
		"explosion": m.cfg.ExplosionSound,
		"success":   m.cfg.SuccessSound,
	}

	for name, path := range files {
		pcm, rate, err := decodeMP3(path)
		if err != nil {
			return fmt.Errorf("load %s: %w", name, err)
		}
		if m.sampleRate == 0 {
			m.sampleRate = rate
		}
		m.sounds[name] = pcm
	}

	otoCtx, err := oto.NewContext(m.sampleRate, channelCount, bytesPerSample, playerBufferLen)
	if err != nil {
		return fmt.Errorf("open audio device: %w", err)
	}
	m.otoCtx = otoCtx

	m.engine = newLoopChannel(otoCtx, m.sounds["engine"])
	m.rcs = newLoopChannel(otoCtx, m.sounds["rcs"])
	return nil
}

// decodeMP3 reads a whole mp3 file into raw PCM.
func decodeMP3(path string) ([]byte, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec, err := mp3.NewDecoder(f)
	if err != nil {
		return nil, 0, err
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, 0, err
	}
	return pcm, dec.SampleRate(), nil
}

// Attach subscribes the manager to every physics event it reacts to.
func (m *SoundManager) Attach(bus *event.Bus) {
	bus.Subscribe(event.EngineStateChanged, m.HandleEvent)
	bus.Subscribe(event.RCSStateChanged, m.HandleEvent)
	bus.Subscribe(event.LandingSuccess, m.HandleEvent)
	bus.Subscribe(event.LandingCrash, m.HandleEvent)
	bus.Subscribe(event.EpisodeReset, m.HandleEvent)
}

// HandleEvent maps one physics event to start/stop/one-shot sound actions.
func (m *SoundManager) HandleEvent(e event.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}

	switch ev := e.(type) {
	case *event.EngineEvent:
		if ev.Active {
			volume := m.cfg.EngineBaseVolume +
				ev.Throttle*(m.cfg.EngineMaxVolume-m.cfg.EngineBaseVolume)
			m.run(func() error { return m.engine.start(volume) })
		} else {
			m.run(m.engine.stop)
		}
	case *event.RCSEvent:
		if ev.Active {
			m.run(func() error { return m.rcs.start(m.cfg.RCSVolume) })
		} else {
			m.run(m.rcs.stop)
		}
	default:
		switch e.GetType() {
		case event.LandingSuccess:
			m.stopLoops()
			m.run(func() error { return m.playOnce("success", m.cfg.SuccessVolume) })
		case event.LandingCrash:
			m.stopLoops()
			m.run(func() error { return m.playOnce("explosion", m.cfg.ExplosionVolume) })
		case event.EpisodeReset:
			m.stopLoops()
		}
	}
}

// run executes one playback action through the circuit breaker. When the
// circuit opens after repeated failures the manager disables itself.
func (m *SoundManager) run(op func() error) {
	_, err := m.breaker.Execute(func() (interface{}, error) {
		return nil, op()
	})
	if err != nil {
		m.logger.Warn(context.Background(), "playback failed", "error", err.Error())
		if m.breaker.State() == gobreaker.StateOpen {
			m.enabled = false
		}
	}
}

func (m *SoundManager) stopLoops() {
	m.run(m.engine.stop)
	m.run(m.rcs.stop)
}

// playOnce writes a one-shot sound on its own player.
func (m *SoundManager) playOnce(name string, volume float64) error {
	pcm, ok := m.sounds[name]
	if !ok {
		return fmt.Errorf("unknown sound %q", name)
	}
	player := m.otoCtx.NewPlayer()
	go func() {
		defer player.Close()
		player.Write(scalePCM(pcm, volume))
	}()
	return nil
}

// Close stops all playback and releases the audio device.
func (m *SoundManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return
	}
	m.engine.stop()
	m.rcs.stop()
	if m.otoCtx != nil {
		m.otoCtx.Close()
	}
	m.enabled = false
}

// loopChannel loops one PCM clip on a dedicated player until stopped.
type loopChannel struct {
	ctx     *oto.Context
	pcm     []byte
	mu      sync.Mutex
	playing bool
	volume  float64
	quit    chan struct{}
}

func newLoopChannel(ctx *oto.Context, pcm []byte) *loopChannel {
	return &loopChannel{ctx: ctx, pcm: pcm}
}

// start begins looping, or just retunes the volume if already playing.
func (l *loopChannel) start(volume float64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.volume = volume
	if l.playing {
		return nil
	}

	l.playing = true
	l.quit = make(chan struct{})
	go l.loop(l.quit)
	return nil
}

// stop ends the loop. Stopping an idle channel is a no-op.
func (l *loopChannel) stop() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.playing {
		return nil
	}
	close(l.quit)
	l.playing = false
	return nil
}

func (l *loopChannel) loop(quit chan struct{}) {
	player := l.ctx.NewPlayer()
	defer player.Close()

	for {
		for off := 0; off < len(l.pcm); off += writeChunkLen {
			select {
			case <-quit:
				return
			default:
			}

			end := off + writeChunkLen
			if end > len(l.pcm) {
				end = len(l.pcm)
			}
			l.mu.Lock()
			volume := l.volume
			l.mu.Unlock()
			if _, err := player.Write(scalePCM(l.pcm[off:end], volume)); err != nil {
				return
			}
		}
	}
}

// scalePCM applies a volume factor to 16-bit little-endian samples.
func scalePCM(src []byte, volume float64) []byte {
	if volume >= 1 {
		return src
	}
	out := make([]byte, len(src))
	for i := 0; i+1 < len(src); i += 2 {
		sample := int16(binary.LittleEndian.Uint16(src[i:]))
		scaled := int16(float64(sample) * volume)
		binary.LittleEndian.PutUint16(out[i:], uint16(scaled))
	}
	return out
}
