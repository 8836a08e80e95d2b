// pkg/render/camera.go
package render

// Camera handles smooth target following and world-to-screen conversion.
// World coordinates are y-up with the ground at y=0; screen coordinates are
// y-down pixels.
type Camera struct {
	X, Y float64

	width   float64 // pixels
	height  float64 // pixels
	scale   float64 // pixels per meter
	yOffset float64 // meters the camera looks ahead in Y
}

// NewCamera creates a camera for the given viewport.
func NewCamera(width, height int, scale, yOffset float64) *Camera {
	return &Camera{
		width:   float64(width),
		height:  float64(height),
		scale:   scale,
		yOffset: yOffset,
	}
}

// Follow moves the camera toward the target. Lower smoothness lags more;
// 1.0 snaps immediately.
func (c *Camera) Follow(targetX, targetY, smoothness float64) {
	c.X += (targetX - c.X) * smoothness
	c.Y += (targetY + c.yOffset - c.Y) * smoothness
}

// Reset snaps the camera onto a new target with no smoothing.
func (c *Camera) Reset(targetX, targetY float64) {
	c.X = targetX
	c.Y = targetY + c.yOffset
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(worldX, worldY float64) (float64, float64) {
	screenX := (worldX-c.X)*c.scale + c.width/2
	screenY := c.height - ((worldY-c.Y)*c.scale + c.height/2)
	return screenX, screenY
}

// ScreenToWorld converts screen pixels back to world coordinates.
func (c *Camera) ScreenToWorld(screenX, screenY float64) (float64, float64) {
	worldX := (screenX-c.width/2)/c.scale + c.X
	worldY := ((c.height-screenY)-c.height/2)/c.scale + c.Y
	return worldX, worldY
}
