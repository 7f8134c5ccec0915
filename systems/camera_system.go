package systems

import (
	"ebiten-dungen/generation"
)

// Zoom limits in pixels per grid unit
const (
	MinZoom = 0.5
	MaxZoom = 64.0
)

// Camera maps world coordinates (y up) to screen pixels (y down)
type Camera struct {
	X, Y    float64 // World point shown at the center of the screen
	Zoom    float64 // Pixels per grid unit
	screenW int
	screenH int
}

// NewCamera creates a camera centred on the origin
func NewCamera(screenW, screenH int, zoom float64) *Camera {
	return &Camera{
		Zoom:    clampZoom(zoom),
		screenW: screenW,
		screenH: screenH,
	}
}

// SetScreenSize updates the viewport size in pixels
func (c *Camera) SetScreenSize(w, h int) {
	c.screenW, c.screenH = w, h
}

// Fit centres the camera on bounds and picks the largest zoom showing all of it plus margin units
func (c *Camera) Fit(bounds generation.Rect, margin int) {
	center := bounds.Center()
	c.X, c.Y = center.X, center.Y

	w := float64(bounds.Width + 2*margin)
	h := float64(bounds.Height + 2*margin)
	if w <= 0 || h <= 0 {
		return
	}
	c.Zoom = clampZoom(min(float64(c.screenW)/w, float64(c.screenH)/h))
}

// Pan moves the camera by a screen-space offset in pixels
func (c *Camera) Pan(dx, dy float64) {
	c.X += dx / c.Zoom
	c.Y -= dy / c.Zoom
}

// ZoomBy multiplies the zoom, keeping the screen center fixed
func (c *Camera) ZoomBy(factor float64) {
	c.Zoom = clampZoom(c.Zoom * factor)
}

// WorldToScreen converts world coordinates to screen coordinates
func (c *Camera) WorldToScreen(worldX, worldY float64) (screenX, screenY float64) {
	screenX = (worldX-c.X)*c.Zoom + float64(c.screenW)/2
	screenY = float64(c.screenH)/2 - (worldY-c.Y)*c.Zoom
	return screenX, screenY
}

// ScreenToWorld converts screen coordinates to world coordinates
func (c *Camera) ScreenToWorld(screenX, screenY float64) (worldX, worldY float64) {
	worldX = (screenX-float64(c.screenW)/2)/c.Zoom + c.X
	worldY = (float64(c.screenH)/2-screenY)/c.Zoom + c.Y
	return worldX, worldY
}

// IsVisible checks if any part of r is on screen
func (c *Camera) IsVisible(r generation.Rect) bool {
	left, top := c.WorldToScreen(float64(r.X), float64(r.Top()))
	right, bottom := c.WorldToScreen(float64(r.Right()), float64(r.Y))
	return right >= 0 && left <= float64(c.screenW) && bottom >= 0 && top <= float64(c.screenH)
}

func clampZoom(z float64) float64 {
	return max(MinZoom, min(z, MaxZoom))
}
