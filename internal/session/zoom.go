// Package session holds per-session UI state: preview zoom and form section navigation.
package session

import "sync"

// Zoom limits, in percent.
const (
	MinZoom     = 50
	MaxZoom     = 150
	DefaultZoom = 100
	ZoomStep    = 10
)

// Zoom is the preview scale in percent.
type Zoom struct {
	mu    sync.Mutex
	level int
}

// NewZoom returns a Zoom at DefaultZoom.
func NewZoom() *Zoom {
	return &Zoom{level: DefaultZoom}
}

// In raises the level by one step unless already at MaxZoom.
func (z *Zoom) In() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.level < MaxZoom {
		z.level += ZoomStep
	}
	return z.level
}

// Out lowers the level by one step unless already at MinZoom.
func (z *Zoom) Out() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	if z.level > MinZoom {
		z.level -= ZoomStep
	}
	return z.level
}

// Reset returns to DefaultZoom.
func (z *Zoom) Reset() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.level = DefaultZoom
	return z.level
}

func (z *Zoom) Level() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.level
}
