package tui

import (
	"sync"

	"github.com/vango-dev/routeshell/pkg/render"
)

// Surface is the render.Surface the terminal model draws from. The renderer
// presents into it during Update and the model reads the result back.
type Surface struct {
	mu     sync.Mutex
	width  int
	height int
	frame  render.Frame
}

// NewSurface returns a surface reporting the given size until the terminal
// reports its own.
func NewSurface(width, height int) *Surface {
	return &Surface{width: width, height: height}
}

// Present implements render.Surface.
func (s *Surface) Present(f render.Frame) {
	s.mu.Lock()
	s.frame = f
	s.mu.Unlock()
}

// Size implements render.Surface. It is the size of the body area.
func (s *Surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Frame returns the last presented frame.
func (s *Surface) Frame() render.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

func (s *Surface) resize(width, height int) {
	s.mu.Lock()
	s.width, s.height = width, height
	s.mu.Unlock()
}
