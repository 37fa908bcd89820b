package render

import (
	"sync"

	"github.com/vango-dev/routeshell/pkg/view"
)

// Frame is one complete screen.
type Frame struct {
	// Seq increases with every frame a renderer presents.
	Seq uint64 `json:"seq"`

	Path   string          `json:"path"`
	Title  string          `json:"title,omitempty"`
	Chrome *view.Control   `json:"chrome,omitempty"`
	Body   []*view.Control `json:"body"`
}

// Controls returns the chrome followed by the body.
func (f Frame) Controls() []*view.Control {
	out := make([]*view.Control, 0, len(f.Body)+1)
	if f.Chrome != nil {
		out = append(out, f.Chrome)
	}
	return append(out, f.Body...)
}

// Plain renders the frame with view.Plain.
func (f Frame) Plain() string {
	return view.Plain(f.Controls())
}

// Surface receives presented frames.
type Surface interface {
	Present(f Frame)

	// Size reports the drawable area in cells. Zero means unknown.
	Size() (width, height int)
}

// MemorySurface keeps the latest frame in memory. It is safe for concurrent
// use.
type MemorySurface struct {
	mu     sync.Mutex
	width  int
	height int
	frame  Frame
	subs   map[int]chan Frame
	nextID int
}

// NewMemorySurface returns an empty surface of the given size.
func NewMemorySurface(width, height int) *MemorySurface {
	return &MemorySurface{
		width:  width,
		height: height,
		subs:   make(map[int]chan Frame),
	}
}

// Present stores f and forwards it to every subscriber. A subscriber that
// has not consumed its previous frame loses it in favor of f.
func (s *MemorySurface) Present(f Frame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = f
	for _, ch := range s.subs {
		select {
		case ch <- f:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- f:
		default:
		}
	}
}

// Frame returns the latest frame.
func (s *MemorySurface) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Size implements Surface.
func (s *MemorySurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Resize changes the reported size.
func (s *MemorySurface) Resize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Subscribe returns a channel receiving every frame presented from now on,
// and a function that ends the subscription and closes the channel.
func (s *MemorySurface) Subscribe() (<-chan Frame, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Frame, 1)
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (s *MemorySurface) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
