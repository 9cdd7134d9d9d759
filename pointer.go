package relight

import (
	"math"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// PointerCell holds the latest cursor position in window pixels, origin at
// the top-left corner. The cursor callback is the only writer.
type PointerCell struct {
	mu   sync.Mutex
	x, y float64
}

// Store rounds the position to whole pixels.
func (p *PointerCell) Store(x, y float64) {
	p.mu.Lock()
	p.x = math.Round(x)
	p.y = math.Round(y)
	p.mu.Unlock()
}

func (p *PointerCell) Load() mgl32.Vec2 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return mgl32.Vec2{float32(p.x), float32(p.y)}
}
