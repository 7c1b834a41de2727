package interact

import (
	"sync"

	"github.com/solarlune/signboard"
)

// PointerState holds the last known pointer position in normalized device coordinates (-1 to 1 on both axes, Y up).
// Input may write it from any goroutine; the controller reads it once per tick through Snapshot.
type PointerState struct {
	mu    sync.Mutex
	ndc   signboard.Vector2
	known bool
}

// Set records a new pointer position.
func (p *PointerState) Set(ndc signboard.Vector2) {
	p.mu.Lock()
	p.ndc = ndc
	p.known = true
	p.mu.Unlock()
}

// Clear forgets the pointer position, i.e. when the pointer leaves the surface.
func (p *PointerState) Clear() {
	p.mu.Lock()
	p.known = false
	p.mu.Unlock()
}

// Snapshot returns the pointer position, and false if no position is known.
func (p *PointerState) Snapshot() (signboard.Vector2, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ndc, p.known
}
