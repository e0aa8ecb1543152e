// Package gate implements reference-counted lifecycle gating for expensive
// resources.
//
// A component that can be attached to and detached from several parents over
// its lifetime must not tie resource acquisition to individual mount calls:
// moving the component between two parents would tear the resource down and
// rebuild it for nothing. RefGate collapses the mount count into two logical
// states, detached and attached, and fires its callbacks only on the
// transitions between them.
package gate

import "fmt"

// RefGate tracks a net mount count and invokes OnAttach on the 0→positive
// transition and OnDetach on the positive→0 transition. Intermediate
// Inc/Dec pairs that never cross zero fire nothing.
//
// RefGate is goroutine-confined, like the node tree it guards.
type RefGate struct {
	count    int
	onAttach func()
	onDetach func()
}

// New creates a RefGate with the given transition callbacks. Either callback
// may be nil.
func New(onAttach, onDetach func()) *RefGate {
	return &RefGate{onAttach: onAttach, onDetach: onDetach}
}

// Inc records one mount. On the 0→1 transition OnAttach fires after the
// count is updated, so the callback observes Attached() == true.
func (g *RefGate) Inc() {
	g.count++
	if g.count == 1 && g.onAttach != nil {
		g.onAttach()
	}
}

// Dec records one unmount. On the 1→0 transition OnDetach fires after the
// count is updated. Decrementing below zero is a programmer error.
func (g *RefGate) Dec() {
	if g.count == 0 {
		panic("gate: Dec below zero")
	}
	g.count--
	if g.count == 0 && g.onDetach != nil {
		g.onDetach()
	}
}

// Attached reports whether the gate is in the attached state.
func (g *RefGate) Attached() bool {
	return g.count > 0
}

// Count returns the current net mount count.
func (g *RefGate) Count() int {
	return g.count
}

// String returns the gate state for debugging.
func (g *RefGate) String() string {
	if g.count == 0 {
		return "detached"
	}
	return fmt.Sprintf("attached[%d]", g.count)
}
