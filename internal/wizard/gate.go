package wizard

// Gate admits at most one holder at a time. Acquisition never blocks.
type Gate struct {
	slot chan struct{}
}

// NewGate returns an open gate.
func NewGate() *Gate {
	return &Gate{slot: make(chan struct{}, 1)}
}

// TryAcquire takes the gate if it is free and reports whether it did.
func (g *Gate) TryAcquire() bool {
	select {
	case g.slot <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release frees the gate. Releasing a free gate is a no-op.
func (g *Gate) Release() {
	select {
	case <-g.slot:
	default:
	}
}

// Busy reports whether the gate is currently held.
func (g *Gate) Busy() bool {
	return len(g.slot) == cap(g.slot)
}
