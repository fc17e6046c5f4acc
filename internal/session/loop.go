package session

// Loop tracks the tick chain of the active round. Each Start opens a new
// generation; ticks carry the generation they were scheduled under and are
// dropped once it is no longer current, so a stopped loop never mutates
// state again even if a tick was already in flight.
type Loop struct {
	gen     uint64
	running bool
}

// Start opens a new generation and returns it.
func (l *Loop) Start() uint64 {
	l.gen++
	l.running = true
	return l.gen
}

// Stop invalidates every outstanding tick.
func (l *Loop) Stop() {
	if !l.running {
		return
	}
	l.gen++
	l.running = false
}

// Running reports whether a generation is active.
func (l *Loop) Running() bool {
	return l.running
}

// Gen returns the current generation.
func (l *Loop) Gen() uint64 {
	return l.gen
}

// Accept reports whether a tick scheduled under gen may run.
func (l *Loop) Accept(gen uint64) bool {
	return l.running && gen == l.gen
}
