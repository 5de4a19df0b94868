package panel

// expiry is the single pending status-clear timer. The tick itself is a
// tea.Tick that cannot be stopped, so each arming hands out a fresh token
// and only a tick carrying the current armed token is allowed to fire.
type expiry struct {
	token uint64
	armed bool
}

// arm invalidates any outstanding tick and returns the token for a new one.
func (e *expiry) arm() uint64 {
	e.token++
	e.armed = true
	return e.token
}

// cancel invalidates any outstanding tick.
func (e *expiry) cancel() {
	e.armed = false
}

// fire reports whether a tick with token should clear the status.
// A token fires at most once.
func (e *expiry) fire(token uint64) bool {
	if !e.armed || token != e.token {
		return false
	}
	e.armed = false
	return true
}

// pending reports whether a tick is outstanding.
func (e *expiry) pending() bool {
	return e.armed
}
