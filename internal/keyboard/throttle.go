package keyboard

// throttle gates work on event time rather than wall time, so replayed
// input produces the same sequence of queries.
type throttle struct {
	interval uint32
	last     uint32
}

// allow reports whether more than interval elapsed since the last allowed
// call and, if so, records now.
func (t *throttle) allow(now uint32) bool {
	if now-t.last > t.interval {
		t.last = now
		return true
	}
	return false
}

func (t *throttle) reset() {
	t.last = 0
}
