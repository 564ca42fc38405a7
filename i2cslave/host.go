package i2cslave

// HostWrite replays a complete host write transaction (index followed by
// data) against e. Used by simulators and tests in place of a bus.
func (e *Engine) HostWrite(index byte, data ...byte) {
	e.AddressMatch(Write)
	e.ByteReceived(index)
	for _, b := range data {
		e.ByteReceived(b)
	}
	e.Stop()
}

// HostRead replays a register read: an index write followed, after a
// repeated start, by n byte reads. Only the read phase is counted.
func (e *Engine) HostRead(index byte, n int) []byte {
	e.AddressMatch(Write)
	e.ByteReceived(index)
	e.AddressMatch(Read)
	out := make([]byte, n)
	for i := range out {
		out[i] = e.ByteRequested()
	}
	e.Stop()
	return out
}
