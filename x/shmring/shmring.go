// Package shmring is a lock-free single-producer, single-consumer byte ring.
// The firmware logs into one from the main loop and drains it to the UART a
// chunk at a time, so a slow serial line never stalls the control loop.
package shmring

import "sync/atomic"

// Ring indices grow monotonically; only their difference matters.
type Ring struct {
	buf  []byte
	mask uint32
	rd   atomic.Uint32 // consumer index
	wr   atomic.Uint32 // producer index

	dropped atomic.Uint32
}

// New allocates a ring of size bytes; size must be a power of two >= 2.
func New(size int) *Ring {
	if size < 2 || (size&(size-1)) != 0 {
		panic("shmring: size must be power of two >= 2")
	}
	return &Ring{buf: make([]byte, size), mask: uint32(size - 1)}
}

func (r *Ring) size() uint32 { return uint32(len(r.buf)) }

// Space is the number of bytes the producer can write.
func (r *Ring) Space() int {
	return int(r.size() - (r.wr.Load() - r.rd.Load()))
}

// Available is the number of bytes the consumer can read.
func (r *Ring) Available() int {
	return int(r.wr.Load() - r.rd.Load())
}

// Dropped counts bytes refused by WriteAll since creation.
func (r *Ring) Dropped() uint32 { return r.dropped.Load() }

// WriteFrom copies as much of src as fits and returns the count.
func (r *Ring) WriteFrom(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	wr := r.wr.Load()
	space := int(r.size() - (wr - r.rd.Load()))
	n := len(src)
	if n > space {
		n = space
	}
	if n == 0 {
		return 0
	}
	at := wr & r.mask
	first := copy(r.buf[at:], src[:n])
	copy(r.buf, src[first:n])
	r.wr.Store(wr + uint32(n)) // publish
	return n
}

// WriteAll writes src only if it fits entirely, so records are never cut
// in half. Refused bytes are counted in Dropped.
func (r *Ring) WriteAll(src []byte) bool {
	if len(src) > r.Space() {
		r.dropped.Add(uint32(len(src)))
		return false
	}
	r.WriteFrom(src)
	return true
}

// ReadInto moves up to len(dst) bytes out of the ring.
func (r *Ring) ReadInto(dst []byte) int {
	if len(dst) == 0 {
		return 0
	}
	rd := r.rd.Load()
	n := int(r.wr.Load() - rd)
	if n > len(dst) {
		n = len(dst)
	}
	if n == 0 {
		return 0
	}
	at := rd & r.mask
	first := copy(dst[:n], r.buf[at:])
	copy(dst[first:n], r.buf)
	r.rd.Store(rd + uint32(n)) // release space
	return n
}
