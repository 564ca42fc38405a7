package shmring

import "testing"

func TestOrderAcrossWrapWithPartialProgress(t *testing.T) {
	r := New(64)

	const N = 2000
	src := make([]byte, N)
	for i := range src {
		src[i] = byte(i)
	}

	// Producer offers 7 bytes at a time, consumer takes 17: frequent wraps
	// and partial first spans on both sides.
	p := src
	dst := make([]byte, 0, N)
	for len(dst) < N {
		if len(p) > 0 {
			step := 7
			if step > len(p) {
				step = len(p)
			}
			p = p[r.WriteFrom(p[:step]):]
		}
		var tmp [17]byte
		n := r.ReadInto(tmp[:])
		dst = append(dst, tmp[:n]...)
	}
	for i := 0; i < N; i++ {
		if dst[i] != src[i] {
			t.Fatalf("mismatch at %d: got=%d want=%d", i, dst[i], src[i])
		}
	}
}

func TestWriteFromStopsWhenFull(t *testing.T) {
	r := New(8)
	if n := r.WriteFrom([]byte("0123456789")); n != 8 {
		t.Fatalf("write into empty ring = %d, want 8", n)
	}
	if r.Space() != 0 || r.Available() != 8 {
		t.Fatalf("space=%d avail=%d", r.Space(), r.Available())
	}
	if n := r.WriteFrom([]byte("x")); n != 0 {
		t.Fatalf("write into full ring = %d", n)
	}
	buf := make([]byte, 3)
	r.ReadInto(buf)
	if string(buf) != "012" || r.Space() != 3 {
		t.Fatalf("read %q space %d", buf, r.Space())
	}
}

func TestWriteAllKeepsRecordsWhole(t *testing.T) {
	r := New(16)
	if !r.WriteAll([]byte("hello world\n")) {
		t.Fatal("first record refused")
	}
	if r.WriteAll([]byte("second\n")) {
		t.Fatal("record larger than the free space accepted")
	}
	if r.Dropped() != 7 {
		t.Fatalf("dropped = %d", r.Dropped())
	}
	out := make([]byte, 32)
	n := r.ReadInto(out)
	if string(out[:n]) != "hello world\n" {
		t.Fatalf("read %q", out[:n])
	}
	if !r.WriteAll([]byte("second\n")) {
		t.Fatal("record refused after drain")
	}
}

func TestBadSizePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for non power-of-two size")
		}
	}()
	New(12)
}
