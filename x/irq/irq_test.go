package irq

import (
	"sync"
	"testing"
)

func TestSectionsSerialise(t *testing.T) {
	var (
		wg sync.WaitGroup
		n  int
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				s := Disable()
				n++
				Restore(s)
			}
		}()
	}
	wg.Wait()
	if n != 8000 {
		t.Fatalf("n = %d, want 8000", n)
	}
}
