package progress

import (
	"sync"
	"testing"
)

func TestCounter_ConcurrentAdds(t *testing.T) {
	c := New(1000, 100, false)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	if c.Done() != 1000 {
		t.Errorf("expected 1000 processed, got %d", c.Done())
	}
}

func TestCounter_ZeroInterval(t *testing.T) {
	c := New(10, 0, false)
	c.Add(5)
	if c.Done() != 5 {
		t.Errorf("expected 5, got %d", c.Done())
	}
}
