package lock

import (
	"sync"
	"testing"
)

func TestKeyed_serializesSameKey(t *testing.T) {
	k := NewKeyed()

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := k.Acquire("car:1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyed_differentKeysDoNotBlock(t *testing.T) {
	k := NewKeyed()

	releaseA := k.Acquire("car:a")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release := k.Acquire("car:b")
		release()
		close(done)
	}()

	<-done
}

func TestKeyed_reapsReleasedEntries(t *testing.T) {
	k := NewKeyed()

	release := k.Acquire("payment:1")
	release()

	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.entries) != 0 {
		t.Errorf("entries map has %d entries after release, want 0", len(k.entries))
	}
}

func TestKeyed_reacquireAfterRelease(t *testing.T) {
	k := NewKeyed()

	release := k.Acquire("reservation:1")
	release()

	release = k.Acquire("reservation:1")
	release()
}
