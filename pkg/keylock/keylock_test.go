package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializesSameKey(t *testing.T) {
	kl := New()

	const iterations = 1000
	counter := 0

	var wg sync.WaitGroup
	wg.Add(iterations)
	for range iterations {
		go func() {
			defer wg.Done()
			kl.Lock("nik")
			counter++
			kl.Unlock("nik")
		}()
	}
	wg.Wait()

	assert.Equal(t, iterations, counter)
}

func TestIndependentKeys(t *testing.T) {
	kl := New()

	kl.Lock("a")
	defer kl.Unlock("a")

	// A different key must not block.
	done := make(chan struct{})
	go func() {
		kl.Lock("b")
		kl.Unlock("b")
		close(done)
	}()
	<-done
}

func TestUnlockUnknownKeyPanics(t *testing.T) {
	kl := New()

	assert.Panics(t, func() {
		kl.Unlock("never-locked")
	})
}
