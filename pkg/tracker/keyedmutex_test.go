package tracker

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerialisesSameKey(t *testing.T) {
	var mutex keyedMutex

	counter := 0
	var wg sync.WaitGroup

	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := mutex.Lock("NB-1234")
			defer unlock()

			counter += 1
		}()
	}

	wg.Wait()

	assert.Equal(t, 200, counter)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	var mutex keyedMutex

	unlockFirst := mutex.Lock("NB-1234")

	// A different key must not block while the first is held
	done := make(chan struct{})
	go func() {
		unlock := mutex.Lock("NC-5678")
		unlock()
		close(done)
	}()

	<-done
	unlockFirst()
}

func TestKeyedMutexRelock(t *testing.T) {
	var mutex keyedMutex

	unlock := mutex.Lock("NB-1234")
	unlock()

	unlock = mutex.Lock("NB-1234")
	unlock()
}
