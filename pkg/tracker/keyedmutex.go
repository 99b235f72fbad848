package tracker

import "sync"

// keyedMutex serialises work per key. Updates for a bus are a read-evaluate-
// write sequence over the journey's notification list, so two concurrent
// updates for the same bus must not interleave. Mutexes are never evicted;
// the keyspace is bounded by the fleet size.
type keyedMutex struct {
	locks sync.Map
}

func (m *keyedMutex) Lock(key string) func() {
	value, _ := m.locks.LoadOrStore(key, &sync.Mutex{})
	mutex := value.(*sync.Mutex)
	mutex.Lock()

	return mutex.Unlock
}
