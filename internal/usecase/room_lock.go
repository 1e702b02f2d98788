package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// roomLocker serializes capacity checks and reservation writes per room type.
// Two concurrent creations against the last remaining unit must not both pass
// the availability check; a plain read-then-write across two calls would let
// them. Locks are never removed: the set of room types is small and stable.
type roomLocker struct {
	locks sync.Map // uuid.UUID -> *sync.Mutex
}

func newRoomLocker() *roomLocker {
	return &roomLocker{}
}

// Lock acquires the mutex for the given room type and returns the unlock func
func (l *roomLocker) Lock(roomTypeID uuid.UUID) func() {
	val, _ := l.locks.LoadOrStore(roomTypeID, &sync.Mutex{})
	mu := val.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
