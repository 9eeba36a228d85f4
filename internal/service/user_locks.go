package service

import "sync"

// UserLocks serializes cart mutation and checkout for the same user, so a
// checkout always bills and clears the exact cart snapshot it read. Locks
// for different users never contend.
type UserLocks struct {
	locks sync.Map // int64 -> *sync.Mutex
}

func NewUserLocks() *UserLocks {
	return &UserLocks{}
}

// Lock acquires the user's mutex and returns the matching unlock func.
func (l *UserLocks) Lock(userID int64) func() {
	v, _ := l.locks.LoadOrStore(userID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
