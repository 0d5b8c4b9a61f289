package service

import (
	"strings"
	"sync"
)

// AccountLocks serializes mutating operations per account email, so two
// concurrent toggles cannot both read the same role set and each decide a
// revoke is safe.
type AccountLocks struct {
	mu    sync.Mutex
	locks map[string]*accountLock
}

type accountLock struct {
	mu   sync.Mutex
	refs int
}

// NewAccountLocks creates an empty lock table.
func NewAccountLocks() *AccountLocks {
	return &AccountLocks{locks: make(map[string]*accountLock)}
}

// Lock acquires the per-email mutex and returns its unlock function.
func (a *AccountLocks) Lock(email string) func() {
	key := strings.ToLower(email)

	a.mu.Lock()
	lock, ok := a.locks[key]
	if !ok {
		lock = &accountLock{}
		a.locks[key] = lock
	}
	lock.refs++
	a.mu.Unlock()

	lock.mu.Lock()
	return func() {
		lock.mu.Unlock()
		a.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(a.locks, key)
		}
		a.mu.Unlock()
	}
}
