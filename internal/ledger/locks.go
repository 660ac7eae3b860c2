package ledger

import (
	"sort"
	"sync"
)

// accountLocks hands out one mutex per account number. The row store has no
// cross-call transaction, so the exclusive span around each
// read-modify-write is what closes the lost-update window.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

func (a *accountLocks) get(number string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()

	l, ok := a.locks[number]
	if !ok {
		l = &sync.Mutex{}
		a.locks[number] = l
	}
	return l
}

// lock acquires the account's mutex and returns its release func.
func (a *accountLocks) lock(number string) func() {
	l := a.get(number)
	l.Lock()
	return l.Unlock
}

// lockPair acquires both accounts' mutexes in canonical order so two
// opposite transfers can't deadlock.
func (a *accountLocks) lockPair(x, y string) func() {
	ordered := []string{x, y}
	sort.Strings(ordered)

	first := a.get(ordered[0])
	second := a.get(ordered[1])

	first.Lock()
	second.Lock()
	return func() {
		second.Unlock()
		first.Unlock()
	}
}
