package encounter

import "sync"

// combatLocks hands out one mutex per combat ID. Entries are dropped once
// no caller holds or waits on them.
type combatLocks struct {
	mu    sync.Mutex
	locks map[string]*combatLock
}

type combatLock struct {
	mu   sync.Mutex
	refs int
}

func newCombatLocks() *combatLocks {
	return &combatLocks{locks: make(map[string]*combatLock)}
}

// lock blocks until the combat is free and returns its unlock func
func (l *combatLocks) lock(id string) func() {
	l.mu.Lock()
	entry, ok := l.locks[id]
	if !ok {
		entry = &combatLock{}
		l.locks[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
	return func() {
		entry.mu.Unlock()

		l.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}

// gameLockKey keeps per-game entries apart from combat IDs
func gameLockKey(gameID string) string {
	return "game:" + gameID
}

func (l *combatLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
