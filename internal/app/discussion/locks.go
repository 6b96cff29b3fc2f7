package discussion

import (
	"sync"

	"github.com/polyarguminds/polyargu/internal/domain"
)

// sessionLocks hands out one mutex per session id so that mutating operations
// on the same session are serialized while independent sessions proceed in
// parallel.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[domain.SessionID]*sync.Mutex
}

func newSessionLocks() *sessionLocks {
	return &sessionLocks{locks: make(map[domain.SessionID]*sync.Mutex)}
}

func (sl *sessionLocks) get(id domain.SessionID) *sync.Mutex {
	sl.mu.Lock()
	defer sl.mu.Unlock()

	m, ok := sl.locks[id]
	if !ok {
		m = &sync.Mutex{}
		sl.locks[id] = m
	}
	return m
}

// forget drops the lock entry once a session is deleted.
func (sl *sessionLocks) forget(id domain.SessionID) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	delete(sl.locks, id)
}
