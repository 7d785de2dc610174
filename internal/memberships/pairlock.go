package memberships

import (
	"sync"

	"github.com/google/uuid"
)

// pairLocks serializes membership mutations per (user, organization) pair.
// The store's existence check before insert is not atomic on its own; the
// lock closes that window within this process. Entries are reference
// counted and dropped when the last holder releases, so the map stays
// bounded by in-flight mutations rather than every pair ever touched.
type pairLocks struct {
	mu    sync.Mutex
	locks map[string]*pairLock
}

type pairLock struct {
	sync.Mutex
	refs int
}

func newPairLocks() *pairLocks {
	return &pairLocks{locks: make(map[string]*pairLock)}
}

func pairKey(userID, orgID uuid.UUID) string {
	return userID.String() + "|" + orgID.String()
}

// acquire returns the pair's lock, creating it on first use. Every acquire
// must be paired with a release.
func (p *pairLocks) acquire(userID, orgID uuid.UUID) *pairLock {
	key := pairKey(userID, orgID)
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[key]
	if !ok {
		l = &pairLock{}
		p.locks[key] = l
	}
	l.refs++
	return l
}

// release drops one reference, removing the entry when nobody holds it.
func (p *pairLocks) release(userID, orgID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := pairKey(userID, orgID)
	l, ok := p.locks[key]
	if !ok {
		return
	}
	l.refs--
	if l.refs <= 0 {
		delete(p.locks, key)
	}
}
