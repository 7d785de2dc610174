package admin

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// PendingDeletes tracks organization deletions awaiting explicit
// confirmation, keyed by the acting admin. A request expires after the TTL
// and a confirm must name the same organization that was requested.
type PendingDeletes struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[uuid.UUID]pendingDelete
}

type pendingDelete struct {
	orgID       uuid.UUID
	requestedAt time.Time
}

// NewPendingDeletes creates the confirmation tracker.
func NewPendingDeletes(ttl time.Duration) *PendingDeletes {
	return &PendingDeletes{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[uuid.UUID]pendingDelete),
	}
}

// Request records that adminID asked to delete orgID, replacing any earlier
// pending request by the same admin.
func (p *PendingDeletes) Request(adminID, orgID uuid.UUID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending[adminID] = pendingDelete{orgID: orgID, requestedAt: p.now()}
}

// Confirm consumes the pending request when it matches orgID and has not
// expired. Either way the admin's pending state is cleared.
func (p *PendingDeletes) Confirm(adminID, orgID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	pd, ok := p.pending[adminID]
	if !ok {
		return false
	}
	delete(p.pending, adminID)
	if pd.orgID != orgID {
		return false
	}
	return p.now().Sub(pd.requestedAt) <= p.ttl
}

// Cancel discards the admin's pending request, reporting whether one
// existed.
func (p *PendingDeletes) Cancel(adminID uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.pending[adminID]
	delete(p.pending, adminID)
	return ok
}
