package admin

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestConfirmRequiresRequest(t *testing.T) {
	p := NewPendingDeletes(time.Minute)
	if p.Confirm(uuid.New(), uuid.New()) {
		t.Error("confirm without a request must fail")
	}
}

func TestRequestThenConfirm(t *testing.T) {
	p := NewPendingDeletes(time.Minute)
	adminID, orgID := uuid.New(), uuid.New()

	p.Request(adminID, orgID)
	if !p.Confirm(adminID, orgID) {
		t.Error("confirm matching the request must succeed")
	}
	if p.Confirm(adminID, orgID) {
		t.Error("a confirmation is consumed; the second must fail")
	}
}

func TestConfirmWrongOrganization(t *testing.T) {
	p := NewPendingDeletes(time.Minute)
	adminID := uuid.New()

	p.Request(adminID, uuid.New())
	if p.Confirm(adminID, uuid.New()) {
		t.Error("confirm for a different organization must fail")
	}
	// The mismatch also clears the pending state.
	if p.Cancel(adminID) {
		t.Error("pending state must be cleared after a mismatched confirm")
	}
}

func TestConfirmExpires(t *testing.T) {
	p := NewPendingDeletes(time.Minute)
	adminID, orgID := uuid.New(), uuid.New()

	base := time.Now()
	p.now = func() time.Time { return base }
	p.Request(adminID, orgID)

	p.now = func() time.Time { return base.Add(2 * time.Minute) }
	if p.Confirm(adminID, orgID) {
		t.Error("confirm after the TTL must fail")
	}
}

func TestNewRequestReplacesOld(t *testing.T) {
	p := NewPendingDeletes(time.Minute)
	adminID := uuid.New()
	first, second := uuid.New(), uuid.New()

	p.Request(adminID, first)
	p.Request(adminID, second)
	if p.Confirm(adminID, first) {
		t.Error("a newer request must replace the older one")
	}
	p.Request(adminID, second)
	if !p.Confirm(adminID, second) {
		t.Error("confirm for the latest request must succeed")
	}
}

func TestCancel(t *testing.T) {
	p := NewPendingDeletes(time.Minute)
	adminID, orgID := uuid.New(), uuid.New()

	if p.Cancel(adminID) {
		t.Error("cancel without a request must report false")
	}
	p.Request(adminID, orgID)
	if !p.Cancel(adminID) {
		t.Error("cancel with a pending request must report true")
	}
	if p.Confirm(adminID, orgID) {
		t.Error("confirm after cancel must fail")
	}
}
