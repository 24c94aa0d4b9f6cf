package models

import (
	"errors"
	"testing"

	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

func pendingBetween(requester, addressee int64) *Friendship {
	return &Friendship{ID: 1, RequesterID: requester, AddresseeID: addressee, Status: FriendshipPending}
}

func acceptedBetween(requester, addressee int64) *Friendship {
	return &Friendship{ID: 1, RequesterID: requester, AddresseeID: addressee, Status: FriendshipAccepted}
}

func TestApplyFriendActionAdd(t *testing.T) {
	effect, err := ApplyFriendAction(FriendActionAdd, nil, 1, 2)
	if err != nil {
		t.Fatalf("add on empty state: %v", err)
	}
	if effect != EffectCreatePending {
		t.Fatalf("expected EffectCreatePending, got %v", effect)
	}

	if _, err := ApplyFriendAction(FriendActionAdd, pendingBetween(1, 2), 1, 2); !errors.Is(err, apperrors.ErrFriendshipExists) {
		t.Fatalf("add over pending: expected ErrFriendshipExists, got %v", err)
	}
	if _, err := ApplyFriendAction(FriendActionAdd, acceptedBetween(1, 2), 1, 2); !errors.Is(err, apperrors.ErrFriendshipExists) {
		t.Fatalf("add over accepted: expected ErrFriendshipExists, got %v", err)
	}

	// Add against an incoming request must not auto-accept.
	if _, err := ApplyFriendAction(FriendActionAdd, pendingBetween(2, 1), 1, 2); !errors.Is(err, apperrors.ErrFriendshipExists) {
		t.Fatalf("add over reverse pending: expected ErrFriendshipExists, got %v", err)
	}
}

func TestApplyFriendActionSelf(t *testing.T) {
	for _, action := range []FriendAction{FriendActionAdd, FriendActionAccept, FriendActionRemove} {
		if _, err := ApplyFriendAction(action, nil, 7, 7); !errors.Is(err, apperrors.ErrSelfFriendship) {
			t.Fatalf("%s on self: expected ErrSelfFriendship, got %v", action, err)
		}
	}
}

func TestApplyFriendActionAccept(t *testing.T) {
	// Only the addressee can accept.
	effect, err := ApplyFriendAction(FriendActionAccept, pendingBetween(1, 2), 2, 1)
	if err != nil {
		t.Fatalf("accept by addressee: %v", err)
	}
	if effect != EffectAccept {
		t.Fatalf("expected EffectAccept, got %v", effect)
	}

	if _, err := ApplyFriendAction(FriendActionAccept, pendingBetween(1, 2), 1, 2); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("accept by requester: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := ApplyFriendAction(FriendActionAccept, nil, 2, 1); !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		t.Fatalf("accept with no record: expected ErrFriendshipNotFound, got %v", err)
	}
	if _, err := ApplyFriendAction(FriendActionAccept, acceptedBetween(1, 2), 2, 1); !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		t.Fatalf("accept on accepted: expected ErrFriendshipNotFound, got %v", err)
	}
}

func TestApplyFriendActionDecline(t *testing.T) {
	effect, err := ApplyFriendAction(FriendActionDecline, pendingBetween(1, 2), 2, 1)
	if err != nil {
		t.Fatalf("decline by addressee: %v", err)
	}
	if effect != EffectDelete {
		t.Fatalf("expected EffectDelete, got %v", effect)
	}

	if _, err := ApplyFriendAction(FriendActionDecline, pendingBetween(1, 2), 1, 2); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("decline by requester: expected ErrPermissionDenied, got %v", err)
	}
}

func TestApplyFriendActionCancel(t *testing.T) {
	effect, err := ApplyFriendAction(FriendActionCancel, pendingBetween(1, 2), 1, 2)
	if err != nil {
		t.Fatalf("cancel by requester: %v", err)
	}
	if effect != EffectDelete {
		t.Fatalf("expected EffectDelete, got %v", effect)
	}

	if _, err := ApplyFriendAction(FriendActionCancel, pendingBetween(1, 2), 2, 1); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("cancel by addressee: expected ErrPermissionDenied, got %v", err)
	}
	if _, err := ApplyFriendAction(FriendActionCancel, acceptedBetween(1, 2), 1, 2); !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		t.Fatalf("cancel on accepted: expected ErrFriendshipNotFound, got %v", err)
	}
}

func TestApplyFriendActionRemove(t *testing.T) {
	// Either party can remove an accepted friendship.
	for _, actor := range []int64{1, 2} {
		effect, err := ApplyFriendAction(FriendActionRemove, acceptedBetween(1, 2), actor, 3-actor)
		if err != nil {
			t.Fatalf("remove by %d: %v", actor, err)
		}
		if effect != EffectDelete {
			t.Fatalf("expected EffectDelete, got %v", effect)
		}
	}

	if _, err := ApplyFriendAction(FriendActionRemove, pendingBetween(1, 2), 1, 2); !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		t.Fatalf("remove on pending: expected ErrFriendshipNotFound, got %v", err)
	}
	if _, err := ApplyFriendAction(FriendActionRemove, nil, 1, 2); !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		t.Fatalf("remove with no record: expected ErrFriendshipNotFound, got %v", err)
	}
}

func TestParseFriendAction(t *testing.T) {
	for _, valid := range []string{"add", "accept", "decline", "cancel", "remove"} {
		if _, err := ParseFriendAction(valid); err != nil {
			t.Fatalf("ParseFriendAction(%q): %v", valid, err)
		}
	}
	if _, err := ParseFriendAction("befriend"); err == nil {
		t.Fatal("expected error for unknown action")
	}
}
