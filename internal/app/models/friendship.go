package models

import (
	"time"

	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

// FriendshipStatus is the persisted state of a friendship record. The absence
// of a record is the implicit "not friends" state.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
)

// Reported to clients when no record exists for a pair.
const FriendshipNone = "not_friends"

// FriendAction enumerates the client-driven transitions.
type FriendAction string

const (
	FriendActionAdd     FriendAction = "add"
	FriendActionAccept  FriendAction = "accept"
	FriendActionDecline FriendAction = "decline"
	FriendActionCancel  FriendAction = "cancel"
	FriendActionRemove  FriendAction = "remove"
)

// ParseFriendAction validates a raw action string.
func ParseFriendAction(s string) (FriendAction, error) {
	switch FriendAction(s) {
	case FriendActionAdd, FriendActionAccept, FriendActionDecline, FriendActionCancel, FriendActionRemove:
		return FriendAction(s), nil
	}
	return "", apperrors.NewValidationError("unknown friend action: " + s)
}

// Friendship defines one row of the 'friendships' table. Exactly one row may
// exist per unordered user pair; RequesterID records which side initiated.
type Friendship struct {
	ID          int64            `json:"id" db:"id"`
	RequesterID int64            `json:"requesterId" db:"requester_id"`
	AddresseeID int64            `json:"addresseeId" db:"addressee_id"`
	Status      FriendshipStatus `json:"status" db:"status"`
	RequestedAt time.Time        `json:"requestedAt" db:"requested_at"`
}

// Involves reports whether the user is one of the two parties.
func (f *Friendship) Involves(userID int64) bool {
	return f.RequesterID == userID || f.AddresseeID == userID
}

// FriendshipEffect is the storage effect a valid transition produces.
type FriendshipEffect int

const (
	EffectCreatePending FriendshipEffect = iota // insert a pending row
	EffectAccept                                // flip status to accepted
	EffectDelete                                // delete the row
)

// ApplyFriendAction is the friendship state machine: given the current record
// (nil when no record exists), the acting user and the target user, it either
// returns the storage effect of the transition or the error the caller must
// surface. It is a total function over (state, action, actor).
func ApplyFriendAction(action FriendAction, current *Friendship, actorID, targetID int64) (FriendshipEffect, error) {
	if actorID == targetID {
		return 0, apperrors.ErrSelfFriendship
	}

	switch action {
	case FriendActionAdd:
		if current != nil {
			return 0, apperrors.ErrFriendshipExists
		}
		return EffectCreatePending, nil

	case FriendActionAccept:
		if current == nil || current.Status != FriendshipPending {
			return 0, apperrors.ErrFriendshipNotFound
		}
		if current.AddresseeID != actorID {
			return 0, apperrors.NewForbiddenError("only the request recipient can accept")
		}
		return EffectAccept, nil

	case FriendActionDecline:
		if current == nil || current.Status != FriendshipPending {
			return 0, apperrors.ErrFriendshipNotFound
		}
		if current.AddresseeID != actorID {
			return 0, apperrors.NewForbiddenError("only the request recipient can decline")
		}
		return EffectDelete, nil

	case FriendActionCancel:
		if current == nil || current.Status != FriendshipPending {
			return 0, apperrors.ErrFriendshipNotFound
		}
		if current.RequesterID != actorID {
			return 0, apperrors.NewForbiddenError("only the requester can cancel")
		}
		return EffectDelete, nil

	case FriendActionRemove:
		if current == nil || current.Status != FriendshipAccepted {
			return 0, apperrors.ErrFriendshipNotFound
		}
		if !current.Involves(actorID) {
			return 0, apperrors.NewForbiddenError("not a party to this friendship")
		}
		return EffectDelete, nil
	}

	return 0, apperrors.NewValidationError("unknown friend action: " + string(action))
}
