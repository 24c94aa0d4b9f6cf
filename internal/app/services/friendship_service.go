package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/repositories"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

// FriendshipService drives the friendship state machine
type FriendshipService interface {
	// PerformAction applies one of add/accept/decline/cancel/remove against
	// the user identified by email.
	PerformAction(ctx context.Context, actorID int64, req *dto.FriendActionRequest) error

	// StatusOf reports the relation between the caller and the given user.
	StatusOf(ctx context.Context, userID int64, otherEmail string) (*dto.FriendshipStatusResponse, error)

	ListFriends(ctx context.Context, userID int64) ([]*dto.UserSummary, error)
	ListPendingRequests(ctx context.Context, userID int64) ([]*dto.UserSummary, error)
}

type friendshipServiceImpl struct {
	friendshipRepo *repositories.FriendshipRepository
	userRepo       *repositories.UserRepository
	logger         zerolog.Logger
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(friendshipRepo *repositories.FriendshipRepository, userRepo *repositories.UserRepository, logger zerolog.Logger) FriendshipService {
	return &friendshipServiceImpl{
		friendshipRepo: friendshipRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// PerformAction loads the current record, lets the state machine decide the
// effect and executes it. Every repository write re-checks its precondition,
// so a transition raced away by a concurrent request fails cleanly instead of
// applying twice.
func (s *friendshipServiceImpl) PerformAction(ctx context.Context, actorID int64, req *dto.FriendActionRequest) error {
	action, err := models.ParseFriendAction(req.Action)
	if err != nil {
		return err
	}

	target, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return err
	}

	current, err := s.friendshipRepo.GetByPair(ctx, actorID, target.ID)
	if err != nil {
		return err
	}

	effect, err := models.ApplyFriendAction(action, current, actorID, target.ID)
	if err != nil {
		return err
	}

	switch effect {
	case models.EffectCreatePending:
		err = s.friendshipRepo.CreatePending(ctx, actorID, target.ID)
	case models.EffectAccept:
		err = s.friendshipRepo.Accept(ctx, current.RequesterID, current.AddresseeID)
	case models.EffectDelete:
		if current.Status == models.FriendshipPending {
			err = s.friendshipRepo.DeletePending(ctx, current.RequesterID, current.AddresseeID)
		} else {
			err = s.friendshipRepo.DeleteAccepted(ctx, current.RequesterID, current.AddresseeID)
		}
	}
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("actorID", actorID).
		Int64("targetID", target.ID).
		Str("action", string(action)).
		Msg("Friendship action applied")
	return nil
}

// StatusOf returns not_friends, pending or accepted, plus the requester's
// email while pending so the client can tell requester and recipient apart.
func (s *friendshipServiceImpl) StatusOf(ctx context.Context, userID int64, otherEmail string) (*dto.FriendshipStatusResponse, error) {
	other, err := s.userRepo.GetUserByEmail(ctx, otherEmail)
	if err != nil {
		return nil, err
	}

	if other.ID == userID {
		return nil, apperrors.ErrSelfFriendship
	}

	current, err := s.friendshipRepo.GetByPair(ctx, userID, other.ID)
	if err != nil {
		return nil, err
	}

	if current == nil {
		return &dto.FriendshipStatusResponse{Status: models.FriendshipNone}, nil
	}

	resp := &dto.FriendshipStatusResponse{Status: string(current.Status)}
	if current.Status == models.FriendshipPending {
		requester, err := s.userRepo.GetUserByID(ctx, current.RequesterID)
		if err != nil {
			// The requester row vanished between the two reads.
			if errors.Is(err, apperrors.ErrUserNotFound) {
				return &dto.FriendshipStatusResponse{Status: models.FriendshipNone}, nil
			}
			return nil, err
		}
		resp.ActionUserEmail = requester.Email
	}
	return resp, nil
}

func (s *friendshipServiceImpl) ListFriends(ctx context.Context, userID int64) ([]*dto.UserSummary, error) {
	users, err := s.friendshipRepo.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserSummaries(users), nil
}

func (s *friendshipServiceImpl) ListPendingRequests(ctx context.Context, userID int64) ([]*dto.UserSummary, error) {
	users, err := s.friendshipRepo.ListPendingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toUserSummaries(users), nil
}

func toUserSummaries(users []*models.User) []*dto.UserSummary {
	out := make([]*dto.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, dto.ToUserSummary(u))
	}
	return out
}
