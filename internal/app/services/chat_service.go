package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/app/repositories"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
	"github.com/cybersleuth25/unisphere/internal/pkg/helpers"
)

// ChatService provides polling-based direct messaging between friends
type ChatService interface {
	// StartConversation opens (or returns the existing) conversation with a
	// friend, addressed by email.
	StartConversation(ctx context.Context, userID int64, otherEmail string) (*dto.StartConversationResponse, error)

	ListConversations(ctx context.Context, userID int64) ([]dto.ConversationSummary, error)

	// ListMessages returns the full history and marks messages addressed to
	// the caller as read.
	ListMessages(ctx context.Context, conversationID, userID int64) ([]dto.MessageResponse, error)

	SendMessage(ctx context.Context, conversationID, userID int64, body string) (*dto.MessageResponse, error)
}

type chatServiceImpl struct {
	conversationRepo *repositories.ConversationRepository
	messageRepo      *repositories.MessageRepository
	friendshipRepo   *repositories.FriendshipRepository
	userRepo         *repositories.UserRepository
	logger           zerolog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	conversationRepo *repositories.ConversationRepository,
	messageRepo *repositories.MessageRepository,
	friendshipRepo *repositories.FriendshipRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) ChatService {
	return &chatServiceImpl{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		friendshipRepo:   friendshipRepo,
		userRepo:         userRepo,
		logger:           logger,
	}
}

// StartConversation requires an accepted friendship. Two users share at most
// one conversation regardless of who opened it first.
func (s *chatServiceImpl) StartConversation(ctx context.Context, userID int64, otherEmail string) (*dto.StartConversationResponse, error) {
	other, err := s.userRepo.GetUserByEmail(ctx, otherEmail)
	if err != nil {
		return nil, err
	}

	if other.ID == userID {
		return nil, apperrors.NewBadRequestError("cannot start a conversation with yourself")
	}

	friends, err := s.friendshipRepo.AreFriends(ctx, userID, other.ID)
	if err != nil {
		return nil, err
	}
	if !friends {
		return nil, apperrors.ErrNotFriends
	}

	conv, err := s.conversationRepo.GetOrCreate(ctx, userID, other.ID)
	if err != nil {
		return nil, err
	}

	return &dto.StartConversationResponse{ConversationID: conv.ID}, nil
}

// ListConversations returns the caller's conversation panel, most recent
// activity first, with last message preview and unread count.
func (s *chatServiceImpl) ListConversations(ctx context.Context, userID int64) ([]dto.ConversationSummary, error) {
	rows, err := s.conversationRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ConversationSummary, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		out = append(out, dto.ConversationSummary{
			ConversationID: row.Conversation.ID,
			OtherUser:      dto.ToUserSummary(&row.OtherUser),
			LastMessage:    helpers.StringValue(row.LastMessage),
			UnreadCount:    row.UnreadCount,
		})
	}
	return out, nil
}

// ListMessages checks the caller is a participant before returning anything.
// Reading the history marks the other side's messages as read; repeated polls
// are harmless.
func (s *chatServiceImpl) ListMessages(ctx context.Context, conversationID, userID int64) ([]dto.MessageResponse, error) {
	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.ErrNotParticipant
	}

	messages, err := s.messageRepo.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.messageRepo.MarkRead(ctx, conversationID, userID); err != nil {
		s.logger.Warn().Err(err).Int64("conversationID", conversationID).Msg("Failed to mark messages read")
	}

	out := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp := dto.ToMessageResponse(m)
		// Everything addressed to the poller is read now.
		if m.SenderID != userID {
			resp.IsRead = true
		}
		out = append(out, resp)
	}
	return out, nil
}

// SendMessage appends a message. Whitespace-only bodies are rejected.
func (s *chatServiceImpl) SendMessage(ctx context.Context, conversationID, userID int64, body string) (*dto.MessageResponse, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.ErrEmptyMessage
	}

	conv, err := s.conversationRepo.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, apperrors.ErrNotParticipant
	}

	sender, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	message := &models.Message{
		ConversationID: conversationID,
		SenderID:       userID,
		Body:           body,
	}
	if _, err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	message.SenderEmail = sender.Email

	resp := dto.ToMessageResponse(message)
	return &resp, nil
}
