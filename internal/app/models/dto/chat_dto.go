package dto

import "github.com/cybersleuth25/unisphere/internal/app/models"

// StartConversationRequest opens (or reuses) the conversation with a friend.
type StartConversationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// StartConversationResponse carries the conversation to select client-side.
type StartConversationResponse struct {
	ConversationID int64 `json:"conversation_id"`
}

// ConversationSummary is one row of the conversation list panel, ordered by
// most recent activity.
type ConversationSummary struct {
	ConversationID int64        `json:"conversation_id"`
	OtherUser      *UserSummary `json:"other_user"`
	LastMessage    string       `json:"last_message,omitempty"`
	UnreadCount    int          `json:"unread_count"`
}

// MessageResponse is one chat bubble.
type MessageResponse struct {
	ID          int64  `json:"id"`
	SenderEmail string `json:"sender_email"`
	Body        string `json:"message"`
	SentAt      string `json:"sentAt"`
	IsRead      bool   `json:"isRead"`
}

// ToMessageResponse maps a message model to its wire form.
func ToMessageResponse(m *models.Message) MessageResponse {
	return MessageResponse{
		ID:          m.ID,
		SenderEmail: m.SenderEmail,
		Body:        m.Body,
		SentAt:      m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		IsRead:      m.IsRead,
	}
}

// SendMessageRequest appends a message to a conversation.
type SendMessageRequest struct {
	Body string `json:"message" binding:"required"`
}
