package models

import (
	"time"
)

// Conversation defines one row of the 'conversations' table. A single row
// exists per unordered friend pair; User1ID < User2ID is enforced in storage.
type Conversation struct {
	ID        int64     `json:"id" db:"id"`
	User1ID   int64     `json:"user1Id" db:"user1_id"`
	User2ID   int64     `json:"user2Id" db:"user2_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// HasParticipant reports whether the user belongs to the conversation.
func (c *Conversation) HasParticipant(userID int64) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the counterpart of the given user.
func (c *Conversation) OtherParticipant(userID int64) int64 {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// NormalizePair orders two user ids so that the smaller one comes first,
// matching the conversations table constraint.
func NormalizePair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// Message defines one row of the 'messages' table. Messages are immutable
// after insert except for the read flag, which flips once the recipient
// views the conversation.
type Message struct {
	ID             int64     `json:"id" db:"id"`
	ConversationID int64     `json:"conversationId" db:"conversation_id"`
	SenderID       int64     `json:"senderId" db:"sender_id"`
	Body           string    `json:"message" db:"body"`
	IsRead         bool      `json:"isRead" db:"is_read"`
	CreatedAt      time.Time `json:"sentAt" db:"created_at"`

	SenderEmail string `json:"senderEmail,omitempty"` // joined from users, no db tag
}
