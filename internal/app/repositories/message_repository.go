package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybersleuth25/unisphere/internal/app/models"
)

// MessageRepository handles message database operations
type MessageRepository struct {
	db *pgxpool.Pool
}

// NewMessageRepository creates a new MessageRepository
func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message to a conversation with read=false.
func (r *MessageRepository) Create(ctx context.Context, message *models.Message) (int64, error) {
	query := `
		INSERT INTO messages (conversation_id, sender_id, body, is_read)
		VALUES ($1, $2, $3, FALSE)
		RETURNING id, is_read, created_at
	`

	err := r.db.QueryRow(ctx, query,
		message.ConversationID, message.SenderID, message.Body,
	).Scan(&message.ID, &message.IsRead, &message.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating message: %w", err)
	}
	return message.ID, nil
}

// ListByConversation retrieves a conversation's messages oldest first,
// carrying the sender email for client-side bubble alignment.
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID int64) ([]*models.Message, error) {
	query := `
		SELECT m.id, m.conversation_id, m.sender_id, m.body, m.is_read, m.created_at, u.email
		FROM messages m
		JOIN users u ON m.sender_id = u.id
		WHERE m.conversation_id = $1
		ORDER BY m.created_at ASC, m.id ASC
	`

	rows, err := r.db.Query(ctx, query, conversationID)
	if err != nil {
		return nil, fmt.Errorf("error executing list messages query: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Body, &m.IsRead, &m.CreatedAt, &m.SenderEmail)
		if err != nil {
			return nil, fmt.Errorf("error scanning message row: %w", err)
		}
		messages = append(messages, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating message rows: %w", err)
	}
	return messages, nil
}

// MarkRead flags all messages in the conversation addressed to the reader as
// read. One unconditional statement; re-running it on every poll is harmless.
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID, readerID int64) error {
	_, err := r.db.Exec(ctx, `
		UPDATE messages SET is_read = TRUE
		WHERE conversation_id = $1 AND sender_id <> $2 AND is_read = FALSE
	`, conversationID, readerID)
	if err != nil {
		return fmt.Errorf("error marking messages read: %w", err)
	}
	return nil
}
