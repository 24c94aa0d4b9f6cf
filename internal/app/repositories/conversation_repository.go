package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

// ConversationSummaryRow is one row of the conversation list query: the
// conversation, its other participant and the activity aggregates.
type ConversationSummaryRow struct {
	Conversation models.Conversation
	OtherUser    models.User
	LastMessage  *string
	UnreadCount  int
}

// ConversationRepository handles conversation database operations
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// GetOrCreate returns the conversation for an unordered user pair, creating
// it when absent. The unique (user1_id, user2_id) index makes the insert
// race-free: a concurrent creator wins and both callers see the same row.
func (r *ConversationRepository) GetOrCreate(ctx context.Context, userA, userB int64) (*models.Conversation, error) {
	u1, u2 := models.NormalizePair(userA, userB)

	var c models.Conversation
	err := r.db.QueryRow(ctx, `
		INSERT INTO conversations (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, user1_id, user2_id, created_at
	`, u1, u2).Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt)
	if err == nil {
		return &c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("error creating conversation: %w", err)
	}

	// Conflict: the row already existed, select it.
	err = r.db.QueryRow(ctx, `
		SELECT id, user1_id, user2_id, created_at
		FROM conversations WHERE user1_id = $1 AND user2_id = $2
	`, u1, u2).Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return &c, nil
}

// GetByID retrieves a conversation by id.
func (r *ConversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	var c models.Conversation
	err := r.db.QueryRow(ctx, `
		SELECT id, user1_id, user2_id, created_at FROM conversations WHERE id = $1
	`, id).Scan(&c.ID, &c.User1ID, &c.User2ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrConversationNotFound
		}
		return nil, fmt.Errorf("error retrieving conversation: %w", err)
	}
	return &c, nil
}

// ListForUser retrieves the user's conversations ordered by most recent
// activity, each carrying the counterpart, last message body and the number
// of unread messages addressed to the user.
func (r *ConversationRepository) ListForUser(ctx context.Context, userID int64) ([]ConversationSummaryRow, error) {
	query := `
		SELECT
			c.id, c.user1_id, c.user2_id, c.created_at,
			u.id, u.username, u.email, u.role, u.bio, u.avatar_path, u.branch, u.semester,
			lm.body,
			(SELECT COUNT(*) FROM messages m
			 WHERE m.conversation_id = c.id AND m.sender_id <> $1 AND m.is_read = FALSE) AS unread_count
		FROM conversations c
		JOIN users u ON u.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		LEFT JOIN LATERAL (
			SELECT body, created_at FROM messages m
			WHERE m.conversation_id = c.id
			ORDER BY m.created_at DESC, m.id DESC
			LIMIT 1
		) lm ON TRUE
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY COALESCE(lm.created_at, c.created_at) DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("error executing list conversations query: %w", err)
	}
	defer rows.Close()

	var summaries []ConversationSummaryRow
	for rows.Next() {
		var row ConversationSummaryRow
		err := rows.Scan(
			&row.Conversation.ID, &row.Conversation.User1ID, &row.Conversation.User2ID, &row.Conversation.CreatedAt,
			&row.OtherUser.ID, &row.OtherUser.Username, &row.OtherUser.Email, &row.OtherUser.Role,
			&row.OtherUser.Bio, &row.OtherUser.AvatarPath, &row.OtherUser.Branch, &row.OtherUser.Semester,
			&row.LastMessage,
			&row.UnreadCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning conversation row: %w", err)
		}
		summaries = append(summaries, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversation rows: %w", err)
	}
	return summaries, nil
}
