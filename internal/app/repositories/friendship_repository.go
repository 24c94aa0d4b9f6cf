package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
	"github.com/cybersleuth25/unisphere/internal/pkg/dberrors"
	"github.com/cybersleuth25/unisphere/internal/pkg/logger"
)

// FriendshipRepository handles friendship database operations. Every mutation
// is a single conditional statement so concurrent transitions on the same
// pair cannot interleave into a lost update; a statement that matches no row
// reports ErrFriendshipNotFound.
type FriendshipRepository struct {
	db *pgxpool.Pool
}

// NewFriendshipRepository creates a new FriendshipRepository
func NewFriendshipRepository(db *pgxpool.Pool) *FriendshipRepository {
	return &FriendshipRepository{db: db}
}

// GetByPair retrieves the friendship record for an unordered user pair, or
// nil when none exists.
func (r *FriendshipRepository) GetByPair(ctx context.Context, userA, userB int64) (*models.Friendship, error) {
	query := `
		SELECT id, requester_id, addressee_id, status, requested_at
		FROM friendships
		WHERE LEAST(requester_id, addressee_id) = LEAST($1::bigint, $2::bigint)
		  AND GREATEST(requester_id, addressee_id) = GREATEST($1::bigint, $2::bigint)
	`

	var f models.Friendship
	err := r.db.QueryRow(ctx, query, userA, userB).Scan(
		&f.ID, &f.RequesterID, &f.AddresseeID, &f.Status, &f.RequestedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving friendship: %w", err)
	}
	return &f, nil
}

// CreatePending inserts a new pending request. The unique pair index turns a
// concurrent duplicate into ErrFriendshipExists.
func (r *FriendshipRepository) CreatePending(ctx context.Context, requesterID, addresseeID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO friendships (requester_id, addressee_id, status) VALUES ($1, $2, 'pending')`,
		requesterID, addresseeID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "friendships_pair_key") {
			return apperrors.ErrFriendshipExists
		}
		logger.Error().Err(err).Int64("requesterID", requesterID).Int64("addresseeID", addresseeID).
			Msg("Error executing create friendship query")
		return fmt.Errorf("error creating friend request: %w", err)
	}
	return nil
}

// Accept flips a pending request to accepted, conditional on the actor being
// the addressee of a still-pending record.
func (r *FriendshipRepository) Accept(ctx context.Context, requesterID, addresseeID int64) error {
	result, err := r.db.Exec(ctx, `
		UPDATE friendships SET status = 'accepted'
		WHERE requester_id = $1 AND addressee_id = $2 AND status = 'pending'
	`, requesterID, addresseeID)
	if err != nil {
		return fmt.Errorf("error accepting friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}

// DeletePending removes a pending request (decline or cancel).
func (r *FriendshipRepository) DeletePending(ctx context.Context, requesterID, addresseeID int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM friendships
		WHERE requester_id = $1 AND addressee_id = $2 AND status = 'pending'
	`, requesterID, addresseeID)
	if err != nil {
		return fmt.Errorf("error deleting friend request: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}

// DeleteAccepted removes an accepted friendship for an unordered pair.
func (r *FriendshipRepository) DeleteAccepted(ctx context.Context, userA, userB int64) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM friendships
		WHERE LEAST(requester_id, addressee_id) = LEAST($1::bigint, $2::bigint)
		  AND GREATEST(requester_id, addressee_id) = GREATEST($1::bigint, $2::bigint)
		  AND status = 'accepted'
	`, userA, userB)
	if err != nil {
		return fmt.Errorf("error removing friendship: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrFriendshipNotFound
	}
	return nil
}

// AreFriends reports whether an accepted friendship exists for the pair.
func (r *FriendshipRepository) AreFriends(ctx context.Context, userA, userB int64) (bool, error) {
	var accepted bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM friendships
			WHERE LEAST(requester_id, addressee_id) = LEAST($1::bigint, $2::bigint)
			  AND GREATEST(requester_id, addressee_id) = GREATEST($1::bigint, $2::bigint)
			  AND status = 'accepted'
		)
	`, userA, userB).Scan(&accepted)
	if err != nil {
		return false, fmt.Errorf("error checking friendship: %w", err)
	}
	return accepted, nil
}

// ListFriends retrieves the accepted counterparts of a user.
func (r *FriendshipRepository) ListFriends(ctx context.Context, userID int64) ([]*models.User, error) {
	query := `
		SELECT ` + prefixedUserColumns("u") + `
		FROM friendships f
		JOIN users u ON u.id = CASE WHEN f.requester_id = $1 THEN f.addressee_id ELSE f.requester_id END
		WHERE (f.requester_id = $1 OR f.addressee_id = $1) AND f.status = 'accepted'
		ORDER BY u.username ASC
	`
	return r.queryUsers(ctx, query, userID)
}

// ListPendingRequests retrieves users with a pending request addressed to
// the given user, oldest request first.
func (r *FriendshipRepository) ListPendingRequests(ctx context.Context, userID int64) ([]*models.User, error) {
	query := `
		SELECT ` + prefixedUserColumns("u") + `
		FROM friendships f
		JOIN users u ON u.id = f.requester_id
		WHERE f.addressee_id = $1 AND f.status = 'pending'
		ORDER BY f.requested_at ASC
	`
	return r.queryUsers(ctx, query, userID)
}

func (r *FriendshipRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing friendship user query: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friendship user rows: %w", err)
	}
	return users, nil
}

func prefixedUserColumns(alias string) string {
	return alias + ".id, " + alias + ".username, " + alias + ".email, " + alias + ".password, " +
		alias + ".role, " + alias + ".bio, " + alias + ".avatar_path, " + alias + ".branch, " +
		alias + ".semester, " + alias + ".created_at, " + alias + ".updated_at"
}
