package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/app/models/dto"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
	"github.com/cybersleuth25/unisphere/internal/pkg/logger"
)

// PostRepository handles post and like database operations
type PostRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPostRepository creates a new PostRepository
func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// postSelect builds the base select with author join and like aggregates for
// the given viewing user.
func (r *PostRepository) postSelect(viewerID int64) squirrel.SelectBuilder {
	return r.sb.Select(
		"p.id", "p.author_id", "p.post_type", "p.title", "p.description",
		"p.image_path", "p.status", "p.category", "p.cost_type",
		"p.created_at", "p.updated_at",
		"u.id", "u.username", "u.email", "u.role",
		"(SELECT COUNT(*) FROM post_likes pl WHERE pl.post_id = p.id) AS like_count",
	).
		Column("EXISTS(SELECT 1 FROM post_likes pl2 WHERE pl2.post_id = p.id AND pl2.user_id = ?) AS liked", viewerID).
		From("posts p").
		Join("users u ON p.author_id = u.id")
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var p models.Post
	var author models.User
	err := row.Scan(
		&p.ID, &p.AuthorID, &p.PostType, &p.Title, &p.Description,
		&p.ImagePath, &p.Status, &p.Category, &p.CostType,
		&p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Username, &author.Email, &author.Role,
		&p.LikeCount, &p.LikedByUser,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("error scanning post row: %w", err)
	}
	p.Author = &author
	return &p, nil
}

// GetPosts retrieves posts of one type, newest first, with the type-specific
// filter and optional title/description search applied.
func (r *PostRepository) GetPosts(ctx context.Context, postType models.PostType, filter *dto.PostListFilter, viewerID int64, offset uint64, limit int) ([]*models.Post, error) {
	qb := r.postSelect(viewerID).
		Where(squirrel.Eq{"p.post_type": postType}).
		OrderBy("p.created_at DESC").
		Offset(offset).
		Limit(uint64(limit))

	if filter != nil {
		if filter.Status != "" {
			qb = qb.Where(squirrel.Eq{"p.status": filter.Status})
		}
		if filter.Category != "" {
			qb = qb.Where(squirrel.Eq{"p.category": filter.Category})
		}
		if filter.CostType != "" {
			qb = qb.Where(squirrel.Eq{"p.cost_type": filter.CostType})
		}
		if search := strings.TrimSpace(filter.Search); search != "" {
			pattern := "%" + search + "%"
			qb = qb.Where(squirrel.Or{
				squirrel.ILike{"p.title": pattern},
				squirrel.ILike{"p.description": pattern},
			})
		}
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list posts SQL")
		return nil, fmt.Errorf("failed to build list posts query: %w", err)
	}

	return r.queryPosts(ctx, sql, args)
}

// SearchPosts finds posts of any type matching the query in title or
// description, newest first, bounded by limit.
func (r *PostRepository) SearchPosts(ctx context.Context, query string, viewerID int64, limit int) ([]*models.Post, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"

	sql, args, err := r.postSelect(viewerID).
		Where(squirrel.Or{
			squirrel.ILike{"p.title": pattern},
			squirrel.ILike{"p.description": pattern},
		}).
		OrderBy("p.created_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build search posts query: %w", err)
	}

	return r.queryPosts(ctx, sql, args)
}

func (r *PostRepository) queryPosts(ctx context.Context, sql string, args []interface{}) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing post query: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

// GetPostByID retrieves a single post with author and like aggregates.
func (r *PostRepository) GetPostByID(ctx context.Context, id, viewerID int64) (*models.Post, error) {
	sql, args, err := r.postSelect(viewerID).Where(squirrel.Eq{"p.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get post query: %w", err)
	}
	return scanPost(r.db.QueryRow(ctx, sql, args...))
}

// CreatePost inserts a new post and returns its id.
func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (author_id, post_type, title, description, image_path, status, category, cost_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		post.AuthorID, post.PostType, post.Title, post.Description,
		post.ImagePath, post.Status, post.Category, post.CostType,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		logger.Error().Err(err).Str("postType", string(post.PostType)).Msg("Error executing create post query")
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return post.ID, nil
}

// UpdatePost mutates title and description in place.
func (r *PostRepository) UpdatePost(ctx context.Context, id int64, title, description string) error {
	result, err := r.db.Exec(ctx,
		`UPDATE posts SET title = $1, description = $2, updated_at = NOW() WHERE id = $3`,
		title, description, id)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// DeletePost removes a post; its likes go with it via cascade.
func (r *PostRepository) DeletePost(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// ToggleLike flips the like of one user on one post inside a single
// transaction, so concurrent toggles on the same pair cannot lose updates.
// Returns the resulting like count and membership.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID int64) (int, bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin like transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID).Scan(&exists); err != nil {
		return 0, false, fmt.Errorf("error checking post existence: %w", err)
	}
	if !exists {
		return 0, false, apperrors.ErrPostNotFound
	}

	// Remove the like if present; otherwise insert it. The unique primary key
	// on (post_id, user_id) keeps concurrent inserts single.
	result, err := tx.Exec(ctx,
		`DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`, postID, userID)
	if err != nil {
		return 0, false, fmt.Errorf("error removing like: %w", err)
	}

	liked := false
	if result.RowsAffected() == 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO post_likes (post_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, userID)
		if err != nil {
			return 0, false, fmt.Errorf("error adding like: %w", err)
		}
		liked = true
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID).Scan(&count); err != nil {
		return 0, false, fmt.Errorf("error counting likes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, false, fmt.Errorf("failed to commit like transaction: %w", err)
	}
	return count, liked, nil
}
