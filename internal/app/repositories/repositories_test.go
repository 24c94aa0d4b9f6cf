package repositories

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cybersleuth25/unisphere/internal/app/migrations"
	"github.com/cybersleuth25/unisphere/internal/app/models"
	"github.com/cybersleuth25/unisphere/internal/pkg/apperrors"
)

// openTestDB connects to the database named by UNISPHERE_TEST_DB (or
// DATABASE_URL) and ensures the schema is migrated. Tests are skipped when no
// database is reachable.
func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("UNISPHERE_TEST_DB")
	if url == "" {
		url = os.Getenv("DATABASE_URL")
	}
	if url == "" {
		t.Skip("UNISPHERE_TEST_DB or DATABASE_URL not set")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		t.Skipf("db unavailable: %v", err)
		return nil
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Skipf("db unreachable: %v", err)
		return nil
	}
	t.Cleanup(pool.Close)

	if err := migrations.NewMigrator(pool).MigrateFromDirectory("../../../migrations"); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return pool
}

// createTestUser inserts a user with unique credentials and registers cleanup.
func createTestUser(t *testing.T, repo *UserRepository) *models.User {
	t.Helper()

	suffix := uuid.New().String()[:8]
	user := &models.User{
		Username: "u_" + suffix,
		Email:    suffix + "@test.local",
		Password: "not-a-real-hash",
		Role:     models.RoleStudent,
	}
	if _, err := repo.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() {
		// Cascades remove the user's posts, likes, friendships and messages.
		_, _ = repo.db.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, user.ID)
	})
	return user
}

func TestFriendshipPairLifecycle(t *testing.T) {
	pool := openTestDB(t)
	userRepo := NewUserRepository(pool)
	repo := NewFriendshipRepository(pool)
	ctx := context.Background()

	alice := createTestUser(t, userRepo)
	bob := createTestUser(t, userRepo)

	if err := repo.CreatePending(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("create pending: %v", err)
	}

	// The pair index catches the reversed-direction duplicate too.
	if err := repo.CreatePending(ctx, bob.ID, alice.ID); !errors.Is(err, apperrors.ErrFriendshipExists) {
		t.Fatalf("reversed duplicate: got %v, want ErrFriendshipExists", err)
	}

	for _, pair := range [][2]int64{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		f, err := repo.GetByPair(ctx, pair[0], pair[1])
		if err != nil {
			t.Fatalf("get by pair %v: %v", pair, err)
		}
		if f == nil || f.Status != models.FriendshipPending || f.RequesterID != alice.ID {
			t.Fatalf("get by pair %v: got %+v", pair, f)
		}
	}

	// Accept is conditional on the stored direction.
	if err := repo.Accept(ctx, bob.ID, alice.ID); !errors.Is(err, apperrors.ErrFriendshipNotFound) {
		t.Fatalf("accept with swapped direction: got %v, want ErrFriendshipNotFound", err)
	}
	if err := repo.Accept(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	for _, pair := range [][2]int64{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		ok, err := repo.AreFriends(ctx, pair[0], pair[1])
		if err != nil || !ok {
			t.Fatalf("are friends %v: ok=%v err=%v", pair, ok, err)
		}
	}

	friends, err := repo.ListFriends(ctx, alice.ID)
	if err != nil {
		t.Fatalf("list friends: %v", err)
	}
	if len(friends) != 1 || friends[0].ID != bob.ID {
		t.Fatalf("list friends: got %d entries", len(friends))
	}

	if err := repo.DeleteAccepted(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("delete accepted: %v", err)
	}
	if ok, _ := repo.AreFriends(ctx, alice.ID, bob.ID); ok {
		t.Fatal("still friends after removal")
	}

	// A later re-request succeeds because the row is gone.
	if err := repo.CreatePending(ctx, bob.ID, alice.ID); err != nil {
		t.Fatalf("re-request after removal: %v", err)
	}
}

func TestToggleLikeDoubleRestoresCount(t *testing.T) {
	pool := openTestDB(t)
	userRepo := NewUserRepository(pool)
	postRepo := NewPostRepository(pool)
	ctx := context.Background()

	author := createTestUser(t, userRepo)
	post := &models.Post{
		AuthorID:    author.ID,
		PostType:    models.PostTypeEvents,
		Title:       "Movie night",
		Description: "Room B204",
	}
	if _, err := postRepo.CreatePost(ctx, post); err != nil {
		t.Fatalf("create post: %v", err)
	}

	count, liked, err := postRepo.ToggleLike(ctx, post.ID, author.ID)
	if err != nil || !liked || count != 1 {
		t.Fatalf("first toggle: count=%d liked=%v err=%v", count, liked, err)
	}

	count, liked, err = postRepo.ToggleLike(ctx, post.ID, author.ID)
	if err != nil || liked || count != 0 {
		t.Fatalf("second toggle: count=%d liked=%v err=%v", count, liked, err)
	}

	loaded, err := postRepo.GetPostByID(ctx, post.ID, author.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	if loaded.LikeCount != 0 || loaded.LikedByUser {
		t.Fatalf("aggregates after double toggle: %+v", loaded)
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	pool := openTestDB(t)
	userRepo := NewUserRepository(pool)
	postRepo := NewPostRepository(pool)

	user := createTestUser(t, userRepo)
	_, _, err := postRepo.ToggleLike(context.Background(), -1, user.ID)
	if !errors.Is(err, apperrors.ErrPostNotFound) {
		t.Fatalf("got %v, want ErrPostNotFound", err)
	}
}

func TestConversationGetOrCreateIdempotent(t *testing.T) {
	pool := openTestDB(t)
	userRepo := NewUserRepository(pool)
	convRepo := NewConversationRepository(pool)
	ctx := context.Background()

	a := createTestUser(t, userRepo)
	b := createTestUser(t, userRepo)

	first, err := convRepo.GetOrCreate(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("first get-or-create: %v", err)
	}
	second, err := convRepo.GetOrCreate(ctx, b.ID, a.ID)
	if err != nil {
		t.Fatalf("second get-or-create: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("pair got two conversations: %d and %d", first.ID, second.ID)
	}
	if first.User1ID >= first.User2ID {
		t.Fatalf("pair not normalized: %+v", first)
	}
}

func TestMessageOrderingAndUnreadCount(t *testing.T) {
	pool := openTestDB(t)
	userRepo := NewUserRepository(pool)
	convRepo := NewConversationRepository(pool)
	msgRepo := NewMessageRepository(pool)
	ctx := context.Background()

	a := createTestUser(t, userRepo)
	b := createTestUser(t, userRepo)

	conv, err := convRepo.GetOrCreate(ctx, a.ID, b.ID)
	if err != nil {
		t.Fatalf("get-or-create: %v", err)
	}

	bodies := []string{"first", "second", "third"}
	senders := []int64{a.ID, b.ID, a.ID}
	for i, body := range bodies {
		msg := &models.Message{ConversationID: conv.ID, SenderID: senders[i], Body: body}
		if _, err := msgRepo.Create(ctx, msg); err != nil {
			t.Fatalf("create message %d: %v", i, err)
		}
		if msg.IsRead {
			t.Fatal("new message created as read")
		}
	}

	messages, err := msgRepo.ListByConversation(ctx, conv.ID)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("got %d messages, want 3", len(messages))
	}
	for i, body := range bodies {
		if messages[i].Body != body {
			t.Fatalf("message %d = %q, want %q", i, messages[i].Body, body)
		}
	}
	if messages[0].SenderEmail != a.Email {
		t.Fatalf("sender email = %q, want %q", messages[0].SenderEmail, a.Email)
	}

	// b has two unread messages from a.
	summaries, err := convRepo.ListForUser(ctx, b.ID)
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(summaries) != 1 || summaries[0].UnreadCount != 2 {
		t.Fatalf("summaries = %+v", summaries)
	}
	if summaries[0].LastMessage == nil || *summaries[0].LastMessage != "third" {
		t.Fatalf("last message = %v", summaries[0].LastMessage)
	}
	if summaries[0].OtherUser.ID != a.ID {
		t.Fatalf("other user = %d, want %d", summaries[0].OtherUser.ID, a.ID)
	}

	if err := msgRepo.MarkRead(ctx, conv.ID, b.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	summaries, err = convRepo.ListForUser(ctx, b.ID)
	if err != nil {
		t.Fatalf("list conversations after read: %v", err)
	}
	if summaries[0].UnreadCount != 0 {
		t.Fatalf("unread after mark read = %d, want 0", summaries[0].UnreadCount)
	}
}
