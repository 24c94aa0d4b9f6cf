package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories bundles all repository instances for dependency injection.
type Repositories struct {
	UserRepository         *UserRepository
	PostRepository         *PostRepository
	FriendshipRepository   *FriendshipRepository
	ConversationRepository *ConversationRepository
	MessageRepository      *MessageRepository
	TokenRepository        *TokenRepository
}

// NewRepositories creates all repositories backed by the given pool.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		PostRepository:         NewPostRepository(db),
		FriendshipRepository:   NewFriendshipRepository(db),
		ConversationRepository: NewConversationRepository(db),
		MessageRepository:      NewMessageRepository(db),
		TokenRepository:        NewTokenRepository(db),
	}
}
