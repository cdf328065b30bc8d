package services

import (
	"context"

	"github.com/tbourn/tweeter-backend/internal/domain"
)

// UserStore is the persistence contract of UserService. Implementations
// return the repo sentinel errors (repo.ErrNotFound, repo.ErrDuplicate, ...).
type UserStore interface {
	CreateUser(ctx context.Context, email, name, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, p domain.UserPatch) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// TweetStore is the persistence contract of TweetService. GetUser is used
// for the owner existence check.
type TweetStore interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	CreateTweet(ctx context.Context, userID, content string, image *string) (*domain.Tweet, error)
	ListTweetsByUser(ctx context.Context, userID string) ([]domain.Tweet, error)
	GetTweet(ctx context.Context, id string) (*domain.Tweet, error)
	UpdateTweet(ctx context.Context, id string, p domain.TweetPatch) (*domain.Tweet, error)
	DeleteTweet(ctx context.Context, id string) error
}

// Store is satisfied by both backends (repo.Store and mongostore.Store).
type Store interface {
	UserStore
	TweetStore
	InsertTweet(ctx context.Context, tw *domain.Tweet) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
