package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/tweeter-backend/internal/domain"
)

// Store binds the repository free functions to a *gorm.DB so that services
// can depend on an interface instead of the concrete handle.
type Store struct {
	DB *gorm.DB
}

// NewStore returns a Store over db.
func NewStore(db *gorm.DB) *Store { return &Store{DB: db} }

// CreateUser proxies CreateUser.
func (s *Store) CreateUser(ctx context.Context, email, name, username string) (*domain.User, error) {
	return CreateUser(ctx, s.DB, email, name, username)
}

// ListUsers proxies ListUsers.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	return ListUsers(ctx, s.DB)
}

// GetUser proxies GetUser.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return GetUser(ctx, s.DB, id)
}

// UpdateUser proxies UpdateUser.
func (s *Store) UpdateUser(ctx context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	return UpdateUser(ctx, s.DB, id, p)
}

// DeleteUser proxies DeleteUser.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return DeleteUser(ctx, s.DB, id)
}

// CreateTweet proxies CreateTweet.
func (s *Store) CreateTweet(ctx context.Context, userID, content string, image *string) (*domain.Tweet, error) {
	return CreateTweet(ctx, s.DB, userID, content, image)
}

// InsertTweet proxies InsertTweet.
func (s *Store) InsertTweet(ctx context.Context, tw *domain.Tweet) error {
	return InsertTweet(ctx, s.DB, tw)
}

// ListTweetsByUser proxies ListTweetsByUser.
func (s *Store) ListTweetsByUser(ctx context.Context, userID string) ([]domain.Tweet, error) {
	return ListTweetsByUser(ctx, s.DB, userID)
}

// GetTweet proxies GetTweet.
func (s *Store) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	return GetTweet(ctx, s.DB, id)
}

// UpdateTweet proxies UpdateTweet.
func (s *Store) UpdateTweet(ctx context.Context, id string, p domain.TweetPatch) (*domain.Tweet, error) {
	return UpdateTweet(ctx, s.DB, id, p)
}

// DeleteTweet proxies DeleteTweet.
func (s *Store) DeleteTweet(ctx context.Context, id string) error {
	return DeleteTweet(ctx, s.DB, id)
}

// Ping checks connectivity of the underlying pool.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying pool.
func (s *Store) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
