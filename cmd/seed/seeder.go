package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/utils"
)

const (
	maxImpression = 10000
	maxBioRunes   = 160
	maxTweetRunes = 1000
	minUsername   = 5
	maxUsername   = 30
)

// seedStore is the part of the store the seeder writes through.
type seedStore interface {
	CreateUser(ctx context.Context, email, name, username string) (*domain.User, error)
	UpdateUser(ctx context.Context, id string, p domain.UserPatch) (*domain.User, error)
	InsertTweet(ctx context.Context, tw *domain.Tweet) error
}

type seeder struct {
	store seedStore
	faker *gofakeit.Faker
	now   func() time.Time
}

type result struct {
	Users  int
	Tweets int
}

// run creates users with an avatar and a bio, then tweets owned by random
// seeded users with random impression counts.
func (s *seeder) run(ctx context.Context, users, tweets int) (result, error) {
	var res result
	if users <= 0 && tweets > 0 {
		return res, errors.New("tweets need at least one user")
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}

	ids := make([]string, 0, users)
	for i := 0; i < users; i++ {
		f := s.faker
		// The index suffix keeps email and username unique across a run.
		email := fmt.Sprintf("%d.%s", i, f.Email())
		u, err := s.store.CreateUser(ctx, email, f.Name(), username(f.Username(), i))
		if err != nil {
			return res, fmt.Errorf("user %d: %w", i, err)
		}
		bio := clip(f.Sentence(12), maxBioRunes)
		if _, err := s.store.UpdateUser(ctx, u.ID, domain.UserPatch{
			Image: utils.Some(f.URL()),
			Bio:   &bio,
		}); err != nil {
			return res, fmt.Errorf("user %d profile: %w", i, err)
		}
		ids = append(ids, u.ID)
		res.Users++
	}

	for i := 0; i < tweets; i++ {
		f := s.faker
		image := f.URL()
		at := now().UTC()
		tw := &domain.Tweet{
			ID:         domain.NewID(),
			Content:    clip(f.Paragraph(1, 3, 12, " "), maxTweetRunes),
			Image:      &image,
			Impression: f.IntRange(0, maxImpression),
			UserID:     ids[f.IntRange(0, len(ids)-1)],
			CreatedAt:  at,
			UpdatedAt:  at,
		}
		if err := s.store.InsertTweet(ctx, tw); err != nil {
			return res, fmt.Errorf("tweet %d: %w", i, err)
		}
		res.Tweets++
	}
	return res, nil
}

// username fits a fake handle into 5..30 characters and makes it unique.
func username(base string, i int) string {
	suffix := fmt.Sprintf("_%d", i)
	base = strings.ToLower(strings.ReplaceAll(base, " ", ""))
	if len(base)+len(suffix) > maxUsername {
		base = base[:maxUsername-len(suffix)]
	}
	u := base + suffix
	for len(u) < minUsername {
		u = "u" + u
	}
	return u
}

// clip cuts s to at most n runes.
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n]))
}
