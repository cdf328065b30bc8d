// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Tweet model.
//
// Functions:
//
//   - CreateTweet(ctx, db, userID, content, image) -> *domain.Tweet, error
//     Inserts a tweet owned by userID. A missing owner -> ErrOwnerMissing.
//
//   - InsertTweet(ctx, db, tweet) -> error
//     Inserts a pre-built tweet as is (seeding).
//
//   - ListTweetsByUser(ctx, db, userID) -> []domain.Tweet, error
//     Returns the owner's tweets, most recent first.
//
//   - GetTweet(ctx, db, id) -> *domain.Tweet, error
//
//   - UpdateTweet(ctx, db, id, patch) -> *domain.Tweet, error
//
//   - DeleteTweet(ctx, db, id) -> error
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/tweeter-backend/internal/domain"
)

// CreateTweet inserts a new tweet with zero impressions.
func CreateTweet(ctx context.Context, db *gorm.DB, userID, content string, image *string) (*domain.Tweet, error) {
	if !domain.ValidID(userID) {
		return nil, ErrInvalidID
	}
	userID = domain.CanonicalID(userID)
	now := time.Now().UTC()
	tw := &domain.Tweet{
		ID:        domain.NewID(),
		Content:   content,
		Image:     image,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := InsertTweet(ctx, db, tw); err != nil {
		return nil, err
	}
	return tw, nil
}

// InsertTweet stores a fully formed tweet, keeping its ID, impression count
// and timestamps. Used by the seeder.
func InsertTweet(ctx context.Context, db *gorm.DB, tw *domain.Tweet) error {
	tw.ID, tw.UserID = domain.CanonicalID(tw.ID), domain.CanonicalID(tw.UserID)
	// Omit the association so GORM never upserts a zero User.
	if err := db.WithContext(ctx).Omit("User").Create(tw).Error; err != nil {
		err = classify(err)
		if errors.Is(err, errForeignKey) {
			return ErrOwnerMissing
		}
		return err
	}
	return nil
}

// ListTweetsByUser returns the tweets owned by userID, newest first. An
// unknown owner yields an empty slice, not an error.
func ListTweetsByUser(ctx context.Context, db *gorm.DB, userID string) ([]domain.Tweet, error) {
	if !domain.ValidID(userID) {
		return nil, ErrInvalidID
	}
	userID = domain.CanonicalID(userID)
	out := []domain.Tweet{}
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&out).Error
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// GetTweet fetches a single tweet by ID.
func GetTweet(ctx context.Context, db *gorm.DB, id string) (*domain.Tweet, error) {
	if !domain.ValidID(id) {
		return nil, ErrInvalidID
	}
	id = domain.CanonicalID(id)
	var tw domain.Tweet
	if err := db.WithContext(ctx).Where("id = ?", id).First(&tw).Error; err != nil {
		return nil, classify(err)
	}
	return &tw, nil
}

// UpdateTweet writes the fields set in p and returns the stored record.
func UpdateTweet(ctx context.Context, db *gorm.DB, id string, p domain.TweetPatch) (*domain.Tweet, error) {
	if !domain.ValidID(id) {
		return nil, ErrInvalidID
	}
	id = domain.CanonicalID(id)
	if p.Empty() {
		return GetTweet(ctx, db, id)
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if p.Content != nil {
		updates["content"] = *p.Content
	}
	if p.Image.Set {
		updates["image"] = p.Image.Ptr()
	}

	res := db.WithContext(ctx).
		Model(&domain.Tweet{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFoundOnWrite
	}

	tw, err := GetTweet(ctx, db, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFoundOnWrite
	}
	return tw, err
}

// DeleteTweet removes the tweet with the given ID.
func DeleteTweet(ctx context.Context, db *gorm.DB, id string) error {
	if !domain.ValidID(id) {
		return ErrInvalidID
	}
	id = domain.CanonicalID(id)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Tweet{})
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOnWrite
	}
	return nil
}
