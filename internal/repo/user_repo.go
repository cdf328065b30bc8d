// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They hold
// no business logic: the service layer decides what a missing record means.
//
// Functions:
//
//   - CreateUser(ctx, db, email, name, username) -> *domain.User, error
//     Inserts a user with a fresh ObjectID. Unique violations -> ErrDuplicate.
//
//   - ListUsers(ctx, db) -> []domain.User, error
//     Returns every user, oldest first.
//
//   - GetUser(ctx, db, id) -> *domain.User, error
//     Fetches a user by ID, or ErrNotFound.
//
//   - UpdateUser(ctx, db, id, patch) -> *domain.User, error
//     Applies the set fields of patch. ErrNotFoundOnWrite when no row matched.
//
//   - DeleteUser(ctx, db, id) -> error
//     Removes a user. ErrReferenced when the user still owns tweets.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/tweeter-backend/internal/domain"
)

// CreateUser inserts a new user. Image and Bio start out null.
func CreateUser(ctx context.Context, db *gorm.DB, email, name, username string) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:        domain.NewID(),
		Email:     email,
		Name:      name,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, classify(err)
	}
	return u, nil
}

// ListUsers returns all users ordered by creation time ascending. An empty
// table yields an empty (non-nil) slice.
func ListUsers(ctx context.Context, db *gorm.DB) ([]domain.User, error) {
	out := []domain.User{}
	err := db.WithContext(ctx).
		Order("created_at asc, id asc").
		Find(&out).Error
	if err != nil {
		return nil, classify(err)
	}
	return out, nil
}

// GetUser fetches a single user by ID.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	if !domain.ValidID(id) {
		return nil, ErrInvalidID
	}
	id = domain.CanonicalID(id)
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, classify(err)
	}
	return &u, nil
}

// UpdateUser writes the fields set in p and returns the stored record. An
// empty patch performs no write and behaves like GetUser.
func UpdateUser(ctx context.Context, db *gorm.DB, id string, p domain.UserPatch) (*domain.User, error) {
	if !domain.ValidID(id) {
		return nil, ErrInvalidID
	}
	id = domain.CanonicalID(id)
	if p.Empty() {
		return GetUser(ctx, db, id)
	}

	updates := map[string]any{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Bio != nil {
		updates["bio"] = *p.Bio
	}
	if p.Image.Set {
		updates["image"] = p.Image.Ptr()
	}

	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFoundOnWrite
	}

	u, err := GetUser(ctx, db, id)
	if errors.Is(err, ErrNotFound) {
		// deleted between the write and the read-back
		return nil, ErrNotFoundOnWrite
	}
	return u, err
}

// DeleteUser removes the user with the given ID. Tweets are not cascaded: a
// user that still owns tweets is rejected with ErrReferenced.
func DeleteUser(ctx context.Context, db *gorm.DB, id string) error {
	if !domain.ValidID(id) {
		return ErrInvalidID
	}
	id = domain.CanonicalID(id)
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		err := classify(res.Error)
		if errors.Is(err, errForeignKey) {
			return ErrReferenced
		}
		return err
	}
	if res.RowsAffected == 0 {
		return ErrNotFoundOnWrite
	}
	return nil
}
