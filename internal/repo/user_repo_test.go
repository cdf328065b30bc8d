package repo

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/utils"
)

func TestCreateUser_Success_SetsFields(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	start := time.Now().UTC().Add(-time.Minute)
	u, err := CreateUser(ctx, db, "ana@example.com", "Ana", "ana_b")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !domain.ValidID(u.ID) || u.Email != "ana@example.com" || u.Username != "ana_b" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.Image != nil || u.Bio != nil {
		t.Fatalf("image/bio should start null: %+v", u)
	}
	if u.CreatedAt.Before(start) {
		t.Fatalf("CreatedAt seems unset: %v", u.CreatedAt)
	}

	got, err := GetUser(ctx, db, u.ID)
	if err != nil || got.Name != "Ana" {
		t.Fatalf("round-trip failed: got=%+v err=%v", got, err)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	if _, err := CreateUser(ctx, db, "dup@example.com", "A", "first"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, err := CreateUser(ctx, db, "dup@example.com", "B", "second")
	if !errors.Is(err, ErrDuplicate) || DuplicateField(err) != "email" {
		t.Fatalf("duplicate email: want ErrDuplicate on email, got %v", err)
	}
	_, err = CreateUser(ctx, db, "other@example.com", "B", "first")
	if !errors.Is(err, ErrDuplicate) || DuplicateField(err) != "username" {
		t.Fatalf("duplicate username: want ErrDuplicate on username, got %v", err)
	}
}

func TestListUsers_EmptyAndOrdered(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	out, err := ListUsers(ctx, db)
	if err != nil || out == nil || len(out) != 0 {
		t.Fatalf("empty list: out=%v err=%v", out, err)
	}

	t1 := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	older := &domain.User{ID: domain.NewID(), Email: "o@x.io", Name: "O", Username: "older", CreatedAt: t1, UpdatedAt: t1}
	newer := &domain.User{ID: domain.NewID(), Email: "n@x.io", Name: "N", Username: "newer", CreatedAt: t1.Add(time.Hour), UpdatedAt: t1}
	if err := db.Create(newer).Error; err != nil {
		t.Fatalf("seed newer: %v", err)
	}
	if err := db.Create(older).Error; err != nil {
		t.Fatalf("seed older: %v", err)
	}

	out, err = ListUsers(ctx, db)
	if err != nil || len(out) != 2 {
		t.Fatalf("ListUsers: out=%v err=%v", out, err)
	}
	if out[0].ID != older.ID || out[1].ID != newer.ID {
		t.Fatalf("expected oldest first, got %s then %s", out[0].Username, out[1].Username)
	}
}

func TestGetUser_NotFoundAndInvalid(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	if _, err := GetUser(ctx, db, domain.NewID()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
	if _, err := GetUser(ctx, db, "nope"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("want ErrInvalidID, got %v", err)
	}
}

func TestUserIDs_CaseInsensitive(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "up@example.com", "Up", "upper")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	upper := strings.ToUpper(u.ID)

	if got, err := GetUser(ctx, db, upper); err != nil || got.ID != u.ID {
		t.Fatalf("GetUser(upper) = %+v, %v", got, err)
	}
	tw, err := CreateTweet(ctx, db, upper, "hi", nil)
	if err != nil || tw.UserID != u.ID {
		t.Fatalf("CreateTweet(upper owner) = %+v, %v", tw, err)
	}
	if list, err := ListTweetsByUser(ctx, db, upper); err != nil || len(list) != 1 {
		t.Fatalf("ListTweetsByUser(upper) = %v, %v", list, err)
	}
	if err := DeleteTweet(ctx, db, strings.ToUpper(tw.ID)); err != nil {
		t.Fatalf("DeleteTweet(upper): %v", err)
	}
	name := "Upd"
	if got, err := UpdateUser(ctx, db, upper, domain.UserPatch{Name: &name}); err != nil || got.Name != "Upd" {
		t.Fatalf("UpdateUser(upper) = %+v, %v", got, err)
	}
	if err := DeleteUser(ctx, db, upper); err != nil {
		t.Fatalf("DeleteUser(upper): %v", err)
	}
}

func TestUpdateUser_PartialAndNullImage(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "p@example.com", "Pat", "patty")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	bio := "hello"
	got, err := UpdateUser(ctx, db, u.ID, domain.UserPatch{
		Bio:   &bio,
		Image: utils.Some("https://img.test/p.png"),
	})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if got.Name != "Pat" || got.Bio == nil || *got.Bio != "hello" || got.Image == nil {
		t.Fatalf("unexpected after update: %+v", got)
	}

	// Explicit null clears the image and leaves bio untouched.
	got, err = UpdateUser(ctx, db, u.ID, domain.UserPatch{Image: utils.Null[string]()})
	if err != nil {
		t.Fatalf("UpdateUser(null image): %v", err)
	}
	if got.Image != nil || got.Bio == nil {
		t.Fatalf("expected image cleared and bio kept: %+v", got)
	}
}

func TestUpdateUser_EmptyPatchAndMissing(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "e@example.com", "Em", "emmy1")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	got, err := UpdateUser(ctx, db, u.ID, domain.UserPatch{})
	if err != nil || got.ID != u.ID {
		t.Fatalf("empty patch: got=%+v err=%v", got, err)
	}

	if _, err := UpdateUser(ctx, db, domain.NewID(), domain.UserPatch{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty patch on missing: want ErrNotFound, got %v", err)
	}
	name := "x"
	if _, err := UpdateUser(ctx, db, domain.NewID(), domain.UserPatch{Name: &name}); !errors.Is(err, ErrNotFoundOnWrite) {
		t.Fatalf("write on missing: want ErrNotFoundOnWrite, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	db := newRepoDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "d@example.com", "Dee", "deedee")
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := CreateTweet(ctx, db, u.ID, "still here", nil); err != nil {
		t.Fatalf("seed tweet: %v", err)
	}

	if err := DeleteUser(ctx, db, u.ID); !errors.Is(err, ErrReferenced) {
		t.Fatalf("owner with tweets: want ErrReferenced, got %v", err)
	}
	if err := db.Where("user_id = ?", u.ID).Delete(&domain.Tweet{}).Error; err != nil {
		t.Fatalf("clear tweets: %v", err)
	}
	if err := DeleteUser(ctx, db, u.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := DeleteUser(ctx, db, u.ID); !errors.Is(err, ErrNotFoundOnWrite) {
		t.Fatalf("second delete: want ErrNotFoundOnWrite, got %v", err)
	}
}
