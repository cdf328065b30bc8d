// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the store-level error vocabulary shared by
// every store backend, and the translation from driver errors into it.
//
// Error semantics:
//   - ErrNotFound:        a lookup matched nothing.
//   - ErrNotFoundOnWrite: an update/delete matched nothing (the row vanished
//     or never existed). Distinct from ErrNotFound so callers can tell a
//     read miss from a write miss.
//   - ErrInvalidID:       the identifier is not a 24-hex ObjectID.
//   - ErrDuplicate:       a unique constraint (email, username) was violated.
//   - ErrOwnerMissing:    a tweet referenced a user that does not exist.
//   - ErrReferenced:      a user still owns tweets and cannot be deleted.
//
// Any other error is a raw driver error.
package repo

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound aliases gorm.ErrRecordNotFound for convenience and
	// consistency across the service layer.
	ErrNotFound = gorm.ErrRecordNotFound

	ErrNotFoundOnWrite = errors.New("record to write not found")
	ErrInvalidID       = errors.New("malformed identifier")
	ErrDuplicate       = errors.New("duplicate")
	ErrOwnerMissing    = errors.New("owner does not exist")
	ErrReferenced      = errors.New("record is still referenced")
)

// errForeignKey is the undirected FK violation; callers turn it into
// ErrOwnerMissing or ErrReferenced depending on the operation.
var errForeignKey = errors.New("foreign key violation")

// classify maps driver errors onto the sentinels above. Unknown errors are
// returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	low := strings.ToLower(err.Error())
	switch {
	// glebarez/sqlite may return plain-text errors for constraint violations.
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(low, "unique constraint"),
		strings.Contains(low, "duplicate key"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		strings.Contains(low, "foreign key constraint"),
		strings.Contains(low, "violates foreign key"):
		return fmt.Errorf("%w: %v", errForeignKey, err)
	}
	return err
}

// DuplicateField reports which unique user field a duplicate error is about,
// "email" or "username", by looking for the constraint name in the driver
// message. It returns "" when unknown.
func DuplicateField(err error) string {
	if err == nil || !errors.Is(err, ErrDuplicate) {
		return ""
	}
	low := strings.ToLower(err.Error())
	switch {
	case strings.Contains(low, "ux_users_email"), strings.Contains(low, "users.email"):
		return "email"
	case strings.Contains(low, "ux_users_username"), strings.Contains(low, "users.username"):
		return "username"
	}
	return ""
}
