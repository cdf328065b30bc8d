// Package services defines the business logic for users and tweets.
// This file centralizes the typed errors that service methods return so that
// the HTTP terminal handler can answer them without knowing the service.
//
// Every value is an *apperr.Error carrying its status. Store failures are
// attached as the cause, which is logged but never sent to clients.
package services

import (
	"errors"

	"github.com/tbourn/tweeter-backend/internal/apperr"
	"github.com/tbourn/tweeter-backend/internal/repo"
)

var (
	// ErrUserNotFound indicates that the referenced user does not exist.
	ErrUserNotFound = apperr.NotFound("User not found!")

	// ErrTweetNotFound indicates that the referenced tweet does not exist.
	ErrTweetNotFound = apperr.NotFound("Tweet not found!")

	// ErrEmailTaken is returned when another account already uses the email.
	ErrEmailTaken = apperr.Conflict("A user account associated with that email already exists!")

	// ErrUsernameTaken is returned when another account already uses the username.
	ErrUsernameTaken = apperr.Conflict("This username has already been taken!")

	// ErrCredentialsTaken is the conflict used when the store cannot tell
	// which unique field collided.
	ErrCredentialsTaken = apperr.Conflict("A user account with these credentials already exists!")

	// ErrUserHasTweets is returned when deleting a user that still owns tweets.
	ErrUserHasTweets = apperr.Conflict("User still owns tweets and cannot be deleted!")

	// ErrInternal is the opaque failure for anything the service cannot
	// classify.
	ErrInternal = apperr.Internal("An error has occurred during the process!", nil)
)

// missing reports whether err is a store-level "no such record" condition:
// a read miss, a write that matched nothing, or an id the store cannot parse.
func missing(err error) bool {
	return errors.Is(err, repo.ErrNotFound) ||
		errors.Is(err, repo.ErrNotFoundOnWrite) ||
		errors.Is(err, repo.ErrInvalidID)
}

// translate maps a store error to nf when the record is missing and to
// ErrInternal otherwise. Typed errors pass through unchanged.
func translate(nf *apperr.Error, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}
	if missing(err) {
		return nf.WithCause(err)
	}
	return ErrInternal.WithCause(err)
}
