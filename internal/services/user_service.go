// Package services – UserService
//
// This file implements UserService, which owns the user lifecycle: creation,
// listing, lookup, partial update and deletion. Inputs arrive already
// validated by the HTTP layer; the service normalizes free text, performs the
// existence checks and turns store outcomes into typed errors.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/repo"
)

// UserService implements the user use-cases on top of a UserStore.
type UserService struct {
	Store UserStore
}

// NewUserService constructs a UserService over store.
func NewUserService(store UserStore) *UserService {
	return &UserService{Store: store}
}

var userTracer = otel.Tracer("services/UserService")

// CreateUser stores a new account. Uniqueness of email and username is
// enforced by the store; a collision becomes a 409.
func (s *UserService) CreateUser(ctx context.Context, email, name, username string) (*Result[UserResponse], error) {
	ctx, span := userTracer.Start(ctx, "CreateUser")
	defer span.End()

	u, err := s.Store.CreateUser(ctx, email, name, username)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			switch repo.DuplicateField(err) {
			case "email":
				return nil, ErrEmailTaken.WithCause(err)
			case "username":
				return nil, ErrUsernameTaken.WithCause(err)
			}
			return nil, ErrCredentialsTaken.WithCause(err)
		}
		return nil, ErrInternal.WithCause(err)
	}
	return &Result[UserResponse]{
		Payload: ToUserResponse(u),
		Message: "User has been created successfully",
	}, nil
}

// ListAllUsers returns every user.
func (s *UserService) ListAllUsers(ctx context.Context) (*Result[[]UserResponse], error) {
	ctx, span := userTracer.Start(ctx, "ListAllUsers")
	defer span.End()

	users, err := s.Store.ListUsers(ctx)
	if err != nil {
		return nil, ErrInternal.WithCause(err)
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, ToUserResponse(&users[i]))
	}
	span.SetAttributes(attribute.Int("users.count", len(out)))
	return &Result[[]UserResponse]{Payload: out, Message: "Operation successful"}, nil
}

// GetUserByID returns the user with the given id.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*Result[UserResponse], error) {
	ctx, span := userTracer.Start(ctx, "GetUserByID",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer span.End()

	u, err := s.Store.GetUser(ctx, id)
	if err != nil {
		return nil, translate(ErrUserNotFound, err)
	}
	return &Result[UserResponse]{
		Payload: ToUserResponse(u),
		Message: "Successfully retrieved user information",
	}, nil
}

// UpdateUserByID writes the fields set in p. Unset fields keep their value;
// an explicitly null image is cleared. An empty patch writes nothing and
// returns the current record.
func (s *UserService) UpdateUserByID(ctx context.Context, id string, p domain.UserPatch) (*Result[UserResponse], error) {
	ctx, span := userTracer.Start(ctx, "UpdateUserByID",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer span.End()

	u, err := s.Store.UpdateUser(ctx, id, p)
	if err != nil {
		return nil, translate(ErrUserNotFound, err)
	}
	return &Result[UserResponse]{
		Payload: ToUserResponse(u),
		Message: "User has been updated successfully",
	}, nil
}

// DeleteUserByID verifies that the user exists, then deletes it. Tweets are
// not cascaded: a user that still owns tweets yields a 409.
func (s *UserService) DeleteUserByID(ctx context.Context, id string) error {
	ctx, span := userTracer.Start(ctx, "DeleteUserByID",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer span.End()

	if _, err := s.Store.GetUser(ctx, id); err != nil {
		return translate(ErrUserNotFound, err)
	}
	if err := s.Store.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, repo.ErrReferenced) {
			return ErrUserHasTweets.WithCause(err)
		}
		return translate(ErrUserNotFound, err)
	}
	return nil
}
