// Package handlers provides the HTTP endpoints for users and tweets.
//
// Handlers are transport-thin: route middleware has already validated the
// input, so each handler reads the typed values, calls exactly one service
// method and writes the result. Failures are attached with c.Error and
// answered by the terminal error handler; handlers never format error bodies.
package handlers

import (
	"context"

	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/services"
)

// UserService defines the user operations consumed by the handlers.
//
// Implementations must honor ctx and return typed *apperr.Error values for
// failures that should reach the client.
type UserService interface {
	CreateUser(ctx context.Context, email, name, username string) (*services.Result[services.UserResponse], error)
	ListAllUsers(ctx context.Context) (*services.Result[[]services.UserResponse], error)
	GetUserByID(ctx context.Context, id string) (*services.Result[services.UserResponse], error)
	UpdateUserByID(ctx context.Context, id string, p domain.UserPatch) (*services.Result[services.UserResponse], error)
	DeleteUserByID(ctx context.Context, id string) error
}

// TweetService defines the tweet operations consumed by the handlers.
type TweetService interface {
	CreateTweet(ctx context.Context, content, ownerID string, image *string) (*services.Result[services.TweetResponse], error)
	ListAllUserTweets(ctx context.Context, ownerID string) (*services.Result[[]services.TweetResponse], error)
	GetTweetByID(ctx context.Context, id string) (*services.Result[services.TweetResponse], error)
	UpdateTweetByID(ctx context.Context, id string, p domain.TweetPatch) (*services.Result[services.TweetResponse], error)
	DeleteTweetByID(ctx context.Context, id string) error
}

// Handlers groups the user and tweet endpoints.
type Handlers struct {
	userSvc  UserService
	tweetSvc TweetService
}

// New constructs a Handlers bound to the given services.
func New(userSvc UserService, tweetSvc TweetService) *Handlers {
	return &Handlers{userSvc: userSvc, tweetSvc: tweetSvc}
}

// IDParams is the route parameter shared by the /:id endpoints.
type IDParams struct {
	ID string `uri:"id" json:"id" binding:"required,objectid" example:"507f1f77bcf86cd799439011"`
}
