// Package services – TweetService
//
// This file implements TweetService. Tweets always belong to an existing
// user: creation and listing verify the owner first, and a foreign-key
// failure that races a concurrent user delete is reported the same way as a
// missing owner.
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

// TweetService implements the tweet use-cases on top of a TweetStore.
type TweetService struct {
	Store TweetStore
}

// NewTweetService constructs a TweetService over store.
func NewTweetService(store TweetStore) *TweetService {
	return &TweetService{Store: store}
}

var tweetTracer = otel.Tracer("services/TweetService")

// CreateTweet verifies that ownerID exists, then stores the tweet.
func (s *TweetService) CreateTweet(ctx context.Context, content, ownerID string, image *string) (*Result[TweetResponse], error) {
	ctx, span := tweetTracer.Start(ctx, "CreateTweet",
		trace.WithAttributes(attribute.String("user.id", ownerID)),
	)
	defer span.End()

	if _, err := s.Store.GetUser(ctx, ownerID); err != nil {
		return nil, translate(ErrUserNotFound, err)
	}
	tw, err := s.Store.CreateTweet(ctx, ownerID, content, image)
	if err != nil {
		if errors.Is(err, repo.ErrOwnerMissing) {
			return nil, ErrUserNotFound.WithCause(err)
		}
		return nil, translate(ErrUserNotFound, err)
	}
	return &Result[TweetResponse]{
		Payload: ToTweetResponse(tw),
		Message: "Tweet has been created successfully",
	}, nil
}

// ListAllUserTweets verifies that ownerID exists and returns its tweets.
func (s *TweetService) ListAllUserTweets(ctx context.Context, ownerID string) (*Result[[]TweetResponse], error) {
	ctx, span := tweetTracer.Start(ctx, "ListAllUserTweets",
		trace.WithAttributes(attribute.String("user.id", ownerID)),
	)
	defer span.End()

	if _, err := s.Store.GetUser(ctx, ownerID); err != nil {
		return nil, translate(ErrUserNotFound, err)
	}
	tweets, err := s.Store.ListTweetsByUser(ctx, ownerID)
	if err != nil {
		return nil, translate(ErrUserNotFound, err)
	}
	out := make([]TweetResponse, 0, len(tweets))
	for i := range tweets {
		out = append(out, ToTweetResponse(&tweets[i]))
	}
	span.SetAttributes(attribute.Int("tweets.count", len(out)))
	return &Result[[]TweetResponse]{Payload: out, Message: "Operation successful"}, nil
}

// GetTweetByID returns the tweet with the given id.
func (s *TweetService) GetTweetByID(ctx context.Context, id string) (*Result[TweetResponse], error) {
	ctx, span := tweetTracer.Start(ctx, "GetTweetByID",
		trace.WithAttributes(attribute.String("tweet.id", id)),
	)
	defer span.End()

	tw, err := s.Store.GetTweet(ctx, id)
	if err != nil {
		return nil, translate(ErrTweetNotFound, err)
	}
	return &Result[TweetResponse]{
		Payload: ToTweetResponse(tw),
		Message: "Successfully retrieved tweet",
	}, nil
}

// UpdateTweetByID writes the fields set in p and returns the result.
func (s *TweetService) UpdateTweetByID(ctx context.Context, id string, p domain.TweetPatch) (*Result[TweetResponse], error) {
	ctx, span := tweetTracer.Start(ctx, "UpdateTweetByID",
		trace.WithAttributes(attribute.String("tweet.id", id)),
	)
	defer span.End()

	tw, err := s.Store.UpdateTweet(ctx, id, p)
	if err != nil {
		return nil, translate(ErrTweetNotFound, err)
	}
	return &Result[TweetResponse]{
		Payload: ToTweetResponse(tw),
		Message: "Tweet has been updated successfully",
	}, nil
}

// DeleteTweetByID verifies that the tweet exists, then deletes it.
func (s *TweetService) DeleteTweetByID(ctx context.Context, id string) error {
	ctx, span := tweetTracer.Start(ctx, "DeleteTweetByID",
		trace.WithAttributes(attribute.String("tweet.id", id)),
	)
	defer span.End()

	if _, err := s.Store.GetTweet(ctx, id); err != nil {
		return translate(ErrTweetNotFound, err)
	}
	return translate(ErrTweetNotFound, s.Store.DeleteTweet(ctx, id))
}
