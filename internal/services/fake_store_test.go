package services

import (
	"context"

	"github.com/tbourn/tweeter-backend/internal/domain"
)

// ----- Fake store -----

// fakeStore records calls and returns canned results. Unset results default
// to zero values.
type fakeStore struct {
	calls []string

	createUser    *domain.User
	createUserErr error
	createdName   string

	users    []domain.User
	usersErr error

	getUser    *domain.User
	getUserErr error

	updateUser    *domain.User
	updateUserErr error
	userPatch     domain.UserPatch

	deleteUserErr error

	createTweet    *domain.Tweet
	createTweetErr error
	createdContent string

	tweets    []domain.Tweet
	tweetsErr error

	getTweet    *domain.Tweet
	getTweetErr error

	updateTweet    *domain.Tweet
	updateTweetErr error
	tweetPatch     domain.TweetPatch

	deleteTweetErr error
}

func (f *fakeStore) CreateUser(_ context.Context, email, name, username string) (*domain.User, error) {
	f.calls = append(f.calls, "CreateUser")
	f.createdName = name
	if f.createUserErr != nil {
		return nil, f.createUserErr
	}
	if f.createUser != nil {
		return f.createUser, nil
	}
	return &domain.User{ID: domain.NewID(), Email: email, Name: name, Username: username}, nil
}

func (f *fakeStore) ListUsers(context.Context) ([]domain.User, error) {
	f.calls = append(f.calls, "ListUsers")
	return f.users, f.usersErr
}

func (f *fakeStore) GetUser(context.Context, string) (*domain.User, error) {
	f.calls = append(f.calls, "GetUser")
	return f.getUser, f.getUserErr
}

func (f *fakeStore) UpdateUser(_ context.Context, _ string, p domain.UserPatch) (*domain.User, error) {
	f.calls = append(f.calls, "UpdateUser")
	f.userPatch = p
	return f.updateUser, f.updateUserErr
}

func (f *fakeStore) DeleteUser(context.Context, string) error {
	f.calls = append(f.calls, "DeleteUser")
	return f.deleteUserErr
}

func (f *fakeStore) CreateTweet(_ context.Context, userID, content string, image *string) (*domain.Tweet, error) {
	f.calls = append(f.calls, "CreateTweet")
	f.createdContent = content
	if f.createTweetErr != nil {
		return nil, f.createTweetErr
	}
	if f.createTweet != nil {
		return f.createTweet, nil
	}
	return &domain.Tweet{ID: domain.NewID(), Content: content, Image: image, UserID: userID}, nil
}

func (f *fakeStore) ListTweetsByUser(context.Context, string) ([]domain.Tweet, error) {
	f.calls = append(f.calls, "ListTweetsByUser")
	return f.tweets, f.tweetsErr
}

func (f *fakeStore) GetTweet(context.Context, string) (*domain.Tweet, error) {
	f.calls = append(f.calls, "GetTweet")
	return f.getTweet, f.getTweetErr
}

func (f *fakeStore) UpdateTweet(_ context.Context, _ string, p domain.TweetPatch) (*domain.Tweet, error) {
	f.calls = append(f.calls, "UpdateTweet")
	f.tweetPatch = p
	return f.updateTweet, f.updateTweetErr
}

func (f *fakeStore) DeleteTweet(context.Context, string) error {
	f.calls = append(f.calls, "DeleteTweet")
	return f.deleteTweetErr
}

func (f *fakeStore) called(name string) bool {
	for _, c := range f.calls {
		if c == name {
			return true
		}
	}
	return false
}
