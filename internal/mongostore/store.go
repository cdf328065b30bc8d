// Package mongostore implements the user/tweet store on MongoDB. It mirrors
// the GORM-backed repo.Store: same method set, same sentinel errors, so the
// service layer cannot tell the backends apart.
//
// MongoDB has no foreign keys, so the owner checks the relational schema
// enforces are done here explicitly:
//   - CreateTweet rejects an unknown owner with repo.ErrOwnerMissing.
//   - DeleteUser rejects a user that still owns tweets with repo.ErrReferenced.
package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tbourn/tweeter-backend/internal/repo"
)

const (
	usersCollection  = "users"
	tweetsCollection = "tweets"
)

// Store is a MongoDB-backed user/tweet store.
type Store struct {
	client *mongo.Client
	users  *mongo.Collection
	tweets *mongo.Collection
}

// Connect dials uri, verifies the connection and returns a Store over the
// named database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	s := New(client.Database(database))
	s.client = client
	return s, nil
}

// New returns a Store over db. The caller keeps ownership of the client.
func New(db *mongo.Database) *Store {
	return &Store{
		users:  db.Collection(usersCollection),
		tweets: db.Collection(tweetsCollection),
	}
}

// EnsureIndexes creates the unique credential indexes and the owner index
// used by tweet listing. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_users_email")},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_users_username")},
	})
	if err != nil {
		return err
	}
	_, err = s.tweets.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_tweets_user"),
	})
	return err
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client when the Store owns it.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// objectID parses a hex identifier, mapping malformed input to
// repo.ErrInvalidID.
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, repo.ErrInvalidID
	}
	return oid, nil
}

// classify maps driver errors onto the repo sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return repo.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return errors.Join(repo.ErrDuplicate, err)
	}
	return err
}

func now() time.Time {
	// Mongo stores milliseconds; truncate so returned values match stored ones.
	return time.Now().UTC().Truncate(time.Millisecond)
}
