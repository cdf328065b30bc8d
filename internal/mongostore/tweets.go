package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/repo"
)

type tweetDoc struct {
	ID         primitive.ObjectID `bson:"_id"`
	Content    string             `bson:"content"`
	Image      *string            `bson:"image"`
	Impression int                `bson:"impression"`
	UserID     primitive.ObjectID `bson:"userId"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d tweetDoc) domain() *domain.Tweet {
	return &domain.Tweet{
		ID:         d.ID.Hex(),
		Content:    d.Content,
		Image:      d.Image,
		Impression: d.Impression,
		UserID:     d.UserID.Hex(),
		CreatedAt:  d.CreatedAt.UTC(),
		UpdatedAt:  d.UpdatedAt.UTC(),
	}
}

// CreateTweet inserts a tweet after checking that its owner exists.
func (s *Store) CreateTweet(ctx context.Context, userID, content string, image *string) (*domain.Tweet, error) {
	ts := now()
	tw := &domain.Tweet{
		ID:        domain.NewID(),
		Content:   content,
		Image:     image,
		UserID:    userID,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if err := s.InsertTweet(ctx, tw); err != nil {
		return nil, err
	}
	return tw, nil
}

// InsertTweet stores a fully formed tweet, keeping its ID, impression count
// and timestamps. The owner must exist.
func (s *Store) InsertTweet(ctx context.Context, tw *domain.Tweet) error {
	owner, err := objectID(tw.UserID)
	if err != nil {
		return err
	}
	id, err := objectID(tw.ID)
	if err != nil {
		return err
	}
	n, err := s.users.CountDocuments(ctx, bson.D{{Key: "_id", Value: owner}}, options.Count().SetLimit(1))
	if err != nil {
		return classify(err)
	}
	if n == 0 {
		return repo.ErrOwnerMissing
	}
	doc := tweetDoc{
		ID:         id,
		Content:    tw.Content,
		Image:      tw.Image,
		Impression: tw.Impression,
		UserID:     owner,
		CreatedAt:  tw.CreatedAt,
		UpdatedAt:  tw.UpdatedAt,
	}
	if _, err := s.tweets.InsertOne(ctx, doc); err != nil {
		return classify(err)
	}
	return nil
}

// ListTweetsByUser returns the owner's tweets, newest first.
func (s *Store) ListTweetsByUser(ctx context.Context, userID string) ([]domain.Tweet, error) {
	owner, err := objectID(userID)
	if err != nil {
		return nil, err
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := s.tweets.Find(ctx, bson.D{{Key: "userId", Value: owner}}, opts)
	if err != nil {
		return nil, classify(err)
	}
	var docs []tweetDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(err)
	}
	out := make([]domain.Tweet, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.domain())
	}
	return out, nil
}

// GetTweet fetches a tweet by ID.
func (s *Store) GetTweet(ctx context.Context, id string) (*domain.Tweet, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc tweetDoc
	if err := s.tweets.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, classify(err)
	}
	return doc.domain(), nil
}

// UpdateTweet applies the set fields of p and returns the updated document.
func (s *Store) UpdateTweet(ctx context.Context, id string, p domain.TweetPatch) (*domain.Tweet, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return s.GetTweet(ctx, id)
	}

	set := bson.D{{Key: "updatedAt", Value: now()}}
	if p.Content != nil {
		set = append(set, bson.E{Key: "content", Value: *p.Content})
	}
	if p.Image.Set {
		set = append(set, bson.E{Key: "image", Value: p.Image.Ptr()})
	}

	var doc tweetDoc
	err = s.tweets.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repo.ErrNotFoundOnWrite
	}
	if err != nil {
		return nil, classify(err)
	}
	return doc.domain(), nil
}

// DeleteTweet removes a tweet by ID.
func (s *Store) DeleteTweet(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := s.tweets.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return classify(err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFoundOnWrite
	}
	return nil
}
