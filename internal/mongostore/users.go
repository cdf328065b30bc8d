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

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id"`
	Email     string             `bson:"email"`
	Name      string             `bson:"name"`
	Username  string             `bson:"username"`
	Image     *string            `bson:"image"`
	Bio       *string            `bson:"bio"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d userDoc) domain() *domain.User {
	return &domain.User{
		ID:        d.ID.Hex(),
		Email:     d.Email,
		Name:      d.Name,
		Username:  d.Username,
		Image:     d.Image,
		Bio:       d.Bio,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// CreateUser inserts a user document.
func (s *Store) CreateUser(ctx context.Context, email, name, username string) (*domain.User, error) {
	ts := now()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Email:     email,
		Name:      name,
		Username:  username,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return nil, classify(err)
	}
	return doc.domain(), nil
}

// ListUsers returns all users, oldest first.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, classify(err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, classify(err)
	}
	out := make([]domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.domain())
	}
	return out, nil
}

// GetUser fetches a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		return nil, classify(err)
	}
	return doc.domain(), nil
}

// UpdateUser applies the set fields of p and returns the updated document.
func (s *Store) UpdateUser(ctx context.Context, id string, p domain.UserPatch) (*domain.User, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	if p.Empty() {
		return s.GetUser(ctx, id)
	}

	set := bson.D{{Key: "updatedAt", Value: now()}}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Bio != nil {
		set = append(set, bson.E{Key: "bio", Value: *p.Bio})
	}
	if p.Image.Set {
		set = append(set, bson.E{Key: "image", Value: p.Image.Ptr()})
	}

	var doc userDoc
	err = s.users.FindOneAndUpdate(ctx,
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

// DeleteUser removes a user that owns no tweets.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	n, err := s.tweets.CountDocuments(ctx, bson.D{{Key: "userId", Value: oid}}, options.Count().SetLimit(1))
	if err != nil {
		return classify(err)
	}
	if n > 0 {
		return repo.ErrReferenced
	}
	res, err := s.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return classify(err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFoundOnWrite
	}
	return nil
}
