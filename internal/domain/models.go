// Package domain defines the persistence models for users and tweets. These
// types are mapped with GORM (and with BSON by the Mongo store) and form the
// core data layer of the service.
package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tbourn/tweeter-backend/internal/utils"
)

// User is an account that owns tweets.
//
// Fields:
//   - ID: 24-hex ObjectID string, assigned on create.
//   - Email / Username: unique across all users (unique indexes).
//   - Name: display name.
//   - Image: optional profile image URL.
//   - Bio: optional short description.
//   - CreatedAt / UpdatedAt: timestamps managed by the store.
type User struct {
	ID        string    `json:"id"         gorm:"type:char(24);primaryKey"`
	Email     string    `json:"email"      gorm:"type:varchar(320);not null;uniqueIndex:ux_users_email"`
	Name      string    `json:"name"       gorm:"type:varchar(100);not null"`
	Username  string    `json:"username"   gorm:"type:varchar(30);not null;uniqueIndex:ux_users_username"`
	Image     *string   `json:"image"      gorm:"type:text"`
	Bio       *string   `json:"bio"        gorm:"type:varchar(160)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Tweet is a short post owned by a user.
//
// The owner relation carries no ON DELETE action: removing a user that still
// owns tweets is rejected by the store.
type Tweet struct {
	ID         string    `json:"id"         gorm:"type:char(24);primaryKey"`
	Content    string    `json:"content"    gorm:"type:varchar(1000);not null"`
	Image      *string   `json:"image"      gorm:"type:text"`
	Impression int       `json:"impression" gorm:"not null;default:0;check:chk_tweets_impression,impression >= 0"`
	UserID     string    `json:"user_id"    gorm:"type:char(24);not null;index:idx_tweets_user"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE"`
}

// TableName returns the database table name for Tweet.
func (Tweet) TableName() string { return "tweets" }

// UserPatch lists the mutable user fields. Nil / unset fields are left as is.
type UserPatch struct {
	Name  *string
	Image utils.Nullable[string]
	Bio   *string
}

// Empty reports whether the patch would write nothing.
func (p UserPatch) Empty() bool {
	return p.Name == nil && !p.Image.Set && p.Bio == nil
}

// TweetPatch lists the mutable tweet fields.
type TweetPatch struct {
	Content *string
	Image   utils.Nullable[string]
}

// Empty reports whether the patch would write nothing.
func (p TweetPatch) Empty() bool {
	return p.Content == nil && !p.Image.Set
}

// NewID returns a fresh store identifier (hex ObjectID).
func NewID() string { return primitive.NewObjectID().Hex() }

// ValidID reports whether id has the 24-hex identifier shape. Both hex cases
// are accepted.
func ValidID(id string) bool { return primitive.IsValidObjectID(id) }

// CanonicalID returns id in the lowercase form every store persists, so that
// "6AD1..." and "6ad1..." address the same record.
func CanonicalID(id string) string { return strings.ToLower(id) }
