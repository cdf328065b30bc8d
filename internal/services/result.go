package services

import "github.com/tbourn/tweeter-backend/internal/domain"

// Result is the success envelope of every service call.
type Result[T any] struct {
	Payload T      `json:"payload"`
	Message string `json:"message"`
}

// UserResponse is the public view of a user. Identifiers and timestamps are
// not exposed.
type UserResponse struct {
	Email    string  `json:"email"    example:"ana@example.com"`
	Name     string  `json:"name"     example:"Ana"`
	Username string  `json:"username" example:"ana_b"`
	Image    *string `json:"image"    example:"https://cdn.example.com/ana.png"`
	Bio      *string `json:"bio"      example:"Coffee first."`
}

// TweetResponse is the public view of a tweet.
type TweetResponse struct {
	Content    string  `json:"content"    example:"hello world"`
	Image      *string `json:"image"`
	Impression int     `json:"impression" example:"0"`
}

// ToUserResponse maps a stored user to its public view.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		Email:    u.Email,
		Name:     u.Name,
		Username: u.Username,
		Image:    u.Image,
		Bio:      u.Bio,
	}
}

// ToTweetResponse maps a stored tweet to its public view.
func ToTweetResponse(t *domain.Tweet) TweetResponse {
	return TweetResponse{
		Content:    t.Content,
		Image:      t.Image,
		Impression: t.Impression,
	}
}
