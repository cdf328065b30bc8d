// Tweet HTTP handlers.
//
//   - POST   /tweet              (create)
//   - GET    /tweet?userId={id}  (list a user's tweets)
//   - GET    /tweet/{id}         (read)
//   - PUT    /tweet/{id}         (partial update)
//   - DELETE /tweet/{id}         (delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/http/middleware"
	"github.com/tbourn/tweeter-backend/internal/utils"
)

// CreateTweetBody is the JSON payload for creating a tweet.
type CreateTweetBody struct {
	Content string                 `json:"content" binding:"required,notblank,min=1,max=1000" example:"hello world"`
	UserID  string                 `json:"userId"  binding:"required,objectid"                example:"507f1f77bcf86cd799439011"`
	Image   utils.Nullable[string] `json:"image"   binding:"omitempty,url"                    swaggertype:"string"`
}

// Normalize trims content and converts it to NFC before validation.
func (b *CreateTweetBody) Normalize() { b.Content = utils.NormalizeText(b.Content) }

// UpdateTweetBody is the JSON payload for a partial tweet update.
type UpdateTweetBody struct {
	Content *string                `json:"content" binding:"omitempty,notblank,min=1,max=1000" example:"edited"`
	Image   utils.Nullable[string] `json:"image"   binding:"omitempty,url"                     swaggertype:"string"`
}

// Normalize trims content and converts it to NFC before validation.
func (b *UpdateTweetBody) Normalize() { b.Content = utils.NormalizePtr(b.Content) }

// Patch converts the body into a store patch.
func (b UpdateTweetBody) Patch() domain.TweetPatch {
	return domain.TweetPatch{Content: b.Content, Image: b.Image}
}

// UserIDQuery selects the owner whose tweets are listed.
type UserIDQuery struct {
	UserID string `form:"userId" json:"userId" binding:"required,objectid" example:"507f1f77bcf86cd799439011"`
}

// CreateTweet godoc
// @ID          createTweet
// @Summary     Create a tweet
// @Tags        Tweets
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateTweetBody  true  "New tweet"
// @Success     201   {object}  services.Result[services.TweetResponse]
// @Failure     400   {object}  middleware.ErrorBody  "Validation error"
// @Failure     404   {object}  middleware.ErrorBody  "User not found"
// @Failure     500   {object}  middleware.ErrorBody  "Internal error"
// @Router      /tweet [post]
func (h *Handlers) CreateTweet(c *gin.Context) {
	b := middleware.Body[CreateTweetBody](c)
	res, err := h.tweetSvc.CreateTweet(c.Request.Context(), b.Content, b.UserID, b.Image.Ptr())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, res)
}

// ListTweets godoc
// @ID          listTweets
// @Summary     List a user's tweets
// @Tags        Tweets
// @Produce     json
// @Param       userId  query     string  true  "Owner ID (24-hex)"
// @Success     200     {object}  services.Result[[]services.TweetResponse]
// @Failure     400     {object}  middleware.ErrorBody  "Invalid userID format"
// @Failure     404     {object}  middleware.ErrorBody  "User not found"
// @Router      /tweet [get]
func (h *Handlers) ListTweets(c *gin.Context) {
	q := middleware.Query[UserIDQuery](c)
	res, err := h.tweetSvc.ListAllUserTweets(c.Request.Context(), q.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, res)
}

// GetTweet godoc
// @ID          getTweet
// @Summary     Get a tweet
// @Tags        Tweets
// @Produce     json
// @Param       id   path      string  true  "Tweet ID (24-hex)"
// @Success     200  {object}  services.Result[services.TweetResponse]
// @Failure     400  {object}  middleware.ErrorBody  "Invalid ID format"
// @Failure     404  {object}  middleware.ErrorBody  "Tweet not found"
// @Router      /tweet/{id} [get]
func (h *Handlers) GetTweet(c *gin.Context) {
	p := middleware.Params[IDParams](c)
	res, err := h.tweetSvc.GetTweetByID(c.Request.Context(), p.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, res)
}

// UpdateTweet godoc
// @ID          updateTweet
// @Summary     Update a tweet
// @Tags        Tweets
// @Accept      json
// @Produce     json
// @Param       id    path      string                    true  "Tweet ID (24-hex)"
// @Param       body  body      handlers.UpdateTweetBody  true  "Fields to change"
// @Success     200   {object}  services.Result[services.TweetResponse]
// @Failure     400   {object}  middleware.ErrorBody  "Validation error"
// @Failure     404   {object}  middleware.ErrorBody  "Tweet not found"
// @Router      /tweet/{id} [put]
func (h *Handlers) UpdateTweet(c *gin.Context) {
	p := middleware.Params[IDParams](c)
	b := middleware.Body[UpdateTweetBody](c)
	res, err := h.tweetSvc.UpdateTweetByID(c.Request.Context(), p.ID, b.Patch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, res)
}

// DeleteTweet godoc
// @ID          deleteTweet
// @Summary     Delete a tweet
// @Tags        Tweets
// @Param       id   path  string  true  "Tweet ID (24-hex)"
// @Success     204  "Deleted"
// @Header      204  {string}  X-Deleted-At  "Deletion time (RFC 3339, UTC)"
// @Failure     400  {object}  middleware.ErrorBody  "Invalid ID format"
// @Failure     404  {object}  middleware.ErrorBody  "Tweet not found"
// @Router      /tweet/{id} [delete]
func (h *Handlers) DeleteTweet(c *gin.Context) {
	p := middleware.Params[IDParams](c)
	if err := h.tweetSvc.DeleteTweetByID(c.Request.Context(), p.ID); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
