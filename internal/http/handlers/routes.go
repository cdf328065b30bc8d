package handlers

import (
	"github.com/gin-gonic/gin"

	mw "github.com/tbourn/tweeter-backend/internal/http/middleware"
)

// Register mounts the user and tweet routes on r, each behind its input
// validation.
func (h *Handlers) Register(r gin.IRoutes) {
	r.POST("/user", mw.Validate(mw.Schemas{Body: CreateUserBody{}}), h.CreateUser)
	r.GET("/user", h.ListUsers)
	r.GET("/user/:id", mw.Validate(mw.Schemas{Params: IDParams{}}), h.GetUser)
	r.PUT("/user/:id", mw.Validate(mw.Schemas{Params: IDParams{}, Body: UpdateUserBody{}}), h.UpdateUser)
	r.DELETE("/user/:id", mw.Validate(mw.Schemas{Params: IDParams{}}), h.DeleteUser)

	r.POST("/tweet", mw.Validate(mw.Schemas{Body: CreateTweetBody{}}), h.CreateTweet)
	r.GET("/tweet", mw.Validate(mw.Schemas{Query: UserIDQuery{}}), h.ListTweets)
	r.GET("/tweet/:id", mw.Validate(mw.Schemas{Params: IDParams{}}), h.GetTweet)
	r.PUT("/tweet/:id", mw.Validate(mw.Schemas{Params: IDParams{}, Body: UpdateTweetBody{}}), h.UpdateTweet)
	r.DELETE("/tweet/:id", mw.Validate(mw.Schemas{Params: IDParams{}}), h.DeleteTweet)
}
