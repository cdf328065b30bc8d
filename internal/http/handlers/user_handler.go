// User HTTP handlers.
//
//   - POST   /user       (create)
//   - GET    /user       (list)
//   - GET    /user/{id}  (read)
//   - PUT    /user/{id}  (partial update)
//   - DELETE /user/{id}  (delete)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/tweeter-backend/internal/domain"
	"github.com/tbourn/tweeter-backend/internal/http/middleware"
	"github.com/tbourn/tweeter-backend/internal/utils"
)

// CreateUserBody is the JSON payload for creating a user.
type CreateUserBody struct {
	Email    string `json:"email"    binding:"required,email"                  example:"ana@example.com"`
	Name     string `json:"name"     binding:"required,notblank,min=1,max=100" example:"Ana"`
	Username string `json:"username" binding:"required,min=5,max=30"           example:"ana_b"`
}

// Normalize trims the display name and converts it to NFC before validation.
func (b *CreateUserBody) Normalize() { b.Name = utils.NormalizeText(b.Name) }

// UpdateUserBody is the JSON payload for a partial user update. Absent fields
// are left unchanged; image may be null to clear it.
type UpdateUserBody struct {
	Name  *string                `json:"name"  binding:"omitempty,notblank,min=1,max=100" example:"Ana B."`
	Image utils.Nullable[string] `json:"image" binding:"omitempty,url"                    swaggertype:"string" example:"https://cdn.example.com/ana.png"`
	Bio   *string                `json:"bio"   binding:"omitempty,max=160"                example:"Coffee first."`
}

func (b *UpdateUserBody) Normalize() {
	b.Name = utils.NormalizePtr(b.Name)
	b.Bio = utils.NormalizePtr(b.Bio)
}

// Patch converts the body into a store patch.
func (b UpdateUserBody) Patch() domain.UserPatch {
	return domain.UserPatch{Name: b.Name, Image: b.Image, Bio: b.Bio}
}

// CreateUser godoc
// @ID          createUser
// @Summary     Create a user
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.CreateUserBody  true  "New user"
// @Success     201   {object}  services.Result[services.UserResponse]
// @Failure     400   {object}  middleware.ErrorBody  "Validation error"
// @Failure     409   {object}  middleware.ErrorBody  "Email or username taken"
// @Failure     500   {object}  middleware.ErrorBody  "Internal error"
// @Router      /user [post]
func (h *Handlers) CreateUser(c *gin.Context) {
	b := middleware.Body[CreateUserBody](c)
	res, err := h.userSvc.CreateUser(c.Request.Context(), b.Email, b.Name, b.Username)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusCreated, res)
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Tags        Users
// @Produce     json
// @Success     200  {object}  services.Result[[]services.UserResponse]
// @Failure     500  {object}  middleware.ErrorBody  "Internal error"
// @Router      /user [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	res, err := h.userSvc.ListAllUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, res)
}

// GetUser godoc
// @ID          getUser
// @Summary     Get a user
// @Tags        Users
// @Produce     json
// @Param       id   path      string  true  "User ID (24-hex)"  example(507f1f77bcf86cd799439011)
// @Success     200  {object}  services.Result[services.UserResponse]
// @Failure     400  {object}  middleware.ErrorBody  "Invalid ID format"
// @Failure     404  {object}  middleware.ErrorBody  "User not found"
// @Router      /user/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	p := middleware.Params[IDParams](c)
	res, err := h.userSvc.GetUserByID(c.Request.Context(), p.ID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, res)
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Update a user
// @Description Writes only the supplied fields. An empty body returns the user unchanged.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       id    path      string                   true  "User ID (24-hex)"
// @Param       body  body      handlers.UpdateUserBody  true  "Fields to change"
// @Success     200   {object}  services.Result[services.UserResponse]
// @Failure     400   {object}  middleware.ErrorBody  "Validation error"
// @Failure     404   {object}  middleware.ErrorBody  "User not found"
// @Router      /user/{id} [put]
func (h *Handlers) UpdateUser(c *gin.Context) {
	p := middleware.Params[IDParams](c)
	b := middleware.Body[UpdateUserBody](c)
	res, err := h.userSvc.UpdateUserByID(c.Request.Context(), p.ID, b.Patch())
	if err != nil {
		_ = c.Error(err)
		return
	}
	ok(c, http.StatusOK, res)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Delete a user
// @Tags        Users
// @Param       id   path  string  true  "User ID (24-hex)"
// @Success     204  "Deleted"
// @Header      204  {string}  X-Deleted-At   "Deletion time (RFC 3339, UTC)"
// @Header      204  {string}  Cache-Control  "no-store"
// @Failure     400  {object}  middleware.ErrorBody  "Invalid ID format"
// @Failure     404  {object}  middleware.ErrorBody  "User not found"
// @Failure     409  {object}  middleware.ErrorBody  "User still owns tweets"
// @Router      /user/{id} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	p := middleware.Params[IDParams](c)
	if err := h.userSvc.DeleteUserByID(c.Request.Context(), p.ID); err != nil {
		_ = c.Error(err)
		return
	}
	deleted(c)
}
