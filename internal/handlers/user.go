package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perdb/perdir-backend/internal/schemas"
	"github.com/perdb/perdir-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (uh *UserHandler) Create(c *gin.Context) {
	var in schemas.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidationError(c, err)
		return
	}
	user, err := uh.userService.Create(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (uh *UserHandler) List(c *gin.Context) {
	filters := map[string]string{}
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	users, err := uh.userService.List(c.Request.Context(), filters)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uh *UserHandler) Get(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := uh.userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Replace handles PUT /users/:id/edit: the submitted child collections fully
// supersede the stored ones.
func (uh *UserHandler) Replace(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var in schemas.UserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidationError(c, err)
		return
	}
	user, err := uh.userService.Replace(c.Request.Context(), userID, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uh *UserHandler) Delete(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := uh.userService.Delete(c.Request.Context(), userID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, "User deleted successfully")
}
