package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perdb/perdir-backend/internal/schemas"
	"github.com/perdb/perdir-backend/internal/services"
)

type EmailHandler struct {
	emailService services.EmailService
}

func NewEmailHandler(emailService services.EmailService) *EmailHandler {
	return &EmailHandler{emailService: emailService}
}

func (eh *EmailHandler) Add(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var in schemas.EmailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidationError(c, err)
		return
	}
	email, err := eh.emailService.Add(c.Request.Context(), userID, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, email)
}

func (eh *EmailHandler) Update(c *gin.Context) {
	emailID, ok := pathID(c, "emailId")
	if !ok {
		return
	}
	var in schemas.EmailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidationError(c, err)
		return
	}
	email, err := eh.emailService.Update(c.Request.Context(), emailID, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, email)
}

func (eh *EmailHandler) Delete(c *gin.Context) {
	emailID, ok := pathID(c, "emailId")
	if !ok {
		return
	}
	if err := eh.emailService.Delete(c.Request.Context(), emailID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, "Email Address deleted successfully")
}
