package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/perdb/perdir-backend/internal/schemas"
	"github.com/perdb/perdir-backend/internal/services"
)

type PhoneHandler struct {
	phoneService services.PhoneService
}

func NewPhoneHandler(phoneService services.PhoneService) *PhoneHandler {
	return &PhoneHandler{phoneService: phoneService}
}

func (ph *PhoneHandler) Add(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	var in schemas.PhoneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidationError(c, err)
		return
	}
	phone, err := ph.phoneService.Add(c.Request.Context(), userID, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, phone)
}

func (ph *PhoneHandler) List(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	phones, err := ph.phoneService.ListByUserID(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, phones)
}

func (ph *PhoneHandler) Update(c *gin.Context) {
	phoneID, ok := pathID(c, "phoneId")
	if !ok {
		return
	}
	var in schemas.PhoneInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondValidationError(c, err)
		return
	}
	phone, err := ph.phoneService.Update(c.Request.Context(), phoneID, in)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, phone)
}

func (ph *PhoneHandler) Delete(c *gin.Context) {
	phoneID, ok := pathID(c, "phoneId")
	if !ok {
		return
	}
	if err := ph.phoneService.Delete(c.Request.Context(), phoneID); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, "Phone Number deleted successfully")
}
