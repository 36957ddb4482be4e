package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/perdb/perdir-backend/internal/schemas"
	"github.com/perdb/perdir-backend/internal/services"
)

type APIError struct {
	Message string               `json:"message"`
	Code    string               `json:"code,omitempty"`
	Fields  []schemas.FieldError `json:"fields,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondValidationError emits a 400 enumerating every failing field. An
// invalid body never reaches persistence, so there is no partial state to
// report.
func RespondValidationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope{
		Error: APIError{
			Message: "validation failed",
			Code:    "validation_error",
			Fields:  schemas.Translate(err),
		},
	})
}

// RespondServiceError maps the expected error taxonomy: missing rows to 404,
// bad filters to 400, anything else to a 500 after rollback.
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, services.ErrInvalidFilter):
		RespondError(c, http.StatusBadRequest, "invalid_filter", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}

// pathID parses a numeric path segment. A non-numeric segment behaves like a
// route that matched nothing: 404.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		RespondError(c, http.StatusNotFound, "not_found", errors.New("no such resource"))
		return 0, false
	}
	return id, true
}
