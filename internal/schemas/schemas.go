package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Request schemas for the three entities. Identity fields are accepted on
// input but never used: new ids are always store-assigned.
//
// The child collections are pointers so that "present but empty" and
// "missing" stay distinguishable: a user payload must carry both lists,
// but either list may be empty.

type EmailInput struct {
	ID    int64  `json:"id"`
	Email string `json:"email" binding:"required,max=50"`
}

type PhoneInput struct {
	ID     int64  `json:"id"`
	Number string `json:"number" binding:"required,max=50"`
}

type UserInput struct {
	ID           int64         `json:"id"`
	FirstName    string        `json:"firstName" binding:"required,max=100"`
	LastName     string        `json:"lastName" binding:"required,max=100"`
	Emails       *[]EmailInput `json:"emails" binding:"required,dive"`
	PhoneNumbers *[]PhoneInput `json:"phoneNumbers" binding:"required,dive"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var registerOnce sync.Once

// RegisterTagNames makes gin's validator report json field names instead of
// Go struct field names, so validation failures name the wire field.
func RegisterTagNames() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Translate converts a binding failure into one entry per failing field.
// Validation is atomic: the caller gets every failure at once and no partial
// record is ever produced.
func Translate(err error) []FieldError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{
				Field:   fieldPath(fe.Namespace()),
				Message: messageFor(fe),
			})
		}
		return out
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return []FieldError{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("expected %s", typeErr.Type.Kind()),
		}}
	}

	return []FieldError{{Field: "", Message: "invalid request body"}}
}

// fieldPath strips the root struct name from a validator namespace, leaving
// paths like "emails[0].email".
func fieldPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required field missing"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
