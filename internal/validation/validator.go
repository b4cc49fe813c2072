// Package validation wraps a shared go-playground validator with the custom
// tags used by library inputs and translates failures into AppErrors.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/vytor/gameshelf/internal/calendar"
	apperrors "github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/models"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Get returns the singleton validator. Field names in errors come from json
// tags so they match what API clients send.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = validate.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
			_, ok := calendar.Parse(fl.Field().String())
			return ok
		})
		_ = validate.RegisterValidation("gamestatus", func(fl validator.FieldLevel) bool {
			return models.GameStatus(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Fields validates s and returns one FieldError per failed rule.
func Fields(s any) []FieldError {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "unknown", Tag: "unknown", Message: err.Error()}}
	}
	out := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		out[i] = FieldError{Field: fe.Field(), Tag: fe.Tag(), Message: translate(fe)}
	}
	return out
}

// Struct validates s and reports failures as a single VALIDATION_ERROR.
func Struct(s any) error {
	fields := Fields(s)
	if len(fields) == 0 {
		return nil
	}
	if len(fields) == 1 {
		return apperrors.NewValidationError(fields[0].Field, fields[0].Message)
	}
	names := make([]string, len(fields))
	reasons := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Field
		reasons[i] = f.Message
	}
	return apperrors.NewValidationError(strings.Join(names, ", "), strings.Join(reasons, "; "))
}

var messages = map[string]string{
	"required":     "%s is required",
	"url":          "%s must be a valid URL",
	"calendardate": "%s must be a date in YYYY-MM-DD format",
	"gamestatus":   "%s must be one of: " + statusList(),
}

var messagesWithParam = map[string]string{
	"gte": "%s must be greater than or equal to %s",
	"lte": "%s must be less than or equal to %s",
	"gt":  "%s must be greater than %s",
	"lt":  "%s must be less than %s",
}

func statusList() string {
	names := make([]string, len(models.Statuses))
	for i, s := range models.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func translate(fe validator.FieldError) string {
	field, tag, param := fe.Field(), fe.Tag(), fe.Param()
	if tmpl, ok := messages[tag]; ok {
		return fmt.Sprintf(tmpl, field)
	}
	if tmpl, ok := messagesWithParam[tag]; ok {
		return fmt.Sprintf(tmpl, field, param)
	}
	isString := fe.Kind() == reflect.String
	switch tag {
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	}
	return fmt.Sprintf("%s failed %s validation", field, tag)
}
