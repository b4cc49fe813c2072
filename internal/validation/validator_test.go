package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/validation"
)

func validInput() models.GameInput {
	return models.GameInput{
		Name:          "Hades",
		Status:        models.StatusInProgress,
		Price:         24.99,
		Rating:        9,
		DatePurchased: "2024-02-29",
	}
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, validation.Struct(validInput()))
	assert.NoError(t, validation.Struct(models.SessionInput{Date: "2024-01-01", Hours: 1.5}))
}

func TestFields(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*models.GameInput)
		field   string
		message string
	}{
		{"missing name", func(in *models.GameInput) { in.Name = "" }, "name", "name is required"},
		{"unknown status", func(in *models.GameInput) { in.Status = "Shelved" }, "status", "status must be one of: Not Started, In Progress, Completed, Wishlist, Abandoned"},
		{"negative price", func(in *models.GameInput) { in.Price = -1 }, "price", "price must be greater than or equal to 0"},
		{"rating above ten", func(in *models.GameInput) { in.Rating = 11 }, "rating", "rating must be less than or equal to 10"},
		{"bad date", func(in *models.GameInput) { in.DatePurchased = "2023-02-29" }, "date_purchased", "date_purchased must be a date in YYYY-MM-DD format"},
		{"bad thumbnail", func(in *models.GameInput) { in.Thumbnail = "not a url" }, "thumbnail", "thumbnail must be a valid URL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			fields := validation.Fields(in)
			require.Len(t, fields, 1)
			assert.Equal(t, tt.field, fields[0].Field)
			assert.Equal(t, tt.message, fields[0].Message)
		})
	}
}

func TestStruct_AppError(t *testing.T) {
	err := validation.Struct(models.SessionInput{Date: "yesterday", Hours: 0})
	require.Error(t, err)

	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
	assert.Equal(t, 400, appErr.Status)
	assert.Contains(t, appErr.Message, "date, hours")
	assert.Contains(t, appErr.Message, "hours must be greater than 0")
}

func TestStruct_MaxLength(t *testing.T) {
	err := validation.Struct(models.SessionInput{Date: "2024-01-01", Hours: 1, Mood: string(make([]byte, 51))})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mood must be at most 50 characters")
}
