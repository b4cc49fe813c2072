package services_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/repository/sqlite"
	"github.com/vytor/gameshelf/internal/services"
	tu "github.com/vytor/gameshelf/internal/testutil"
	"github.com/vytor/gameshelf/internal/testutil/mocks"
)

const libraryDoc = `version: 1
games:
  - name: Hollow Knight
    platform: PC
    price: 15
    status: Completed
    thumbnail: https://img.example/hk.jpg
    end_date: "2024-02-01"
    hours: 40
    rating: 9
  - name: Celeste
    platform: Switch
    price: 20
    status: In Progress
    hours: 0
    rating: 0
    play_logs:
      - date: "2024-06-01"
        hours: 1.5
        mood: focused
  - name: Hollow Knight
    platform: pc
    price: 0
    status: Wishlist
    hours: 0
    rating: 0
`

func TestLibrary_ImportThenExport(t *testing.T) {
	db := tu.NewTestDB(t)
	defer tu.MustClose(t, db)
	repo := sqlite.NewGameRepository(db)
	queue := new(mocks.MockJobQueue)
	queue.On("EnqueueEnrichment", "user-1", mock.AnythingOfType("string")).Return(nil)
	svc := services.NewLibraryService(repo, queue, clock)
	ctx := context.Background()

	res, err := svc.Import(ctx, "user-1", strings.NewReader(libraryDoc))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)
	assert.Equal(t, []string{"Hollow Knight"}, res.Skipped)
	queue.AssertNumberOfCalls(t, "EnqueueEnrichment", 1)

	games, err := repo.GetAll(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, games, 2)

	var buf bytes.Buffer
	require.NoError(t, svc.Export(ctx, "user-1", &buf))
	out := buf.String()
	assert.Contains(t, out, "user_id: user-1")
	assert.Contains(t, out, "2024-06-15T18:30:00Z")
	assert.Contains(t, out, "mood: focused")

	again, err := svc.Import(ctx, "user-1", &buf)
	require.NoError(t, err)
	assert.Zero(t, again.Imported)
	assert.Len(t, again.Skipped, 2)
}

func TestLibrary_ImportRejectsInvalidDocument(t *testing.T) {
	repo := new(mocks.MockGameRepository)
	svc := services.NewLibraryService(repo, new(mocks.MockJobQueue), clock)
	repo.On("GetAll", mock.Anything, "user-1").Return([]models.Game{}, nil)

	_, err := svc.Import(context.Background(), "user-1", strings.NewReader("version: 1\ngames:\n  - name: X\n    status: Bored\n"))
	requireCode(t, err, apperrors.ErrCodeValidation)

	_, err = svc.Import(context.Background(), "user-1", strings.NewReader("not: [valid"))
	requireCode(t, err, apperrors.ErrCodeBadRequest)

	repo.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestLibrary_ImportStoreFailure(t *testing.T) {
	repo := new(mocks.MockGameRepository)
	queue := new(mocks.MockJobQueue)
	svc := services.NewLibraryService(repo, queue, clock)
	repo.On("GetAll", mock.Anything, "user-1").Return([]models.Game{}, nil)
	repo.On("CreateBatch", mock.Anything, mock.Anything).Return(errors.New("constraint failed"))

	_, err := svc.Import(context.Background(), "user-1", strings.NewReader(libraryDoc))
	requireCode(t, err, apperrors.ErrCodeInternal)
	queue.AssertNotCalled(t, "EnqueueEnrichment", mock.Anything, mock.Anything)
}
