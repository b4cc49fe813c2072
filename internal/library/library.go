// Package library reads and writes a user's library as a YAML document and
// prepares imported games for storage.
package library

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vytor/gameshelf/internal/classify"
	apperrors "github.com/vytor/gameshelf/internal/errors"
	"github.com/vytor/gameshelf/internal/models"
	"github.com/vytor/gameshelf/internal/validation"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written on export and the highest version Decode accepts.
const FormatVersion = 1

// Encode writes file as YAML with two-space indentation.
func Encode(w io.Writer, file models.LibraryFile) error {
	if file.Version == 0 {
		file.Version = FormatVersion
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	return enc.Close()
}

// Decode parses a library document. Unknown keys are rejected so typos in
// hand-edited files surface instead of silently dropping data.
func Decode(r io.Reader) (*models.LibraryFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var file models.LibraryFile
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewBadRequestError("library file is empty")
		}
		return nil, apperrors.NewBadRequestError("invalid library file: " + err.Error())
	}
	if file.Version > FormatVersion {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("library version %d is newer than supported version %d", file.Version, FormatVersion))
	}
	return &file, nil
}

func identity(g models.Game) string {
	return classify.NormalizeTitle(g.Name) + "|" + strings.ToLower(strings.TrimSpace(g.Platform))
}

// Prepared is the outcome of Prepare.
type Prepared struct {
	Games   []models.Game
	Skipped []string
}

// Prepare validates every game in file, gives each game and session a fresh
// id from newID and assigns them to userID. Games that match an existing
// game by normalized title and platform, or that repeat an earlier entry in
// the file, are skipped. The first invalid entry fails the whole import.
func Prepare(file models.LibraryFile, userID string, existing []models.Game, now time.Time, newID func() string) (Prepared, error) {
	seen := make(map[string]bool, len(existing)+len(file.Games))
	for _, g := range existing {
		seen[identity(g)] = true
	}
	stamp := now.UTC().Format(time.RFC3339)

	out := Prepared{Games: []models.Game{}, Skipped: []string{}}
	for i, g := range file.Games {
		if err := validation.Struct(models.InputOf(g)); err != nil {
			return Prepared{}, prefixed(fmt.Sprintf("games[%d]", i), err)
		}
		key := identity(g)
		if seen[key] {
			out.Skipped = append(out.Skipped, g.Name)
			continue
		}
		seen[key] = true

		g.ID = newID()
		g.UserID = userID
		if g.CreatedAt == "" {
			g.CreatedAt = stamp
		}
		g.UpdatedAt = stamp

		logs := make([]models.PlayLog, 0, len(g.PlayLogs))
		for j, l := range g.PlayLogs {
			in := models.SessionInput{Date: l.Date, Hours: l.Hours, Notes: l.Notes, Mood: l.Mood}
			if err := validation.Struct(in); err != nil {
				return Prepared{}, prefixed(fmt.Sprintf("games[%d].play_logs[%d]", i, j), err)
			}
			l.ID = newID()
			logs = append(logs, l)
		}
		g.PlayLogs = logs
		out.Games = append(out.Games, g)
	}
	return out, nil
}

func prefixed(where string, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		return &apperrors.AppError{
			Code:    appErr.Code,
			Message: where + ": " + appErr.Message,
			Status:  appErr.Status,
			Err:     appErr.Err,
		}
	}
	return fmt.Errorf("%s: %w", where, err)
}
