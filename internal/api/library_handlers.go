package api

import (
	"bytes"
	"net/http"

	"github.com/vytor/gameshelf/internal/logger"
)

const maxLibraryBytes = 10 << 20

// handleImportLibrary takes a YAML library document as the raw request body.
func (s *Server) handleImportLibrary(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxLibraryBytes)
	res, err := s.LibraryService.Import(r.Context(), userFromContext(r.Context()), body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	logger.FromContext(r.Context()).Info("library import: %d imported, %d skipped", res.Imported, len(res.Skipped))
	writeJSON(w, r, http.StatusOK, res)
}

func (s *Server) handleExportLibrary(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.LibraryService.Export(r.Context(), userFromContext(r.Context()), &buf); err != nil {
		handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="library.yaml"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
