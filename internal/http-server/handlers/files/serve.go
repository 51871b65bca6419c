package files

import (
	"StaffGate/internal/lib/api/response"
	"StaffGate/internal/lib/sl"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Core provides read access to stored files.
type Core interface {
	DownloadFile(filename string) (io.ReadCloser, error)
}

// Serve streams a stored image by name. This is the public-readable
// namespace uploaded profile photos and catalog images live under.
func Serve(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("http.handlers.files"))

		name := chi.URLParam(r, "name")
		reader, err := handler.DownloadFile("uploads/" + name)
		if err != nil {
			logger.Warn("file not found", slog.String("name", name), sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("File not found"))
			return
		}
		defer reader.Close()

		w.Header().Set("Content-Type", "image/jpeg")
		if _, err := io.Copy(w, reader); err != nil {
			logger.Error("streaming file", slog.String("name", name), sl.Err(err))
		}
	}
}
