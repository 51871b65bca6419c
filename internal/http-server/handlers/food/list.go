package food

import (
	"StaffGate/internal/lib/api/response"
	"StaffGate/internal/lib/sl"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

func ListFoods(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("http.handlers.food"))

		foods, err := handler.ListFoods(r.Context())
		if err != nil {
			logger.Error("list foods", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("Failed to list foods"))
			return
		}

		render.JSON(w, r, foods)
	}
}
