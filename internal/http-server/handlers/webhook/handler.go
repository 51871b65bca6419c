package webhook

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/api/response"
	"StaffGate/internal/lib/sl"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

// Handle receives provider webhook updates. The provider must always
// see a well-formed acknowledgment: user-level problems are handled in
// the services and still acknowledged as success, only unexpected
// failures produce the error status.
func Handle(log *slog.Logger, registration Registration, approval Approval) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.webhook"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var update entity.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			logger.Error("failed to decode update", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Response{Status: response.StatusError})
			return
		}

		var err error
		switch {
		case update.CallbackQuery != nil:
			err = approval.HandleCallback(r.Context(), update.CallbackQuery)
		case update.Message != nil:
			err = registration.HandleMessage(r.Context(), update.Message)
		default:
			// Update types the bot does not consume are acknowledged
			// and dropped.
			logger.Debug("ignoring update without message or callback",
				slog.Int64("update_id", update.UpdateID),
			)
		}

		if err != nil {
			logger.Error("webhook processing failed",
				slog.Int64("update_id", update.UpdateID),
				sl.Err(err),
			)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Response{Status: response.StatusError})
			return
		}

		render.JSON(w, r, response.Response{Status: response.StatusSuccess})
	}
}
