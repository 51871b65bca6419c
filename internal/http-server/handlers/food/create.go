package food

import (
	"StaffGate/entity"
	"StaffGate/internal/lib/api/response"
	"StaffGate/internal/lib/sl"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"
)

const maxUploadSize = 10 << 20

// CreateFood accepts a multipart form with name, price, quantity and an
// image file, then redirects back to the listing.
func CreateFood(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(sl.Module("http.handlers.food"))

		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			logger.Error("parse form", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid form data"))
			return
		}

		price, err := strconv.ParseFloat(r.FormValue("price"), 64)
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid price"))
			return
		}
		quantity, err := strconv.Atoi(r.FormValue("quantity"))
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Invalid quantity"))
			return
		}

		image, _, err := r.FormFile("image")
		if err != nil {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Image is required"))
			return
		}
		defer image.Close()

		item := &entity.Food{
			Name:     r.FormValue("name"),
			Price:    price,
			Quantity: quantity,
		}

		if err := handler.CreateFood(r.Context(), item, image); err != nil {
			logger.Error("create food", sl.Err(err))
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, response.Error("Failed to create food"))
			return
		}

		http.Redirect(w, r, "/api/v1/foods", http.StatusSeeOther)
	}
}
