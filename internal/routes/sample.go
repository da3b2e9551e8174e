package routes

import (
	"color-splash/internal/isolation"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

type SampleRequest struct {
	X *int `validate:"required"`
	Y *int `validate:"required"`
}

type ColorResponse struct {
	Hex string `json:"hex"`
	isolation.Color
}

func newColorResponse(c isolation.Color) ColorResponse {
	return ColorResponse{
		Hex:   c.Hex(),
		Color: c,
	}
}

func Sample() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		img, _, err := readFormImage(r)
		if err != nil {
			slog.Error(fmt.Sprintf("failed to read image: %s", err))
			http.Error(w, "Invalid image file", http.StatusBadRequest)
			return
		}

		x, err := optionalFormInt(r, "x")
		if err != nil {
			http.Error(w, "Invalid integer value for x", http.StatusBadRequest)
			return
		}
		y, err := optionalFormInt(r, "y")
		if err != nil {
			http.Error(w, "Invalid integer value for y", http.StatusBadRequest)
			return
		}

		request := SampleRequest{
			X: x,
			Y: y,
		}
		if err := validate.Struct(request); err != nil {
			slog.Error(fmt.Sprintf("failed to validate request: %s", err))
			http.Error(w, "Invalid request parameters", http.StatusUnprocessableEntity)
			return
		}

		c, err := isolation.SampleAt(img, *request.X, *request.Y)
		if err != nil {
			if errors.Is(err, isolation.ErrOutOfBounds) {
				http.Error(w, "Sample coordinates outside image bounds", http.StatusUnprocessableEntity)
				return
			}
			slog.Error(fmt.Sprintf("failed to sample color: %s", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(newColorResponse(c))
		if err != nil {
			slog.Error(fmt.Sprintf("failed to marshal json: %s", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}
