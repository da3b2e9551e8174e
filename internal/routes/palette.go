package routes

import (
	"color-splash/internal/isolation"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const defaultPaletteCount = 8

type PaletteRequest struct {
	Count int `validate:"gte=1,lte=64"`
}

type PaletteResponse struct {
	Colors []isolation.PaletteEntry `json:"colors"`
}

func Palette() http.HandlerFunc {
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

		count, err := formInt(r, "count", defaultPaletteCount)
		if err != nil {
			http.Error(w, "Invalid integer value for count", http.StatusBadRequest)
			return
		}

		request := PaletteRequest{
			Count: count,
		}
		if err := validate.Struct(request); err != nil {
			slog.Error(fmt.Sprintf("failed to validate request: %s", err))
			http.Error(w, "Invalid request parameters", http.StatusUnprocessableEntity)
			return
		}

		entries, err := isolation.Palette(img, request.Count)
		if err != nil {
			slog.Error(fmt.Sprintf("failed to build palette: %s", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(PaletteResponse{Colors: entries})
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
