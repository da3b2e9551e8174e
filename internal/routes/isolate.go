package routes

import (
	"color-splash/internal/imaging"
	"color-splash/internal/isolation"
	"color-splash/internal/storage"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type IsolateRequest struct {
	X         *int    `validate:"required_without=Reference"`
	Y         *int    `validate:"required_without=Reference"`
	Reference string  `validate:"omitempty,hexcolor"`
	Tolerance float64 `validate:"gte=0"`
	Scale     float64 `validate:"gte=0,lte=1"`
}

type IsolateResponse struct {
	Result    string          `json:"result"`
	ResultURL string          `json:"resultUrl,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Reference ColorResponse   `json:"reference"`
	Tolerance float64         `json:"tolerance"`
	Stats     isolation.Stats `json:"stats"`
}

func Isolate(storageClient storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}

		img, source, err := readFormImage(r)
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
		tolerance, err := formFloat(r, "tolerance", isolation.DefaultTolerance)
		if err != nil {
			http.Error(w, "Invalid number value for tolerance", http.StatusBadRequest)
			return
		}
		scale, err := formFloat(r, "scale", 0)
		if err != nil {
			http.Error(w, "Invalid number value for scale", http.StatusBadRequest)
			return
		}

		request := IsolateRequest{
			X:         x,
			Y:         y,
			Reference: r.FormValue("reference"),
			Tolerance: tolerance,
			Scale:     scale,
		}
		if err := validate.Struct(request); err != nil {
			slog.Error(fmt.Sprintf("failed to validate request: %s", err))
			http.Error(w, "Invalid request parameters", http.StatusUnprocessableEntity)
			return
		}

		var reference isolation.Color
		if request.Reference != "" {
			reference, err = isolation.ParseHex(request.Reference)
			if err != nil {
				slog.Error(fmt.Sprintf("failed to parse reference color: %s", err))
				http.Error(w, "Invalid reference color", http.StatusUnprocessableEntity)
				return
			}
		} else {
			reference, err = isolation.SampleAt(img, *request.X, *request.Y)
			if err != nil {
				if errors.Is(err, isolation.ErrOutOfBounds) {
					http.Error(w, "Sample coordinates outside image bounds", http.StatusUnprocessableEntity)
					return
				}
				slog.Error(fmt.Sprintf("failed to sample color: %s", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}
		}

		out, stats, err := isolation.NewIsolator(request.Tolerance).ApplyWithStats(img, reference)
		if err != nil {
			slog.Error(fmt.Sprintf("failed to isolate color: %s", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		out = imaging.Scale(out, request.Scale)

		data, err := imaging.EncodePNG(out)
		if err != nil {
			slog.Error(fmt.Sprintf("failed to encode result image: %s", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		response := IsolateResponse{
			Result:    base64.StdEncoding.EncodeToString(data),
			Width:     out.Bounds().Dx(),
			Height:    out.Bounds().Dy(),
			Reference: newColorResponse(reference),
			Tolerance: request.Tolerance,
			Stats:     stats,
		}

		timestamp := time.Now().Format("20060102150405")
		h := sha256.New()
		h.Write(source)
		hash := fmt.Sprintf("%x", h.Sum(nil))[:16]
		key := fmt.Sprintf("Isolation/%s/%s.png", hash, timestamp)
		if url, err := storageClient.Put(r.Context(), key, data); err != nil {
			slog.Error(fmt.Sprintf("failed to store result image: %s", err))
		} else {
			response.ResultURL = url
		}

		b, err := json.Marshal(response)
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
