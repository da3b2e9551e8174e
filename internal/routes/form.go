package routes

import (
	"color-splash/internal/imaging"
	"image"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"golang.org/x/xerrors"
)

const maxUploadBytes = 32 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

func readFormImage(r *http.Request) (*image.NRGBA, []byte, error) {
	file, _, err := r.FormFile("image")
	if err != nil {
		return nil, nil, xerrors.Errorf("failed to read image file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, xerrors.Errorf("failed to read image file: %w", err)
	}

	switch contentType := http.DetectContentType(data); contentType {
	case "image/png", "image/jpeg", "image/gif":
	default:
		return nil, nil, xerrors.Errorf("unsupported image type: %s", contentType)
	}

	img, err := imaging.Decode(data)
	if err != nil {
		return nil, nil, xerrors.Errorf("failed to decode image: %w", err)
	}

	return img, data, nil
}

func optionalFormInt(r *http.Request, key string) (*int, error) {
	value := r.FormValue(key)
	if value == "" {
		return nil, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, xerrors.Errorf("invalid integer %q for %s: %w", value, key, err)
	}

	return &i, nil
}

func formInt(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.FormValue(key)
	if value == "" {
		return defaultValue, nil
	}

	i, err := strconv.Atoi(value)
	if err != nil {
		return 0, xerrors.Errorf("invalid integer %q for %s: %w", value, key, err)
	}

	return i, nil
}

func formFloat(r *http.Request, key string, defaultValue float64) (float64, error) {
	value := r.FormValue(key)
	if value == "" {
		return defaultValue, nil
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, xerrors.Errorf("invalid number %q for %s: %w", value, key, err)
	}

	return f, nil
}
