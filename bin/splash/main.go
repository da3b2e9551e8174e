package main

import (
	"color-splash/internal/imaging"
	"color-splash/internal/isolation"
	"color-splash/internal/storage"
	"context"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
)

type SplashOutput struct {
	ResultPath   string  `json:"resultPath"`
	Reference    string  `json:"reference"`
	Tolerance    float64 `json:"tolerance"`
	MatchedRatio float64 `json:"matchedRatio"`
}

func envOrDefaultValue[T any](key string, defaultValue T) T {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}

	switch any(defaultValue).(type) {
	case string:
		return any(value).(T)
	case int:
		if intValue, err := strconv.Atoi(value); err == nil {
			return any(intValue).(T)
		}
	case int64:
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return any(intValue).(T)
		}
	case uint:
		if uintValue, err := strconv.ParseUint(value, 10, 0); err == nil {
			return any(uint(uintValue)).(T)
		}
	case uint64:
		if uintValue, err := strconv.ParseUint(value, 10, 64); err == nil {
			return any(uintValue).(T)
		}
	case float64:
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return any(floatValue).(T)
		}
	case bool:
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return any(boolValue).(T)
		}
	case time.Duration:
		if durationValue, err := time.ParseDuration(value); err == nil {
			return any(durationValue).(T)
		}
	}

	return defaultValue
}

func main() {
	var x int
	var y int
	var referenceHex string
	var tolerance float64
	var outputFormat string
	var storageBackend string
	var directory string
	flag.IntVar(&x, "x", envOrDefaultValue("X", -1), "Sample X coordinate")
	flag.IntVar(&y, "y", envOrDefaultValue("Y", -1), "Sample Y coordinate")
	flag.StringVar(&referenceHex, "reference", envOrDefaultValue("REFERENCE", ""), "Reference color (#RRGGBB)")
	flag.Float64Var(&tolerance, "tolerance", envOrDefaultValue("TOLERANCE", isolation.DefaultTolerance), "Color distance tolerance")
	flag.StringVar(&outputFormat, "output-format", envOrDefaultValue("OUTPUT_FORMAT", "png"), "Output format (png or jpeg)")
	flag.StringVar(&storageBackend, "storage-backend", envOrDefaultValue("STORAGE_BACKEND", "file"), "Storage backend (file or s3)")
	flag.StringVar(&directory, "directory", envOrDefaultValue("DIRECTORY", "/tmp"), "Output directory")

	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		log.Fatalf("input image not specified")
	}
	inputPath := args[0]

	ctx := context.Background()

	var s storage.Storage
	var err error
	switch storageBackend {
	case "file":
		s, err = storage.NewFileStorage(ctx, storage.FileConfig{
			Directory: directory,
		})
		if err != nil {
			log.Fatalf("Failed to create file storage backend: %v", err)
		}
	case "s3":
		s, err = storage.NewS3Storage(ctx, storage.S3Config{
			Bucket: os.Getenv("S3_BUCKET"),
		})
		if err != nil {
			log.Fatalf("Failed to create S3 storage backend: %v", err)
		}
	default:
		log.Fatalf("Unknown storage backend: %s", storageBackend)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("Failed to read input image: %v", err)
	}

	img, err := imaging.Decode(data)
	if err != nil {
		log.Fatalf("Failed to decode input image: %v", err)
	}

	reference := isolation.NoReference()
	switch {
	case referenceHex != "":
		c, err := isolation.ParseHex(referenceHex)
		if err != nil {
			log.Fatalf("Failed to parse reference color: %v", err)
		}
		reference = isolation.ReferenceTo(c)
	case x >= 0 && y >= 0:
		c, err := isolation.SampleAt(img, x, y)
		if err != nil {
			log.Fatalf("Failed to sample color at (%d, %d): %v", x, y, err)
		}
		reference = isolation.ReferenceTo(c)
	}

	referenceColor, err := reference.Resolve()
	if err != nil {
		log.Fatalf("Neither -x/-y nor -reference specified")
	}

	out, stats, err := isolation.NewIsolator(tolerance).ApplyWithStats(img, referenceColor)
	if err != nil {
		log.Fatalf("Failed to isolate color: %v", err)
	}

	encoded, err := imaging.Encode(out, outputFormat)
	if err != nil {
		log.Fatalf("Failed to encode result image: %v", err)
	}

	timestamp := time.Now().Format("20060102150405")

	h := sha256.New()
	h.Write([]byte(inputPath + referenceColor.Hex()))
	hash := fmt.Sprintf("%x", h.Sum(nil))[:16]

	extension := outputFormat
	if extension == "jpg" {
		extension = "jpeg"
	}
	key := fmt.Sprintf("Isolation/%s/%s.%s", hash, timestamp, extension)
	resultPath, err := s.Put(ctx, key, encoded)
	if err != nil {
		log.Fatalf("Failed to save result image: %v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(SplashOutput{
		ResultPath:   resultPath,
		Reference:    referenceColor.Hex(),
		Tolerance:    tolerance,
		MatchedRatio: stats.MatchedRatio,
	}); err != nil {
		log.Fatalf("Failed to encode result: %v", err)
	}
}
