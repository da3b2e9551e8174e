package main

import (
	"color-splash/internal/isolation"
	"color-splash/internal/runnable"
	"color-splash/internal/spool"
	"color-splash/internal/storage"
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

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
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env file: %v", err)
	}

	var storageBackend string
	flag.StringVar(&storageBackend, "storage-backend", envOrDefaultValue("STORAGE_BACKEND", "file"), "Storage backend (file or s3)")
	flag.Parse()

	ctx := context.Background()

	var s storage.Storage
	var err error
	switch storageBackend {
	case "file":
		s, err = storage.NewFileStorage(ctx, storage.FileConfig{
			Directory: envOrDefaultValue("DIRECTORY", "/tmp"),
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

	eg, ctx := errgroup.WithContext(ctx)

	if directory := os.Getenv("SPOOL_DIRECTORY"); directory != "" {
		spooler, err := spool.NewSpooler(ctx, spool.Config{
			Directory: directory,
			Schedule:  envOrDefaultValue("SPOOL_SCHEDULE", "* * * * *"),
			Reference: os.Getenv("SPOOL_REFERENCE"),
			Tolerance: envOrDefaultValue("SPOOL_TOLERANCE", isolation.DefaultTolerance),
		}, s)
		if err != nil {
			log.Fatalf("Failed to create spooler: %v", err)
		}
		eg.Go(func() error {
			return spooler.Start(ctx)
		})
	}

	eg.Go(func() error {
		return runnable.NewServer(s).Start(ctx)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
