package main

import (
	"bytes"
	"color-splash/internal/imaging"
	"color-splash/internal/isolation"
	"color-splash/internal/retry"
	"color-splash/internal/storage"
	"context"
	"crypto/sha256"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

type WorkerResult struct {
	Input        string  `json:"input"`
	SourceURL    string  `json:"sourceURL"`
	ResultURL    string  `json:"resultURL"`
	MatchedRatio float64 `json:"matchedRatio"`
}

type WorkerOutput struct {
	Reference string         `json:"reference"`
	Tolerance float64        `json:"tolerance"`
	Results   []WorkerResult `json:"results"`
}

type Worker struct {
	Client    *http.Client
	Storage   storage.Storage
	Isolator  *isolation.Isolator
	Reference isolation.Color
	Format    string
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
	var referenceHex string
	var tolerance float64
	var outputFormat string
	var storageBackend string
	var callbackURL string
	flag.StringVar(&referenceHex, "reference", envOrDefaultValue("REFERENCE", ""), "Reference color (#RRGGBB)")
	flag.Float64Var(&tolerance, "tolerance", envOrDefaultValue("TOLERANCE", isolation.DefaultTolerance), "Color distance tolerance")
	flag.StringVar(&outputFormat, "output-format", envOrDefaultValue("OUTPUT_FORMAT", "png"), "Output format (png or jpeg)")
	flag.StringVar(&storageBackend, "storage-backend", envOrDefaultValue("STORAGE_BACKEND", "file"), "Storage backend (file or s3)")
	flag.StringVar(&callbackURL, "callback-url", envOrDefaultValue("CALLBACK_URL", ""), "Callback URL to send results to")

	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		log.Fatalf("no input images specified")
	}

	if referenceHex == "" {
		log.Fatalf("reference color not specified")
	}
	referenceColor, err := isolation.ParseHex(referenceHex)
	if err != nil {
		log.Fatalf("failed to parse reference color: %v", err)
	}

	ctx := context.Background()

	var s storage.Storage
	switch storageBackend {
	case "file":
		s, err = storage.NewFileStorage(ctx, storage.FileConfig{
			Directory: envOrDefaultValue("DIRECTORY", "/tmp"),
		})
		if err != nil {
			log.Fatalf("failed to create file storage backend: %v", err)
		}
	case "s3":
		s, err = storage.NewS3Storage(ctx, storage.S3Config{
			Bucket: os.Getenv("S3_BUCKET"),
		})
		if err != nil {
			log.Fatalf("failed to create S3 storage backend: %v", err)
		}
	}

	client := &http.Client{
		Timeout: 30 * time.Second, // retry.Transport does not have perTryTimeout
		Transport: &retry.Transport{
			Base:       http.DefaultTransport,
			Strategy:   retry.NewExponentialBackOff(100*time.Millisecond, 3*time.Second, 3, nil),
			Conditions: retry.NewDefaultConditions(),
		},
	}

	worker := &Worker{
		Client:    client,
		Storage:   s,
		Isolator:  isolation.NewIsolator(tolerance),
		Reference: referenceColor,
		Format:    outputFormat,
	}

	result, err := worker.processAll(ctx, args)
	if err != nil {
		log.Fatalf("failed to process inputs: %v", err)
	}

	j, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("failed to marshal result: %v", err)
	}

	if callbackURL == "" {
		fmt.Println(string(j))
	} else {
		if err := callback(ctx, client, callbackURL, j); err != nil {
			log.Fatalf("failed to send callback: %v", err)
		}
	}
}

func (w *Worker) processAll(ctx context.Context, inputs []string) (*WorkerOutput, error) {
	output := &WorkerOutput{
		Reference: w.Reference.Hex(),
		Tolerance: w.Isolator.Tolerance(),
		Results:   make([]WorkerResult, len(inputs)),
	}

	eg, ctx := errgroup.WithContext(ctx)
	for i, input := range inputs {
		eg.Go(func() error {
			result, err := w.process(ctx, input)
			if err != nil {
				return xerrors.Errorf("failed to process %s: %w", input, err)
			}
			output.Results[i] = *result
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return output, nil
}

func (w *Worker) process(ctx context.Context, input string) (*WorkerResult, error) {
	data, err := w.fetch(ctx, input)
	if err != nil {
		return nil, xerrors.Errorf("failed to fetch input: %w", err)
	}

	img, err := imaging.Decode(data)
	if err != nil {
		return nil, xerrors.Errorf("failed to decode input: %w", err)
	}

	out, stats, err := w.Isolator.ApplyWithStats(img, w.Reference)
	if err != nil {
		return nil, xerrors.Errorf("failed to isolate color: %w", err)
	}

	encoded, err := imaging.Encode(out, w.Format)
	if err != nil {
		return nil, xerrors.Errorf("failed to encode result image: %w", err)
	}

	timestamp := time.Now().Format("20060102150405")

	h := sha256.New()
	h.Write([]byte(input + w.Reference.Hex()))
	hash := fmt.Sprintf("%x", h.Sum(nil))[:16]

	extension := w.Format
	if extension == "jpg" {
		extension = "jpeg"
	}
	baseKey := fmt.Sprintf("Isolation/%s/%s", hash, timestamp)

	result := &WorkerResult{
		Input:        input,
		MatchedRatio: stats.MatchedRatio,
	}
	{
		eg, ctx := errgroup.WithContext(ctx)

		eg.Go(func() error {
			url, err := w.Storage.Put(ctx, baseKey+".source", data)
			if err != nil {
				return xerrors.Errorf("failed to upload source image: %w", err)
			}
			result.SourceURL = url
			return nil
		})

		eg.Go(func() error {
			url, err := w.Storage.Put(ctx, baseKey+"."+extension, encoded)
			if err != nil {
				return xerrors.Errorf("failed to upload result image: %w", err)
			}
			result.ResultURL = url
			return nil
		})

		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (w *Worker) fetch(ctx context.Context, input string) ([]byte, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		request, err := http.NewRequestWithContext(ctx, "GET", input, nil)
		if err != nil {
			return nil, xerrors.Errorf("failed to create request: %w", err)
		}

		response, err := w.Client.Do(request)
		if err != nil {
			return nil, xerrors.Errorf("failed to download input: %w", err)
		}
		defer response.Body.Close()

		if response.StatusCode != http.StatusOK {
			return nil, xerrors.Errorf("unexpected status %d downloading %s", response.StatusCode, input)
		}

		return io.ReadAll(response.Body)
	}

	return os.ReadFile(input)
}

func callback(ctx context.Context, client *http.Client, callbackURL string, data []byte) error {
	request, err := http.NewRequestWithContext(ctx, "POST", callbackURL, bytes.NewReader(data))
	if err != nil {
		return xerrors.Errorf("failed to create request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := client.Do(request)
	if err != nil {
		return xerrors.Errorf("failed to send request: %w", err)
	}
	defer response.Body.Close()

	return nil
}
