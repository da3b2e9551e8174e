package spool

import (
	"color-splash/internal/imaging"
	"color-splash/internal/isolation"
	"color-splash/internal/storage"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/xerrors"
)

const modTimeLayout = "20060102150405"

type Config struct {
	Directory string
	Schedule  string
	Reference string
	Tolerance float64
}

// Spooler periodically scans a directory for images and stores an
// isolated rendition of every new or modified file. Processed inputs are
// tracked by name and modification time; the tracking state is primed
// from storage so a restart does not reprocess old inputs.
type Spooler struct {
	directory     string
	schedule      cron.Schedule
	reference     isolation.Color
	isolator      *isolation.Isolator
	storageClient storage.Storage
	seen          map[string]time.Time
}

func NewSpooler(ctx context.Context, config Config, storageClient storage.Storage) (*Spooler, error) {
	schedule, err := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow).Parse(config.Schedule)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse schedule: %w", err)
	}

	reference, err := isolation.ParseHex(config.Reference)
	if err != nil {
		return nil, xerrors.Errorf("failed to parse reference color: %w", err)
	}

	s := &Spooler{
		directory:     config.Directory,
		schedule:      schedule,
		reference:     reference,
		isolator:      isolation.NewIsolator(config.Tolerance),
		storageClient: storageClient,
		seen:          make(map[string]time.Time),
	}

	if err := s.prime(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Spooler) Start(ctx context.Context) error {
	for {
		timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}

		if err := s.Scan(ctx); err != nil {
			slog.Error(fmt.Sprintf("failed to scan spool directory: %s", err))
		}
	}
}

func (s *Spooler) Scan(ctx context.Context) error {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return xerrors.Errorf("failed to read spool directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif":
		default:
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return xerrors.Errorf("failed to stat %s: %w", entry.Name(), err)
		}
		modTime := info.ModTime().UTC().Truncate(time.Second)
		if seenAt, ok := s.seen[entry.Name()]; ok && !modTime.After(seenAt) {
			continue
		}
		s.seen[entry.Name()] = modTime

		name := entry.Name()
		eg.Go(func() error {
			if err := s.process(ctx, name, modTime); err != nil {
				return xerrors.Errorf("failed to process %s: %w", name, err)
			}
			return nil
		})
	}

	return eg.Wait()
}

func (s *Spooler) process(ctx context.Context, name string, modTime time.Time) error {
	data, err := os.ReadFile(filepath.Join(s.directory, name))
	if err != nil {
		return xerrors.Errorf("failed to read input file: %w", err)
	}

	img, err := imaging.Decode(data)
	if err != nil {
		return xerrors.Errorf("failed to decode input file: %w", err)
	}

	out, stats, err := s.isolator.ApplyWithStats(img, s.reference)
	if err != nil {
		return xerrors.Errorf("failed to isolate color: %w", err)
	}

	encoded, err := imaging.EncodePNG(out)
	if err != nil {
		return xerrors.Errorf("failed to encode result image: %w", err)
	}

	key := fmt.Sprintf("Spool/%s/%s/%s.png", name, modTime.Format(modTimeLayout), uuid.New().String())
	url, err := s.storageClient.Put(ctx, key, encoded)
	if err != nil {
		return xerrors.Errorf("failed to store result image: %w", err)
	}

	slog.Info("processed spool image", "name", name, "url", url, "matchedRatio", stats.MatchedRatio)
	return nil
}

// prime rebuilds the name+modtime tracking state from stored result keys.
func (s *Spooler) prime(ctx context.Context) error {
	artifacts, err := s.storageClient.List(ctx, "Spool/")
	if err != nil {
		return xerrors.Errorf("failed to list stored results: %w", err)
	}

	for _, artifact := range artifacts {
		parts := strings.Split(artifact.Key, "/")
		if len(parts) != 4 {
			continue
		}
		modTime, err := time.Parse(modTimeLayout, parts[2])
		if err != nil {
			continue
		}
		if seenAt, ok := s.seen[parts[1]]; !ok || modTime.After(seenAt) {
			s.seen[parts[1]] = modTime
		}
	}

	return nil
}
