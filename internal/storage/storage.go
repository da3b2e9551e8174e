package storage

import (
	"context"
	"time"
)

// Artifact describes one stored object.
type Artifact struct {
	Key          string    `json:"key"`
	URL          string    `json:"url"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

type Storage interface {
	// Put stores data with the given key and returns the storage URL
	Put(ctx context.Context, key string, data []byte) (string, error)
	// Get retrieves data from the given storage URL
	Get(ctx context.Context, url string) ([]byte, error)
	// List enumerates stored objects whose key starts with prefix
	List(ctx context.Context, prefix string) ([]Artifact, error)
}
