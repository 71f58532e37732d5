package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
	"sync"
	"time"
)

// DefaultMaxBytes bounds how much of an upload is read
const DefaultMaxBytes int64 = 10 << 20

const s3Scheme = "s3://"

// Fetcher retrieves a remote object by bucket and key
type Fetcher interface {
	Fetch(ctx context.Context, bucket, key string, maxBytes int64) ([]byte, error)
}

// Loader reads documents from local files or object storage
type Loader struct {
	maxBytes  int64
	newRemote func(ctx context.Context) (Fetcher, error)

	mu     sync.Mutex // guards remote
	remote Fetcher
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithMaxBytes overrides the upload size limit
func WithMaxBytes(n int64) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}

// WithFetcher sets the object storage client used for s3:// locations
func WithFetcher(f Fetcher) LoaderOption {
	return func(l *Loader) {
		l.remote = f
	}
}

// WithS3 lazily builds an S3 client on first s3:// load
func WithS3(opts S3Options) LoaderOption {
	return func(l *Loader) {
		l.newRemote = func(ctx context.Context) (Fetcher, error) {
			return NewS3Source(ctx, opts)
		}
	}
}

// NewLoader creates a Loader
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{maxBytes: DefaultMaxBytes}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses the document at location, a file path or s3://bucket/key
func (l *Loader) Load(ctx context.Context, location string) (*Document, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: no document location given", ErrInput)
	}

	start := time.Now()

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(location, s3Scheme) {
		data, err = l.loadRemote(ctx, location)
	} else {
		data, err = l.loadFile(location)
	}
	if err != nil {
		return nil, err
	}

	doc, err := Parse(location, data)
	if err != nil {
		return nil, err
	}

	slog.Debug("document loaded",
		slog.String("location", location),
		slog.Int("bytes", len(data)),
		slog.Duration("elapsed", time.Since(start)))
	return doc, nil
}

func (l *Loader) loadFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: file not found: %s", ErrInput, name)
		}
		return nil, fmt.Errorf("%w: failed to open %s: %v", ErrInput, name, err)
	}
	defer f.Close()

	return ReadLimited(f, l.maxBytes, name)
}

func (l *Loader) loadRemote(ctx context.Context, location string) ([]byte, error) {
	bucket, key, err := ParseS3URI(location)
	if err != nil {
		return nil, err
	}

	remote, err := l.fetcher(ctx, location)
	if err != nil {
		return nil, err
	}

	data, err := remote.Fetch(ctx, bucket, key, l.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch %s: %v", ErrInput, location, err)
	}
	return data, nil
}

func (l *Loader) fetcher(ctx context.Context, location string) (Fetcher, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.remote != nil {
		return l.remote, nil
	}
	if l.newRemote == nil {
		return nil, fmt.Errorf("%w: object storage is not configured for %s", ErrInput, location)
	}

	remote, err := l.newRemote(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	l.remote = remote
	return remote, nil
}

// ParseS3URI splits s3://bucket/key into its parts
func ParseS3URI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: not an s3 uri: %s", ErrInput, uri)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w: s3 uri must be s3://bucket/key, got %s", ErrInput, uri)
	}
	return bucket, path.Clean(key), nil
}

// ReadLimited reads r fully. Input larger than maxBytes is an ErrInput, not truncated.
func ReadLimited(r io.Reader, maxBytes int64, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInput, name, err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInput, name, maxBytes)
	}
	return data, nil
}
