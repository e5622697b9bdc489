package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"streacs/internal/store"
	"streacs/pkg/logger"
)

var (
	ErrStatus      = errors.New("unexpected status")
	ErrNoLocation  = errors.New("no location configured")
	ErrUnavailable = errors.New("source unavailable")
)

// Origin records where a dataset ended up coming from.
type Origin int

const (
	OriginMissing Origin = iota
	OriginRemote
	OriginCache
	OriginFallback
)

func (o Origin) String() string {
	switch o {
	case OriginRemote:
		return "remote"
	case OriginCache:
		return "cache"
	case OriginFallback:
		return "fallback"
	default:
		return "missing"
	}
}

func (o Origin) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Fetcher reads source documents from http(s) URLs or local files and keeps
// the last good body of each in a SourceCache.
type Fetcher struct {
	client *http.Client
	cache  store.SourceCache
	log    zerolog.Logger
}

// NewFetcher creates a fetcher. cache may be nil, which disables caching.
func NewFetcher(timeout time.Duration, cache store.SourceCache, log zerolog.Logger) *Fetcher {
	if cache == nil {
		cache = &store.NopStore{}
	}
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		cache:  cache,
		log:    logger.Component(log, "fetcher"),
	}
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch returns the raw bytes at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, ErrNoLocation
	}
	if !isRemote(location) {
		body, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", location, err)
		}
		return body, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", location, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("get %s: %w %d", location, ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", location, err)
	}
	return body, nil
}

// fetchSource fetches and decodes a named source. A body that fails to decode
// counts as a failed fetch. When the fetch fails the last cached body is tried.
func fetchSource[T any](ctx context.Context, f *Fetcher, name, location string) (T, Origin, error) {
	var zero T

	body, err := f.Fetch(ctx, location)
	if err == nil {
		var v T
		if err = json.Unmarshal(body, &v); err == nil {
			if cerr := f.cache.Put(ctx, name, body); cerr != nil {
				f.log.Warn().Err(cerr).Str("source", name).Msg("Failed to cache source")
			}
			return v, OriginRemote, nil
		}
		err = fmt.Errorf("decode %s: %w", name, err)
	}

	entry, ok, cerr := f.cache.Get(ctx, name)
	if cerr != nil {
		f.log.Warn().Err(cerr).Str("source", name).Msg("Failed to read cached source")
	}
	if ok {
		var v T
		if derr := json.Unmarshal(entry.Body, &v); derr == nil {
			f.log.Warn().
				Err(err).
				Str("source", name).
				Time("fetched_at", entry.FetchedAt).
				Msg("Fetch failed, using cached copy")
			return v, OriginCache, nil
		}
	}

	return zero, OriginMissing, fmt.Errorf("%w: %s: %w", ErrUnavailable, name, err)
}
