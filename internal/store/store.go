package store

import (
	"context"
	"time"
)

// SourceCache keeps the last successfully fetched body of each named source
// so a later failed fetch can fall back to it.
type SourceCache interface {
	Put(ctx context.Context, source string, body []byte) error
	Get(ctx context.Context, source string) (Entry, bool, error)
	Close() error
}

type Entry struct {
	Body      []byte
	FetchedAt time.Time
}

// NopStore is used when caching is disabled.
type NopStore struct{}

func (s *NopStore) Put(ctx context.Context, source string, body []byte) error {
	_ = ctx
	_ = source
	_ = body
	return nil
}

func (s *NopStore) Get(ctx context.Context, source string) (Entry, bool, error) {
	_ = ctx
	_ = source
	return Entry{}, false, nil
}

func (s *NopStore) Close() error {
	return nil
}
