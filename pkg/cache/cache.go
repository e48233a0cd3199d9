// Package cache stores tracker responses between runs.
//
// Caching is opt-in: the CLI selects [NullCache] unless a positive TTL is
// requested, so the default run always works on a fresh snapshot. Two
// persistent backends exist:
//
//   - [FileCache]: JSON entries under ~/.cache/ticketgraph/
//   - [RedisCache]: a shared Redis instance, useful when several people
//     render the same project board
//
// Keys come from a [Keyer] so the same query against two tracker sites never
// collides:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "https://acme.atlassian.net")
//	key := keyer.SearchKey(cache.SearchKeyOpts{JQL: jql, StartAt: 0, MaxResults: 100})
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL.
type Cache interface {
	// Get returns the stored bytes and whether the key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// SearchKeyOpts identifies one page of an issue search.
type SearchKeyOpts struct {
	JQL        string
	Fields     string
	StartAt    int
	MaxResults int
}

// Keyer builds cache keys.
type Keyer interface {
	SearchKey(opts SearchKeyOpts) string
	FieldsKey() string
}

// DefaultKeyer hashes request parameters into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key generator.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// SearchKey returns the key for one search page.
func (DefaultKeyer) SearchKey(opts SearchKeyOpts) string {
	return hashKey("search", opts.JQL, opts.Fields, opts.StartAt, opts.MaxResults)
}

// FieldsKey returns the key for the field catalogue.
func (DefaultKeyer) FieldsKey() string {
	return "fields:all"
}
