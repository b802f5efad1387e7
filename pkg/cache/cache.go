package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"supremes/pkg/document"
	"supremes/pkg/logger"

	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the JSON document behind a URL. It is the seam between
// the entity builders and the concrete cache/network machinery, so tests
// can substitute a canned-document double.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string) (document.Document, error)
}

// HTTPClient is the network collaborator: fetch raw bytes for a URL.
type HTTPClient interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Key derives the cache key for a URL: the hex SHA-1 of the URL string.
// The same URL always maps to the same key; distinct URLs collide only
// with negligible probability.
func Key(url string) string {
	sum := sha1.Sum([]byte(url))
	return hex.EncodeToString(sum[:])
}

// Cache implements Fetcher with get-or-fetch semantics over a Store.
// Entries are never deleted or expired; staleness is the caller's problem,
// opted into via Overwrite.
type Cache struct {
	store     Store
	client    HTTPClient
	overwrite bool

	group singleflight.Group
}

// NewCacheParams contains configuration for creating a Cache.
type NewCacheParams struct {
	Store  Store
	Client HTTPClient

	// Overwrite refetches and rewrites entries even when they exist.
	Overwrite bool
}

// NewCache creates a get-or-fetch cache over the given store and network
// collaborator.
func NewCache(params NewCacheParams) *Cache {
	return &Cache{
		store:     params.Store,
		client:    params.Client,
		overwrite: params.Overwrite,
	}
}

// FetchJSON returns the document for a URL, reading the store when an entry
// exists and falling back to the network otherwise. On a miss the parsed
// document is reserialized and persisted under <sha1(url)>.json before it
// is returned. Duplicate in-flight fetches for the same key are collapsed.
func (c *Cache) FetchJSON(ctx context.Context, url string) (document.Document, error) {
	name := Key(url) + ".json"
	result, err, _ := c.group.Do(name, func() (any, error) {
		return c.fetch(ctx, url, name)
	})
	if err != nil {
		return document.Document{}, err
	}
	return result.(document.Document), nil
}

func (c *Cache) fetch(ctx context.Context, url string, name string) (document.Document, error) {
	if !c.overwrite {
		exists, err := c.store.Exists(ctx, name)
		if err != nil {
			return document.Document{}, fmt.Errorf("check cache entry %s: %w", name, err)
		}
		if exists {
			data, err := c.store.Get(ctx, name)
			if err != nil {
				return document.Document{}, fmt.Errorf("read cache entry %s: %w", name, err)
			}
			doc, err := document.Parse(data)
			if err != nil {
				return document.Document{}, fmt.Errorf("parse cached document %s: %w", name, err)
			}
			logger.Info("Loading from cache", "url", url, "key", name)
			return doc, nil
		}
	}

	logger.Info("Loading from web", "url", url, "key", name)
	body, err := c.client.Get(ctx, url)
	if err != nil {
		return document.Document{}, err
	}
	doc, err := document.Parse(body)
	if err != nil {
		return document.Document{}, fmt.Errorf("parse response for %s: %w", url, err)
	}
	data, err := doc.Encode()
	if err != nil {
		return document.Document{}, err
	}
	if err := c.store.Put(ctx, name, data); err != nil {
		return document.Document{}, fmt.Errorf("write cache entry %s: %w", name, err)
	}
	return doc, nil
}
