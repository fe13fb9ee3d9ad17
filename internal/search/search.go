// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries external lookup sources (PubMed, CrossRef, RSS
// news feeds, Google Custom Search) and returns results in the shared
// pkg/types shapes. Backends are best-effort: callers treat failures as
// empty result sets, so a dead source never blocks content generation.
package search

import (
	"context"
	"net/http"
	"time"

	"github.com/mkweon/content-engine/internal/httputil"
)

const (
	// defaultMaxResults bounds a lookup when the caller passes no limit.
	defaultMaxResults = 10

	defaultUserAgent = "content-engine/1.0 (mailto:contact@example.com)"
)

var defaultClient = &http.Client{Timeout: 30 * time.Second}

func orDefaultClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return defaultClient
}

// get issues a GET with the shared User-Agent, retrying on HTTP 429.
func get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	return httputil.DoWithRetry(ctx, orDefaultClient(client), req, 0)
}
