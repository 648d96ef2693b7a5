/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Fetcher retrieves the raw bytes at a source location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// SourceFetcher fetches http(s) URLs with an HTTP client and reads file://
// URLs and bare paths from the local filesystem.
type SourceFetcher struct {
	// Client is used for http and https locations. nil means http.DefaultClient.
	Client *http.Client
}

// NewSourceFetcher returns a SourceFetcher using client for HTTP locations.
func NewSourceFetcher(client *http.Client) *SourceFetcher {
	return &SourceFetcher{Client: client}
}

// Fetch returns the full body of the resource at location.
func (f *SourceFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if location == "" {
		return nil, fmt.Errorf("empty source location")
	}

	u, err := url.Parse(location)
	if err != nil || u.Scheme == "" {
		return f.readFile(location)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return f.get(ctx, u.String())
	case "file":
		path := u.Path
		if path == "" {
			path = u.Opaque
		}
		return f.readFile(path)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q", u.Scheme)
	}
}

func (f *SourceFetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (f *SourceFetcher) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return data, nil
}
