package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// BlobClient reads resources from a storage container over HTTPS using a
// shared-access token appended as the query string.
type BlobClient struct {
	accountURL string
	container  string
	sasToken   string
	http       *http.Client
}

// NewBlobClient creates a BlobClient. A nil httpClient uses http.DefaultClient.
func NewBlobClient(accountURL, container, sasToken string, httpClient *http.Client) *BlobClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BlobClient{
		accountURL: strings.TrimRight(accountURL, "/"),
		container:  strings.Trim(container, "/"),
		sasToken:   strings.TrimPrefix(sasToken, "?"),
		http:       httpClient,
	}
}

// URL returns the request URL for a resource path.
func (c *BlobClient) URL(path string) string {
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	u := c.accountURL + "/" + c.container + "/" + strings.Join(segments, "/")
	if c.sasToken != "" {
		u += "?" + c.sasToken
	}
	return u
}

// Fetch downloads a resource. A 404 maps to ErrNotFound; other non-2xx
// responses return a *StatusError.
func (c *BlobClient) Fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(path), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Path: path, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
