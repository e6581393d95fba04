package remoteindex

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"catalogweb/internal/catalog"
)

// Client fetches the remote index document.
type Client struct {
	httpClient *http.Client
	userAgent  string
	indexURL   *url.URL
}

// NewClient builds a client for baseURL + indexPath. A zero timeout leaves
// the transport default in place.
func NewClient(baseURL, indexPath, userAgent string, timeout time.Duration) (*Client, error) {
	indexURL, err := ResolveIndexURL(baseURL, indexPath)
	if err != nil {
		return nil, err
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  userAgent,
		indexURL:   indexURL,
	}, nil
}

// ResolveIndexURL resolves indexPath against baseURL.
func ResolveIndexURL(baseURL, indexPath string) (*url.URL, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("parse base url: %q is not absolute", baseURL)
	}
	ref, err := url.Parse(indexPath)
	if err != nil {
		return nil, fmt.Errorf("parse index path: %w", err)
	}
	return base.ResolveReference(ref), nil
}

func (c *Client) IndexURL() string {
	return c.indexURL.String()
}

// FetchIndex downloads and decodes the index document with a single attempt,
// bypassing caches.
func (c *Client) FetchIndex(ctx context.Context) ([]catalog.Entry, error) {
	raw, err := c.RawGet(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeIndex(raw)
}

// RawGet returns the unparsed body of the index document.
func (c *Client) RawGet(ctx context.Context) ([]byte, error) {
	u := c.indexURL.String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{URL: u, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: u, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

// DecodeIndex repairs trailing commas and decodes the entry list. The
// document must be a JSON array.
func DecodeIndex(raw []byte) ([]catalog.Entry, error) {
	cleaned := RepairTrailingCommas(raw)

	var entries []catalog.Entry
	if err := json.Unmarshal(cleaned, &entries); err != nil {
		return nil, &ParseError{Err: err}
	}
	if entries == nil {
		return nil, &ParseError{Err: errors.New("index document is null")}
	}
	return entries, nil
}
