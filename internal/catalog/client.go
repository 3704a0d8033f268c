// Package catalog talks to the third-party sneaker catalog API.
//
// Every call is a single synchronous GET. Transport failures, non-200
// responses and malformed bodies all come back as an error whose text is
// fit to show to a user; callers never need to inspect the cause.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// DefaultLimit is the page size used by the home and search pages.
	DefaultLimit = 10
	// DefaultReleaseFloor restricts searches to sneakers released on or after it.
	DefaultReleaseFloor = "2020-10-10"
)

var (
	// ErrMissingAPIKey is returned before any request when no key is configured.
	ErrMissingAPIKey = errors.New("RAPIDAPI_KEY is not set. Check your environment variables or configuration.")
	// ErrUnavailable is returned for any non-200 response.
	ErrUnavailable = errors.New("Error: Unable to retrieve data from the API")
	// ErrMalformed is returned when the body is not valid JSON.
	ErrMalformed = errors.New("Error: The API returned an unreadable response")
)

// Client issues requests against the catalog.
type Client struct {
	baseURL    string
	host       string
	apiKey     string
	httpClient *http.Client
}

// New creates a catalog client. A nil httpClient uses http.DefaultClient.
func New(baseURL, host, apiKey string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		host:       host,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// ListRecent fetches up to limit entries with no filter.
func (c *Client) ListRecent(ctx context.Context, limit int) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	return c.get(ctx, c.baseURL, q)
}

// Search fetches entries whose name matches name, released on or after releasedAfter (YYYY-MM-DD).
func (c *Client) Search(ctx context.Context, name string, limit int, releasedAfter string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("name", name)
	if releasedAfter != "" {
		q.Set("releaseDate", "gte:"+releasedAfter)
	}
	return c.get(ctx, c.baseURL, q)
}

// GetByID fetches a single entry.
func (c *Client) GetByID(ctx context.Context, sneakerID string) (json.RawMessage, error) {
	return c.get(ctx, c.baseURL+"/"+url.PathEscape(sneakerID), nil)
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("Error: %v", err)
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w (status %d)", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("Error: %v", err)
	}
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformed
	}
	return json.RawMessage(body), nil
}
