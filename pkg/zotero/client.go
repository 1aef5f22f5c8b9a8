// Package zotero provides a typed client for the Zotero Web API (v3) and the
// local API served by a running Zotero desktop instance.
//
// The client covers the three read operations the exporter needs: listing a
// library's collections, listing the items of one collection, and fetching a
// single item. Responses are requested as a single page with the API's
// maximum page size; libraries beyond that are out of scope.
package zotero

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	zerrors "github.com/zogtools/zog/pkg/errors"
	"github.com/zogtools/zog/pkg/httputil"
)

const (
	// BaseURL is the Zotero Web API endpoint.
	BaseURL = "https://api.zotero.org"

	// LocalBaseURL is the API endpoint of a running Zotero desktop client.
	LocalBaseURL = "http://localhost:23119/api"

	apiVersion = "3"

	// pageLimit is the API's maximum page size. Pagination is not
	// implemented; collections larger than this are truncated.
	pageLimit = 100
)

// Library types accepted by the API.
const (
	LibraryUser  = "user"
	LibraryGroup = "group"
)

// Store is the read-only capability the export pipeline consumes. Any
// backing implementation with these three operations is interchangeable:
// the remote Web API, the local desktop API, or a test fake.
type Store interface {
	// Collections lists every collection in the library.
	Collections(ctx context.Context) ([]Collection, error)
	// CollectionItems lists the items contained in the given collection.
	CollectionItems(ctx context.Context, key string) ([]Item, error)
	// Item fetches a single item by key.
	Item(ctx context.Context, key string) (*Item, error)
}

// Client talks to one Zotero library. It implements [Store].
type Client struct {
	baseURL    string
	prefix     string
	apiKey     string
	local      bool
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithAPIKey sets the API key used for Web API authentication.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithLibraryType selects between a user and a group library.
// The default is a user library.
func WithLibraryType(t string) Option {
	return func(c *Client) {
		if t == LibraryGroup {
			c.prefix = "/groups"
		} else {
			c.prefix = "/users"
		}
	}
}

// WithLocal targets the local API of a running Zotero desktop client
// instead of the Web API. No API key is needed in this mode.
func WithLocal() Option {
	return func(c *Client) {
		c.local = true
		c.baseURL = LocalBaseURL
	}
}

// WithBaseURL overrides the API endpoint. Mainly useful in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the library with the given ID.
func New(libraryID string, opts ...Option) (*Client, error) {
	if libraryID == "" {
		return nil, zerrors.New(zerrors.ErrCodeInvalidInput, "library ID must not be empty")
	}
	c := &Client{
		baseURL:    BaseURL,
		prefix:     "/users",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	c.prefix = fmt.Sprintf("%s/%s", c.prefix, libraryID)
	return c, nil
}

// Collections lists every collection in the library, top-level and nested.
func (c *Client) Collections(ctx context.Context) ([]Collection, error) {
	var out []Collection
	if err := c.get(ctx, "/collections", &out); err != nil {
		return nil, coded(err, "list collections")
	}
	return out, nil
}

// CollectionItems lists the items contained in the collection with the
// given key.
func (c *Client) CollectionItems(ctx context.Context, key string) ([]Item, error) {
	var out []Item
	if err := c.get(ctx, "/collections/"+url.PathEscape(key)+"/items", &out); err != nil {
		if zerrors.Is(err, zerrors.ErrCodeNotFound) {
			return nil, zerrors.New(zerrors.ErrCodeCollectionNotFound, "collection %s does not exist", key)
		}
		return nil, coded(err, "list items of collection %s", key)
	}
	return out, nil
}

// Item fetches a single item by key.
func (c *Client) Item(ctx context.Context, key string) (*Item, error) {
	var out Item
	if err := c.get(ctx, "/items/"+url.PathEscape(key), &out); err != nil {
		if zerrors.Is(err, zerrors.ErrCodeNotFound) {
			return nil, zerrors.New(zerrors.ErrCodeItemNotFound, "item %s does not exist", key)
		}
		return nil, coded(err, "fetch item %s", key)
	}
	return &out, nil
}

// coded passes through errors that already carry a code and wraps anything
// else (transport failures, decode errors) as NETWORK_ERROR.
func coded(err error, format string, args ...any) error {
	if zerrors.GetCode(err) != "" {
		return err
	}
	return zerrors.Wrap(zerrors.ErrCodeNetwork, err, format, args...)
}

// get performs a GET against the library-scoped path and decodes the JSON
// response into v. Transient failures are retried with backoff.
func (c *Client) get(ctx context.Context, path string, v any) error {
	u := fmt.Sprintf("%s%s%s?limit=%d", c.baseURL, c.prefix, path, pageLimit)
	return httputil.RetryWithBackoff(ctx, func() error {
		return c.doRequest(ctx, u, v)
	})
}

func (c *Client) doRequest(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Zotero-API-Version", apiVersion)
	if !c.local && c.apiKey != "" {
		req.Header.Set("Zotero-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &httputil.RetryableError{Err: zerrors.Wrap(zerrors.ErrCodeNetwork, err, "request %s", u)}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return zerrors.New(zerrors.ErrCodeNotFound, "resource not found")
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return zerrors.New(zerrors.ErrCodeUnauthorized, "access denied (status %d): check the API key and library ID", code)
	case code >= 500:
		return &httputil.RetryableError{Err: zerrors.New(zerrors.ErrCodeNetwork, "server error: status %d", code)}
	default:
		return zerrors.New(zerrors.ErrCodeNetwork, "unexpected status %d", code)
	}
}
