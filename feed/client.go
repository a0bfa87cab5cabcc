package feed

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

// Format selects the decoder applied to a fetched body.
type Format string

const (
	FormatJSONAPI Format = "jsonapi"
	FormatGTFSRT  Format = "gtfsrt"
)

// JSON:API servers answer with application/vnd.api+json, which generic JSON
// handling does not recognise.
var jsonContentTypes = map[string]bool{
	"application/json":         true,
	"application/vnd.api+json": true,
	"text/json":                true,
}

// FetchError reports a network failure or a non-2xx response. A bad API key
// typically yields a well-formed error body, so it must never be decoded as
// "no trips".
type FetchError struct {
	URL        string
	StatusCode int // 0 for transport errors
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches and decodes a feed over HTTP.
type Client struct {
	httpClient *http.Client
	format     Format
	stopID     string
}

// NewClient creates a client. stopID is only used by the GTFS-RT decoder.
func NewClient(timeout time.Duration, format Format, stopID string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		format:     format,
		stopID:     stopID,
	}
}

// Fetch performs one GET request and decodes the body. The client never
// retries; that policy belongs to the caller.
func (c *Client) Fetch(ctx context.Context, url string, headers map[string]string) (*Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	if c.format == FormatJSONAPI {
		req.Header.Set("Accept", "application/vnd.api+json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Err: err}
	}
	return c.decode(resp.Header.Get("Content-Type"), body)
}

func (c *Client) decode(contentType string, body []byte) (*Document, error) {
	if c.format != FormatGTFSRT && contentType != "" {
		mt, _, err := mime.ParseMediaType(contentType)
		if err == nil && !jsonContentTypes[mt] {
			return nil, fmt.Errorf("unexpected content type %q for json:api feed", mt)
		}
	}
	return Decode(c.format, c.stopID, body)
}

// Decode parses body in the given format. An empty format means json:api.
func Decode(format Format, stopID string, body []byte) (*Document, error) {
	switch format {
	case FormatGTFSRT:
		return DecodeGTFSRT(body, stopID)
	case FormatJSONAPI, "":
		return DecodeJSONAPI(body)
	}
	return nil, fmt.Errorf("unknown feed format %q", format)
}
