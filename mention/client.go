// Package mention is a client for the Mention social-listening API
// (https://api.mention.net/api). Each method issues exactly one
// authenticated HTTP request and returns the decoded JSON body as an
// opaque Value; the payload shapes belong to the remote service and are
// passed through without validation or transformation.
package mention

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"
)

const (
	// DefaultBaseURL is the production Mention API root.
	DefaultBaseURL = "https://api.mention.net/api"

	// DefaultTimeout bounds each request. The client never retries, so
	// without a deadline a hung connection would block the caller forever.
	DefaultTimeout = 30 * time.Second
)

// Client issues requests against the Mention API. It holds no mutable
// state, so a single Client is safe for concurrent use and independent
// Clients share nothing.
type Client struct {
	baseURL *url.URL
	// token is intentionally unexported. NEVER add String(), MarshalJSON(),
	// or any method that could expose this value in logs or serialized output.
	token      string
	timeout    time.Duration
	base       *http.Client
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, for test
// servers or proxies. Trailing slashes are trimmed.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if u, err := url.Parse(strings.TrimRight(raw, "/")); err == nil {
			c.baseURL = u
		}
	}
}

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient supplies the HTTP client used for transport. The bearer
// token is still attached to every request.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.base = hc }
}

// NewClient returns a Client that authenticates every request with the
// given access token as a bearer credential.
func NewClient(token string, opts ...Option) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("mention: access token must not be empty")
	}

	base, err := url.Parse(DefaultBaseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		baseURL: base,
		token:   token,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	ctx := context.Background()
	if c.base != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, c.base)
	}
	c.httpClient = oauth2.NewClient(ctx, ts)
	// oauth2.NewClient does not carry the base client's timeout over.
	c.httpClient.Timeout = c.timeout

	return c, nil
}

// AppData retrieves details about the authenticated application.
func (c *Client) AppData(ctx context.Context) (Value, error) {
	return c.do(ctx, appDataEndpoint, nil, nil, nil)
}

// do is the single request path every endpoint goes through: expand the
// path template, issue one round trip, and decode the body. There are
// no retries and no recovery; each failure maps to exactly one of
// TransportError, APIError, or DecodeError.
func (c *Client) do(ctx context.Context, ep endpoint, params map[string]string, query url.Values, body any) (Value, error) {
	path, err := ep.expand(params)
	if err != nil {
		return Value{}, err
	}

	full := c.baseURL.String() + path
	if len(query) > 0 {
		full += "?" + query.Encode()
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return Value{}, fmt.Errorf("mention: encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, ep.method, full, payload)
	if err != nil {
		return Value{}, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Value{}, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Value{}, &TransportError{Err: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Value{}, &APIError{StatusCode: resp.StatusCode, Body: raw}
	}

	var decoded json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Value{}, &DecodeError{Body: raw, Err: err}
	}
	return Value{raw: decoded}, nil
}
