package mention

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient returns a client pointed at a test server.
func newTestClient(t *testing.T, token string, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{WithBaseURL(srv.URL)}, opts...)
	c, err := NewClient(token, opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestQueryReturnsDecodedJSON(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"title": "X"}`))
	})

	v, err := c.AppData(context.Background())
	if err != nil {
		t.Fatalf("AppData: %v", err)
	}

	title, ok := v.Get("title")
	if !ok {
		t.Fatal("expected object with title key")
	}
	if s, _ := title.Text(); s != "X" {
		t.Fatalf("expected title %q, got %q", "X", s)
	}
}

func TestNonSuccessStatusReturnsAPIError(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "no such alert"}`))
	})

	_, err := c.Alert(context.Background(), "acct", "42")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", apiErr.StatusCode)
	}
	if !strings.Contains(string(apiErr.Body), "no such alert") {
		t.Fatalf("expected raw body attached, got %q", apiErr.Body)
	}
}

func TestNonJSONBodyReturnsDecodeError(t *testing.T) {
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>definitely not json</html>"))
	})

	_, err := c.Alerts(context.Background(), "acct")
	var decErr *DecodeError
	if !errors.As(err, &decErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	if !strings.Contains(string(decErr.Body), "definitely not json") {
		t.Fatalf("expected raw body attached, got %q", decErr.Body)
	}
}

func TestTimeoutReturnsTransportErrorWithoutRetry(t *testing.T) {
	var requests int32
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		time.Sleep(300 * time.Millisecond)
	}, WithTimeout(50*time.Millisecond))

	_, err := c.Alerts(context.Background(), "acct")
	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %T: %v", err, err)
	}
	// Let the in-flight handler finish before counting.
	time.Sleep(350 * time.Millisecond)
	if n := atomic.LoadInt32(&requests); n != 1 {
		t.Fatalf("expected exactly 1 request (no retries), got %d", n)
	}
}

func TestClientsDoNotShareTokens(t *testing.T) {
	auths := make(chan string, 2)
	handler := func(w http.ResponseWriter, r *http.Request) {
		auths <- r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	}

	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)

	first, err := NewClient("token-one", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	second, err := NewClient("token-two", WithBaseURL(srv.URL))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := first.AppData(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := second.AppData(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := <-auths; got != "Bearer token-one" {
		t.Fatalf("first client sent %q", got)
	}
	if got := <-auths; got != "Bearer token-two" {
		t.Fatalf("second client sent %q", got)
	}
}

func TestRequestShapes(t *testing.T) {
	type capture struct {
		method string
		path   string
		query  string
	}

	tests := []struct {
		name string
		call func(c *Client) error
		want capture
	}{
		{
			name: "app data",
			call: func(c *Client) error {
				_, err := c.AppData(context.Background())
				return err
			},
			want: capture{method: http.MethodGet, path: "/app/data"},
		},
		{
			name: "list alerts",
			call: func(c *Client) error {
				_, err := c.Alerts(context.Background(), "923891")
				return err
			},
			want: capture{method: http.MethodGet, path: "/accounts/923891/alerts"},
		},
		{
			name: "get alert",
			call: func(c *Client) error {
				_, err := c.Alert(context.Background(), "923891", "1826208")
				return err
			},
			want: capture{method: http.MethodGet, path: "/accounts/923891/alerts/1826208"},
		},
		{
			name: "create alert",
			call: func(c *Client) error {
				_, err := c.CreateAlert(context.Background(), "923891", AlertRequest{Name: "n", Languages: []string{"en"}})
				return err
			},
			want: capture{method: http.MethodPost, path: "/accounts/923891/alerts"},
		},
		{
			name: "update alert",
			call: func(c *Client) error {
				_, err := c.UpdateAlert(context.Background(), "923891", "1826208", AlertRequest{Name: "n", Languages: []string{"en"}})
				return err
			},
			want: capture{method: http.MethodPut, path: "/accounts/923891/alerts/1826208"},
		},
		{
			name: "list mentions with options",
			call: func(c *Client) error {
				_, err := c.Mentions(context.Background(), "923891", "1826208", &MentionsOptions{Limit: 20, Tone: TonePositive})
				return err
			},
			want: capture{method: http.MethodGet, path: "/accounts/923891/alerts/1826208/mentions", query: "limit=20&tone=positive"},
		},
		{
			name: "get mention",
			call: func(c *Client) error {
				_, err := c.Mention(context.Background(), "923891", "1826208", "127910474505")
				return err
			},
			want: capture{method: http.MethodGet, path: "/accounts/923891/alerts/1826208/mentions/127910474505"},
		},
		{
			name: "curate mention",
			call: func(c *Client) error {
				_, err := c.CurateMention(context.Background(), "923891", "1826208", "127910474505", MentionPatch{Read: Bool(true)})
				return err
			},
			want: capture{method: http.MethodPut, path: "/accounts/923891/alerts/1826208/mentions/127910474505"},
		},
		{
			name: "mention children",
			call: func(c *Client) error {
				_, err := c.MentionChildren(context.Background(), "923891", "1826208", "127910474505", &ChildrenOptions{Limit: 5})
				return err
			},
			want: capture{method: http.MethodGet, path: "/accounts/923891/alerts/1826208/mentions/127910474505/children", query: "limit=5"},
		},
		{
			name: "mark all read",
			call: func(c *Client) error {
				_, err := c.MarkAllMentionsRead(context.Background(), "923891", "1826208")
				return err
			},
			want: capture{method: http.MethodPost, path: "/accounts/923891/alerts/1826208/mentions/markallread"},
		},
		{
			name: "identifiers are percent-encoded",
			call: func(c *Client) error {
				_, err := c.Alert(context.Background(), "acct/1", "alert 2")
				return err
			},
			want: capture{method: http.MethodGet, path: "/accounts/acct%2F1/alerts/alert%202"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got capture
			c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
				got = capture{
					method: r.Method,
					path:   r.URL.EscapedPath(),
					query:  r.URL.RawQuery,
				}
				_, _ = w.Write([]byte(`{}`))
			})

			if err := tt.call(c); err != nil {
				t.Fatalf("call: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestInvalidInputsMakeNoRequest(t *testing.T) {
	var requests int32
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		_, _ = w.Write([]byte(`{}`))
	})

	tests := []struct {
		name string
		call func() error
	}{
		{"empty account id", func() error {
			_, err := c.Alerts(context.Background(), "")
			return err
		}},
		{"empty alert id", func() error {
			_, err := c.Alert(context.Background(), "acct", "")
			return err
		}},
		{"empty mention id", func() error {
			_, err := c.Mention(context.Background(), "acct", "1", "")
			return err
		}},
		{"conflicting options", func() error {
			_, err := c.Mentions(context.Background(), "acct", "1", &MentionsOptions{
				SinceID: "10",
				Cursor:  "abc",
			})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if n := atomic.LoadInt32(&requests); n != 0 {
		t.Fatalf("expected no requests for invalid input, got %d", n)
	}
}

func TestNewClientRejectsEmptyToken(t *testing.T) {
	if _, err := NewClient(""); err == nil {
		t.Fatal("expected error for empty token")
	}
}

func TestCreateAlertBody(t *testing.T) {
	var (
		contentType string
		body        []byte
	)
	c := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"alert": {"id": 1}}`))
	})

	req := AlertRequest{
		Name: "space program",
		Query: AlertQuery{
			Type:             QueryTypeBasic,
			IncludedKeywords: []string{"NASA", "SpaceX"},
			RequiredKeywords: []string{"mars"},
		},
		Languages:      []string{"en"},
		NoiseDetection: Bool(true),
	}
	if _, err := c.CreateAlert(context.Background(), "acct", req); err != nil {
		t.Fatalf("CreateAlert: %v", err)
	}

	if contentType != "application/json" {
		t.Fatalf("expected JSON content type, got %q", contentType)
	}

	var decoded AlertRequest
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("request body is not valid JSON: %v", err)
	}
	if decoded.Name != "space program" || decoded.Query.Type != QueryTypeBasic {
		t.Fatalf("unexpected body %s", body)
	}
	// Unset optional fields must be omitted, matching the API's
	// partial-update semantics.
	if strings.Contains(string(body), "countries") || strings.Contains(string(body), "blocked_sites") {
		t.Fatalf("expected empty optional fields omitted, got %s", body)
	}
}
