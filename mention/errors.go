package mention

import (
	"fmt"
	"net/http"
)

// TransportError reports a request that never completed: DNS failure,
// refused connection, timeout, or a cancelled context. The wrapped error
// is the underlying network error.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("mention: request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// APIError reports a response with a status code outside the 2xx range.
// Body holds the raw response body for caller inspection.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mention: unexpected status %d %s: %s",
		e.StatusCode, http.StatusText(e.StatusCode), bodySnippet(e.Body))
}

// DecodeError reports a 2xx response whose body is not valid JSON.
// Body holds the raw response body; the wrapped error is the decoder's.
type DecodeError struct {
	Body []byte
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("mention: response is not valid JSON: %v: %s",
		e.Err, bodySnippet(e.Body))
}

func (e *DecodeError) Unwrap() error { return e.Err }

// bodySnippet keeps error messages readable when the server sends a
// large (often HTML) body.
func bodySnippet(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
