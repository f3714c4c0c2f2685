package mention

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
)

// endpoint describes one Mention API call: an HTTP method and a path
// template with {name} placeholders. Every endpoint shares the same
// request/response path in Client.do; nothing else varies between them.
type endpoint struct {
	method string
	path   string
}

var (
	appDataEndpoint         = endpoint{http.MethodGet, "/app/data"}
	listAlertsEndpoint      = endpoint{http.MethodGet, "/accounts/{account_id}/alerts"}
	createAlertEndpoint     = endpoint{http.MethodPost, "/accounts/{account_id}/alerts"}
	getAlertEndpoint        = endpoint{http.MethodGet, "/accounts/{account_id}/alerts/{alert_id}"}
	updateAlertEndpoint     = endpoint{http.MethodPut, "/accounts/{account_id}/alerts/{alert_id}"}
	listMentionsEndpoint    = endpoint{http.MethodGet, "/accounts/{account_id}/alerts/{alert_id}/mentions"}
	getMentionEndpoint      = endpoint{http.MethodGet, "/accounts/{account_id}/alerts/{alert_id}/mentions/{mention_id}"}
	curateMentionEndpoint   = endpoint{http.MethodPut, "/accounts/{account_id}/alerts/{alert_id}/mentions/{mention_id}"}
	mentionChildrenEndpoint = endpoint{http.MethodGet, "/accounts/{account_id}/alerts/{alert_id}/mentions/{mention_id}/children"}
	markAllReadEndpoint     = endpoint{http.MethodPost, "/accounts/{account_id}/alerts/{alert_id}/mentions/markallread"}
)

var placeholderPattern = regexp.MustCompile(`\{([a-z_]+)\}`)

// expand substitutes params into the path template. Every substituted
// identifier is percent-encoded; a placeholder without a value is an
// error so that an unexpanded template can never reach the wire.
func (e endpoint) expand(params map[string]string) (string, error) {
	var missing []string
	expanded := placeholderPattern.ReplaceAllStringFunc(e.path, func(m string) string {
		name := m[1 : len(m)-1]
		value, ok := params[name]
		if !ok || value == "" {
			missing = append(missing, name)
			return m
		}
		return url.PathEscape(value)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("mention: endpoint %s: missing path parameter %s",
			e.path, strings.Join(missing, ", "))
	}
	if strings.ContainsAny(expanded, "{}") {
		return "", fmt.Errorf("mention: endpoint %s: unexpanded placeholder after substitution", e.path)
	}
	return expanded, nil
}

// pathParams pairs placeholder names with values and rejects empty
// identifiers before any request is built.
func pathParams(pairs ...string) (map[string]string, error) {
	params := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		name, value := pairs[i], pairs[i+1]
		if value == "" {
			return nil, fmt.Errorf("mention: %s must not be empty", strings.ReplaceAll(name, "_", " "))
		}
		params[name] = value
	}
	return params, nil
}
