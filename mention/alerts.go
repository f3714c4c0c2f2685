package mention

import "context"

// Alert query types.
const (
	QueryTypeBasic    = "basic"
	QueryTypeAdvanced = "advanced"
)

// AlertQuery describes what an alert tracks. A basic query lists
// keywords; an advanced query is a single boolean search expression,
// e.g. "(NASA AND Discovery) OR (Arianespace AND Ariane)".
type AlertQuery struct {
	Type             string            `json:"type"`
	IncludedKeywords []string          `json:"included_keywords,omitempty"`
	RequiredKeywords []string          `json:"required_keywords,omitempty"`
	ExcludedKeywords []string          `json:"excluded_keywords,omitempty"`
	MonitoredWebsite *MonitoredWebsite `json:"monitored_website,omitempty"`
	QueryString      string            `json:"query_string,omitempty"`
}

// MonitoredWebsite restricts a basic query to one domain.
type MonitoredWebsite struct {
	Domain    string `json:"domain"`
	BlockSelf bool   `json:"block_self,omitempty"`
}

// AlertRequest is the body for creating or updating an alert. Unset
// optional fields are omitted from the wire body.
type AlertRequest struct {
	Name           string     `json:"name"`
	Query          AlertQuery `json:"query"`
	Languages      []string   `json:"languages"`
	Countries      []string   `json:"countries,omitempty"`
	Sources        []string   `json:"sources,omitempty"`
	BlockedSites   []string   `json:"blocked_sites,omitempty"`
	NoiseDetection *bool      `json:"noise_detection,omitempty"`
	ReviewsPages   []string   `json:"reviews_pages,omitempty"`
}

// Bool returns a pointer to b, for optional boolean fields.
func Bool(b bool) *bool { return &b }

// Alerts fetches every alert configured for an account.
func (c *Client) Alerts(ctx context.Context, accountID string) (Value, error) {
	params, err := pathParams("account_id", accountID)
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, listAlertsEndpoint, params, nil, nil)
}

// Alert fetches a single alert.
func (c *Client) Alert(ctx context.Context, accountID, alertID string) (Value, error) {
	params, err := pathParams("account_id", accountID, "alert_id", alertID)
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, getAlertEndpoint, params, nil, nil)
}

// CreateAlert creates a new alert on the account.
func (c *Client) CreateAlert(ctx context.Context, accountID string, req AlertRequest) (Value, error) {
	params, err := pathParams("account_id", accountID)
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, createAlertEndpoint, params, nil, req)
}

// UpdateAlert modifies an existing alert, usually to refine its query.
func (c *Client) UpdateAlert(ctx context.Context, accountID, alertID string, req AlertRequest) (Value, error) {
	params, err := pathParams("account_id", accountID, "alert_id", alertID)
	if err != nil {
		return Value{}, err
	}
	return c.do(ctx, updateAlertEndpoint, params, nil, req)
}
