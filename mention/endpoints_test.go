package mention

import (
	"strings"
	"testing"
)

func TestEndpointExpand(t *testing.T) {
	tests := []struct {
		name    string
		ep      endpoint
		params  map[string]string
		want    string
		wantErr string
	}{
		{
			name: "no placeholders",
			ep:   appDataEndpoint,
			want: "/app/data",
		},
		{
			name:   "single placeholder",
			ep:     listAlertsEndpoint,
			params: map[string]string{"account_id": "923891"},
			want:   "/accounts/923891/alerts",
		},
		{
			name: "all placeholders",
			ep:   getMentionEndpoint,
			params: map[string]string{
				"account_id": "923891",
				"alert_id":   "1826208",
				"mention_id": "127910474505",
			},
			want: "/accounts/923891/alerts/1826208/mentions/127910474505",
		},
		{
			name:   "values are percent-encoded",
			ep:     getAlertEndpoint,
			params: map[string]string{"account_id": "a/b", "alert_id": "c d"},
			want:   "/accounts/a%2Fb/alerts/c%20d",
		},
		{
			name:    "missing parameter",
			ep:      getAlertEndpoint,
			params:  map[string]string{"account_id": "923891"},
			wantErr: "missing path parameter alert_id",
		},
		{
			name:    "empty parameter",
			ep:      listAlertsEndpoint,
			params:  map[string]string{"account_id": ""},
			wantErr: "missing path parameter account_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ep.expand(tt.params)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expand = %q, want %q", got, tt.want)
			}
			if strings.ContainsAny(got, "{}") {
				t.Fatalf("unexpanded placeholder left in %q", got)
			}
		})
	}
}

func TestPathParamsRejectsEmptyValues(t *testing.T) {
	if _, err := pathParams("account_id", ""); err == nil {
		t.Fatal("expected error for empty account_id")
	}
	if _, err := pathParams("account_id", "a", "alert_id", ""); err == nil {
		t.Fatal("expected error for empty alert_id")
	}

	params, err := pathParams("account_id", "a", "alert_id", "b")
	if err != nil {
		t.Fatalf("pathParams: %v", err)
	}
	if params["account_id"] != "a" || params["alert_id"] != "b" {
		t.Fatalf("unexpected params %v", params)
	}
}
