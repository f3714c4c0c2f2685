package mention

import (
	"encoding/json"
	"testing"
)

func TestValueKind(t *testing.T) {
	tests := []struct {
		raw  string
		want Kind
	}{
		{`{"a": 1}`, KindObject},
		{`[1, 2]`, KindArray},
		{`"hello"`, KindString},
		{`42.5`, KindNumber},
		{`-7`, KindNumber},
		{`true`, KindBool},
		{`false`, KindBool},
		{`null`, KindNull},
		{``, KindInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v := ValueOf(json.RawMessage(tt.raw))
			if got := v.Kind(); got != tt.want {
				t.Fatalf("Kind(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}

func TestValueNavigation(t *testing.T) {
	v := ValueOf(json.RawMessage(`{
		"mentions": [
			{"id": 1, "title": "first", "favorite": true},
			{"id": 2, "title": "second"}
		]
	}`))

	mentions, ok := v.Get("mentions")
	if !ok {
		t.Fatal("expected mentions key")
	}
	if mentions.Kind() != KindArray {
		t.Fatalf("expected array, got kind %d", mentions.Kind())
	}

	first, ok := mentions.Index(0)
	if !ok {
		t.Fatal("expected element 0")
	}
	title, _ := first.Get("title")
	if s, _ := title.Text(); s != "first" {
		t.Fatalf("title = %q", s)
	}
	id, _ := first.Get("id")
	if n, _ := id.Number(); n != 1 {
		t.Fatalf("id = %v", n)
	}
	fav, _ := first.Get("favorite")
	if b, _ := fav.Bool(); !b {
		t.Fatal("expected favorite true")
	}

	if _, ok := mentions.Index(5); ok {
		t.Fatal("expected out-of-range index to fail")
	}
	if _, ok := v.Get("missing"); ok {
		t.Fatal("expected missing key to fail")
	}
}

func TestValueDecode(t *testing.T) {
	v := ValueOf(json.RawMessage(`{"id": 7, "name": "alert"}`))

	var dst struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}
	if err := v.Decode(&dst); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if dst.ID != 7 || dst.Name != "alert" {
		t.Fatalf("decoded %+v", dst)
	}

	if err := (Value{}).Decode(&dst); err == nil {
		t.Fatal("expected error decoding empty value")
	}
}

func TestValueRoundTripsThroughJSON(t *testing.T) {
	payload := []byte(`{"outer": {"inner": [1, 2, 3]}}`)

	var v Value
	if err := json.Unmarshal(payload, &v); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	out, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != string(payload) {
		t.Fatalf("round trip changed payload: %s", out)
	}
}
