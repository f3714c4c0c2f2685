package mention

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// Value is an opaque JSON value as returned by the Mention API. The API's
// payload shapes are owned by the remote service, so the client passes
// them through untouched; callers pick out what they need with the
// accessors below or decode into their own types with Decode.
type Value struct {
	raw json.RawMessage
}

// ValueOf wraps raw JSON in a Value without validating it. Mostly useful
// in tests; the client only produces Values from bodies it has validated.
func ValueOf(raw json.RawMessage) Value {
	return Value{raw: raw}
}

// Raw returns the underlying JSON bytes.
func (v Value) Raw() json.RawMessage { return v.raw }

// Kind inspects the first byte of the value to classify it.
func (v Value) Kind() Kind {
	trimmed := bytes.TrimSpace(v.raw)
	if len(trimmed) == 0 {
		return KindInvalid
	}
	switch trimmed[0] {
	case '{':
		return KindObject
	case '[':
		return KindArray
	case '"':
		return KindString
	case 't', 'f':
		return KindBool
	case 'n':
		return KindNull
	default:
		return KindNumber
	}
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool { return v.Kind() == KindNull }

// Decode unmarshals the value into dst.
func (v Value) Decode(dst any) error {
	if len(v.raw) == 0 {
		return fmt.Errorf("mention: cannot decode empty value")
	}
	return json.Unmarshal(v.raw, dst)
}

// Get returns the named member of an object value. The second result is
// false when the value is not an object or the key is absent.
func (v Value) Get(key string) (Value, bool) {
	obj, err := v.Object()
	if err != nil {
		return Value{}, false
	}
	member, ok := obj[key]
	return member, ok
}

// Index returns the i-th element of an array value. The second result is
// false when the value is not an array or the index is out of range.
func (v Value) Index(i int) (Value, bool) {
	arr, err := v.Array()
	if err != nil || i < 0 || i >= len(arr) {
		return Value{}, false
	}
	return arr[i], true
}

// Object decodes the value as a JSON object of nested Values.
func (v Value) Object() (map[string]Value, error) {
	var members map[string]json.RawMessage
	if err := v.Decode(&members); err != nil {
		return nil, err
	}
	obj := make(map[string]Value, len(members))
	for k, raw := range members {
		obj[k] = Value{raw: raw}
	}
	return obj, nil
}

// Array decodes the value as a JSON array of nested Values.
func (v Value) Array() ([]Value, error) {
	var elems []json.RawMessage
	if err := v.Decode(&elems); err != nil {
		return nil, err
	}
	arr := make([]Value, len(elems))
	for i, raw := range elems {
		arr[i] = Value{raw: raw}
	}
	return arr, nil
}

// Text returns the value as a string if it is a JSON string.
func (v Value) Text() (string, bool) {
	var s string
	if err := v.Decode(&s); err != nil {
		return "", false
	}
	return s, true
}

// Number returns the value as a float64 if it is a JSON number.
func (v Value) Number() (float64, bool) {
	var f float64
	if err := v.Decode(&f); err != nil {
		return 0, false
	}
	return f, true
}

// Bool returns the value as a bool if it is a JSON boolean.
func (v Value) Bool() (bool, bool) {
	var b bool
	if err := v.Decode(&b); err != nil {
		return false, false
	}
	return b, true
}

// MarshalJSON emits the value verbatim.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// UnmarshalJSON stores a copy of the raw JSON.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}
