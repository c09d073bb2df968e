// Package types defines shared types used across the application.
package types

import (
	"bytes"
	"encoding/json"
)

// Result is the single document emitted per run. Values and Cookies are
// set iff Success is true, Error is set iff Success is false.
type Result struct {
	Success bool              `json:"success"`
	Values  *Values           `json:"values"`
	Cookies map[string]string `json:"cookies"`
	Error   *string           `json:"error"`
}

// NewSuccessResult returns a successful result. Nil arguments are replaced
// by empty containers so that they are never reported as null.
func NewSuccessResult(values *Values, cookies map[string]string) *Result {
	if values == nil {
		values = NewValues()
	}
	if cookies == nil {
		cookies = map[string]string{}
	}
	return &Result{
		Success: true,
		Values:  values,
		Cookies: cookies,
	}
}

// NewErrorResult returns a failed result carrying msg.
func NewErrorResult(msg string) *Result {
	return &Result{
		Success: false,
		Error:   &msg,
	}
}

// Values maps selectors to the texts they matched. Keys keep the order
// in which they were added, also when marshalled to json.
type Values struct {
	keys  []string
	texts map[string][]string
}

// NewValues returns an empty Values.
func NewValues() *Values {
	return &Values{texts: map[string][]string{}}
}

// Set stores texts for key. A nil slice is stored as an empty one.
func (v *Values) Set(key string, texts []string) {
	if texts == nil {
		texts = []string{}
	}
	if _, found := v.texts[key]; !found {
		v.keys = append(v.keys, key)
	}
	v.texts[key] = texts
}

// Get returns the texts stored for key.
func (v *Values) Get(key string) ([]string, bool) {
	t, found := v.texts[key]
	return t, found
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	return append([]string{}, v.keys...)
}

// Len returns the number of keys.
func (v *Values) Len() int {
	return len(v.keys)
}

// Map returns a copy of the values as a plain map.
func (v *Values) Map() map[string][]string {
	m := make(map[string][]string, len(v.keys))
	for _, k := range v.keys {
		m[k] = append([]string{}, v.texts[k]...)
	}
	return m
}

// MarshalJSON encodes v as an object whose keys keep insertion order.
// html characters are left as they are; json.Marshal escapes them
// afterwards, an encoder with SetEscapeHTML(false) does not.
func (v *Values) MarshalJSON() ([]byte, error) {
	buf := &bytes.Buffer{}
	encoder := json.NewEncoder(buf)
	encoder.SetEscapeHTML(false)

	buf.WriteByte('{')
	for i, k := range v.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encoder.Encode(k); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1) // Encode appends a newline
		buf.WriteByte(':')
		if err := encoder.Encode(v.texts[k]); err != nil {
			return nil, err
		}
		buf.Truncate(buf.Len() - 1)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
