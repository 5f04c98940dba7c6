// Copyright (c) 2018 Tim Heckman
//
// Use of this source code is governed by the MIT License that can be found in
// the LICENSE file at the root of this repository.

package chatopera

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// internalIDKey is the field the service includes in some payloads, which is
// removed before the data is returned to callers.
const internalIDKey = "chatbotID"

type members = orderedmap.OrderedMap[string, json.RawMessage]

// Response is a parsed JSON response from the service. It is loosely shaped as
// {"rc": <int>, "data": <object|array>}, but beyond that nothing is assumed.
// The members of a top-level object are kept in the order the service sent
// them.
type Response struct {
	raw    json.RawMessage
	fields *members // nil when the body is not a JSON object
}

func parseResponse(p []byte) (*Response, error) {
	if !json.Valid(p) {
		return nil, &MalformedResponseError{Body: p, Err: invalidJSONError(p)}
	}

	r := &Response{raw: append(json.RawMessage(nil), bytes.TrimSpace(p)...)}

	if shapeOf(p) != shapeObject {
		return r, nil
	}

	fields := orderedmap.New[string, json.RawMessage]()

	if err := json.Unmarshal(p, fields); err != nil {
		return nil, &MalformedResponseError{Body: p, Err: err}
	}

	r.fields = fields

	return r, nil
}

// invalidJSONError produces the decoder's description of why p is not JSON.
func invalidJSONError(p []byte) error {
	var v interface{}

	if err := json.Unmarshal(p, &v); err != nil {
		return err
	}

	return errors.New("invalid JSON")
}

// Get returns the raw value of the top-level member key.
func (r *Response) Get(key string) (json.RawMessage, bool) {
	if r == nil || r.fields == nil {
		return nil, false
	}

	return r.fields.Get(key)
}

// Keys returns the names of the top-level members, in order.
func (r *Response) Keys() []string {
	if r == nil || r.fields == nil {
		return nil
	}

	keys := make([]string, 0, r.fields.Len())

	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}

	return keys
}

// RC returns the result code of the response. The second value is false if the
// rc member is absent or is not an integer.
func (r *Response) RC() (int, bool) {
	raw, ok := r.Get("rc")
	if !ok || isNull(raw) {
		return 0, false
	}

	var rc int

	if err := json.Unmarshal(raw, &rc); err == nil {
		return rc, true
	}

	// some deployments send the code as a string
	var s string

	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, false
	}

	rc, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}

	return rc, true
}

// OK reports whether rc is present and zero.
func (r *Response) OK() bool {
	rc, ok := r.RC()
	return ok && rc == 0
}

// Data returns the raw data member, or nil if there isn't one.
func (r *Response) Data() json.RawMessage {
	d, _ := r.Get("data")
	return d
}

// Decode unmarshals the entire response into v.
func (r *Response) Decode(v interface{}) error {
	return json.Unmarshal(r.Bytes(), v)
}

// DecodeData unmarshals the data member into v.
func (r *Response) DecodeData(v interface{}) error {
	d := r.Data()
	if d == nil {
		return errors.New("response has no data member")
	}

	return json.Unmarshal(d, v)
}

// Bytes returns the JSON encoding of the response.
func (r *Response) Bytes() []byte {
	if r == nil {
		return nil
	}

	return r.raw
}

// MarshalJSON satisfies the json.Marshaler interface.
func (r *Response) MarshalJSON() ([]byte, error) {
	if r == nil || r.raw == nil {
		return []byte("null"), nil
	}

	return r.raw, nil
}

// String returns the response body as a string.
func (r *Response) String() string { return string(r.Bytes()) }

// purge removes the internalIDKey member from data, when data is an object, or
// from each object element of data, when data is an array. Any other shape is
// left alone. Applying purge more than once has no further effect.
func (r *Response) purge() *Response {
	data, ok := r.Get("data")
	if !ok {
		return r
	}

	var out json.RawMessage
	var changed bool

	switch shapeOf(data) {
	case shapeObject:
		out, changed = withoutMember(data, internalIDKey)

	case shapeArray:
		out, changed = withoutMemberEach(data, internalIDKey)

	default:
		return r
	}

	if !changed {
		return r
	}

	r.fields.Set("data", out)

	raw, err := r.fields.MarshalJSON()
	if err != nil {
		// data was already valid JSON; restore it rather than fail
		r.fields.Set("data", data)
		return r
	}

	r.raw = raw

	return r
}

// shape is the kind of a JSON value, determined by its first significant byte.
type shape uint8

const (
	shapeNone shape = iota
	shapeScalar
	shapeObject
	shapeArray
)

func shapeOf(p []byte) shape {
	for _, b := range p {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '{':
			return shapeObject
		case '[':
			return shapeArray
		default:
			return shapeScalar
		}
	}

	return shapeNone
}

func isNull(p []byte) bool {
	return string(bytes.TrimSpace(p)) == "null"
}

// withoutMember removes key from the JSON object obj, keeping the order of the
// remaining members.
func withoutMember(obj json.RawMessage, key string) (json.RawMessage, bool) {
	m := orderedmap.New[string, json.RawMessage]()

	if err := json.Unmarshal(obj, m); err != nil {
		return obj, false
	}

	if _, present := m.Delete(key); !present {
		return obj, false
	}

	out, err := m.MarshalJSON()
	if err != nil {
		return obj, false
	}

	return out, true
}

// withoutMemberEach applies withoutMember to every object element of the JSON
// array arr. Elements that are not objects are kept as they are.
func withoutMemberEach(arr json.RawMessage, key string) (json.RawMessage, bool) {
	var elems []json.RawMessage

	if err := json.Unmarshal(arr, &elems); err != nil {
		return arr, false
	}

	var changed bool

	for i, el := range elems {
		if shapeOf(el) != shapeObject {
			continue
		}

		var ok bool

		if elems[i], ok = withoutMember(el, key); ok {
			changed = true
		}
	}

	if !changed {
		return arr, false
	}

	out, err := json.Marshal(elems)
	if err != nil {
		return arr, false
	}

	return out, true
}
