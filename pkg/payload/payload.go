// Package payload implements the multi-view payload container carried
// by every JOSE object. A payload is constructed from one
// authoritative view (JSON value, string, bytes, or base64url) and
// converts to any other view on demand, caching the result.
package payload

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/josekit/jose/pkg/base64"
)

// ErrNotJSON is returned by JSON when the payload content is not a
// valid JSON value.
var ErrNotJSON = errors.New("payload: content is not JSON")

// Payload is a JOSE object payload. All views are mutually consistent
// under UTF-8 and base64url encoding; views other than the one given
// at construction are derived lazily and memoized.
//
// A payload is immutable after its views have materialized and is then
// safe for concurrent reads. The lazy materialization itself is not
// synchronized; derive views before sharing across goroutines.
type Payload struct {
	bytes   []byte
	encoded string
	jsonVal any
	hasJSON bool
	jsonErr error
	triedJSON bool
}

// NewBytes returns a payload whose authoritative view is the given
// byte sequence.
func NewBytes(b []byte) *Payload {
	buf := make([]byte, len(b))
	copy(buf, b)
	return &Payload{bytes: buf}
}

// NewString returns a payload whose authoritative view is the given
// string, stored as its UTF-8 bytes.
func NewString(s string) *Payload {
	return &Payload{bytes: []byte(s)}
}

// NewJSON returns a payload whose authoritative view is the given
// JSON value, which must be marshalable.
func NewJSON(value any) (*Payload, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("payload: failed to encode JSON value: %w", err)
	}
	return &Payload{bytes: b, jsonVal: value, hasJSON: true, triedJSON: true}, nil
}

// NewBase64URL returns a payload whose authoritative view is the given
// base64url segment, validated eagerly. The original encoding is kept
// so that re-serialization reproduces the input byte for byte.
func NewBase64URL(segment string) (*Payload, error) {
	b, err := base64.Decode(segment)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return &Payload{bytes: b, encoded: segment}, nil
}

// Bytes returns the payload content as raw bytes. The returned slice
// must not be modified.
func (p *Payload) Bytes() []byte {
	return p.bytes
}

// String returns the payload content as a UTF-8 string.
func (p *Payload) String() string {
	return string(p.bytes)
}

// Base64URL returns the payload content base64url encoded. For a
// payload constructed from a base64url segment this is the original
// segment, not a re-encoding.
func (p *Payload) Base64URL() string {
	if p.encoded == "" && len(p.bytes) > 0 {
		p.encoded = base64.Encode(p.bytes)
	}
	return p.encoded
}

// JSON returns the payload content decoded as a JSON value, or
// ErrNotJSON when the content does not parse.
func (p *Payload) JSON() (any, error) {
	if !p.triedJSON {
		p.triedJSON = true
		var value any
		if err := json.Unmarshal(p.bytes, &value); err != nil {
			p.jsonErr = fmt.Errorf("%w: %v", ErrNotJSON, err)
		} else {
			p.jsonVal = value
			p.hasJSON = true
		}
	}
	if p.jsonErr != nil {
		return nil, p.jsonErr
	}
	return p.jsonVal, nil
}
