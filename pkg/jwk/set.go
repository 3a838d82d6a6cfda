package jwk

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// KeysParam is the member of a JWK Set holding its keys.
//
// https://datatracker.ietf.org/doc/html/rfc7517#section-5.1
const KeysParam = "keys"

// Set is an ordered collection of JSON Web Keys.
//
// https://datatracker.ietf.org/doc/html/rfc7517#section-5
type Set struct {
	keys []Key
}

// NewSet returns a set holding the given keys in order.
func NewSet(keys ...Key) *Set {
	return &Set{keys: append([]Key(nil), keys...)}
}

// ParseSet parses a JWK Set document.
func ParseSet(data []byte) (*Set, error) {
	var obj struct {
		Keys []map[string]any `json:"keys"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("jwk: failed to decode JSON: %w", err)
	}
	if obj.Keys == nil {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, KeysParam)
	}

	keys := make([]Key, 0, len(obj.Keys))
	for i, member := range obj.Keys {
		key, err := ParseValue(member)
		if err != nil {
			return nil, fmt.Errorf("jwk: key %d: %w", i, err)
		}
		keys = append(keys, key)
	}
	return &Set{keys: keys}, nil
}

// Len returns the number of keys in the set.
func (s *Set) Len() int {
	return len(s.keys)
}

// Keys returns the keys in the set, in order.
func (s *Set) Keys() []Key {
	return append([]Key(nil), s.keys...)
}

// Get returns the first key in the set with the given key ID.
func (s *Set) Get(kid string) (Key, bool) {
	for _, key := range s.keys {
		if key.KeyID() == kid {
			return key, true
		}
	}
	return nil, false
}

// MarshalJSON implements json.Marshaler, preserving key order.
func (s *Set) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"keys":[`)
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		data, err := key.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(data)
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}
