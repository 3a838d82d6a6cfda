package jose

import (
	"fmt"

	"github.com/josekit/jose/pkg/compact"
	"github.com/josekit/jose/pkg/header"
	"github.com/josekit/jose/pkg/payload"
)

// PlainObject is an unsecured JOSE object: a "none" algorithm header
// and a payload, with no cryptographic state. Its compact form always
// has an empty third segment.
//
// https://datatracker.ietf.org/doc/html/rfc7515#appendix-A.5
type PlainObject struct {
	hdr *header.PlainHeader
	pl  *payload.Payload
}

// NewPlainObject returns a plaintext object over the given header and
// payload. A nil header yields the minimal "none" header.
func NewPlainObject(hdr *header.PlainHeader, pl *payload.Payload) (*PlainObject, error) {
	if pl == nil {
		return nil, fmt.Errorf("jose: cannot create plaintext object with nil payload")
	}
	if hdr == nil {
		var err error
		hdr, err = header.NewPlainHeader().Build()
		if err != nil {
			return nil, err
		}
	}
	return &PlainObject{hdr: hdr, pl: pl}, nil
}

// ParsePlain parses the compact serialization of a plaintext object:
// three segments, the third of which must be empty.
func ParsePlain(input string) (*PlainObject, error) {
	parts, err := compact.Split(input)
	if err != nil {
		return nil, err
	}
	if len(parts) != compact.PartsJWS {
		return nil, fmt.Errorf("%w: unexpected part delimiter %d for a plaintext object",
			compact.ErrInvalidSerialization, compact.PartsJWS)
	}
	if parts[2] != "" {
		return nil, fmt.Errorf("%w: third segment of a plaintext object must be empty",
			compact.ErrInvalidSerialization)
	}

	h, err := header.ParseBase64URL(parts[0])
	if err != nil {
		return nil, err
	}
	hdr, ok := h.(*header.PlainHeader)
	if !ok {
		return nil, fmt.Errorf("jose: header is a %s header, not a plaintext header", h.Kind())
	}

	pl, err := payload.NewBase64URL(parts[1])
	if err != nil {
		return nil, err
	}

	return &PlainObject{hdr: hdr, pl: pl}, nil
}

// Header returns the header.
func (o *PlainObject) Header() header.Header {
	return o.hdr
}

// PlainHeader returns the typed header.
func (o *PlainObject) PlainHeader() *header.PlainHeader {
	return o.hdr
}

// Payload returns the payload.
func (o *PlainObject) Payload() *payload.Payload {
	return o.pl
}

// Serialize returns the compact serialization, which always succeeds:
// the base64url header, the base64url payload, and an empty third
// segment.
func (o *PlainObject) Serialize() (string, error) {
	encodedHeader, err := o.hdr.Base64URL()
	if err != nil {
		return "", err
	}
	return compact.Join(encodedHeader, o.pl.Base64URL(), ""), nil
}
