// Package thumbprint computes JWK Thumbprints as defined in RFC 7638.
//
// https://datatracker.ietf.org/doc/html/rfc7638
package thumbprint

import (
	"bytes"
	"crypto"
	"errors"
	"fmt"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwk"

	_ "crypto/sha256"
)

var ErrInvalidKey = errors.New("thumbprint: invalid key")

// Generate returns the JWK Thumbprint for the given key following the
// steps defined in RFC 7638: a JSON object holding only the required
// members of the key, with no whitespace and the members ordered
// lexicographically by member name, hashed with the given function.
//
// If no hash is specified, SHA-256 is used.
func Generate(key jwk.Key, h crypto.Hash) ([]byte, error) {
	members, err := requiredMembers(key)
	if err != nil {
		return nil, err
	}

	// The standard library's json.Marshal does not guarantee member
	// order, so the canonical form is written by hand.
	b := bytes.NewBuffer(nil)
	b.WriteByte('{')
	for i, member := range members {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%q:%q", member.name, member.value)
	}
	b.WriteByte('}')

	if h == 0 {
		h = crypto.SHA256
	}

	hash := h.New()
	if _, err := hash.Write(b.Bytes()); err != nil {
		return nil, err
	}
	return hash.Sum(nil), nil
}

// GenerateString returns the JWK Thumbprint for the given key as a
// base64url encoded string, suitable for use as a key id.
func GenerateString(key jwk.Key, h crypto.Hash) (string, error) {
	thumbprint, err := Generate(key, h)
	if err != nil {
		return "", err
	}
	return base64.Encode(thumbprint), nil
}

type member struct {
	name  string
	value string
}

// requiredMembers returns the required members of the key in
// lexicographic order by member name.
func requiredMembers(key jwk.Key) ([]member, error) {
	switch key := key.(type) {
	case *jwk.ECKey:
		if key.Curve().IsZero() || key.X() == "" || key.Y() == "" {
			return nil, ErrInvalidKey
		}
		return []member{
			{jwk.CurveParam, key.Curve().Name},
			{jwk.KeyTypeParam, key.KeyType().Name},
			{jwk.XParam, key.X()},
			{jwk.YParam, key.Y()},
		}, nil
	case *jwk.RSAKey:
		if key.N() == "" || key.E() == "" {
			return nil, ErrInvalidKey
		}
		return []member{
			{jwk.ExponentParam, key.E()},
			{jwk.KeyTypeParam, key.KeyType().Name},
			{jwk.ModulusParam, key.N()},
		}, nil
	case *jwk.OctetSequenceKey:
		if key.K() == "" {
			return nil, ErrInvalidKey
		}
		return []member{
			{jwk.KeyValueParam, key.K()},
			{jwk.KeyTypeParam, key.KeyType().Name},
		}, nil
	default:
		return nil, ErrInvalidKey
	}
}
