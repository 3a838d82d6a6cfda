// Package header implements the JOSE header model: the JSON object
// carried as the first compact segment, describing the cryptographic
// operations and parameters employed.
//
// There are three classes of Header Parameter names: Registered Header
// Parameter names, Public Header Parameter names, and Private Header
// Parameter names.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4
package header

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
)

type ParameterName = string

// Registered Header Parameter Names.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4.1
const (
	Algorithm                 ParameterName = "alg"
	Type                      ParameterName = "typ"
	ContentType               ParameterName = "cty"
	JWKSetURL                 ParameterName = "jku"
	JSONWebKey                ParameterName = "jwk"
	X509URL                   ParameterName = "x5u"
	X509CertificateThumbprint ParameterName = "x5t"
	X509CertificateChain      ParameterName = "x5c"
	KeyID                     ParameterName = "kid"
)

// Registered Header Parameter Names specific to JWE objects.
//
// https://www.rfc-editor.org/rfc/rfc7516.html#section-4.1
const (
	Encryption            ParameterName = "enc"
	Compression           ParameterName = "zip"
	InitializationVector  ParameterName = "iv"
	EphemeralPublicKey    ParameterName = "epk"
	KeyDerivationFunction ParameterName = "kdf"
	IntegrityAlgorithm    ParameterName = "int"
)

const TypeJWT = "JWT"

var (
	// ErrParameterNotFound is returned when a mandatory header
	// parameter is absent.
	ErrParameterNotFound = errors.New("header: parameter not found")

	// ErrInvalidParameterType is returned when a reserved header
	// parameter does not have its expected JSON shape.
	ErrInvalidParameterType = errors.New("header: invalid parameter type")

	// ErrReservedParameter is returned when a reserved parameter name
	// is used as a custom parameter.
	ErrReservedParameter = errors.New("header: reserved parameter name")
)

// Kind discriminates the three header variants a compact serialization
// can carry.
type Kind int

const (
	KindPlain Kind = iota
	KindJWS
	KindJWE
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindJWS:
		return "JWS"
	case KindJWE:
		return "JWE"
	default:
		return fmt.Sprintf("unknown kind %d", int(k))
	}
}

// Header is implemented by the three header variants: PlainHeader,
// JWSHeader, and JWEHeader. Headers are immutable once built; every
// accessor that returns a map or slice returns a copy.
type Header interface {
	// Kind reports which header variant this is.
	Kind() Kind

	// Algorithm returns the "alg" parameter value.
	Algorithm() jwa.Algorithm

	// Type returns the "typ" parameter value, or "" when absent.
	Type() string

	// ContentType returns the "cty" parameter value, or "" when absent.
	ContentType() string

	// Custom returns the custom (non-reserved) parameter with the
	// given name, and whether it is present.
	Custom(name ParameterName) (any, bool)

	// CustomParameters returns a copy of the custom parameter map.
	CustomParameters() map[ParameterName]any

	// ParameterNames returns the names of every parameter present,
	// reserved and custom.
	ParameterNames() []ParameterName

	// MarshalJSON serializes the header with "alg" first, reserved
	// parameters next, and custom parameters last in sorted order.
	MarshalJSON() ([]byte, error)

	// Base64URL returns the base64url encoding of the JSON
	// serialization, the form carried in a compact segment.
	Base64URL() (string, error)

	sealed()
}

// common holds the parameters shared by every header variant.
type common struct {
	typ    string
	cty    string
	custom map[ParameterName]any
}

func (c *common) Type() string {
	return c.typ
}

func (c *common) ContentType() string {
	return c.cty
}

func (c *common) Custom(name ParameterName) (any, bool) {
	value, ok := c.custom[name]
	return value, ok
}

func (c *common) CustomParameters() map[ParameterName]any {
	params := make(map[ParameterName]any, len(c.custom))
	for name, value := range c.custom {
		params[name] = value
	}
	return params
}

// seCommon holds the parameters shared by the signed and encrypted
// header variants.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4.1
type seCommon struct {
	jku  string
	jwk  map[string]any
	x5u  string
	x5t  string
	x5c  []string
	kid  string
}

// JWKSetURL returns the "jku" parameter value, or "" when absent.
func (s *seCommon) JWKSetURL() string {
	return s.jku
}

// JWK returns a copy of the embedded "jwk" parameter value, or nil
// when absent. The value is an untyped JSON object; use the jwk
// package to interpret it.
func (s *seCommon) JWK() map[string]any {
	if s.jwk == nil {
		return nil
	}
	value := make(map[string]any, len(s.jwk))
	for k, v := range s.jwk {
		value[k] = v
	}
	return value
}

// X509URL returns the "x5u" parameter value, or "" when absent.
func (s *seCommon) X509URL() string {
	return s.x5u
}

// X509CertificateThumbprint returns the "x5t" parameter value, or ""
// when absent.
func (s *seCommon) X509CertificateThumbprint() string {
	return s.x5t
}

// X509CertificateChain returns a copy of the "x5c" parameter value,
// or nil when absent.
func (s *seCommon) X509CertificateChain() []string {
	if s.x5c == nil {
		return nil
	}
	chain := make([]string, len(s.x5c))
	copy(chain, s.x5c)
	return chain
}

// KeyID returns the "kid" parameter value, or "" when absent.
func (s *seCommon) KeyID() string {
	return s.kid
}

// field is a single name/value pair scheduled for serialization.
type field struct {
	name  ParameterName
	value any
}

// marshalFields serializes the given fields in order, then the custom
// parameters in sorted name order. Custom entries that collide with a
// reserved name already emitted are skipped: reserved parameters
// always win.
func marshalFields(fields []field, custom map[ParameterName]any) ([]byte, error) {
	emitted := make(map[ParameterName]struct{}, len(fields))

	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(buf, f.name, f.value); err != nil {
			return nil, err
		}
		emitted[f.name] = struct{}{}
	}

	names := make([]ParameterName, 0, len(custom))
	for name := range custom {
		if _, ok := emitted[name]; ok {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		if err := writeMember(buf, name, custom[name]); err != nil {
			return nil, err
		}
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, name ParameterName, value any) error {
	nameJSON, err := json.Marshal(name)
	if err != nil {
		return fmt.Errorf("header: failed to encode parameter name %q: %w", name, err)
	}
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("header: failed to encode parameter %q: %w", name, err)
	}
	buf.Write(nameJSON)
	buf.WriteByte(':')
	buf.Write(valueJSON)
	return nil
}

func encodeBase64URL(h Header) (string, error) {
	b, err := h.MarshalJSON()
	if err != nil {
		return "", err
	}
	return base64.Encode(b), nil
}

func customNames(custom map[ParameterName]any) []ParameterName {
	names := make([]ParameterName, 0, len(custom))
	for name := range custom {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
