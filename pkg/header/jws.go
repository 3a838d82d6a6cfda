package header

import (
	"fmt"

	"github.com/josekit/jose/pkg/jwa"
)

// JWSHeader is the protected header of a JWS object.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-4
type JWSHeader struct {
	common
	seCommon

	alg jwa.JWSAlgorithm
}

func (h *JWSHeader) sealed() {}

func (h *JWSHeader) Kind() Kind {
	return KindJWS
}

func (h *JWSHeader) Algorithm() jwa.Algorithm {
	return h.alg.Algorithm
}

// JWSAlgorithm returns the typed "alg" parameter value.
func (h *JWSHeader) JWSAlgorithm() jwa.JWSAlgorithm {
	return h.alg
}

func (h *JWSHeader) ParameterNames() []ParameterName {
	names := []ParameterName{Algorithm}
	for _, f := range h.reservedFields() {
		names = append(names, f.name)
	}
	return append(names, customNames(h.custom)...)
}

// reservedFields returns the present reserved parameters other than
// "alg", in serialization order.
func (h *JWSHeader) reservedFields() []field {
	var fields []field
	if h.typ != "" {
		fields = append(fields, field{Type, h.typ})
	}
	if h.cty != "" {
		fields = append(fields, field{ContentType, h.cty})
	}
	if h.jku != "" {
		fields = append(fields, field{JWKSetURL, h.jku})
	}
	if h.jwk != nil {
		fields = append(fields, field{JSONWebKey, h.jwk})
	}
	if h.x5u != "" {
		fields = append(fields, field{X509URL, h.x5u})
	}
	if h.x5t != "" {
		fields = append(fields, field{X509CertificateThumbprint, h.x5t})
	}
	if h.x5c != nil {
		fields = append(fields, field{X509CertificateChain, h.x5c})
	}
	if h.kid != "" {
		fields = append(fields, field{KeyID, h.kid})
	}
	return fields
}

func (h *JWSHeader) MarshalJSON() ([]byte, error) {
	fields := append([]field{{Algorithm, h.alg}}, h.reservedFields()...)
	return marshalFields(fields, h.custom)
}

func (h *JWSHeader) Base64URL() (string, error) {
	return encodeBase64URL(h)
}

// JWSHeaderBuilder accumulates the parameters of a JWSHeader. Build
// validates the collected parameters and returns the immutable header;
// the builder must not be reused after Build.
type JWSHeaderBuilder struct {
	h JWSHeader
}

// NewJWSHeader returns a builder for a JWS protected header with the
// given signature algorithm.
func NewJWSHeader(alg jwa.JWSAlgorithm) *JWSHeaderBuilder {
	b := &JWSHeaderBuilder{}
	b.h.alg = alg
	return b
}

func (b *JWSHeaderBuilder) Type(typ string) *JWSHeaderBuilder {
	b.h.typ = typ
	return b
}

func (b *JWSHeaderBuilder) ContentType(cty string) *JWSHeaderBuilder {
	b.h.cty = cty
	return b
}

func (b *JWSHeaderBuilder) JWKSetURL(jku string) *JWSHeaderBuilder {
	b.h.jku = jku
	return b
}

func (b *JWSHeaderBuilder) JWK(jwk map[string]any) *JWSHeaderBuilder {
	b.h.jwk = jwk
	return b
}

func (b *JWSHeaderBuilder) X509URL(x5u string) *JWSHeaderBuilder {
	b.h.x5u = x5u
	return b
}

func (b *JWSHeaderBuilder) X509CertificateThumbprint(x5t string) *JWSHeaderBuilder {
	b.h.x5t = x5t
	return b
}

func (b *JWSHeaderBuilder) X509CertificateChain(x5c []string) *JWSHeaderBuilder {
	b.h.x5c = x5c
	return b
}

func (b *JWSHeaderBuilder) KeyID(kid string) *JWSHeaderBuilder {
	b.h.kid = kid
	return b
}

func (b *JWSHeaderBuilder) Custom(name ParameterName, value any) *JWSHeaderBuilder {
	if b.h.custom == nil {
		b.h.custom = make(map[ParameterName]any)
	}
	b.h.custom[name] = value
	return b
}

func (b *JWSHeaderBuilder) Build() (*JWSHeader, error) {
	if b.h.alg.IsZero() {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, Algorithm)
	}
	if b.h.alg.Equal(jwa.None) {
		return nil, fmt.Errorf("%w: %q cannot be %q in a JWS header, use a plaintext object",
			ErrInvalidParameterType, Algorithm, jwa.None.Name)
	}
	if err := checkCustom(b.h.custom, jwsReserved); err != nil {
		return nil, err
	}
	h := b.h
	return &h, nil
}

var jwsReserved = map[ParameterName]struct{}{
	Algorithm:                 {},
	Type:                      {},
	ContentType:               {},
	JWKSetURL:                 {},
	JSONWebKey:                {},
	X509URL:                   {},
	X509CertificateThumbprint: {},
	X509CertificateChain:      {},
	KeyID:                     {},
}
