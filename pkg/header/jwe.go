package header

import (
	"fmt"

	"github.com/josekit/jose/pkg/jwa"
)

// JWEHeader is the protected header of a JWE object. Beyond the shared
// parameters it carries the mandatory content encryption method "enc"
// and the optional "zip", "iv", "epk", "kdf", and "int" parameters.
//
// https://www.rfc-editor.org/rfc/rfc7516.html#section-4
type JWEHeader struct {
	common
	seCommon

	alg jwa.JWEAlgorithm
	enc jwa.EncryptionMethod
	zip string
	iv  string
	epk map[string]any
	kdf string
	itg string
}

func (h *JWEHeader) sealed() {}

func (h *JWEHeader) Kind() Kind {
	return KindJWE
}

func (h *JWEHeader) Algorithm() jwa.Algorithm {
	return h.alg.Algorithm
}

// JWEAlgorithm returns the typed "alg" parameter value.
func (h *JWEHeader) JWEAlgorithm() jwa.JWEAlgorithm {
	return h.alg
}

// EncryptionMethod returns the "enc" parameter value.
func (h *JWEHeader) EncryptionMethod() jwa.EncryptionMethod {
	return h.enc
}

// Compression returns the "zip" parameter value, or "" when absent.
func (h *JWEHeader) Compression() string {
	return h.zip
}

// InitializationVector returns the base64url "iv" parameter value,
// or "" when absent.
func (h *JWEHeader) InitializationVector() string {
	return h.iv
}

// EphemeralPublicKey returns a copy of the "epk" parameter value, or
// nil when absent.
func (h *JWEHeader) EphemeralPublicKey() map[string]any {
	if h.epk == nil {
		return nil
	}
	epk := make(map[string]any, len(h.epk))
	for k, v := range h.epk {
		epk[k] = v
	}
	return epk
}

// KeyDerivationFunction returns the "kdf" parameter value, or "" when
// absent.
func (h *JWEHeader) KeyDerivationFunction() string {
	return h.kdf
}

// IntegrityAlgorithm returns the "int" parameter value, or "" when
// absent.
func (h *JWEHeader) IntegrityAlgorithm() string {
	return h.itg
}

// WithInitializationVector returns a copy of the header carrying the
// given base64url initialization vector. Used by encrypters that mint
// an IV during encryption; the receiver is not modified.
func (h *JWEHeader) WithInitializationVector(iv string) *JWEHeader {
	derived := *h
	derived.iv = iv
	return &derived
}

func (h *JWEHeader) ParameterNames() []ParameterName {
	names := []ParameterName{Algorithm, Encryption}
	for _, f := range h.reservedFields() {
		names = append(names, f.name)
	}
	return append(names, customNames(h.custom)...)
}

// reservedFields returns the present reserved parameters other than
// "alg" and "enc", in serialization order.
func (h *JWEHeader) reservedFields() []field {
	var fields []field
	if h.typ != "" {
		fields = append(fields, field{Type, h.typ})
	}
	if h.cty != "" {
		fields = append(fields, field{ContentType, h.cty})
	}
	if h.zip != "" {
		fields = append(fields, field{Compression, h.zip})
	}
	if h.iv != "" {
		fields = append(fields, field{InitializationVector, h.iv})
	}
	if h.epk != nil {
		fields = append(fields, field{EphemeralPublicKey, h.epk})
	}
	if h.kdf != "" {
		fields = append(fields, field{KeyDerivationFunction, h.kdf})
	}
	if h.itg != "" {
		fields = append(fields, field{IntegrityAlgorithm, h.itg})
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

func (h *JWEHeader) MarshalJSON() ([]byte, error) {
	fields := []field{{Algorithm, h.alg}, {Encryption, h.enc}}
	fields = append(fields, h.reservedFields()...)
	return marshalFields(fields, h.custom)
}

func (h *JWEHeader) Base64URL() (string, error) {
	return encodeBase64URL(h)
}

// JWEHeaderBuilder accumulates the parameters of a JWEHeader. Build
// validates the collected parameters and returns the immutable header;
// the builder must not be reused after Build.
type JWEHeaderBuilder struct {
	h JWEHeader
}

// NewJWEHeader returns a builder for a JWE protected header with the
// given key management algorithm and content encryption method.
func NewJWEHeader(alg jwa.JWEAlgorithm, enc jwa.EncryptionMethod) *JWEHeaderBuilder {
	b := &JWEHeaderBuilder{}
	b.h.alg = alg
	b.h.enc = enc
	return b
}

func (b *JWEHeaderBuilder) Type(typ string) *JWEHeaderBuilder {
	b.h.typ = typ
	return b
}

func (b *JWEHeaderBuilder) ContentType(cty string) *JWEHeaderBuilder {
	b.h.cty = cty
	return b
}

func (b *JWEHeaderBuilder) Compression(zip string) *JWEHeaderBuilder {
	b.h.zip = zip
	return b
}

func (b *JWEHeaderBuilder) InitializationVector(iv string) *JWEHeaderBuilder {
	b.h.iv = iv
	return b
}

func (b *JWEHeaderBuilder) EphemeralPublicKey(epk map[string]any) *JWEHeaderBuilder {
	b.h.epk = epk
	return b
}

func (b *JWEHeaderBuilder) KeyDerivationFunction(kdf string) *JWEHeaderBuilder {
	b.h.kdf = kdf
	return b
}

func (b *JWEHeaderBuilder) IntegrityAlgorithm(itg string) *JWEHeaderBuilder {
	b.h.itg = itg
	return b
}

func (b *JWEHeaderBuilder) JWKSetURL(jku string) *JWEHeaderBuilder {
	b.h.jku = jku
	return b
}

func (b *JWEHeaderBuilder) JWK(jwk map[string]any) *JWEHeaderBuilder {
	b.h.jwk = jwk
	return b
}

func (b *JWEHeaderBuilder) X509URL(x5u string) *JWEHeaderBuilder {
	b.h.x5u = x5u
	return b
}

func (b *JWEHeaderBuilder) X509CertificateThumbprint(x5t string) *JWEHeaderBuilder {
	b.h.x5t = x5t
	return b
}

func (b *JWEHeaderBuilder) X509CertificateChain(x5c []string) *JWEHeaderBuilder {
	b.h.x5c = x5c
	return b
}

func (b *JWEHeaderBuilder) KeyID(kid string) *JWEHeaderBuilder {
	b.h.kid = kid
	return b
}

func (b *JWEHeaderBuilder) Custom(name ParameterName, value any) *JWEHeaderBuilder {
	if b.h.custom == nil {
		b.h.custom = make(map[ParameterName]any)
	}
	b.h.custom[name] = value
	return b
}

func (b *JWEHeaderBuilder) Build() (*JWEHeader, error) {
	if b.h.alg.IsZero() {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, Algorithm)
	}
	if b.h.enc.IsZero() {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, Encryption)
	}
	if err := checkCustom(b.h.custom, jweReserved); err != nil {
		return nil, err
	}
	h := b.h
	return &h, nil
}

var jweReserved = map[ParameterName]struct{}{
	Algorithm:                 {},
	Type:                      {},
	ContentType:               {},
	JWKSetURL:                 {},
	JSONWebKey:                {},
	X509URL:                   {},
	X509CertificateThumbprint: {},
	X509CertificateChain:      {},
	KeyID:                     {},
	Encryption:                {},
	Compression:               {},
	InitializationVector:      {},
	EphemeralPublicKey:        {},
	KeyDerivationFunction:     {},
	IntegrityAlgorithm:        {},
}
