package jwa

import "fmt"

// JWSAlgorithm is a digital signature or MAC algorithm used with
// JSON Web Signature objects.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.1
type JWSAlgorithm struct {
	Algorithm
}

// Equal reports whether the two JWS algorithms have the same name.
func (a JWSAlgorithm) Equal(b JWSAlgorithm) bool {
	return a.Name == b.Name
}

func (a *JWSAlgorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseJWS(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// HMAC with SHA-2 Functions
//
// These algorithms are used to construct a MAC using a shared secret
// and the Hash-based Message Authentication Code (HMAC) construction
// [RFC2104] employing SHA-2 [SHS] hash functions.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.2
var (
	HS256 = JWSAlgorithm{Algorithm{Name: "HS256", Requirement: Required}}
	HS384 = JWSAlgorithm{Algorithm{Name: "HS384", Requirement: Optional}}
	HS512 = JWSAlgorithm{Algorithm{Name: "HS512", Requirement: Optional}}
)

// RSASSA-PKCS1-v1_5
//
// These algorithms are used to digitally sign a JWS and produce a
// JWS Signature using PKCS #1 v1.5 methods. A key of size 2048 bits
// or larger MUST be used with these algorithms.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.3
var (
	RS256 = JWSAlgorithm{Algorithm{Name: "RS256", Requirement: Recommended}}
	RS384 = JWSAlgorithm{Algorithm{Name: "RS384", Requirement: Optional}}
	RS512 = JWSAlgorithm{Algorithm{Name: "RS512", Requirement: Optional}}
)

// ECDSA
//
// These algorithms are used to digitally sign a JWS and produce a
// JWS Signature using ECDSA algorithms.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.4
var (
	ES256 = JWSAlgorithm{Algorithm{Name: "ES256", Requirement: Recommended}}
	ES384 = JWSAlgorithm{Algorithm{Name: "ES384", Requirement: Optional}}
	ES512 = JWSAlgorithm{Algorithm{Name: "ES512", Requirement: Optional}}
)

// RSASSA-PSS
//
// These algorithms are used to digitally sign a JWS and produce a
// JWS Signature using the RSASSA-PSS algorithms. A key of size 2048
// bits or larger MUST be used with these algorithms.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.5
var (
	PS256 = JWSAlgorithm{Algorithm{Name: "PS256", Requirement: Optional}}
	PS384 = JWSAlgorithm{Algorithm{Name: "PS384", Requirement: Optional}}
	PS512 = JWSAlgorithm{Algorithm{Name: "PS512", Requirement: Optional}}
)

// EdDSA signature algorithms.
//
// https://datatracker.ietf.org/doc/html/rfc8037#section-3.1
var EdDSA = JWSAlgorithm{Algorithm{Name: "EdDSA", Requirement: Optional}}

// No signature or MAC performed (unsecured JWS).
//
// # Warning
//
// The use of this algorithm is considered dangerous. Do NOT use this
// algorithm, it's only implemented for completeness.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.6
var None = JWSAlgorithm{Algorithm{Name: "none", Requirement: Optional}}

var jwsAlgorithms = map[string]JWSAlgorithm{
	HS256.Name: HS256, HS384.Name: HS384, HS512.Name: HS512,
	RS256.Name: RS256, RS384.Name: RS384, RS512.Name: RS512,
	ES256.Name: ES256, ES384.Name: ES384, ES512.Name: ES512,
	PS256.Name: PS256, PS384.Name: PS384, PS512.Name: PS512,
	EdDSA.Name: EdDSA, None.Name: None,
}

// ParseJWS returns the well-known JWS algorithm matching the given
// name exactly, or a new ad-hoc value for any other non-empty name.
func ParseJWS(name string) (JWSAlgorithm, error) {
	if name == "" {
		return JWSAlgorithm{}, fmt.Errorf("%w: JWS algorithm", ErrEmptyName)
	}
	if alg, ok := jwsAlgorithms[name]; ok {
		return alg, nil
	}
	return JWSAlgorithm{Algorithm{Name: name}}, nil
}
