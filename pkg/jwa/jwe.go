package jwa

import "fmt"

// JWEAlgorithm is a key management algorithm used with JSON Web
// Encryption objects to determine the content encryption key.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-4.1
type JWEAlgorithm struct {
	Algorithm
}

// Equal reports whether the two JWE algorithms have the same name.
func (a JWEAlgorithm) Equal(b JWEAlgorithm) bool {
	return a.Name == b.Name
}

func (a *JWEAlgorithm) UnmarshalText(text []byte) error {
	parsed, err := ParseJWE(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Key management algorithms.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-4.1
var (
	RSA1_5       = JWEAlgorithm{Algorithm{Name: "RSA1_5", Requirement: Recommended}}
	RSAOAEP      = JWEAlgorithm{Algorithm{Name: "RSA-OAEP", Requirement: Recommended}}
	RSAOAEP256   = JWEAlgorithm{Algorithm{Name: "RSA-OAEP-256", Requirement: Optional}}
	A128KW       = JWEAlgorithm{Algorithm{Name: "A128KW", Requirement: Recommended}}
	A192KW       = JWEAlgorithm{Algorithm{Name: "A192KW", Requirement: Optional}}
	A256KW       = JWEAlgorithm{Algorithm{Name: "A256KW", Requirement: Recommended}}
	Direct       = JWEAlgorithm{Algorithm{Name: "dir", Requirement: Recommended}}
	ECDHES       = JWEAlgorithm{Algorithm{Name: "ECDH-ES", Requirement: Recommended}}
	ECDHESA128KW = JWEAlgorithm{Algorithm{Name: "ECDH-ES+A128KW", Requirement: Recommended}}
	ECDHESA192KW = JWEAlgorithm{Algorithm{Name: "ECDH-ES+A192KW", Requirement: Optional}}
	ECDHESA256KW = JWEAlgorithm{Algorithm{Name: "ECDH-ES+A256KW", Requirement: Recommended}}
	A128GCMKW    = JWEAlgorithm{Algorithm{Name: "A128GCMKW", Requirement: Optional}}
	A192GCMKW    = JWEAlgorithm{Algorithm{Name: "A192GCMKW", Requirement: Optional}}
	A256GCMKW    = JWEAlgorithm{Algorithm{Name: "A256GCMKW", Requirement: Optional}}
	PBES2HS256   = JWEAlgorithm{Algorithm{Name: "PBES2-HS256+A128KW", Requirement: Optional}}
	PBES2HS384   = JWEAlgorithm{Algorithm{Name: "PBES2-HS384+A192KW", Requirement: Optional}}
	PBES2HS512   = JWEAlgorithm{Algorithm{Name: "PBES2-HS512+A256KW", Requirement: Optional}}
)

var jweAlgorithms = map[string]JWEAlgorithm{
	RSA1_5.Name: RSA1_5, RSAOAEP.Name: RSAOAEP, RSAOAEP256.Name: RSAOAEP256,
	A128KW.Name: A128KW, A192KW.Name: A192KW, A256KW.Name: A256KW,
	Direct.Name: Direct,
	ECDHES.Name: ECDHES, ECDHESA128KW.Name: ECDHESA128KW,
	ECDHESA192KW.Name: ECDHESA192KW, ECDHESA256KW.Name: ECDHESA256KW,
	A128GCMKW.Name: A128GCMKW, A192GCMKW.Name: A192GCMKW, A256GCMKW.Name: A256GCMKW,
	PBES2HS256.Name: PBES2HS256, PBES2HS384.Name: PBES2HS384, PBES2HS512.Name: PBES2HS512,
}

// ParseJWE returns the well-known JWE key management algorithm matching
// the given name exactly, or a new ad-hoc value for any other non-empty
// name.
func ParseJWE(name string) (JWEAlgorithm, error) {
	if name == "" {
		return JWEAlgorithm{}, fmt.Errorf("%w: JWE algorithm", ErrEmptyName)
	}
	if alg, ok := jweAlgorithms[name]; ok {
		return alg, nil
	}
	return JWEAlgorithm{Algorithm{Name: name}}, nil
}

// EncryptionMethod is a content encryption algorithm used with JSON
// Web Encryption objects to encrypt the plaintext.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-5.1
type EncryptionMethod struct {
	Algorithm
}

// Equal reports whether the two encryption methods have the same name.
func (m EncryptionMethod) Equal(other EncryptionMethod) bool {
	return m.Name == other.Name
}

func (m *EncryptionMethod) UnmarshalText(text []byte) error {
	parsed, err := ParseEncryptionMethod(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Content encryption algorithms.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-5.1
var (
	A128CBCHS256 = EncryptionMethod{Algorithm{Name: "A128CBC-HS256", Requirement: Required}}
	A192CBCHS384 = EncryptionMethod{Algorithm{Name: "A192CBC-HS384", Requirement: Optional}}
	A256CBCHS512 = EncryptionMethod{Algorithm{Name: "A256CBC-HS512", Requirement: Required}}
	A128GCM      = EncryptionMethod{Algorithm{Name: "A128GCM", Requirement: Recommended}}
	A192GCM      = EncryptionMethod{Algorithm{Name: "A192GCM", Requirement: Optional}}
	A256GCM      = EncryptionMethod{Algorithm{Name: "A256GCM", Requirement: Recommended}}
)

var encryptionMethods = map[string]EncryptionMethod{
	A128CBCHS256.Name: A128CBCHS256, A192CBCHS384.Name: A192CBCHS384, A256CBCHS512.Name: A256CBCHS512,
	A128GCM.Name: A128GCM, A192GCM.Name: A192GCM, A256GCM.Name: A256GCM,
}

// ParseEncryptionMethod returns the well-known content encryption
// method matching the given name exactly, or a new ad-hoc value for
// any other non-empty name.
func ParseEncryptionMethod(name string) (EncryptionMethod, error) {
	if name == "" {
		return EncryptionMethod{}, fmt.Errorf("%w: encryption method", ErrEmptyName)
	}
	if m, ok := encryptionMethods[name]; ok {
		return m, nil
	}
	return EncryptionMethod{Algorithm{Name: name}}, nil
}
