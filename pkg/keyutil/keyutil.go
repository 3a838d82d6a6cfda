// Package keyutil loads signing and encryption keys from their common
// encodings and generates fresh key material.
package keyutil

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/rsa"
	"crypto/subtle"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

var ErrInvalidPEM = errors.New("keyutil: failed to decode PEM block")

// NewKeyID returns a fresh random key id suitable for the "kid"
// parameter of a JWK or a protected header.
func NewKeyID() string {
	return uuid.NewString()
}

// NewSymmetricKey generates a new symmetric key of the given size.
func NewSymmetricKey(size int) ([]byte, error) {
	key := make([]byte, size)

	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate new symmetric key: %w", err)
	}
	return key, nil
}

// SymmetricKeysEqual checks if the given keys are the same in
// constant time.
func SymmetricKeysEqual(key1 []byte, key2 []byte) bool {
	return subtle.ConstantTimeCompare(key1, key2) == 1
}

// decodePEM reads all of r and returns the DER bytes of its first
// PEM block.
func decodePEM(r io.Reader) ([]byte, error) {
	keyBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("keyutil: failed to read key: %w", err)
	}

	block, _ := pem.Decode(keyBytes)
	if block == nil {
		return nil, ErrInvalidPEM
	}
	return block.Bytes, nil
}

// parsePublicDER parses a DER encoded public key, falling back to the
// subject public key of a certificate.
func parsePublicDER(der []byte) (any, error) {
	key, err := x509.ParsePKIXPublicKey(der)
	if err == nil {
		return key, nil
	}

	cert, certErr := x509.ParseCertificate(der)
	if certErr == nil {
		return cert.PublicKey, nil
	}
	return nil, fmt.Errorf("keyutil: failed to parse public key: %w", err)
}

// parsePrivateDER parses a DER encoded private key in any of the
// PKCS#1, PKCS#8, or SEC 1 encodings.
func parsePrivateDER(der []byte) (any, error) {
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	return nil, errors.New("keyutil: failed to parse private key, unknown type")
}

// ParsePublicKey parses the PEM encoded public key from the given reader.
func ParsePublicKey(r io.Reader) (any, error) {
	der, err := decodePEM(r)
	if err != nil {
		return nil, err
	}
	return parsePublicDER(der)
}

// ParsePrivateKey parses the PEM encoded private key from the given reader.
func ParsePrivateKey(r io.Reader) (any, error) {
	der, err := decodePEM(r)
	if err != nil {
		return nil, err
	}
	return parsePrivateDER(der)
}

// ParseRSAPublicKey parses the PEM encoded RSA public key from the given reader.
func ParseRSAPublicKey(r io.Reader) (*rsa.PublicKey, error) {
	key, err := ParsePublicKey(r)
	if err != nil {
		return nil, err
	}

	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("keyutil: invalid type %T for RSA public key", key)
	}
	return rsaKey, nil
}

// ParseRSAPrivateKey parses the PEM encoded RSA private key from the given reader.
func ParseRSAPrivateKey(r io.Reader) (*rsa.PrivateKey, error) {
	key, err := ParsePrivateKey(r)
	if err != nil {
		return nil, err
	}

	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("keyutil: invalid type %T for RSA private key", key)
	}
	return rsaKey, nil
}

// ParseECDSAPublicKey parses the PEM encoded ECDSA public key from the given reader.
func ParseECDSAPublicKey(r io.Reader) (*ecdsa.PublicKey, error) {
	key, err := ParsePublicKey(r)
	if err != nil {
		return nil, err
	}

	ecdsaKey, ok := key.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("keyutil: invalid type %T for ECDSA public key", key)
	}
	return ecdsaKey, nil
}

// ParseECDSAPrivateKey parses the PEM encoded ECDSA private key from the given reader.
func ParseECDSAPrivateKey(r io.Reader) (*ecdsa.PrivateKey, error) {
	key, err := ParsePrivateKey(r)
	if err != nil {
		return nil, err
	}

	ecdsaKey, ok := key.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("keyutil: invalid type %T for ECDSA private key", key)
	}
	return ecdsaKey, nil
}

// ParseEdDSAPublicKey parses the PEM encoded Ed25519 public key from the given reader.
func ParseEdDSAPublicKey(r io.Reader) (ed25519.PublicKey, error) {
	key, err := ParsePublicKey(r)
	if err != nil {
		return nil, err
	}

	edKey, ok := key.(ed25519.PublicKey)
	if !ok {
		return nil, fmt.Errorf("keyutil: invalid type %T for EdDSA public key", key)
	}
	return edKey, nil
}

// ParseEdDSAPrivateKey parses the PEM encoded Ed25519 private key from the given reader.
func ParseEdDSAPrivateKey(r io.Reader) (ed25519.PrivateKey, error) {
	key, err := ParsePrivateKey(r)
	if err != nil {
		return nil, err
	}

	edKey, ok := key.(ed25519.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("keyutil: invalid type %T for EdDSA private key", key)
	}
	return edKey, nil
}
