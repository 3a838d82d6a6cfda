package jws

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"math/big"

	_ "crypto/sha256"
	_ "crypto/sha512"

	"github.com/josekit/jose/pkg/header"
	"github.com/josekit/jose/pkg/jwa"
)

// algorithm to corresponding hash function
var algHash = map[string]crypto.Hash{
	jwa.HS256.Name: crypto.SHA256,
	jwa.HS384.Name: crypto.SHA384,
	jwa.HS512.Name: crypto.SHA512,
	jwa.RS256.Name: crypto.SHA256,
	jwa.RS384.Name: crypto.SHA384,
	jwa.RS512.Name: crypto.SHA512,
	jwa.ES256.Name: crypto.SHA256,
	jwa.ES384.Name: crypto.SHA384,
	jwa.ES512.Name: crypto.SHA512,
	jwa.PS256.Name: crypto.SHA256,
	jwa.PS384.Name: crypto.SHA384,
	jwa.PS512.Name: crypto.SHA512,
}

// HMACSigner signs with a shared secret using the HMAC SHA-2
// algorithms.
type HMACSigner struct {
	Secret []byte
}

func (s *HMACSigner) Algorithms() []jwa.JWSAlgorithm {
	return []jwa.JWSAlgorithm{jwa.HS256, jwa.HS384, jwa.HS512}
}

func (s *HMACSigner) Sign(hdr *header.JWSHeader, signingInput []byte) ([]byte, error) {
	return hmacSignature(hdr.JWSAlgorithm(), s.Secret, signingInput)
}

// HMACVerifier verifies signatures made with a shared secret using the
// HMAC SHA-2 algorithms.
type HMACVerifier struct {
	Secret []byte
}

func (v *HMACVerifier) Verify(hdr *header.JWSHeader, signingInput, signature []byte) (bool, error) {
	expected, err := hmacSignature(hdr.JWSAlgorithm(), v.Secret, signingInput)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, signature), nil
}

func hmacSignature(alg jwa.JWSAlgorithm, secret, signingInput []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("jws: no secret key provided, cannot complete operation")
	}

	hash, err := hashFor(alg, jwa.HS256, jwa.HS384, jwa.HS512)
	if err != nil {
		return nil, err
	}

	h := hmac.New(hash.New, secret)
	h.Write(signingInput)
	return h.Sum(nil), nil
}

// RSASigner signs with an RSA private key using the RSASSA-PKCS1-v1_5
// and RSASSA-PSS algorithms.
type RSASigner struct {
	Key *rsa.PrivateKey
}

func (s *RSASigner) Algorithms() []jwa.JWSAlgorithm {
	return []jwa.JWSAlgorithm{jwa.RS256, jwa.RS384, jwa.RS512, jwa.PS256, jwa.PS384, jwa.PS512}
}

func (s *RSASigner) Sign(hdr *header.JWSHeader, signingInput []byte) ([]byte, error) {
	if s.Key == nil {
		return nil, fmt.Errorf("jws: no RSA private key")
	}

	alg := hdr.JWSAlgorithm()
	hash, err := hashFor(alg, s.Algorithms()...)
	if err != nil {
		return nil, err
	}

	digest := hashSum(hash, signingInput)

	switch alg.Name {
	case jwa.PS256.Name, jwa.PS384.Name, jwa.PS512.Name:
		return rsa.SignPSS(rand.Reader, s.Key, hash, digest, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
	default:
		return rsa.SignPKCS1v15(rand.Reader, s.Key, hash, digest)
	}
}

// RSAVerifier verifies signatures made with an RSA private key using
// the RSASSA-PKCS1-v1_5 and RSASSA-PSS algorithms.
type RSAVerifier struct {
	Key *rsa.PublicKey
}

func (v *RSAVerifier) Verify(hdr *header.JWSHeader, signingInput, signature []byte) (bool, error) {
	if v.Key == nil {
		return false, fmt.Errorf("jws: no RSA public key")
	}

	alg := hdr.JWSAlgorithm()
	hash, err := hashFor(alg, jwa.RS256, jwa.RS384, jwa.RS512, jwa.PS256, jwa.PS384, jwa.PS512)
	if err != nil {
		return false, err
	}

	digest := hashSum(hash, signingInput)

	switch alg.Name {
	case jwa.PS256.Name, jwa.PS384.Name, jwa.PS512.Name:
		err = rsa.VerifyPSS(v.Key, hash, digest, signature, &rsa.PSSOptions{
			SaltLength: rsa.PSSSaltLengthEqualsHash,
		})
	default:
		err = rsa.VerifyPKCS1v15(v.Key, hash, digest, signature)
	}
	return err == nil, nil
}

// curve bit sizes expected per ECDSA algorithm
var ecdsaCurveBits = map[string]int{
	jwa.ES256.Name: 256,
	jwa.ES384.Name: 384,
	jwa.ES512.Name: 521,
}

// ECDSASigner signs with an ECDSA private key. The signature is the
// fixed-width big-endian concatenation of r and s, as the JWA
// serialization requires.
type ECDSASigner struct {
	Key *ecdsa.PrivateKey
}

func (s *ECDSASigner) Algorithms() []jwa.JWSAlgorithm {
	return []jwa.JWSAlgorithm{jwa.ES256, jwa.ES384, jwa.ES512}
}

func (s *ECDSASigner) Sign(hdr *header.JWSHeader, signingInput []byte) ([]byte, error) {
	if s.Key == nil {
		return nil, fmt.Errorf("jws: no ECDSA private key")
	}

	alg := hdr.JWSAlgorithm()
	hash, err := hashFor(alg, s.Algorithms()...)
	if err != nil {
		return nil, err
	}

	curveBits := s.Key.Curve.Params().BitSize
	if curveBits != ecdsaCurveBits[alg.Name] {
		return nil, fmt.Errorf("jws: key curve size %d does not match algorithm %q", curveBits, alg)
	}

	r, sig, err := ecdsa.Sign(rand.Reader, s.Key, hashSum(hash, signingInput))
	if err != nil {
		return nil, fmt.Errorf("jws: failed to sign with ECDSA private key: %w", err)
	}

	keyBytes := (curveBits + 7) / 8

	out := make([]byte, 2*keyBytes)
	r.FillBytes(out[:keyBytes])
	sig.FillBytes(out[keyBytes:])
	return out, nil
}

// ECDSAVerifier verifies signatures made with an ECDSA private key.
type ECDSAVerifier struct {
	Key *ecdsa.PublicKey
}

func (v *ECDSAVerifier) Verify(hdr *header.JWSHeader, signingInput, signature []byte) (bool, error) {
	if v.Key == nil {
		return false, fmt.Errorf("jws: no ECDSA public key")
	}

	alg := hdr.JWSAlgorithm()
	hash, err := hashFor(alg, jwa.ES256, jwa.ES384, jwa.ES512)
	if err != nil {
		return false, err
	}

	curveBits := v.Key.Curve.Params().BitSize
	if curveBits != ecdsaCurveBits[alg.Name] {
		return false, fmt.Errorf("jws: key curve size %d does not match algorithm %q", curveBits, alg)
	}

	keyBytes := (curveBits + 7) / 8
	if len(signature) != 2*keyBytes {
		// A malformed signature is a wrong signature, not an anomaly.
		return false, nil
	}

	r := new(big.Int).SetBytes(signature[:keyBytes])
	s := new(big.Int).SetBytes(signature[keyBytes:])

	return ecdsa.Verify(v.Key, hashSum(hash, signingInput), r, s), nil
}

// EdDSASigner signs with an Ed25519 private key.
//
// https://datatracker.ietf.org/doc/html/rfc8037#section-3.1
type EdDSASigner struct {
	Key ed25519.PrivateKey
}

func (s *EdDSASigner) Algorithms() []jwa.JWSAlgorithm {
	return []jwa.JWSAlgorithm{jwa.EdDSA}
}

func (s *EdDSASigner) Sign(hdr *header.JWSHeader, signingInput []byte) ([]byte, error) {
	if len(s.Key) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("jws: invalid Ed25519 private key size %d", len(s.Key))
	}
	return ed25519.Sign(s.Key, signingInput), nil
}

// EdDSAVerifier verifies signatures made with an Ed25519 private key.
type EdDSAVerifier struct {
	Key ed25519.PublicKey
}

func (v *EdDSAVerifier) Verify(hdr *header.JWSHeader, signingInput, signature []byte) (bool, error) {
	if len(v.Key) != ed25519.PublicKeySize {
		return false, fmt.Errorf("jws: invalid Ed25519 public key size %d", len(v.Key))
	}
	if !hdr.JWSAlgorithm().Equal(jwa.EdDSA) {
		return false, fmt.Errorf("jws: algorithm %q is not EdDSA", hdr.JWSAlgorithm())
	}
	return ed25519.Verify(v.Key, signingInput, signature), nil
}

func hashFor(alg jwa.JWSAlgorithm, supported ...jwa.JWSAlgorithm) (crypto.Hash, error) {
	for _, s := range supported {
		if alg.Equal(s) {
			hash := algHash[alg.Name]
			if !hash.Available() {
				return 0, fmt.Errorf("jws: requested hash for %q is not available", alg)
			}
			return hash, nil
		}
	}
	return 0, fmt.Errorf("jws: algorithm %q not supported by this key type", alg)
}

func hashSum(hash crypto.Hash, input []byte) []byte {
	h := hash.New()
	h.Write(input)
	return h.Sum(nil)
}
