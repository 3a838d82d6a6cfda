package jwk

import (
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
)

// RSAKey is an RSA JSON Web Key. The modulus, exponents, and optional
// private CRT fields are held in their base64url wire form.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.3
type RSAKey struct {
	metadata

	n  string
	e  string
	d  string
	p  string
	q  string
	dp string
	dq string
	qi string
}

func (k *RSAKey) sealed() {}

func (k *RSAKey) KeyType() jwa.KeyType {
	return jwa.RSA
}

// N returns the base64url public modulus.
func (k *RSAKey) N() string {
	return k.n
}

// E returns the base64url public exponent.
func (k *RSAKey) E() string {
	return k.e
}

// D returns the base64url private exponent, or "" for a public key.
func (k *RSAKey) D() string {
	return k.d
}

func (k *RSAKey) IsPrivate() bool {
	return k.d != "" || k.p != "" || k.q != "" ||
		k.dp != "" || k.dq != "" || k.qi != ""
}

// Public returns a new RSA key with every private field cleared and
// all public fields identical.
func (k *RSAKey) Public() (Key, error) {
	pub := *k
	pub.d, pub.p, pub.q, pub.dp, pub.dq, pub.qi = "", "", "", "", "", ""
	return &pub, nil
}

func (k *RSAKey) Size() int {
	b, err := base64.Decode(k.n)
	if err != nil {
		return 0
	}
	return new(big.Int).SetBytes(b).BitLen()
}

func (k *RSAKey) MarshalJSON() ([]byte, error) {
	fields := []keyField{
		{KeyTypeParam, jwa.RSA},
		{ModulusParam, k.n},
		{ExponentParam, k.e},
	}
	for _, f := range []keyField{
		{DParam, k.d},
		{FirstPrimeParam, k.p},
		{SecondPrimeParam, k.q},
		{FirstCRTExpParam, k.dp},
		{SecondCRTExpParam, k.dq},
		{CRTCoefficientParam, k.qi},
	} {
		if f.value != "" {
			fields = append(fields, f)
		}
	}
	return marshalKey(append(fields, k.metadataFields()...))
}

// PublicKey returns the key as a standard library RSA public key.
func (k *RSAKey) PublicKey() (*rsa.PublicKey, error) {
	n, err := decodeBigInt(k.n, ModulusParam)
	if err != nil {
		return nil, err
	}
	e, err := decodeBigInt(k.e, ExponentParam)
	if err != nil {
		return nil, err
	}
	return &rsa.PublicKey{N: n, E: int(e.Int64())}, nil
}

// PrivateKey returns the key as a standard library RSA private key,
// or ErrNotPrivate when the private exponent is absent. The CRT
// fields are used when present.
func (k *RSAKey) PrivateKey() (*rsa.PrivateKey, error) {
	if k.d == "" {
		return nil, ErrNotPrivate
	}

	pub, err := k.PublicKey()
	if err != nil {
		return nil, err
	}
	d, err := decodeBigInt(k.d, DParam)
	if err != nil {
		return nil, err
	}

	key := &rsa.PrivateKey{PublicKey: *pub, D: d}

	if k.p != "" && k.q != "" {
		p, err := decodeBigInt(k.p, FirstPrimeParam)
		if err != nil {
			return nil, err
		}
		q, err := decodeBigInt(k.q, SecondPrimeParam)
		if err != nil {
			return nil, err
		}
		key.Primes = []*big.Int{p, q}
		key.Precompute()
	}

	return key, nil
}

// RSAKeyBuilder accumulates the parameters of an RSAKey. Build
// validates the collected parameters and returns the immutable key.
type RSAKeyBuilder struct {
	k RSAKey
}

// NewRSA returns a builder for an RSA key with the given base64url
// modulus and public exponent.
func NewRSA(n, e string) *RSAKeyBuilder {
	b := &RSAKeyBuilder{}
	b.k.n = n
	b.k.e = e
	return b
}

// D sets the base64url private exponent.
func (b *RSAKeyBuilder) D(d string) *RSAKeyBuilder {
	b.k.d = d
	return b
}

// CRT sets the base64url private CRT fields.
func (b *RSAKeyBuilder) CRT(p, q, dp, dq, qi string) *RSAKeyBuilder {
	b.k.p = p
	b.k.q = q
	b.k.dp = dp
	b.k.dq = dq
	b.k.qi = qi
	return b
}

func (b *RSAKeyBuilder) Use(use Use) *RSAKeyBuilder {
	b.k.use = use
	return b
}

func (b *RSAKeyBuilder) Operations(ops ...KeyOperation) *RSAKeyBuilder {
	b.k.ops = ops
	return b
}

func (b *RSAKeyBuilder) Algorithm(alg jwa.Algorithm) *RSAKeyBuilder {
	b.k.alg = alg
	return b
}

func (b *RSAKeyBuilder) KeyID(kid string) *RSAKeyBuilder {
	b.k.kid = kid
	return b
}

func (b *RSAKeyBuilder) Build() (*RSAKey, error) {
	if err := requireBase64(b.k.n, ModulusParam); err != nil {
		return nil, err
	}
	if err := requireBase64(b.k.e, ExponentParam); err != nil {
		return nil, err
	}
	for name, value := range map[ParameterName]string{
		DParam:              b.k.d,
		FirstPrimeParam:     b.k.p,
		SecondPrimeParam:    b.k.q,
		FirstCRTExpParam:    b.k.dp,
		SecondCRTExpParam:   b.k.dq,
		CRTCoefficientParam: b.k.qi,
	} {
		if value != "" && !base64.Valid(value) {
			return nil, fmt.Errorf("%w: %q is not base64url", ErrInvalidParameterType, name)
		}
	}
	k := b.k
	return &k, nil
}
