package jwk

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"fmt"
	"math/big"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
)

// FromPublicKey converts a standard library public key into a JSON Web
// Key. RSA and ECDSA public keys are supported.
func FromPublicKey(key any) (Key, error) {
	switch key := key.(type) {
	case *rsa.PublicKey:
		return fromRSAPublicKey(key)
	case *ecdsa.PublicKey:
		return fromECDSAPublicKey(key)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyType, key)
	}
}

// FromPrivateKey converts a standard library private key into a JSON
// Web Key carrying its private material.
func FromPrivateKey(key any) (Key, error) {
	switch key := key.(type) {
	case *rsa.PrivateKey:
		return fromRSAPrivateKey(key)
	case *ecdsa.PrivateKey:
		return fromECDSAPrivateKey(key)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKeyType, key)
	}
}

func fromRSAPublicKey(key *rsa.PublicKey) (*RSAKey, error) {
	n := base64.Encode(key.N.Bytes())
	e := base64.Encode(big.NewInt(int64(key.E)).Bytes())
	return NewRSA(n, e).Build()
}

func fromRSAPrivateKey(key *rsa.PrivateKey) (*RSAKey, error) {
	builder := NewRSA(
		base64.Encode(key.N.Bytes()),
		base64.Encode(big.NewInt(int64(key.E)).Bytes()),
	).D(base64.Encode(key.D.Bytes()))

	if len(key.Primes) == 2 {
		precomputed := key
		if key.Precomputed.Dp == nil {
			clone := *key
			clone.Precompute()
			precomputed = &clone
		}
		builder.CRT(
			base64.Encode(precomputed.Primes[0].Bytes()),
			base64.Encode(precomputed.Primes[1].Bytes()),
			base64.Encode(precomputed.Precomputed.Dp.Bytes()),
			base64.Encode(precomputed.Precomputed.Dq.Bytes()),
			base64.Encode(precomputed.Precomputed.Qinv.Bytes()),
		)
	}
	return builder.Build()
}

func fromECDSAPublicKey(key *ecdsa.PublicKey) (*ECKey, error) {
	crv, err := jwaCurve(key)
	if err != nil {
		return nil, err
	}
	size := (key.Curve.Params().BitSize + 7) / 8
	x := base64.Encode(key.X.FillBytes(make([]byte, size)))
	y := base64.Encode(key.Y.FillBytes(make([]byte, size)))
	return NewEC(crv, x, y).Build()
}

func fromECDSAPrivateKey(key *ecdsa.PrivateKey) (*ECKey, error) {
	crv, err := jwaCurve(&key.PublicKey)
	if err != nil {
		return nil, err
	}
	size := (key.Curve.Params().BitSize + 7) / 8
	x := base64.Encode(key.X.FillBytes(make([]byte, size)))
	y := base64.Encode(key.Y.FillBytes(make([]byte, size)))
	d := base64.Encode(key.D.FillBytes(make([]byte, size)))
	return NewEC(crv, x, y).D(d).Build()
}

func jwaCurve(key *ecdsa.PublicKey) (jwa.Curve, error) {
	switch key.Curve.Params().Name {
	case "P-256":
		return jwa.P256, nil
	case "P-384":
		return jwa.P384, nil
	case "P-521":
		return jwa.P521, nil
	default:
		return jwa.Curve{}, fmt.Errorf("jwk: unsupported curve %q", key.Curve.Params().Name)
	}
}
