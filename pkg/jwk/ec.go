package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"fmt"
	"math/big"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
)

// ECKey is an elliptic curve JSON Web Key. The curve point coordinates
// and the optional private scalar are held in their base64url wire
// form.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.2
type ECKey struct {
	metadata

	crv jwa.Curve
	x   string
	y   string
	d   string
}

func (k *ECKey) sealed() {}

func (k *ECKey) KeyType() jwa.KeyType {
	return jwa.EC
}

// Curve returns the key's curve.
func (k *ECKey) Curve() jwa.Curve {
	return k.crv
}

// X returns the base64url x coordinate.
func (k *ECKey) X() string {
	return k.x
}

// Y returns the base64url y coordinate.
func (k *ECKey) Y() string {
	return k.y
}

// D returns the base64url private scalar, or "" for a public key.
func (k *ECKey) D() string {
	return k.d
}

func (k *ECKey) IsPrivate() bool {
	return k.d != ""
}

// Public returns a new EC key with the private scalar cleared and all
// public fields identical.
func (k *ECKey) Public() (Key, error) {
	pub := *k
	pub.d = ""
	return &pub, nil
}

// curve bit sizes for the well-known curves
var curveBits = map[string]int{
	jwa.P256.Name: 256,
	jwa.P384.Name: 384,
	jwa.P521.Name: 521,
}

func (k *ECKey) Size() int {
	if bits, ok := curveBits[k.crv.Name]; ok {
		return bits
	}
	b, err := base64.Decode(k.x)
	if err != nil {
		return 0
	}
	return len(b) * 8
}

func (k *ECKey) MarshalJSON() ([]byte, error) {
	fields := []keyField{
		{KeyTypeParam, jwa.EC},
		{CurveParam, k.crv},
		{XParam, k.x},
		{YParam, k.y},
	}
	if k.d != "" {
		fields = append(fields, keyField{DParam, k.d})
	}
	return marshalKey(append(fields, k.metadataFields()...))
}

// PublicKey returns the key as a standard library ECDSA public key.
func (k *ECKey) PublicKey() (*ecdsa.PublicKey, error) {
	curve, err := standardCurve(k.crv)
	if err != nil {
		return nil, err
	}

	x, err := decodeBigInt(k.x, XParam)
	if err != nil {
		return nil, err
	}
	y, err := decodeBigInt(k.y, YParam)
	if err != nil {
		return nil, err
	}

	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}

// PrivateKey returns the key as a standard library ECDSA private key,
// or ErrNotPrivate when the private scalar is absent.
func (k *ECKey) PrivateKey() (*ecdsa.PrivateKey, error) {
	if !k.IsPrivate() {
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

	return &ecdsa.PrivateKey{PublicKey: *pub, D: d}, nil
}

func standardCurve(crv jwa.Curve) (elliptic.Curve, error) {
	switch crv.Name {
	case jwa.P256.Name:
		return elliptic.P256(), nil
	case jwa.P384.Name:
		return elliptic.P384(), nil
	case jwa.P521.Name:
		return elliptic.P521(), nil
	default:
		return nil, fmt.Errorf("jwk: no standard curve for %q", crv)
	}
}

func decodeBigInt(encoded string, name ParameterName) (*big.Int, error) {
	b, err := base64.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidParameterType, name, err)
	}
	return new(big.Int).SetBytes(b), nil
}

// ECKeyBuilder accumulates the parameters of an ECKey. Build validates
// the collected parameters and returns the immutable key.
type ECKeyBuilder struct {
	k ECKey
}

// NewEC returns a builder for an EC key with the given curve and
// base64url public coordinates.
func NewEC(crv jwa.Curve, x, y string) *ECKeyBuilder {
	b := &ECKeyBuilder{}
	b.k.crv = crv
	b.k.x = x
	b.k.y = y
	return b
}

// D sets the base64url private scalar.
func (b *ECKeyBuilder) D(d string) *ECKeyBuilder {
	b.k.d = d
	return b
}

func (b *ECKeyBuilder) Use(use Use) *ECKeyBuilder {
	b.k.use = use
	return b
}

func (b *ECKeyBuilder) Operations(ops ...KeyOperation) *ECKeyBuilder {
	b.k.ops = ops
	return b
}

func (b *ECKeyBuilder) Algorithm(alg jwa.Algorithm) *ECKeyBuilder {
	b.k.alg = alg
	return b
}

func (b *ECKeyBuilder) KeyID(kid string) *ECKeyBuilder {
	b.k.kid = kid
	return b
}

func (b *ECKeyBuilder) Build() (*ECKey, error) {
	if b.k.crv.IsZero() {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, CurveParam)
	}
	if err := requireBase64(b.k.x, XParam); err != nil {
		return nil, err
	}
	if err := requireBase64(b.k.y, YParam); err != nil {
		return nil, err
	}
	if b.k.d != "" && !base64.Valid(b.k.d) {
		return nil, fmt.Errorf("%w: %q is not base64url", ErrInvalidParameterType, DParam)
	}
	k := b.k
	return &k, nil
}

func requireBase64(value string, name ParameterName) error {
	if value == "" {
		return fmt.Errorf("%w: %q", ErrParameterNotFound, name)
	}
	if !base64.Valid(value) {
		return fmt.Errorf("%w: %q is not base64url", ErrInvalidParameterType, name)
	}
	return nil
}
