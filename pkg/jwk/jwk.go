// Package jwk implements the JSON Web Key data model: EC, RSA, and
// octet sequence keys, ordered key sets, and a multi-criteria matcher
// used for key discovery during rotation.
//
// https://datatracker.ietf.org/doc/html/rfc7517
package jwk

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/josekit/jose/pkg/jwa"
)

type ParameterName = string

// Common JWK parameter names.
//
// https://datatracker.ietf.org/doc/html/rfc7517#section-4
const (
	KeyTypeParam       ParameterName = "kty"
	PublicKeyUseParam  ParameterName = "use"
	KeyOperationsParam ParameterName = "key_ops"
	AlgorithmParam     ParameterName = "alg"
	KeyIDParam         ParameterName = "kid"
)

// EC key parameter names.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.2
const (
	CurveParam ParameterName = "crv"
	XParam     ParameterName = "x"
	YParam     ParameterName = "y"
	DParam     ParameterName = "d"
)

// RSA key parameter names.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.3
const (
	ModulusParam        ParameterName = "n"
	ExponentParam       ParameterName = "e"
	FirstPrimeParam     ParameterName = "p"
	SecondPrimeParam    ParameterName = "q"
	FirstCRTExpParam    ParameterName = "dp"
	SecondCRTExpParam   ParameterName = "dq"
	CRTCoefficientParam ParameterName = "qi"
)

// Octet sequence key parameter names.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.4
const (
	KeyValueParam ParameterName = "k"
)

var (
	// ErrParameterNotFound is returned when a mandatory key parameter
	// is absent.
	ErrParameterNotFound = errors.New("jwk: parameter not found")

	// ErrInvalidParameterType is returned when a key parameter does
	// not have its expected JSON shape or encoding.
	ErrInvalidParameterType = errors.New("jwk: invalid parameter type")

	// ErrUnsupportedKeyType is returned when the "kty" discriminator
	// names a key type this package does not model.
	ErrUnsupportedKeyType = errors.New("jwk: unsupported key type")

	// ErrNoPublicForm is returned by Public on symmetric keys, which
	// have no public projection.
	ErrNoPublicForm = errors.New("jwk: key has no public form")

	// ErrNotPrivate is returned when private key material is required
	// but absent.
	ErrNotPrivate = errors.New("jwk: key is not private")
)

// Use is the intended use of a public key, carried in its "use"
// parameter. The zero value means the key declares no use and doubles
// as the "unspecified" sentinel in key matching.
//
// https://datatracker.ietf.org/doc/html/rfc7517#section-4.2
type Use string

const (
	UseUnspecified Use = ""
	UseSignature   Use = "sig"
	UseEncryption  Use = "enc"
)

// KeyOperation is an operation a key is intended for, carried in its
// "key_ops" parameter. The zero value is the "unspecified" sentinel
// in key matching.
//
// https://datatracker.ietf.org/doc/html/rfc7517#section-4.3
type KeyOperation string

const (
	OpUnspecified KeyOperation = ""
	OpSign        KeyOperation = "sign"
	OpVerify      KeyOperation = "verify"
	OpEncrypt     KeyOperation = "encrypt"
	OpDecrypt     KeyOperation = "decrypt"
	OpWrapKey     KeyOperation = "wrapKey"
	OpUnwrapKey   KeyOperation = "unwrapKey"
	OpDeriveKey   KeyOperation = "deriveKey"
	OpDeriveBits  KeyOperation = "deriveBits"
)

// Key is a JSON Web Key of one of the three modeled families: *ECKey,
// *RSAKey, or *OctetSequenceKey. Keys are immutable once built.
type Key interface {
	// KeyType returns the key's algorithm family ("kty").
	KeyType() jwa.KeyType

	// Use returns the intended use, or UseUnspecified.
	Use() Use

	// Operations returns a copy of the intended operations, or nil.
	Operations() []KeyOperation

	// Algorithm returns the intended algorithm ("alg"), or the zero
	// value when the key declares none.
	Algorithm() jwa.Algorithm

	// KeyID returns the key id ("kid"), or "".
	KeyID() string

	// IsPrivate reports whether any private-only field is present.
	IsPrivate() bool

	// Public returns a new key with identical public fields and all
	// private-only fields cleared. The receiver is never modified.
	// Symmetric keys return ErrNoPublicForm.
	Public() (Key, error)

	// Size returns the key size in bits.
	Size() int

	// MarshalJSON serializes the key with "kty" first, the family
	// material next, and the common metadata last.
	MarshalJSON() ([]byte, error)

	sealed()
}

// metadata holds the common parameters shared by every key family.
type metadata struct {
	use Use
	ops []KeyOperation
	alg jwa.Algorithm
	kid string
}

func (m *metadata) Use() Use {
	return m.use
}

func (m *metadata) Operations() []KeyOperation {
	if m.ops == nil {
		return nil
	}
	ops := make([]KeyOperation, len(m.ops))
	copy(ops, m.ops)
	return ops
}

func (m *metadata) Algorithm() jwa.Algorithm {
	return m.alg
}

func (m *metadata) KeyID() string {
	return m.kid
}

// metadataFields returns the present common parameters in
// serialization order.
func (m *metadata) metadataFields() []keyField {
	var fields []keyField
	if m.use != UseUnspecified {
		fields = append(fields, keyField{PublicKeyUseParam, string(m.use)})
	}
	if m.ops != nil {
		fields = append(fields, keyField{KeyOperationsParam, m.ops})
	}
	if !m.alg.IsZero() {
		fields = append(fields, keyField{AlgorithmParam, m.alg})
	}
	if m.kid != "" {
		fields = append(fields, keyField{KeyIDParam, m.kid})
	}
	return fields
}

type keyField struct {
	name  ParameterName
	value any
}

// marshalKey serializes the given fields in order.
func marshalKey(fields []keyField) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	buf.WriteByte('{')

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		nameJSON, err := json.Marshal(f.name)
		if err != nil {
			return nil, fmt.Errorf("jwk: failed to encode parameter name %q: %w", f.name, err)
		}
		valueJSON, err := json.Marshal(f.value)
		if err != nil {
			return nil, fmt.Errorf("jwk: failed to encode parameter %q: %w", f.name, err)
		}
		buf.Write(nameJSON)
		buf.WriteByte(':')
		buf.Write(valueJSON)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
