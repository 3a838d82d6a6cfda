package jwk

import (
	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
)

// OctetSequenceKey is a symmetric JSON Web Key: a single key value in
// its base64url wire form.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.4
type OctetSequenceKey struct {
	metadata

	k string
}

func (k *OctetSequenceKey) sealed() {}

func (k *OctetSequenceKey) KeyType() jwa.KeyType {
	return jwa.Oct
}

// K returns the base64url key value.
func (k *OctetSequenceKey) K() string {
	return k.k
}

// KeyValue returns the decoded key bytes.
func (k *OctetSequenceKey) KeyValue() ([]byte, error) {
	return base64.Decode(k.k)
}

// IsPrivate always reports true: the key value of a symmetric key is
// private material.
func (k *OctetSequenceKey) IsPrivate() bool {
	return true
}

// Public returns ErrNoPublicForm: a symmetric key has no public
// projection.
func (k *OctetSequenceKey) Public() (Key, error) {
	return nil, ErrNoPublicForm
}

func (k *OctetSequenceKey) Size() int {
	b, err := base64.Decode(k.k)
	if err != nil {
		return 0
	}
	return len(b) * 8
}

func (k *OctetSequenceKey) MarshalJSON() ([]byte, error) {
	fields := []keyField{
		{KeyTypeParam, jwa.Oct},
		{KeyValueParam, k.k},
	}
	return marshalKey(append(fields, k.metadataFields()...))
}

// OctetSequenceKeyBuilder accumulates the parameters of an
// OctetSequenceKey. Build validates the collected parameters and
// returns the immutable key.
type OctetSequenceKeyBuilder struct {
	k OctetSequenceKey
}

// NewOct returns a builder for a symmetric key with the given
// base64url key value.
func NewOct(k string) *OctetSequenceKeyBuilder {
	b := &OctetSequenceKeyBuilder{}
	b.k.k = k
	return b
}

// NewOctBytes returns a builder for a symmetric key with the given
// raw key bytes.
func NewOctBytes(key []byte) *OctetSequenceKeyBuilder {
	return NewOct(base64.Encode(key))
}

func (b *OctetSequenceKeyBuilder) Use(use Use) *OctetSequenceKeyBuilder {
	b.k.use = use
	return b
}

func (b *OctetSequenceKeyBuilder) Operations(ops ...KeyOperation) *OctetSequenceKeyBuilder {
	b.k.ops = ops
	return b
}

func (b *OctetSequenceKeyBuilder) Algorithm(alg jwa.Algorithm) *OctetSequenceKeyBuilder {
	b.k.alg = alg
	return b
}

func (b *OctetSequenceKeyBuilder) KeyID(kid string) *OctetSequenceKeyBuilder {
	b.k.kid = kid
	return b
}

func (b *OctetSequenceKeyBuilder) Build() (*OctetSequenceKey, error) {
	if err := requireBase64(b.k.k, KeyValueParam); err != nil {
		return nil, err
	}
	k := b.k
	return &k, nil
}
