// Package jwe implements JSON Web Encryption objects: a protected
// header and payload pair that is encrypted, serialized, parsed, and
// decrypted through an explicit lifecycle.
//
// The compact wire contract of this package is the four segment
// layout: header, encrypted key, cipher text, and integrity value,
// separated by three dots. The encrypted key and integrity value
// segments are the empty string when the algorithm omits them; the
// initialization vector travels in the protected header ("iv"), never
// as its own segment.
//
// https://www.rfc-editor.org/rfc/rfc7516.html
package jwe

import (
	"errors"
	"fmt"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/compact"
	"github.com/josekit/jose/pkg/header"
	"github.com/josekit/jose/pkg/jwa"
	"github.com/josekit/jose/pkg/payload"
	"golang.org/x/exp/slices"
)

var (
	// ErrInvalidState is returned when an operation is attempted from
	// a lifecycle state that forbids it.
	ErrInvalidState = errors.New("jwe: invalid state")

	// ErrAlgorithmNotSupported is returned by Encrypt when the header
	// algorithm or encryption method is outside the encrypter's
	// supported set.
	ErrAlgorithmNotSupported = errors.New("jwe: algorithm not supported by encrypter")
)

// State is the lifecycle state of a JWE object. Transitions only move
// forward: Unencrypted to Encrypted by Encrypt, Encrypted to Decrypted
// by a successful Decrypt. Decrypted is terminal; unlike JWS
// verification, decryption is not repeatable.
type State int

const (
	Unencrypted State = iota
	Encrypted
	Decrypted
)

func (s State) String() string {
	switch s {
	case Unencrypted:
		return "unencrypted"
	case Encrypted:
		return "encrypted"
	case Decrypted:
		return "decrypted"
	default:
		return fmt.Sprintf("unknown state %d", int(s))
	}
}

// Result is the output of an encryption operation. The encrypted key
// and integrity value may be absent; an initialization vector, when
// present, is folded into the object's protected header.
type Result struct {
	EncryptedKey         []byte
	InitializationVector []byte
	CipherText           []byte
	IntegrityValue       []byte
}

// Encrypter performs the cryptographic transform of an Encrypt call.
// Implementations declare the key management algorithms and content
// encryption methods they support.
type Encrypter interface {
	Algorithms() []jwa.JWEAlgorithm
	EncryptionMethods() []jwa.EncryptionMethod

	Encrypt(hdr *header.JWEHeader, clearText []byte) (*Result, error)
}

// Decrypter performs the cryptographic transform of a Decrypt call,
// recovering the plaintext. Failure to decrypt is an error: there is
// no boolean outcome as with signature verification.
type Decrypter interface {
	Decrypt(hdr *header.JWEHeader, encryptedKey, cipherText, integrityValue []byte) ([]byte, error)
}

// Object is a JWE object. Objects are mutated only through their
// lifecycle transitions and must not be encrypted or decrypted
// concurrently; finalized fields are safe for concurrent reads.
type Object struct {
	hdr            *header.JWEHeader
	pl             *payload.Payload
	encryptedKey   []byte
	cipherText     []byte
	integrityValue []byte

	// original segments of a parsed object, kept so that
	// re-serialization reproduces the input byte for byte
	raw []string

	state State
}

// New returns an unencrypted JWE object over the given header and
// payload.
func New(hdr *header.JWEHeader, pl *payload.Payload) (*Object, error) {
	if hdr == nil {
		return nil, fmt.Errorf("jwe: cannot create object with nil header")
	}
	if pl == nil {
		return nil, fmt.Errorf("jwe: cannot create object with nil payload")
	}
	return &Object{hdr: hdr, pl: pl, state: Unencrypted}, nil
}

// Parse parses a compact JWE serialization. The returned object is in
// the Encrypted state: parsing alone establishes nothing about the
// ciphertext's integrity or validity.
func Parse(input string) (*Object, error) {
	parts, err := compact.Split(input)
	if err != nil {
		return nil, err
	}
	if len(parts) != compact.PartsJWE {
		return nil, fmt.Errorf("%w: missing part delimiter %d",
			compact.ErrInvalidSerialization, compact.PartsJWE-1)
	}
	return FromParts(parts[0], parts[1], parts[2], parts[3])
}

// FromParts assembles a JWE object from the four compact segments.
// The encrypted key and integrity value segments may be empty.
func FromParts(part1, part2, part3, part4 string) (*Object, error) {
	h, err := header.ParseBase64URL(part1)
	if err != nil {
		return nil, err
	}
	hdr, ok := h.(*header.JWEHeader)
	if !ok {
		return nil, fmt.Errorf("jwe: header is a %s header, not a JWE header", h.Kind())
	}

	encryptedKey, err := base64.Decode(part2)
	if err != nil {
		return nil, fmt.Errorf("jwe: failed to decode encrypted key segment: %w", err)
	}
	cipherText, err := base64.Decode(part3)
	if err != nil {
		return nil, fmt.Errorf("jwe: failed to decode cipher text segment: %w", err)
	}
	integrityValue, err := base64.Decode(part4)
	if err != nil {
		return nil, fmt.Errorf("jwe: failed to decode integrity value segment: %w", err)
	}

	return &Object{
		hdr:            hdr,
		encryptedKey:   encryptedKey,
		cipherText:     cipherText,
		integrityValue: integrityValue,
		raw:            []string{part1, part2, part3, part4},
		state:          Encrypted,
	}, nil
}

// Header returns the protected header.
func (o *Object) Header() header.Header {
	return o.hdr
}

// JWEHeader returns the typed protected header.
func (o *Object) JWEHeader() *header.JWEHeader {
	return o.hdr
}

// Payload returns the payload: the clear text for a constructed
// object, the recovered plaintext after decryption, and nil for a
// parsed object that has not been decrypted.
func (o *Object) Payload() *payload.Payload {
	return o.pl
}

// EncryptedKey returns the encrypted key bytes, which may be empty.
func (o *Object) EncryptedKey() []byte {
	return o.encryptedKey
}

// CipherText returns the cipher text bytes.
func (o *Object) CipherText() []byte {
	return o.cipherText
}

// IntegrityValue returns the integrity value bytes, which may be
// empty.
func (o *Object) IntegrityValue() []byte {
	return o.integrityValue
}

// State returns the current lifecycle state.
func (o *Object) State() State {
	return o.state
}

// Encrypt encrypts the object, transitioning it from Unencrypted to
// Encrypted. The header algorithm and encryption method must be in
// the encrypter's supported sets. An initialization vector minted by
// the encrypter is folded into a derived copy of the header.
func (o *Object) Encrypt(encrypter Encrypter) error {
	if o.state != Unencrypted {
		return fmt.Errorf("%w: cannot encrypt in state %q", ErrInvalidState, o.state)
	}

	alg := o.hdr.JWEAlgorithm()
	if !slices.ContainsFunc(encrypter.Algorithms(), alg.Equal) {
		return fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, alg)
	}
	enc := o.hdr.EncryptionMethod()
	if !slices.ContainsFunc(encrypter.EncryptionMethods(), enc.Equal) {
		return fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, enc)
	}

	result, err := encrypter.Encrypt(o.hdr, o.pl.Bytes())
	if err != nil {
		return fmt.Errorf("jwe: failed to encrypt: %w", err)
	}

	if len(result.InitializationVector) > 0 {
		o.hdr = o.hdr.WithInitializationVector(base64.Encode(result.InitializationVector))
	}
	o.encryptedKey = result.EncryptedKey
	o.cipherText = result.CipherText
	o.integrityValue = result.IntegrityValue
	o.state = Encrypted
	return nil
}

// Decrypt decrypts the object, transitioning it from Encrypted to
// Decrypted and replacing the payload with the recovered plaintext.
// Decrypting an already decrypted object is an invalid state, not a
// repeatable operation.
func (o *Object) Decrypt(decrypter Decrypter) error {
	if o.state != Encrypted {
		return fmt.Errorf("%w: cannot decrypt in state %q", ErrInvalidState, o.state)
	}

	clearText, err := decrypter.Decrypt(o.hdr, o.encryptedKey, o.cipherText, o.integrityValue)
	if err != nil {
		return fmt.Errorf("jwe: failed to decrypt: %w", err)
	}

	o.pl = payload.NewBytes(clearText)
	o.state = Decrypted
	return nil
}

// Serialize returns the compact serialization: the four segments
// separated by three dots. Only encrypted or decrypted objects
// serialize; for a parsed object the output reproduces the input byte
// for byte.
func (o *Object) Serialize() (string, error) {
	if o.state == Unencrypted {
		return "", fmt.Errorf("%w: cannot serialize in state %q", ErrInvalidState, o.state)
	}

	if o.raw != nil {
		return compact.Join(o.raw...), nil
	}

	encodedHeader, err := o.hdr.Base64URL()
	if err != nil {
		return "", fmt.Errorf("jwe: failed to encode header: %w", err)
	}

	return compact.Join(
		encodedHeader,
		base64.Encode(o.encryptedKey),
		base64.Encode(o.cipherText),
		base64.Encode(o.integrityValue),
	), nil
}
