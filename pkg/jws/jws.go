// Package jws implements JSON Web Signature objects: a protected
// header and payload pair that is signed, serialized, parsed, and
// verified through an explicit lifecycle.
//
// https://datatracker.ietf.org/doc/html/rfc7515
package jws

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
	ErrInvalidState = errors.New("jws: invalid state")

	// ErrAlgorithmNotSupported is returned by Sign when the header
	// algorithm is outside the signer's supported set.
	ErrAlgorithmNotSupported = errors.New("jws: algorithm not supported by signer")

	// ErrAlgorithmNotAccepted is returned by Verify when the
	// verifier's algorithm filter rejects the header algorithm.
	ErrAlgorithmNotAccepted = errors.New("jws: algorithm not accepted by verifier")

	// ErrParameterNotAccepted is returned by Verify when the
	// verifier's parameter filter rejects a header parameter name.
	ErrParameterNotAccepted = errors.New("jws: header parameter not accepted by verifier")
)

// State is the lifecycle state of a JWS object. Transitions only move
// forward: Unsigned to Signed by Sign, Signed to Verified by a
// successful Verify. Verified is terminal.
type State int

const (
	Unsigned State = iota
	Signed
	Verified
)

func (s State) String() string {
	switch s {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	case Verified:
		return "verified"
	default:
		return fmt.Sprintf("unknown state %d", int(s))
	}
}

// Signer produces a signature over the signing input of a JWS object.
// Implementations declare the algorithms they support; Sign is only
// called with a header whose algorithm is in that set.
type Signer interface {
	// Algorithms returns the supported signature algorithms.
	Algorithms() []jwa.JWSAlgorithm

	// Sign computes the signature over the signing input.
	Sign(hdr *header.JWSHeader, signingInput []byte) ([]byte, error)
}

// Verifier checks a signature over the signing input of a JWS object.
// A wrong signature is reported as false with a nil error; an error
// return is reserved for anomalies such as unusable key material.
type Verifier interface {
	Verify(hdr *header.JWSHeader, signingInput, signature []byte) (bool, error)
}

// AlgorithmFilter is optionally implemented by a Verifier to restrict
// the header algorithms it accepts before any cryptographic check.
type AlgorithmFilter interface {
	AcceptedAlgorithms() []jwa.JWSAlgorithm
}

// ParameterFilter is optionally implemented by a Verifier to restrict
// the header parameter names it accepts before any cryptographic
// check.
type ParameterFilter interface {
	AcceptedParameters() []header.ParameterName
}

// Object is a JWS object. Objects are mutated only through their
// lifecycle transitions and must not be signed or verified
// concurrently; finalized fields are safe for concurrent reads.
type Object struct {
	hdr          *header.JWSHeader
	pl           *payload.Payload
	signingInput []byte
	signature    []byte
	state        State
}

// New returns an unsigned JWS object over the given header and
// payload. The exact byte sequence to be signed is computed once here:
// the UTF-8 bytes of the base64url header, a dot, and the base64url
// payload.
func New(hdr *header.JWSHeader, pl *payload.Payload) (*Object, error) {
	if hdr == nil {
		return nil, fmt.Errorf("jws: cannot create object with nil header")
	}
	if pl == nil {
		return nil, fmt.Errorf("jws: cannot create object with nil payload")
	}

	encodedHeader, err := hdr.Base64URL()
	if err != nil {
		return nil, fmt.Errorf("jws: failed to encode header: %w", err)
	}

	return &Object{
		hdr:          hdr,
		pl:           pl,
		signingInput: []byte(encodedHeader + "." + pl.Base64URL()),
		state:        Unsigned,
	}, nil
}

// Parse parses a compact JWS serialization. The returned object is in
// the Signed state: parsing alone establishes nothing about the
// signature's authenticity.
func Parse(input string) (*Object, error) {
	parts, err := compact.Split(input)
	if err != nil {
		return nil, err
	}
	if len(parts) != compact.PartsJWS {
		return nil, fmt.Errorf("%w: unexpected part delimiter %d",
			compact.ErrInvalidSerialization, compact.PartsJWS)
	}
	return FromParts(parts[0], parts[1], parts[2])
}

// FromParts assembles a JWS object from the three compact segments.
// The signing input is pinned to the original first two segments
// verbatim, never re-encoded from the parsed header and payload.
func FromParts(part1, part2, part3 string) (*Object, error) {
	h, err := header.ParseBase64URL(part1)
	if err != nil {
		return nil, err
	}
	hdr, ok := h.(*header.JWSHeader)
	if !ok {
		return nil, fmt.Errorf("jws: header is a %s header, not a JWS header", h.Kind())
	}

	pl, err := payload.NewBase64URL(part2)
	if err != nil {
		return nil, err
	}

	signature, err := base64.Decode(part3)
	if err != nil {
		return nil, fmt.Errorf("jws: failed to decode signature segment: %w", err)
	}

	return &Object{
		hdr:          hdr,
		pl:           pl,
		signingInput: []byte(part1 + "." + part2),
		signature:    signature,
		state:        Signed,
	}, nil
}

// Header returns the protected header.
func (o *Object) Header() header.Header {
	return o.hdr
}

// JWSHeader returns the typed protected header.
func (o *Object) JWSHeader() *header.JWSHeader {
	return o.hdr
}

// Payload returns the payload.
func (o *Object) Payload() *payload.Payload {
	return o.pl
}

// SigningInput returns the exact byte sequence the signature is
// computed over and verified against.
func (o *Object) SigningInput() []byte {
	return o.signingInput
}

// Signature returns the signature bytes, or nil while unsigned.
func (o *Object) Signature() []byte {
	return o.signature
}

// State returns the current lifecycle state.
func (o *Object) State() State {
	return o.state
}

// Sign signs the object, transitioning it from Unsigned to Signed.
// The header algorithm must be in the signer's supported set.
func (o *Object) Sign(signer Signer) error {
	if o.state != Unsigned {
		return fmt.Errorf("%w: cannot sign in state %q", ErrInvalidState, o.state)
	}

	alg := o.hdr.JWSAlgorithm()
	if !slices.ContainsFunc(signer.Algorithms(), alg.Equal) {
		return fmt.Errorf("%w: %q", ErrAlgorithmNotSupported, alg)
	}

	signature, err := signer.Sign(o.hdr, o.signingInput)
	if err != nil {
		return fmt.Errorf("jws: failed to sign: %w", err)
	}

	o.signature = signature
	o.state = Signed
	return nil
}

// Verify checks the signature, transitioning the object to Verified
// when the check passes. A wrong signature yields (false, nil) with no
// transition. Verify is repeatable: re-verifying a Verified object
// runs the same check and returns the same result.
func (o *Object) Verify(verifier Verifier) (bool, error) {
	if o.state == Unsigned {
		return false, fmt.Errorf("%w: cannot verify in state %q", ErrInvalidState, o.state)
	}

	if filter, ok := verifier.(AlgorithmFilter); ok {
		alg := o.hdr.JWSAlgorithm()
		if !slices.ContainsFunc(filter.AcceptedAlgorithms(), alg.Equal) {
			return false, fmt.Errorf("%w: %q", ErrAlgorithmNotAccepted, alg)
		}
	}

	if filter, ok := verifier.(ParameterFilter); ok {
		accepted := filter.AcceptedParameters()
		for _, name := range o.hdr.ParameterNames() {
			if !slices.Contains(accepted, name) {
				return false, fmt.Errorf("%w: %q", ErrParameterNotAccepted, name)
			}
		}
	}

	ok, err := verifier.Verify(o.hdr, o.signingInput, o.signature)
	if err != nil {
		return false, fmt.Errorf("jws: failed to verify: %w", err)
	}
	if ok {
		o.state = Verified
	}
	return ok, nil
}

// Serialize returns the compact serialization. Only signed or verified
// objects serialize; for a parsed object the output reproduces the
// input byte for byte.
func (o *Object) Serialize() (string, error) {
	if o.state == Unsigned {
		return "", fmt.Errorf("%w: cannot serialize in state %q", ErrInvalidState, o.state)
	}
	return string(o.signingInput) + "." + base64.Encode(o.signature), nil
}
