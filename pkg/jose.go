package jose

import (
	"fmt"

	"github.com/josekit/jose/pkg/compact"
	"github.com/josekit/jose/pkg/header"
	"github.com/josekit/jose/pkg/jwe"
	"github.com/josekit/jose/pkg/jws"
	"github.com/josekit/jose/pkg/payload"
)

// Object is a JOSE object of any variant: a *PlainObject, *jws.Object,
// or *jwe.Object.
type Object interface {
	// Header returns the object's header.
	Header() header.Header

	// Payload returns the object's payload, which may be nil for an
	// encrypted object that has not been decrypted.
	Payload() *payload.Payload

	// Serialize returns the compact serialization of the object.
	Serialize() (string, error)
}

// Parse parses a compact serialization of any JOSE variant: the first
// segment is decoded and inspected to infer the variant, then the
// matching variant's parser consumes the input.
func Parse(input string) (Object, error) {
	parts, err := compact.Split(input)
	if err != nil {
		return nil, err
	}

	h, err := header.ParseBase64URL(parts[0])
	if err != nil {
		return nil, err
	}

	switch h.Kind() {
	case header.KindPlain:
		if len(parts) != compact.PartsJWS {
			return nil, fmt.Errorf("%w: unexpected part delimiter %d for a plaintext object",
				compact.ErrInvalidSerialization, compact.PartsJWS)
		}
		return ParsePlain(input)
	case header.KindJWS:
		return jws.Parse(input)
	case header.KindJWE:
		return jwe.Parse(input)
	default:
		return nil, fmt.Errorf("jose: unknown header kind %v", h.Kind())
	}
}
