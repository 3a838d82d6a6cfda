// Package compact implements the dot-delimited segment layout shared
// by every compact JOSE serialization: three segments (two dots) for
// plaintext and JWS objects, four segments (three dots) for JWE
// objects.
//
// https://datatracker.ietf.org/doc/html/rfc7515#section-7.1
package compact

import (
	"errors"
	"fmt"
	"strings"
)

// Segment counts for the two compact layouts.
const (
	// PartsJWS is the segment count shared by plaintext and JWS
	// objects: header, payload, signature.
	PartsJWS = 3

	// PartsJWE is the segment count of a JWE object: header,
	// encrypted key, cipher text, integrity value.
	PartsJWE = 4
)

// ErrInvalidSerialization is returned when the input does not have a
// valid compact segment layout.
var ErrInvalidSerialization = errors.New("compact: invalid serialization")

// Split splits a compact serialization into its segments, scanning
// the delimiters left to right. The result has either three segments
// (two dots) or four segments (three dots); any other delimiter count
// is an error naming the missing or first unexpected delimiter.
//
// Segments may be empty: the third segment of a plaintext or unsecured
// JWS object and the second and fourth segments of a JWE object are
// the empty string when their content is absent.
func Split(input string) ([]string, error) {
	if input == "" {
		return nil, fmt.Errorf("%w: empty input, missing part delimiter 1", ErrInvalidSerialization)
	}

	parts := strings.Split(input, ".")

	switch len(parts) {
	case PartsJWS, PartsJWE:
		return parts, nil
	case 1:
		return nil, fmt.Errorf("%w: missing part delimiter 1", ErrInvalidSerialization)
	case 2:
		return nil, fmt.Errorf("%w: missing part delimiter 2", ErrInvalidSerialization)
	default:
		// The first delimiter beyond the JWE layout is delimiter 4,
		// between segments 4 and 5.
		return nil, fmt.Errorf("%w: unexpected part delimiter %d", ErrInvalidSerialization, PartsJWE)
	}
}

// Join joins the given segments into a compact serialization.
func Join(segments ...string) string {
	return strings.Join(segments, ".")
}
