package jwa

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when constructing an algorithm, key type,
// or curve with an empty name.
var ErrEmptyName = errors.New("jwa: name cannot be empty")

// Requirement is the implementation requirement level of an algorithm,
// as listed in the JWA registry tables.
//
// The zero value means no requirement was specified, which is the case
// for ad-hoc algorithms constructed from unknown names.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-3.1
type Requirement int

const (
	Required Requirement = iota + 1
	Recommended
	Optional
)

func (r Requirement) String() string {
	switch r {
	case Required:
		return "REQUIRED"
	case Recommended:
		return "RECOMMENDED"
	case Optional:
		return "OPTIONAL"
	default:
		return ""
	}
}

// Algorithm is the base of every named JOSE algorithm value. Well-known
// algorithms are exposed as shared values carrying their registry
// requirement level, but any name can be used: parsing an unknown name
// succeeds and yields an ad-hoc value, for forward compatibility with
// future IANA registrations.
//
// Two algorithms are the same algorithm when their names are equal,
// regardless of requirement level. Use Equal for that comparison.
//
// https://datatracker.ietf.org/doc/html/rfc7518
type Algorithm struct {
	// Name is the algorithm name, such as "HS256".
	Name string

	// Requirement is the implementation requirement level of the
	// algorithm, if specified.
	Requirement Requirement
}

// New returns a new algorithm value with the given name and no
// requirement level. The name cannot be empty.
func New(name string) (Algorithm, error) {
	if name == "" {
		return Algorithm{}, fmt.Errorf("%w: algorithm", ErrEmptyName)
	}
	return Algorithm{Name: name}, nil
}

// Equal reports whether the two algorithms have the same name.
// The requirement level does not participate in equality.
func (a Algorithm) Equal(b Algorithm) bool {
	return a.Name == b.Name
}

func (a Algorithm) String() string {
	return a.Name
}

// IsZero reports whether the algorithm is the zero value, which is
// used as the "unspecified" sentinel in key matching.
func (a Algorithm) IsZero() bool {
	return a.Name == ""
}

func (a Algorithm) MarshalText() ([]byte, error) {
	return []byte(a.Name), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		return fmt.Errorf("%w: algorithm", ErrEmptyName)
	}
	a.Name = string(text)
	a.Requirement = 0
	return nil
}
