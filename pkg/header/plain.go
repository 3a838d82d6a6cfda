package header

import (
	"fmt"

	"github.com/josekit/jose/pkg/jwa"
)

// PlainHeader is the header of a plaintext JOSE object. Its "alg"
// parameter is always "none" and cannot be changed.
//
// https://datatracker.ietf.org/doc/html/rfc7515#appendix-A.5
type PlainHeader struct {
	common
}

func (h *PlainHeader) sealed() {}

func (h *PlainHeader) Kind() Kind {
	return KindPlain
}

// Algorithm always returns the "none" algorithm.
func (h *PlainHeader) Algorithm() jwa.Algorithm {
	return jwa.None.Algorithm
}

func (h *PlainHeader) ParameterNames() []ParameterName {
	names := []ParameterName{Algorithm}
	if h.typ != "" {
		names = append(names, Type)
	}
	if h.cty != "" {
		names = append(names, ContentType)
	}
	return append(names, customNames(h.custom)...)
}

func (h *PlainHeader) MarshalJSON() ([]byte, error) {
	fields := []field{{Algorithm, jwa.None.Name}}
	if h.typ != "" {
		fields = append(fields, field{Type, h.typ})
	}
	if h.cty != "" {
		fields = append(fields, field{ContentType, h.cty})
	}
	return marshalFields(fields, h.custom)
}

func (h *PlainHeader) Base64URL() (string, error) {
	return encodeBase64URL(h)
}

// PlainHeaderBuilder accumulates the parameters of a PlainHeader.
// Build validates the collected parameters and returns the immutable
// header; the builder must not be reused after Build.
type PlainHeaderBuilder struct {
	h PlainHeader
}

// NewPlainHeader returns a builder for a plaintext object header.
func NewPlainHeader() *PlainHeaderBuilder {
	return &PlainHeaderBuilder{}
}

func (b *PlainHeaderBuilder) Type(typ string) *PlainHeaderBuilder {
	b.h.typ = typ
	return b
}

func (b *PlainHeaderBuilder) ContentType(cty string) *PlainHeaderBuilder {
	b.h.cty = cty
	return b
}

func (b *PlainHeaderBuilder) Custom(name ParameterName, value any) *PlainHeaderBuilder {
	if b.h.custom == nil {
		b.h.custom = make(map[ParameterName]any)
	}
	b.h.custom[name] = value
	return b
}

func (b *PlainHeaderBuilder) Build() (*PlainHeader, error) {
	if err := checkCustom(b.h.custom, plainReserved); err != nil {
		return nil, err
	}
	h := b.h
	return &h, nil
}

var plainReserved = map[ParameterName]struct{}{
	Algorithm:   {},
	Type:        {},
	ContentType: {},
}

func checkCustom(custom map[ParameterName]any, reserved map[ParameterName]struct{}) error {
	for name := range custom {
		if _, ok := reserved[name]; ok {
			return fmt.Errorf("%w: %q", ErrReservedParameter, name)
		}
	}
	return nil
}
