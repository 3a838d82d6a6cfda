package jwk

import (
	"encoding/json"
	"fmt"

	"github.com/josekit/jose/pkg/jwa"
)

// Parse parses a JSON Web Key, dispatching on its "kty" discriminator.
func Parse(data []byte) (Key, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("jwk: failed to decode JSON: %w", err)
	}
	return ParseValue(obj)
}

// ParseValue parses an already-decoded JSON Web Key object.
func ParseValue(obj map[string]any) (Key, error) {
	ktyValue, ok := obj[KeyTypeParam]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, KeyTypeParam)
	}
	ktyName, ok := ktyValue.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not a string", ErrInvalidParameterType, KeyTypeParam, ktyValue)
	}

	switch ktyName {
	case jwa.EC.Name:
		return parseEC(obj)
	case jwa.RSA.Name:
		return parseRSA(obj)
	case jwa.Oct.Name:
		return parseOct(obj)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedKeyType, ktyName)
	}
}

func parseEC(obj map[string]any) (*ECKey, error) {
	crvName, err := requiredStringMember(obj, CurveParam)
	if err != nil {
		return nil, err
	}
	crv, err := jwa.ParseCurve(crvName)
	if err != nil {
		return nil, err
	}

	x, err := requiredStringMember(obj, XParam)
	if err != nil {
		return nil, err
	}
	y, err := requiredStringMember(obj, YParam)
	if err != nil {
		return nil, err
	}
	d, err := optionalStringMember(obj, DParam)
	if err != nil {
		return nil, err
	}

	builder := NewEC(crv, x, y).D(d)
	if err := applyMetadata(&builder.k.metadata, obj); err != nil {
		return nil, err
	}
	return builder.Build()
}

func parseRSA(obj map[string]any) (*RSAKey, error) {
	n, err := requiredStringMember(obj, ModulusParam)
	if err != nil {
		return nil, err
	}
	e, err := requiredStringMember(obj, ExponentParam)
	if err != nil {
		return nil, err
	}

	builder := NewRSA(n, e)
	for name, set := range map[ParameterName]func(string){
		DParam:              func(s string) { builder.k.d = s },
		FirstPrimeParam:     func(s string) { builder.k.p = s },
		SecondPrimeParam:    func(s string) { builder.k.q = s },
		FirstCRTExpParam:    func(s string) { builder.k.dp = s },
		SecondCRTExpParam:   func(s string) { builder.k.dq = s },
		CRTCoefficientParam: func(s string) { builder.k.qi = s },
	} {
		value, err := optionalStringMember(obj, name)
		if err != nil {
			return nil, err
		}
		set(value)
	}

	if err := applyMetadata(&builder.k.metadata, obj); err != nil {
		return nil, err
	}
	return builder.Build()
}

func parseOct(obj map[string]any) (*OctetSequenceKey, error) {
	k, err := requiredStringMember(obj, KeyValueParam)
	if err != nil {
		return nil, err
	}

	builder := NewOct(k)
	if err := applyMetadata(&builder.k.metadata, obj); err != nil {
		return nil, err
	}
	return builder.Build()
}

func applyMetadata(m *metadata, obj map[string]any) error {
	use, err := optionalStringMember(obj, PublicKeyUseParam)
	if err != nil {
		return err
	}
	m.use = Use(use)

	algName, err := optionalStringMember(obj, AlgorithmParam)
	if err != nil {
		return err
	}
	if algName != "" {
		alg, err := jwa.New(algName)
		if err != nil {
			return err
		}
		m.alg = alg
	}

	kid, err := optionalStringMember(obj, KeyIDParam)
	if err != nil {
		return err
	}
	m.kid = kid

	if opsValue, ok := obj[KeyOperationsParam]; ok {
		items, ok := opsValue.([]any)
		if !ok {
			return fmt.Errorf("%w: %q is %T, not an array of strings",
				ErrInvalidParameterType, KeyOperationsParam, opsValue)
		}
		ops := make([]KeyOperation, len(items))
		for i, item := range items {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("%w: %q element %d is %T, not a string",
					ErrInvalidParameterType, KeyOperationsParam, i, item)
			}
			ops[i] = KeyOperation(s)
		}
		m.ops = ops
	}

	return nil
}

func requiredStringMember(obj map[string]any, name ParameterName) (string, error) {
	value, ok := obj[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrParameterNotFound, name)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, not a string", ErrInvalidParameterType, name, value)
	}
	return s, nil
}

func optionalStringMember(obj map[string]any, name ParameterName) (string, error) {
	value, ok := obj[name]
	if !ok {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, not a string", ErrInvalidParameterType, name, value)
	}
	return s, nil
}
