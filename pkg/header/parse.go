package header

import (
	"encoding/json"
	"fmt"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
)

// Parse parses a JSON header object and returns the concrete variant,
// inferred with this fixed precedence: "alg" equal to "none" yields a
// PlainHeader; an "enc" member present yields a JWEHeader; anything
// else yields a JWSHeader. The "alg" member is mandatory and must be
// a string.
func Parse(data []byte) (Header, error) {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, fmt.Errorf("header: failed to decode JSON: %w", err)
	}
	return ParseObject(obj)
}

// ParseBase64URL parses a base64url encoded JSON header object, the
// form carried in a compact segment.
func ParseBase64URL(segment string) (Header, error) {
	b, err := base64.Decode(segment)
	if err != nil {
		return nil, fmt.Errorf("header: failed to decode segment: %w", err)
	}
	return Parse(b)
}

// ParseObject parses an already-decoded JSON header object.
func ParseObject(obj map[string]any) (Header, error) {
	algValue, ok := obj[Algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, Algorithm)
	}
	algName, ok := algValue.(string)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not a string", ErrInvalidParameterType, Algorithm, algValue)
	}

	switch {
	case algName == jwa.None.Name:
		return parsePlain(obj)
	case hasMember(obj, Encryption):
		return parseJWE(obj, algName)
	default:
		return parseJWS(obj, algName)
	}
}

func hasMember(obj map[string]any, name ParameterName) bool {
	_, ok := obj[name]
	return ok
}

func stringMember(obj map[string]any, name ParameterName) (string, error) {
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

func objectMember(obj map[string]any, name ParameterName) (map[string]any, error) {
	value, ok := obj[name]
	if !ok {
		return nil, nil
	}
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not a JSON object", ErrInvalidParameterType, name, value)
	}
	return m, nil
}

func stringArrayMember(obj map[string]any, name ParameterName) ([]string, error) {
	value, ok := obj[name]
	if !ok {
		return nil, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not an array of strings", ErrInvalidParameterType, name, value)
	}
	strs := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%w: %q element %d is %T, not a string", ErrInvalidParameterType, name, i, item)
		}
		strs[i] = s
	}
	return strs, nil
}

func parsePlain(obj map[string]any) (*PlainHeader, error) {
	h := &PlainHeader{}

	for name, value := range obj {
		var err error
		switch name {
		case Algorithm:
			// Known to be "none" already.
		case Type:
			h.typ, err = stringMember(obj, Type)
		case ContentType:
			h.cty, err = stringMember(obj, ContentType)
		default:
			if h.custom == nil {
				h.custom = make(map[ParameterName]any)
			}
			h.custom[name] = value
		}
		if err != nil {
			return nil, err
		}
	}

	return h, nil
}

// parseSECommon routes the name into the shared signed/encrypted
// fields, reporting whether the name was consumed.
func parseSECommon(se *seCommon, obj map[string]any, name ParameterName) (bool, error) {
	var err error
	switch name {
	case JWKSetURL:
		se.jku, err = stringMember(obj, JWKSetURL)
	case JSONWebKey:
		se.jwk, err = objectMember(obj, JSONWebKey)
	case X509URL:
		se.x5u, err = stringMember(obj, X509URL)
	case X509CertificateThumbprint:
		se.x5t, err = stringMember(obj, X509CertificateThumbprint)
	case X509CertificateChain:
		se.x5c, err = stringArrayMember(obj, X509CertificateChain)
	case KeyID:
		se.kid, err = stringMember(obj, KeyID)
	default:
		return false, nil
	}
	return true, err
}

func parseJWS(obj map[string]any, algName string) (*JWSHeader, error) {
	alg, err := jwa.ParseJWS(algName)
	if err != nil {
		return nil, err
	}

	h := &JWSHeader{alg: alg}

	for name, value := range obj {
		var err error
		switch name {
		case Algorithm:
		case Type:
			h.typ, err = stringMember(obj, Type)
		case ContentType:
			h.cty, err = stringMember(obj, ContentType)
		default:
			consumed, seErr := parseSECommon(&h.seCommon, obj, name)
			if seErr != nil {
				return nil, seErr
			}
			if !consumed {
				if h.custom == nil {
					h.custom = make(map[ParameterName]any)
				}
				h.custom[name] = value
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return h, nil
}

func parseJWE(obj map[string]any, algName string) (*JWEHeader, error) {
	alg, err := jwa.ParseJWE(algName)
	if err != nil {
		return nil, err
	}

	encName, err := stringMember(obj, Encryption)
	if err != nil {
		return nil, err
	}
	if encName == "" {
		return nil, fmt.Errorf("%w: %q", ErrParameterNotFound, Encryption)
	}
	enc, err := jwa.ParseEncryptionMethod(encName)
	if err != nil {
		return nil, err
	}

	h := &JWEHeader{alg: alg, enc: enc}

	for name, value := range obj {
		var err error
		switch name {
		case Algorithm, Encryption:
		case Type:
			h.typ, err = stringMember(obj, Type)
		case ContentType:
			h.cty, err = stringMember(obj, ContentType)
		case Compression:
			h.zip, err = stringMember(obj, Compression)
		case InitializationVector:
			h.iv, err = stringMember(obj, InitializationVector)
		case EphemeralPublicKey:
			h.epk, err = objectMember(obj, EphemeralPublicKey)
		case KeyDerivationFunction:
			h.kdf, err = stringMember(obj, KeyDerivationFunction)
		case IntegrityAlgorithm:
			h.itg, err = stringMember(obj, IntegrityAlgorithm)
		default:
			consumed, seErr := parseSECommon(&h.seCommon, obj, name)
			if seErr != nil {
				return nil, seErr
			}
			if !consumed {
				if h.custom == nil {
					h.custom = make(map[ParameterName]any)
				}
				h.custom[name] = value
			}
		}
		if err != nil {
			return nil, err
		}
	}

	return h, nil
}
