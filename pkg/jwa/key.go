package jwa

import "fmt"

// KeyType is the cryptographic algorithm family used with a JSON Web
// Key, carried in its "kty" parameter.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.1
type KeyType struct {
	// Name is the key type name, such as "RSA".
	Name string

	// Requirement is the implementation requirement level of the
	// key type, if specified.
	Requirement Requirement
}

// Key types.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.1
var (
	EC  = KeyType{Name: "EC", Requirement: Recommended}
	RSA = KeyType{Name: "RSA", Requirement: Required}
	Oct = KeyType{Name: "oct", Requirement: Required}

	// OKP is the Octet Key Pair type used for Ed25519 keys.
	//
	// https://datatracker.ietf.org/doc/html/rfc8037#section-2
	OKP = KeyType{Name: "OKP", Requirement: Optional}
)

var keyTypes = map[string]KeyType{
	EC.Name: EC, RSA.Name: RSA, Oct.Name: Oct, OKP.Name: OKP,
}

// Equal reports whether the two key types have the same name.
func (t KeyType) Equal(other KeyType) bool {
	return t.Name == other.Name
}

// IsZero reports whether the key type is the zero value, which is
// used as the "unspecified" sentinel in key matching.
func (t KeyType) IsZero() bool {
	return t.Name == ""
}

func (t KeyType) String() string {
	return t.Name
}

func (t KeyType) MarshalText() ([]byte, error) {
	return []byte(t.Name), nil
}

func (t *KeyType) UnmarshalText(text []byte) error {
	parsed, err := ParseKeyType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseKeyType returns the well-known key type matching the given name
// exactly, or a new ad-hoc value for any other non-empty name.
func ParseKeyType(name string) (KeyType, error) {
	if name == "" {
		return KeyType{}, fmt.Errorf("%w: key type", ErrEmptyName)
	}
	if t, ok := keyTypes[name]; ok {
		return t, nil
	}
	return KeyType{Name: name}, nil
}

// Curve is a cryptographic curve used with elliptic curve keys,
// carried in their "crv" parameter.
//
// https://datatracker.ietf.org/doc/html/rfc7518#section-6.2.1.1
type Curve struct {
	// Name is the curve name, such as "P-256".
	Name string
}

// Curves.
var (
	P256 = Curve{Name: "P-256"}
	P384 = Curve{Name: "P-384"}
	P521 = Curve{Name: "P-521"}

	// Ed25519 is the curve used for EdDSA keys.
	//
	// https://datatracker.ietf.org/doc/html/rfc8037#section-3.1
	Ed25519 = Curve{Name: "Ed25519"}
)

var curves = map[string]Curve{
	P256.Name: P256, P384.Name: P384, P521.Name: P521, Ed25519.Name: Ed25519,
}

// Equal reports whether the two curves have the same name.
func (c Curve) Equal(other Curve) bool {
	return c.Name == other.Name
}

// IsZero reports whether the curve is the zero value, which is used
// as the "unspecified" sentinel in key matching.
func (c Curve) IsZero() bool {
	return c.Name == ""
}

func (c Curve) String() string {
	return c.Name
}

func (c Curve) MarshalText() ([]byte, error) {
	return []byte(c.Name), nil
}

func (c *Curve) UnmarshalText(text []byte) error {
	parsed, err := ParseCurve(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCurve returns the well-known curve matching the given name
// exactly, or a new ad-hoc value for any other non-empty name.
func ParseCurve(name string) (Curve, error) {
	if name == "" {
		return Curve{}, fmt.Errorf("%w: curve", ErrEmptyName)
	}
	if c, ok := curves[name]; ok {
		return c, nil
	}
	return Curve{Name: name}, nil
}
