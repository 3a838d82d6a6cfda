package base64

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Encode returns the base64url encoded string from the given input,
// without padding characters, as required by the compact JOSE
// serialization.
func Encode(input []byte) string {
	return base64.RawURLEncoding.EncodeToString(input)
}

// Decode returns the base64url decoded bytes from the given input.
// Padding is tolerated but not required.
func Decode(input string) ([]byte, error) {
	input = strings.TrimRight(input, "=")

	result, err := base64.RawURLEncoding.DecodeString(input)
	if err != nil {
		return nil, fmt.Errorf("base64: invalid base64url input: %w", err)
	}
	return result, nil
}

// Valid reports whether the given input is valid base64url.
func Valid(input string) bool {
	_, err := Decode(input)
	return err == nil
}
