package jwa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Require func(t *testing.T, alg Algorithm, err error)
	}{
		{
			Name:  "known name",
			Input: "HS256",
			Require: func(t *testing.T, alg Algorithm, err error) {
				require.NoError(t, err)
				require.Equal(t, "HS256", alg.Name)
				require.True(t, alg.Equal(HS256.Algorithm))
			},
		},
		{
			Name:  "unknown name",
			Input: "XS512",
			Require: func(t *testing.T, alg Algorithm, err error) {
				require.NoError(t, err)
				require.Equal(t, "XS512", alg.Name)
				require.Equal(t, Requirement(0), alg.Requirement)
			},
		},
		{
			Name:  "empty name",
			Input: "",
			Require: func(t *testing.T, alg Algorithm, err error) {
				require.ErrorIs(t, err, ErrEmptyName)
				require.True(t, alg.IsZero())
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			alg, err := New(test.Input)
			test.Require(t, alg, err)
		})
	}
}

func TestEqualIgnoresRequirement(t *testing.T) {
	a := Algorithm{Name: "HS256", Requirement: Required}
	b := Algorithm{Name: "HS256", Requirement: Optional}
	c := Algorithm{Name: "HS384", Requirement: Required}

	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))
	require.False(t, a.Equal(c))
}

func TestParseJWS(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Require func(t *testing.T, alg JWSAlgorithm, err error)
	}{
		{
			Name:  "registered constant",
			Input: "ES256",
			Require: func(t *testing.T, alg JWSAlgorithm, err error) {
				require.NoError(t, err)
				require.Equal(t, ES256, alg)
				require.Equal(t, Recommended, alg.Requirement)
			},
		},
		{
			Name:  "none",
			Input: "none",
			Require: func(t *testing.T, alg JWSAlgorithm, err error) {
				require.NoError(t, err)
				require.Equal(t, None, alg)
			},
		},
		{
			Name:  "unregistered name",
			Input: "HS1024",
			Require: func(t *testing.T, alg JWSAlgorithm, err error) {
				require.NoError(t, err)
				require.Equal(t, "HS1024", alg.Name)
			},
		},
		{
			Name:  "empty name",
			Input: "",
			Require: func(t *testing.T, alg JWSAlgorithm, err error) {
				require.ErrorIs(t, err, ErrEmptyName)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			alg, err := ParseJWS(test.Input)
			test.Require(t, alg, err)
		})
	}
}

func TestParseJWE(t *testing.T) {
	alg, err := ParseJWE("dir")
	require.NoError(t, err)
	require.Equal(t, Direct, alg)

	enc, err := ParseEncryptionMethod("A256GCM")
	require.NoError(t, err)
	require.Equal(t, A256GCM, enc)

	_, err = ParseEncryptionMethod("")
	require.ErrorIs(t, err, ErrEmptyName)
}

func TestParseKeyTypeAndCurve(t *testing.T) {
	kty, err := ParseKeyType("oct")
	require.NoError(t, err)
	require.Equal(t, Oct, kty)

	crv, err := ParseCurve("P-256")
	require.NoError(t, err)
	require.Equal(t, P256, crv)

	crv, err = ParseCurve("brainpoolP256r1")
	require.NoError(t, err)
	require.Equal(t, "brainpoolP256r1", crv.Name)
}

func TestTextMarshaling(t *testing.T) {
	data, err := HS256.MarshalText()
	require.NoError(t, err)
	require.Equal(t, "HS256", string(data))

	var alg Algorithm
	require.NoError(t, alg.UnmarshalText([]byte("RS512")))
	require.True(t, alg.Equal(RS512.Algorithm))
}
