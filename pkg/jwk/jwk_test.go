package jwk

import (
	"testing"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/jwa"
	"github.com/stretchr/testify/require"
)

// Test vectors from RFC 7517 appendix A.
const (
	testECPublicJSON = `{
		"kty":"EC",
		"crv":"P-256",
		"x":"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4",
		"y":"4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFyM",
		"use":"enc",
		"kid":"1"
	}`

	testECPrivateJSON = `{
		"kty":"EC",
		"crv":"P-256",
		"x":"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4",
		"y":"4Etl6SRW2YiLUrN5vfvVHuhp7x8PxltmWWlbbM4IFyM",
		"d":"870MB6gfuTJ4HtUnUvYMyJpr5eUZNP4Bk43bVdj3eAE",
		"use":"enc",
		"kid":"1"
	}`

	testRSAPublicJSON = `{
		"kty":"RSA",
		"n":"0vx7agoebGcQSuuPiLJXZptN9nndrQmbXEps2aiAFbWhM78LhWx4cbbfAAtVT86zwu1RK7aPFFxuhDR1L6tSoc_BJECPebWKRXjBZCiFV4n3oknjhMstn64tZ_2W-5JsGY4Hc5n9yBXArwl93lqt7_RN5w6Cf0h4QyQ5v-65YGjQR0_FDW2QvzqY368QQMicAtaSqzs8KJZgnYb9c7d0zgdAZHzu6qMQvRL5hajrn1n91CbOpbISD08qNLyrdkt-bFTWhAI4vMQFh6WeZu0fM4lFd2NcRwr3XPksINHaQ-G_xBniIqbw0Ls1jF44-csFCur-kEgU8awapJzKnqDKgw",
		"e":"AQAB",
		"alg":"RS256",
		"kid":"2011-04-29"
	}`
)

func TestParse(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Require func(t *testing.T, key Key, err error)
	}{
		{
			Name:  "EC public key",
			Input: testECPublicJSON,
			Require: func(t *testing.T, key Key, err error) {
				require.NoError(t, err)

				ec, ok := key.(*ECKey)
				require.True(t, ok)
				require.True(t, ec.Curve().Equal(jwa.P256))
				require.Equal(t, UseEncryption, ec.Use())
				require.Equal(t, "1", ec.KeyID())
				require.False(t, ec.IsPrivate())
				require.Equal(t, 256, ec.Size())
			},
		},
		{
			Name:  "EC private key",
			Input: testECPrivateJSON,
			Require: func(t *testing.T, key Key, err error) {
				require.NoError(t, err)
				require.True(t, key.IsPrivate())

				ec := key.(*ECKey)
				private, err := ec.PrivateKey()
				require.NoError(t, err)
				require.NotNil(t, private)
			},
		},
		{
			Name:  "RSA public key",
			Input: testRSAPublicJSON,
			Require: func(t *testing.T, key Key, err error) {
				require.NoError(t, err)

				rsaKey, ok := key.(*RSAKey)
				require.True(t, ok)
				require.False(t, rsaKey.IsPrivate())
				require.Equal(t, "2011-04-29", rsaKey.KeyID())
				require.True(t, rsaKey.Algorithm().Equal(jwa.RS256.Algorithm))
				require.Equal(t, 2048, rsaKey.Size())

				public, err := rsaKey.PublicKey()
				require.NoError(t, err)
				require.Equal(t, 65537, public.E)

				_, err = rsaKey.PrivateKey()
				require.ErrorIs(t, err, ErrNotPrivate)
			},
		},
		{
			Name:  "octet sequence key",
			Input: `{"kty":"oct","k":"GawgguFyGrWKav7AX4VKUg","use":"sig","key_ops":["sign","verify"]}`,
			Require: func(t *testing.T, key Key, err error) {
				require.NoError(t, err)

				oct, ok := key.(*OctetSequenceKey)
				require.True(t, ok)
				require.True(t, oct.IsPrivate())
				require.Equal(t, UseSignature, oct.Use())
				require.Equal(t, []KeyOperation{OpSign, OpVerify}, oct.Operations())
				require.Equal(t, 128, oct.Size())

				_, err = oct.Public()
				require.ErrorIs(t, err, ErrNoPublicForm)
			},
		},
		{
			Name:  "missing kty",
			Input: `{"crv":"P-256"}`,
			Require: func(t *testing.T, key Key, err error) {
				require.ErrorIs(t, err, ErrParameterNotFound)
			},
		},
		{
			Name:  "unsupported kty",
			Input: `{"kty":"OKP","crv":"Ed25519","x":"11qYAYKxCrfVS_7TyWQHOg7hcvPapiMlrwIaaPcHURo"}`,
			Require: func(t *testing.T, key Key, err error) {
				require.ErrorIs(t, err, ErrUnsupportedKeyType)
			},
		},
		{
			Name:  "kty is not a string",
			Input: `{"kty":7}`,
			Require: func(t *testing.T, key Key, err error) {
				require.ErrorIs(t, err, ErrInvalidParameterType)
			},
		},
		{
			Name:  "EC key missing coordinate",
			Input: `{"kty":"EC","crv":"P-256","x":"MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4"}`,
			Require: func(t *testing.T, key Key, err error) {
				require.ErrorIs(t, err, ErrParameterNotFound)
			},
		},
		{
			Name:  "key_ops is not an array",
			Input: `{"kty":"oct","k":"GawgguFyGrWKav7AX4VKUg","key_ops":"sign"}`,
			Require: func(t *testing.T, key Key, err error) {
				require.ErrorIs(t, err, ErrInvalidParameterType)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			key, err := Parse([]byte(test.Input))
			test.Require(t, key, err)
		})
	}
}

func TestPublicProjection(t *testing.T) {
	key, err := Parse([]byte(testECPrivateJSON))
	require.NoError(t, err)
	require.True(t, key.IsPrivate())

	public, err := key.Public()
	require.NoError(t, err)
	require.False(t, public.IsPrivate())

	// The projection keeps the public fields and metadata.
	ec := public.(*ECKey)
	require.Equal(t, "MKBCTNIcKUSDii11ySs3526iDZ8AiTo7Tu6KPAqv7D4", ec.X())
	require.Empty(t, ec.D())
	require.Equal(t, "1", ec.KeyID())

	// The original key is untouched.
	require.True(t, key.IsPrivate())
}

func TestMarshalRoundTrip(t *testing.T) {
	key, err := NewOct("GawgguFyGrWKav7AX4VKUg").
		Use(UseSignature).
		Algorithm(jwa.HS256.Algorithm).
		KeyID("hmac-1").
		Build()
	require.NoError(t, err)

	data, err := key.MarshalJSON()
	require.NoError(t, err)
	require.JSONEq(t, `{"kty":"oct","k":"GawgguFyGrWKav7AX4VKUg","use":"sig","alg":"HS256","kid":"hmac-1"}`, string(data))

	parsed, err := Parse(data)
	require.NoError(t, err)

	oct, ok := parsed.(*OctetSequenceKey)
	require.True(t, ok)
	require.Equal(t, key.K(), oct.K())
	require.Equal(t, UseSignature, oct.Use())
	require.True(t, oct.Algorithm().Equal(jwa.HS256.Algorithm))
	require.Equal(t, "hmac-1", oct.KeyID())
}

func TestFromPublicKeyRoundTrip(t *testing.T) {
	key, err := Parse([]byte(testECPublicJSON))
	require.NoError(t, err)

	public, err := key.(*ECKey).PublicKey()
	require.NoError(t, err)

	converted, err := FromPublicKey(public)
	require.NoError(t, err)

	ec := converted.(*ECKey)
	require.Equal(t, key.(*ECKey).X(), ec.X())
	require.Equal(t, key.(*ECKey).Y(), ec.Y())
	require.True(t, ec.Curve().Equal(jwa.P256))
}

func TestBuilderValidation(t *testing.T) {
	_, err := NewEC(jwa.Curve{}, "eA", "eQ").Build()
	require.Error(t, err)

	_, err = NewEC(jwa.P256, "", "eQ").Build()
	require.Error(t, err)

	_, err = NewEC(jwa.P256, "not!base64", "eQ").Build()
	require.Error(t, err)

	_, err = NewRSA("", "AQAB").Build()
	require.Error(t, err)
}

func TestSet(t *testing.T) {
	first, err := NewOct(base64.Encode([]byte("first"))).KeyID("1").Build()
	require.NoError(t, err)
	second, err := NewOct(base64.Encode([]byte("second"))).KeyID("2").Build()
	require.NoError(t, err)

	set := NewSet(first, second)
	require.Equal(t, 2, set.Len())

	key, ok := set.Get("2")
	require.True(t, ok)
	require.Equal(t, second, key)

	_, ok = set.Get("3")
	require.False(t, ok)

	// Keys returns a copy in set order.
	keys := set.Keys()
	require.Equal(t, []Key{first, second}, keys)

	data, err := set.MarshalJSON()
	require.NoError(t, err)

	parsed, err := ParseSet(data)
	require.NoError(t, err)
	require.Equal(t, 2, parsed.Len())
	require.Equal(t, set.Keys(), parsed.Keys())
}

func TestParseSetErrors(t *testing.T) {
	_, err := ParseSet([]byte(`{"not_keys":[]}`))
	require.ErrorIs(t, err, ErrParameterNotFound)

	_, err = ParseSet([]byte(`{"keys":[{"kty":"EC","crv":"P-256"}]}`))
	require.Error(t, err)
}
