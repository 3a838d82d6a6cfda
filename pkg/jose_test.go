package jose

import (
	"testing"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/header"
	"github.com/josekit/jose/pkg/jwa"
	"github.com/josekit/jose/pkg/jwe"
	"github.com/josekit/jose/pkg/jws"
	"github.com/josekit/jose/pkg/payload"
	"github.com/stretchr/testify/require"
)

func TestParseDispatch(t *testing.T) {
	tests := []struct {
		Name    string
		Input   string
		Require func(t *testing.T, obj Object, err error)
	}{
		{
			Name: "plaintext object",
			Input: base64.Encode([]byte(`{"alg":"none"}`)) + "." +
				base64.Encode([]byte(`{"iss":"joe"}`)) + ".",
			Require: func(t *testing.T, obj Object, err error) {
				require.NoError(t, err)
				require.IsType(t, &PlainObject{}, obj)
				require.Equal(t, header.KindPlain, obj.Header().Kind())
			},
		},
		{
			Name: "JWS object",
			Input: base64.Encode([]byte(`{"alg":"HS256"}`)) + "." +
				base64.Encode([]byte(`{"iss":"joe"}`)) + "." +
				base64.Encode([]byte("signature")),
			Require: func(t *testing.T, obj Object, err error) {
				require.NoError(t, err)
				require.IsType(t, &jws.Object{}, obj)
				require.Equal(t, header.KindJWS, obj.Header().Kind())
			},
		},
		{
			Name: "JWE object",
			Input: base64.Encode([]byte(`{"alg":"dir","enc":"A128GCM","iv":"AxY8DCtDaGlsbGljb3RoZQ"}`)) + "..." +
				base64.Encode([]byte("tag")),
			Require: func(t *testing.T, obj Object, err error) {
				require.NoError(t, err)
				require.IsType(t, &jwe.Object{}, obj)
				require.Equal(t, header.KindJWE, obj.Header().Kind())
			},
		},
		{
			Name:  "plaintext with a signature segment",
			Input: base64.Encode([]byte(`{"alg":"none"}`)) + ".cGF5bG9hZA.c2ln",
			Require: func(t *testing.T, obj Object, err error) {
				require.Error(t, err)
			},
		},
		{
			Name:  "not a compact serialization",
			Input: "no delimiters here",
			Require: func(t *testing.T, obj Object, err error) {
				require.Error(t, err)
			},
		},
		{
			Name: "plain header in a four segment layout",
			Input: base64.Encode([]byte(`{"alg":"none"}`)) + "..." +
				base64.Encode([]byte("tag")),
			Require: func(t *testing.T, obj Object, err error) {
				require.Error(t, err)
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			obj, err := Parse(test.Input)
			test.Require(t, obj, err)
		})
	}
}

func TestPlainObjectRoundTrip(t *testing.T) {
	hdr, err := header.NewPlainHeader().Type(header.TypeJWT).Build()
	require.NoError(t, err)

	pl, err := payload.NewJSON(map[string]any{"iss": "joe"})
	require.NoError(t, err)

	obj, err := NewPlainObject(hdr, pl)
	require.NoError(t, err)

	serialized, err := obj.Serialize()
	require.NoError(t, err)

	// The third segment is present but empty.
	require.Equal(t, byte('.'), serialized[len(serialized)-1])

	parsed, err := ParsePlain(serialized)
	require.NoError(t, err)
	require.Equal(t, "JWT", parsed.PlainHeader().Type())

	value, err := parsed.Payload().JSON()
	require.NoError(t, err)
	require.Equal(t, map[string]any{"iss": "joe"}, value)

	reserialized, err := parsed.Serialize()
	require.NoError(t, err)
	require.Equal(t, serialized, reserialized)
}

func TestNewPlainObjectDefaultsHeader(t *testing.T) {
	obj, err := NewPlainObject(nil, payload.NewString("content"))
	require.NoError(t, err)
	require.Equal(t, "none", obj.Header().Algorithm().Name)
}

func TestFullSignedRoundTripThroughParse(t *testing.T) {
	secret := []byte("test-secret-key-that-is-long-enough")

	hdr, err := header.NewJWSHeader(jwa.HS256).Build()
	require.NoError(t, err)

	obj, err := jws.New(hdr, payload.NewString("Hello, world!"))
	require.NoError(t, err)
	require.NoError(t, obj.Sign(&jws.HMACSigner{Secret: secret}))

	serialized, err := obj.Serialize()
	require.NoError(t, err)

	parsed, err := Parse(serialized)
	require.NoError(t, err)

	signed, ok := parsed.(*jws.Object)
	require.True(t, ok)

	valid, err := signed.Verify(&jws.HMACVerifier{Secret: secret})
	require.NoError(t, err)
	require.True(t, valid)
}
