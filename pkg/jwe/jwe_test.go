package jwe

import (
	"testing"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/header"
	"github.com/josekit/jose/pkg/jwa"
	"github.com/josekit/jose/pkg/keyutil"
	"github.com/josekit/jose/pkg/payload"
	"github.com/stretchr/testify/require"
)

func TestEncryptAndDecrypt(t *testing.T) {
	tests := []struct {
		Name    string
		Method  jwa.EncryptionMethod
		KeySize int
	}{
		{Name: "A128GCM", Method: jwa.A128GCM, KeySize: 16},
		{Name: "A192GCM", Method: jwa.A192GCM, KeySize: 24},
		{Name: "A256GCM", Method: jwa.A256GCM, KeySize: 32},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			key, err := keyutil.NewSymmetricKey(test.KeySize)
			require.NoError(t, err)

			hdr, err := header.NewJWEHeader(jwa.Direct, test.Method).Build()
			require.NoError(t, err)

			obj, err := New(hdr, payload.NewString("Live long and prosper."))
			require.NoError(t, err)
			require.Equal(t, Unencrypted, obj.State())

			require.NoError(t, obj.Encrypt(&DirectEncrypter{Key: key}))
			require.Equal(t, Encrypted, obj.State())
			require.Empty(t, obj.EncryptedKey())
			require.NotEmpty(t, obj.CipherText())

			// The minted initialization vector lands in the header.
			require.NotEmpty(t, obj.JWEHeader().InitializationVector())

			serialized, err := obj.Serialize()
			require.NoError(t, err)

			parsed, err := Parse(serialized)
			require.NoError(t, err)
			require.Equal(t, Encrypted, parsed.State())
			require.Nil(t, parsed.Payload())

			require.NoError(t, parsed.Decrypt(&DirectDecrypter{Key: key}))
			require.Equal(t, Decrypted, parsed.State())
			require.Equal(t, "Live long and prosper.", parsed.Payload().String())
		})
	}
}

func TestStateMachine(t *testing.T) {
	key, err := keyutil.NewSymmetricKey(16)
	require.NoError(t, err)

	hdr, err := header.NewJWEHeader(jwa.Direct, jwa.A128GCM).Build()
	require.NoError(t, err)

	t.Run("serialize before encrypt", func(t *testing.T) {
		obj, err := New(hdr, payload.NewString("content"))
		require.NoError(t, err)

		_, err = obj.Serialize()
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("decrypt before encrypt", func(t *testing.T) {
		obj, err := New(hdr, payload.NewString("content"))
		require.NoError(t, err)

		err = obj.Decrypt(&DirectDecrypter{Key: key})
		require.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("encrypt twice", func(t *testing.T) {
		obj, err := New(hdr, payload.NewString("content"))
		require.NoError(t, err)

		require.NoError(t, obj.Encrypt(&DirectEncrypter{Key: key}))
		require.ErrorIs(t, obj.Encrypt(&DirectEncrypter{Key: key}), ErrInvalidState)
	})

	t.Run("decrypt is not repeatable", func(t *testing.T) {
		obj, err := New(hdr, payload.NewString("content"))
		require.NoError(t, err)
		require.NoError(t, obj.Encrypt(&DirectEncrypter{Key: key}))

		serialized, err := obj.Serialize()
		require.NoError(t, err)

		parsed, err := Parse(serialized)
		require.NoError(t, err)

		require.NoError(t, parsed.Decrypt(&DirectDecrypter{Key: key}))
		require.ErrorIs(t, parsed.Decrypt(&DirectDecrypter{Key: key}), ErrInvalidState)
	})
}

func TestEncryptAlgorithmNotSupported(t *testing.T) {
	key, err := keyutil.NewSymmetricKey(16)
	require.NoError(t, err)

	hdr, err := header.NewJWEHeader(jwa.A128KW, jwa.A128GCM).Build()
	require.NoError(t, err)

	obj, err := New(hdr, payload.NewString("content"))
	require.NoError(t, err)

	err = obj.Encrypt(&DirectEncrypter{Key: key})
	require.ErrorIs(t, err, ErrAlgorithmNotSupported)
	require.Equal(t, Unencrypted, obj.State())
}

func TestDecryptWrongKey(t *testing.T) {
	key, err := keyutil.NewSymmetricKey(32)
	require.NoError(t, err)

	hdr, err := header.NewJWEHeader(jwa.Direct, jwa.A256GCM).Build()
	require.NoError(t, err)

	obj, err := New(hdr, payload.NewString("content"))
	require.NoError(t, err)
	require.NoError(t, obj.Encrypt(&DirectEncrypter{Key: key}))

	serialized, err := obj.Serialize()
	require.NoError(t, err)

	parsed, err := Parse(serialized)
	require.NoError(t, err)

	wrong, err := keyutil.NewSymmetricKey(32)
	require.NoError(t, err)

	// Failure to decrypt is an error, not a boolean outcome.
	err = parsed.Decrypt(&DirectDecrypter{Key: wrong})
	require.Error(t, err)
	require.Equal(t, Encrypted, parsed.State())
}

func TestSerializeReproducesInput(t *testing.T) {
	// A header serialized with member ordering this library would
	// never produce itself, and empty second and fourth segments.
	headerSegment := base64.Encode([]byte(`{"enc":"A128GCM","alg":"dir","iv":"AxY8DCtDaGlsbGljb3RoZQ"}`))
	input := headerSegment + "." + "." + base64.Encode([]byte("opaque")) + "."

	obj, err := Parse(input)
	require.NoError(t, err)
	require.Empty(t, obj.EncryptedKey())
	require.Empty(t, obj.IntegrityValue())

	serialized, err := obj.Serialize()
	require.NoError(t, err)
	require.Equal(t, input, serialized)
}

func TestParseRejectsNonJWELayouts(t *testing.T) {
	_, err := Parse("a.b.c")
	require.Error(t, err)

	// A JWS header in a four segment layout.
	headerSegment := base64.Encode([]byte(`{"alg":"HS256"}`))
	_, err = Parse(headerSegment + ".b.c.d")
	require.Error(t, err)
}

func TestEncrypterKeySizeMismatch(t *testing.T) {
	hdr, err := header.NewJWEHeader(jwa.Direct, jwa.A256GCM).Build()
	require.NoError(t, err)

	obj, err := New(hdr, payload.NewString("content"))
	require.NoError(t, err)

	// 16 bytes cannot serve A256GCM.
	err = obj.Encrypt(&DirectEncrypter{Key: make([]byte, 16)})
	require.Error(t, err)
}
