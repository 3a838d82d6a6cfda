package jwe

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"github.com/josekit/jose/pkg/base64"
	"github.com/josekit/jose/pkg/header"
	"github.com/josekit/jose/pkg/jwa"
)

// content encryption key sizes per AES-GCM method
var gcmKeySizes = map[string]int{
	jwa.A128GCM.Name: 16,
	jwa.A192GCM.Name: 24,
	jwa.A256GCM.Name: 32,
}

// DirectEncrypter encrypts with a shared content encryption key using
// the "dir" key management algorithm and the AES-GCM content
// encryption methods. The encrypted key segment stays empty, the
// authentication tag is carried inside the cipher text, and the
// integrity value segment stays empty.
type DirectEncrypter struct {
	// Key is the shared content encryption key: 16, 24, or 32 bytes
	// for A128GCM, A192GCM, or A256GCM respectively.
	Key []byte
}

func (e *DirectEncrypter) Algorithms() []jwa.JWEAlgorithm {
	return []jwa.JWEAlgorithm{jwa.Direct}
}

func (e *DirectEncrypter) EncryptionMethods() []jwa.EncryptionMethod {
	return []jwa.EncryptionMethod{jwa.A128GCM, jwa.A192GCM, jwa.A256GCM}
}

func (e *DirectEncrypter) Encrypt(hdr *header.JWEHeader, clearText []byte) (*Result, error) {
	aead, err := newGCM(hdr.EncryptionMethod(), e.Key)
	if err != nil {
		return nil, err
	}

	iv := make([]byte, aead.NonceSize())
	if _, err := rand.Read(iv); err != nil {
		return nil, fmt.Errorf("jwe: failed to generate initialization vector: %w", err)
	}

	return &Result{
		InitializationVector: iv,
		CipherText:           aead.Seal(nil, iv, clearText, nil),
	}, nil
}

// DirectDecrypter decrypts objects produced with DirectEncrypter,
// reading the initialization vector from the protected header.
type DirectDecrypter struct {
	Key []byte
}

func (d *DirectDecrypter) Decrypt(hdr *header.JWEHeader, encryptedKey, cipherText, integrityValue []byte) ([]byte, error) {
	if !hdr.JWEAlgorithm().Equal(jwa.Direct) {
		return nil, fmt.Errorf("jwe: algorithm %q is not direct encryption", hdr.JWEAlgorithm())
	}
	if len(encryptedKey) != 0 {
		return nil, fmt.Errorf("jwe: unexpected encrypted key with direct encryption")
	}

	aead, err := newGCM(hdr.EncryptionMethod(), d.Key)
	if err != nil {
		return nil, err
	}

	encodedIV := hdr.InitializationVector()
	if encodedIV == "" {
		return nil, fmt.Errorf("%w: %q", header.ErrParameterNotFound, header.InitializationVector)
	}
	iv, err := base64.Decode(encodedIV)
	if err != nil {
		return nil, fmt.Errorf("jwe: failed to decode initialization vector: %w", err)
	}
	if len(iv) != aead.NonceSize() {
		return nil, fmt.Errorf("jwe: invalid initialization vector length %d", len(iv))
	}

	clearText, err := aead.Open(nil, iv, cipherText, nil)
	if err != nil {
		return nil, fmt.Errorf("jwe: failed to open cipher text: %w", err)
	}
	return clearText, nil
}

func newGCM(enc jwa.EncryptionMethod, key []byte) (cipher.AEAD, error) {
	size, ok := gcmKeySizes[enc.Name]
	if !ok {
		return nil, fmt.Errorf("jwe: encryption method %q is not an AES-GCM method", enc)
	}
	if len(key) != size {
		return nil, fmt.Errorf("jwe: key is %d bytes, %q requires %d", len(key), enc, size)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("jwe: failed to initialize AES: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("jwe: failed to initialize GCM: %w", err)
	}
	return aead, nil
}
