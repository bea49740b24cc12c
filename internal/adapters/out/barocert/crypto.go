package barocert

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
)

// secretKeySize is the AES-256 key length the vendor issues per link ID.
const secretKeySize = 32

// fieldCipher encrypts personally identifying request fields with
// AES-256-GCM before they leave the process. The vendor decrypts them with
// the shared secret key; nothing in between sees signer identities in the
// clear.
type fieldCipher struct {
	aead cipher.AEAD
}

func newFieldCipher(secret []byte) (fieldCipher, error) {
	if len(secret) != secretKeySize {
		return fieldCipher{}, fmt.Errorf("secret key must be %d bytes, got %d", secretKeySize, len(secret))
	}

	block, err := aes.NewCipher(secret)
	if err != nil {
		return fieldCipher{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return fieldCipher{}, err
	}

	return fieldCipher{aead: aead}, nil
}

// encrypt seals one field value and returns base64(nonce || ciphertext).
func (c fieldCipher) encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// requestSignature produces the HMAC-SHA256 request signature the vendor
// checks against the shared secret: the signed message binds the HTTP
// method, the resource path, the body digest and the request timestamp so
// a captured request cannot be replayed against another resource.
func requestSignature(secret []byte, method, path, date string, body []byte) string {
	bodyDigest := sha256.Sum256(body)

	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%s\n%s\n%s\n%s",
		method, path, base64.StdEncoding.EncodeToString(bodyDigest[:]), date)

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
