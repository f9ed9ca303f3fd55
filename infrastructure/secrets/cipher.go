package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"social-publisher/infrastructure/logger"
)

// Cipher encrypts individual credential fields for storage. AES-256-GCM with
// a random nonce per value, so identical plaintexts never produce identical
// ciphertexts across users or fields. The key is derived from the shared
// application secret.
type Cipher struct {
	aead cipher.AEAD
}

var ErrEmptyKey = errors.New("secrets: empty key")

func NewCipher(secret string) (*Cipher, error) {
	if secret == "" {
		return nil, ErrEmptyKey
	}
	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Cipher{aead: aead}, nil
}

// EncryptString returns hex(nonce || sealed). Empty input passes through
// unchanged so optional fields stay optional.
func (c *Cipher) EncryptString(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while reading nonce")
		return ""
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed)
}

// DecryptString reverses EncryptString. A corrupted or foreign ciphertext
// yields an empty string for that field rather than an error, so one bad
// field does not take down the whole credentials view.
func (c *Cipher) DecryptString(ciphertext string) string {
	if ciphertext == "" {
		return ""
	}
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Ciphertext is not valid hex")
		return ""
	}
	ns := c.aead.NonceSize()
	if len(raw) < ns {
		logger.GetLogger().Warn("Ciphertext shorter than nonce")
		return ""
	}
	plaintext, err := c.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Decryption failed for credential field")
		return ""
	}
	return string(plaintext)
}
