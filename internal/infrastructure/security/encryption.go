// Package security provides encryption services for data protection
package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"go.uber.org/zap"
	"golang.org/x/crypto/scrypt"
)

// ProfileCipher encrypts nutrition profiles at rest with AES-256-GCM.
// The data key is derived from the configured master secret with scrypt,
// so the secret itself never touches the cipher directly.
type ProfileCipher struct {
	key    []byte
	logger *zap.Logger
}

// profileKeySalt is the installation-wide derivation salt. Rotating it
// invalidates every stored profile, which doubles as a kill switch.
var profileKeySalt = []byte("macromind-profile-v1")

// NewProfileCipher derives the data key and returns a ready cipher.
func NewProfileCipher(masterSecret string, logger *zap.Logger) (*ProfileCipher, error) {
	if masterSecret == "" {
		return nil, fmt.Errorf("profile encryption requires a master secret")
	}

	key, err := scrypt.Key([]byte(masterSecret), profileKeySalt, 32768, 8, 1, 32)
	if err != nil {
		return nil, fmt.Errorf("failed to derive profile key: %w", err)
	}

	return &ProfileCipher{
		key:    key,
		logger: logger.Named("profile-cipher"),
	}, nil
}

// Encrypt seals the plaintext. The nonce is prepended to the ciphertext
// so the blob is self-contained.
func (c *ProfileCipher) Encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt opens a blob produced by Encrypt.
func (c *ProfileCipher) Decrypt(blob []byte) ([]byte, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	if len(blob) < gcm.NonceSize() {
		return nil, fmt.Errorf("invalid encrypted profile length")
	}

	nonce, ciphertext := blob[:gcm.NonceSize()], blob[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		c.logger.Warn("Profile decryption failed", zap.Error(err))
		return nil, fmt.Errorf("failed to decrypt profile: %w", err)
	}
	return plaintext, nil
}
