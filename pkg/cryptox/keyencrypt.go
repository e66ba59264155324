package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrCiphertextTooShort is returned when sealed data cannot hold a nonce.
var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Sealer encrypts vault entry secrets at rest with AES-256-GCM.
// The output format is: [12-byte nonce][encrypted data][16-byte auth tag].
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives a 32-byte key from keyMaterial with SHA-256.
func NewSealer(keyMaterial []byte) (*Sealer, error) {
	if len(keyMaterial) == 0 {
		return nil, errors.New("cryptox: empty master key")
	}
	key := sha256.Sum256(keyMaterial)

	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Sealer{aead: gcm}, nil
}

// LoadSealer reads the master key from path. When path is empty an
// ephemeral key is generated, which means sealed entries will not survive a
// restart; only use that in development.
func LoadSealer(path string) (*Sealer, bool, error) {
	if path == "" {
		material := make([]byte, 32)
		if _, err := rand.Read(material); err != nil {
			return nil, false, fmt.Errorf("failed to generate ephemeral master key: %w", err)
		}
		s, err := NewSealer(material)
		return s, true, err
	}

	material, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read master key file: %w", err)
	}
	s, err := NewSealer(material)
	return s, false, err
}

// Seal encrypts and authenticates plaintext with a random nonce.
func (s *Sealer) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Open decrypts data produced by Seal.
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(sealed) < n {
		return nil, ErrCiphertextTooShort
	}
	plaintext, err := s.aead.Open(nil, sealed[:n], sealed[n:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed: %w", err)
	}
	return plaintext, nil
}
