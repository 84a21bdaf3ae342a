// Package secrets seals platform credential payloads before they reach the
// database. Listings credentials carry marketplace API tokens, so rows at
// rest hold only the sealed form.
package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/nacl/secretbox"
)

// KeySize is the required length of the sealing key in bytes
const KeySize = 32

const nonceSize = 24

var (
	// ErrInvalidKey indicates the configured sealing key has the wrong length
	ErrInvalidKey = errors.New("secrets: sealing key must be 32 bytes")
	// ErrCiphertextTooShort indicates a sealed payload shorter than its nonce
	ErrCiphertextTooShort = errors.New("secrets: sealed payload too short")
	// ErrOpenFailed indicates the payload failed authentication, either a
	// wrong key or a tampered row
	ErrOpenFailed = errors.New("secrets: payload authentication failed")
)

// Sealer performs authenticated encryption of credential payloads with a
// single static key. The nonce is generated per seal and prepended to the
// ciphertext, so sealed payloads are self-contained.
type Sealer struct {
	key [KeySize]byte
}

// NewSealer creates a Sealer from a raw 32-byte key
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidKey, len(key))
	}
	s := &Sealer{}
	copy(s.key[:], key)
	return s, nil
}

// NewSealerFromHex creates a Sealer from a hex-encoded 32-byte key, the form
// used in configuration
func NewSealerFromHex(hexKey string) (*Sealer, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: not valid hex", ErrInvalidKey)
	}
	return NewSealer(key)
}

// Seal encrypts and authenticates the payload. The returned slice is
// nonce || box and can be stored directly.
func (s *Sealer) Seal(payload []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("secrets: nonce generation failed: %w", err)
	}
	return secretbox.Seal(nonce[:], payload, &nonce, &s.key), nil
}

// Open authenticates and decrypts a payload produced by Seal
func (s *Sealer) Open(sealed []byte) ([]byte, error) {
	if len(sealed) < nonceSize {
		return nil, ErrCiphertextTooShort
	}
	var nonce [nonceSize]byte
	copy(nonce[:], sealed[:nonceSize])

	payload, ok := secretbox.Open(nil, sealed[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrOpenFailed
	}
	return payload, nil
}
