package secrets

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte{0x42}, KeySize)
}

func TestSealOpen_RoundTrip(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)

	payload := []byte(`{"access_token":"EAAB...","page_id":"123"}`)

	sealed, err := sealer.Seal(payload)
	require.NoError(t, err)
	assert.NotEqual(t, payload, sealed)

	opened, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, payload, opened)
}

func TestSeal_FreshNoncePerCall(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)

	a, err := sealer.Seal([]byte("same payload"))
	require.NoError(t, err)
	b, err := sealer.Seal([]byte("same payload"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestOpen_WrongKey(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)
	sealed, err := sealer.Seal([]byte("secret"))
	require.NoError(t, err)

	other, err := NewSealer(bytes.Repeat([]byte{0x01}, KeySize))
	require.NoError(t, err)

	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestOpen_Tampered(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)
	sealed, err := sealer.Seal([]byte("secret"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xFF

	_, err = sealer.Open(sealed)
	assert.ErrorIs(t, err, ErrOpenFailed)
}

func TestOpen_TooShort(t *testing.T) {
	sealer, err := NewSealer(testKey())
	require.NoError(t, err)

	_, err = sealer.Open([]byte("short"))
	assert.ErrorIs(t, err, ErrCiphertextTooShort)
}

func TestNewSealer_KeyLength(t *testing.T) {
	_, err := NewSealer([]byte("too short"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewSealerFromHex(t *testing.T) {
	sealer, err := NewSealerFromHex(hex.EncodeToString(testKey()))
	require.NoError(t, err)

	sealed, err := sealer.Seal([]byte("x"))
	require.NoError(t, err)
	opened, err := sealer.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), opened)

	_, err = NewSealerFromHex("zz")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
