package cryptox_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("test-master-key-for-encryption-12345"))
	require.NoError(t, err)

	secret := []byte("hunter2-but-longer")

	sealed1, err := s.Seal(secret)
	require.NoError(t, err)
	sealed2, err := s.Seal(secret)
	require.NoError(t, err)

	// Random nonces
	require.NotEqual(t, sealed1, sealed2)
	require.NotContains(t, string(sealed1), string(secret))

	for _, sealed := range [][]byte{sealed1, sealed2} {
		got, err := s.Open(sealed)
		require.NoError(t, err)
		require.Equal(t, secret, got)
	}
}

func TestOpen_WrongKey(t *testing.T) {
	a, err := cryptox.NewSealer([]byte("key-a"))
	require.NoError(t, err)
	b, err := cryptox.NewSealer([]byte("key-b"))
	require.NoError(t, err)

	sealed, err := a.Seal([]byte("data"))
	require.NoError(t, err)

	_, err = b.Open(sealed)
	require.Error(t, err)
}

func TestOpen_Tampered(t *testing.T) {
	s, err := cryptox.NewSealer([]byte("key"))
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("data"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = s.Open(sealed)
	require.Error(t, err)

	_, err = s.Open([]byte{1, 2, 3})
	require.ErrorIs(t, err, cryptox.ErrCiphertextTooShort)
}

func TestNewSealer_EmptyKey(t *testing.T) {
	_, err := cryptox.NewSealer(nil)
	require.Error(t, err)
}

func TestLoadSealer(t *testing.T) {
	t.Run("ephemeral", func(t *testing.T) {
		s, ephemeral, err := cryptox.LoadSealer("")
		require.NoError(t, err)
		require.True(t, ephemeral)
		require.NotNil(t, s)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "master.key")
		require.NoError(t, os.WriteFile(path, []byte("file-key"), 0600))

		s, ephemeral, err := cryptox.LoadSealer(path)
		require.NoError(t, err)
		require.False(t, ephemeral)

		sealed, err := s.Seal([]byte("x"))
		require.NoError(t, err)

		again, _, err := cryptox.LoadSealer(path)
		require.NoError(t, err)
		got, err := again.Open(sealed)
		require.NoError(t, err)
		require.Equal(t, []byte("x"), got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := cryptox.LoadSealer(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
	})
}
