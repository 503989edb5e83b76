package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileCipher(t *testing.T) {
	cipher, err := NewProfileCipher("test-master-secret", zap.NewNop())
	require.NoError(t, err)

	t.Run("RoundTrip", func(t *testing.T) {
		plaintext := []byte(`{"userId":"u1","mode":"sync","goal":"lose"}`)

		blob, err := cipher.Encrypt(plaintext)
		require.NoError(t, err)
		assert.NotEqual(t, plaintext, blob)

		decrypted, err := cipher.Decrypt(blob)
		require.NoError(t, err)
		assert.Equal(t, plaintext, decrypted)
	})

	t.Run("TamperedBlob_Rejected", func(t *testing.T) {
		blob, err := cipher.Encrypt([]byte("profile body"))
		require.NoError(t, err)

		blob[len(blob)-1] ^= 0xff
		_, err = cipher.Decrypt(blob)
		assert.Error(t, err)
	})

	t.Run("WrongKey_Rejected", func(t *testing.T) {
		other, err := NewProfileCipher("different-secret", zap.NewNop())
		require.NoError(t, err)

		blob, err := cipher.Encrypt([]byte("profile body"))
		require.NoError(t, err)

		_, err = other.Decrypt(blob)
		assert.Error(t, err)
	})

	t.Run("TruncatedBlob_Rejected", func(t *testing.T) {
		_, err := cipher.Decrypt([]byte("short"))
		assert.Error(t, err)
	})

	t.Run("EmptySecret_Rejected", func(t *testing.T) {
		_, err := NewProfileCipher("", zap.NewNop())
		assert.Error(t, err)
	})
}
