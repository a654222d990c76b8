package secure_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cirreum/secretsprovider/internal/secure"
)

// TestBufferRoundTrip verifies sealed data comes back intact.
func TestBufferRoundTrip(t *testing.T) {
	t.Parallel()

	buf := secure.NewBuffer([]byte("https://vault.local/a"))

	locked, err := buf.Open()
	require.NoError(t, err)
	defer locked.Destroy()

	assert.Equal(t, "https://vault.local/a", string(locked.Bytes()))
}

// TestBufferOpenTwice verifies the enclave can be opened repeatedly.
func TestBufferOpenTwice(t *testing.T) {
	t.Parallel()

	buf := secure.NewBuffer([]byte("postgres://db.local/secrets"))

	first, err := buf.Open()
	require.NoError(t, err)
	firstValue := string(first.Bytes())
	first.Destroy()

	second, err := buf.Open()
	require.NoError(t, err)
	defer second.Destroy()

	assert.Equal(t, firstValue, string(second.Bytes()))
}

// TestBufferDestroy verifies Open fails after Destroy and Destroy is
// idempotent.
func TestBufferDestroy(t *testing.T) {
	t.Parallel()

	buf := secure.NewBuffer([]byte("sensitive"))
	buf.Destroy()
	buf.Destroy()

	_, err := buf.Open()
	assert.ErrorIs(t, err, secure.ErrDestroyed)
}

// TestBufferEmptyData verifies zero-length input yields a buffer that cannot
// be opened rather than a panic.
func TestBufferEmptyData(t *testing.T) {
	t.Parallel()

	buf := secure.NewBuffer(nil)
	_, err := buf.Open()
	assert.ErrorIs(t, err, secure.ErrDestroyed)
}
