package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOrGenerateKey_ExplicitSecretWins(t *testing.T) {
	dir := t.TempDir()

	key, err := LoadOrGenerateKey(testKeyHex, dir)
	require.NoError(t, err)
	assert.Equal(t, testKeyHex, key)

	// Nothing should be written when the secret comes from outside.
	_, err = os.Stat(filepath.Join(dir, keyFileName))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadOrGenerateKey_RejectsBadSecret(t *testing.T) {
	_, err := LoadOrGenerateKey("deadbeef", t.TempDir())
	assert.Error(t, err)

	_, err = LoadOrGenerateKey("zz"+testKeyHex[2:], t.TempDir())
	assert.Error(t, err)
}

func TestLoadOrGenerateKey_GeneratesAndPersists(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrGenerateKey("", dir)
	require.NoError(t, err)
	assert.Len(t, first, keyHexSize)

	// Key file saved with owner-only permissions.
	info, err := os.Stat(filepath.Join(dir, keyFileName))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	// Second call loads the same key instead of generating a new one.
	second, err := LoadOrGenerateKey("", dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLoadOrGenerateKey_RejectsCorruptKeyFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, keyFileName), []byte("not-a-key"), 0o600))

	_, err := LoadOrGenerateKey("", dir)
	assert.Error(t, err)
}
