package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	digest, err := Hash("secret1")
	require.NoError(t, err)
	require.NotEqual(t, "secret1", digest)

	require.True(t, Verify("secret1", digest))
	require.False(t, Verify("secret2", digest))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret1")
	require.NoError(t, err)
	second, err := Hash("secret1")
	require.NoError(t, err)

	// Two digests of the same plaintext differ, yet both verify.
	require.NotEqual(t, first, second)
	require.True(t, Verify("secret1", first))
	require.True(t, Verify("secret1", second))
}

func TestVerifyMalformedDigest(t *testing.T) {
	require.False(t, Verify("secret1", "not-a-bcrypt-digest"))
	require.False(t, Verify("secret1", ""))
}
