package kinship

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeNameAccepts(t *testing.T) {
	p, err := NormalizeName("Alice")
	require.NoError(t, err)
	require.Equal(t, "alice", p)
	require.Equal(t, "Alice", Display(p))
}

func TestNormalizeNameRejects(t *testing.T) {
	cases := []string{"", "alice", "ALICE", "Al ice", "Al1ce", "A"}
	for _, c := range cases {
		_, err := NormalizeName(c)
		require.Error(t, err, c)
		var kerr *KBError
		require.ErrorAs(t, err, &kerr)
		require.Equal(t, InvalidName, kerr.Kind)
	}
}

func TestPlaceholderNamingIsDeterministicAndSorted(t *testing.T) {
	require.Equal(t, "shared_mother_alice_bob", placeholderName(Female, "bob", "alice"))
	require.Equal(t, "shared_mother_alice_bob", placeholderName(Female, "alice", "bob"))
	require.Equal(t, "shared_father_alice_bob", placeholderName(Male, "alice", "bob"))
	require.True(t, isPlaceholder(placeholderName(Male, "alice", "bob")))
	require.False(t, isPlaceholder("alice"))
}
