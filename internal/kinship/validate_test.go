package kinship

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateParentOf_GenderContradictionRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice is female.")
	reply := mustProcess(t, s, "Alice is the father of Bob.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "Alice")
}

func TestValidateParentOf_SelfParentRejected(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "Alice is the mother of Alice.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "own parent")
}

func TestValidateParentOf_AlreadyGrandparentRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Bob.")
	mustProcess(t, s, "Dan is the father of Bob.")
	mustProcess(t, s, "Carol is the grandmother of Bob.")
	mustProcess(t, s, "maternal")

	reply := mustProcess(t, s, "Is Carol the grandmother of Bob?")
	require.Equal(t, "Yes.", reply)

	// Carol is already Bob's grandparent; asserting her as a direct parent
	// too would collapse two generations into one (check 6's incest gate).
	reply = mustProcess(t, s, "Carol is the mother of Bob.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "already a grandparent")
}

func TestValidateParentOf_CircularAncestryRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Bob.")
	mustProcess(t, s, "Dan is the father of Bob.")
	mustProcess(t, s, "Carol is the grandmother of Bob.")
	mustProcess(t, s, "maternal")

	// Carol is already an ancestor of Bob, so Bob cannot become Carol's
	// parent without creating a cycle (check 4).
	reply := mustProcess(t, s, "Bob is the father of Carol.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "circular ancestry")
}

func TestValidateParentOf_CategoryExclusivityRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Bob.")
	mustProcess(t, s, "Alice is the aunt of Bob.")
	mustProcess(t, s, "yes")

	reply := mustProcess(t, s, "Is Alice the aunt of Bob?")
	require.Equal(t, "Yes.", reply)

	// Alice and Bob are already known as aunt/niece-or-nephew; they cannot
	// also become parent and child (check 5/6 category exclusivity).
	reply = mustProcess(t, s, "Alice is the mother of Bob.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "aunt/uncle")
}

func TestValidateParentOf_TwoParentCapRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Alice.")
	mustProcess(t, s, "Dan is the father of Alice.")

	reply := mustProcess(t, s, "Alice is a child of Frank.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "two parents")
}

func TestValidateParentOf_SameGenderSecondNamedParentRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Alice.")

	reply := mustProcess(t, s, "Fay is the mother of Alice.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "already has a mother")
}

func TestValidateSiblingStatement_SelfRejected(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "Alice and Alice are siblings.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "own sibling")
}

func TestValidateSiblingStatement_CategoryExclusivityRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice is the mother of Bob.")

	// Alice is already Bob's ancestor; they cannot also be siblings.
	reply := mustProcess(t, s, "Alice and Bob are siblings.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "ancestor/descendant")
}

func TestValidateSiblingStatement_DisjointNamedParentsRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Alice.")
	mustProcess(t, s, "Dan is the father of Alice.")
	mustProcess(t, s, "Fay is the mother of Bob.")
	mustProcess(t, s, "Gus is the father of Bob.")

	reply := mustProcess(t, s, "Alice and Bob are siblings.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "cannot share one")
}

func TestValidateSiblingStatement_AlreadyKnownOppositeKindRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice and Bob are siblings.")
	mustProcess(t, s, "yes")

	reply := mustProcess(t, s, "Alice and Bob are half-siblings.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "full siblings")
}

func TestValidateGrandparent_SelfRejected(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "Alice is the grandmother of Alice.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "own grandparent")
}

func TestValidateAuntUncle_SelfRejected(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "Alice is the aunt of Alice.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "own aunt or uncle")
}

func TestValidateCousin_SelfRejected(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "Alice is a cousin of Alice.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "own cousin")
}

func TestValidateCousin_NonDerivableRejected(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "Alice is a cousin of Bob.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "cousins")
}

func TestValidateCousin_DerivableAccepted(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Alice.")
	mustProcess(t, s, "Fay is the mother of Bob.")
	mustProcess(t, s, "Eve and Fay are siblings.")
	mustProcess(t, s, "yes")

	reply := mustProcess(t, s, "Is Alice a cousin of Bob?")
	require.Equal(t, "Yes.", reply)

	reply = mustProcess(t, s, "Alice is a cousin of Bob.")
	require.Equal(t, replyRedundant, reply)
}

func TestValidateCousin_CategoryExclusivityRejected(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice is the mother of Bob.")

	reply := mustProcess(t, s, "Alice is a cousin of Bob.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "ancestor/descendant")
}
