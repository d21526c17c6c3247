package kinship

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustProcess(t *testing.T, session *SessionState, input string) string {
	t.Helper()
	reply, err := Process(context.Background(), input, session)
	require.NoError(t, err)
	return reply
}

func TestScenario1_DirectMotherFact(t *testing.T) {
	s := NewSessionState()
	require.Equal(t, replyAccepted, mustProcess(t, s, "Alice is the mother of Bob."))
	require.Equal(t, "Yes.", mustProcess(t, s, "Is Alice the mother of Bob?"))
	require.Equal(t, "Yes.", mustProcess(t, s, "Is Bob a child of Alice?"))
}

func TestScenario2_CircularAncestryRejected(t *testing.T) {
	s := NewSessionState()
	require.Equal(t, replyAccepted, mustProcess(t, s, "Alice is the mother of Bob."))
	reply := mustProcess(t, s, "Bob is the father of Alice.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "Alice")
}

func TestScenario3_SecondMotherRejected(t *testing.T) {
	s := NewSessionState()
	require.Equal(t, replyAccepted, mustProcess(t, s, "Alice is the mother of Bob."))
	reply := mustProcess(t, s, "Carol is the mother of Bob.")
	require.Contains(t, reply, "That's impossible!")
	require.Contains(t, reply, "Bob")
	require.Contains(t, reply, "Alice")
}

func TestScenario4_FullSiblingClarification(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "Alice and Bob are siblings.")
	require.Contains(t, reply, "full siblings")
	require.NotNil(t, s.Pending)

	reply = mustProcess(t, s, "yes")
	require.Equal(t, replyAccepted, reply)
	require.Nil(t, s.Pending)

	reply = mustProcess(t, s, "Who are the siblings of Alice?")
	require.Contains(t, reply, "bob")

	reply = mustProcess(t, s, "Are Alice and Bob siblings?")
	require.Contains(t, reply, "full siblings")
}

func TestScenario5_NamedParentSupersedesPlaceholder(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice and Bob are siblings.")
	mustProcess(t, s, "yes")

	reply := mustProcess(t, s, "Carol is the mother of Alice.")
	require.Equal(t, replyAccepted, reply)
	require.Nil(t, s.Pending, "no clarification expected: a placeholder already covers this slot")

	reply = mustProcess(t, s, "Who is the mother of Bob?")
	require.Contains(t, reply, "carol")

	for _, f := range s.Store.Snapshot() {
		require.False(t, isPlaceholder(f.A) && f.Pred == PredFemale, "placeholder mother should have been removed")
	}
}

func TestScenario6_HalfSiblingsThenSecondFather(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice and Bob are siblings.")
	mustProcess(t, s, "no")
	reply := mustProcess(t, s, "yes")
	require.Equal(t, replyAccepted, reply)

	reply = mustProcess(t, s, "Are Alice and Bob siblings?")
	require.Contains(t, reply, "half-sibling")

	reply = mustProcess(t, s, "David is the father of Alice.")
	require.Equal(t, replyAccepted, reply)

	// Bob still has a placeholder father, so David replaces it too: Alice
	// and Bob now share both parents and become known full siblings.
	reply = mustProcess(t, s, "David is the father of Bob.")
	require.Equal(t, replyAccepted, reply)

	reply = mustProcess(t, s, "Are Alice and Bob siblings?")
	require.Contains(t, reply, "full sibling")

	reply = mustProcess(t, s, "Who is the father of Bob?")
	require.Contains(t, reply, "david")
}

func TestRedundantFactReportsAlreadyKnown(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice is the mother of Bob.")
	reply := mustProcess(t, s, "Alice is the mother of Bob.")
	require.Equal(t, replyRedundant, reply)
}

func TestUnrecognizedInputSuggestsUsage(t *testing.T) {
	s := NewSessionState()
	reply := mustProcess(t, s, "blah blah blah")
	require.Contains(t, reply, "didn't understand")
}

func TestAreRelativesBoundaryIncludesSamePerson(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Alice is the mother of Bob.")
	reply := mustProcess(t, s, "Are Alice and Alice relatives?")
	require.Equal(t, "Yes.", reply)
}
