package kinship

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrandparentSideClarification(t *testing.T) {
	tests := []struct {
		name       string
		grandStmt  string
		answer     string
		grandQuery string
	}{
		{"maternal", "Carol is the grandmother of Bob.", "maternal", "Is Carol the grandmother of Bob?"},
		{"paternal", "Frank is the grandfather of Bob.", "paternal", "Is Frank the grandfather of Bob?"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSessionState()
			mustProcess(t, s, "Eve is the mother of Bob.")
			mustProcess(t, s, "Dan is the father of Bob.")

			reply := mustProcess(t, s, tt.grandStmt)
			require.Contains(t, reply, "maternal or paternal")
			require.NotNil(t, s.Pending)
			require.Equal(t, ClarifyGrandparentSide, s.Pending.Kind)

			reply = mustProcess(t, s, tt.answer)
			require.Equal(t, replyAccepted, reply)
			require.Nil(t, s.Pending)

			reply = mustProcess(t, s, tt.grandQuery)
			require.Equal(t, "Yes.", reply)
		})
	}
}

func TestGrandparentSideClarification_InvalidReplyReprompts(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Bob.")
	mustProcess(t, s, "Dan is the father of Bob.")
	mustProcess(t, s, "Carol is the grandmother of Bob.")
	require.NotNil(t, s.Pending)

	reply := mustProcess(t, s, "maybe")
	require.Contains(t, reply, "didn't understand")
	require.NotNil(t, s.Pending, "pending clarification survives an unrecognized reply")
}

// TestAuntUncleFullClarification_DirectlyReached exercises ClarifyAuntUncleFull
// without going through ClarifyAuntUncleSide first: the niece/nephew already
// has exactly one named parent, so validateAuntUncle skips straight to asking
// whether the candidate and that parent are full siblings.
func TestAuntUncleFullClarification_DirectlyReached(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Bob.")

	reply := mustProcess(t, s, "Alice is the aunt of Bob.")
	require.Contains(t, reply, "full siblings")
	require.NotNil(t, s.Pending)
	require.Equal(t, ClarifyAuntUncleFull, s.Pending.Kind)

	reply = mustProcess(t, s, "yes")
	require.Equal(t, replyAccepted, reply)
	require.Nil(t, s.Pending)

	reply = mustProcess(t, s, "Is Alice the aunt of Bob?")
	require.Equal(t, "Yes.", reply)
}

// TestAuntUncleSideClarification_ChainsIntoFull covers the other branch of
// validateAuntUncle: the niece/nephew has two named parents, so the engine
// must first ask which side, then chain into the full/half-sibling question.
func TestAuntUncleSideClarification_ChainsIntoFull(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Bob.")
	mustProcess(t, s, "Dan is the father of Bob.")

	reply := mustProcess(t, s, "Alice is the aunt of Bob.")
	require.Contains(t, reply, "maternal or paternal aunt or uncle")
	require.NotNil(t, s.Pending)
	require.Equal(t, ClarifyAuntUncleSide, s.Pending.Kind)

	reply = mustProcess(t, s, "maternal")
	require.Contains(t, reply, "full siblings")
	require.NotNil(t, s.Pending)
	require.Equal(t, ClarifyAuntUncleFull, s.Pending.Kind)

	reply = mustProcess(t, s, "yes")
	require.Equal(t, replyAccepted, reply)

	reply = mustProcess(t, s, "Is Alice the aunt of Bob?")
	require.Equal(t, "Yes.", reply)

	reply = mustProcess(t, s, "Is Alice a sister of Eve?")
	require.Equal(t, "Yes.", reply)
}

// TestAuntUncleFullClarification_HalfSiblingAnswerStillConfersUncle answers
// "no" (half-siblings, not full) to the chained full-sibling question: Alice
// still counts as Bob's uncle through the shared parent, even though Alice
// and Dan are only half-siblings.
func TestAuntUncleFullClarification_HalfSiblingAnswerStillConfersUncle(t *testing.T) {
	s := NewSessionState()
	mustProcess(t, s, "Eve is the mother of Bob.")
	mustProcess(t, s, "Dan is the father of Bob.")
	mustProcess(t, s, "Alice is the uncle of Bob.")

	reply := mustProcess(t, s, "paternal")
	require.Contains(t, reply, "full siblings")
	require.Equal(t, ClarifyAuntUncleFull, s.Pending.Kind)

	reply = mustProcess(t, s, "no")
	require.Equal(t, replyAccepted, reply)

	reply = mustProcess(t, s, "Is Alice the uncle of Bob?")
	require.Equal(t, "Yes.", reply)

	reply = mustProcess(t, s, "Is Alice male?")
	require.Equal(t, "Yes.", reply)
}
