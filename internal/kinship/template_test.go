package kinship

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchStatements(t *testing.T) {
	intent, err := Match("Alice is the mother of Bob.")
	require.NoError(t, err)
	si, ok := intent.(StatementIntent)
	require.True(t, ok)
	require.Equal(t, RelMother, si.Rel)
	require.Equal(t, []Person{"Alice", "Bob"}, si.Args)

	intent, err = Match("Alice and Bob are siblings.")
	require.NoError(t, err)
	si = intent.(StatementIntent)
	require.Equal(t, RelSibling, si.Rel)

	intent, err = Match("Alice, Bob, and Carol are children of Dan.")
	require.NoError(t, err)
	si = intent.(StatementIntent)
	require.Equal(t, RelChildrenOfJoint, si.Rel)
	require.Equal(t, []Person{"Alice", "Bob", "Carol", "Dan"}, si.Args)
}

func TestMatchGrandparentBeforeMotherPrecedence(t *testing.T) {
	intent, err := Match("Alice is the grandmother of Bob.")
	require.NoError(t, err)
	si := intent.(StatementIntent)
	require.Equal(t, RelGrandmother, si.Rel, "grandmother must not be matched as mother")
}

func TestMatchQuestions(t *testing.T) {
	intent, err := Match("Is Alice the mother of Bob?")
	require.NoError(t, err)
	qi, ok := intent.(QuestionIntent)
	require.True(t, ok)
	require.Equal(t, RelMother, qi.Rel)

	intent, err = Match("Are Alice and Bob relatives?")
	require.NoError(t, err)
	qi = intent.(QuestionIntent)
	require.Equal(t, RelRelative, qi.Rel)

	intent, err = Match("Who are the siblings of Alice?")
	require.NoError(t, err)
	qi = intent.(QuestionIntent)
	require.True(t, qi.Existential)
	require.Equal(t, "siblings", qi.Word)
}

func TestMatchUnrecognized(t *testing.T) {
	_, err := Match("asdf qwer")
	require.Error(t, err)
	var kerr *KBError
	require.ErrorAs(t, err, &kerr)
	require.Equal(t, UnrecognizedInput, kerr.Kind)
}
