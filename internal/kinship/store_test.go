package kinship

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreInsertManySkipsDuplicatesAndPrepends(t *testing.T) {
	s := NewStore()
	inserted := s.InsertMany([]Fact{parentOf("alice", "bob"), maleFact("alice")})
	require.Len(t, inserted, 2)

	inserted = s.InsertMany([]Fact{parentOf("alice", "bob"), femaleFact("carol")})
	require.Len(t, inserted, 1)
	require.Equal(t, femaleFact("carol"), inserted[0])

	snap := s.Snapshot()
	require.Equal(t, femaleFact("carol"), snap[0], "newest fact should be first")
}

func TestStoreRemoveWhere(t *testing.T) {
	s := NewStore()
	s.InsertMany([]Fact{parentOf("ph", "alice"), parentOf("ph", "bob"), maleFact("ph")})
	removed := s.RemoveWhere(func(f Fact) bool { return f.mentions("ph") })
	require.Len(t, removed, 3)
	require.Empty(t, s.Snapshot())
}

func TestStoreCloneIsIndependent(t *testing.T) {
	s := NewStore()
	s.InsertMany([]Fact{maleFact("alice")})
	clone := s.Clone()
	s.InsertMany([]Fact{femaleFact("bob")})
	require.Len(t, clone.Snapshot(), 1)
	require.Len(t, s.Snapshot(), 2)
}
