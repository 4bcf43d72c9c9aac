package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_OptionIDSet(t *testing.T) {
	s := Selection{1: {10, 11}, 2: {20}, 3: nil}

	set := s.OptionIDSet()

	assert.Len(t, set, 3)
	assert.True(t, set[10])
	assert.True(t, set[11])
	assert.True(t, set[20])
}

func TestSelection_Without(t *testing.T) {
	s := Selection{1: {10}, 2: {20}}

	out := s.Without(2)

	assert.Len(t, out, 1)
	assert.Equal(t, []uint{10}, out[1])
	// original untouched
	assert.Len(t, s, 2)
}

func TestSelection_IsEmpty(t *testing.T) {
	assert.True(t, Selection{}.IsEmpty())
	assert.True(t, Selection{1: {}}.IsEmpty())
	assert.False(t, Selection{1: {10}}.IsEmpty())
}

func TestParseQuerySelection(t *testing.T) {
	s, err := ParseQuerySelection("1:10,1:11,2:20")
	require.NoError(t, err)
	assert.Equal(t, Selection{1: {10, 11}, 2: {20}}, s)

	s, err = ParseQuerySelection("")
	require.NoError(t, err)
	assert.True(t, s.IsEmpty())

	_, err = ParseQuerySelection("1-10")
	assert.Error(t, err)
	_, err = ParseQuerySelection("a:10")
	assert.Error(t, err)
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := Selection{2: {20, 21}, 5: {50}}

	snapshot, err := s.MarshalSnapshot()
	require.NoError(t, err)

	parsed, err := ParseSnapshot(snapshot)
	require.NoError(t, err)
	assert.Equal(t, s, parsed)

	empty, err := ParseSnapshot("")
	require.NoError(t, err)
	assert.True(t, empty.IsEmpty())
}

func TestSelection_MarshalSnapshotStableOrder(t *testing.T) {
	s := Selection{3: {30}, 1: {10}, 2: {20, 21}}

	first, err := s.MarshalSnapshot()
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := s.MarshalSnapshot()
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.JSONEq(t, `[
		{"group_id":1,"option_ids":[10]},
		{"group_id":2,"option_ids":[20,21]},
		{"group_id":3,"option_ids":[30]}
	]`, first)
}
