package catalog

import (
	"testing"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGroupTree(t *testing.T) {
	parentID := uint(1)
	flat := []model.OptionGroup{
		{ID: 3, Name: "Color M", ParentGroupID: &parentID, SortOrder: 1},
		{ID: 1, Name: "Size", IsParent: true, SortOrder: 0},
		{ID: 2, Name: "Color S", ParentGroupID: &parentID, SortOrder: 0},
		{ID: 4, Name: "Gift Wrap", SortOrder: 5},
	}

	roots := BuildGroupTree(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, "Size", roots[0].Name)
	assert.Equal(t, "Gift Wrap", roots[1].Name)

	require.Len(t, roots[0].ChildGroups, 2)
	assert.Equal(t, "Color S", roots[0].ChildGroups[0].Name)
	assert.Equal(t, "Color M", roots[0].ChildGroups[1].Name)
	assert.Empty(t, roots[1].ChildGroups)
}

func TestBuildGroupTree_OrphanChildDropped(t *testing.T) {
	missingParent := uint(99)
	flat := []model.OptionGroup{
		{ID: 1, Name: "Size", IsParent: true},
		{ID: 2, Name: "Orphan", ParentGroupID: &missingParent},
	}

	roots := BuildGroupTree(flat)

	// a child pointing at a deleted parent stays out of the tree rather than
	// surfacing as a bogus root
	require.Len(t, roots, 1)
	assert.Equal(t, "Size", roots[0].Name)
}

func TestFlattenGroupTree_RoundTrip(t *testing.T) {
	parentID := uint(1)
	flat := []model.OptionGroup{
		{ID: 1, Name: "Size", IsParent: true, SortOrder: 0},
		{ID: 2, Name: "Color S", ParentGroupID: &parentID, SortOrder: 1},
		{ID: 3, Name: "Color M", ParentGroupID: &parentID, SortOrder: 2},
	}

	flattened := FlattenGroupTree(BuildGroupTree(flat))

	require.Len(t, flattened, 3)
	assert.Equal(t, uint(1), flattened[0].ID)
	assert.Equal(t, uint(2), flattened[1].ID)
	assert.Equal(t, uint(3), flattened[2].ID)
	for _, g := range flattened {
		assert.Nil(t, g.ChildGroups)
	}
}
