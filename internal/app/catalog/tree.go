package catalog

import (
	"github.com/HovVathana/shoppink-backend/internal/app/model"
)

// BuildGroupTree joins a flat option-group list into its parent/child
// hierarchy. Child groups are attached to their parent's ChildGroups slice and
// only root groups (standalone or parent) are returned, both levels ordered by
// sort order. The tree is built once per product load instead of re-filtering
// the flat list on every render.
func BuildGroupTree(groups []model.OptionGroup) []model.OptionGroup {
	children := make(map[uint][]model.OptionGroup)
	for _, g := range groups {
		if g.ParentGroupID != nil {
			children[*g.ParentGroupID] = append(children[*g.ParentGroupID], g)
		}
	}

	var roots []model.OptionGroup
	for _, g := range sortedGroups(groups) {
		if g.ParentGroupID != nil {
			continue
		}
		g.ChildGroups = sortedGroups(children[g.ID])
		roots = append(roots, g)
	}
	return roots
}

// FlattenGroupTree is the inverse of BuildGroupTree: roots followed by their
// children, in tree order. Child entries keep their ChildGroups cleared so the
// result round-trips.
func FlattenGroupTree(roots []model.OptionGroup) []model.OptionGroup {
	var flat []model.OptionGroup
	for _, g := range roots {
		kids := g.ChildGroups
		g.ChildGroups = nil
		flat = append(flat, g)
		for _, child := range kids {
			child.ChildGroups = nil
			flat = append(flat, child)
		}
	}
	return flat
}
