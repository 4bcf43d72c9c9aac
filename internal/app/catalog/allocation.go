package catalog

import (
	"fmt"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
)

type ViolationKind string

const (
	// ViolationParentOption: the child groups under a parent collectively
	// claim more stock than one of the parent's options holds.
	ViolationParentOption ViolationKind = "parent_option_overallocated"
	// ViolationChildGroup: the options of a child group collectively claim
	// more stock than the group was allocated.
	ViolationChildGroup ViolationKind = "child_group_overallocated"
)

// Violation is an advisory over-allocation finding. Stock bookkeeping may be
// transiently inconsistent while an operator is editing, so violations warn
// but never block reads.
type Violation struct {
	Kind      ViolationKind `json:"kind"`
	GroupID   uint          `json:"group_id"`
	GroupName string        `json:"group_name"`
	OptionID  uint          `json:"option_id,omitempty"`
	Allocated int           `json:"allocated"`
	Available int           `json:"available"`
}

func (v Violation) String() string {
	if v.Kind == ViolationParentOption {
		return fmt.Sprintf("option %d of parent group %q: %d allocated to child groups, %d available",
			v.OptionID, v.GroupName, v.Allocated, v.Available)
	}
	return fmt.Sprintf("child group %q: %d allocated to options, %d available",
		v.GroupName, v.Allocated, v.Available)
}

// ValidateAllocations checks the two levels of the stock hierarchy over a flat
// option-group list (children joined by ParentGroupID): the stock the child
// groups claim under each parent option, and the stock each child group's
// options claim against the group itself.
func ValidateAllocations(groups []model.OptionGroup) []Violation {
	var violations []Violation

	childSum := make(map[uint]int) // parent group id -> total child group stock
	for _, g := range groups {
		if g.ParentGroupID != nil {
			childSum[*g.ParentGroupID] += g.StockQuantity
		}
	}

	for _, g := range sortedGroups(groups) {
		if g.IsParent {
			allocated := childSum[g.ID]
			for _, opt := range sortedOptions(g.Options) {
				if allocated > opt.StockQuantity {
					violations = append(violations, Violation{
						Kind:      ViolationParentOption,
						GroupID:   g.ID,
						GroupName: g.Name,
						OptionID:  opt.ID,
						Allocated: allocated,
						Available: opt.StockQuantity,
					})
				}
			}
		}

		if g.ParentGroupID != nil {
			allocated := 0
			for _, opt := range g.Options {
				allocated += opt.StockQuantity
			}
			if allocated > g.StockQuantity {
				violations = append(violations, Violation{
					Kind:      ViolationChildGroup,
					GroupID:   g.ID,
					GroupName: g.Name,
					Allocated: allocated,
					Available: g.StockQuantity,
				})
			}
		}
	}

	return violations
}
