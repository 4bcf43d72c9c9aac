// Package catalog implements the option/variant pricing and stock model for
// configurable products: exact variant resolution, rule-based price
// computation, availability aggregation over variants and stock allocation
// validation for parent/child option groups.
//
// Every function in this package is a pure, deterministic transform of its
// inputs. Callers fetch a consistent snapshot of a product's option groups and
// variants first, then invoke these on every selection change.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/HovVathana/shoppink-backend/internal/app/model"
)

// Selection maps an option group id to the option ids chosen in it.
// Single-selection groups carry at most one id; multiple-selection groups
// carry zero or more.
type Selection map[uint][]uint

// OptionIDSet flattens the selection into a single set of option ids across
// all groups.
func (s Selection) OptionIDSet() map[uint]bool {
	set := make(map[uint]bool)
	for _, ids := range s {
		for _, id := range ids {
			if id != 0 {
				set[id] = true
			}
		}
	}
	return set
}

// Without returns a copy of the selection with the given group removed.
func (s Selection) Without(groupID uint) Selection {
	out := make(Selection, len(s))
	for gid, ids := range s {
		if gid == groupID {
			continue
		}
		out[gid] = ids
	}
	return out
}

// IsEmpty reports whether no option is selected in any group.
func (s Selection) IsEmpty() bool {
	for _, ids := range s {
		if len(ids) > 0 {
			return false
		}
	}
	return true
}

// MarshalSnapshot encodes the selection as JSON with stable group ordering,
// suitable for cart and order item snapshots.
func (s Selection) MarshalSnapshot() (string, error) {
	type entry struct {
		GroupID   uint   `json:"group_id"`
		OptionIDs []uint `json:"option_ids"`
	}
	entries := make([]entry, 0, len(s))
	for gid, ids := range s {
		entries = append(entries, entry{GroupID: gid, OptionIDs: ids})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].GroupID < entries[j].GroupID })

	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseQuerySelection decodes the compact query-string form "1:3,1:4,2:7"
// where each pair is groupID:optionID. An empty string is an empty selection.
func ParseQuerySelection(raw string) (Selection, error) {
	s := Selection{}
	if raw == "" {
		return s, nil
	}
	for _, pair := range strings.Split(raw, ",") {
		groupPart, optionPart, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("malformed selection pair %q", pair)
		}
		groupID, err := strconv.ParseUint(groupPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed group id %q", groupPart)
		}
		optionID, err := strconv.ParseUint(optionPart, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed option id %q", optionPart)
		}
		s[uint(groupID)] = append(s[uint(groupID)], uint(optionID))
	}
	return s, nil
}

// ParseSnapshot decodes a selection previously written by MarshalSnapshot.
func ParseSnapshot(snapshot string) (Selection, error) {
	if snapshot == "" {
		return Selection{}, nil
	}
	var entries []struct {
		GroupID   uint   `json:"group_id"`
		OptionIDs []uint `json:"option_ids"`
	}
	if err := json.Unmarshal([]byte(snapshot), &entries); err != nil {
		return nil, err
	}
	s := make(Selection, len(entries))
	for _, e := range entries {
		s[e.GroupID] = e.OptionIDs
	}
	return s, nil
}

// selectedInOrder returns the group's options that appear in the selection,
// preserving the group's stored option order. Evaluation order is part of the
// pricing contract, not a display concern.
func selectedInOrder(group model.OptionGroup, selected Selection) []model.Option {
	ids := selected[group.ID]
	if len(ids) == 0 {
		return nil
	}
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}

	var picked []model.Option
	for _, opt := range sortedOptions(group.Options) {
		if want[opt.ID] {
			picked = append(picked, opt)
		}
	}
	return picked
}

func sortedGroups(groups []model.OptionGroup) []model.OptionGroup {
	out := make([]model.OptionGroup, len(groups))
	copy(out, groups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func sortedOptions(options []model.Option) []model.Option {
	out := make([]model.Option, len(options))
	copy(out, options)
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}
