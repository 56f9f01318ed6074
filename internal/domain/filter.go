package domain

import (
	"fmt"
	"strings"
)

// FilterKind identifies the predicate type of a list filter.
type FilterKind int

const (
	// FilterByTag keeps issues carrying every tag of the filter (subset
	// test, not exact-set match).
	FilterByTag FilterKind = iota
	// FilterByState keeps issues whose derived state equals the filter
	// state.
	FilterByState
	// FilterByUser keeps issues authored by the filter user
	// (case-insensitive).
	FilterByUser
)

// Filter is a single predicate applied when listing issues.
// The value field used depends on the kind.
type Filter struct {
	User  string
	Tags  []Tag
	State State
	Kind  FilterKind
}

// NewTagFilter creates a filter keeping issues that carry all given tags.
func NewTagFilter(tags []Tag) Filter {
	return Filter{Kind: FilterByTag, Tags: tags}
}

// NewStateFilter creates a filter keeping issues in the given state.
func NewStateFilter(state State) Filter {
	return Filter{Kind: FilterByState, State: state}
}

// NewUserFilter creates a filter keeping issues authored by the given user.
func NewUserFilter(user string) Filter {
	return Filter{Kind: FilterByUser, User: user}
}

// ApplyFilters removes every issue not matching all filters.
// Filters combine with logical AND, so the declaration order of the
// filters does not affect the result.
func ApplyFilters(issues []*Issue, filters []Filter) []*Issue {
	result := issues
	for _, f := range filters {
		kept := result[:0:0]
		for _, issue := range result {
			if f.matches(issue) {
				kept = append(kept, issue)
			}
		}
		result = kept
	}
	return result
}

func (f Filter) matches(i *Issue) bool {
	switch f.Kind {
	case FilterByTag:
		for _, t := range f.Tags {
			if !i.HasTag(t) {
				return false
			}
		}
		return true
	case FilterByState:
		return i.State() == f.State
	case FilterByUser:
		return strings.EqualFold(i.Author, f.User)
	default:
		// The resolver only constructs the kinds above; anything else is
		// a programming error.
		panic(fmt.Sprintf("unknown filter kind: %d", f.Kind))
	}
}
