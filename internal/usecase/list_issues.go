package usecase

import (
	"context"
	"fmt"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// ListIssuesInput contains the parameters for listing issues.
type ListIssuesInput struct {
	Filters []domain.Filter // Filters combined with logical AND
}

// ListIssuesOutput contains the result of listing issues.
type ListIssuesOutput struct {
	Issues        []*domain.Issue // Matching issues in enumeration order
	StateFiltered bool            // Whether a state filter narrowed the result
}

// ListIssues is the use case for listing issues matching a set of
// filters.
type ListIssues struct {
	issues domain.IssueRepository
	store  domain.ProjectStore
}

// NewListIssues creates a new ListIssues use case.
func NewListIssues(issues domain.IssueRepository, store domain.ProjectStore) *ListIssues {
	return &ListIssues{
		issues: issues,
		store:  store,
	}
}

// Execute loads all issues and applies the filters. At most one filter
// of each kind may be given.
func (uc *ListIssues) Execute(_ context.Context, in ListIssuesInput) (*ListIssuesOutput, error) {
	if !uc.store.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}

	seen := make(map[domain.FilterKind]bool, len(in.Filters))
	stateFiltered := false
	for _, f := range in.Filters {
		if seen[f.Kind] {
			return nil, domain.ErrDuplicateFilter
		}
		seen[f.Kind] = true
		if f.Kind == domain.FilterByState {
			stateFiltered = true
		}
	}

	all, err := uc.issues.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}

	return &ListIssuesOutput{
		Issues:        domain.ApplyFilters(all, in.Filters),
		StateFiltered: stateFiltered,
	}, nil
}
