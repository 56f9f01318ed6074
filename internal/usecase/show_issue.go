package usecase

import (
	"context"
	"fmt"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// ShowIssueInput contains the parameters for showing an issue.
type ShowIssueInput struct {
	ID int // Issue id
}

// ShowIssueOutput contains the issue to display.
type ShowIssueOutput struct {
	Issue *domain.Issue
}

// ShowIssue is the use case for displaying a single issue with its full
// comment log.
type ShowIssue struct {
	issues domain.IssueRepository
	store  domain.ProjectStore
}

// NewShowIssue creates a new ShowIssue use case.
func NewShowIssue(issues domain.IssueRepository, store domain.ProjectStore) *ShowIssue {
	return &ShowIssue{
		issues: issues,
		store:  store,
	}
}

// Execute loads the issue by id.
func (uc *ShowIssue) Execute(_ context.Context, in ShowIssueInput) (*ShowIssueOutput, error) {
	if !uc.store.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	issue, err := uc.issues.Get(in.ID)
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}
	if issue == nil {
		return nil, fmt.Errorf("%w: #%d", domain.ErrIssueNotFound, in.ID)
	}
	return &ShowIssueOutput{Issue: issue}, nil
}
