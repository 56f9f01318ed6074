package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// AddIssueInput contains the parameters for creating a new issue.
type AddIssueInput struct {
	Title   string       // Issue title (required)
	Message string       // Issue description (optional)
	Tags    []domain.Tag // Initial tags (optional)
}

// AddIssueOutput contains the result of creating a new issue.
type AddIssueOutput struct {
	Issue *domain.Issue // The created issue
}

// AddIssue is the use case for adding a new issue to the project.
type AddIssue struct {
	issues   domain.IssueRepository
	store    domain.ProjectStore
	identity domain.Identity
	clock    domain.Clock
	logger   *slog.Logger
}

// NewAddIssue creates a new AddIssue use case.
func NewAddIssue(issues domain.IssueRepository, store domain.ProjectStore, identity domain.Identity, clock domain.Clock, logger *slog.Logger) *AddIssue {
	return &AddIssue{
		issues:   issues,
		store:    store,
		identity: identity,
		clock:    clock,
		logger:   logger,
	}
}

// Execute creates a new issue. The id is allocated as the highest
// existing id plus one, starting at 1 for an empty project.
func (uc *AddIssue) Execute(_ context.Context, in AddIssueInput) (*AddIssueOutput, error) {
	if !uc.store.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.ErrEmptyTitle
	}

	author, err := uc.identity.UserName()
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}

	all, err := uc.issues.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("load issues: %w", err)
	}
	maxID := 0
	for _, existing := range all {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}

	issue := domain.NewIssue(maxID+1, in.Title, in.Message, in.Tags, uc.clock.Now(), author)
	if err := uc.issues.Save(issue, true); err != nil {
		return nil, fmt.Errorf("save issue: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("issue created", "id", issue.ID, "title", issue.Title)
	}
	return &AddIssueOutput{Issue: issue}, nil
}
