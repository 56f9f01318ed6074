package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// CommentIssueInput contains the parameters for commenting on an issue.
type CommentIssueInput struct {
	Message string // Comment text (required)
	ID      int    // Issue id (required)
}

// CommentIssueOutput contains the result of adding a comment.
type CommentIssueOutput struct {
	Comment domain.Comment // The created comment
}

// CommentIssue is the use case for adding a user comment to an issue.
type CommentIssue struct {
	issues   domain.IssueRepository
	store    domain.ProjectStore
	identity domain.Identity
	clock    domain.Clock
}

// NewCommentIssue creates a new CommentIssue use case.
func NewCommentIssue(issues domain.IssueRepository, store domain.ProjectStore, identity domain.Identity, clock domain.Clock) *CommentIssue {
	return &CommentIssue{
		issues:   issues,
		store:    store,
		identity: identity,
		clock:    clock,
	}
}

// Execute appends one user comment and persists the issue.
func (uc *CommentIssue) Execute(_ context.Context, in CommentIssueInput) (*CommentIssueOutput, error) {
	if !uc.store.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	issue, err := uc.issues.Get(in.ID)
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}
	if issue == nil {
		return nil, fmt.Errorf("%w: #%d", domain.ErrIssueNotFound, in.ID)
	}

	author, err := uc.identity.UserName()
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	comment := domain.NewUserComment(in.Message, author, uc.clock.Now())
	issue.AppendComment(comment)

	if err := uc.issues.Save(issue, false); err != nil {
		return nil, fmt.Errorf("save issue: %w", err)
	}
	return &CommentIssueOutput{Comment: comment}, nil
}
