package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// ChangeStateInput contains the parameters for closing or reopening an
// issue.
type ChangeStateInput struct {
	Target domain.State // Target state (open for reopen, closed for close)
	ID     int          // Issue id
}

// ChangeStateOutput contains the result of a state change.
type ChangeStateOutput struct {
	Issue   *domain.Issue // The affected issue
	Changed bool          // False when the issue already was in the target state (no-op)
}

// ChangeState is the use case for closing and reopening issues.
//
// The transition is recorded as a system comment carrying the state
// change marker; the issue state itself is derived from that comment.
// Changing into the current state is an idempotent no-op: nothing is
// appended and nothing is written.
type ChangeState struct {
	issues   domain.IssueRepository
	store    domain.ProjectStore
	identity domain.Identity
	clock    domain.Clock
	logger   *slog.Logger
}

// NewChangeState creates a new ChangeState use case.
func NewChangeState(issues domain.IssueRepository, store domain.ProjectStore, identity domain.Identity, clock domain.Clock, logger *slog.Logger) *ChangeState {
	return &ChangeState{
		issues:   issues,
		store:    store,
		identity: identity,
		clock:    clock,
		logger:   logger,
	}
}

// Execute transitions the issue into the target state.
func (uc *ChangeState) Execute(_ context.Context, in ChangeStateInput) (*ChangeStateOutput, error) {
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

	if issue.State() == in.Target {
		return &ChangeStateOutput{Issue: issue}, nil
	}

	author, err := uc.identity.UserName()
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	message := "Closed the issue."
	if in.Target == domain.StateOpen {
		message = "Reopened the issue."
	}
	issue.AppendComment(domain.NewStateChangeComment(message, author, uc.clock.Now(), in.Target))

	if err := uc.issues.Save(issue, false); err != nil {
		return nil, fmt.Errorf("save issue: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("state changed", "id", issue.ID, "state", in.Target)
	}
	return &ChangeStateOutput{Issue: issue, Changed: true}, nil
}
