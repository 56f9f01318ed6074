package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// EditTagsInput contains the parameters for editing the tags of an
// issue.
type EditTagsInput struct {
	Add    []domain.Tag // Tags to add
	Remove []domain.Tag // Tags to remove
	ID     int          // Issue id
}

// EditTagsOutput contains the result of a tag edit.
//
// Tags that were already present (for add) or absent (for remove) are
// individual no-ops, reported but not fatal. If nothing changed at all,
// Changed is false and no write was performed.
type EditTagsOutput struct {
	Summary        string       // System comment message, empty when nothing changed
	Added          []domain.Tag // Tags actually added
	Removed        []domain.Tag // Tags actually removed
	AlreadyPresent []domain.Tag // Add requests that were no-ops
	NotPresent     []domain.Tag // Remove requests that were no-ops
	Changed        bool         // Whether a write was performed
}

// EditTags is the use case for adding and removing issue tags.
type EditTags struct {
	issues   domain.IssueRepository
	store    domain.ProjectStore
	identity domain.Identity
	clock    domain.Clock
	logger   *slog.Logger
}

// NewEditTags creates a new EditTags use case.
func NewEditTags(issues domain.IssueRepository, store domain.ProjectStore, identity domain.Identity, clock domain.Clock, logger *slog.Logger) *EditTags {
	return &EditTags{
		issues:   issues,
		store:    store,
		identity: identity,
		clock:    clock,
		logger:   logger,
	}
}

// Execute applies the tag delta. A successful edit appends exactly one
// system comment summarizing the change and persists once.
func (uc *EditTags) Execute(_ context.Context, in EditTagsInput) (*EditTagsOutput, error) {
	if !uc.store.IsInitialized() {
		return nil, domain.ErrNotInitialized
	}
	for _, t := range in.Add {
		for _, r := range in.Remove {
			if t == r {
				return nil, fmt.Errorf("%w: %s", domain.ErrTagConflict, t)
			}
		}
	}

	issue, err := uc.issues.Get(in.ID)
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}
	if issue == nil {
		return nil, fmt.Errorf("%w: #%d", domain.ErrIssueNotFound, in.ID)
	}

	out := &EditTagsOutput{}
	for _, t := range in.Add {
		if issue.AddTag(t) {
			out.Added = append(out.Added, t)
		} else {
			out.AlreadyPresent = append(out.AlreadyPresent, t)
		}
	}
	for _, t := range in.Remove {
		if issue.RemoveTag(t) {
			out.Removed = append(out.Removed, t)
		} else {
			out.NotPresent = append(out.NotPresent, t)
		}
	}

	if len(out.Added) == 0 && len(out.Removed) == 0 {
		return out, nil
	}

	out.Changed = true
	out.Summary = tagEditSummary(out.Added, out.Removed)

	author, err := uc.identity.UserName()
	if err != nil {
		return nil, fmt.Errorf("resolve author: %w", err)
	}
	issue.AppendComment(domain.NewSystemComment(out.Summary, author, uc.clock.Now()))

	if err := uc.issues.Save(issue, false); err != nil {
		return nil, fmt.Errorf("save issue: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("tags edited", "id", issue.ID, "added", len(out.Added), "removed", len(out.Removed))
	}
	return out, nil
}

// tagEditSummary builds the system comment message for a tag edit, e.g.
// "Added tag(s): foo, bar.\nRemoved tag: baz.".
func tagEditSummary(added, removed []domain.Tag) string {
	var b strings.Builder
	if len(added) > 0 {
		b.WriteString("Added tag")
		if len(added) > 1 {
			b.WriteString("(s)")
		}
		b.WriteString(": ")
		b.WriteString(domain.JoinTags(added))
		b.WriteString(".")
	}
	if len(removed) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Removed tag")
		if len(removed) > 1 {
			b.WriteString("(s)")
		}
		b.WriteString(": ")
		b.WriteString(domain.JoinTags(removed))
		b.WriteString(".")
	}
	return b.String()
}
