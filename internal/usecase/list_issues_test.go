package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcStan/issue-tracker/internal/domain"
	"github.com/MarcStan/issue-tracker/internal/testutil"
)

func seedProject(t *testing.T, repo *testutil.MockIssueRepository) {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	open := domain.NewIssue(1, "open bug", "", []domain.Tag{mustTag(t, "bug")}, now, "jane")
	closed := domain.NewIssue(2, "closed bug", "", []domain.Tag{mustTag(t, "bug")}, now, "joe")
	closed.AppendComment(domain.NewStateChangeComment("Closed the issue.", "joe", now, domain.StateClosed))
	repo.Issues[1] = open
	repo.Issues[2] = closed
}

func TestListIssues_Execute_NoFilters(t *testing.T) {
	repo := testutil.NewMockIssueRepository()
	seedProject(t, repo)
	uc := NewListIssues(repo, repo)

	out, err := uc.Execute(context.Background(), ListIssuesInput{})

	require.NoError(t, err)
	assert.Len(t, out.Issues, 2)
	assert.False(t, out.StateFiltered)
}

func TestListIssues_Execute_StateFilter(t *testing.T) {
	repo := testutil.NewMockIssueRepository()
	seedProject(t, repo)
	uc := NewListIssues(repo, repo)

	out, err := uc.Execute(context.Background(), ListIssuesInput{
		Filters: []domain.Filter{domain.NewStateFilter(domain.StateClosed)},
	})

	require.NoError(t, err)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, 2, out.Issues[0].ID)
	assert.True(t, out.StateFiltered)
}

func TestListIssues_Execute_CombinedFilters(t *testing.T) {
	repo := testutil.NewMockIssueRepository()
	seedProject(t, repo)
	uc := NewListIssues(repo, repo)

	out, err := uc.Execute(context.Background(), ListIssuesInput{
		Filters: []domain.Filter{
			domain.NewTagFilter([]domain.Tag{mustTag(t, "bug")}),
			domain.NewUserFilter("JANE"),
			domain.NewStateFilter(domain.StateOpen),
		},
	})

	require.NoError(t, err)
	require.Len(t, out.Issues, 1)
	assert.Equal(t, 1, out.Issues[0].ID)
}

func TestListIssues_Execute_DuplicateFilterKind(t *testing.T) {
	repo := testutil.NewMockIssueRepository()
	uc := NewListIssues(repo, repo)

	_, err := uc.Execute(context.Background(), ListIssuesInput{
		Filters: []domain.Filter{
			domain.NewUserFilter("jane"),
			domain.NewUserFilter("joe"),
		},
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateFilter)
}

func TestListIssues_Execute_NotInitialized(t *testing.T) {
	repo := testutil.NewMockIssueRepository()
	repo.Initialized = false
	uc := NewListIssues(repo, repo)

	_, err := uc.Execute(context.Background(), ListIssuesInput{})

	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}
