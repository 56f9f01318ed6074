package inistore

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store := New(t.TempDir())
	require.NoError(t, store.WriteMarker(domain.Marker{Owner: "owner", DisplayLimit: 50}))
	return store
}

func mustTag(t *testing.T, name string) domain.Tag {
	t.Helper()
	tag, err := domain.NewTag(name)
	require.NoError(t, err)
	return tag
}

func TestStore_NotInitialized(t *testing.T) {
	store := New(t.TempDir())

	assert.False(t, store.IsInitialized())

	_, err := store.Get(1)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, err = store.LoadAll()
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	err = store.Save(&domain.Issue{ID: 1}, true)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, _, err = store.ReadMarker()
	assert.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestStore_MarkerRoundTrip(t *testing.T) {
	store := New(t.TempDir())

	require.NoError(t, store.WriteMarker(domain.Marker{Owner: "jane", DisplayLimit: 30}))
	assert.True(t, store.IsInitialized())

	marker, warnings, err := store.ReadMarker()
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "jane", marker.Owner)
	assert.Equal(t, 30, marker.DisplayLimit)
}

func TestStore_ReadMarker_MissingDisplayLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".issues"), []byte("owner=jane\n"), 0o644))
	store := New(dir)

	marker, warnings, err := store.ReadMarker()
	require.NoError(t, err)
	assert.Equal(t, "jane", marker.Owner)
	assert.Equal(t, domain.DefaultDisplayLimit, marker.DisplayLimit)
	assert.Len(t, warnings, 1)
}

func TestStore_ReadMarker_InvalidDisplayLimit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".issues"), []byte("owner=jane\ndisplay_limit=lots\n"), 0o644))
	store := New(dir)

	marker, warnings, err := store.ReadMarker()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultDisplayLimit, marker.DisplayLimit)
	assert.Len(t, warnings, 1)
}

func TestStore_SaveAndGetRoundTrip(t *testing.T) {
	store := newTestStore(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	issue := domain.NewIssue(1, "Broken login", "Login fails on submit", []domain.Tag{mustTag(t, "auth"), mustTag(t, "ui")}, created, "jane")
	issue.AppendComment(domain.NewUserComment("me too", "joe", created.Add(time.Hour)))
	issue.AppendComment(domain.NewStateChangeComment("Closed the issue.", "jane", created.Add(2*time.Hour), domain.StateClosed))

	require.NoError(t, store.Save(issue, true))

	loaded, err := store.Get(1)
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.Equal(t, 1, loaded.ID)
	assert.Equal(t, "Broken login", loaded.Title)
	assert.Equal(t, "Login fails on submit", loaded.Message)
	assert.Equal(t, "jane", loaded.Author)
	assert.Equal(t, []domain.Tag{mustTag(t, "auth"), mustTag(t, "ui")}, loaded.Tags)
	assert.True(t, loaded.Created.Equal(created))

	require.Len(t, loaded.Comments, 2)
	assert.Equal(t, "me too", loaded.Comments[0].Message)
	assert.True(t, loaded.Comments[0].Editable)
	assert.Equal(t, "Closed the issue.", loaded.Comments[1].Message)
	assert.False(t, loaded.Comments[1].Editable)

	// state is re-derived from the comment log
	assert.Equal(t, domain.StateClosed, loaded.State())
	assert.Equal(t, 1, loaded.LastStateChange)
}

func TestStore_Get_Missing(t *testing.T) {
	store := newTestStore(t)

	issue, err := store.Get(42)
	require.NoError(t, err)
	assert.Nil(t, issue)
}

func TestStore_Save_NewConflictsWithExisting(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	issue := domain.NewIssue(1, "first", "", nil, now, "jane")

	require.NoError(t, store.Save(issue, true))

	err := store.Save(domain.NewIssue(1, "second", "", nil, now, "jane"), true)
	assert.ErrorIs(t, err, domain.ErrIssueExists)
}

func TestStore_LoadAll_SkipsForeignEntries(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(domain.NewIssue(1, "one", "", nil, now, "jane"), true))
	require.NoError(t, store.Save(domain.NewIssue(2, "two", "", nil, now, "jane"), true))

	// directories that do not follow the "#<id>" pattern are not issues
	require.NoError(t, os.MkdirAll(filepath.Join(store.root, "notes"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(store.root, "#abc"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(store.root, "#0"), 0o750))
	// an issue-looking directory without an issue file is skipped too
	require.NoError(t, os.MkdirAll(filepath.Join(store.root, "#9"), 0o750))

	issues, err := store.LoadAll()
	require.NoError(t, err)
	assert.Len(t, issues, 2)
}

func TestStore_Save_NeverRewritesCommentFiles(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	issue := domain.NewIssue(1, "one", "", nil, now, "jane")
	issue.AppendComment(domain.NewUserComment("original", "jane", now))
	require.NoError(t, store.Save(issue, true))

	// tamper with the stored comment; a later save must leave it alone
	path := filepath.Join(store.root, "#1", "comment-001.txt")
	tampered := "[Comment]\nMessage = edited by hand\nCommentDate = 1709294400\nAuthor = jane\nEditable = true\nChangedStateTo = \n"
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0o644))

	issue.AppendComment(domain.NewUserComment("second", "joe", now.Add(time.Hour)))
	require.NoError(t, store.Save(issue, false))

	loaded, err := store.Get(1)
	require.NoError(t, err)
	require.Len(t, loaded.Comments, 2)
	assert.Equal(t, "edited by hand", loaded.Comments[0].Message)
	assert.Equal(t, "second", loaded.Comments[1].Message)
}

func TestStore_LegacyReopenedStateMapsToOpen(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	issue := domain.NewIssue(1, "one", "", nil, now, "jane")
	issue.AppendComment(domain.NewStateChangeComment("Closed the issue.", "jane", now, domain.StateClosed))
	require.NoError(t, store.Save(issue, true))

	// simulate a comment written by the old three-state version
	legacy := "[Comment]\nMessage = Reopened the issue.\nCommentDate = 1709298000\nAuthor = jane\nEditable = false\nChangedStateTo = Reopened\n"
	require.NoError(t, os.WriteFile(filepath.Join(store.root, "#1", "comment-002.txt"), []byte(legacy), 0o644))
	rewriteCommentCount(t, filepath.Join(store.root, "#1", "issue.ini"), 2)

	loaded, err := store.Get(1)
	require.NoError(t, err)
	assert.Equal(t, domain.StateOpen, loaded.State())
}

// rewriteCommentCount bumps CommentCount in an issue file on disk.
func rewriteCommentCount(t *testing.T, path string, count int) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "CommentCount") {
			lines[i] = "CommentCount = " + strconv.Itoa(count)
		}
	}
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644))
}

func TestStore_CorruptIssueFile(t *testing.T) {
	store := newTestStore(t)
	dir := filepath.Join(store.root, "#1")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "issue.ini"), []byte("[Issue]\nTitle = x\n"), 0o644))

	_, err := store.Get(1)
	assert.ErrorIs(t, err, domain.ErrCorruptIssueFile)
}

func TestIsIssueDir(t *testing.T) {
	tests := []struct {
		name   string
		wantID int
		wantOK bool
	}{
		{"#1", 1, true},
		{"#42", 42, true},
		{"#0", 0, false},
		{"#-3", 0, false},
		{"#abc", 0, false},
		{"1", 0, false},
		{"notes", 0, false},
		{"#", 0, false},
	}
	for _, tt := range tests {
		id, ok := IsIssueDir(tt.name)
		assert.Equal(t, tt.wantOK, ok, tt.name)
		assert.Equal(t, tt.wantID, id, tt.name)
	}
}
