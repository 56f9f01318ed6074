// Package inistore persists issues as directories of section-keyed text
// files under the project root.
//
// Layout:
//
//	.issues              project marker (owner, display_limit)
//	#<id>/issue.ini      issue metadata
//	#<id>/comment-NNN.txt one file per comment, 1-based, zero-padded
//
// Comments are immutable: a comment file is written once and never
// rewritten. The issue state is recomputed from the comment log on every
// load; the State key in issue.ini exists for human inspection only.
package inistore

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/MarcStan/issue-tracker/internal/domain"
	"gopkg.in/ini.v1"
)

const (
	markerFile     = ".issues"
	lockFile       = ".issues.lock"
	issueFile      = "issue.ini"
	issueSection   = "Issue"
	commentSection = "Comment"
)

// Store implements domain.IssueRepository and domain.ProjectStore on a
// project directory.
type Store struct {
	root     string
	lockPath string
}

// New creates a Store rooted at the given project directory.
func New(root string) *Store {
	return &Store{
		root:     root,
		lockPath: filepath.Join(root, lockFile),
	}
}

// Ensure Store implements the persistence ports.
var (
	_ domain.IssueRepository = (*Store)(nil)
	_ domain.ProjectStore    = (*Store)(nil)
)

// IsInitialized reports whether the root carries the project marker.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.markerPath())
	return err == nil
}

// WriteMarker creates the project marker file.
func (s *Store) WriteMarker(m domain.Marker) error {
	f := ini.Empty()
	sec := f.Section(ini.DefaultSection)
	if _, err := sec.NewKey("owner", m.Owner); err != nil {
		return fmt.Errorf("build marker: %w", err)
	}
	if _, err := sec.NewKey("display_limit", strconv.Itoa(m.DisplayLimit)); err != nil {
		return fmt.Errorf("build marker: %w", err)
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode marker: %w", err)
	}
	return writeAtomic(s.markerPath(), buf.Bytes(), 0o644)
}

// ReadMarker loads the project marker. A missing or unparseable
// display_limit falls back to the default and is reported as a warning
// rather than an error.
func (s *Store) ReadMarker() (domain.Marker, []string, error) {
	f, err := ini.Load(s.markerPath())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Marker{}, nil, domain.ErrNotInitialized
		}
		return domain.Marker{}, nil, fmt.Errorf("read project marker: %w", err)
	}

	sec := f.Section(ini.DefaultSection)
	marker := domain.Marker{
		Owner:        sec.Key("owner").String(),
		DisplayLimit: domain.DefaultDisplayLimit,
	}
	var warnings []string
	if !sec.HasKey("display_limit") {
		warnings = append(warnings, fmt.Sprintf("display_limit missing from %s, using default %d", markerFile, domain.DefaultDisplayLimit))
	} else if limit, err := sec.Key("display_limit").Int(); err != nil || limit < 1 {
		warnings = append(warnings, fmt.Sprintf("display_limit in %s is not a positive integer, using default %d", markerFile, domain.DefaultDisplayLimit))
	} else {
		marker.DisplayLimit = limit
	}
	return marker, warnings, nil
}

// Get retrieves an issue by ID. Returns nil if no issue directory with
// that id exists.
func (s *Store) Get(id int) (*domain.Issue, error) {
	var issue *domain.Issue
	err := s.withLock(syscall.LOCK_SH, func() error {
		loaded, err := s.loadIssueDir(filepath.Join(s.root, issueDirName(id)))
		issue = loaded
		return err
	})
	return issue, err
}

// LoadAll enumerates all issue directories under the project root.
// Directories that do not look like issue directories are skipped.
func (s *Store) LoadAll() ([]*domain.Issue, error) {
	var issues []*domain.Issue
	err := s.withLock(syscall.LOCK_SH, func() error {
		entries, err := os.ReadDir(s.root)
		if err != nil {
			return fmt.Errorf("read project directory: %w", err)
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			issue, err := s.loadIssueDir(filepath.Join(s.root, entry.Name()))
			if err != nil {
				return err
			}
			if issue == nil {
				// Foreign directory, silently skipped.
				continue
			}
			issues = append(issues, issue)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// Save writes the issue file and any comment files that do not exist
// yet. With isNew set it fails if the issue directory already exists.
func (s *Store) Save(issue *domain.Issue, isNew bool) error {
	return s.withLock(syscall.LOCK_EX, func() error {
		if issue == nil {
			return errors.New("issue is nil")
		}
		dir := filepath.Join(s.root, issueDirName(issue.ID))
		if isNew {
			if _, err := os.Stat(dir); err == nil {
				return fmt.Errorf("%w: #%d", domain.ErrIssueExists, issue.ID)
			}
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create issue directory: %w", err)
		}
		if err := s.writeIssueFile(dir, issue); err != nil {
			return err
		}
		for i, comment := range issue.Comments {
			path := filepath.Join(dir, commentFileName(i+1))
			if _, err := os.Stat(path); err == nil {
				// Comments are immutable once written.
				continue
			}
			if err := writeCommentFile(path, comment); err != nil {
				return err
			}
		}
		return nil
	})
}

// IsIssueDir reports whether a directory name follows the issue
// directory pattern "#<id>" with a positive decimal id.
func IsIssueDir(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "#")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func issueDirName(id int) string {
	return "#" + strconv.Itoa(id)
}

func commentFileName(n int) string {
	return fmt.Sprintf("comment-%03d.txt", n)
}

func (s *Store) markerPath() string {
	return filepath.Join(s.root, markerFile)
}

// loadIssueDir loads one issue directory. Returns nil (not an error) if
// the directory does not look like an issue directory, so enumeration
// tolerates foreign directories.
func (s *Store) loadIssueDir(dir string) (*domain.Issue, error) {
	id, ok := IsIssueDir(filepath.Base(dir))
	if !ok {
		return nil, nil
	}
	path := filepath.Join(dir, issueFile)
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}

	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptIssueFile, path, err)
	}
	sec, err := f.GetSection(issueSection)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: missing [Issue] section", domain.ErrCorruptIssueFile, path)
	}

	title := sec.Key("Title").String()
	if title == "" {
		return nil, fmt.Errorf("%w: %s: missing title", domain.ErrCorruptIssueFile, path)
	}
	postDate, err := sec.Key("PostDate").Int64()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: invalid PostDate", domain.ErrCorruptIssueFile, path)
	}
	commentCount, err := sec.Key("CommentCount").Int()
	if err != nil || commentCount < 0 {
		return nil, fmt.Errorf("%w: %s: invalid CommentCount", domain.ErrCorruptIssueFile, path)
	}

	tags, err := parseTagsValue(sec.Key("Tags").String())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptIssueFile, path, err)
	}

	comments := make([]domain.Comment, 0, commentCount)
	for i := 1; i <= commentCount; i++ {
		comment, err := loadCommentFile(filepath.Join(dir, commentFileName(i)))
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	issue := domain.NewIssue(id, title, sec.Key("Message").String(), tags, time.Unix(postDate, 0), sec.Key("Author").String())
	issue.Comments = comments
	// State is derived from the comment log; the persisted State and
	// LastStateChangeCommentIndex keys are informational only.
	_, issue.LastStateChange = domain.DeriveState(comments)
	return issue, nil
}

func parseTagsValue(value string) ([]domain.Tag, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	tags := make([]domain.Tag, 0, len(parts))
	for _, part := range parts {
		tag, err := domain.NewTag(part)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func (s *Store) writeIssueFile(dir string, issue *domain.Issue) error {
	f := ini.Empty()
	sec, err := f.NewSection(issueSection)
	if err != nil {
		return fmt.Errorf("build issue file: %w", err)
	}
	names := make([]string, len(issue.Tags))
	for i, t := range issue.Tags {
		names[i] = t.Name()
	}
	keys := []struct{ name, value string }{
		{"Title", issue.Title},
		{"Message", issue.Message},
		{"Tags", strings.Join(names, ",")},
		{"PostDate", strconv.FormatInt(issue.Created.UTC().Unix(), 10)},
		{"Author", issue.Author},
		{"State", issue.State().Display()},
		{"CommentCount", strconv.Itoa(len(issue.Comments))},
		{"LastStateChangeCommentIndex", strconv.Itoa(issue.LastStateChange)},
	}
	for _, k := range keys {
		if _, err := sec.NewKey(k.name, k.value); err != nil {
			return fmt.Errorf("build issue file: %w", err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode issue file: %w", err)
	}
	return writeAtomic(filepath.Join(dir, issueFile), buf.Bytes(), 0o644)
}

func writeCommentFile(path string, comment domain.Comment) error {
	f := ini.Empty()
	sec, err := f.NewSection(commentSection)
	if err != nil {
		return fmt.Errorf("build comment file: %w", err)
	}
	changedState := ""
	if comment.ChangedStateTo != nil {
		changedState = comment.ChangedStateTo.Display()
	}
	keys := []struct{ name, value string }{
		{"Message", comment.Message},
		{"CommentDate", strconv.FormatInt(comment.Created.UTC().Unix(), 10)},
		{"Author", comment.Author},
		{"Editable", strconv.FormatBool(comment.Editable)},
		{"ChangedStateTo", changedState},
	}
	for _, k := range keys {
		if _, err := sec.NewKey(k.name, k.value); err != nil {
			return fmt.Errorf("build comment file: %w", err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return fmt.Errorf("encode comment file: %w", err)
	}
	return writeAtomic(path, buf.Bytes(), 0o644)
}

func loadCommentFile(path string) (domain.Comment, error) {
	f, err := ini.Load(path)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptIssueFile, path, err)
	}
	sec, err := f.GetSection(commentSection)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("%w: %s: missing [Comment] section", domain.ErrCorruptIssueFile, path)
	}
	date, err := sec.Key("CommentDate").Int64()
	if err != nil {
		return domain.Comment{}, fmt.Errorf("%w: %s: invalid CommentDate", domain.ErrCorruptIssueFile, path)
	}
	comment := domain.Comment{
		Message:  sec.Key("Message").String(),
		Author:   sec.Key("Author").String(),
		Created:  time.Unix(date, 0),
		Editable: sec.Key("Editable").MustBool(false),
	}
	if raw := sec.Key("ChangedStateTo").String(); raw != "" {
		state, err := domain.ParseState(raw)
		if err != nil {
			return domain.Comment{}, fmt.Errorf("%w: %s: %v", domain.ErrCorruptIssueFile, path, err)
		}
		comment.ChangedStateTo = &state
	}
	return comment, nil
}

// withLock runs fn while holding an advisory lock on the project. The
// tool is single-user, the lock only guards against two invocations
// racing on the same read-modify-write sequence.
func (s *Store) withLock(lockType int, fn func() error) error {
	if !s.IsInitialized() {
		return domain.ErrNotInitialized
	}
	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer func() {
		_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
		_ = lock.Close()
	}()
	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	return fn()
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, content, perm); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
