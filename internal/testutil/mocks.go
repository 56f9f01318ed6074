// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"fmt"
	"time"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockIdentity is a test double for domain.Identity.
type MockIdentity struct {
	Name string
	Err  error
}

// UserName returns the configured name or error.
func (m *MockIdentity) UserName() (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Name, nil
}

// MockIssueRepository is a test double implementing both
// domain.IssueRepository and domain.ProjectStore.
// Fields are ordered to minimize memory padding.
type MockIssueRepository struct {
	Issues      map[int]*domain.Issue
	Marker      *domain.Marker
	SaveErr     error
	GetErr      error
	LoadErr     error
	SaveCount   int
	Initialized bool
}

// NewMockIssueRepository creates an initialized project with no issues.
func NewMockIssueRepository() *MockIssueRepository {
	return &MockIssueRepository{
		Issues:      make(map[int]*domain.Issue),
		Marker:      &domain.Marker{Owner: "owner", DisplayLimit: domain.DefaultDisplayLimit},
		Initialized: true,
	}
}

// IsInitialized reports whether the mock project is initialized.
func (m *MockIssueRepository) IsInitialized() bool {
	return m.Initialized
}

// WriteMarker stores the marker and marks the project initialized.
func (m *MockIssueRepository) WriteMarker(marker domain.Marker) error {
	m.Marker = &marker
	m.Initialized = true
	return nil
}

// ReadMarker returns the stored marker.
func (m *MockIssueRepository) ReadMarker() (domain.Marker, []string, error) {
	if m.Marker == nil {
		return domain.Marker{}, nil, domain.ErrNotInitialized
	}
	return *m.Marker, nil, nil
}

// Get retrieves an issue by ID. Returns nil if not found.
func (m *MockIssueRepository) Get(id int) (*domain.Issue, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	return m.Issues[id], nil
}

// LoadAll returns all issues in unspecified order.
func (m *MockIssueRepository) LoadAll() ([]*domain.Issue, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	issues := make([]*domain.Issue, 0, len(m.Issues))
	for _, issue := range m.Issues {
		issues = append(issues, issue)
	}
	return issues, nil
}

// Save stores the issue and counts the write.
func (m *MockIssueRepository) Save(issue *domain.Issue, isNew bool) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	if isNew {
		if _, exists := m.Issues[issue.ID]; exists {
			return fmt.Errorf("%w: #%d", domain.ErrIssueExists, issue.ID)
		}
	}
	m.Issues[issue.ID] = issue
	m.SaveCount++
	return nil
}
