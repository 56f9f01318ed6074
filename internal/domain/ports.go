package domain

import "time"

// Marker is the content of the project marker file that makes a
// directory an issue tracking project.
type Marker struct {
	Owner        string // Project owner name
	DisplayLimit int    // Title truncation length for list output
}

// DefaultDisplayLimit is used when the marker carries no usable
// display_limit value.
const DefaultDisplayLimit = 50

// ProjectStore manages the project marker file.
type ProjectStore interface {
	// IsInitialized reports whether the working directory is a project.
	IsInitialized() bool

	// WriteMarker creates the project marker file.
	WriteMarker(m Marker) error

	// ReadMarker loads the marker. Missing or unparseable optional keys
	// fall back to defaults and are reported as warnings.
	ReadMarker() (Marker, []string, error)
}

// IssueRepository manages issue persistence.
type IssueRepository interface {
	// Get retrieves an issue by ID. Returns nil if not found.
	Get(id int) (*Issue, error)

	// LoadAll enumerates all issues of the project. Directories that do
	// not look like issue directories are skipped, not reported as
	// errors. The order of the result is the directory enumeration
	// order; callers must not assume it is sorted.
	LoadAll() ([]*Issue, error)

	// Save persists the issue and any comments appended since the last
	// save. With isNew set it fails if an issue with the same id already
	// exists on disk.
	Save(issue *Issue, isNew bool) error
}

// Identity resolves the current user name for authoring issues and
// comments.
type Identity interface {
	// UserName returns the current user name.
	UserName() (string, error)
}

// ConfigLoader loads the optional user configuration.
type ConfigLoader interface {
	// Load returns the configuration merged over defaults. A missing
	// config file is not an error.
	Load() (*Config, error)
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
