package domain

import "time"

// Comment is an immutable log entry attached to an issue.
// Fields are ordered to minimize memory padding.
type Comment struct {
	Created        time.Time // Creation time
	ChangedStateTo *State    // New issue state applied by this comment (system comments only)
	Message        string    // Comment text
	Author         string    // Author name
	Editable       bool      // true for user comments, false for system comments
}

// NewUserComment creates a user-authored comment.
func NewUserComment(message, author string, created time.Time) Comment {
	return Comment{
		Message:  message,
		Author:   author,
		Created:  created,
		Editable: true,
	}
}

// NewSystemComment creates a system-generated comment (tag edits).
func NewSystemComment(message, author string, created time.Time) Comment {
	return Comment{
		Message: message,
		Author:  author,
		Created: created,
	}
}

// NewStateChangeComment creates a system comment that transitions the
// issue into the given state.
func NewStateChangeComment(message, author string, created time.Time, target State) Comment {
	c := NewSystemComment(message, author, created)
	c.ChangedStateTo = &target
	return c
}
