// Package domain contains core business entities and interfaces.
package domain

import "time"

// Issue is a trackable unit of work with a title, optional message, tags
// and an append-only comment log.
//
// The open/closed state is never stored as an independent field; it is
// derived from the comment log. The last comment carrying a state change
// wins, and an issue with no state-changing comment is open.
// Fields are ordered to minimize memory padding.
type Issue struct {
	Created         time.Time // Creation time
	Title           string    // Title (required)
	Message         string    // Description (optional)
	Author          string    // Author name
	Tags            []Tag     // Tag set, insertion order preserved, no duplicates
	Comments        []Comment // Append-only comment log
	ID              int       // Unique issue ID within a project
	LastStateChange int       // Index of the last state-changing comment, -1 if none
}

// NewIssue creates a new open issue without comments.
func NewIssue(id int, title, message string, tags []Tag, created time.Time, author string) *Issue {
	return &Issue{
		ID:              id,
		Title:           title,
		Message:         message,
		Tags:            tags,
		Created:         created,
		Author:          author,
		LastStateChange: -1,
	}
}

// DeriveState folds the comment log and returns the effective state plus
// the index of the comment that set it (-1 if no comment ever changed
// state). Issues default to open.
func DeriveState(comments []Comment) (State, int) {
	state := StateOpen
	index := -1
	for i, c := range comments {
		if c.ChangedStateTo != nil {
			state = *c.ChangedStateTo
			index = i
		}
	}
	return state, index
}

// State returns the derived state of the issue.
func (i *Issue) State() State {
	if i.LastStateChange >= 0 && i.LastStateChange < len(i.Comments) {
		if s := i.Comments[i.LastStateChange].ChangedStateTo; s != nil {
			return *s
		}
	}
	return StateOpen
}

// AppendComment adds a comment to the log. If the comment carries a state
// change, the cached state-change index is advanced to it.
func (i *Issue) AppendComment(c Comment) {
	if c.ChangedStateTo != nil {
		i.LastStateChange = len(i.Comments)
	}
	i.Comments = append(i.Comments, c)
}

// HasTag reports whether the issue carries the given tag.
func (i *Issue) HasTag(t Tag) bool {
	for _, existing := range i.Tags {
		if existing == t {
			return true
		}
	}
	return false
}

// AddTag appends the tag if not already present and reports whether the
// tag set changed.
func (i *Issue) AddTag(t Tag) bool {
	if i.HasTag(t) {
		return false
	}
	i.Tags = append(i.Tags, t)
	return true
}

// RemoveTag removes the tag if present and reports whether the tag set
// changed.
func (i *Issue) RemoveTag(t Tag) bool {
	for idx, existing := range i.Tags {
		if existing == t {
			i.Tags = append(i.Tags[:idx], i.Tags[idx+1:]...)
			return true
		}
	}
	return false
}

// UserCommentCount returns the number of user-authored comments,
// excluding system comments for tag edits and state changes.
func (i *Issue) UserCommentCount() int {
	n := 0
	for _, c := range i.Comments {
		if c.Editable {
			n++
		}
	}
	return n
}
