package domain

import "errors"

// Domain errors.
var (
	ErrNotInitialized   = errors.New("not an issue tracker directory (run 'issues init' first)")
	ErrIssueNotFound    = errors.New("issue not found")
	ErrIssueExists      = errors.New("issue with this id already exists")
	ErrEmptyTitle       = errors.New("title cannot be empty")
	ErrEmptyMessage     = errors.New("message cannot be empty")
	ErrInvalidTagName   = errors.New("invalid tag name")
	ErrTagConflict      = errors.New("cannot add and remove the same tag at once")
	ErrDuplicateFilter  = errors.New("each filter may only be provided once")
	ErrNoUserName       = errors.New("could not determine user name (set user.name in git config)")
	ErrCorruptIssueFile = errors.New("corrupt issue file")
)
