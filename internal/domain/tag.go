package domain

import (
	"fmt"
	"strings"
)

// Tag is a label applied to an issue to group it with other, similar issues.
// Tags are immutable value objects; two tags are equal iff their names match
// exactly (case-sensitive).
type Tag struct {
	name string
}

// NewTag creates a tag from the given name.
// The name must be non-empty (after trimming whitespace) and must not
// contain ',' since that is the list separator on the command line and
// in the issue file.
func NewTag(name string) (Tag, error) {
	if strings.TrimSpace(name) == "" {
		return Tag{}, fmt.Errorf("%w: %q", ErrInvalidTagName, name)
	}
	if strings.Contains(name, ",") {
		return Tag{}, fmt.Errorf("%w: %q may not contain ','", ErrInvalidTagName, name)
	}
	return Tag{name: name}, nil
}

// Name returns the tag name.
func (t Tag) Name() string {
	return t.name
}

func (t Tag) String() string {
	return t.name
}

// JoinTags renders tags as a comma separated list.
func JoinTags(tags []Tag) string {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.name
	}
	return strings.Join(names, ", ")
}
