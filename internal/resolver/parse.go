package resolver

import (
	"fmt"
	"strings"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// UsageError is a command line validation failure. It is reported to the
// user before any domain call and never causes side effects.
type UsageError struct {
	msg string
}

func (e *UsageError) Error() string {
	return e.msg
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{msg: fmt.Sprintf(format, args...)}
}

// parseFlags parses tokens in canonical flag syntax into a map keyed by
// the long flag name. Accepted forms are "--name=value", "-x=value",
// "/name=value" and the two-token form "--name value". Each flag may
// appear at most once; any token that is not a known flag is a hard
// failure.
func parseFlags(tokens []string, flags []Flag) (map[string]string, error) {
	values := make(map[string]string)
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		var name string
		switch {
		case strings.HasPrefix(tok, "--"):
			name = tok[2:]
		case strings.HasPrefix(tok, "-"), strings.HasPrefix(tok, "/"):
			name = tok[1:]
		default:
			return nil, usageErrorf("found unsupported arguments: %s", tok)
		}

		value := ""
		hasValue := false
		if idx := strings.IndexByte(name, '='); idx >= 0 {
			value = name[idx+1:]
			name = name[:idx]
			hasValue = true
		}

		flag := resolveCanonical(flags, name)
		if flag == nil {
			return nil, usageErrorf("unknown argument %q, use 'help' for more information", tok)
		}
		if !hasValue && flag.RequiresValue {
			if i+1 >= len(tokens) {
				return nil, usageErrorf("argument %q requires a value", tok)
			}
			i++
			value = tokens[i]
		}
		if _, dup := values[flag.Name]; dup {
			return nil, usageErrorf("argument --%s may only be provided once", flag.Name)
		}
		values[flag.Name] = value
	}
	return values, nil
}

// resolveCanonical matches a canonical flag name: either the long name
// (case-insensitive) or exactly the single short character.
func resolveCanonical(flags []Flag, name string) *Flag {
	for i := range flags {
		if strings.EqualFold(name, flags[i].Name) {
			return &flags[i]
		}
		if flags[i].Short != 0 && len(name) == 1 && name[0] == flags[i].Short {
			return &flags[i]
		}
	}
	return nil
}

// ParseTagList splits a tag flag value on ',' into tags to add and tags
// to remove. Entries are trimmed; a '-' prefix marks a removal. The two
// result slices preserve encounter order and are not deduplicated.
func ParseTagList(value string) (add, remove []domain.Tag, err error) {
	for _, part := range strings.Split(value, ",") {
		entry := strings.TrimSpace(part)
		if name, isRemove := strings.CutPrefix(entry, "-"); isRemove {
			if strings.TrimSpace(name) == "" {
				return nil, nil, usageErrorf("%q is not a valid tag name", part)
			}
			tag, tagErr := domain.NewTag(name)
			if tagErr != nil {
				return nil, nil, usageErrorf("%q is not a valid tag name", part)
			}
			remove = append(remove, tag)
			continue
		}
		tag, tagErr := domain.NewTag(entry)
		if tagErr != nil {
			return nil, nil, usageErrorf("%q is not a valid tag name", part)
		}
		add = append(add, tag)
	}
	return add, remove, nil
}
