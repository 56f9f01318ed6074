// Package resolver turns the forgiving command line syntax into a
// validated command invocation.
//
// The accepted surface is deliberately loose: "key:value", "key=value",
// "--key value" and bare state words all mean the same thing, and an
// invocation may start with a bare issue id ("issues 1 -m hi"). The
// resolver expands shorthand invocations, rewrites every token into a
// canonical flag syntax and validates the result against a per-command
// allow-list before anything touches the domain layer.
package resolver

import (
	"strconv"
	"strings"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// Invocation is a fully validated command ready for dispatch.
// Only the fields relevant to the command are populated.
type Invocation struct {
	Command    Command
	Title      string
	Message    string
	AddTags    []domain.Tag
	RemoveTags []domain.Tag
	Filters    []domain.Filter
	ID         int
}

// Resolve parses raw argument tokens using the default flag table.
func Resolve(args []string) (*Invocation, error) {
	return ResolveWithFlags(args, DefaultFlags())
}

// ResolveWithFlags parses raw argument tokens into an Invocation or a
// usage error. No domain state is touched.
func ResolveWithFlags(args []string, flags []Flag) (*Invocation, error) {
	if len(args) == 0 {
		return nil, usageErrorf("no arguments provided, use 'help' for more information")
	}

	// Shorthand: a leading issue id implies the command.
	//   "1"          -> "show 1"
	//   "1 tag:foo"  -> "edit 1 tag:foo"
	//   "1 -m hi"    -> "comment 1 -m hi"
	if id, err := strconv.Atoi(args[0]); err == nil && id > 0 {
		expanded := make([]string, 0, len(args)+1)
		expanded = append(expanded, string(classifyShorthand(args[1:])))
		expanded = append(expanded, args...)
		args = expanded
	}

	args = normalize(args, flags, 1)

	first := strings.ToLower(args[0])
	if isHelp(first) {
		return &Invocation{Command: CommandHelp}, nil
	}
	cmd := Command(first)
	if _, known := commandFlags[cmd]; !known {
		return nil, usageErrorf("unknown command %q, use 'help' for more information", args[0])
	}

	if cmd == CommandInit {
		if len(args) != 1 {
			return nil, usageErrorf("invalid argument for 'init'")
		}
		return &Invocation{Command: CommandInit}, nil
	}

	inv := &Invocation{Command: cmd}
	rest := args[1:]
	if RequiresIssueID(cmd) {
		if len(args) < 2 {
			return nil, usageErrorf("'%s' requires a second argument (the issue id)", cmd)
		}
		id, err := strconv.Atoi(args[1])
		if err != nil || id < 1 {
			return nil, usageErrorf("%q is not a valid issue identifier (must be a positive integer)", args[1])
		}
		inv.ID = id
		rest = args[2:]
	}

	values, err := parseFlags(rest, flags)
	if err != nil {
		return nil, err
	}
	if err := enforceAllowList(cmd, values, flags); err != nil {
		return nil, err
	}

	switch cmd {
	case CommandAdd:
		title, ok := values[flagTitle]
		if !ok {
			return nil, usageErrorf("title is required for adding a new issue")
		}
		inv.Title = title
		inv.Message = values[flagMessage]
		if tagValue, ok := values[flagTag]; ok {
			add, remove, err := ParseTagList(tagValue)
			if err != nil {
				return nil, err
			}
			if len(remove) > 0 {
				return nil, usageErrorf("cannot remove tags when adding a new issue")
			}
			if len(add) == 0 {
				return nil, usageErrorf("no tags to add provided")
			}
			inv.AddTags = add
		}
	case CommandEdit:
		tagValue, ok := values[flagTag]
		if !ok {
			return nil, usageErrorf("tag is required to edit an issue")
		}
		add, remove, err := ParseTagList(tagValue)
		if err != nil {
			return nil, err
		}
		inv.AddTags = add
		inv.RemoveTags = remove
	case CommandComment:
		message, ok := values[flagMessage]
		if !ok {
			return nil, usageErrorf("message is required to comment on an issue")
		}
		inv.Message = message
	case CommandList:
		filters, err := buildListFilters(values)
		if err != nil {
			return nil, err
		}
		inv.Filters = filters
	case CommandShow, CommandClose, CommandReopen:
		// id only, no flags
	}
	return inv, nil
}

// enforceAllowList rejects any parsed flag that the command does not
// declare. Iterates the flag table so the diagnostic is deterministic.
func enforceAllowList(cmd Command, values map[string]string, flags []Flag) error {
	allowed := commandFlags[cmd]
	for _, f := range flags {
		if _, parsed := values[f.Name]; !parsed {
			continue
		}
		permitted := false
		for _, name := range allowed {
			if name == f.Name {
				permitted = true
				break
			}
		}
		if !permitted {
			return usageErrorf("argument '--%s' is not supported with '%s', use 'help' for more information", f.Name, cmd)
		}
	}
	return nil
}

// buildListFilters converts parsed list flags into filter predicates.
// Without a state flag the open-state filter is injected; "state=all"
// disables state filtering entirely.
func buildListFilters(values map[string]string) ([]domain.Filter, error) {
	var filters []domain.Filter
	if tagValue, ok := values[flagTag]; ok {
		add, remove, err := ParseTagList(tagValue)
		if err != nil {
			return nil, err
		}
		if len(remove) > 0 {
			return nil, usageErrorf("cannot remove tags when listing issues")
		}
		if len(add) == 0 {
			return nil, usageErrorf("no tags to filter for provided")
		}
		filters = append(filters, domain.NewTagFilter(add))
	}
	if user, ok := values[flagUser]; ok {
		filters = append(filters, domain.NewUserFilter(user))
	}
	stateValue, ok := values[flagState]
	if !ok {
		filters = append(filters, domain.NewStateFilter(domain.StateOpen))
		return filters, nil
	}
	switch strings.ToLower(stateValue) {
	case "all":
		// no state predicate
	case "open":
		filters = append(filters, domain.NewStateFilter(domain.StateOpen))
	case "closed":
		filters = append(filters, domain.NewStateFilter(domain.StateClosed))
	default:
		return nil, usageErrorf("%q is not a valid state (open|closed|all)", stateValue)
	}
	return filters, nil
}
