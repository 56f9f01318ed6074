package resolver

import "strings"

// Command is a first-class command name.
type Command string

// First-class commands.
const (
	CommandInit    Command = "init"
	CommandList    Command = "list"
	CommandAdd     Command = "add"
	CommandEdit    Command = "edit"
	CommandComment Command = "comment"
	CommandShow    Command = "show"
	CommandClose   Command = "close"
	CommandReopen  Command = "reopen"
	CommandHelp    Command = "help"
)

// Flag describes a second-class argument.
// Fields are ordered to minimize memory padding.
type Flag struct {
	Name          string // Long name, e.g. "title" for --title
	Description   string // Help text
	Short         byte   // Short name, e.g. 't' for -t (0 = none)
	RequiresValue bool   // Whether the flag carries a value
}

// Flag names used by the command table.
const (
	flagTitle   = "title"
	flagMessage = "message"
	flagTag     = "tag"
	flagUser    = "user"
	flagState   = "state"
)

// State vocabulary accepted by the state flag. "open" and "closed"
// translate into a state filter, "all" disables state filtering.
var stateValues = []string{"open", "closed", "all"}

// DefaultFlags returns the declarative flag table. The resolver matches
// tokens against this table both when normalizing the raw syntax and
// when parsing the canonical form.
func DefaultFlags() []Flag {
	return []Flag{
		{Name: flagTitle, Short: 't', RequiresValue: true, Description: "sets the title for the issue"},
		{Name: flagMessage, Short: 'm', RequiresValue: true, Description: "adds a message"},
		{Name: flagTag, RequiresValue: true, Description: "adds/removes tags; '-' prefix removes, ',' separates multiple tags"},
		{Name: flagUser, RequiresValue: true, Description: "filters the list for the specific user"},
		{Name: flagState, Short: 's', RequiresValue: true, Description: "filters the list for the specific state (open|closed|all)"},
	}
}

// commandFlags declares which second-class flags each first-class
// command accepts. Any flag parsed outside this allow-list is a hard
// validation failure.
var commandFlags = map[Command][]string{
	CommandInit:    {},
	CommandList:    {flagTag, flagUser, flagState},
	CommandAdd:     {flagTitle, flagMessage, flagTag},
	CommandEdit:    {flagTag},
	CommandComment: {flagMessage},
	CommandShow:    {},
	CommandClose:   {},
	CommandReopen:  {},
}

// commandsWithIssueID is the set of commands invoked as
// "command <id> [flags]".
var commandsWithIssueID = map[Command]bool{
	CommandEdit:    true,
	CommandComment: true,
	CommandShow:    true,
	CommandClose:   true,
	CommandReopen:  true,
}

// Commands returns all first-class commands in help display order.
func Commands() []Command {
	return []Command{
		CommandInit,
		CommandList,
		CommandAdd,
		CommandEdit,
		CommandComment,
		CommandShow,
		CommandClose,
		CommandReopen,
	}
}

// AllowedFlags returns the flags a command accepts, in declaration order.
func AllowedFlags(cmd Command) []string {
	return commandFlags[cmd]
}

// RequiresIssueID reports whether the command takes an issue id as its
// second token.
func RequiresIssueID(cmd Command) bool {
	return commandsWithIssueID[cmd]
}

// lookupFlag resolves a bare token name against the flag table. Long
// names match case-insensitively; a token whose first character equals a
// short name also matches, mirroring the forgiving matching of the
// original command line surface.
func lookupFlag(flags []Flag, name string) *Flag {
	if name == "" {
		return nil
	}
	for i := range flags {
		if strings.EqualFold(name, flags[i].Name) {
			return &flags[i]
		}
	}
	for i := range flags {
		if flags[i].Short != 0 && name[0] == flags[i].Short {
			return &flags[i]
		}
	}
	return nil
}

// isHelp reports whether the token is any accepted help spelling.
func isHelp(arg string) bool {
	switch strings.ToLower(arg) {
	case "help", "--help", "/help", "-h", "/h", "h", "?", "/?", "-?":
		return true
	default:
		return false
	}
}
