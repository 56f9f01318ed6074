package resolver

import "strings"

// classifyShorthand infers the command for a shorthand invocation whose
// first token is an issue id. The precedence is a firm contract:
//
//	any token starting with "m" (after prefix stripping) -> comment
//	any token starting with "tag"                        -> edit
//	otherwise                                            -> show
//
// The check runs over raw tokens before normalization and is
// order-independent: "1 foo -m bar" and "1 -m bar foo" both resolve to
// comment.
func classifyShorthand(rest []string) Command {
	for _, tok := range rest {
		if strings.HasPrefix(strings.TrimLeft(tok, "-/"), "m") {
			return CommandComment
		}
	}
	for _, tok := range rest {
		if strings.HasPrefix(strings.TrimLeft(tok, "-/"), "tag") {
			return CommandEdit
		}
	}
	return CommandShow
}

// normalize rewrites the forgiving user syntax into the canonical flag
// syntax expected by parseFlags: exactly one prefix ("--name" or "-x" or
// "/name") and "=" as the key/value separator.
//
// Rewrites per token:
//   - ":" separators become "="
//   - bare state vocabulary ("open", "closed", "all") becomes "state=<v>"
//   - tokens matching a known flag name but lacking a prefix get "--"
//     (long form) or "-" (single character, or "=" as second character)
//
// The first skip tokens are copied untouched (command name, issue id).
// A one-bit lookahead tracks flag/value pairs split across two tokens so
// a message body is never mistaken for a flag.
func normalize(args []string, flags []Flag, skip int) []string {
	out := make([]string, len(args))
	valueFollows := false
	for i, arg := range args {
		if i < skip || valueFollows {
			out[i] = arg
			valueFollows = false
			continue
		}

		tok := strings.ReplaceAll(arg, ":", "=")
		if isStateValue(tok) {
			tok = "state=" + tok
		}

		name := tok
		switch {
		case strings.HasPrefix(name, "--"):
			name = name[2:]
		case strings.HasPrefix(name, "-"), strings.HasPrefix(name, "/"):
			name = name[1:]
		}
		if idx := strings.IndexByte(name, '='); idx >= 0 {
			name = name[:idx]
		}

		match := lookupFlag(flags, name)

		// Only prefix tokens that resolve to a known flag; anything else
		// is assumed to be a user-provided value.
		if match != nil && !strings.HasPrefix(tok, "-") && !strings.HasPrefix(tok, "/") {
			if len(tok) == 1 || tok[1] == '=' {
				tok = "-" + tok
			} else {
				tok = "--" + tok
			}
		}
		out[i] = tok

		// "-m" "my message": the flag carries no inline value, so the
		// next token is its value and must not be rewritten.
		if match != nil && match.RequiresValue &&
			!strings.Contains(tok, "=") &&
			(strings.HasPrefix(tok, "-") || strings.HasPrefix(tok, "/")) {
			valueFollows = true
		}
	}
	return out
}

func isStateValue(tok string) bool {
	for _, s := range stateValues {
		if strings.EqualFold(tok, s) {
			return true
		}
	}
	return false
}
