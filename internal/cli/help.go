package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MarcStan/issue-tracker/internal/resolver"
)

// printHelp writes the command and flag overview, generated from the
// resolver's declarative tables so help can never drift from what is
// actually accepted.
func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Supported commands:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, cmd := range resolver.Commands() {
		id := ""
		if resolver.RequiresIssueID(cmd) {
			id = "id"
		}
		flags := make([]string, 0, len(resolver.AllowedFlags(cmd)))
		for _, name := range resolver.AllowedFlags(cmd) {
			flags = append(flags, "--"+name)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\n", cmd, id, strings.Join(flags, ", "))
	}
	_ = tw.Flush()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Optional arguments:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, f := range resolver.DefaultFlags() {
		spelling := "    --" + f.Name
		if f.Short != 0 {
			spelling = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
		}
		fmt.Fprintf(tw, "  %s\t%s\n", spelling, f.Description)
	}
	_ = tw.Flush()
}
