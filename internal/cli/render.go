package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

// ruleWidth is the width of the separator line in the show view.
const ruleWidth = 80

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	ruleStyle    = lipgloss.NewStyle().Faint(true)
	authorStyle  = lipgloss.NewStyle().Bold(true)
)

// renderIssueList writes one padded line per issue. The state column is
// omitted when the caller already narrowed the list to a single state.
func renderIssueList(w io.Writer, issues []*domain.Issue, showState bool, limit int) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, issue := range issues {
		fmt.Fprintln(tw, strings.Join(issueRow(issue, showState, limit), "\t"))
	}
	_ = tw.Flush()
}

// issueRow builds the list columns for one issue:
//
//	#3  [Open]  'Broken login'  created by jane  @ 2026-02-14  (2 comments)  [auth, ui]
func issueRow(issue *domain.Issue, showState bool, limit int) []string {
	state := ""
	if showState {
		state = "[" + issue.State().Display() + "]"
	}
	comments := ""
	if n := issue.UserCommentCount(); n > 0 {
		comments = fmt.Sprintf("(%d comments)", n)
	}
	tags := ""
	if len(issue.Tags) > 0 {
		tags = "[" + domain.JoinTags(issue.Tags) + "]"
	}
	return []string{
		fmt.Sprintf("#%d", issue.ID),
		state,
		"'" + truncateTitle(issue.Title, limit) + "'",
		"created by " + issue.Author,
		"@ " + issue.Created.Format("2006-01-02"),
		comments,
		tags,
	}
}

// truncateTitle shortens overlong titles for list display.
func truncateTitle(title string, limit int) string {
	if limit < 1 {
		limit = domain.DefaultDisplayLimit
	}
	runes := []rune(title)
	if len(runes) <= limit {
		return title
	}
	return string(runes[:limit]) + "..."
}

// renderIssue writes the full issue view: the list-style header, the
// issue message and every comment with an age-adaptive timestamp.
func renderIssue(w io.Writer, issue *domain.Issue, limit int) {
	renderIssueList(w, []*domain.Issue{issue}, true, limit)

	rule := ruleStyle.Render(strings.Repeat("_", ruleWidth))
	fmt.Fprintln(w, rule)

	if strings.TrimSpace(issue.Message) != "" {
		fmt.Fprintln(w, issue.Message)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, c := range issue.Comments {
		if i > 0 {
			_ = tw.Flush()
			fmt.Fprintln(w, rule)
			tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		}
		fmt.Fprintf(tw, "%s\t@ %s:\t%s\n", authorStyle.Render(c.Author), commentTimestamp(c.Created, issue.Created), c.Message)
	}
	_ = tw.Flush()
}

// commentTimestamp picks a timestamp precision matching the comment age
// relative to the issue: same day needs only the time, anything within
// a week the full timestamp, and older comments just the date.
func commentTimestamp(at, created time.Time) string {
	ay, am, ad := at.Date()
	cy, cm, cd := created.Date()
	if ay == cy && am == cm && ad == cd {
		return at.Format("15:04")
	}
	if at.Sub(created) > 7*24*time.Hour {
		return at.Format("2006-01-02")
	}
	return at.Format("2006-01-02 15:04:05")
}
