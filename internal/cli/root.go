// Package cli provides the command-line interface for the issue tracker.
//
// The whole surface is one cobra command with flag parsing disabled:
// the forgiving argument syntax (key:value, key=value, bare state
// words, leading issue ids) is resolved by the resolver package, not by
// cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MarcStan/issue-tracker/internal/app"
	"github.com/MarcStan/issue-tracker/internal/domain"
	"github.com/MarcStan/issue-tracker/internal/resolver"
	"github.com/MarcStan/issue-tracker/internal/usecase"
)

// NewRootCommand creates the root command.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "issues",
		Short: "Local file-backed issue tracker",
		Long: `issues is a minimal issue tracker that stores every issue as a
directory of plain text files inside the current working directory.`,
		Version: version,
		Args:    cobra.ArbitraryArgs,
		// The resolver owns the argument grammar.
		DisableFlagParsing: true,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dispatch(cmd, c, args)
		},
	}
	return root
}

// dispatch resolves the raw arguments and runs the matching use case.
func dispatch(cmd *cobra.Command, c *app.Container, args []string) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()
	ctx := cmd.Context()

	if len(args) == 0 {
		fmt.Fprintln(out, "Use 'help' for more information")
		return nil
	}
	for _, w := range c.Config.Warnings {
		fmt.Fprintf(errOut, "Warning: %s\n", w)
	}

	inv, err := resolver.Resolve(args)
	if err != nil {
		return err
	}

	switch inv.Command {
	case resolver.CommandHelp:
		printHelp(out)
		return nil

	case resolver.CommandInit:
		res, err := c.InitProjectUseCase().Execute(ctx)
		if err != nil {
			return err
		}
		if res.AlreadyInitialized {
			fmt.Fprintln(out, "Already an issue tracking directory!")
			return nil
		}
		fmt.Fprintf(out, "New issue project created for owner %s!\n", res.Owner)
		return nil

	case resolver.CommandList:
		res, err := c.ListIssuesUseCase().Execute(ctx, usecase.ListIssuesInput{Filters: inv.Filters})
		if err != nil {
			return err
		}
		if len(res.Issues) == 0 {
			fmt.Fprintln(out, "Found no matching issues!")
			return nil
		}
		fmt.Fprintf(out, "Found %d matching issues:\n", len(res.Issues))
		// A state filter implies a single state; the column is noise then.
		renderIssueList(out, res.Issues, !res.StateFiltered, displayLimit(c, errOut))
		return nil

	case resolver.CommandAdd:
		res, err := c.AddIssueUseCase().Execute(ctx, usecase.AddIssueInput{
			Title:   inv.Title,
			Message: inv.Message,
			Tags:    inv.AddTags,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Created issue '#%d' %s\n", res.Issue.ID, res.Issue.Title)
		return nil

	case resolver.CommandEdit:
		res, err := c.EditTagsUseCase().Execute(ctx, usecase.EditTagsInput{
			Add:    inv.AddTags,
			Remove: inv.RemoveTags,
			ID:     inv.ID,
		})
		if err != nil {
			return notFoundOrErr(out, err, inv.ID)
		}
		if !res.Changed {
			fmt.Fprintln(out, "None of the provided tags where valid!")
			return nil
		}
		fmt.Fprintln(out, res.Summary)
		return nil

	case resolver.CommandComment:
		_, err := c.CommentIssueUseCase().Execute(ctx, usecase.CommentIssueInput{
			Message: inv.Message,
			ID:      inv.ID,
		})
		if err != nil {
			return notFoundOrErr(out, err, inv.ID)
		}
		fmt.Fprintln(out, "Comment added!")
		return nil

	case resolver.CommandShow:
		res, err := c.ShowIssueUseCase().Execute(ctx, usecase.ShowIssueInput{ID: inv.ID})
		if err != nil {
			return notFoundOrErr(out, err, inv.ID)
		}
		renderIssue(out, res.Issue, displayLimit(c, errOut))
		return nil

	case resolver.CommandClose, resolver.CommandReopen:
		return changeState(ctx, out, c, inv)
	}
	return fmt.Errorf("unhandled command %q", inv.Command)
}

// changeState handles the close and reopen commands.
func changeState(ctx context.Context, out io.Writer, c *app.Container, inv *resolver.Invocation) error {
	target := domain.StateClosed
	verb := "closed"
	if inv.Command == resolver.CommandReopen {
		target = domain.StateOpen
		verb = "reopened"
	}
	res, err := c.ChangeStateUseCase().Execute(ctx, usecase.ChangeStateInput{Target: target, ID: inv.ID})
	if err != nil {
		return notFoundOrErr(out, err, inv.ID)
	}
	if !res.Changed {
		return nil
	}
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Issue '#%d' %s!", inv.ID, verb)))
	return nil
}

// notFoundOrErr turns a missing-issue error into the classic console
// message; everything else stays an error.
func notFoundOrErr(out io.Writer, err error, id int) error {
	if errors.Is(err, domain.ErrIssueNotFound) {
		fmt.Fprintf(out, "No issue with id '#%d' found!\n", id)
		return nil
	}
	return err
}

// displayLimit reads the title truncation limit from the project
// marker, falling back to the default on any problem.
func displayLimit(c *app.Container, errOut io.Writer) int {
	marker, warnings, err := c.Store.ReadMarker()
	if err != nil {
		return domain.DefaultDisplayLimit
	}
	for _, w := range warnings {
		fmt.Fprintf(errOut, "Warning: %s\n", w)
	}
	return marker.DisplayLimit
}
