package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarcStan/issue-tracker/internal/domain"
)

func tagNames(tags []domain.Tag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = t.Name()
	}
	return out
}

func TestResolve_EmptyArgs(t *testing.T) {
	_, err := Resolve(nil)

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
}

func TestResolve_HelpSpellings(t *testing.T) {
	for _, spelling := range []string{"help", "--help", "/help", "-h", "/h", "h", "?", "/?", "-?", "HELP"} {
		inv, err := Resolve([]string{spelling})
		require.NoError(t, err, spelling)
		assert.Equal(t, CommandHelp, inv.Command, spelling)
	}
}

func TestResolve_UnknownCommand(t *testing.T) {
	_, err := Resolve([]string{"frobnicate"})

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestResolve_Init(t *testing.T) {
	inv, err := Resolve([]string{"init"})
	require.NoError(t, err)
	assert.Equal(t, CommandInit, inv.Command)
}

func TestResolve_InitRejectsExtraArgs(t *testing.T) {
	_, err := Resolve([]string{"init", "here"})
	assert.EqualError(t, err, "invalid argument for 'init'")
}

func TestResolve_ShorthandShow(t *testing.T) {
	inv, err := Resolve([]string{"1"})

	require.NoError(t, err)
	assert.Equal(t, CommandShow, inv.Command)
	assert.Equal(t, 1, inv.ID)
}

func TestResolve_ShorthandComment(t *testing.T) {
	inv, err := Resolve([]string{"2", "-m", "does not build"})

	require.NoError(t, err)
	assert.Equal(t, CommandComment, inv.Command)
	assert.Equal(t, 2, inv.ID)
	assert.Equal(t, "does not build", inv.Message)
}

func TestResolve_ShorthandEdit(t *testing.T) {
	inv, err := Resolve([]string{"3", "tag:urgent"})

	require.NoError(t, err)
	assert.Equal(t, CommandEdit, inv.Command)
	assert.Equal(t, 3, inv.ID)
	assert.Equal(t, []string{"urgent"}, tagNames(inv.AddTags))
}

func TestResolve_ShorthandCommentBeatsEdit(t *testing.T) {
	// Both a message and a tag flag: comment wins regardless of order.
	inv, err := Resolve([]string{"4", "tag:x", "-m", "hello"})

	var usageErr *UsageError
	if err != nil {
		// comment does not accept --tag, so the allow-list must reject it
		require.ErrorAs(t, err, &usageErr)
		assert.Contains(t, err.Error(), "'comment'")
		return
	}
	assert.Equal(t, CommandComment, inv.Command)
}

func TestResolve_ShorthandZeroIDIsNotShorthand(t *testing.T) {
	_, err := Resolve([]string{"0"})
	assert.Error(t, err)
}

func TestResolve_AddAllSyntaxes(t *testing.T) {
	// ":" and "=" separators and bare prefix-less flag names all mean
	// the same thing.
	variants := [][]string{
		{"add", "title:Broken login", "message:It is broken", "tag:auth,ui"},
		{"add", "title=Broken login", "m=It is broken", "tag=auth,ui"},
		{"add", "--title", "Broken login", "-m", "It is broken", "--tag", "auth,ui"},
		{"add", "t:Broken login", "m:It is broken", "tag:auth,ui"},
	}
	for _, args := range variants {
		inv, err := Resolve(args)
		require.NoError(t, err, "%v", args)
		assert.Equal(t, CommandAdd, inv.Command)
		assert.Equal(t, "Broken login", inv.Title, "%v", args)
		assert.Equal(t, "It is broken", inv.Message, "%v", args)
		assert.Equal(t, []string{"auth", "ui"}, tagNames(inv.AddTags), "%v", args)
	}
}

func TestResolve_AddRequiresTitle(t *testing.T) {
	_, err := Resolve([]string{"add", "-m", "no title"})
	assert.EqualError(t, err, "title is required for adding a new issue")
}

func TestResolve_AddRejectsTagRemoval(t *testing.T) {
	_, err := Resolve([]string{"add", "title:x", "tag:-old"})
	assert.EqualError(t, err, "cannot remove tags when adding a new issue")
}

func TestResolve_MessageValueIsNotMistakenForFlag(t *testing.T) {
	// "message" as a value would match the -m flag by name; the
	// lookahead after "-m" must keep it as a plain value.
	inv, err := Resolve([]string{"comment", "7", "-m", "message"})

	require.NoError(t, err)
	assert.Equal(t, "message", inv.Message)
}

func TestResolve_EditTagDelta(t *testing.T) {
	inv, err := Resolve([]string{"edit", "2", "tag:-old, new"})

	require.NoError(t, err)
	assert.Equal(t, CommandEdit, inv.Command)
	assert.Equal(t, 2, inv.ID)
	assert.Equal(t, []string{"new"}, tagNames(inv.AddTags))
	assert.Equal(t, []string{"old"}, tagNames(inv.RemoveTags))
}

func TestResolve_EditRequiresTag(t *testing.T) {
	_, err := Resolve([]string{"edit", "2"})
	assert.EqualError(t, err, "tag is required to edit an issue")
}

func TestResolve_CommentRequiresMessage(t *testing.T) {
	_, err := Resolve([]string{"comment", "2"})
	assert.EqualError(t, err, "message is required to comment on an issue")
}

func TestResolve_IssueIDValidation(t *testing.T) {
	_, err := Resolve([]string{"show"})
	assert.Error(t, err)

	_, err = Resolve([]string{"show", "abc"})
	assert.Error(t, err)

	_, err = Resolve([]string{"show", "-1"})
	assert.Error(t, err)
}

func TestResolve_ListDefaultsToOpen(t *testing.T) {
	inv, err := Resolve([]string{"list"})

	require.NoError(t, err)
	require.Len(t, inv.Filters, 1)
	assert.Equal(t, domain.FilterByState, inv.Filters[0].Kind)
	assert.Equal(t, domain.StateOpen, inv.Filters[0].State)
}

func TestResolve_ListBareStateWord(t *testing.T) {
	inv, err := Resolve([]string{"list", "closed"})

	require.NoError(t, err)
	require.Len(t, inv.Filters, 1)
	assert.Equal(t, domain.StateClosed, inv.Filters[0].State)
}

func TestResolve_ListStateAllDisablesStateFilter(t *testing.T) {
	inv, err := Resolve([]string{"list", "state:all"})

	require.NoError(t, err)
	assert.Empty(t, inv.Filters)
}

func TestResolve_ListCombinedFilters(t *testing.T) {
	inv, err := Resolve([]string{"list", "tag:bug", "user:jane"})

	require.NoError(t, err)
	require.Len(t, inv.Filters, 3)
	assert.Equal(t, domain.FilterByTag, inv.Filters[0].Kind)
	assert.Equal(t, domain.FilterByUser, inv.Filters[1].Kind)
	// open-state filter injected because no state flag was given
	assert.Equal(t, domain.FilterByState, inv.Filters[2].Kind)
	assert.Equal(t, domain.StateOpen, inv.Filters[2].State)
}

func TestResolve_ListInvalidState(t *testing.T) {
	_, err := Resolve([]string{"list", "state:resolved"})
	assert.Error(t, err)
}

func TestResolve_AllowListRejectsForeignFlags(t *testing.T) {
	_, err := Resolve([]string{"add", "title:x", "user:jane"})

	var usageErr *UsageError
	require.ErrorAs(t, err, &usageErr)
	assert.Contains(t, err.Error(), "'--user' is not supported with 'add'")
}

func TestResolve_DuplicateFlag(t *testing.T) {
	_, err := Resolve([]string{"add", "-t", "a", "--title", "b"})
	assert.EqualError(t, err, "argument --title may only be provided once")
}

func TestResolve_UnsupportedBareToken(t *testing.T) {
	_, err := Resolve([]string{"list", "definitely-not-a-flag=foobar"})
	assert.Error(t, err)
}

func TestParseTagList(t *testing.T) {
	add, remove, err := ParseTagList("a, b ,-c,-d")

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tagNames(add))
	assert.Equal(t, []string{"c", "d"}, tagNames(remove))
}

func TestParseTagList_Invalid(t *testing.T) {
	for _, value := range []string{"", " ", "-", "a,"} {
		_, _, err := ParseTagList(value)
		assert.Error(t, err, "%q", value)
	}
}

func TestClassifyShorthand(t *testing.T) {
	tests := []struct {
		name string
		rest []string
		want Command
	}{
		{"empty", nil, CommandShow},
		{"message flag", []string{"-m", "hi"}, CommandComment},
		{"message colon", []string{"m:hi"}, CommandComment},
		{"tag", []string{"tag:x"}, CommandEdit},
		{"comment beats edit", []string{"tag:x", "-m", "hi"}, CommandComment},
		{"comment beats edit reversed", []string{"-m", "hi", "tag:x"}, CommandComment},
		{"other tokens", []string{"whatever"}, CommandShow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyShorthand(tt.rest))
		})
	}
}

func TestNormalize_StateWordRewrite(t *testing.T) {
	got := normalize([]string{"list", "open"}, DefaultFlags(), 1)
	assert.Equal(t, []string{"list", "--state=open"}, got)
}

func TestNormalize_SkipsCommandAndID(t *testing.T) {
	// the issue id must never be rewritten even if it looks odd
	got := normalize([]string{"show", "1"}, DefaultFlags(), 2)
	assert.Equal(t, []string{"show", "1"}, got)
}

func TestNormalize_ShortFlagSingleChar(t *testing.T) {
	got := normalize([]string{"add", "t=x"}, DefaultFlags(), 1)
	assert.Equal(t, []string{"add", "-t=x"}, got)
}
