// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package notify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestCatalog_Valid parses and validates every built-in definition. This is
the namespace/path consistency check: a journal notification that links
into a paper page fails here at build time instead of misdirecting readers
in production.
*/
func TestCatalog_Valid(t *testing.T) {
	registry, err := NewRegistry(Catalog())
	require.NoError(t, err)

	for _, definition := range Catalog() {
		assert.True(t, registry.Has(definition.Key))
	}
}

/*
TestValidateDefinitions_RejectsCrossEntityPath reproduces the class of bug
the catalog check exists for: a member.journal definition whose path links
to a paper file page.
*/
func TestValidateDefinitions_RejectsCrossEntityPath(t *testing.T) {
	err := ValidateDefinitions([]Definition{{
		Key:  "member.journal.role-changed",
		Path: `/paper/{{.PaperID}}/file`,
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong to entity")
}

func TestValidateDefinitions_RejectsMalformedNamespace(t *testing.T) {
	cases := []struct {
		name string
		key  string
	}{
		{"two segments", "author.paper"},
		{"empty segment", "author..new-review"},
		{"unknown role", "sponsor.paper.new-review"},
		{"unknown entity", "author.invoice.created"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDefinitions([]Definition{{Key: tc.key}})
			assert.Error(t, err)
		})
	}
}

func TestValidateDefinitions_RejectsDuplicateKeys(t *testing.T) {
	err := ValidateDefinitions([]Definition{
		{Key: "author.paper.new-review", Path: "/paper/1"},
		{Key: "author.paper.new-review", Path: "/paper/1"},
	})
	assert.Error(t, err)
}

/*
TestRender_FullContext renders a fully populated context and checks each
facet carries its own content.
*/
func TestRender_FullContext(t *testing.T) {
	registry, err := NewRegistry(Catalog())
	require.NoError(t, err)

	message, err := registry.Render("author.paper.new-review", &Context{
		Host:     "https://journalhub.pub",
		Paper:    &PaperRef{ID: 42, Title: "On the Electrodynamics of Moving Bodies"},
		Reviewer: &UserRef{ID: "u1", Name: "Mileva"},
	})
	require.NoError(t, err)

	assert.Equal(t, `New review on "On the Electrodynamics of Moving Bodies"`, message.EmailSubject)
	assert.Contains(t, message.EmailBody, "Mileva reviewed")
	assert.Contains(t, message.EmailBody, "https://journalhub.pub/paper/42/reviews")
	assert.Equal(t, "/paper/42/reviews", message.Path)
}

/*
TestRender_MissingContextFieldsRenderEmpty verifies facet independence: a
context missing optional entities still yields all four facets without
error, with absent placeholders rendered as empty strings.
*/
func TestRender_MissingContextFieldsRenderEmpty(t *testing.T) {
	registry, err := NewRegistry(Catalog())
	require.NoError(t, err)

	// No comment, no actor: both placeholders in the comment template.
	message, err := registry.Render("author.paper.new-comment", &Context{
		Paper: &PaperRef{ID: 7, Title: "Untitled"},
	})
	require.NoError(t, err)

	assert.Contains(t, message.EmailSubject, "Untitled")
	assert.Equal(t, ` commented on "Untitled": `, message.EmailBody)
	assert.Equal(t, "/paper/7/comments", message.Path)
}

/*
TestRender_NilContext is the extreme case: every accessor tolerates a nil
receiver, so rendering against nil produces empty placeholders everywhere
and still no error.
*/
func TestRender_NilContext(t *testing.T) {
	registry, err := NewRegistry(Catalog())
	require.NoError(t, err)

	message, err := registry.Render("member.journal.role-changed", nil)
	require.NoError(t, err)
	assert.Equal(t, "/journal/0", message.Path)
	assert.False(t, strings.Contains(message.EmailBody, "<nil>"))
}

/*
TestRender_PartialPaperFallback covers unassignment-style events where only
a paper stub is known: the title accessor falls back to the partial paper.
*/
func TestRender_PartialPaperFallback(t *testing.T) {
	registry, err := NewRegistry(Catalog())
	require.NoError(t, err)

	message, err := registry.Render("reviewer.submission.reviewer-unassigned", &Context{
		PartialPaper: &PaperRef{ID: 9, Title: "Retracted Manuscript"},
		Journal:      &JournalRef{ID: 3, Name: "Annals of Examples"},
	})
	require.NoError(t, err)

	assert.Contains(t, message.EmailBody, "Retracted Manuscript")
	assert.Equal(t, "/journal/3", message.Path)
}

func TestRender_UnknownKey(t *testing.T) {
	registry, err := NewRegistry(Catalog())
	require.NoError(t, err)

	_, err = registry.Render("author.paper.never-defined", nil)
	assert.Error(t, err)
}
