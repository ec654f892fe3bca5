// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func event(tags ...string) Event {
	return Event{PaperID: 1, Type: "review-posted", Visibility: tags}
}

/*
TestClassify covers the safety matrix: public events are base for
everyone, restricted events split safe/danger by the viewer's side, and
the author classification overrides the member one when both apply.
*/
func TestClassify(t *testing.T) {
	cases := []struct {
		name   string
		event  Event
		viewer Viewer
		want   Safety
	}{
		{"public for stranger", event(TagPublic), Viewer{}, SafetyBase},
		{"public for member", event(TagPublic), Viewer{IsJournalMember: true}, SafetyBase},
		{"public for author", event(TagPublic, TagAuthors), Viewer{IsPaperAuthor: true}, SafetyBase},

		{"restricted for stranger stays base", event(TagEditors), Viewer{}, SafetyBase},

		{"member, author-targeted", event(TagAuthors), Viewer{IsJournalMember: true}, SafetyDanger},
		{"member, corresponding-author-targeted", event(TagCorrespondingAuthor), Viewer{IsJournalMember: true}, SafetyDanger},
		{"member, editorial event", event(TagEditors), Viewer{IsJournalMember: true}, SafetySafe},

		{"author, editorial-targeted", event(TagEditors), Viewer{IsPaperAuthor: true}, SafetyDanger},
		{"author, assigned-reviewers-targeted", event(TagAssignedReviewers), Viewer{IsPaperAuthor: true}, SafetyDanger},
		{"author, author-only event", event(TagAuthors), Viewer{IsPaperAuthor: true}, SafetySafe},

		// Both relations: the author rule is evaluated after the member
		// rule and wins.
		{
			"member+author, author-targeted resolves as author",
			event(TagAuthors),
			Viewer{IsJournalMember: true, IsPaperAuthor: true},
			SafetySafe,
		},
		{
			"member+author, editorial-targeted resolves as author",
			event(TagEditors),
			Viewer{IsJournalMember: true, IsPaperAuthor: true},
			SafetyDanger,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.event, tc.viewer))
		})
	}
}

/*
TestVisibleTo covers the access gate that runs before classification:
restricted events never reach viewers outside every visibility class.
*/
func TestVisibleTo(t *testing.T) {
	actorEvent := event(TagEditors)
	actorEvent.ActorID = "editor-1"

	cases := []struct {
		name     string
		event    Event
		viewer   Viewer
		viewerID string
		want     bool
	}{
		{"public for anonymous", event(TagPublic), Viewer{}, "", true},
		{"public for stranger", event(TagPublic), Viewer{}, "someone", true},

		{"restricted hidden from anonymous", event(TagEditors), Viewer{}, "", false},
		{"restricted hidden from stranger", event(TagEditors), Viewer{}, "someone", false},

		{"restricted for member", event(TagEditors), Viewer{IsJournalMember: true}, "member-1", true},
		{"restricted for author", event(TagEditors), Viewer{IsPaperAuthor: true}, "author-1", true},
		{"restricted for its actor", actorEvent, Viewer{}, "editor-1", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, VisibleTo(tc.event, tc.viewer, tc.viewerID))
		})
	}
}

/*
TestToggleTag_SelfInverse: toggling the same tag twice restores the
original set.
*/
func TestToggleTag_SelfInverse(t *testing.T) {
	original := []string{TagAuthors, TagEditors}

	once := ToggleTag(original, TagReviewers)
	assert.Contains(t, once, TagReviewers)

	twice := ToggleTag(once, TagReviewers)
	assert.ElementsMatch(t, original, twice)

	// Removing then re-adding an existing tag also round-trips.
	removed := ToggleTag(original, TagAuthors)
	assert.NotContains(t, removed, TagAuthors)
	restored := ToggleTag(removed, TagAuthors)
	assert.ElementsMatch(t, original, restored)
}

func TestToggleTag_DoesNotMutateInput(t *testing.T) {
	original := []string{TagAuthors, TagEditors}
	_ = ToggleTag(original, TagAuthors)
	assert.Equal(t, []string{TagAuthors, TagEditors}, original)
}

func TestEvent_Validate(t *testing.T) {
	assert.NoError(t, event(TagPublic).Validate())
	assert.NoError(t, event(TagAuthors, TagEditors).Validate())
	assert.Error(t, event().Validate())
	assert.Error(t, event("everyone").Validate())
}
