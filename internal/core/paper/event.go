// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

import (
	"fmt"
	"time"

	"github.com/peerreview/journalhub/pkg/slice"
)

// Visibility tags: the fixed vocabulary of viewer classes an event on a
// paper timeline may be shown to. Visibility is a set; membership is
// checked by inclusion, never equality.
const (
	TagPublic              = "public"
	TagAuthors             = "authors"
	TagCorrespondingAuthor = "corresponding-author"
	TagReviewers           = "reviewers"
	TagAssignedReviewers   = "assigned-reviewers"
	TagEditors             = "editors"
	TagAssignedEditors     = "assigned-editors"
	TagManagingEditor      = "managing-editor"
)

var knownTags = map[string]bool{
	TagPublic:              true,
	TagAuthors:             true,
	TagCorrespondingAuthor: true,
	TagReviewers:           true,
	TagAssignedReviewers:   true,
	TagEditors:             true,
	TagAssignedEditors:     true,
	TagManagingEditor:      true,
}

// ValidTag reports whether the tag belongs to the vocabulary.
func ValidTag(tag string) bool {
	return knownTags[tag]
}

// Event is one entry on a paper's timeline.
type Event struct {
	ID         int       `json:"id"`
	PaperID    int       `json:"paper_id"`
	ActorID    string    `json:"actor_id"`
	Type       string    `json:"type"`
	Visibility []string  `json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate enforces the persisted-event invariant: the visibility set is
// never empty and every tag is drawn from the vocabulary.
func (e Event) Validate() error {
	if len(e.Visibility) == 0 {
		return fmt.Errorf("paper: event visibility set must not be empty")
	}
	for _, tag := range e.Visibility {
		if !ValidTag(tag) {
			return fmt.Errorf("paper: unknown visibility tag %q", tag)
		}
	}
	return nil
}

// HasTag reports set membership.
func (e Event) HasTag(tag string) bool {
	return slice.Contains(e.Visibility, tag)
}
