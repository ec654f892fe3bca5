// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

// Safety is the display classification of a timeline event for a given
// viewer. It drives UI emphasis only; access control happens in the query
// layer before an event ever reaches a client.
type Safety string

const (
	SafetyBase   Safety = "base"
	SafetySafe   Safety = "safe"
	SafetyDanger Safety = "danger"
)

// Viewer captures the viewer's relationship to the event's paper and
// journal, which is all the classification needs.
type Viewer struct {
	IsJournalMember bool
	IsPaperAuthor   bool
}

// VisibleTo reports whether the viewer may see the event at all. Public
// events are visible to everyone; restricted events only reach paper
// authors, journal members and the acting user. This is the access check,
// [Classify] only grades events that passed it.
func VisibleTo(event Event, viewer Viewer, viewerID string) bool {
	if event.HasTag(TagPublic) {
		return true
	}
	if viewer.IsPaperAuthor || viewer.IsJournalMember {
		return true
	}
	return viewerID != "" && viewerID == event.ActorID
}

// memberSensitive are the tags that make a restricted event sensitive for
// a journal member: it concerns the authors.
var memberSensitive = []string{TagAuthors, TagCorrespondingAuthor}

// authorSensitive are the tags that make a restricted event sensitive for
// an author: it concerns the editorial side.
var authorSensitive = []string{
	TagManagingEditor, TagEditors, TagAssignedEditors,
	TagReviewers, TagAssignedReviewers,
}

// Classify computes the display safety of an event for a viewer.
//
// A public event is always base. For restricted events, journal members
// get danger when the event targets the author side, authors get danger
// when it targets the editorial side; otherwise safe. When the viewer is
// both, the author classification is evaluated last and wins.
func Classify(event Event, viewer Viewer) Safety {
	status := SafetyBase

	if event.HasTag(TagPublic) {
		return status
	}

	if viewer.IsJournalMember {
		if intersects(event, memberSensitive) {
			status = SafetyDanger
		} else {
			status = SafetySafe
		}
	}

	if viewer.IsPaperAuthor {
		if intersects(event, authorSensitive) {
			status = SafetyDanger
		} else {
			status = SafetySafe
		}
	}

	return status
}

func intersects(event Event, tags []string) bool {
	for _, tag := range tags {
		if event.HasTag(tag) {
			return true
		}
	}
	return false
}

// ToggleTag returns the visibility set with the tag flipped: removed when
// present, appended when absent. The input slice is not mutated.
func ToggleTag(visibility []string, tag string) []string {
	out := make([]string, 0, len(visibility)+1)
	found := false
	for _, held := range visibility {
		if held == tag {
			found = true
			continue
		}
		out = append(out, held)
	}
	if !found {
		out = append(out, tag)
	}
	return out
}
