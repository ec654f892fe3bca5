// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package notify maps (recipient-role, entity, event) triples to rendered
notifications.

# Definitions

Every notification is a [Definition] keyed by a dotted namespace
"<recipient-role>.<entity>.<event>" (e.g. "author.paper.new-review") with
four facets: email subject, email body, a short text for in-app display and
a client deep-link path. Each facet is a text/template rendered
independently, so one facet failing to render never suppresses the others.

# Context

Templates only ever call the accessor methods on [*Context], never raw
fields. The accessors are nil-tolerant at every level: a template that
references an absent entity renders an empty string instead of failing,
which is what lets one definition serve events where only part of the
context is known (e.g. an unassignment that carries a paper stub).

# Namespace consistency

A definition whose path links to the wrong entity kind is a silent
correctness bug: the notification is delivered, looks plausible and sends
the reader to the wrong page. [ValidateDefinitions] cross-checks every
definition's path against its namespace entity; the catalog test keeps the
check honest.
*/
package notify

// # Context Entities

// PaperRef identifies a paper in a notification context. For events where
// only the title survives (e.g. the paper was deleted or access revoked) a
// stub with ID 0 is used.
type PaperRef struct {
	ID    int
	Title string
}

// JournalRef identifies a journal in a notification context.
type JournalRef struct {
	ID   int
	Name string
}

// UserRef identifies a person in a notification context.
type UserRef struct {
	ID   string
	Name string
}

// ReviewRef identifies a review in a notification context.
type ReviewRef struct {
	ID      int
	PaperID int
}

// CommentRef carries a comment body for inline quoting.
type CommentRef struct {
	ID   int
	Body string
}

// SubmissionRef identifies a submission and its decision status.
type SubmissionRef struct {
	ID        int
	PaperID   int
	JournalID int
	Status    string
}

// Context is the union of everything any notification template may
// reference. Any subset of the pointer fields may be nil.
type Context struct {
	Host string

	Paper        *PaperRef
	PartialPaper *PaperRef
	Journal      *JournalRef
	Submission   *SubmissionRef
	Review       *ReviewRef
	Comment      *CommentRef

	Actor               *UserRef
	Reviewer            *UserRef
	Editor              *UserRef
	Member              *UserRef
	CorrespondingAuthor *UserRef
}

// # Accessors
//
// Each accessor tolerates a nil receiver and nil fields; templates call
// these and nothing else.

func (c *Context) HostURL() string {
	if c == nil {
		return ""
	}
	return c.Host
}

// PaperTitle prefers the full paper and falls back to the partial stub.
func (c *Context) PaperTitle() string {
	switch {
	case c == nil:
		return ""
	case c.Paper != nil:
		return c.Paper.Title
	case c.PartialPaper != nil:
		return c.PartialPaper.Title
	default:
		return ""
	}
}

func (c *Context) PaperID() int {
	switch {
	case c == nil:
		return 0
	case c.Paper != nil:
		return c.Paper.ID
	case c.PartialPaper != nil:
		return c.PartialPaper.ID
	default:
		return 0
	}
}

func (c *Context) JournalName() string {
	if c == nil || c.Journal == nil {
		return ""
	}
	return c.Journal.Name
}

func (c *Context) JournalID() int {
	if c == nil || c.Journal == nil {
		return 0
	}
	return c.Journal.ID
}

func (c *Context) SubmissionStatus() string {
	if c == nil || c.Submission == nil {
		return ""
	}
	return c.Submission.Status
}

func (c *Context) ReviewID() int {
	if c == nil || c.Review == nil {
		return 0
	}
	return c.Review.ID
}

func (c *Context) CommentBody() string {
	if c == nil || c.Comment == nil {
		return ""
	}
	return c.Comment.Body
}

func (c *Context) ActorName() string {
	if c == nil || c.Actor == nil {
		return ""
	}
	return c.Actor.Name
}

func (c *Context) ReviewerName() string {
	if c == nil || c.Reviewer == nil {
		return ""
	}
	return c.Reviewer.Name
}

func (c *Context) EditorName() string {
	if c == nil || c.Editor == nil {
		return ""
	}
	return c.Editor.Name
}

func (c *Context) MemberName() string {
	if c == nil || c.Member == nil {
		return ""
	}
	return c.Member.Name
}

func (c *Context) CorrespondingAuthorName() string {
	if c == nil || c.CorrespondingAuthor == nil {
		return ""
	}
	return c.CorrespondingAuthor.Name
}
