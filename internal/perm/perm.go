// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package perm implements the role and permission model governing who may see
or act on a paper, submission, or journal at each stage of its lifecycle.

# Model

Grants are a closed enumeration of (Resource, Action) pairs instead of free
strings, so a mistyped permission fails at parse time rather than silently
never matching. A [Role] is scoped to exactly one owning entity (paper XOR
journal); a [Permission] belongs to exactly one grantee (user XOR role).
Both exclusivity rules are validated here and backed by CHECK constraints
in the database.

# Visibility

The draft-visibility rules are computed in SQL (set-describing queries over
journal membership and authorship, never in-memory filtering of full paper
graphs). The canonical predicate also exists as the pure function
[DraftVisible] so the rule is testable without a database; the SQL in
store_postgres.go mirrors it clause for clause.
*/
package perm

import (
	"fmt"
	"time"
)

// # Grants

// Resource is the kind of entity a grant applies to.
type Resource string

const (
	ResourcePaper      Resource = "Paper"
	ResourceSubmission Resource = "Submission"
	ResourceReview     Resource = "Review"
	ResourceJournal    Resource = "Journal"
	ResourceEvent      Resource = "Event"
	ResourceComment    Resource = "Comment"
)

// Action is the operation a grant allows on its resource.
type Action string

const (
	ActionView          Action = "view"
	ActionEdit          Action = "edit"
	ActionDelete        Action = "delete"
	ActionIdentify      Action = "identify"
	ActionReview        Action = "review"
	ActionComment       Action = "comment"
	ActionCreateVersion Action = "create-version"
)

// Grant is one (resource, action) capability.
//
// The wire and storage form is "<Resource>:<action>" (e.g. "Paper:view"),
// but code always works with the typed pair.
type Grant struct {
	Resource Resource `json:"resource"`
	Action   Action   `json:"action"`
}

// String renders the storage form of the grant.
func (g Grant) String() string {
	return string(g.Resource) + ":" + string(g.Action)
}

// Valid reports whether both halves of the grant belong to the closed sets.
func (g Grant) Valid() bool {
	switch g.Resource {
	case ResourcePaper, ResourceSubmission, ResourceReview, ResourceJournal, ResourceEvent, ResourceComment:
	default:
		return false
	}

	switch g.Action {
	case ActionView, ActionEdit, ActionDelete, ActionIdentify, ActionReview, ActionComment, ActionCreateVersion:
	default:
		return false
	}

	return true
}

// ParseGrant parses the "<Resource>:<action>" storage form into a [Grant].
// Unknown resources or actions are an error, never a silent mismatch.
func ParseGrant(s string) (Grant, error) {
	for i := 0; i < len(s); i++ {
		if s[i] != ':' {
			continue
		}

		grant := Grant{Resource: Resource(s[:i]), Action: Action(s[i+1:])}
		if !grant.Valid() {
			return Grant{}, fmt.Errorf("perm: unknown grant %q", s)
		}
		return grant, nil
	}

	return Grant{}, fmt.Errorf("perm: malformed grant %q (want <Resource>:<action>)", s)
}

// # Roles

// RoleType classifies the audience a role belongs to.
type RoleType string

const (
	RoleTypePublic   RoleType = "public"
	RoleTypeAuthor   RoleType = "author"
	RoleTypeEditor   RoleType = "editor"
	RoleTypeReviewer RoleType = "reviewer"
)

// Canonical per-paper role names, created for every new paper.
const (
	RoleNameCorrespondingAuthor = "corresponding-author"
	RoleNameAuthor              = "author"
)

// Role is a named bundle of grants scoped to one owning entity.
type Role struct {
	ID               int       `json:"id"`
	Name             string    `json:"name"`
	ShortDescription string    `json:"short_description"`
	Description      string    `json:"description"`
	Type             RoleType  `json:"type"`
	IsOwner          bool      `json:"is_owner"`
	JournalID        *int      `json:"journal_id,omitempty"`
	PaperID          *int      `json:"paper_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Validate enforces owning-entity exclusivity: exactly one of
// JournalID/PaperID must be set, never both and never neither.
func (r Role) Validate() error {
	hasJournal := r.JournalID != nil
	hasPaper := r.PaperID != nil

	if hasJournal == hasPaper {
		return fmt.Errorf("perm: role %q must be scoped to exactly one of a journal or a paper", r.Name)
	}

	return nil
}

// # Permissions

// Permission is one persisted grant, belonging to a user or to a role.
//
// The scoping id fields narrow which entity instance the grant applies to;
// all of them may be nil for a type-wide grant.
type Permission struct {
	ID     int     `json:"id"`
	UserID *string `json:"user_id,omitempty"`
	RoleID *int    `json:"role_id,omitempty"`
	Grant  Grant   `json:"grant"`

	PaperID      *int `json:"paper_id,omitempty"`
	Version      *int `json:"version,omitempty"`
	EventID      *int `json:"event_id,omitempty"`
	ReviewID     *int `json:"review_id,omitempty"`
	CommentID    *int `json:"comment_id,omitempty"`
	SubmissionID *int `json:"submission_id,omitempty"`
	JournalID    *int `json:"journal_id,omitempty"`
}

// Validate enforces grantee exclusivity: exactly one of UserID/RoleID must
// be set, never both and never neither.
func (p Permission) Validate() error {
	hasUser := p.UserID != nil
	hasRole := p.RoleID != nil

	if hasUser == hasRole {
		return fmt.Errorf("perm: permission %s must belong to exactly one of a user or a role", p.Grant)
	}

	if !p.Grant.Valid() {
		return fmt.Errorf("perm: permission carries unknown grant %q", p.Grant)
	}

	return nil
}

// # Canonical Role Grant Sets

// CorrespondingAuthorGrants is the capability set of the elevated author
// role on a paper.
func CorrespondingAuthorGrants() []Grant {
	return []Grant{
		{ResourcePaper, ActionView},
		{ResourcePaper, ActionEdit},
		{ResourcePaper, ActionDelete},
		{ResourcePaper, ActionIdentify},
		{ResourcePaper, ActionReview},
		{ResourcePaper, ActionComment},
		{ResourcePaper, ActionCreateVersion},
	}
}

// AuthorGrants is the capability set of the ordinary author role on a paper.
func AuthorGrants() []Grant {
	return []Grant{
		{ResourcePaper, ActionView},
		{ResourcePaper, ActionIdentify},
		{ResourcePaper, ActionReview},
		{ResourcePaper, ActionComment},
	}
}

// # Draft Visibility

// MemberPermissions is the journal-membership level of a user, as stored on
// journals.member.
type MemberPermissions string

const (
	MemberOwner    MemberPermissions = "owner"
	MemberEditor   MemberPermissions = "editor"
	MemberReviewer MemberPermissions = "reviewer"
)

// DraftVisible is the canonical predicate deciding whether a draft paper P
// is visible to a user U through a submission S to a journal U belongs to.
//
// A draft submission is visible iff:
//
//	S.status != rejected
//	AND ( U is editor or owner of J
//	      OR (U is reviewer of J AND S.status == review) )
//	AND U is NOT an author of P
//
// Authors see their own drafts through the separate authored-drafts path,
// which has no status restriction. The SQL in
// [PostgresRepository.VisibleDraftSubmissions] mirrors this function clause
// for clause; change both together.
func DraftVisible(membership MemberPermissions, submissionStatus string, viewerIsAuthor bool) bool {
	if viewerIsAuthor {
		return false
	}

	if submissionStatus == "rejected" {
		return false
	}

	switch membership {
	case MemberOwner, MemberEditor:
		return true
	case MemberReviewer:
		return submissionStatus == "review"
	default:
		return false
	}
}
