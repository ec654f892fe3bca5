// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package journal manages journals, their memberships and the submissions
that tie papers to them.

A submission's status is a one-way pipeline: submitted → review →
proofing → published, with rejected reachable from any non-terminal
stage. Published and rejected are terminal. Membership levels (owner,
editor, reviewer) drive both what a member may do here and what drafts
they may see through the permission queries.
*/
package journal

import (
	"time"

	"github.com/peerreview/journalhub/internal/perm"
)

// Submission statuses.
const (
	StatusSubmitted = "submitted"
	StatusReview    = "review"
	StatusProofing  = "proofing"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

// submissionTransitions is the status pipeline.
var submissionTransitions = map[string][]string{
	StatusSubmitted: {StatusReview, StatusRejected},
	StatusReview:    {StatusProofing, StatusRejected},
	StatusProofing:  {StatusPublished, StatusRejected},
}

// CanTransition reports whether the pipeline allows from → to.
func CanTransition(from, to string) bool {
	for _, allowed := range submissionTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status ends the pipeline.
func Terminal(status string) bool {
	return status == StatusPublished || status == StatusRejected
}

// Validation field names.
const (
	FieldName        = "name"
	FieldPermissions = "permissions"
	FieldStatus      = "status"
	FieldPaperID     = "paper_id"
)

type Journal struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Member links a user to a journal at one permission level.
type Member struct {
	JournalID   int                    `json:"journal_id"`
	UserID      string                 `json:"user_id"`
	Permissions perm.MemberPermissions `json:"permissions"`
	CreatedAt   time.Time              `json:"created_at"`
}

// Submission associates a paper with a journal it was sent to.
type Submission struct {
	ID              int       `json:"id"`
	PaperID         int       `json:"paper_id"`
	JournalID       int       `json:"journal_id"`
	Status          string    `json:"status"`
	DecisionComment *string   `json:"decision_comment,omitempty"`
	SubmitterID     string    `json:"submitter_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
