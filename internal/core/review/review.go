// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

// Package review manages peer reviews of papers. A review targets one
// uploaded version of a paper and carries a recommendation; it stays a
// draft until its author submits it.
package review

import "time"

// Recommendations.
const (
	RecommendAccept         = "accept"
	RecommendMinorRevisions = "minor-revisions"
	RecommendMajorRevisions = "major-revisions"
	RecommendReject         = "reject"
)

// Review statuses.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
)

// Validation field names.
const (
	FieldSummary        = "summary"
	FieldRecommendation = "recommendation"
	FieldVersion        = "version"
)

type Review struct {
	ID             int       `json:"id"`
	PaperID        int       `json:"paper_id"`
	UserID         string    `json:"user_id"`
	Version        int       `json:"version"`
	Summary        string    `json:"summary"`
	Recommendation string    `json:"recommendation"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Filter narrows review listings.
type Filter struct {
	PaperID int
	UserID  string
	Status  string
}
