// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

/*
Package paper manages papers: metadata, author lists, uploaded PDF
versions and the event timeline with its visibility tags.

A draft paper is invisible except through the permission rules computed in
internal/perm; a draft flagged as preprint is publicly listed. Published
papers are public. Every uploaded revision is an immutable [Version] whose
PDF lives in object storage under a deterministic key.
*/
package paper

import "time"

// Validation field names.
const (
	FieldTitle   = "title"
	FieldAuthors = "authors"
	FieldRole    = "role"
	FieldUserID  = "user_id"
	FieldTag     = "tag"
	FieldFile    = "file"
)

// Paper is the root entity.
type Paper struct {
	ID           int        `json:"id"`
	Title        string     `json:"title"`
	IsDraft      bool       `json:"is_draft"`
	ShowPreprint bool       `json:"show_preprint"`
	Authors      []Author   `json:"authors,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"-"`
}

// Author is one entry of a paper's author list. Role names the paper role
// the author holds ("corresponding-author" or "author"); IsOwner marks the
// submitting author.
type Author struct {
	UserID  string `json:"user_id"`
	Order   int    `json:"order"`
	Role    string `json:"role"`
	IsOwner bool   `json:"is_owner"`
}

// Version is one immutable uploaded revision of the paper's PDF.
type Version struct {
	PaperID     int       `json:"paper_id"`
	Version     int       `json:"version"`
	FileKey     string    `json:"file_key"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Filter narrows paper listings.
type Filter struct {
	Query string

	// IDs restricts the listing to an explicit id set, used by the draft
	// and preprint visibility paths. A nil slice means no restriction; an
	// empty non-nil slice short-circuits to zero results.
	IDs []int

	// DraftsOnly / PublishedOnly narrow by lifecycle stage.
	DraftsOnly    bool
	PublishedOnly bool
}
