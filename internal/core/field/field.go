// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

// Package field manages the research-field taxonomy papers are filed
// under. Fields form a tree: a subfield points at its parent discipline.
package field

import "time"

// Field kinds.
const (
	TypeDiscipline = "discipline"
	TypeSubfield   = "subfield"
)

// Validation field names.
const (
	FieldName     = "name"
	FieldType     = "type"
	FieldParentID = "parent_id"
)

type Field struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Description *string    `json:"description,omitempty"`
	ParentID    *int       `json:"parent_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Filter narrows field listings.
type Filter struct {
	Query    string
	Type     string
	ParentID *int
}
