// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

import "context"

// Repository defines the data access contract for papers, versions and
// timeline events.
type Repository interface {
	ListPapers(ctx context.Context, f Filter, limit, offset int) ([]*Paper, int, error)

	// GetPaper returns the paper with its author list.
	GetPaper(ctx context.Context, id int) (*Paper, error)

	// CreatePaper persists the paper and its author rows atomically.
	CreatePaper(ctx context.Context, p *Paper) error

	// UpdateFlags flips the draft / preprint flags.
	UpdateFlags(ctx context.Context, id int, isDraft, showPreprint bool) error

	SoftDeletePaper(ctx context.Context, id int) error

	IsAuthor(ctx context.Context, paperID int, userID string) (bool, error)

	// Versions.
	ListVersions(ctx context.Context, paperID int) ([]*Version, error)
	LatestVersion(ctx context.Context, paperID int) (int, error)
	CreateVersion(ctx context.Context, v *Version) error

	// Timeline events.
	ListEvents(ctx context.Context, paperID int) ([]*Event, error)
	GetEvent(ctx context.Context, id int) (*Event, error)
	CreateEvent(ctx context.Context, e *Event) error

	// UpdateEventVisibility persists a full replacement visibility set,
	// keyed by event id only.
	UpdateEventVisibility(ctx context.Context, id int, visibility []string) error
}
