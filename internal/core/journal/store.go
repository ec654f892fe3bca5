// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package journal

import (
	"context"
)

type Repository interface {
	// CreateJournal persists the journal and its owner membership atomically.
	CreateJournal(ctx context.Context, j *Journal, ownerID string) error
	GetJournal(ctx context.Context, id int) (*Journal, error)
	ListJournals(ctx context.Context, query string, limit, offset int) ([]*Journal, int, error)
	UpdateJournal(ctx context.Context, j *Journal) error
	SoftDeleteJournal(ctx context.Context, id int) error

	// Members.
	ListMembers(ctx context.Context, journalID int) ([]*Member, error)
	GetMember(ctx context.Context, journalID int, userID string) (*Member, error)
	UpsertMember(ctx context.Context, m *Member) error
	RemoveMember(ctx context.Context, journalID int, userID string) error

	// Submissions.
	CreateSubmission(ctx context.Context, s *Submission) error
	GetSubmission(ctx context.Context, id int) (*Submission, error)
	ListSubmissions(ctx context.Context, journalID int, statuses []string) ([]*Submission, error)

	// UpdateSubmissionStatus moves a submission from one status to another
	// only when it still holds the expected current status, and returns the
	// updated row. A lost race surfaces as dberr.ErrNotFound.
	UpdateSubmissionStatus(ctx context.Context, id int, from, to string, decisionComment *string) (*Submission, error)

	// Cross-slice lookups.
	IsPaperAuthor(ctx context.Context, paperID int, userID string) (bool, error)
	IsMemberOfPaperJournal(ctx context.Context, paperID int, userID string) (bool, error)
	PaperTitle(ctx context.Context, paperID int) (string, error)
	DisplayName(ctx context.Context, userID string) (string, error)
}

var _ Repository = (*PostgresRepository)(nil)
