// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package journal

import (
	"context"
	"errors"
	"log/slog"

	"github.com/peerreview/journalhub/internal/notify"
	"github.com/peerreview/journalhub/internal/perm"
	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/dberr"
	"github.com/peerreview/journalhub/internal/platform/validate"
)

// Notifier queues a notification for one recipient. Implemented by
// jobs.NotifyEnqueuer; delivery happens on the worker, off the request path.
type Notifier interface {
	Notify(ctx context.Context, recipientID, key string, notifyContext *notify.Context) error
}

type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

func (service *Service) ListJournals(context context.Context, query string, limit, offset int) ([]*Journal, int, error) {
	return service.repo.ListJournals(context, query, limit, offset)
}

func (service *Service) GetJournal(context context.Context, id int) (*Journal, error) {
	return service.repo.GetJournal(context, id)
}

// CreateJournal creates the journal with the creator as its owner member.
// The owner is fixed at creation; membership management never reassigns it.
func (service *Service) CreateJournal(context context.Context, j *Journal, ownerID string) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, j.Name)
	validator.MaxLen(FieldName, j.Name, 200)
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.CreateJournal(context, j, ownerID); err != nil {
		return err
	}

	service.logger.Info("journal_created",
		slog.Int("journal_id", j.ID),
		slog.String("owner_id", ownerID),
	)
	return nil
}

func (service *Service) UpdateJournal(context context.Context, id int, actorID string, j *Journal) error {
	if _, err := service.requireEditor(context, id, actorID); err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, j.Name)
	validator.MaxLen(FieldName, j.Name, 200)
	if err := validator.Err(); err != nil {
		return err
	}

	j.ID = id
	return service.repo.UpdateJournal(context, j)
}

// DeleteJournal soft-deletes. Owner only.
func (service *Service) DeleteJournal(context context.Context, id int, actorID string) error {
	member, err := service.repo.GetMember(context, id, actorID)
	if err != nil {
		return apperr.Forbidden("Only the journal owner may delete it")
	}
	if member.Permissions != perm.MemberOwner {
		return apperr.Forbidden("Only the journal owner may delete it")
	}

	if err := service.repo.SoftDeleteJournal(context, id); err != nil {
		return err
	}

	service.logger.Info("journal_deleted", slog.Int("journal_id", id))
	return nil
}

// # Members

func (service *Service) ListMembers(context context.Context, journalID int, viewerID string) ([]*Member, error) {
	if _, err := service.repo.GetMember(context, journalID, viewerID); err != nil {
		return nil, apperr.Forbidden("Only journal members may view the member list")
	}
	return service.repo.ListMembers(context, journalID)
}

// AddMember adds a user at editor or reviewer level. Owner is not an
// assignable level: there is exactly one, set when the journal is created.
func (service *Service) AddMember(context context.Context, journalID int, actorID string, m *Member) error {
	actor, err := service.requireEditor(context, journalID, actorID)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.UUID(perm.FieldUserID, m.UserID)
	validator.OneOf(FieldPermissions, string(m.Permissions),
		string(perm.MemberEditor), string(perm.MemberReviewer))
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetMember(context, journalID, m.UserID); err == nil {
		return apperr.Conflict("User is already a member of this journal")
	}

	m.JournalID = journalID
	if err := service.repo.UpsertMember(context, m); err != nil {
		return err
	}

	service.notifyMember(context, m.UserID, "member.journal.member-added", journalID, actor.UserID)
	service.logger.Info("member_added",
		slog.Int("journal_id", journalID),
		slog.String("user_id", m.UserID),
		slog.String("permissions", string(m.Permissions)),
	)
	return nil
}

// ChangeMemberRole moves an existing member between editor and reviewer.
func (service *Service) ChangeMemberRole(context context.Context, journalID int, actorID string, m *Member) error {
	actor, err := service.requireEditor(context, journalID, actorID)
	if err != nil {
		return err
	}

	validator := &validate.Validator{}
	validator.OneOf(FieldPermissions, string(m.Permissions),
		string(perm.MemberEditor), string(perm.MemberReviewer))
	if err := validator.Err(); err != nil {
		return err
	}

	existing, err := service.repo.GetMember(context, journalID, m.UserID)
	if err != nil {
		return err
	}
	if existing.Permissions == perm.MemberOwner {
		return apperr.Conflict("The journal owner's role cannot be changed")
	}

	m.JournalID = journalID
	if err := service.repo.UpsertMember(context, m); err != nil {
		return err
	}

	service.notifyMember(context, m.UserID, "member.journal.role-changed", journalID, actor.UserID)
	service.logger.Info("member_role_changed",
		slog.Int("journal_id", journalID),
		slog.String("user_id", m.UserID),
		slog.String("permissions", string(m.Permissions)),
	)
	return nil
}

func (service *Service) RemoveMember(context context.Context, journalID int, actorID, userID string) error {
	if _, err := service.requireEditor(context, journalID, actorID); err != nil {
		return err
	}

	existing, err := service.repo.GetMember(context, journalID, userID)
	if err != nil {
		return err
	}
	if existing.Permissions == perm.MemberOwner {
		return apperr.Conflict("The journal owner cannot be removed")
	}

	return service.repo.RemoveMember(context, journalID, userID)
}

// # Submissions

// SubmitPaper sends a paper into a journal's pipeline. Only an author of
// the paper may submit it. Every editor-level member is notified.
func (service *Service) SubmitPaper(context context.Context, journalID, paperID int, submitterID string) (*Submission, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldPaperID, paperID <= 0, "must be a positive id")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repo.GetJournal(context, journalID); err != nil {
		return nil, err
	}

	isAuthor, err := service.repo.IsPaperAuthor(context, paperID, submitterID)
	if err != nil {
		return nil, err
	}
	if !isAuthor {
		return nil, apperr.Forbidden("Only an author of the paper may submit it")
	}

	s := &Submission{
		PaperID:     paperID,
		JournalID:   journalID,
		Status:      StatusSubmitted,
		SubmitterID: submitterID,
	}
	if err := service.repo.CreateSubmission(context, s); err != nil {
		return nil, err
	}

	service.notifyEditors(context, s)
	service.logger.Info("paper_submitted",
		slog.Int("submission_id", s.ID),
		slog.Int("journal_id", journalID),
		slog.Int("paper_id", paperID),
	)
	return s, nil
}

// ListSubmissions scopes the pipeline view to the viewer's membership:
// owners and editors see everything, reviewers only what is under review.
func (service *Service) ListSubmissions(context context.Context, journalID int, viewerID string) ([]*Submission, error) {
	member, err := service.repo.GetMember(context, journalID, viewerID)
	if err != nil {
		return nil, apperr.Forbidden("Only journal members may view submissions")
	}

	switch member.Permissions {
	case perm.MemberOwner, perm.MemberEditor:
		return service.repo.ListSubmissions(context, journalID, nil)
	default:
		return service.repo.ListSubmissions(context, journalID, []string{StatusReview})
	}
}

func (service *Service) GetSubmission(context context.Context, id int, viewerID string) (*Submission, error) {
	s, err := service.repo.GetSubmission(context, id)
	if err != nil {
		return nil, err
	}

	isAuthor, err := service.repo.IsPaperAuthor(context, s.PaperID, viewerID)
	if err != nil {
		return nil, err
	}
	if isAuthor {
		return s, nil
	}

	member, err := service.repo.GetMember(context, s.JournalID, viewerID)
	if err != nil {
		return nil, apperr.NotFound("Submission")
	}
	if member.Permissions == perm.MemberReviewer && s.Status != StatusReview {
		return nil, apperr.NotFound("Submission")
	}
	return s, nil
}

// Decide moves a submission along the pipeline. Editor-level members only;
// the move must be a legal pipeline step and wins only if the submission
// still holds the status the caller saw.
func (service *Service) Decide(context context.Context, id int, actorID, to string, decisionComment *string) (*Submission, error) {
	validator := &validate.Validator{}
	validator.OneOf(FieldStatus, to,
		StatusReview, StatusProofing, StatusPublished, StatusRejected)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	s, err := service.repo.GetSubmission(context, id)
	if err != nil {
		return nil, err
	}
	actor, err := service.requireEditor(context, s.JournalID, actorID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(s.Status, to) {
		return nil, apperr.ValidationError("Submission cannot move from " + s.Status + " to " + to)
	}

	updated, err := service.repo.UpdateSubmissionStatus(context, id, s.Status, to, decisionComment)
	if errors.Is(err, dberr.ErrNotFound) {
		return nil, apperr.Conflict("Submission was updated concurrently, retry")
	}
	if err != nil {
		return nil, err
	}

	service.notifySubmitter(context, updated, actor.UserID)
	service.logger.Info("submission_decided",
		slog.Int("submission_id", id),
		slog.String("from", s.Status),
		slog.String("to", to),
	)
	return updated, nil
}

// IsMemberOfPaperJournal is the membership check the paper timeline uses
// when classifying event visibility.
func (service *Service) IsMemberOfPaperJournal(context context.Context, paperID int, userID string) (bool, error) {
	return service.repo.IsMemberOfPaperJournal(context, paperID, userID)
}

// requireEditor resolves the actor's membership and rejects anything below
// editor level.
func (service *Service) requireEditor(context context.Context, journalID int, actorID string) (*Member, error) {
	member, err := service.repo.GetMember(context, journalID, actorID)
	if err != nil {
		return nil, apperr.Forbidden("Editor access to this journal is required")
	}
	if member.Permissions != perm.MemberOwner && member.Permissions != perm.MemberEditor {
		return nil, apperr.Forbidden("Editor access to this journal is required")
	}
	return member, nil
}

// # Notification fan-out
//
// Notification context is assembled best effort: a missing display name or
// title degrades the message, it never fails the operation.

func (service *Service) notifyMember(context context.Context, memberID, key string, journalID int, actorID string) {
	j, err := service.repo.GetJournal(context, journalID)
	if err != nil {
		service.logger.Warn("notify_context_failed", slog.String("key", key), slog.Any("error", err))
		return
	}

	actorName, _ := service.repo.DisplayName(context, actorID)
	notifyContext := &notify.Context{
		Journal: &notify.JournalRef{ID: j.ID, Name: j.Name},
		Editor:  &notify.UserRef{ID: actorID, Name: actorName},
	}

	if err := service.notifier.Notify(context, memberID, key, notifyContext); err != nil {
		service.logger.Warn("notify_enqueue_failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (service *Service) notifyEditors(context context.Context, s *Submission) {
	j, err := service.repo.GetJournal(context, s.JournalID)
	if err != nil {
		service.logger.Warn("notify_context_failed", slog.Any("error", err))
		return
	}
	members, err := service.repo.ListMembers(context, s.JournalID)
	if err != nil {
		service.logger.Warn("notify_context_failed", slog.Any("error", err))
		return
	}

	title, _ := service.repo.PaperTitle(context, s.PaperID)
	submitterName, _ := service.repo.DisplayName(context, s.SubmitterID)
	notifyContext := &notify.Context{
		Journal:             &notify.JournalRef{ID: j.ID, Name: j.Name},
		Paper:               &notify.PaperRef{ID: s.PaperID, Title: title},
		Submission:          &notify.SubmissionRef{ID: s.ID, PaperID: s.PaperID, JournalID: s.JournalID, Status: s.Status},
		CorrespondingAuthor: &notify.UserRef{ID: s.SubmitterID, Name: submitterName},
	}

	for _, member := range members {
		if member.Permissions == perm.MemberReviewer {
			continue
		}
		if err := service.notifier.Notify(context, member.UserID, "editor.journal.new-submission", notifyContext); err != nil {
			service.logger.Warn("notify_enqueue_failed", slog.String("user_id", member.UserID), slog.Any("error", err))
		}
	}
}

func (service *Service) notifySubmitter(context context.Context, s *Submission, actorID string) {
	j, err := service.repo.GetJournal(context, s.JournalID)
	if err != nil {
		service.logger.Warn("notify_context_failed", slog.Any("error", err))
		return
	}

	title, _ := service.repo.PaperTitle(context, s.PaperID)
	actorName, _ := service.repo.DisplayName(context, actorID)
	notifyContext := &notify.Context{
		Journal:    &notify.JournalRef{ID: j.ID, Name: j.Name},
		Paper:      &notify.PaperRef{ID: s.PaperID, Title: title},
		Submission: &notify.SubmissionRef{ID: s.ID, PaperID: s.PaperID, JournalID: s.JournalID, Status: s.Status},
		Editor:     &notify.UserRef{ID: actorID, Name: actorName},
	}

	if err := service.notifier.Notify(context, s.SubmitterID, "author.submission.decision", notifyContext); err != nil {
		service.logger.Warn("notify_enqueue_failed", slog.Any("error", err))
	}
}
