// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

import (
	"context"
	"log/slog"

	"github.com/peerreview/journalhub/internal/perm"
	"github.com/peerreview/journalhub/internal/platform/apperr"
	"github.com/peerreview/journalhub/internal/platform/storage"
	"github.com/peerreview/journalhub/internal/platform/validate"
)

// AccessManager is the slice of the permission service papers depend on.
type AccessManager interface {
	SetupPaperAccess(ctx context.Context, paperID int, authors []perm.AuthorRef) error
	Can(ctx context.Context, userID string, paperID int, grant perm.Grant) (bool, error)
	VisibleDraftSubmissions(ctx context.Context, userID string) ([]int, error)
	AuthoredDrafts(ctx context.Context, userID string) ([]int, error)
	Preprints(ctx context.Context) ([]int, error)
}

// FileStore is the object-storage slice papers depend on.
type FileStore interface {
	Upload(ctx context.Context, key string, content []byte, contentType string) error
	Download(ctx context.Context, key string) ([]byte, error)
}

// MembershipChecker reports whether a user belongs to any journal the
// paper was submitted to. Implemented by the journal repository.
type MembershipChecker interface {
	IsMemberOfPaperJournal(ctx context.Context, paperID int, userID string) (bool, error)
}

type Service struct {
	repo    Repository
	access  AccessManager
	files   FileStore
	members MembershipChecker
	logger  *slog.Logger
}

func NewService(repo Repository, access AccessManager, files FileStore, members MembershipChecker, logger *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		access:  access,
		files:   files,
		members: members,
		logger:  logger,
	}
}

// ListPublished lists published papers, publicly.
func (service *Service) ListPublished(context context.Context, filter Filter, limit, offset int) ([]*Paper, int, error) {
	filter.PublishedOnly = true
	return service.repo.ListPapers(context, filter, limit, offset)
}

// ListDrafts lists the drafts the user may see: their own plus the ones
// visible through journal membership. The id sets come from the permission
// queries; no paper graph is loaded just to be filtered.
func (service *Service) ListDrafts(context context.Context, userID string, limit, offset int) ([]*Paper, int, error) {
	authored, err := service.access.AuthoredDrafts(context, userID)
	if err != nil {
		return nil, 0, err
	}
	visible, err := service.access.VisibleDraftSubmissions(context, userID)
	if err != nil {
		return nil, 0, err
	}

	filter := Filter{IDs: mergeIDs(authored, visible), DraftsOnly: true}
	return service.repo.ListPapers(context, filter, limit, offset)
}

// ListPreprints lists drafts whose authors opted into public preprint
// visibility.
func (service *Service) ListPreprints(context context.Context, limit, offset int) ([]*Paper, int, error) {
	ids, err := service.access.Preprints(context)
	if err != nil {
		return nil, 0, err
	}

	return service.repo.ListPapers(context, Filter{IDs: ids, DraftsOnly: true}, limit, offset)
}

// GetPaper fetches a paper, enforcing draft visibility. An invisible draft
// reads as not found rather than forbidden, so its existence leaks
// nothing.
func (service *Service) GetPaper(context context.Context, id int, viewerID string) (*Paper, error) {
	p, err := service.repo.GetPaper(context, id)
	if err != nil {
		return nil, err
	}

	if !p.IsDraft || p.ShowPreprint {
		return p, nil
	}

	visible, err := service.draftVisible(context, id, viewerID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperr.NotFound("Paper")
	}
	return p, nil
}

func (service *Service) draftVisible(context context.Context, paperID int, viewerID string) (bool, error) {
	if viewerID == "" {
		return false, nil
	}

	isAuthor, err := service.repo.IsAuthor(context, paperID, viewerID)
	if err != nil {
		return false, err
	}
	if isAuthor {
		return true, nil
	}

	visible, err := service.access.VisibleDraftSubmissions(context, viewerID)
	if err != nil {
		return false, err
	}
	for _, id := range visible {
		if id == paperID {
			return true, nil
		}
	}
	return false, nil
}

// CreatePaper persists a new draft with its author list, then creates and
// assigns the canonical paper roles.
func (service *Service) CreatePaper(context context.Context, p *Paper) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, p.Title).MaxLen(FieldTitle, p.Title, 500)
	validator.Custom(FieldAuthors, len(p.Authors) == 0, "a paper needs at least one author")

	owners := 0
	for _, author := range p.Authors {
		validator.UUID(FieldUserID, author.UserID)
		validator.OneOf(FieldRole, author.Role, perm.RoleNameCorrespondingAuthor, perm.RoleNameAuthor)
		if author.IsOwner {
			owners++
		}
	}
	validator.Custom(FieldAuthors, len(p.Authors) > 0 && owners != 1, "exactly one author must be the corresponding owner")
	if err := validator.Err(); err != nil {
		return err
	}

	p.IsDraft = true
	if err := service.repo.CreatePaper(context, p); err != nil {
		return err
	}

	refs := make([]perm.AuthorRef, 0, len(p.Authors))
	for _, author := range p.Authors {
		refs = append(refs, perm.AuthorRef{UserID: author.UserID, RoleName: author.Role, IsOwner: author.IsOwner})
	}
	if err := service.access.SetupPaperAccess(context, p.ID, refs); err != nil {
		return err
	}

	service.logger.Info("paper_created",
		slog.Int("paper_id", p.ID),
		slog.Int("authors", len(p.Authors)),
	)
	return nil
}

// UpdatePaper is a deliberate stub; metadata edits go through dedicated
// operations (flags, versions, events).
func (service *Service) UpdatePaper(context context.Context, id int) error {
	return apperr.NotImplemented("Paper update")
}

// SetFlags flips the draft/preprint flags, gated on the edit grant.
func (service *Service) SetFlags(context context.Context, id int, actorID string, isDraft, showPreprint bool) error {
	if err := service.requireGrant(context, actorID, id, perm.ActionEdit); err != nil {
		return err
	}

	if err := service.repo.UpdateFlags(context, id, isDraft, showPreprint); err != nil {
		return err
	}

	service.logger.Info("paper_flags_updated",
		slog.Int("paper_id", id),
		slog.Bool("is_draft", isDraft),
		slog.Bool("show_preprint", showPreprint),
	)
	return nil
}

// DeletePaper soft-deletes, gated on the delete grant (held by the
// corresponding author role).
func (service *Service) DeletePaper(context context.Context, id int, actorID string) error {
	if err := service.requireGrant(context, actorID, id, perm.ActionDelete); err != nil {
		return err
	}

	if err := service.repo.SoftDeletePaper(context, id); err != nil {
		return err
	}

	service.logger.Warn("paper_deleted", slog.Int("paper_id", id), slog.String("actor_id", actorID))
	return nil
}

func (service *Service) requireGrant(context context.Context, actorID string, paperID int, action perm.Action) error {
	allowed, err := service.access.Can(context, actorID, paperID, perm.Grant{Resource: perm.ResourcePaper, Action: action})
	if err != nil {
		return err
	}
	if !allowed {
		return apperr.Forbidden("You do not have permission to do that on this paper")
	}
	return nil
}

// # Versions

// UploadVersion stores the PDF under its deterministic key and records the
// next version number. Requires the create-version grant.
func (service *Service) UploadVersion(context context.Context, paperID int, actorID string, content []byte, contentType, extension string) (*Version, error) {
	validator := &validate.Validator{}
	validator.Custom(FieldFile, len(content) == 0, "file content is required")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if err := service.requireGrant(context, actorID, paperID, perm.ActionCreateVersion); err != nil {
		return nil, err
	}

	p, err := service.repo.GetPaper(context, paperID)
	if err != nil {
		return nil, err
	}

	latest, err := service.repo.LatestVersion(context, paperID)
	if err != nil {
		return nil, err
	}

	version := &Version{
		PaperID:     paperID,
		Version:     latest + 1,
		FileKey:     storage.PaperKey(paperID, latest+1, p.Title, extension),
		ContentType: contentType,
	}

	if err := service.files.Upload(context, version.FileKey, content, contentType); err != nil {
		return nil, err
	}
	if err := service.repo.CreateVersion(context, version); err != nil {
		return nil, err
	}

	event := &Event{
		PaperID:    paperID,
		ActorID:    actorID,
		Type:       "version-uploaded",
		Visibility: []string{TagAuthors, TagCorrespondingAuthor, TagEditors},
	}
	if err := service.repo.CreateEvent(context, event); err != nil {
		return nil, err
	}

	service.logger.Info("paper_version_uploaded",
		slog.Int("paper_id", paperID),
		slog.Int("version", version.Version),
		slog.String("file_key", version.FileKey),
	)
	return version, nil
}

func (service *Service) ListVersions(context context.Context, paperID int) ([]*Version, error) {
	return service.repo.ListVersions(context, paperID)
}

// DownloadVersion streams back one stored revision, gated on the view
// grant for drafts.
func (service *Service) DownloadVersion(context context.Context, paperID, versionNumber int, viewerID string) ([]byte, string, error) {
	if _, err := service.GetPaper(context, paperID, viewerID); err != nil {
		return nil, "", err
	}

	versions, err := service.repo.ListVersions(context, paperID)
	if err != nil {
		return nil, "", err
	}

	for _, v := range versions {
		if v.Version != versionNumber {
			continue
		}
		content, err := service.files.Download(context, v.FileKey)
		if err != nil {
			return nil, "", err
		}
		return content, v.ContentType, nil
	}

	return nil, "", apperr.NotFound("Paper version")
}

// # Timeline

// ClassifiedEvent pairs an event with its display safety for the viewer.
type ClassifiedEvent struct {
	*Event
	Safety Safety `json:"safety"`
}

// Timeline returns the paper's events the viewer may see, each classified
// for display. Restricted events are withheld from viewers outside every
// visibility class.
func (service *Service) Timeline(context context.Context, paperID int, viewerID string) ([]ClassifiedEvent, error) {
	if _, err := service.GetPaper(context, paperID, viewerID); err != nil {
		return nil, err
	}

	events, err := service.repo.ListEvents(context, paperID)
	if err != nil {
		return nil, err
	}

	viewer := Viewer{}
	if viewerID != "" {
		if viewer.IsPaperAuthor, err = service.repo.IsAuthor(context, paperID, viewerID); err != nil {
			return nil, err
		}
		if viewer.IsJournalMember, err = service.members.IsMemberOfPaperJournal(context, paperID, viewerID); err != nil {
			return nil, err
		}
	}

	classified := make([]ClassifiedEvent, 0, len(events))
	for _, event := range events {
		if !VisibleTo(*event, viewer, viewerID) {
			continue
		}
		classified = append(classified, ClassifiedEvent{Event: event, Safety: Classify(*event, viewer)})
	}
	return classified, nil
}

// RecordEvent appends a timeline event. An empty visibility set defaults
// to public; unknown tags are rejected.
func (service *Service) RecordEvent(context context.Context, event *Event) error {
	if len(event.Visibility) == 0 {
		event.Visibility = []string{TagPublic}
	}
	if err := event.Validate(); err != nil {
		return apperr.ValidationError(err.Error())
	}

	return service.repo.CreateEvent(context, event)
}

// ToggleEventTag flips one visibility tag on an event and persists the new
// full set. Requires the edit grant on the owning paper. Flipping the last
// tag off is rejected: a persisted event always names at least one viewer
// class.
func (service *Service) ToggleEventTag(context context.Context, eventID int, tag, actorID string) (*Event, error) {
	validator := &validate.Validator{}
	validator.Required(FieldTag, tag)
	validator.Custom(FieldTag, tag != "" && !ValidTag(tag), "unknown visibility tag")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	event, err := service.repo.GetEvent(context, eventID)
	if err != nil {
		return nil, err
	}

	if err := service.requireGrant(context, actorID, event.PaperID, perm.ActionEdit); err != nil {
		return nil, err
	}

	toggled := ToggleTag(event.Visibility, tag)
	if len(toggled) == 0 {
		return nil, apperr.ValidationError("an event must keep at least one visibility tag")
	}

	if err := service.repo.UpdateEventVisibility(context, eventID, toggled); err != nil {
		return nil, err
	}
	event.Visibility = toggled

	service.logger.Info("event_visibility_toggled",
		slog.Int("event_id", eventID),
		slog.String("tag", tag),
	)
	return event, nil
}

// mergeIDs unions two id sets, preserving first-seen order.
func mergeIDs(a, b []int) []int {
	seen := make(map[int]bool, len(a)+len(b))
	out := make([]int, 0, len(a)+len(b))
	for _, id := range a {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range b {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
