// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package perm

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerreview/journalhub/internal/platform/database/schema"
	"github.com/peerreview/journalhub/internal/platform/dberr"
	"github.com/peerreview/journalhub/internal/platform/postgres"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreatePaperRoles inserts the canonical corresponding-author and author
// roles for a paper, with their grant sets, in one transaction. Either both
// roles exist with all their grants afterwards or neither does.
func (repository *PostgresRepository) CreatePaperRoles(context context.Context, paperID int) ([]Role, error) {
	roleQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s, %s
	`,
		schema.CoreRole.Table, schema.CoreRole.Name, schema.CoreRole.ShortDescription,
		schema.CoreRole.Description, schema.CoreRole.Type, schema.CoreRole.IsOwner, schema.CoreRole.PaperID,
		schema.CoreRole.CreatedAt,
		schema.CoreRole.ID, schema.CoreRole.CreatedAt,
	)
	grantQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)`,
		schema.CoreRolePermission.Table, schema.CoreRolePermission.RoleID,
		schema.CoreRolePermission.Resource, schema.CoreRolePermission.Action,
	)

	seeds := []struct {
		name    string
		short   string
		desc    string
		isOwner bool
		grants  []Grant
	}{
		{
			name:    RoleNameCorrespondingAuthor,
			short:   "Corresponding author",
			desc:    "Submitting author with full control over the paper.",
			isOwner: true,
			grants:  CorrespondingAuthorGrants(),
		},
		{
			name:    RoleNameAuthor,
			short:   "Author",
			desc:    "Co-author with read and discussion access to the paper.",
			isOwner: false,
			grants:  AuthorGrants(),
		},
	}

	var roles []Role
	err := postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		roles = roles[:0]
		for _, seed := range seeds {
			role := Role{
				Name:             seed.name,
				ShortDescription: seed.short,
				Description:      seed.desc,
				Type:             RoleTypeAuthor,
				IsOwner:          seed.isOwner,
				PaperID:          &paperID,
			}

			err := tx.QueryRow(context, roleQuery,
				role.Name, role.ShortDescription, role.Description, role.Type, role.IsOwner, paperID,
			).Scan(&role.ID, &role.CreatedAt)
			if err != nil {
				return dberr.Wrap(err, "create_paper_role")
			}

			for _, grant := range seed.grants {
				if _, err := tx.Exec(context, grantQuery, role.ID, grant.Resource, grant.Action); err != nil {
					return dberr.Wrap(err, "create_role_grant")
				}
			}

			roles = append(roles, role)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return roles, nil
}

// AssignPaperRoles links each author to the paper role named in their
// [AuthorRef], in one transaction. Role names are matched against the roles
// that exist for the paper, never against a default.
func (repository *PostgresRepository) AssignPaperRoles(context context.Context, paperID int, authors []AuthorRef) error {
	roles, err := repository.RolesForPaper(context, paperID)
	if err != nil {
		return err
	}

	byName := make(map[string]Role, len(roles))
	for _, role := range roles {
		byName[role.Name] = role
	}

	assignQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, NOW())
		ON CONFLICT DO NOTHING
	`,
		schema.CoreUserRole.Table, schema.CoreUserRole.UserID, schema.CoreUserRole.RoleID,
		schema.CoreUserRole.CreatedAt,
	)

	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		for _, author := range authors {
			role, ok := byName[author.RoleName]
			if !ok {
				return fmt.Errorf("perm: paper %d has no role named %q for user %s", paperID, author.RoleName, author.UserID)
			}

			if _, err := tx.Exec(context, assignQuery, author.UserID, role.ID); err != nil {
				return dberr.Wrap(err, "assign_paper_role")
			}
		}
		return nil
	})
}

func (repository *PostgresRepository) RolesForPaper(context context.Context, paperID int) ([]Role, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CoreRole.ID, schema.CoreRole.Name, schema.CoreRole.ShortDescription,
		schema.CoreRole.Description, schema.CoreRole.Type, schema.CoreRole.IsOwner,
		schema.CoreRole.JournalID, schema.CoreRole.PaperID, schema.CoreRole.CreatedAt,
		schema.CoreRole.Table, schema.CoreRole.PaperID, schema.CoreRole.ID,
	)

	rows, err := repository.db.Query(context, query, paperID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_paper_roles")
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		err := rows.Scan(
			&role.ID, &role.Name, &role.ShortDescription, &role.Description, &role.Type,
			&role.IsOwner, &role.JournalID, &role.PaperID, &role.CreatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_paper_role")
		}
		roles = append(roles, role)
	}

	return roles, nil
}

// GrantsForUser returns the union of the user's direct grants on a paper
// and the grants of every paper role the user holds.
func (repository *PostgresRepository) GrantsForUser(context context.Context, userID string, paperID int) ([]Grant, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s
		FROM %s p
		WHERE p.%s = $1 AND p.%s = $2

		UNION

		SELECT rp.%s, rp.%s
		FROM %s rp
		JOIN %s r ON r.%s = rp.%s
		JOIN %s ur ON ur.%s = r.%s
		WHERE ur.%s = $1 AND r.%s = $2
	`,
		schema.CorePermission.Resource, schema.CorePermission.Action,
		schema.CorePermission.Table,
		schema.CorePermission.UserID, schema.CorePermission.PaperID,

		schema.CoreRolePermission.Resource, schema.CoreRolePermission.Action,
		schema.CoreRolePermission.Table,
		schema.CoreRole.Table, schema.CoreRole.ID, schema.CoreRolePermission.RoleID,
		schema.CoreUserRole.Table, schema.CoreUserRole.RoleID, schema.CoreRole.ID,
		schema.CoreUserRole.UserID, schema.CoreRole.PaperID,
	)

	rows, err := repository.db.Query(context, query, userID, paperID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_user_grants")
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var grant Grant
		if err := rows.Scan(&grant.Resource, &grant.Action); err != nil {
			return nil, dberr.Wrap(err, "scan_user_grant")
		}
		if !grant.Valid() {
			return nil, fmt.Errorf("perm: stored grant %q is outside the known set", grant)
		}
		grants = append(grants, grant)
	}

	return grants, nil
}

// VisibleDraftSubmissions returns the ids of draft papers the user may see
// through journal membership. The WHERE clause mirrors [DraftVisible]:
// rejected submissions are never visible, editors and owners see every other
// status, reviewers see status 'review' only, and authors are excluded here
// because their drafts come from [PostgresRepository.AuthoredDrafts].
func (repository *PostgresRepository) VisibleDraftSubmissions(context context.Context, userID string) ([]int, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT s.%s
		FROM %s s
		JOIN %s m ON m.%s = s.%s
		JOIN %s p ON p.%s = s.%s
		WHERE m.%s = $1
		  AND p.%s = TRUE
		  AND p.%s IS NULL
		  AND s.%s <> 'rejected'
		  AND (
		        m.%s IN ('owner', 'editor')
		        OR (m.%s = 'reviewer' AND s.%s = 'review')
		  )
		  AND NOT EXISTS (
		        SELECT 1 FROM %s pa
		        WHERE pa.%s = s.%s AND pa.%s = $1
		  )
	`,
		schema.JournalsSubmission.PaperID,
		schema.JournalsSubmission.Table,
		schema.JournalsMember.Table, schema.JournalsMember.JournalID, schema.JournalsSubmission.JournalID,
		schema.CorePaper.Table, schema.CorePaper.ID, schema.JournalsSubmission.PaperID,
		schema.JournalsMember.UserID,
		schema.CorePaper.IsDraft,
		schema.CorePaper.DeletedAt,
		schema.JournalsSubmission.Status,
		schema.JournalsMember.Permissions,
		schema.JournalsMember.Permissions, schema.JournalsSubmission.Status,
		schema.CorePaperAuthor.Table,
		schema.CorePaperAuthor.PaperID, schema.JournalsSubmission.PaperID, schema.CorePaperAuthor.UserID,
	)

	return repository.paperIDs(context, query, "visible_draft_submissions", userID)
}

// AuthoredDrafts returns the ids of draft papers the user co-authors,
// regardless of submission status.
func (repository *PostgresRepository) AuthoredDrafts(context context.Context, userID string) ([]int, error) {
	query := fmt.Sprintf(`
		SELECT p.%s
		FROM %s p
		JOIN %s pa ON pa.%s = p.%s
		WHERE pa.%s = $1 AND p.%s = TRUE AND p.%s IS NULL
		ORDER BY p.%s ASC
	`,
		schema.CorePaper.ID,
		schema.CorePaper.Table,
		schema.CorePaperAuthor.Table, schema.CorePaperAuthor.PaperID, schema.CorePaper.ID,
		schema.CorePaperAuthor.UserID, schema.CorePaper.IsDraft, schema.CorePaper.DeletedAt,
		schema.CorePaper.ID,
	)

	return repository.paperIDs(context, query, "authored_drafts", userID)
}

// Preprints returns the ids of draft papers whose authors opted into public
// preprint visibility.
func (repository *PostgresRepository) Preprints(context context.Context) ([]int, error) {
	query := fmt.Sprintf(`
		SELECT p.%s
		FROM %s p
		WHERE p.%s = TRUE AND p.%s = TRUE AND p.%s IS NULL
		ORDER BY p.%s ASC
	`,
		schema.CorePaper.ID,
		schema.CorePaper.Table,
		schema.CorePaper.IsDraft, schema.CorePaper.ShowPreprint, schema.CorePaper.DeletedAt,
		schema.CorePaper.ID,
	)

	return repository.paperIDs(context, query, "preprints")
}

func (repository *PostgresRepository) paperIDs(context context.Context, query, op string, args ...any) ([]int, error) {
	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, op)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "scan_"+op)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
