// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package paper

import (
	"context"
	"fmt"
	"strconv"

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

func (repository *PostgresRepository) ListPapers(context context.Context, f Filter, limit, offset int) ([]*Paper, int, error) {
	// An explicit empty id restriction can never match.
	if f.IDs != nil && len(f.IDs) == 0 {
		return nil, 0, nil
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.CorePaper.ID, schema.CorePaper.Title, schema.CorePaper.IsDraft,
		schema.CorePaper.ShowPreprint, schema.CorePaper.CreatedAt, schema.CorePaper.UpdatedAt,
		schema.CorePaper.Table, schema.CorePaper.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`,
		schema.CorePaper.Table, schema.CorePaper.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		clause := " AND " + schema.CorePaper.Title + " ILIKE $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, "%"+f.Query+"%")
		countArgs = append(countArgs, "%"+f.Query+"%")
	}
	if f.IDs != nil {
		clause := " AND " + schema.CorePaper.ID + " = ANY($" + strconv.Itoa(len(args)+1) + ")"
		query += clause
		countQuery += clause
		args = append(args, f.IDs)
		countArgs = append(countArgs, f.IDs)
	}
	if f.DraftsOnly {
		clause := " AND " + schema.CorePaper.IsDraft + " = TRUE"
		query += clause
		countQuery += clause
	}
	if f.PublishedOnly {
		clause := " AND " + schema.CorePaper.IsDraft + " = FALSE"
		query += clause
		countQuery += clause
	}

	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		schema.CorePaper.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_papers")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_papers")
	}
	defer rows.Close()

	var papers []*Paper
	for rows.Next() {
		p := &Paper{}
		err := rows.Scan(&p.ID, &p.Title, &p.IsDraft, &p.ShowPreprint, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_paper")
		}
		papers = append(papers, p)
	}

	return papers, total, nil
}

func (repository *PostgresRepository) GetPaper(context context.Context, id int) (*Paper, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CorePaper.ID, schema.CorePaper.Title, schema.CorePaper.IsDraft,
		schema.CorePaper.ShowPreprint, schema.CorePaper.CreatedAt, schema.CorePaper.UpdatedAt,
		schema.CorePaper.Table, schema.CorePaper.ID, schema.CorePaper.DeletedAt,
	)

	p := &Paper{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&p.ID, &p.Title, &p.IsDraft, &p.ShowPreprint, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_paper")
	}

	authors, err := repository.listAuthors(context, id)
	if err != nil {
		return nil, err
	}
	p.Authors = authors

	return p, nil
}

func (repository *PostgresRepository) listAuthors(context context.Context, paperID int) ([]Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CorePaperAuthor.UserID, schema.CorePaperAuthor.AuthorOrder,
		schema.CorePaperAuthor.Role, schema.CorePaperAuthor.IsOwner,
		schema.CorePaperAuthor.Table, schema.CorePaperAuthor.PaperID,
		schema.CorePaperAuthor.AuthorOrder,
	)

	rows, err := repository.db.Query(context, query, paperID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_paper_authors")
	}
	defer rows.Close()

	var authors []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.UserID, &a.Order, &a.Role, &a.IsOwner); err != nil {
			return nil, dberr.Wrap(err, "scan_paper_author")
		}
		authors = append(authors, a)
	}

	return authors, nil
}

func (repository *PostgresRepository) CreatePaper(context context.Context, p *Paper) error {
	paperQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CorePaper.Table, schema.CorePaper.Title, schema.CorePaper.IsDraft,
		schema.CorePaper.ShowPreprint, schema.CorePaper.CreatedAt, schema.CorePaper.UpdatedAt,
		schema.CorePaper.ID, schema.CorePaper.CreatedAt, schema.CorePaper.UpdatedAt,
	)
	authorQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.CorePaperAuthor.Table, schema.CorePaperAuthor.PaperID, schema.CorePaperAuthor.UserID,
		schema.CorePaperAuthor.AuthorOrder, schema.CorePaperAuthor.Role, schema.CorePaperAuthor.IsOwner,
	)

	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, paperQuery, p.Title, p.IsDraft, p.ShowPreprint).
			Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_paper")
		}

		for _, author := range p.Authors {
			_, err := tx.Exec(context, authorQuery, p.ID, author.UserID, author.Order, author.Role, author.IsOwner)
			if err != nil {
				return dberr.Wrap(err, "create_paper_author")
			}
		}
		return nil
	})
}

func (repository *PostgresRepository) UpdateFlags(context context.Context, id int, isDraft, showPreprint bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CorePaper.Table, schema.CorePaper.IsDraft, schema.CorePaper.ShowPreprint,
		schema.CorePaper.UpdatedAt, schema.CorePaper.ID, schema.CorePaper.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id, isDraft, showPreprint)
	if err != nil {
		return dberr.Wrap(err, "update_paper_flags")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) SoftDeletePaper(context context.Context, id int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CorePaper.Table, schema.CorePaper.DeletedAt, schema.CorePaper.ID, schema.CorePaper.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_paper")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) IsAuthor(context context.Context, paperID int, userID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CorePaperAuthor.Table, schema.CorePaperAuthor.PaperID, schema.CorePaperAuthor.UserID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, paperID, userID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check_paper_author")
	}
	return exists, nil
}

// # Versions

func (repository *PostgresRepository) ListVersions(context context.Context, paperID int) ([]*Version, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CorePaperVersion.PaperID, schema.CorePaperVersion.Version,
		schema.CorePaperVersion.FileKey, schema.CorePaperVersion.ContentType,
		schema.CorePaperVersion.CreatedAt,
		schema.CorePaperVersion.Table, schema.CorePaperVersion.PaperID,
		schema.CorePaperVersion.Version,
	)

	rows, err := repository.db.Query(context, query, paperID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_paper_versions")
	}
	defer rows.Close()

	var versions []*Version
	for rows.Next() {
		v := &Version{}
		if err := rows.Scan(&v.PaperID, &v.Version, &v.FileKey, &v.ContentType, &v.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_paper_version")
		}
		versions = append(versions, v)
	}

	return versions, nil
}

// LatestVersion returns 0 for a paper with no uploads yet.
func (repository *PostgresRepository) LatestVersion(context context.Context, paperID int) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) FROM %s WHERE %s = $1`,
		schema.CorePaperVersion.Version, schema.CorePaperVersion.Table, schema.CorePaperVersion.PaperID,
	)

	var latest int
	if err := repository.db.QueryRow(context, query, paperID).Scan(&latest); err != nil {
		return 0, dberr.Wrap(err, "latest_paper_version")
	}
	return latest, nil
}

func (repository *PostgresRepository) CreateVersion(context context.Context, v *Version) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`,
		schema.CorePaperVersion.Table, schema.CorePaperVersion.PaperID, schema.CorePaperVersion.Version,
		schema.CorePaperVersion.FileKey, schema.CorePaperVersion.ContentType, schema.CorePaperVersion.CreatedAt,
		schema.CorePaperVersion.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, v.PaperID, v.Version, v.FileKey, v.ContentType).
		Scan(&v.CreatedAt)
	return dberr.Wrap(err, "create_paper_version")
}

// # Timeline Events

func (repository *PostgresRepository) ListEvents(context context.Context, paperID int) ([]*Event, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.CorePaperEvent.ID, schema.CorePaperEvent.PaperID, schema.CorePaperEvent.ActorID,
		schema.CorePaperEvent.Type, schema.CorePaperEvent.Visibility, schema.CorePaperEvent.CreatedAt,
		schema.CorePaperEvent.Table, schema.CorePaperEvent.PaperID, schema.CorePaperEvent.ID,
	)

	rows, err := repository.db.Query(context, query, paperID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_paper_events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		if err := rows.Scan(&e.ID, &e.PaperID, &e.ActorID, &e.Type, &e.Visibility, &e.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_paper_event")
		}
		events = append(events, e)
	}

	return events, nil
}

func (repository *PostgresRepository) GetEvent(context context.Context, id int) (*Event, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CorePaperEvent.ID, schema.CorePaperEvent.PaperID, schema.CorePaperEvent.ActorID,
		schema.CorePaperEvent.Type, schema.CorePaperEvent.Visibility, schema.CorePaperEvent.CreatedAt,
		schema.CorePaperEvent.Table, schema.CorePaperEvent.ID,
	)

	e := &Event{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&e.ID, &e.PaperID, &e.ActorID, &e.Type, &e.Visibility, &e.CreatedAt,
	)

	return e, dberr.Wrap(err, "get_paper_event")
}

func (repository *PostgresRepository) CreateEvent(context context.Context, e *Event) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s, %s
	`,
		schema.CorePaperEvent.Table, schema.CorePaperEvent.PaperID, schema.CorePaperEvent.ActorID,
		schema.CorePaperEvent.Type, schema.CorePaperEvent.Visibility, schema.CorePaperEvent.CreatedAt,
		schema.CorePaperEvent.ID, schema.CorePaperEvent.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, e.PaperID, e.ActorID, e.Type, e.Visibility).
		Scan(&e.ID, &e.CreatedAt)
	return dberr.Wrap(err, "create_paper_event")
}

func (repository *PostgresRepository) UpdateEventVisibility(context context.Context, id int, visibility []string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CorePaperEvent.Table, schema.CorePaperEvent.Visibility, schema.CorePaperEvent.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, visibility)
	if err != nil {
		return dberr.Wrap(err, "update_event_visibility")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
