// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package journal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerreview/journalhub/internal/perm"
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

func (repository *PostgresRepository) CreateJournal(context context.Context, j *Journal, ownerID string) error {
	journalQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.JournalsJournal.Table, schema.JournalsJournal.Name, schema.JournalsJournal.Description,
		schema.JournalsJournal.CreatedAt, schema.JournalsJournal.UpdatedAt,
		schema.JournalsJournal.ID, schema.JournalsJournal.CreatedAt, schema.JournalsJournal.UpdatedAt,
	)
	memberQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
	`,
		schema.JournalsMember.Table, schema.JournalsMember.JournalID,
		schema.JournalsMember.UserID, schema.JournalsMember.Permissions,
		schema.JournalsMember.CreatedAt,
	)

	return postgres.WithTx(context, repository.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(context, journalQuery, j.Name, j.Description).
			Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)
		if err != nil {
			return dberr.Wrap(err, "create_journal")
		}

		if _, err := tx.Exec(context, memberQuery, j.ID, ownerID, perm.MemberOwner); err != nil {
			return dberr.Wrap(err, "create_journal_owner")
		}
		return nil
	})
}

func (repository *PostgresRepository) GetJournal(context context.Context, id int) (*Journal, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.JournalsJournal.ID, schema.JournalsJournal.Name, schema.JournalsJournal.Description,
		schema.JournalsJournal.CreatedAt, schema.JournalsJournal.UpdatedAt,
		schema.JournalsJournal.Table,
		schema.JournalsJournal.ID, schema.JournalsJournal.DeletedAt,
	)

	j := &Journal{}
	err := repository.db.QueryRow(context, query, id).
		Scan(&j.ID, &j.Name, &j.Description, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_journal")
	}
	return j, nil
}

func (repository *PostgresRepository) ListJournals(context context.Context, searchQuery string, limit, offset int) ([]*Journal, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.JournalsJournal.ID, schema.JournalsJournal.Name, schema.JournalsJournal.Description,
		schema.JournalsJournal.CreatedAt, schema.JournalsJournal.UpdatedAt,
		schema.JournalsJournal.Table,
		schema.JournalsJournal.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`,
		schema.JournalsJournal.Table, schema.JournalsJournal.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if searchQuery != "" {
		clause := " AND " + schema.JournalsJournal.Name + " ILIKE $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, "%"+searchQuery+"%")
		countArgs = append(countArgs, "%"+searchQuery+"%")
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d",
		schema.JournalsJournal.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_journals")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_journals")
	}
	defer rows.Close()

	var journals []*Journal
	for rows.Next() {
		j := &Journal{}
		if err := rows.Scan(&j.ID, &j.Name, &j.Description, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_journal")
		}
		journals = append(journals, j)
	}
	return journals, total, rows.Err()
}

func (repository *PostgresRepository) UpdateJournal(context context.Context, j *Journal) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3 AND %s IS NULL
		RETURNING %s
	`,
		schema.JournalsJournal.Table,
		schema.JournalsJournal.Name, schema.JournalsJournal.Description, schema.JournalsJournal.UpdatedAt,
		schema.JournalsJournal.ID, schema.JournalsJournal.DeletedAt,
		schema.JournalsJournal.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, j.Name, j.Description, j.ID).Scan(&j.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_journal")
	}
	return nil
}

func (repository *PostgresRepository) SoftDeleteJournal(context context.Context, id int) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = NOW()
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.JournalsJournal.Table, schema.JournalsJournal.DeletedAt,
		schema.JournalsJournal.ID, schema.JournalsJournal.DeletedAt,
	)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_journal")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) ListMembers(context context.Context, journalID int) ([]*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s ASC
	`,
		schema.JournalsMember.JournalID, schema.JournalsMember.UserID,
		schema.JournalsMember.Permissions, schema.JournalsMember.CreatedAt,
		schema.JournalsMember.Table,
		schema.JournalsMember.JournalID,
		schema.JournalsMember.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, journalID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_members")
	}
	defer rows.Close()

	var members []*Member
	for rows.Next() {
		m := &Member{}
		if err := rows.Scan(&m.JournalID, &m.UserID, &m.Permissions, &m.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_member")
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (repository *PostgresRepository) GetMember(context context.Context, journalID int, userID string) (*Member, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = $2
	`,
		schema.JournalsMember.JournalID, schema.JournalsMember.UserID,
		schema.JournalsMember.Permissions, schema.JournalsMember.CreatedAt,
		schema.JournalsMember.Table,
		schema.JournalsMember.JournalID, schema.JournalsMember.UserID,
	)

	m := &Member{}
	err := repository.db.QueryRow(context, query, journalID, userID).
		Scan(&m.JournalID, &m.UserID, &m.Permissions, &m.CreatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "get_member")
	}
	return m, nil
}

func (repository *PostgresRepository) UpsertMember(context context.Context, m *Member) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s
		RETURNING %s
	`,
		schema.JournalsMember.Table, schema.JournalsMember.JournalID,
		schema.JournalsMember.UserID, schema.JournalsMember.Permissions,
		schema.JournalsMember.CreatedAt,
		schema.JournalsMember.JournalID, schema.JournalsMember.UserID,
		schema.JournalsMember.Permissions, schema.JournalsMember.Permissions,
		schema.JournalsMember.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, m.JournalID, m.UserID, m.Permissions).Scan(&m.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "upsert_member")
	}
	return nil
}

func (repository *PostgresRepository) RemoveMember(context context.Context, journalID int, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE %s = $1 AND %s = $2
	`,
		schema.JournalsMember.Table, schema.JournalsMember.JournalID, schema.JournalsMember.UserID,
	)

	tag, err := repository.db.Exec(context, query, journalID, userID)
	if err != nil {
		return dberr.Wrap(err, "remove_member")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) CreateSubmission(context context.Context, s *Submission) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.JournalsSubmission.Table, schema.JournalsSubmission.PaperID,
		schema.JournalsSubmission.JournalID, schema.JournalsSubmission.Status,
		schema.JournalsSubmission.SubmitterID,
		schema.JournalsSubmission.CreatedAt, schema.JournalsSubmission.UpdatedAt,
		schema.JournalsSubmission.ID, schema.JournalsSubmission.CreatedAt, schema.JournalsSubmission.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, s.PaperID, s.JournalID, s.Status, s.SubmitterID).
		Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_submission")
	}
	return nil
}

func (repository *PostgresRepository) GetSubmission(context context.Context, id int) (*Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.JournalsSubmission.ID, schema.JournalsSubmission.PaperID,
		schema.JournalsSubmission.JournalID, schema.JournalsSubmission.Status,
		schema.JournalsSubmission.DecisionComment, schema.JournalsSubmission.SubmitterID,
		schema.JournalsSubmission.CreatedAt, schema.JournalsSubmission.UpdatedAt,
		schema.JournalsSubmission.Table,
		schema.JournalsSubmission.ID,
	)

	s := &Submission{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&s.ID, &s.PaperID, &s.JournalID, &s.Status,
		&s.DecisionComment, &s.SubmitterID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_submission")
	}
	return s, nil
}

func (repository *PostgresRepository) ListSubmissions(context context.Context, journalID int, statuses []string) ([]*Submission, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.JournalsSubmission.ID, schema.JournalsSubmission.PaperID,
		schema.JournalsSubmission.JournalID, schema.JournalsSubmission.Status,
		schema.JournalsSubmission.DecisionComment, schema.JournalsSubmission.SubmitterID,
		schema.JournalsSubmission.CreatedAt, schema.JournalsSubmission.UpdatedAt,
		schema.JournalsSubmission.Table,
		schema.JournalsSubmission.JournalID,
	)

	args := []any{journalID}
	if len(statuses) > 0 {
		query += " AND " + schema.JournalsSubmission.Status + " = ANY($2)"
		args = append(args, statuses)
	}
	query += " ORDER BY " + schema.JournalsSubmission.CreatedAt + " DESC"

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_submissions")
	}
	defer rows.Close()

	var submissions []*Submission
	for rows.Next() {
		s := &Submission{}
		err := rows.Scan(
			&s.ID, &s.PaperID, &s.JournalID, &s.Status,
			&s.DecisionComment, &s.SubmitterID, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_submission")
		}
		submissions = append(submissions, s)
	}
	return submissions, rows.Err()
}

func (repository *PostgresRepository) UpdateSubmissionStatus(context context.Context, id int, from, to string, decisionComment *string) (*Submission, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = COALESCE($2, %s), %s = NOW()
		WHERE %s = $3 AND %s = $4
		RETURNING %s, %s, %s, %s, %s, %s, %s, %s
	`,
		schema.JournalsSubmission.Table,
		schema.JournalsSubmission.Status,
		schema.JournalsSubmission.DecisionComment, schema.JournalsSubmission.DecisionComment,
		schema.JournalsSubmission.UpdatedAt,
		schema.JournalsSubmission.ID, schema.JournalsSubmission.Status,
		schema.JournalsSubmission.ID, schema.JournalsSubmission.PaperID,
		schema.JournalsSubmission.JournalID, schema.JournalsSubmission.Status,
		schema.JournalsSubmission.DecisionComment, schema.JournalsSubmission.SubmitterID,
		schema.JournalsSubmission.CreatedAt, schema.JournalsSubmission.UpdatedAt,
	)

	s := &Submission{}
	err := repository.db.QueryRow(context, query, to, decisionComment, id, from).Scan(
		&s.ID, &s.PaperID, &s.JournalID, &s.Status,
		&s.DecisionComment, &s.SubmitterID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "update_submission_status")
	}
	return s, nil
}

func (repository *PostgresRepository) IsPaperAuthor(context context.Context, paperID int, userID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s WHERE %s = $1 AND %s = $2
		)
	`,
		schema.CorePaperAuthor.Table, schema.CorePaperAuthor.PaperID, schema.CorePaperAuthor.UserID,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, paperID, userID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "is_paper_author")
	}
	return exists, nil
}

// IsMemberOfPaperJournal reports whether the user is a member of any journal
// the paper was submitted to. Rejected submissions do not count.
func (repository *PostgresRepository) IsMemberOfPaperJournal(context context.Context, paperID int, userID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1
			FROM %s s
			JOIN %s m ON m.%s = s.%s
			WHERE s.%s = $1 AND m.%s = $2 AND s.%s <> $3
		)
	`,
		schema.JournalsSubmission.Table,
		schema.JournalsMember.Table, schema.JournalsMember.JournalID, schema.JournalsSubmission.JournalID,
		schema.JournalsSubmission.PaperID, schema.JournalsMember.UserID, schema.JournalsSubmission.Status,
	)

	var exists bool
	if err := repository.db.QueryRow(context, query, paperID, userID, StatusRejected).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "is_member_of_paper_journal")
	}
	return exists, nil
}

func (repository *PostgresRepository) PaperTitle(context context.Context, paperID int) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.CorePaper.Title, schema.CorePaper.Table,
		schema.CorePaper.ID, schema.CorePaper.DeletedAt,
	)

	var title string
	if err := repository.db.QueryRow(context, query, paperID).Scan(&title); err != nil {
		return "", dberr.Wrap(err, "paper_title")
	}
	return title, nil
}

func (repository *PostgresRepository) DisplayName(context context.Context, userID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		schema.UsersAccount.DisplayName, schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	var name string
	if err := repository.db.QueryRow(context, query, userID).Scan(&name); err != nil {
		return "", dberr.Wrap(err, "display_name")
	}
	return name, nil
}
