// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package review

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerreview/journalhub/internal/platform/database/schema"
	"github.com/peerreview/journalhub/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) ListReviews(context context.Context, f Filter, limit, offset int) ([]*Review, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE 1 = 1
	`,
		schema.CoreReview.ID, schema.CoreReview.PaperID, schema.CoreReview.UserID,
		schema.CoreReview.Version, schema.CoreReview.Summary, schema.CoreReview.Recommendation,
		schema.CoreReview.Status, schema.CoreReview.CreatedAt, schema.CoreReview.UpdatedAt,
		schema.CoreReview.Table,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE 1 = 1`, schema.CoreReview.Table)

	args := []any{}
	countArgs := []any{}

	if f.PaperID != 0 {
		clause := " AND " + schema.CoreReview.PaperID + " = $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.PaperID)
		countArgs = append(countArgs, f.PaperID)
	}
	if f.UserID != "" {
		clause := " AND " + schema.CoreReview.UserID + " = $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.UserID)
		countArgs = append(countArgs, f.UserID)
	}
	if f.Status != "" {
		clause := " AND " + schema.CoreReview.Status + " = $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.Status)
		countArgs = append(countArgs, f.Status)
	}

	query += fmt.Sprintf(" ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		schema.CoreReview.CreatedAt, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reviews")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reviews")
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		r := &Review{}
		err := rows.Scan(&r.ID, &r.PaperID, &r.UserID, &r.Version, &r.Summary,
			&r.Recommendation, &r.Status, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_review")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, nil
}

func (repository *PostgresRepository) GetReview(context context.Context, id int) (*Review, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.CoreReview.ID, schema.CoreReview.PaperID, schema.CoreReview.UserID,
		schema.CoreReview.Version, schema.CoreReview.Summary, schema.CoreReview.Recommendation,
		schema.CoreReview.Status, schema.CoreReview.CreatedAt, schema.CoreReview.UpdatedAt,
		schema.CoreReview.Table, schema.CoreReview.ID,
	)

	r := &Review{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&r.ID, &r.PaperID, &r.UserID, &r.Version, &r.Summary,
		&r.Recommendation, &r.Status, &r.CreatedAt, &r.UpdatedAt,
	)

	return r, dberr.Wrap(err, "get_review")
}

func (repository *PostgresRepository) CreateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreReview.Table, schema.CoreReview.PaperID, schema.CoreReview.UserID,
		schema.CoreReview.Version, schema.CoreReview.Summary, schema.CoreReview.Recommendation,
		schema.CoreReview.Status, schema.CoreReview.CreatedAt, schema.CoreReview.UpdatedAt,
		schema.CoreReview.ID, schema.CoreReview.CreatedAt, schema.CoreReview.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		r.PaperID, r.UserID, r.Version, r.Summary, r.Recommendation, r.Status,
	).Scan(&r.ID, &r.CreatedAt, &r.UpdatedAt)
	return dberr.Wrap(err, "create_review")
}

func (repository *PostgresRepository) UpdateReview(context context.Context, r *Review) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.CoreReview.Table,
		schema.CoreReview.Summary, schema.CoreReview.Recommendation, schema.CoreReview.Status,
		schema.CoreReview.UpdatedAt, schema.CoreReview.ID, schema.CoreReview.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, r.ID, r.Summary, r.Recommendation, r.Status).
		Scan(&r.UpdatedAt)
	return dberr.Wrap(err, "update_review")
}

func (repository *PostgresRepository) DeleteReview(context context.Context, id int) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreReview.Table, schema.CoreReview.ID,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_review")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
