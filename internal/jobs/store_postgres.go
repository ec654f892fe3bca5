// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package jobs

import (
	"context"
	"fmt"

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

func (repository *PostgresRepository) Create(context context.Context, job *Job) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING %s
	`,
		schema.SystemJob.Table, schema.SystemJob.ID, schema.SystemJob.Name,
		schema.SystemJob.Status, schema.SystemJob.Payload, schema.SystemJob.CreatedAt,
		schema.SystemJob.CreatedAt,
	)

	err := repository.db.QueryRow(context, query, job.ID, job.Name, job.Status, job.Payload).Scan(&job.CreatedAt)
	return dberr.Wrap(err, "create_job")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Job, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SystemJob.ID, schema.SystemJob.Name, schema.SystemJob.Status,
		schema.SystemJob.Payload, schema.SystemJob.LastError,
		schema.SystemJob.CreatedAt, schema.SystemJob.StartedAt, schema.SystemJob.FinishedAt,
		schema.SystemJob.Table, schema.SystemJob.ID,
	)

	job := &Job{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&job.ID, &job.Name, &job.Status, &job.Payload, &job.LastError,
		&job.CreatedAt, &job.StartedAt, &job.FinishedAt,
	)

	return job, dberr.Wrap(err, "get_job")
}

func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]*Job, int, error) {
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.SystemJob.Table)
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		ORDER BY %s DESC
		LIMIT $1 OFFSET $2
	`,
		schema.SystemJob.ID, schema.SystemJob.Name, schema.SystemJob.Status,
		schema.SystemJob.Payload, schema.SystemJob.LastError,
		schema.SystemJob.CreatedAt, schema.SystemJob.StartedAt, schema.SystemJob.FinishedAt,
		schema.SystemJob.Table, schema.SystemJob.CreatedAt,
	)

	var total int
	if err := repository.db.QueryRow(context, countQuery).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_jobs")
	}

	rows, err := repository.db.Query(context, query, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_jobs")
	}
	defer rows.Close()

	var list []*Job
	for rows.Next() {
		job := &Job{}
		err := rows.Scan(
			&job.ID, &job.Name, &job.Status, &job.Payload, &job.LastError,
			&job.CreatedAt, &job.StartedAt, &job.FinishedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_job")
		}
		list = append(list, job)
	}

	return list, total, nil
}

func (repository *PostgresRepository) MarkRunning(context context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = NOW()
		WHERE %s = $1 AND %s = $3
	`,
		schema.SystemJob.Table, schema.SystemJob.Status, schema.SystemJob.StartedAt,
		schema.SystemJob.ID, schema.SystemJob.Status,
	)

	cmd, err := repository.db.Exec(context, query, id, StatusRunning, StatusQueued)
	if err != nil {
		return dberr.Wrap(err, "mark_job_running")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresRepository) MarkFinished(context context.Context, id string, status Status, lastError *string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1
	`,
		schema.SystemJob.Table, schema.SystemJob.Status, schema.SystemJob.LastError,
		schema.SystemJob.FinishedAt, schema.SystemJob.ID,
	)

	cmd, err := repository.db.Exec(context, query, id, status, lastError)
	if err != nil {
		return dberr.Wrap(err, "mark_job_finished")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
