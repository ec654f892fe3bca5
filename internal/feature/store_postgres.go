// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package feature

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

func (repository *PostgresRepository) List(context context.Context) ([]*Feature, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		ORDER BY %s ASC
	`,
		schema.SystemFeature.Name, schema.SystemFeature.Status,
		schema.SystemFeature.CreatedAt, schema.SystemFeature.UpdatedAt,
		schema.SystemFeature.Table, schema.SystemFeature.Name,
	)

	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_features")
	}
	defer rows.Close()

	var features []*Feature
	for rows.Next() {
		f := &Feature{}
		if err := rows.Scan(&f.Name, &f.Status, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan_feature")
		}
		features = append(features, f)
	}

	return features, nil
}

func (repository *PostgresRepository) Get(context context.Context, name string) (*Feature, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.SystemFeature.Name, schema.SystemFeature.Status,
		schema.SystemFeature.CreatedAt, schema.SystemFeature.UpdatedAt,
		schema.SystemFeature.Table, schema.SystemFeature.Name,
	)

	f := &Feature{}
	err := repository.db.QueryRow(context, query, name).Scan(&f.Name, &f.Status, &f.CreatedAt, &f.UpdatedAt)

	return f, dberr.Wrap(err, "get_feature")
}

func (repository *PostgresRepository) Create(context context.Context, f *Feature) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.SystemFeature.Table, schema.SystemFeature.Name, schema.SystemFeature.Status,
		schema.SystemFeature.CreatedAt, schema.SystemFeature.UpdatedAt,
		schema.SystemFeature.CreatedAt, schema.SystemFeature.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, f.Name, f.Status).Scan(&f.CreatedAt, &f.UpdatedAt)
	return dberr.Wrap(err, "create_feature")
}

// UpdateStatus performs a compare-and-set on the status column. Guarding on
// the expected current status means two concurrent admin PATCHes cannot
// both win the same transition.
func (repository *PostgresRepository) UpdateStatus(context context.Context, name string, from, to Status) (*Feature, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = NOW()
		WHERE %s = $1 AND %s = $2
		RETURNING %s, %s, %s, %s
	`,
		schema.SystemFeature.Table,
		schema.SystemFeature.Status, schema.SystemFeature.UpdatedAt,
		schema.SystemFeature.Name, schema.SystemFeature.Status,
		schema.SystemFeature.Name, schema.SystemFeature.Status,
		schema.SystemFeature.CreatedAt, schema.SystemFeature.UpdatedAt,
	)

	f := &Feature{}
	err := repository.db.QueryRow(context, query, name, from, to).Scan(&f.Name, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, dberr.Wrap(err, "update_feature_status")
	}
	return f, nil
}
