// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package field

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

func (repository *PostgresRepository) ListFields(context context.Context, f Filter, limit, offset int) ([]*Field, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.CoreField.ID, schema.CoreField.Name, schema.CoreField.Type,
		schema.CoreField.Description, schema.CoreField.ParentID,
		schema.CoreField.CreatedAt, schema.CoreField.UpdatedAt,
		schema.CoreField.Table, schema.CoreField.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`,
		schema.CoreField.Table, schema.CoreField.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		clause := " AND " + schema.CoreField.Name + " ILIKE $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, "%"+f.Query+"%")
		countArgs = append(countArgs, "%"+f.Query+"%")
	}
	if f.Type != "" {
		clause := " AND " + schema.CoreField.Type + " = $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.Type)
		countArgs = append(countArgs, f.Type)
	}
	if f.ParentID != nil {
		clause := " AND " + schema.CoreField.ParentID + " = $" + strconv.Itoa(len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, *f.ParentID)
		countArgs = append(countArgs, *f.ParentID)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.CoreField.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_fields")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_fields")
	}
	defer rows.Close()

	var fields []*Field
	for rows.Next() {
		field := &Field{}
		err := rows.Scan(&field.ID, &field.Name, &field.Type, &field.Description,
			&field.ParentID, &field.CreatedAt, &field.UpdatedAt)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_field")
		}
		fields = append(fields, field)
	}

	return fields, total, nil
}

func (repository *PostgresRepository) GetField(context context.Context, id int) (*Field, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.CoreField.ID, schema.CoreField.Name, schema.CoreField.Type,
		schema.CoreField.Description, schema.CoreField.ParentID,
		schema.CoreField.CreatedAt, schema.CoreField.UpdatedAt,
		schema.CoreField.Table, schema.CoreField.ID, schema.CoreField.DeletedAt,
	)

	field := &Field{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&field.ID, &field.Name, &field.Type, &field.Description,
		&field.ParentID, &field.CreatedAt, &field.UpdatedAt,
	)

	return field, dberr.Wrap(err, "get_field")
}

func (repository *PostgresRepository) CreateField(context context.Context, f *Field) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING %s, %s, %s
	`,
		schema.CoreField.Table, schema.CoreField.Name, schema.CoreField.Type,
		schema.CoreField.Description, schema.CoreField.ParentID,
		schema.CoreField.CreatedAt, schema.CoreField.UpdatedAt,
		schema.CoreField.ID, schema.CoreField.CreatedAt, schema.CoreField.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, f.Name, f.Type, f.Description, f.ParentID).
		Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
	return dberr.Wrap(err, "create_field")
}

func (repository *PostgresRepository) UpdateField(context context.Context, f *Field) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.CoreField.Table,
		schema.CoreField.Name, schema.CoreField.Type, schema.CoreField.Description,
		schema.CoreField.ParentID, schema.CoreField.UpdatedAt,
		schema.CoreField.ID, schema.CoreField.DeletedAt,
		schema.CoreField.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, f.ID, f.Name, f.Type, f.Description, f.ParentID).
		Scan(&f.UpdatedAt)
	return dberr.Wrap(err, "update_field")
}

func (repository *PostgresRepository) SoftDeleteField(context context.Context, id int) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.CoreField.Table, schema.CoreField.DeletedAt, schema.CoreField.ID, schema.CoreField.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_field")
	}
	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
