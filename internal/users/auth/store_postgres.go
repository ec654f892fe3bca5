// Copyright (c) 2026 JournalHub. All rights reserved.
// Author: dev@journalhub.pub

package auth

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/peerreview/journalhub/internal/platform/database/schema"
	"github.com/peerreview/journalhub/internal/platform/dberr"
)

type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (repository *PostgresUserRepository) findBy(context context.Context, column string, value any) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName, schema.UsersAccount.Affiliation,
		schema.UsersAccount.Role, schema.UsersAccount.IsVerified,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.Table,
		column, schema.UsersAccount.DeletedAt,
	)

	user := &User{}
	err := repository.db.QueryRow(context, query, value).Scan(
		&user.ID, &user.Username, &user.Email,
		&user.PasswordHash, &user.DisplayName, &user.Affiliation,
		&user.Role, &user.IsVerified,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_user")
	}
	return user, nil
}

func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.ID, id)
}

func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Email, email)
}

func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	return repository.findBy(context, schema.UsersAccount.Username, username)
}

func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.ID, schema.UsersAccount.Username, schema.UsersAccount.Email,
		schema.UsersAccount.PasswordHash, schema.UsersAccount.DisplayName, schema.UsersAccount.Affiliation,
		schema.UsersAccount.Role, schema.UsersAccount.IsVerified,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.CreatedAt, schema.UsersAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		user.ID, user.Username, user.Email,
		user.PasswordHash, user.DisplayName, user.Affiliation,
		user.Role, user.IsVerified,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_user")
	}
	return nil
}

func (repository *PostgresUserRepository) Update(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $1, %s = $2, %s = NOW()
		WHERE %s = $3 AND %s IS NULL
		RETURNING %s
	`,
		schema.UsersAccount.Table,
		schema.UsersAccount.DisplayName, schema.UsersAccount.Affiliation, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
		schema.UsersAccount.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, user.DisplayName, user.Affiliation, user.ID).
		Scan(&user.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "update_user")
	}
	return nil
}

func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2 AND %s IS NULL
	`,
		schema.UsersAccount.Table, schema.UsersAccount.PasswordHash, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	tag, err := repository.db.Exec(context, query, newHash, userID)
	if err != nil {
		return dberr.Wrap(err, "update_password")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresUserRepository) MarkVerified(context context.Context, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = NOW() WHERE %s = $1 AND %s IS NULL
	`,
		schema.UsersAccount.Table, schema.UsersAccount.IsVerified, schema.UsersAccount.UpdatedAt,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	tag, err := repository.db.Exec(context, query, userID)
	if err != nil {
		return dberr.Wrap(err, "mark_verified")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

func (repository *PostgresUserRepository) SoftDelete(context context.Context, id string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL
	`,
		schema.UsersAccount.Table, schema.UsersAccount.DeletedAt,
		schema.UsersAccount.ID, schema.UsersAccount.DeletedAt,
	)

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_user")
	}
	if tag.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

// # Sessions

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (repository *PostgresSessionRepository) Create(context context.Context, session *Session) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
		RETURNING %s
	`,
		schema.UsersSession.Table,
		schema.UsersSession.ID, schema.UsersSession.UserID, schema.UsersSession.TokenHash,
		schema.UsersSession.UserAgent, schema.UsersSession.IPAddress, schema.UsersSession.ExpiresAt,
		schema.UsersSession.IsRevoked, schema.UsersSession.CreatedAt,
		schema.UsersSession.CreatedAt,
	)

	err := repository.db.QueryRow(context, query,
		session.ID, session.UserID, session.TokenHash,
		session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_session")
	}
	return nil
}

func (repository *PostgresSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s = FALSE AND %s > NOW()
	`,
		schema.UsersSession.ID, schema.UsersSession.UserID, schema.UsersSession.TokenHash,
		schema.UsersSession.UserAgent, schema.UsersSession.IPAddress, schema.UsersSession.ExpiresAt,
		schema.UsersSession.IsRevoked, schema.UsersSession.CreatedAt,
		schema.UsersSession.Table,
		schema.UsersSession.TokenHash, schema.UsersSession.IsRevoked, schema.UsersSession.ExpiresAt,
	)

	session := &Session{}
	err := repository.db.QueryRow(context, query, tokenHash).Scan(
		&session.ID, &session.UserID, &session.TokenHash,
		&session.UserAgent, &session.IPAddress, &session.ExpiresAt,
		&session.IsRevoked, &session.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_session")
	}
	return session, nil
}

func (repository *PostgresSessionRepository) Revoke(context context.Context, sessionID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE WHERE %s = $1
	`,
		schema.UsersSession.Table, schema.UsersSession.IsRevoked, schema.UsersSession.ID,
	)

	if _, err := repository.db.Exec(context, query, sessionID); err != nil {
		return dberr.Wrap(err, "revoke_session")
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeAll(context context.Context, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE WHERE %s = $1
	`,
		schema.UsersSession.Table, schema.UsersSession.IsRevoked, schema.UsersSession.UserID,
	)

	if _, err := repository.db.Exec(context, query, userID); err != nil {
		return dberr.Wrap(err, "revoke_all_sessions")
	}
	return nil
}

func (repository *PostgresSessionRepository) RevokeOthers(context context.Context, userID, currentSessionID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE WHERE %s = $1 AND %s <> $2
	`,
		schema.UsersSession.Table, schema.UsersSession.IsRevoked,
		schema.UsersSession.UserID, schema.UsersSession.ID,
	)

	if _, err := repository.db.Exec(context, query, userID, currentSessionID); err != nil {
		return dberr.Wrap(err, "revoke_other_sessions")
	}
	return nil
}

func (repository *PostgresSessionRepository) DeleteExpired(context context.Context) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE %s <= NOW()
	`,
		schema.UsersSession.Table, schema.UsersSession.ExpiresAt,
	)

	if _, err := repository.db.Exec(context, query); err != nil {
		return dberr.Wrap(err, "delete_expired_sessions")
	}
	return nil
}
