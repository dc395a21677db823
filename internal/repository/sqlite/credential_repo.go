package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/nicorlas/twitter-api/internal/domain"
)

type CredentialRepo struct {
	db *sql.DB
}

func NewCredentialRepo(db *sql.DB) *CredentialRepo {
	return &CredentialRepo{db: db}
}

func (r *CredentialRepo) Save(ctx context.Context, cred *domain.Credential) error {
	query := `
		INSERT INTO credentials (user_name, password_hash, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_name) DO UPDATE
		SET password_hash = excluded.password_hash, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, cred.UserName, cred.PasswordHash, *timeString(&cred.UpdatedAt))
	return err
}

func (r *CredentialRepo) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	var c domain.Credential
	var updatedAt string
	err := r.db.QueryRowContext(ctx,
		"SELECT user_name, password_hash, updated_at FROM credentials WHERE user_name = ?", username,
	).Scan(&c.UserName, &c.PasswordHash, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: "credentials", Field: "user_name", Key: username}
	}
	if err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &c, nil
}

func (r *CredentialRepo) Delete(ctx context.Context, username string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM credentials WHERE user_name = ?", username)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &domain.NotFoundError{Collection: "credentials", Field: "user_name", Key: username}
	}
	return nil
}
