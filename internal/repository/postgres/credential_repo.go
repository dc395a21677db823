package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nicorlas/twitter-api/internal/domain"
)

type CredentialRepo struct {
	pool *pgxpool.Pool
}

func NewCredentialRepo(pool *pgxpool.Pool) *CredentialRepo {
	return &CredentialRepo{pool: pool}
}

func (r *CredentialRepo) Save(ctx context.Context, cred *domain.Credential) error {
	query := `
		INSERT INTO credentials (user_name, password_hash, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_name) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(ctx, query, cred.UserName, cred.PasswordHash, cred.UpdatedAt)
	return err
}

func (r *CredentialRepo) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	var c domain.Credential
	err := r.pool.QueryRow(ctx,
		"SELECT user_name, password_hash, updated_at FROM credentials WHERE user_name = $1", username,
	).Scan(&c.UserName, &c.PasswordHash, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: "credentials", Field: "user_name", Key: username}
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CredentialRepo) Delete(ctx context.Context, username string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM credentials WHERE user_name = $1", username)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return &domain.NotFoundError{Collection: "credentials", Field: "user_name", Key: username}
	}
	return nil
}
