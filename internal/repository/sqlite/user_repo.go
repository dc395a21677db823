package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/nicorlas/twitter-api/internal/domain"
)

const userColumns = "user_id, user_name, email, first_name, last_name, birth_date"

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, user_name, email, first_name, last_name, birth_date)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID.String(), user.UserName, user.Email, user.FirstName, user.LastName, dateString(user.BirthDate),
	)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Collection: "users", Field: "user_name", Key: user.UserName}
	}
	return err
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+userColumns+" FROM users ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE user_name = ?", username)
	return userOrNotFound(row, username)
}

func (r *UserRepo) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	query := `
		UPDATE users SET
			email = COALESCE(?, email),
			first_name = COALESCE(?, first_name),
			last_name = COALESCE(?, last_name),
			birth_date = COALESCE(?, birth_date)
		WHERE user_name = ?
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, query,
		patch.Email, patch.FirstName, patch.LastName, dateString(patch.BirthDate), username,
	)
	return userOrNotFound(row, username)
}

func (r *UserRepo) Delete(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, "DELETE FROM users WHERE user_name = ? RETURNING "+userColumns, username)
	return userOrNotFound(row, username)
}

func userOrNotFound(row *sql.Row, username string) (*domain.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: "users", Field: "user_name", Key: username}
	}
	return u, err
}
