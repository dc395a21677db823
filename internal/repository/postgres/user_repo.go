package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nicorlas/twitter-api/internal/domain"
)

const userColumns = "user_id, user_name, email, first_name, last_name, birth_date"

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (user_id, user_name, email, first_name, last_name, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		user.ID, user.UserName, user.Email, user.FirstName, user.LastName, dateParam(user.BirthDate),
	)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Collection: "users", Field: "user_name", Key: user.UserName}
	}
	return err
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+userColumns+" FROM users ORDER BY seq")
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
	row := r.pool.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE user_name = $1", username)
	return userOrNotFound(row, username)
}

func (r *UserRepo) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	query := `
		UPDATE users SET
			email = COALESCE($2, email),
			first_name = COALESCE($3, first_name),
			last_name = COALESCE($4, last_name),
			birth_date = COALESCE($5, birth_date)
		WHERE user_name = $1
		RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, query, username, patch.Email, patch.FirstName, patch.LastName, dateParam(patch.BirthDate))
	return userOrNotFound(row, username)
}

func (r *UserRepo) Delete(ctx context.Context, username string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, "DELETE FROM users WHERE user_name = $1 RETURNING "+userColumns, username)
	return userOrNotFound(row, username)
}

func userOrNotFound(row pgx.Row, username string) (*domain.User, error) {
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: "users", Field: "user_name", Key: username}
	}
	return u, err
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var birth *time.Time
	if err := row.Scan(&u.ID, &u.UserName, &u.Email, &u.FirstName, &u.LastName, &birth); err != nil {
		return nil, err
	}
	if birth != nil {
		u.BirthDate = &domain.Date{Time: birth.UTC()}
	}
	return &u, nil
}

func dateParam(d *domain.Date) *time.Time {
	if d == nil {
		return nil
	}
	return &d.Time
}
