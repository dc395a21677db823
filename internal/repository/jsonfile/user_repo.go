package jsonfile

import (
	"context"
	"path/filepath"

	"github.com/nicorlas/twitter-api/internal/domain"
	"github.com/nicorlas/twitter-api/internal/storage/jsonfile"
)

type UserRepo struct {
	users *jsonfile.Collection[domain.User]
}

func NewUserRepo(dataDir string) *UserRepo {
	return &UserRepo{
		users: jsonfile.NewCollection("users", filepath.Join(dataDir, jsonfile.UsersFile), "user_name",
			func(u domain.User) string { return u.UserName }),
	}
}

func (r *UserRepo) Create(ctx context.Context, user *domain.User) error {
	return r.users.InsertUnique(*user)
}

func (r *UserRepo) List(ctx context.Context) ([]domain.User, error) {
	return r.users.Load()
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := r.users.Find(username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error) {
	u, err := r.users.Update(username, patch.Apply)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Delete(ctx context.Context, username string) (*domain.User, error) {
	u, err := r.users.Remove(username)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
