package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
)

// Every implementation reports a missing key with *domain.NotFoundError.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, username string, patch domain.UserPatch) (*domain.User, error)
	Delete(ctx context.Context, username string) (*domain.User, error)
}

type TweetRepository interface {
	Create(ctx context.Context, tweet *domain.Tweet) error
	List(ctx context.Context) ([]domain.Tweet, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.TweetPatch) (*domain.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
}

type CredentialRepository interface {
	Save(ctx context.Context, cred *domain.Credential) error
	GetByUsername(ctx context.Context, username string) (*domain.Credential, error)
	Delete(ctx context.Context, username string) error
}
