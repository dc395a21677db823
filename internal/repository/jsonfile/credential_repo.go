package jsonfile

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/nicorlas/twitter-api/internal/domain"
	"github.com/nicorlas/twitter-api/internal/storage/jsonfile"
)

type CredentialRepo struct {
	creds *jsonfile.Collection[domain.Credential]
}

func NewCredentialRepo(dataDir string) *CredentialRepo {
	return &CredentialRepo{
		creds: jsonfile.NewCollection("credentials", filepath.Join(dataDir, jsonfile.CredentialsFile), "user_name",
			func(c domain.Credential) string { return c.UserName }),
	}
}

// Save replaces the credential for cred.UserName or appends a new one.
func (r *CredentialRepo) Save(ctx context.Context, cred *domain.Credential) error {
	_, err := r.creds.Update(cred.UserName, func(c *domain.Credential) { *c = *cred })
	if errors.Is(err, domain.ErrNotFound) {
		return r.creds.Insert(*cred)
	}
	return err
}

func (r *CredentialRepo) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	c, err := r.creds.Find(username)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CredentialRepo) Delete(ctx context.Context, username string) error {
	_, err := r.creds.Remove(username)
	return err
}
