package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
	"github.com/nicorlas/twitter-api/internal/repository"
)

var (
	ErrUsernameTaken = errors.New("username already taken")
	ErrForbidden     = errors.New("not allowed to modify another user's data")
)

type UserService struct {
	userRepo repository.UserRepository
	credRepo repository.CredentialRepository
}

func NewUserService(userRepo repository.UserRepository, credRepo repository.CredentialRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		credRepo: credRepo,
	}
}

type RegisterInput struct {
	UserName  string       `json:"user_name"`
	Email     string       `json:"email"`
	FirstName string       `json:"first_name"`
	LastName  string       `json:"last_name"`
	BirthDate *domain.Date `json:"birth_date"`
	Password  string       `json:"password"`
}

// Register stores the user record and, separately, the password hash.
// The password never reaches the users collection. If the hash cannot be
// saved the user record is removed again.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		ID:        uuid.New(),
		UserName:  input.UserName,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		BirthDate: input.BirthDate,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	cred := &domain.Credential{
		UserName:     user.UserName,
		PasswordHash: hash,
		UpdatedAt:    time.Now().UTC(),
	}
	if err := s.credRepo.Save(ctx, cred); err != nil {
		if _, derr := s.userRepo.Delete(ctx, user.UserName); derr != nil {
			log.Printf("ERROR rolling back user %s: %v", user.UserName, derr)
		}
		return nil, fmt.Errorf("saving credentials: %w", err)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, username string) (*domain.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// Update applies patch to the user. actor is the authenticated user name,
// or empty when authentication is disabled.
func (s *UserService) Update(ctx context.Context, actor, username string, patch domain.UserPatch) (*domain.User, error) {
	if err := checkActor(actor, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, username, patch)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actor, username string) (*domain.User, error) {
	if err := checkActor(actor, username); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Delete(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := s.credRepo.Delete(ctx, username); err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Printf("ERROR removing credentials for %s: %v", username, err)
	}

	return user, nil
}

func checkActor(actor, owner string) error {
	if actor != "" && actor != owner {
		return ErrForbidden
	}
	return nil
}
