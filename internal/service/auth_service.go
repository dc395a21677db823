package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nicorlas/twitter-api/internal/domain"
	"github.com/nicorlas/twitter-api/internal/repository"
	"golang.org/x/crypto/argon2"
)

var ErrInvalidCreds = errors.New("invalid user name or password")

const tokenTTL = 24 * time.Hour

type AuthService struct {
	userRepo  repository.UserRepository
	credRepo  repository.CredentialRepository
	jwtSecret []byte
}

func NewAuthService(userRepo repository.UserRepository, credRepo repository.CredentialRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		credRepo:  credRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

type LoginInput struct {
	UserName string `json:"user_name"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	cred, err := s.credRepo.GetByUsername(ctx, input.UserName)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCreds
	}
	if err != nil {
		return nil, err
	}

	if !verifyPassword(input.Password, cred.PasswordHash) {
		return nil, ErrInvalidCreds
	}

	user, err := s.userRepo.GetByUsername(ctx, input.UserName)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrInvalidCreds
	}
	if err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.UserName)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{User: user, AccessToken: token}, nil
}

func (s *AuthService) generateToken(username string) (string, error) {
	claims := jwt.MapClaims{
		"sub": username,
		"exp": time.Now().Add(tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func hashPassword(password string) (string, error) {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)

	return fmt.Sprintf("%s:%s",
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

func verifyPassword(password, encoded string) bool {
	saltB64, hashB64, ok := strings.Cut(encoded, ":")
	if !ok {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return false
	}

	expectedHash, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, 1, 64*1024, 4, 32)
	return subtle.ConstantTimeCompare(hash, expectedHash) == 1
}
