package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
	"github.com/nicorlas/twitter-api/internal/repository"
)

var ErrTweetExists = errors.New("tweet id already exists")

// Notifier broadcasts tweet events to connected clients.
type Notifier interface {
	NotifyNewTweet(tweet *domain.Tweet)
	NotifyEditedTweet(tweet *domain.Tweet)
	NotifyDeletedTweet(tweet *domain.Tweet)
}

type TweetService struct {
	tweetRepo repository.TweetRepository
	notifier  Notifier
}

func NewTweetService(tweetRepo repository.TweetRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo}
}

// SetNotifier sets the real-time notifier (optional dependency).
func (s *TweetService) SetNotifier(n Notifier) {
	s.notifier = n
}

type PostTweetInput struct {
	TweetID   *uuid.UUID  `json:"tweet_id,omitempty"`
	Content   string      `json:"content"`
	CreatedAt *time.Time  `json:"created_at,omitempty"`
	By        domain.User `json:"by"`
}

// EditTweetInput is a partial update; a nil Content leaves the tweet as is.
type EditTweetInput struct {
	Content *string `json:"content"`
}

func (s *TweetService) Post(ctx context.Context, actor string, input PostTweetInput) (*domain.Tweet, error) {
	if err := checkActor(actor, input.By.UserName); err != nil {
		return nil, err
	}

	id := uuid.New()
	if input.TweetID != nil {
		id = *input.TweetID
	}

	createdAt := time.Now().UTC()
	if input.CreatedAt != nil {
		createdAt = input.CreatedAt.UTC()
	}

	tweet := &domain.Tweet{
		ID:        id,
		Content:   input.Content,
		CreatedAt: createdAt,
		By:        input.By,
	}

	if err := s.tweetRepo.Create(ctx, tweet); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrTweetExists
		}
		return nil, fmt.Errorf("creating tweet: %w", err)
	}

	if s.notifier != nil {
		s.notifier.NotifyNewTweet(tweet)
	}

	return tweet, nil
}

func (s *TweetService) List(ctx context.Context) ([]domain.Tweet, error) {
	return s.tweetRepo.List(ctx)
}

func (s *TweetService) Get(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	return s.tweetRepo.GetByID(ctx, id)
}

// Edit replaces the tweet content and stamps updated_at. An empty input
// returns the current tweet untouched.
func (s *TweetService) Edit(ctx context.Context, actor string, id uuid.UUID, input EditTweetInput) (*domain.Tweet, error) {
	if err := s.checkAuthor(ctx, actor, id); err != nil {
		return nil, err
	}

	if input.Content == nil {
		return s.tweetRepo.GetByID(ctx, id)
	}

	now := time.Now().UTC()
	updated, err := s.tweetRepo.Update(ctx, id, domain.TweetPatch{Content: input.Content, UpdatedAt: &now})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyEditedTweet(updated)
	}

	return updated, nil
}

func (s *TweetService) Delete(ctx context.Context, actor string, id uuid.UUID) (*domain.Tweet, error) {
	if err := s.checkAuthor(ctx, actor, id); err != nil {
		return nil, err
	}

	deleted, err := s.tweetRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyDeletedTweet(deleted)
	}

	return deleted, nil
}

func (s *TweetService) checkAuthor(ctx context.Context, actor string, id uuid.UUID) error {
	if actor == "" {
		return nil
	}
	tweet, err := s.tweetRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	return checkActor(actor, tweet.By.UserName)
}
