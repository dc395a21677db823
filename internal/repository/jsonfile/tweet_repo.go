package jsonfile

import (
	"context"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
	"github.com/nicorlas/twitter-api/internal/storage/jsonfile"
)

type TweetRepo struct {
	tweets *jsonfile.Collection[domain.Tweet]
}

func NewTweetRepo(dataDir string) *TweetRepo {
	return &TweetRepo{
		tweets: jsonfile.NewCollection("tweets", filepath.Join(dataDir, jsonfile.TweetsFile), "tweet_id",
			func(t domain.Tweet) string { return t.ID.String() }),
	}
}

func (r *TweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	return r.tweets.InsertUnique(*tweet)
}

func (r *TweetRepo) List(ctx context.Context) ([]domain.Tweet, error) {
	return r.tweets.Load()
}

func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	t, err := r.tweets.Find(id.String())
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TweetRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TweetPatch) (*domain.Tweet, error) {
	t, err := r.tweets.Update(id.String(), patch.Apply)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	t, err := r.tweets.Remove(id.String())
	if err != nil {
		return nil, err
	}
	return &t, nil
}
