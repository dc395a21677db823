package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
)

const tweetColumns = "tweet_id, content, created_at, updated_at, author"

type TweetRepo struct {
	db *sql.DB
}

func NewTweetRepo(db *sql.DB) *TweetRepo {
	return &TweetRepo{db: db}
}

func (r *TweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	author, err := json.Marshal(tweet.By)
	if err != nil {
		return fmt.Errorf("encoding author: %w", err)
	}
	query := `
		INSERT INTO tweets (tweet_id, content, created_at, updated_at, author)
		VALUES (?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		tweet.ID.String(), tweet.Content, *timeString(&tweet.CreatedAt), timeString(tweet.UpdatedAt), string(author),
	)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Collection: "tweets", Field: "tweet_id", Key: tweet.ID.String()}
	}
	return err
}

func (r *TweetRepo) List(ctx context.Context) ([]domain.Tweet, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+tweetColumns+" FROM tweets ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tweets := []domain.Tweet{}
	for rows.Next() {
		t, err := scanTweet(rows)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, *t)
	}
	return tweets, rows.Err()
}

func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+tweetColumns+" FROM tweets WHERE tweet_id = ?", id.String())
	return tweetOrNotFound(row, id)
}

func (r *TweetRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TweetPatch) (*domain.Tweet, error) {
	query := `
		UPDATE tweets SET
			content = COALESCE(?, content),
			updated_at = COALESCE(?, updated_at)
		WHERE tweet_id = ?
		RETURNING ` + tweetColumns
	row := r.db.QueryRowContext(ctx, query, patch.Content, timeString(patch.UpdatedAt), id.String())
	return tweetOrNotFound(row, id)
}

func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	row := r.db.QueryRowContext(ctx, "DELETE FROM tweets WHERE tweet_id = ? RETURNING "+tweetColumns, id.String())
	return tweetOrNotFound(row, id)
}

func tweetOrNotFound(row *sql.Row, id uuid.UUID) (*domain.Tweet, error) {
	t, err := scanTweet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: "tweets", Field: "tweet_id", Key: id.String()}
	}
	return t, err
}
