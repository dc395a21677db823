package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nicorlas/twitter-api/internal/domain"
)

const tweetColumns = "tweet_id, content, created_at, updated_at, author"

type TweetRepo struct {
	pool *pgxpool.Pool
}

func NewTweetRepo(pool *pgxpool.Pool) *TweetRepo {
	return &TweetRepo{pool: pool}
}

func (r *TweetRepo) Create(ctx context.Context, tweet *domain.Tweet) error {
	query := `
		INSERT INTO tweets (tweet_id, content, created_at, updated_at, author)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		tweet.ID, tweet.Content, tweet.CreatedAt, tweet.UpdatedAt, tweet.By,
	)
	if isUniqueViolation(err) {
		return &domain.ConflictError{Collection: "tweets", Field: "tweet_id", Key: tweet.ID.String()}
	}
	return err
}

func (r *TweetRepo) List(ctx context.Context) ([]domain.Tweet, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+tweetColumns+" FROM tweets ORDER BY seq")
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
	row := r.pool.QueryRow(ctx, "SELECT "+tweetColumns+" FROM tweets WHERE tweet_id = $1", id)
	return tweetOrNotFound(row, id)
}

func (r *TweetRepo) Update(ctx context.Context, id uuid.UUID, patch domain.TweetPatch) (*domain.Tweet, error) {
	query := `
		UPDATE tweets SET
			content = COALESCE($2, content),
			updated_at = COALESCE($3, updated_at)
		WHERE tweet_id = $1
		RETURNING ` + tweetColumns
	row := r.pool.QueryRow(ctx, query, id, patch.Content, patch.UpdatedAt)
	return tweetOrNotFound(row, id)
}

func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	row := r.pool.QueryRow(ctx, "DELETE FROM tweets WHERE tweet_id = $1 RETURNING "+tweetColumns, id)
	return tweetOrNotFound(row, id)
}

func tweetOrNotFound(row pgx.Row, id uuid.UUID) (*domain.Tweet, error) {
	t, err := scanTweet(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &domain.NotFoundError{Collection: "tweets", Field: "tweet_id", Key: id.String()}
	}
	return t, err
}

// author is jsonb; pgx decodes it straight into the embedded user.
func scanTweet(row pgx.Row) (*domain.Tweet, error) {
	var t domain.Tweet
	if err := row.Scan(&t.ID, &t.Content, &t.CreatedAt, &t.UpdatedAt, &t.By); err != nil {
		return nil, err
	}
	return &t, nil
}
