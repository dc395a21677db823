package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nicorlas/twitter-api/internal/domain"
)

// sqlite has no native uuid, date or timestamp types; they are stored as
// their canonical strings.

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	var id string
	var birth sql.NullString
	if err := row.Scan(&id, &u.UserName, &u.Email, &u.FirstName, &u.LastName, &birth); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing user_id: %w", err)
	}
	u.ID = parsed
	if birth.Valid {
		d, err := domain.ParseDate(birth.String)
		if err != nil {
			return nil, err
		}
		u.BirthDate = &d
	}
	return &u, nil
}

func scanTweet(row scanner) (*domain.Tweet, error) {
	var t domain.Tweet
	var id, createdAt, author string
	var updatedAt sql.NullString
	if err := row.Scan(&id, &t.Content, &createdAt, &updatedAt, &author); err != nil {
		return nil, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parsing tweet_id: %w", err)
	}
	t.ID = parsed

	if t.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if updatedAt.Valid {
		ts, err := time.Parse(time.RFC3339Nano, updatedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		t.UpdatedAt = &ts
	}

	if err := json.Unmarshal([]byte(author), &t.By); err != nil {
		return nil, fmt.Errorf("decoding author: %w", err)
	}
	return &t, nil
}

func dateString(d *domain.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func timeString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339Nano)
	return &s
}
