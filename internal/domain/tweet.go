package domain

import (
	"time"

	"github.com/google/uuid"
)

type Tweet struct {
	ID        uuid.UUID  `json:"tweet_id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
	By        User       `json:"by"`
}

type TweetPatch struct {
	Content   *string    `json:"content,omitempty"`
	UpdatedAt *time.Time `json:"-"`
}

func (p TweetPatch) Apply(t *Tweet) {
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.UpdatedAt != nil {
		ts := *p.UpdatedAt
		t.UpdatedAt = &ts
	}
}
