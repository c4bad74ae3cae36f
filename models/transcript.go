package models

import (
	"time"
)

// Transcript is a cached acquisition result. Summaries are generated per
// request and never stored; only the expensive-to-fetch transcript text is.
type Transcript struct {
	VideoID   string    `json:"video_id"`
	URL       string    `json:"url"`
	Title     string    `json:"title,omitempty"`
	Source    string    `json:"source"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsFresh reports whether the cached text is recent enough to reuse. A zero
// ttl disables expiry.
func (t *Transcript) IsFresh(ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return time.Since(t.UpdatedAt) <= ttl
}
