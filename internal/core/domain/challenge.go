package domain

import (
	"crypto/subtle"
	"strings"
	"time"
)

const (
	MinChallengeScore = 0
	MaxChallengeScore = 999999
)

// Challenge is a CTF puzzle. Flag is the secret and must never leave the
// admin surface.
type Challenge struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Hint        string    `json:"hint,omitempty"`
	Category    string    `json:"category"`
	Flag        string    `json:"flag"`
	Score       int       `json:"score"`
	Link        string    `json:"link,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MatchesFlag reports whether submitted equals the stored flag once both are
// trimmed of surrounding whitespace. Containment is not enough: a placeholder
// flag that is a substring of the real one must not pass.
func (c *Challenge) MatchesFlag(submitted string) bool {
	want := strings.TrimSpace(c.Flag)
	got := strings.TrimSpace(submitted)
	if want == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(got)) == 1
}
