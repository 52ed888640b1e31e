package user

import "time"

// User represents a user in the system. PreferSimplified is the default
// settlement view: greedy minimal-transfer netting when true, raw pairwise
// debts when false.
type User struct {
	ID               int64     `json:"id"`
	Username         string    `json:"username"`
	Email            string    `json:"email"`
	AvatarURL        *string   `json:"avatar_url,omitempty"`
	PreferSimplified bool      `json:"prefer_simplified"`
	CreatedAt        time.Time `json:"created_at"`
}
