package models

import "time"

// Profile is a player's public record. MVPAwards is the cumulative award
// ledger the finalizer increments and decrements; it never goes below zero.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	AvatarURL *string   `json:"avatar_url,omitempty" db:"avatar_url"`
	MVPAwards int       `json:"mvp_awards" db:"mvp_awards"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
