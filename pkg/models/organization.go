package models

import "time"

// Organization is the tenant boundary; every other record belongs to exactly one.
type Organization struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
