package models

import "time"

// Notification is an organization-wide message.
type Notification struct {
	ID             int       `json:"id"`
	OrganizationID int       `json:"organization_id"`
	Title          string    `json:"title"`
	Content        *string   `json:"content"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`
}
