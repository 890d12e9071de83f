package model

import "time"

// DynamicTemplate is an HTML template stored in the database and rendered
// by slug, or together with the other templates of its group.
type DynamicTemplate struct {
	ID        int64
	Title     string
	Slug      string
	Group     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
