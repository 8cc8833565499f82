package domain

import "time"

// Category classifies tickets. Categories form a tree through ParentCategoryID.
type Category struct {
	ID               string
	Name             string
	Description      string
	ParentCategoryID *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
