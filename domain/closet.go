package domain

import "time"

// ClosetCategories lists the categories the closet accepts.
var ClosetCategories = []string{"top", "bottom", "shoes", "accessory", "outerwear", "dress", "other"}

// ClosetItem is one garment in the user's virtual closet.
type ClosetItem struct {
	ID          string
	Name        string
	Category    string
	Color       string
	Description string
	Tags        []string
	CreatedAt   time.Time
}
