package domain

import "time"

// ClothingItem is one garment detected in an uploaded photo.
type ClothingItem struct {
	Name        string
	Category    string
	Color       string
	Description string
}

// Alternative is a cheaper substitute suggested for a detected item.
type Alternative struct {
	Item       string
	Suggestion string
	PriceRange string
}

// Analysis is the AI feedback generated for one outfit photo.
type Analysis struct {
	ID               string
	ImageFilename    string
	Items            []ClothingItem
	StyleDescription string
	Compliment       string
	Score            float64
	ScoreReason      string
	Suggestions      []string
	Alternatives     []Alternative
	ColorMatches     []string
	Public           bool
	Tags             []string
	CreatedAt        time.Time
}
