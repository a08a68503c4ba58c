package stylesense

import (
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/stylesense/stylesense/domain"
)

// apiAnalysis is the subset of the backend's outfit analysis document we use.
// Community feed entries are the same document with social fields filled in.
type apiAnalysis struct {
	ID             string            `json:"_id"`
	UserID         string            `json:"user_id"`
	ImageFilename  string            `json:"image_filename"`
	AnalysisResult apiAnalysisResult `json:"analysis_result"`
	CreatedAt      string            `json:"created_at"`
	IsPublic       bool              `json:"is_public"`
	Tags           []string          `json:"tags"`
	Likes          []string          `json:"likes"`
	Dislikes       []string          `json:"dislikes"`
	Comments       []apiComment      `json:"comments"`
}

type apiAnalysisResult struct {
	DetectedOutfitItems []struct {
		Name        string `json:"name"`
		Category    string `json:"category"`
		Color       string `json:"color"`
		Description string `json:"description"`
	} `json:"detected_outfit_items"`
	StyleDescription string `json:"style_description"`
	Compliment       string `json:"compliment"`
	OutfitRating     struct {
		Score  float64 `json:"score"`
		Reason string  `json:"reason"`
	} `json:"outfit_rating"`
	ImprovementSuggestions []string `json:"improvement_suggestions"`
	CheaperAlternatives    []struct {
		Item                string `json:"item"`
		Suggestion          string `json:"suggestion"`
		EstimatedPriceRange string `json:"estimated_price_range"`
	} `json:"cheaper_alternatives"`
	ColorMatchingRecommendations []string `json:"color_matching_recommendations"`
}

type apiComment struct {
	UserID    string `json:"user_id,omitempty"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

type apiUser struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

type apiClosetItem struct {
	ID          string   `json:"_id,omitempty"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Color       string   `json:"color"`
	Description string   `json:"description,omitempty"`
	Tags        []string `json:"tags"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// Python's isoformat omits the zone for naive UTC timestamps.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

// sanitizeForTerminal strips escape sequences and control characters so
// server-supplied text cannot drive the terminal.
func sanitizeForTerminal(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func sanitizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, sanitizeForTerminal(s))
	}
	return out
}

func mapComment(c apiComment) domain.Comment {
	return domain.Comment{
		Author:    sanitizeForTerminal(c.Username),
		Text:      sanitizeForTerminal(c.Text),
		CreatedAt: parseTime(c.CreatedAt),
	}
}

func mapPost(a apiAnalysis) domain.Post {
	comments := make([]domain.Comment, 0, len(a.Comments))
	for _, c := range a.Comments {
		comments = append(comments, mapComment(c))
	}
	return domain.Post{
		ID:               a.ID,
		OwnerID:          a.UserID,
		ImageFilename:    a.ImageFilename,
		StyleDescription: sanitizeForTerminal(a.AnalysisResult.StyleDescription),
		Score:            a.AnalysisResult.OutfitRating.Score,
		Tags:             sanitizeAll(a.Tags),
		Likes:            append([]string(nil), a.Likes...),
		Dislikes:         append([]string(nil), a.Dislikes...),
		Comments:         comments,
		CreatedAt:        parseTime(a.CreatedAt),
	}
}

func mapAnalysis(a apiAnalysis) domain.Analysis {
	r := a.AnalysisResult
	items := make([]domain.ClothingItem, 0, len(r.DetectedOutfitItems))
	for _, it := range r.DetectedOutfitItems {
		items = append(items, domain.ClothingItem{
			Name:        sanitizeForTerminal(it.Name),
			Category:    sanitizeForTerminal(it.Category),
			Color:       sanitizeForTerminal(it.Color),
			Description: sanitizeForTerminal(it.Description),
		})
	}
	alts := make([]domain.Alternative, 0, len(r.CheaperAlternatives))
	for _, alt := range r.CheaperAlternatives {
		alts = append(alts, domain.Alternative{
			Item:       sanitizeForTerminal(alt.Item),
			Suggestion: sanitizeForTerminal(alt.Suggestion),
			PriceRange: sanitizeForTerminal(alt.EstimatedPriceRange),
		})
	}
	return domain.Analysis{
		ID:               a.ID,
		ImageFilename:    a.ImageFilename,
		Items:            items,
		StyleDescription: sanitizeForTerminal(r.StyleDescription),
		Compliment:       sanitizeForTerminal(r.Compliment),
		Score:            r.OutfitRating.Score,
		ScoreReason:      sanitizeForTerminal(r.OutfitRating.Reason),
		Suggestions:      sanitizeAll(r.ImprovementSuggestions),
		Alternatives:     alts,
		ColorMatches:     sanitizeAll(r.ColorMatchingRecommendations),
		Public:           a.IsPublic,
		Tags:             sanitizeAll(a.Tags),
		CreatedAt:        parseTime(a.CreatedAt),
	}
}

func mapClosetItem(it apiClosetItem) domain.ClosetItem {
	return domain.ClosetItem{
		ID:          it.ID,
		Name:        sanitizeForTerminal(it.Name),
		Category:    sanitizeForTerminal(it.Category),
		Color:       sanitizeForTerminal(it.Color),
		Description: sanitizeForTerminal(it.Description),
		Tags:        sanitizeAll(it.Tags),
		CreatedAt:   parseTime(it.CreatedAt),
	}
}
