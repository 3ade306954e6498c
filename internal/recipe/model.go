package recipe

import (
	"strings"
	"time"
)

// Rating bounds. Zero means unrated.
const (
	MinRating = 0
	MaxRating = 5
)

// Recipe is a single saved recipe record.
type Recipe struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Description string    `json:"description,omitempty"`
	Ingredients []string  `json:"ingredients"`
	Steps       []string  `json:"steps"`
	Tags        []string  `json:"tags"`
	Rating      int       `json:"rating"`
	Memo        string    `json:"memo,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	IsFavorite  bool      `json:"isFavorite"`
	ViewCount   int       `json:"viewCount"`
}

// Draft is the caller-supplied portion of a recipe. The repository fills in
// id, createdAt, isFavorite, and viewCount when a draft is added.
type Draft struct {
	Title       string   `json:"title"`
	URL         string   `json:"url,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Description string   `json:"description,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	Tags        []string `json:"tags"`
	Rating      int      `json:"rating"`
	Memo        string   `json:"memo,omitempty"`
}

// Normalize repairs fields that older records or partial drafts may lack:
// nil slices become empty, the rating is clamped into [MinRating, MaxRating],
// and negative view counts reset to zero. Missing isFavorite and viewCount
// decode to their zero values already, so the boolean needs no repair.
func (r *Recipe) Normalize() {
	if r.Ingredients == nil {
		r.Ingredients = []string{}
	}
	if r.Steps == nil {
		r.Steps = []string{}
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}
	r.Rating = ClampRating(r.Rating)
	if r.ViewCount < 0 {
		r.ViewCount = 0
	}
}

// Clone returns a deep copy so callers can hand out snapshots without
// exposing the repository's backing slices.
func (r Recipe) Clone() Recipe {
	out := r
	out.Ingredients = cloneStrings(r.Ingredients)
	out.Steps = cloneStrings(r.Steps)
	out.Tags = cloneStrings(r.Tags)
	return out
}

// HasTag reports whether the recipe carries the given tag.
func (r Recipe) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MatchesQuery reports whether the query appears in the title or any
// ingredient, case-insensitively. An empty query matches everything.
func (r Recipe) MatchesQuery(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(r.Title), query) {
		return true
	}
	for _, ing := range r.Ingredients {
		if strings.Contains(strings.ToLower(ing), query) {
			return true
		}
	}
	return false
}

// ClampRating forces a rating into the valid range.
func ClampRating(rating int) int {
	if rating < MinRating {
		return MinRating
	}
	if rating > MaxRating {
		return MaxRating
	}
	return rating
}

// AllTags collects the unique tags across a collection, preserving first-seen
// order.
func AllTags(recipes []Recipe) []string {
	seen := make(map[string]struct{})
	var tags []string
	for _, r := range recipes {
		for _, tag := range r.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	return tags
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
