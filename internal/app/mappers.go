package app

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"salon_site/internal/domain"
)

const (
	// DefaultReviewRating replaces a missing or non-numeric star rating.
	DefaultReviewRating = 5
	// AnonymousAuthor replaces a missing author display name.
	AnonymousAuthor = "Anonymous"
)

/********** sentinel defaults **********/

// ratingOrDefault accepts only a JSON number; "5", true, null and absence
// all fall back to DefaultReviewRating.
func ratingOrDefault(raw json.RawMessage) int {
	if len(raw) == 0 {
		return DefaultReviewRating
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return DefaultReviewRating
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultReviewRating
	}
	return int(math.Round(f))
}

// sortOrderOrDefault reads a leading signed integer ("12", " 3 ", "7a")
// and returns domain.UnorderedSortOrder when there is none.
func sortOrderOrDefault(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return domain.UnorderedSortOrder
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return domain.UnorderedSortOrder
	}
	return n
}

/********** tiny helpers **********/

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

/********** review mapper **********/

func mapReview(r domain.PlaceReview) domain.NormalizedReview {
	var author domain.AuthorAttribution
	if r.AuthorAttribution != nil {
		author = *r.AuthorAttribution
	}
	return domain.NormalizedReview{
		AuthorName:      derefOr(author.DisplayName, AnonymousAuthor),
		Rating:          ratingOrDefault(r.Rating),
		Text:            r.Text.String(),
		RelativeTime:    deref(r.RelativePublishTimeDescription),
		ProfilePhotoURL: deref(author.PhotoURI),
		AuthorURL:       deref(author.URI),
	}
}

/********** price row mapper **********/

// mapPriceRow turns parsed CSV fields into an item; ok is false when the
// row lacks a category or a service name.
func mapPriceRow(fields []string) (domain.PriceItem, bool) {
	if len(fields) < 2 {
		return domain.PriceItem{}, false
	}
	col := func(i int) string {
		if i < len(fields) {
			return strings.TrimSpace(fields[i])
		}
		return ""
	}
	item := domain.PriceItem{
		Category:    col(0),
		ServiceName: col(1),
		Duration:    col(2),
		Price:       col(3),
		Note:        col(4),
		SortOrder:   sortOrderOrDefault(col(5)),
	}
	if item.Category == "" || item.ServiceName == "" {
		return domain.PriceItem{}, false
	}
	return item, true
}
