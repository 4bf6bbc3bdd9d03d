package domain

import (
	"bytes"
	"encoding/json"
	"math"
)

// LocalizedText is a Places text field. The API returns either a bare
// string or {"text": ..., "languageCode": ...}; both decode to Text.
// Any other shape decodes to the zero value instead of failing.
type LocalizedText struct {
	Text         string
	LanguageCode string
}

func (t *LocalizedText) UnmarshalJSON(b []byte) error {
	*t = LocalizedText{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err == nil {
			t.Text = s
		}
	case '{':
		var obj struct {
			Text         any `json:"text"`
			LanguageCode any `json:"languageCode"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return nil
		}
		if s, ok := obj.Text.(string); ok {
			t.Text = s
		}
		if s, ok := obj.LanguageCode.(string); ok {
			t.LanguageCode = s
		}
	}
	return nil
}

func (t LocalizedText) String() string { return t.Text }

type AuthorAttribution struct {
	DisplayName *string `json:"displayName"`
	PhotoURI    *string `json:"photoUri"`
	URI         *string `json:"uri"`
}

// PlaceReview is one review as received from the Places API.
// Rating stays raw so a non-numeric value can fall back to the default.
type PlaceReview struct {
	Rating                         json.RawMessage    `json:"rating"`
	Text                           LocalizedText      `json:"text"`
	RelativePublishTimeDescription *string            `json:"relativePublishTimeDescription"`
	PublishTime                    *string            `json:"publishTime"`
	AuthorAttribution              *AuthorAttribution `json:"authorAttribution"`
}

// PlaceDetails is the field-masked place payload. Rating and
// UserRatingCount stay nil unless the API sent a usable number.
type PlaceDetails struct {
	DisplayName     LocalizedText `json:"displayName"`
	Rating          *float64      `json:"rating"`
	UserRatingCount *int64        `json:"userRatingCount"`
	Reviews         []PlaceReview `json:"reviews"`
}

func (p *PlaceDetails) UnmarshalJSON(b []byte) error {
	type plain PlaceDetails
	aux := struct {
		*plain
		Rating          json.RawMessage `json:"rating"`
		UserRatingCount json.RawMessage `json:"userRatingCount"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	p.Rating, p.UserRatingCount = nil, nil
	if f, ok := jsonNumber(aux.Rating); ok {
		p.Rating = &f
	}
	if f, ok := jsonNumber(aux.UserRatingCount); ok && f == math.Trunc(f) {
		n := int64(f)
		p.UserRatingCount = &n
	}
	return nil
}

func jsonNumber(raw json.RawMessage) (float64, bool) {
	var v any
	if len(raw) == 0 || json.Unmarshal(raw, &v) != nil {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// NormalizedReview is what the front end renders.
type NormalizedReview struct {
	AuthorName      string `json:"authorName"`
	Rating          int    `json:"rating"`
	Text            string `json:"text"`
	RelativeTime    string `json:"relativeTime"`
	ProfilePhotoURL string `json:"profilePhotoUrl,omitempty"`
	AuthorURL       string `json:"authorUrl,omitempty"`
}

type PlaceReviews struct {
	PlaceName       string             `json:"placeName,omitempty"`
	Rating          *float64           `json:"rating,omitempty"`
	UserRatingCount *int64             `json:"userRatingCount,omitempty"`
	Reviews         []NormalizedReview `json:"reviews"`
	PlaceID         string             `json:"placeId"`
	GoogleURL       string             `json:"googleUrl"`
}
