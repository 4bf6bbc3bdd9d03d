package app

import (
	"context"
	"fmt"
	"strings"

	"salon_site/internal/domain"
)

// MaxReviews caps the list in upstream order; reviews are never re-sorted.
const MaxReviews = 6

type ReviewsConfig struct {
	APIKey  string
	PlaceID string
}

type ReviewsService struct {
	places domain.PlacesClient
	cfg    ReviewsConfig
}

func NewReviewsService(c domain.PlacesClient, cfg ReviewsConfig) *ReviewsService {
	return &ReviewsService{places: c, cfg: cfg}
}

// PlaceReviews fetches the place once and reshapes it for the front end.
// Missing credentials fail with domain.ErrConfigMissing before any call.
func (s *ReviewsService) PlaceReviews(ctx context.Context) (domain.PlaceReviews, error) {
	if s.cfg.APIKey == "" || s.cfg.PlaceID == "" {
		return domain.PlaceReviews{}, domain.ErrConfigMissing
	}

	p, err := s.places.PlaceDetails(ctx, s.cfg.APIKey, s.cfg.PlaceID)
	if err != nil {
		return domain.PlaceReviews{}, fmt.Errorf("place details: %w", err)
	}

	return domain.PlaceReviews{
		PlaceName:       p.DisplayName.String(),
		Rating:          p.Rating,
		UserRatingCount: p.UserRatingCount,
		Reviews:         normalizeReviews(p.Reviews),
		PlaceID:         s.cfg.PlaceID,
		GoogleURL:       GoogleMapsURL(s.cfg.PlaceID),
	}, nil
}

// normalizeReviews keeps the first MaxReviews, then drops blank texts.
// The result is never nil so it encodes as [].
func normalizeReviews(in []domain.PlaceReview) []domain.NormalizedReview {
	if len(in) > MaxReviews {
		in = in[:MaxReviews]
	}
	out := make([]domain.NormalizedReview, 0, len(in))
	for _, r := range in {
		nr := mapReview(r)
		if strings.TrimSpace(nr.Text) == "" {
			continue
		}
		out = append(out, nr)
	}
	return out
}

// GoogleMapsURL deep-links to the public Maps page of a place.
func GoogleMapsURL(placeID string) string {
	return "https://www.google.com/maps/place/?q=place_id:" + placeID + "&hl=tr&gl=TR"
}
