package domain

import "context"

type PlacesClient interface {
	// PlaceDetails returns *UpstreamError for a non-2xx response.
	PlaceDetails(ctx context.Context, apiKey, placeID string) (PlaceDetails, error)
}

type PriceSheetSource interface {
	// FetchCSV returns the raw sheet export body.
	FetchCSV(ctx context.Context) (string, error)
}
