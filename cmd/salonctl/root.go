package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"salon_site/internal/adapters/observability"
	"salon_site/internal/adapters/places"
	"salon_site/internal/adapters/sheets"
	"salon_site/internal/adapters/upstream"
	"salon_site/internal/app"
	"salon_site/internal/shared"
)

var cfg shared.Config

var rootCmd = &cobra.Command{
	Use:           "salonctl",
	Short:         "Run the salon site proxies from the command line",
	Long:          "salonctl fetches Google reviews and the price sheet exactly like the API does and prints the JSON.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = shared.Load()
		// logs go to stderr so stdout stays pipeable JSON
		log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv)

		if v, _ := cmd.Flags().GetString("place-id"); v != "" {
			cfg.PlaceID = v
		}
		if v, _ := cmd.Flags().GetString("csv-url"); v != "" {
			cfg.PricesCSVURL = v
		}
		if v, _ := cmd.Flags().GetDuration("timeout"); v > 0 {
			cfg.UpstreamTimeout = v
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("place-id", "", "Override GOOGLE_PLACE_ID")
	rootCmd.PersistentFlags().String("csv-url", "", "Override PRICES_CSV_URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Outbound timeout (default from UPSTREAM_TIMEOUT_SECONDS)")
	rootCmd.PersistentFlags().Bool("compact", false, "Print compact JSON")

	rootCmd.AddCommand(reviewsCmd, pricesCmd, checkCmd)
}

type services struct {
	reviews *app.ReviewsService
	prices  *app.PriceService
}

func buildServices() services {
	hc := upstream.NewHTTPClient(cfg.UpstreamTimeout)
	rl := upstream.NewLimiter(cfg.UpstreamRPS)
	return services{
		reviews: app.NewReviewsService(
			places.New(cfg.PlacesBase, cfg.PlacesLanguage, hc, rl),
			app.ReviewsConfig{APIKey: cfg.PlacesAPIKey, PlaceID: cfg.PlaceID},
		),
		prices: app.NewPriceService(sheets.New(cfg.PricesCSVURL, hc, rl)),
	}
}

// commandContext bounds a CLI run a little above the outbound timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), cfg.UpstreamTimeout+5*time.Second)
}

func printJSON(cmd *cobra.Command, w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if compact, _ := cmd.Flags().GetBool("compact"); !compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
