package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var reviewsCmd = &cobra.Command{
	Use:   "reviews",
	Short: "Fetch and normalize Google Place reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		out, err := buildServices().reviews.PlaceReviews(ctx)
		if err != nil {
			return fmt.Errorf("reviews: %w", err)
		}
		return printJSON(cmd, cmd.OutOrStdout(), out)
	},
}

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Fetch and parse the price sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		out, err := buildServices().prices.Catalog(ctx)
		if err != nil {
			return fmt.Errorf("prices: %w", err)
		}
		return printJSON(cmd, cmd.OutOrStdout(), out)
	},
}

// checkCmd runs both proxies concurrently and reports each outcome.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe both upstreams and report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()
		svc := buildServices()

		// plain Group: one failing probe must not cancel the other
		var g errgroup.Group
		g.Go(func() error {
			out, err := svc.reviews.PlaceReviews(ctx)
			if err != nil {
				log.Error().Err(err).Msg("reviews check failed")
				return fmt.Errorf("reviews: %w", err)
			}
			log.Info().Str("place", out.PlaceName).Int("reviews", len(out.Reviews)).Msg("reviews ok")
			return nil
		})
		g.Go(func() error {
			out, err := svc.prices.Catalog(ctx)
			if err != nil {
				log.Error().Err(err).Msg("prices check failed")
				return fmt.Errorf("prices: %w", err)
			}
			log.Info().Int("categories", len(out.Categories)).Int("items", len(out.Items)).Msg("prices ok")
			return nil
		})
		return g.Wait()
	},
}
