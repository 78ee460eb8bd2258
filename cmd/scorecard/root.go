package main

import (
	"github.com/couchcryptid/college-tracker/internal/adapter/scorecard"
	"github.com/couchcryptid/college-tracker/internal/config"
	"github.com/couchcryptid/college-tracker/internal/observability"
	"github.com/couchcryptid/college-tracker/internal/search"
	"github.com/spf13/cobra"
)

var jsonOutput bool

var rootCmd = &cobra.Command{
	Use:           "scorecard",
	Short:         "Search U.S. colleges through the College Scorecard API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print JSON instead of a table")
}

// newService wires the Scorecard client the same way cmd/server does.
func newService() (*search.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := observability.NewCLILogger(cfg)
	metrics := observability.NewMetrics()
	client := scorecard.NewClient(cfg.ScorecardTimeout, metrics, logger,
		scorecard.WithBaseURL(cfg.ScorecardBaseURL),
		scorecard.WithDefaultPerPage(cfg.ScorecardDefaultPerPage),
	)
	return search.NewService(client, metrics, logger), nil
}
