package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gratefultolord/prep_requests_bot/internal/config"
	"github.com/gratefultolord/prep_requests_bot/internal/db"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print accepted request statistics from the configured store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("cannot load config: %w", err)
			}

			store, closeStore, err := openStore(cmd.Context(), cfg, zap.NewNop())
			if err != nil {
				return err
			}
			defer closeStore()

			stats, err := db.NewSubmissionRepository(store).GetStatistics(cmd.Context())
			if err != nil {
				return err
			}

			return printStatistics(cmd.OutOrStdout(), stats)
		},
	}
}

func printStatistics(w io.Writer, stats db.Statistics) error {
	_, err := fmt.Fprintf(w,
		"accepted_students\t%d\ntotal_codes\t%d\ntotal_english_codes\t%d\ntotal\t%d\n",
		stats.AcceptedCount, stats.TotalCodes, stats.TotalEnglishCodes, stats.Total())

	return err
}
