package cmd

import (
	"fmt"
	"os"

	"github.com/crossplay/xwordgen/internal/store"
	"github.com/spf13/cobra"
)

var statsDatabaseURL string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report aggregate statistics from the fill_runs history table",
	Long: `Stats connects to the Postgres database the serve subcommand
records fill_runs into and prints aggregate figures across every run
recorded there: how many runs completed, how many filled every entry,
and the mean best reward and mean iteration count.

Requires a serve subcommand that has been running with --database_url
set; there is no history to report otherwise.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&statsDatabaseURL, "database_url", os.Getenv("DATABASE_URL"), "Postgres connection string")
}

func runStats(cmd *cobra.Command, args []string) error {
	if statsDatabaseURL == "" {
		return fmt.Errorf("stats: --database_url (or DATABASE_URL) is required")
	}

	db, err := store.New(statsDatabaseURL, "")
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}
	defer db.Close()

	s, err := db.ComputeStats()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	fmt.Printf("total runs:          %d\n", s.TotalRuns)
	fmt.Printf("perfect runs:        %d\n", s.PerfectRuns)
	fmt.Printf("mean best reward:    %.4f\n", s.MeanReward)
	fmt.Printf("mean iterations run: %.1f\n", s.MeanIterationsRun)

	return nil
}
