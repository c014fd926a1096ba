package commands

import (
	"resp-analyzer/internal/config"
	"resp-analyzer/internal/logging"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "resp-analyzer",
	Short: "Schedule RESP Analyzer: duration ratios and on-time probabilities per responsible party",
	Long: `Reads a schedule export (e.g. copied from P6 into an .xlsx file), computes the
three-point Min / Most Likely / Max ratio of actual to original duration for every
RESP group and, optionally, estimates the probability of finishing on time with a
Beta-PERT Monte-Carlo simulation.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return err
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Msg("resp-analyzer starting")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
