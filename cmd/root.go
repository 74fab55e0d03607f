package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sherine-k/clustersim/pkg/log"
	"github.com/sherine-k/clustersim/pkg/metrics"
)

var (
	logLevel    string
	logJSON     bool
	metricsFile string
)

var rootCmd = &cobra.Command{
	Use:   "clustersim",
	Short: "Cluster Capacity Scheduling Simulator",
	Long: `A CLI tool that simulates scheduling a fixed workload of independent tasks
onto a resource-constrained cluster.

Each task holds a number of nodes for a fixed duration. The tool compares an
on-demand best-fit scheduler against a statically partitioned cluster and
reports how cluster size trades off against completion time and utilization.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Init(log.Config{
			Level:      log.ParseLevel(logLevel),
			JSONOutput: logJSON,
			Output:     cmd.ErrOrStderr(),
		})
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if metricsFile == "" {
			return nil
		}
		if err := metrics.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.Logger.Info().Str("path", metricsFile).Msg("metrics written")
		return nil
	},
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after the run")

	rootCmd.SetErr(os.Stderr)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(simulateCmd)
}
