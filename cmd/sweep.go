package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sherine-k/clustersim/pkg/chart"
	"github.com/sherine-k/clustersim/pkg/config"
	"github.com/sherine-k/clustersim/pkg/log"
	"github.com/sherine-k/clustersim/pkg/simulation"
	"github.com/sherine-k/clustersim/pkg/sweep"
	"github.com/sherine-k/clustersim/pkg/workload"
)

var (
	configFile string
	jsonOutput bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run every scheduler across a range of cluster sizes",
	Long: `Loads the workload described in the configuration file, shuffles it with
the configured seed, and simulates each scheduler at every capacity for every
workload multiplier. Prints a chart per series and a summary, or JSON.`,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().StringVarP(&configFile, "config", "c", "sweep.yaml", "Path to configuration file")
	sweepCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
}

// sweepOutput is the JSON document printed by sweep --json
type sweepOutput struct {
	RunID   string         `json:"run_id"`
	Results []sweep.Report `json:"results"`
}

func runSweep(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	runID := uuid.New().String()
	logger := log.WithComponent("cli").With().Str("run_id", runID).Logger()

	base, err := workload.Build(cfg.Workload)
	if err != nil {
		return fmt.Errorf("failed to build workload: %w", err)
	}
	ordered := workload.Shuffle(base, workload.SeedFromConfig(cfg.Workload.Seed))

	capacities := cfg.Capacity.Values
	if len(capacities) == 0 {
		capacities = sweep.Capacities(cfg.Capacity.Min, cfg.Capacity.Max, cfg.Capacity.Step)
	}

	logger.Info().
		Str("config", configFile).
		Int("tasks", len(base)).
		Ints("capacities", capacities).
		Strs("schedulers", cfg.Schedulers).
		Ints("multipliers", cfg.Workload.Multipliers).
		Msg("starting sweep")

	all := []*sweep.Series{}
	for _, name := range cfg.Schedulers {
		scheduler, err := simulation.NewScheduler(simulation.Kind(name), simulation.FallbackPolicy(cfg.Fallback))
		if err != nil {
			return err
		}

		for _, multiplier := range cfg.Workload.Multipliers {
			series, err := sweep.Run(cmd.Context(), scheduler, workload.Repeat(ordered, multiplier), sweep.Options{
				Capacities: capacities,
				TimeUnit:   cfg.TimeUnit,
				Workers:    cfg.Workers,
				Multiplier: multiplier,
			})
			if err != nil {
				return fmt.Errorf("sweep failed for %s x%d: %w", name, multiplier, err)
			}
			all = append(all, series)
		}
	}

	out := cmd.OutOrStdout()

	if jsonOutput {
		doc := sweepOutput{RunID: runID, Results: make([]sweep.Report, 0, len(all))}
		for _, s := range all {
			doc.Results = append(doc.Results, s.Report())
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		return enc.Encode(doc)
	}

	chartGen := chart.NewGenerator()
	for _, s := range all {
		fmt.Fprintln(out, chartGen.GenerateSweepChart(s))
	}
	fmt.Fprintln(out, chartGen.GenerateSummary(all, cfg.TimeUnit))

	return nil
}
