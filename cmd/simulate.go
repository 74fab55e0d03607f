package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/markphelps/optional"
	"github.com/spf13/cobra"

	"github.com/sherine-k/clustersim/pkg/chart"
	"github.com/sherine-k/clustersim/pkg/simulation"
	"github.com/sherine-k/clustersim/pkg/workload"
)

var (
	tasksFile     string
	capacity      int
	schedulerName string
	fallback      string
	seed          int64
	showTimeline  bool
	timelineLimit int
	simulateJSON  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate one scheduler at one cluster size",
	Long: `Runs a single simulation of the task inventory on a cluster of the given
capacity and prints the result next to the sequential baseline, optionally
with the full start/end event timeline.`,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&tasksFile, "tasks", "f", "tasks.json", "Path to JSON task inventory")
	simulateCmd.Flags().IntVarP(&capacity, "capacity", "n", 0, "Cluster capacity in nodes")
	simulateCmd.Flags().StringVarP(&schedulerName, "scheduler", "s", string(simulation.KindOnDemand), "Scheduler (on-demand, partitioned)")
	simulateCmd.Flags().StringVar(&fallback, "fallback", string(simulation.FallbackLast), "On-demand candidate when nothing fits (last, smallest)")
	simulateCmd.Flags().Int64Var(&seed, "seed", 0, "Shuffle tasks with this seed before simulating")
	simulateCmd.Flags().BoolVarP(&showTimeline, "timeline", "t", false, "Show detailed timeline of events")
	simulateCmd.Flags().IntVarP(&timelineLimit, "timeline-limit", "l", 50, "Limit number of timeline events to display")
	simulateCmd.Flags().BoolVar(&simulateJSON, "json", false, "Print results as JSON")
}

// simulateOutput is the JSON document printed by simulate --json
type simulateOutput struct {
	Scheduler  string            `json:"scheduler"`
	Result     simulation.Result `json:"result"`
	Sequential simulation.Result `json:"sequential"`
}

func runSimulate(cmd *cobra.Command, args []string) error {
	tasks, err := workload.LoadFile(tasksFile)
	if err != nil {
		return err
	}

	s := optional.Int64{}
	if cmd.Flags().Changed("seed") {
		s = optional.NewInt64(seed)
	}
	tasks = workload.Shuffle(tasks, s)

	scheduler, err := simulation.NewScheduler(simulation.Kind(schedulerName), simulation.FallbackPolicy(fallback))
	if err != nil {
		return err
	}

	sched, err := scheduler.Schedule(tasks, capacity)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	sequential, err := simulation.RunSequential(tasks)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	out := cmd.OutOrStdout()

	if simulateJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "    ")
		return enc.Encode(simulateOutput{
			Scheduler:  scheduler.Name(),
			Result:     sched.Result,
			Sequential: sequential,
		})
	}

	chartGen := chart.NewGenerator()
	fmt.Fprintln(out, chartGen.GenerateResult(scheduler.Name(), sched.Result))
	fmt.Fprintln(out, chartGen.GenerateResult("sequential", sequential))

	// Display detailed timeline if requested
	if showTimeline {
		fmt.Fprintln(out, chartGen.GenerateDetailedTimeline(sched.Events, timelineLimit))
	}

	return nil
}
