package chart

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sherine-k/clustersim/pkg/simulation"
	"github.com/sherine-k/clustersim/pkg/sweep"
)

const (
	chartWidth = 80
	// columns used by the label and the trailing figures of a bar row
	labelWidth   = 7
	figuresWidth = 22
)

// Generator generates ASCII charts
type Generator struct {
	width int
}

// NewGenerator creates a new chart generator
func NewGenerator() *Generator {
	return &Generator{
		width: chartWidth,
	}
}

// GenerateSweepChart draws one bar per capacity, sized by parallelism
func (g *Generator) GenerateSweepChart(series *sweep.Series) string {
	if len(series.Points) == 0 {
		return "No data to display"
	}

	var sb strings.Builder

	// Header
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Parallelism by Capacity: %s (%d tasks, x%d)\n", series.Scheduler, series.NumTasks, series.Multiplier))
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	parallelism := make([]float64, len(series.Points))
	for i, p := range series.Points {
		parallelism[i] = p.Parallelism
	}
	peak := floats.Max(parallelism)
	barWidth := g.width - labelWidth - figuresWidth

	for _, p := range series.Points {
		n := 0
		if peak > 0 {
			n = int(p.Parallelism / peak * float64(barWidth))
		}
		sb.WriteString(fmt.Sprintf("%5d |", p.Capacity))
		sb.WriteString(strings.Repeat("█", n))
		sb.WriteString(strings.Repeat(" ", barWidth-n))
		sb.WriteString(fmt.Sprintf(" %6.2fx  eff %5.1f%%\n", p.Parallelism, p.Efficiency*100))
	}

	// Axis
	sb.WriteString("      +")
	sb.WriteString(strings.Repeat("-", barWidth))
	sb.WriteString("\n")

	// Legend
	sb.WriteString("\n")
	sb.WriteString("Legend:\n")
	sb.WriteString("  █ - speedup over running every task back-to-back\n")
	sb.WriteString("  eff - task footprint / resource footprint\n")
	if len(series.Skipped) > 0 {
		sb.WriteString(fmt.Sprintf("  skipped capacities: %v\n", series.Skipped))
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateSummary generates a summary of every series, grouped by scheduler
func (g *Generator) GenerateSummary(series []*sweep.Series, unit time.Duration) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Sweep Summary\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	byScheduler := make(map[string][]*sweep.Series)
	for _, s := range series {
		byScheduler[s.Scheduler] = append(byScheduler[s.Scheduler], s)
	}
	names := maps.Keys(byScheduler)
	slices.Sort(names)

	for _, name := range names {
		sb.WriteString(fmt.Sprintf("%s:\n", name))
		for _, s := range byScheduler[name] {
			sb.WriteString(fmt.Sprintf("  x%d (%d tasks), serial duration %s\n",
				s.Multiplier, s.NumTasks, FormatDuration(scale(s.SerialDuration, unit))))

			if len(s.Points) == 0 {
				sb.WriteString("    no capacity could be simulated\n")
				continue
			}

			efficiency := make([]float64, len(s.Points))
			parallelism := make([]float64, len(s.Points))
			for i, p := range s.Points {
				efficiency[i] = p.Efficiency
				parallelism[i] = p.Parallelism
			}
			best := s.Points[floats.MaxIdx(efficiency)]
			fastest := s.Points[floats.MaxIdx(parallelism)]

			sb.WriteString(fmt.Sprintf("    - Best Efficiency: %.1f%% at %d\n", best.Efficiency*100, best.Capacity))
			sb.WriteString(fmt.Sprintf("    - Mean Efficiency: %.1f%%\n", stat.Mean(efficiency, nil)*100))
			sb.WriteString(fmt.Sprintf("    - Peak Parallelism: %.2fx at %d (%s)\n",
				fastest.Parallelism, fastest.Capacity, FormatDuration(scale(fastest.Duration, unit))))
			if len(s.Skipped) > 0 {
				sb.WriteString(fmt.Sprintf("    - Skipped: %v\n", s.Skipped))
			}
		}
	}
	sb.WriteString("\n")

	return sb.String()
}

// GenerateResult describes a single run
func (g *Generator) GenerateResult(scheduler string, result simulation.Result) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Result: %s\n", scheduler))
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  - Capacity: %d\n", result.Capacity))
	sb.WriteString(fmt.Sprintf("  - Duration: %s\n", FormatDuration(scale(result.Duration, time.Second))))
	sb.WriteString(fmt.Sprintf("  - Resource Footprint: %.0f\n", result.ResourceFootprint))
	sb.WriteString(fmt.Sprintf("  - Task Footprint: %.0f\n", result.TaskFootprint))
	sb.WriteString(fmt.Sprintf("  - Efficiency: %.1f%%\n", result.Efficiency*100))
	sb.WriteString("\n")

	return sb.String()
}

// GenerateDetailedTimeline generates a detailed timeline of events
func (g *Generator) GenerateDetailedTimeline(events []simulation.Event, limit int) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString("Detailed Timeline")
	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf(" (showing first %d events)", limit))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n\n")

	displayCount := len(events)
	if limit > 0 && limit < displayCount {
		displayCount = limit
	}

	inUse := 0
	for i := 0; i < displayCount; i++ {
		event := events[i]

		typeIcon := " "
		switch event.Type {
		case simulation.EventTypeStart:
			typeIcon = "+"
			inUse += event.Task.Resource
		case simulation.EventTypeEnd:
			typeIcon = "-"
			inUse -= event.Task.Resource
		}

		sb.WriteString(fmt.Sprintf("[%10s] %s [%d] %s\n",
			FormatDuration(scale(event.Time, time.Second)),
			typeIcon,
			inUse,
			event.Task))
	}

	if limit > 0 && limit < len(events) {
		sb.WriteString(fmt.Sprintf("\n... and %d more events\n", len(events)-limit))
	}

	sb.WriteString("\n")

	return sb.String()
}

// scale converts an amount of unit into a time.Duration
func scale(amount float64, unit time.Duration) time.Duration {
	return time.Duration(amount * float64(unit))
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
