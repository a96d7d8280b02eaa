package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	gainStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	lossStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F87"))
)

// WriteSummary prints the run's results for the tracked seat and the final
// bankroll of every seat. names labels seats; window sizes the trend windows.
func WriteSummary(w io.Writer, sim *Simulator, names []string, window int) {
	stats := sim.Stats()
	seat := sim.Config().TrackSeat

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("Results for %s (seat %d)", label(names, seat), seat)))
	fmt.Fprintf(w, "Hands played: %d", sim.Played())
	if elapsed := sim.Elapsed(); elapsed > 0 {
		fmt.Fprintf(w, " in %s (%.0f hands/sec)", elapsed.Round(time.Millisecond), float64(sim.Played())/elapsed.Seconds())
	}
	fmt.Fprintln(w)
	if stats.Hands == 0 {
		return
	}

	low, high := stats.ConfidenceInterval95()
	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Statistics"))
	fmt.Fprintf(w, "Mean: %s chips/hand\n", signed(stats.Mean(), "%+.4f"))
	fmt.Fprintf(w, "Median: %.4f chips/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f  Std Error: %.4f\n", stats.StdDev(), stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f]\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.2f P25=%.2f P75=%.2f P95=%.2f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Profit Source"))
	fmt.Fprintf(w, "Showdown: %d wins, %.2f chips/hand\n", stats.ShowdownWins, stats.ShowdownNet/float64(stats.Hands))
	fmt.Fprintf(w, "Uncontested: %d wins, %.2f chips/hand\n", stats.UncontestedWins, stats.UncontestedNet/float64(stats.Hands))
	fmt.Fprintf(w, "Hands without a decision: %d\n", stats.Idle)
	fmt.Fprintf(w, "Largest pot: %d chips\n", stats.MaxPot)

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Position"))
	for pos, ps := range stats.Positions {
		if ps.Hands == 0 {
			continue
		}
		fmt.Fprintf(w, "Dealer+%d: %d hands, %.3f chips/hand\n", pos, ps.Hands, ps.Mean())
	}

	if means := stats.WindowMeans(window); len(means) > 1 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, sectionStyle.Render(fmt.Sprintf("Trend (%d-hand windows)", window)))
		fmt.Fprintf(w, "First: %.4f  Last: %.4f  Change: %s\n", means[0], means[len(means)-1], signed(stats.Trend(window), "%+.4f"))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, sectionStyle.Render("Bankroll"))
	for s, chips := range sim.Bankroll().Snapshot() {
		fmt.Fprintf(w, "%-12s %s\n", label(names, s), signed(chips, "%+.2f"))
	}
}

func signed(v float64, format string) string {
	text := fmt.Sprintf(format, v)
	switch {
	case v > 0:
		return gainStyle.Render(text)
	case v < 0:
		return lossStyle.Render(text)
	default:
		return text
	}
}

func label(names []string, seat int) string {
	if seat < len(names) && names[seat] != "" {
		return names[seat]
	}
	return fmt.Sprintf("seat%d", seat)
}
