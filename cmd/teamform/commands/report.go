package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ahrav/teamform/internal/application"
	"github.com/ahrav/teamform/internal/domain"
)

var (
	green = color.New(color.FgGreen)
	bold  = color.New(color.FgGreen, color.Bold)
	red   = color.New(color.FgRed, color.Bold)
	cyan  = color.New(color.FgCyan)
	faint = color.New(color.Faint)
)

func writePoolSummary(w io.Writer, pool *domain.Pool, plans int) {
	cyan.Fprintf(w, "Pool: %d voters, %d goals, %d advanced participants; %d candidate plans\n\n",
		len(pool.Votes()), len(pool.Goals()), len(pool.AdvancedParticipants()), plans)
}

// writeAppraisal prints a plan's score followed by its objective breakdown.
func writeAppraisal(w io.Writer, a *domain.Appraisal, highlight bool) {
	marker, c := "✓", green
	if highlight {
		marker, c = "★", bold
	}
	c.Fprintf(w, "%s %-20s %.4f\n", marker, a.PlanID, a.Score)
	for _, o := range a.Objectives {
		fmt.Fprintf(w, "    %-24s weight=%-6g %.4f\n", o.Objective, o.Weight, o.Score)
	}
}

func writeRejection(w io.Writer, planID string, err error) {
	red.Fprintf(w, "✗ %-20s rejected\n", planID)
	faint.Fprintf(w, "    %v\n", err)
}

func writeSelection(w io.Writer, sel *application.Selection) {
	cyan.Fprintf(w, "Selection %s\n", sel.ID)
	fmt.Fprintf(w, "  candidates: %d  rejected: %d\n\n", len(sel.Candidates), len(sel.Rejected))
	writeAppraisal(w, sel.Best, true)
	for _, r := range sel.Rejected {
		writeRejection(w, r.PlanID, r.Err)
	}
}

// writeMetricsSummary prints one line per collected series: counter and
// gauge values, histogram sample counts.
func writeMetricsSummary(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	var lines []string
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			switch {
			case m.GetCounter() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetCounter().GetValue()))
			case m.GetGauge() != nil:
				lines = append(lines, fmt.Sprintf("%s %g", name, m.GetGauge().GetValue()))
			case m.GetHistogram() != nil:
				lines = append(lines, fmt.Sprintf("%s count=%d", name, m.GetHistogram().GetSampleCount()))
			}
		}
	}
	slices.Sort(lines)

	fmt.Fprintln(w)
	cyan.Fprintln(w, "Metrics:")
	for _, l := range lines {
		fmt.Fprintf(w, "  %s\n", l)
	}
	return nil
}
