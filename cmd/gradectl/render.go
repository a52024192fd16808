package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/gradewise-dev/gradewise/internal/client"
)

const barWidth = 30

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
}

// bar draws value (0-100) as a fixed-width bar.
func bar(value float64) string {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	filled := int(value/100*barWidth + 0.5)
	return strings.Repeat("#", filled) + strings.Repeat(".", barWidth-filled)
}

func renderSubjects(out io.Writer, subjects []client.Subject) error {
	if len(subjects) == 0 {
		_, err := fmt.Fprintln(out, "No subjects yet. Add one with: subjects add NAME")
		return err
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tNAME")
	for _, s := range subjects {
		fmt.Fprintf(w, "%d\t%s\n", s.ID, s.Name)
	}
	return w.Flush()
}

func renderScores(out io.Writer, scores []client.Score) error {
	if len(scores) == 0 {
		_, err := fmt.Fprintln(out, "No scores yet.")
		return err
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tSUBJECT\tASSIGNMENT\tSCORE\tDATE")
	for _, s := range scores {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f\t%s\n", s.ID, s.Subject.Name, s.AssignmentName, s.Value, s.Date.Format("2006-01-02"))
	}
	return w.Flush()
}

func renderGoals(out io.Writer, goals []client.Goal) error {
	if len(goals) == 0 {
		_, err := fmt.Fprintln(out, "No goals yet.")
		return err
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tGOAL\tTARGET\tDEADLINE\tSTATUS")
	for _, g := range goals {
		status := g.Status
		if g.AchievedScore != nil {
			status = fmt.Sprintf("%s (%.1f)", status, *g.AchievedScore)
		}
		fmt.Fprintf(w, "%d\t%s\t%.1f\t%s\t%s\n", g.ID, g.Description, g.TargetScore, g.Deadline.Format("2006-01-02"), status)
	}
	return w.Flush()
}

func renderDashboard(out io.Writer, dash *client.Dashboard) error {
	fmt.Fprintf(out, "%s's dashboard\n\n", dash.User.Name)
	fmt.Fprintf(out, "Subjects: %d   Scores: %d   Goals: %d\n", len(dash.Subjects), len(dash.Scores), len(dash.Goals))

	if dash.OverallAverage != nil {
		fmt.Fprintf(out, "Overall average: %.1f\n", *dash.OverallAverage)
	}

	if len(dash.Averages) > 0 {
		fmt.Fprintln(out, "\nAverage by subject")
		w := newTable(out)
		for _, avg := range dash.Averages {
			fmt.Fprintf(w, "%s\t%s\t%.1f\t(%d)\n", avg.Name, bar(avg.Average), avg.Average, avg.Count)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if len(dash.RecentGoals) > 0 {
		fmt.Fprintln(out, "\nRecent goals")
		return renderGoals(out, dash.RecentGoals)
	}

	return nil
}
