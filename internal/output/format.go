// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"wtask/internal/notify"
	"wtask/internal/service"
)

const (
	// EmptyList is printed when there are no tasks to show.
	EmptyList = "no tasks found"

	// labelWidth fits the longest status label ("In Progress").
	labelWidth = 11
)

// FormatTask formats a task line.
// Format: "{ID:>4}  {STATUS:<11}  {TITLE}\n"
func FormatTask(w io.Writer, task service.Task, pal *Palette) {
	title := normalizeTitle(task.Title)
	label := fmt.Sprintf("%-*s", labelWidth, task.Status.Label())
	fmt.Fprintf(w, "%4s  %s  %s\n", task.ID, pal.Paint(task.Status, label), title)
}

// FormatTasks formats a task list, or EmptyList if there are none.
func FormatTasks(w io.Writer, tasks []service.Task, pal *Palette) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyList)
		return
	}
	for _, t := range tasks {
		FormatTask(w, t, pal)
	}
}

// FormatCounts formats the totals bar.
func FormatCounts(w io.Writer, c service.Counts) {
	fmt.Fprintf(w, "Total: %d  New: %d  In Progress: %d  Done: %d\n", c.Total, c.New, c.InProgress, c.Done)
}

// FormatWeather formats a weather snapshot.
// Format: "{PLACE}  {TEMP}°C  {DESCRIPTION}\n"
func FormatWeather(w io.Writer, s service.Snapshot) {
	line := fmt.Sprintf("%s  %d°C", s.Place, s.RoundedTemp())
	if s.Description != "" {
		line += "  " + s.Description
	}
	fmt.Fprintln(w, line)
}

// FormatNotification formats a notification line.
func FormatNotification(w io.Writer, n notify.Notification) {
	switch n.Severity {
	case notify.Success:
		fmt.Fprintf(w, "ok: %s\n", n.Text)
	case notify.Error:
		fmt.Fprintf(w, "error: %s\n", n.Text)
	default:
		fmt.Fprintln(w, n.Text)
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
