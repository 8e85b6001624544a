// Package service defines the backend-agnostic types and interfaces for the
// task, auth and weather collaborators.
package service

import (
	"fmt"
	"math"
	"strings"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusNew, StatusInProgress, StatusDone}

// OrDefault returns the status, treating an absent value as NEW.
func (s Status) OrDefault() Status {
	if s == "" {
		return StatusNew
	}
	return s
}

// Label returns the human-readable name of the status.
func (s Status) Label() string {
	switch s.OrDefault() {
	case StatusInProgress:
		return "In Progress"
	case StatusDone:
		return "Done"
	case StatusNew:
		return "New"
	default:
		return string(s)
	}
}

// ParseStatus parses a status name case-insensitively.
// Dashes and spaces are accepted in place of underscores ("in-progress").
func ParseStatus(s string) (Status, error) {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	for _, st := range Statuses {
		if norm == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("invalid status: %s", s)
}

// Task represents a single task item.
type Task struct {
	ID     string
	Title  string
	Status Status // empty means NEW
}

// Counts holds aggregate task counts per status bucket.
type Counts struct {
	Total      int
	New        int
	InProgress int
	Done       int
}

// Snapshot is a single weather reading for a place.
type Snapshot struct {
	Place       string
	TempC       float64
	Description string
}

// RoundedTemp returns the temperature rounded to the nearest whole degree.
func (s Snapshot) RoundedTemp() int {
	return int(math.Round(s.TempC))
}
