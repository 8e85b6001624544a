package tasks

import (
	"strings"

	"wtask/internal/service"
)

// Filter restricts a view to one status, or to none with FilterAll.
type Filter string

// FilterAll matches every task.
const FilterAll Filter = "ALL"

// ParseFilter accepts "all" (or empty) and any status name.
func ParseFilter(s string) (Filter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, string(FilterAll)) {
		return FilterAll, nil
	}
	st, err := service.ParseStatus(s)
	if err != nil {
		return "", err
	}
	return Filter(st), nil
}

// Match reports whether t passes the filter. A task without a status is NEW.
func (f Filter) Match(t service.Task) bool {
	if f == FilterAll || f == "" {
		return true
	}
	return service.Status(f) == t.Status.OrDefault()
}
