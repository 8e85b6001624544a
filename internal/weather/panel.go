// Package weather holds the weather panel state: the latest snapshot or the
// error of the latest failed lookup.
package weather

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"wtask/internal/notify"
	"wtask/internal/service"
)

// Panel shows at most one snapshot. Each successful lookup replaces it
// wholesale; a failed lookup clears it. Lookups are not sequenced, so when
// two overlap the one that completes last wins.
type Panel struct {
	svc   service.WeatherService
	notes *notify.Queue

	mu   sync.RWMutex
	snap *service.Snapshot
	err  string
}

// New creates an empty panel.
func New(svc service.WeatherService, notes *notify.Queue) *Panel {
	return &Panel{svc: svc, notes: notes}
}

// Lookup fetches the weather for city. A blank city is ignored.
func (p *Panel) Lookup(ctx context.Context, city string) error {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil
	}

	snap, err := p.svc.Lookup(ctx, city)

	p.mu.Lock()
	if err != nil {
		p.snap = nil
		p.err = err.Error()
	} else {
		p.snap = &snap
		p.err = ""
	}
	p.mu.Unlock()

	if err != nil {
		p.notes.Push(notify.Error, fmt.Sprintf("weather for %s: %v", city, err))
		return err
	}
	p.notes.Push(notify.Success, fmt.Sprintf("weather loaded for %s", snap.Place))
	return nil
}

// Snapshot returns the current snapshot, if any.
func (p *Panel) Snapshot() (service.Snapshot, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.snap == nil {
		return service.Snapshot{}, false
	}
	return *p.snap, true
}

// Err returns the message of the last failed lookup, or "".
func (p *Panel) Err() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}
