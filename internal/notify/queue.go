// Package notify implements a self-expiring queue of short status messages.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a notification stays visible.
const DefaultTTL = 3 * time.Second

// Severity tags a notification.
type Severity string

const (
	Success Severity = "success"
	Error   Severity = "error"
	Info    Severity = "info"
)

// Notification is a single status message.
type Notification struct {
	ID        string
	Severity  Severity
	Text      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the notification is past its expiry at now.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// Queue holds notifications in insertion order. Each entry carries its own
// expiry; Sweep (or Run) removes expired entries. There is no size cap.
type Queue struct {
	mu    sync.Mutex
	items []Notification
	ttl   time.Duration

	// Now returns the current time. Replaced by tests.
	Now func() time.Time
}

// NewQueue creates a queue whose entries expire after ttl.
// A non-positive ttl selects DefaultTTL.
func NewQueue(ttl time.Duration) *Queue {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Queue{ttl: ttl, Now: time.Now}
}

// Push appends a notification with a fresh ID and returns it.
func (q *Queue) Push(sev Severity, text string) Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.Now()
	n := Notification{
		ID:        uuid.NewString(),
		Severity:  sev,
		Text:      text,
		CreatedAt: now,
		ExpiresAt: now.Add(q.ttl),
	}
	q.items = append(q.items, n)
	return n
}

// Active returns the unexpired notifications in insertion order.
func (q *Queue) Active() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.Now()
	var result []Notification
	for _, n := range q.items {
		if !n.Expired(now) {
			result = append(result, n)
		}
	}
	return result
}

// Sweep removes expired notifications and returns how many were removed.
func (q *Queue) Sweep() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.Now()
	kept := q.items[:0]
	for _, n := range q.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	removed := len(q.items) - len(kept)
	// clear the tail so dropped entries can be collected
	for i := len(kept); i < len(q.items); i++ {
		q.items[i] = Notification{}
	}
	q.items = kept
	return removed
}

// Drain returns the unexpired notifications and empties the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	now := q.Now()
	var result []Notification
	for _, n := range q.items {
		if !n.Expired(now) {
			result = append(result, n)
		}
	}
	q.items = nil
	return result
}

// Len returns the number of stored notifications, expired or not.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Run sweeps the queue every interval until ctx is done.
func (q *Queue) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			q.Sweep()
		}
	}
}
