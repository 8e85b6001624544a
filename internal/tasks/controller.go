// Package tasks owns the client-side copy of the task collection and keeps
// it in step with the task backend.
package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"wtask/internal/notify"
	"wtask/internal/service"
	"wtask/internal/session"
)

// Session is the part of the session store the controller needs: forcing
// a sign-out when the backend rejects the credential.
type Session interface {
	SignOut(reason session.Reason) bool
}

// Controller holds the task collection. The collection changes only after
// the backend confirms a mutation; failed calls leave it untouched.
//
// Backend calls run without holding the lock. Two in-flight updates of the
// same task are applied in completion order, so the last response wins.
type Controller struct {
	svc   service.TaskService
	sess  Session
	notes *notify.Queue
	log   *slog.Logger

	mu    sync.RWMutex
	tasks []service.Task
}

// New creates an empty controller.
func New(svc service.TaskService, sess Session, notes *notify.Queue, log *slog.Logger) *Controller {
	return &Controller{svc: svc, sess: sess, notes: notes, log: log}
}

// Refresh replaces the collection with the backend's list.
func (c *Controller) Refresh(ctx context.Context) error {
	list, err := c.svc.List(ctx)
	if err != nil {
		return c.fail("could not load tasks", err)
	}

	c.mu.Lock()
	c.tasks = append([]service.Task(nil), list...)
	c.mu.Unlock()

	c.notes.Push(notify.Info, fmt.Sprintf("%d tasks loaded", len(list)))
	return nil
}

// Add creates a task and appends the server's record to the collection.
// A blank title is ignored: no call is made and (nil, nil) is returned.
func (c *Controller) Add(ctx context.Context, title string) (*service.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	t, err := c.svc.Create(ctx, title)
	if err != nil {
		return nil, c.fail("could not add task", err)
	}

	c.mu.Lock()
	c.tasks = append(c.tasks, t)
	c.mu.Unlock()

	c.notes.Push(notify.Success, fmt.Sprintf("task added: %s", t.Title))
	return &t, nil
}

// Remove deletes a task on the backend, then drops it from the collection.
func (c *Controller) Remove(ctx context.Context, id string) error {
	if err := c.svc.Remove(ctx, id); err != nil {
		return c.fail("could not delete task", err)
	}

	c.mu.Lock()
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	c.mu.Unlock()

	c.notes.Push(notify.Success, fmt.Sprintf("task %s deleted", id))
	return nil
}

// SetStatus changes a task's status on the backend. Only the status field of
// the matching local task is replaced, with the value the server echoed.
func (c *Controller) SetStatus(ctx context.Context, id string, status service.Status) (service.Task, error) {
	updated, err := c.svc.SetStatus(ctx, id, status)
	if err != nil {
		return service.Task{}, c.fail("could not update status", err)
	}

	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == id {
			c.tasks[i].Status = updated.Status
		}
	}
	c.mu.Unlock()

	c.notes.Push(notify.Success, fmt.Sprintf("task %s is now %s", id, updated.Status.Label()))
	return updated, nil
}

// Clear empties the collection. Called when the session ends.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.tasks = nil
	c.mu.Unlock()
}

// Tasks returns a copy of the collection in order.
func (c *Controller) Tasks() []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]service.Task(nil), c.tasks...)
}

// Len returns the number of tasks in the collection.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tasks)
}

// Counts computes totals from the live collection. A task without a status
// counts as NEW.
func (c *Controller) Counts() service.Counts {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var counts service.Counts
	for _, t := range c.tasks {
		counts.Total++
		switch t.Status.OrDefault() {
		case service.StatusNew:
			counts.New++
		case service.StatusInProgress:
			counts.InProgress++
		case service.StatusDone:
			counts.Done++
		}
	}
	return counts
}

// Filtered returns the tasks matching filter whose title contains search
// (trimmed, case-insensitive), in collection order.
func (c *Controller) Filtered(filter Filter, search string) []service.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()

	q := strings.ToLower(strings.TrimSpace(search))
	var result []service.Task
	for _, t := range c.tasks {
		if !filter.Match(t) {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(t.Title), q) {
			continue
		}
		result = append(result, t)
	}
	return result
}

// fail reports a failed backend call. An unauthorized error ends the
// session instead of producing an error notification.
func (c *Controller) fail(what string, err error) error {
	if service.IsUnauthorized(err) {
		c.log.Debug("credential rejected", "err", err)
		c.sess.SignOut(session.Expired)
		return err
	}
	c.notes.Push(notify.Error, fmt.Sprintf("%s: %v", what, err))
	return err
}
