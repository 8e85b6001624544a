package taskapi

import (
	"context"
	"net/http"
	"net/url"

	"wtask/internal/service"
)

// List returns all tasks of the signed-in account in server order.
func (c *Client) List(ctx context.Context) ([]service.Task, error) {
	var resp []wireTask
	err := c.do(ctx, call{op: "list tasks", method: http.MethodGet, path: "/tasks", out: &resp, authed: true})
	if err != nil {
		return nil, err
	}

	result := make([]service.Task, 0, len(resp))
	for _, w := range resp {
		result = append(result, w.task())
	}
	return result, nil
}

// Create creates a task. The request asks for status NEW; the server may
// normalize it.
func (c *Client) Create(ctx context.Context, title string) (service.Task, error) {
	in := struct {
		Title  string `json:"title"`
		Status string `json:"status"`
	}{Title: title, Status: string(service.StatusNew)}
	var out wireTask
	err := c.do(ctx, call{op: "create task", method: http.MethodPost, path: "/tasks", in: in, out: &out, authed: true})
	if err != nil {
		return service.Task{}, err
	}
	return out.task(), nil
}

// Remove deletes a task by ID.
func (c *Client) Remove(ctx context.Context, id string) error {
	return c.do(ctx, call{op: "delete task", method: http.MethodDelete, path: "/tasks/" + url.PathEscape(id), authed: true})
}

// SetStatus changes a task's status and returns the server's record.
func (c *Client) SetStatus(ctx context.Context, id string, status service.Status) (service.Task, error) {
	in := struct {
		Status string `json:"status"`
	}{Status: string(status)}
	var out wireTask
	err := c.do(ctx, call{op: "update status", method: http.MethodPut, path: "/tasks/" + url.PathEscape(id) + "/status", in: in, out: &out, authed: true})
	if err != nil {
		return service.Task{}, err
	}
	return out.task(), nil
}
