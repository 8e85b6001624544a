// Package taskapi implements service.TaskService and service.AuthService
// against the task/auth HTTP backend.
package taskapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"wtask/internal/service"
)

// APITimeout is the timeout for API calls.
const APITimeout = 10 * time.Second

// Client implements service.TaskService and service.AuthService.
//
// Task calls go through an oauth2.Transport that asks the token source for
// the current credential on every request. Auth calls use the base client
// and carry no credential.
type Client struct {
	baseURL string
	base    *http.Client
	authed  *http.Client
	log     *slog.Logger
}

// New creates a client for the backend at baseURL (e.g.
// "http://localhost:8081/api"). httpClient may be nil. Task calls fail with
// KindUnauthorized until a token source is attached with WithTokenSource.
func New(baseURL string, httpClient *http.Client, log *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    httpClient,
		log:     log,
	}
	return c.WithTokenSource(noCredential{})
}

// WithTokenSource returns a copy of c whose task calls carry the bearer
// token from src.
func (c *Client) WithTokenSource(src oauth2.TokenSource) *Client {
	cp := *c
	cp.authed = &http.Client{
		Transport: &oauth2.Transport{Source: src, Base: c.base.Transport},
		Timeout:   c.base.Timeout,
	}
	return &cp
}

type noCredential struct{}

func (noCredential) Token() (*oauth2.Token, error) { return nil, service.ErrNoCredential }

// wireTask is the backend's JSON task shape.
type wireTask struct {
	ID     flexID `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
}

func (w wireTask) task() service.Task {
	return service.Task{ID: string(w.ID), Title: w.Title, Status: service.Status(w.Status)}
}

// flexID accepts both JSON numbers and strings as an opaque identifier.
type flexID string

func (id *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id: %s", data)
	}
	*id = flexID(n.String())
	return nil
}

// call describes one request/response round trip.
type call struct {
	op     string
	method string
	path   string
	in     any
	out    any
	authed bool
}

func (c *Client) do(ctx context.Context, cl call) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var body io.Reader
	if cl.in != nil {
		data, err := json.Marshal(cl.in)
		if err != nil {
			return &service.Error{Kind: service.KindRequestFailed, Op: cl.op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.baseURL+cl.path, body)
	if err != nil {
		return &service.Error{Kind: service.KindRequestFailed, Op: cl.op, Err: err}
	}
	if cl.in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.base
	if cl.authed {
		httpClient = c.authed
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", "op", cl.op, "method", cl.method, "path", cl.path, "err", err)
		return transportError(cl.op, err)
	}
	defer resp.Body.Close()
	c.log.Debug("request", "op", cl.op, "method", cl.method, "path", cl.path, "status", resp.StatusCode)

	if err := googleapi.CheckResponse(resp); err != nil {
		return statusError(cl.op, err, cl.authed)
	}

	if cl.out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(cl.out); err != nil {
		return &service.Error{Kind: service.KindRequestFailed, Op: cl.op, Status: resp.StatusCode, Message: "invalid response", Err: err}
	}
	return nil
}

// transportError wraps errors from http.Client.Do.
func transportError(op string, err error) error {
	switch {
	case errors.Is(err, service.ErrNoCredential):
		return &service.Error{Kind: service.KindUnauthorized, Op: op, Message: "not logged in", Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &service.Error{Kind: service.KindRequestFailed, Op: op, Message: "request timed out", Err: err}
	default:
		return &service.Error{Kind: service.KindRequestFailed, Op: op, Err: err}
	}
}

// statusError classifies a non-2xx response. On task calls a 401 is the
// unauthorized signal; on auth calls any 4xx is a structured rejection.
func statusError(op string, err error, authed bool) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &service.Error{Kind: service.KindRequestFailed, Op: op, Err: err}
	}

	kind := service.KindRequestFailed
	switch {
	case authed && gerr.Code == http.StatusUnauthorized:
		kind = service.KindUnauthorized
	case !authed && gerr.Code >= 400 && gerr.Code < 500:
		kind = service.KindRejected
	}
	return &service.Error{Kind: kind, Op: op, Status: gerr.Code, Message: messageOf(gerr), Err: err}
}

// messageOf extracts the collaborator's message: a JSON "message" or
// "error" field, else the plain body, else the status text.
func messageOf(gerr *googleapi.Error) string {
	if gerr.Message != "" {
		return gerr.Message
	}
	body := strings.TrimSpace(gerr.Body)
	if body != "" {
		var reply struct {
			Message string `json:"message"`
			Error   any    `json:"error"`
		}
		if json.Unmarshal([]byte(body), &reply) == nil {
			if reply.Message != "" {
				return reply.Message
			}
			if s, ok := reply.Error.(string); ok && s != "" {
				return s
			}
		} else {
			return truncate(body, 200)
		}
	}
	return http.StatusText(gerr.Code)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
