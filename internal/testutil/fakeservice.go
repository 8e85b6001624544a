// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"wtask/internal/service"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = &service.Error{Kind: service.KindRequestFailed, Status: 404, Message: "task not found"}

// ErrUnauthorized mimics the backend rejecting the bearer credential.
var ErrUnauthorized = &service.Error{Kind: service.KindUnauthorized, Status: 401, Message: "unauthorized"}

// FakeService is an in-memory implementation of the task, auth and weather
// services for testing.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Accounts maps login to password. Login issues Tokens[login], or
	// "token-<login>" when none is set.
	Accounts map[string]string
	Tokens   map[string]string

	// Cities maps lowercase city names to snapshots.
	Cities map[string]service.Snapshot

	// Error injection for testing
	ListErr      error
	CreateErr    error
	RemoveErr    error
	SetStatusErr error
	LoginErr     error
	RegisterErr  error
	WeatherErr   error

	// Call counters
	Calls map[string]int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:   1,
		Accounts: make(map[string]string),
		Tokens:   make(map[string]string),
		Cities:   make(map[string]service.Snapshot),
		Calls:    make(map[string]int),
	}
}

// AddTask adds a task with the given id, title and status.
func (f *FakeService) AddTask(id, title string, status service.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{ID: id, Title: title, Status: status})
	if n, err := strconv.Atoi(id); err == nil && n >= f.nextID {
		f.nextID = n + 1
	}
}

// Stored returns a copy of the backend's tasks.
func (f *FakeService) Stored() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Task(nil), f.tasks...)
}

// CallCount returns how often the named method was called.
func (f *FakeService) CallCount(method string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.Calls[method]
}

func (f *FakeService) count(method string) {
	f.mu.Lock()
	f.Calls[method]++
	f.mu.Unlock()
}

// List implements service.TaskService.
func (f *FakeService) List(ctx context.Context) ([]service.Task, error) {
	f.count("List")
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Stored(), nil
}

// Create implements service.TaskService.
func (f *FakeService) Create(ctx context.Context, title string) (service.Task, error) {
	f.count("Create")
	if f.CreateErr != nil {
		return service.Task{}, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	t := service.Task{ID: strconv.Itoa(f.nextID), Title: title, Status: service.StatusNew}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Remove implements service.TaskService.
func (f *FakeService) Remove(ctx context.Context, id string) error {
	f.count("Remove")
	if f.RemoveErr != nil {
		return f.RemoveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// SetStatus implements service.TaskService.
func (f *FakeService) SetStatus(ctx context.Context, id string, status service.Status) (service.Task, error) {
	f.count("SetStatus")
	if f.SetStatusErr != nil {
		return service.Task{}, f.SetStatusErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks[i].Status = status
			return f.tasks[i], nil
		}
	}
	return service.Task{}, ErrNotFound
}

// Login implements service.AuthService.
func (f *FakeService) Login(ctx context.Context, login, password string) (string, error) {
	f.count("Login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	if pw, ok := f.Accounts[login]; !ok || pw != password {
		return "", &service.Error{Kind: service.KindRejected, Op: "login", Status: 401, Message: "invalid credentials"}
	}
	if tok, ok := f.Tokens[login]; ok {
		return tok, nil
	}
	return "token-" + login, nil
}

// Register implements service.AuthService.
func (f *FakeService) Register(ctx context.Context, login, password string) error {
	f.count("Register")
	if f.RegisterErr != nil {
		return f.RegisterErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.Accounts[login]; exists {
		return &service.Error{Kind: service.KindRejected, Op: "register", Status: 409, Message: "login already taken"}
	}
	f.Accounts[login] = password
	return nil
}

// Lookup implements service.WeatherService.
func (f *FakeService) Lookup(ctx context.Context, city string) (service.Snapshot, error) {
	f.count("Lookup")
	if f.WeatherErr != nil {
		return service.Snapshot{}, f.WeatherErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	snap, ok := f.Cities[strings.ToLower(city)]
	if !ok {
		return service.Snapshot{}, &service.Error{Kind: service.KindRequestFailed, Op: "weather lookup", Message: "city not found or weather service unavailable"}
	}
	return snap, nil
}
