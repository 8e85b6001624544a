// Package service defines the backend-agnostic types and interfaces for the
// task, auth and weather collaborators.
package service

import "context"

// TaskService defines the task collaborator operations.
// Every call requires an active credential.
type TaskService interface {
	// List returns all tasks of the signed-in account in server order.
	List(ctx context.Context) ([]Task, error)

	// Create creates a task. The server assigns the ID and default status.
	Create(ctx context.Context, title string) (Task, error)

	// Remove deletes a task by ID.
	Remove(ctx context.Context, id string) error

	// SetStatus changes a task's status and returns the server's record.
	SetStatus(ctx context.Context, id string, status Status) (Task, error)
}

// AuthService defines the auth collaborator operations.
type AuthService interface {
	// Login exchanges credentials for an opaque bearer token.
	Login(ctx context.Context, login, password string) (string, error)

	// Register creates a new account. It does not sign in.
	Register(ctx context.Context, login, password string) error
}

// WeatherService defines the weather collaborator operation.
type WeatherService interface {
	// Lookup returns the current weather for a city.
	Lookup(ctx context.Context, city string) (Snapshot, error)
}
