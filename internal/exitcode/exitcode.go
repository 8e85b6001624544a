// Package exitcode defines exit codes for the CLI.
package exitcode

import "wtask/internal/service"

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, blank input, bad status).
	UserError = 1

	// AuthError indicates an auth error (not logged in, session expired,
	// rejected credentials).
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)

// ForError maps a collaborator error to an exit code.
func ForError(err error) int {
	if err == nil {
		return Success
	}
	switch service.KindOf(err) {
	case service.KindValidation:
		return UserError
	case service.KindUnauthorized, service.KindRejected:
		return AuthError
	default:
		return BackendError
	}
}
