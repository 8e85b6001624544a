// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires an active session.
	// Commands like help, version, login, logout and weather return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags. It is called before
	// every parse, which also resets the flag fields to their defaults.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, settings).
	// dash may be nil for commands that never touch state (help, version).
	// args contains positional arguments after flag parsing.
	// Outcomes of backend calls are left on dash.Notes for the caller to
	// flush. Returns exit code.
	Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int
}

// resultCode maps the outcome of a backend-backed command to an exit code.
func resultCode(err error) int {
	return exitcode.ForError(err)
}
