package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
	"wtask/internal/service"
)

func init() {
	Register(&StatusCmd{})
}

// StatusCmd implements the status command.
type StatusCmd struct{}

func (c *StatusCmd) Name() string      { return "status" }
func (c *StatusCmd) Aliases() []string { return []string{"move"} }
func (c *StatusCmd) Synopsis() string  { return "Change a task's status" }
func (c *StatusCmd) Usage() string     { return "wtask status <id> <new|in_progress|done>" }
func (c *StatusCmd) NeedsAuth() bool   { return true }

func (c *StatusCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatusCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: task id and status required")
		return exitcode.UserError
	}

	// "in progress" may arrive as two arguments.
	raw := strings.Join(args[1:], " ")
	status, err := service.ParseStatus(raw)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid status: %s\n", raw)
		return exitcode.UserError
	}

	_, err = dash.Tasks.SetStatus(ctx, args[0], status)
	return resultCode(err)
}
