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
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct{}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "wtask rm <id>" }
func (c *RmCmd) NeedsAuth() bool   { return true }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	id, ok := taskID(args)
	if !ok {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	return resultCode(dash.Tasks.Remove(ctx, id))
}

// taskID returns the single id argument.
func taskID(args []string) (string, bool) {
	if len(args) != 1 {
		return "", false
	}
	id := strings.TrimSpace(args[0])
	return id, id != ""
}
