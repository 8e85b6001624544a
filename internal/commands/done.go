package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
	"wtask/internal/service"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command, a shortcut for "status <id> done".
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task done" }
func (c *DoneCmd) Usage() string     { return "wtask done <id>" }
func (c *DoneCmd) NeedsAuth() bool   { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	id, ok := taskID(args)
	if !ok {
		fmt.Fprintln(errOut, "error: task id required")
		return exitcode.UserError
	}
	_, err := dash.Tasks.SetStatus(ctx, id, service.StatusDone)
	return resultCode(err)
}
