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
	"wtask/internal/output"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	show bool
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "wtask add [--show] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.show, "show", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	task, err := dash.Tasks.Add(ctx, title)
	if err != nil {
		return resultCode(err)
	}
	if c.show && task != nil {
		output.FormatTask(out, *task, output.PaletteFor(dash.Prefs.Theme, cfg.Color))
	}
	return exitcode.Success
}
