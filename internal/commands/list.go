package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
	"wtask/internal/output"
	"wtask/internal/tasks"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `wtask` (no args) and `wtask list`.
type ListCmd struct {
	status string
	search string
	counts bool
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "wtask list [--status <all|new|in_progress|done>] [--search <text>] [--counts]"
}
func (c *ListCmd) NeedsAuth() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", "all", "")
	fs.StringVar(&c.status, "s", "all", "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.search, "q", "", "")
	fs.BoolVar(&c.counts, "counts", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	filter, err := tasks.ParseFilter(c.status)
	if err != nil {
		fmt.Fprintf(errOut, "error: invalid status filter: %s\n", c.status)
		return exitcode.UserError
	}

	if err := dash.Tasks.Refresh(ctx); err != nil {
		return resultCode(err)
	}

	shown := dash.Tasks.Filtered(filter, c.search)
	if len(shown) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.EmptyList)
		}
	} else {
		output.FormatTasks(out, shown, output.PaletteFor(dash.Prefs.Theme, cfg.Color))
	}

	if c.counts {
		output.FormatCounts(out, dash.Tasks.Counts())
	}
	return exitcode.Success
}
