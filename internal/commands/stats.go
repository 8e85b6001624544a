package commands

import (
	"context"
	"flag"
	"io"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
	"wtask/internal/output"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints the task totals per status.
type StatsCmd struct{}

func (c *StatsCmd) Name() string      { return "stats" }
func (c *StatsCmd) Aliases() []string { return nil }
func (c *StatsCmd) Synopsis() string  { return "Show task totals" }
func (c *StatsCmd) Usage() string     { return "wtask stats" }
func (c *StatsCmd) NeedsAuth() bool   { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	if err := dash.Tasks.Refresh(ctx); err != nil {
		return resultCode(err)
	}
	output.FormatCounts(out, dash.Tasks.Counts())
	return exitcode.Success
}
