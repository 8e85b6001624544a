package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "wtask help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  wtask                                         List all tasks
  wtask list [common flags] [--status <s>] [--search <text>] [--counts]
  wtask add [common flags] [--show] <title...>
  wtask create [common flags] [--show] <title...>
  wtask status [common flags] <id> <new|in_progress|done>
  wtask done [common flags] <id>
  wtask rm [common flags] <id>
  wtask stats [common flags]
  wtask weather [common flags] [city...]
  wtask register [common flags] <login> [password]
  wtask login [common flags] <login> [password]
  wtask logout [common flags]
  wtask whoami [common flags]
  wtask theme [common flags] [--reset] [light|dark]
  wtask shell [common flags]                    Read commands from stdin
  wtask help
  wtask version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
  --color          Color task statuses using the theme

Environment:
  WTASK_API_URL         Task service base URL
  WTASK_WEATHER_URL     Weather service base URL
  OPENWEATHER_API_KEY   Weather service API key
`
