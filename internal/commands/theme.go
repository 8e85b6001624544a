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
	Register(&ThemeCmd{})
}

// ThemeCmd shows or sets the color theme.
type ThemeCmd struct {
	reset bool
}

func (c *ThemeCmd) Name() string      { return "theme" }
func (c *ThemeCmd) Aliases() []string { return nil }
func (c *ThemeCmd) Synopsis() string  { return "Show or set the color theme" }
func (c *ThemeCmd) Usage() string     { return "wtask theme [--reset] [light|dark]" }
func (c *ThemeCmd) NeedsAuth() bool   { return false }

func (c *ThemeCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.reset, "reset", false, "")
}

func (c *ThemeCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	if c.reset {
		if len(args) > 0 {
			fmt.Fprintln(errOut, "error: cannot use --reset with a theme")
			return exitcode.UserError
		}
		if err := cfg.RemovePrefs(); err != nil {
			fmt.Fprintf(errOut, "error: failed to remove preferences: %v\n", err)
			return exitcode.UserError
		}
		dash.Prefs = config.Prefs{Theme: config.ThemeLight}
		if !cfg.Quiet {
			fmt.Fprintln(out, "ok")
		}
		return exitcode.Success
	}

	switch len(args) {
	case 0:
		fmt.Fprintln(out, dash.Prefs.Theme)
		return exitcode.Success
	case 1:
	default:
		fmt.Fprintln(errOut, "error: too many arguments")
		return exitcode.UserError
	}

	theme, err := config.ParseTheme(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	prefs := dash.Prefs
	prefs.Theme = theme
	if err := cfg.SavePrefs(prefs); err != nil {
		fmt.Fprintf(errOut, "error: failed to save preferences: %v\n", err)
		return exitcode.UserError
	}
	dash.Prefs = prefs
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
