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
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Sign in to the task service" }
func (c *LoginCmd) Usage() string     { return "wtask login <login> [password]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	if dash.Session.Active() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	login, password, code := credentialArgs(dash, args, errOut)
	if code != exitcode.Success {
		return code
	}
	return resultCode(dash.SignIn(ctx, login, password))
}

// credentialArgs takes the login from args and the password from the second
// argument or, failing that, from one line of interactive input.
func credentialArgs(dash *dashboard.Dashboard, args []string, errOut io.Writer) (string, string, int) {
	if len(args) == 0 || len(args) > 2 || strings.TrimSpace(args[0]) == "" {
		fmt.Fprintln(errOut, "error: login required")
		return "", "", exitcode.UserError
	}
	if len(args) == 2 {
		return args[0], args[1], exitcode.Success
	}

	fmt.Fprint(errOut, "Password: ")
	password, err := dash.ReadLine()
	if err != nil {
		fmt.Fprintln(errOut)
		fmt.Fprintln(errOut, "error: password required")
		return "", "", exitcode.UserError
	}
	return args[0], password, exitcode.Success
}
