package commands

import (
	"context"
	"flag"
	"io"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
)

func init() {
	Register(&RegisterCmd{})
}

// RegisterCmd creates an account. It does not sign in.
type RegisterCmd struct{}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account on the task service" }
func (c *RegisterCmd) Usage() string     { return "wtask register <login> [password]" }
func (c *RegisterCmd) NeedsAuth() bool   { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	login, password, code := credentialArgs(dash, args, errOut)
	if code != exitcode.Success {
		return code
	}
	return resultCode(dash.Register(ctx, login, password))
}
