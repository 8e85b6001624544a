package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"wtask/internal/commands"
	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
	"wtask/internal/notify"
	"wtask/internal/output"
)

// ShellCommand is the name that starts the interactive loop.
const ShellCommand = "shell"

// DashboardFactory builds the dashboard for a parsed config.
// Used to inject the backends during dispatch.
type DashboardFactory func(cfg *config.Config) (*dashboard.Dashboard, error)

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  DashboardFactory
}

// NewDispatcher creates a new dispatcher with the given registry and dashboard factory.
func NewDispatcher(registry *commands.Registry, factory DashboardFactory) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// commonFlags are accepted by every command.
type commonFlags struct {
	configDir string
	quiet     bool
	debug     bool
	color     bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configDir, "config", "", "")
	fs.BoolVar(&c.quiet, "quiet", false, "")
	fs.BoolVar(&c.debug, "debug", false, "")
	fs.BoolVar(&c.color, "color", false, "")
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	if len(args) == 0 {
		args = []string{"list"}
	}

	cmdName := args[0]

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	if cmdName == ShellCommand {
		return d.runShell(ctx, args[1:], out, errOut)
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	var common commonFlags
	positional, code := parseFlags(cmd.Name(), args[1:], errOut, common.register, cmd.RegisterFlags)
	if code != exitcode.Success {
		return code
	}

	cfg, dash, code := d.setup(common, errOut)
	if code != exitcode.Success {
		return code
	}
	return execute(ctx, cmd, cfg, dash, positional, out, errOut)
}

// setup creates the config and dashboard from the common flags.
func (d *Dispatcher) setup(common commonFlags, errOut io.Writer) (*config.Config, *dashboard.Dashboard, int) {
	cfg, err := config.New(common.configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return nil, nil, exitcode.UserError
	}
	cfg.Quiet = common.quiet
	cfg.Debug = common.debug
	cfg.Color = cfg.Color || common.color

	if d.factory == nil {
		return cfg, nil, exitcode.Success
	}
	dash, err := d.factory(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return nil, nil, exitcode.UserError
	}
	return cfg, dash, exitcode.Success
}

// execute runs one parsed command and flushes the notifications it left.
func execute(ctx context.Context, cmd commands.Command, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	if dash == nil {
		// Without a dashboard only stateless commands can run.
		if cmd.NeedsAuth() {
			fmt.Fprintln(errOut, "error: not logged in (run: wtask login)")
			return exitcode.AuthError
		}
		return cmd.Run(ctx, cfg, nil, args, out, errOut)
	}

	if cmd.NeedsAuth() && !dash.Session.Active() {
		fmt.Fprintln(errOut, "error: not logged in (run: wtask login)")
		return exitcode.AuthError
	}

	code := cmd.Run(ctx, cfg, dash, args, out, errOut)
	flush(cfg, dash.Notes, out, errOut)
	return code
}

// flush prints pending notifications. Errors go to errOut and are never
// suppressed; the rest go to out unless --quiet.
func flush(cfg *config.Config, notes *notify.Queue, out, errOut io.Writer) {
	for _, n := range notes.Drain() {
		if n.Severity == notify.Error {
			output.FormatNotification(errOut, n)
			continue
		}
		if !cfg.Quiet {
			output.FormatNotification(out, n)
		}
	}
}

// parseFlags parses args against a fresh flag set. Registering resets every
// flag field to its default.
func parseFlags(name string, args []string, errOut io.Writer, registers ...func(*flag.FlagSet)) ([]string, int) {
	// Create flag set with custom error handling
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	for _, register := range registers {
		register(fs)
	}

	if err := fs.Parse(args); err != nil {
		errStr := err.Error()

		// Check for missing flag value
		if strings.HasPrefix(errStr, "flag needs an argument:") {
			flagName := strings.TrimSpace(strings.TrimPrefix(errStr, "flag needs an argument:"))
			fmt.Fprintf(errOut, "error: flag needs an argument: %s\n", flagName)
			return nil, exitcode.UserError
		}

		// Check for unknown flag
		if strings.HasPrefix(errStr, "flag provided but not defined:") {
			flagName := strings.TrimPrefix(errStr, "flag provided but not defined: ")
			fmt.Fprintf(errOut, "error: unknown flag: %s\n", flagName)
			return nil, exitcode.UserError
		}

		fmt.Fprintf(errOut, "error: %s\n", errStr)
		return nil, exitcode.UserError
	}

	// Check if first positional arg starts with - (should have been parsed as flag)
	positional := fs.Args()
	if len(positional) > 0 && strings.HasPrefix(positional[0], "-") {
		fmt.Fprintf(errOut, "error: unknown flag: %s\n", positional[0])
		return nil, exitcode.UserError
	}
	return positional, exitcode.Success
}

// runShell reads commands line by line from the dashboard input and runs
// them against one shared dashboard. Common flags are taken once, from the
// shell invocation. The exit code is that of the last command.
func (d *Dispatcher) runShell(ctx context.Context, args []string, out, errOut io.Writer) int {
	var common commonFlags
	positional, code := parseFlags(ShellCommand, args, errOut, common.register)
	if code != exitcode.Success {
		return code
	}
	if len(positional) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", positional[0])
		return exitcode.UserError
	}

	cfg, dash, code := d.setup(common, errOut)
	if code != exitcode.Success {
		return code
	}
	if dash == nil {
		fmt.Fprintln(errOut, "error: shell is not available")
		return exitcode.UserError
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	dash.Start(ctx)

	last := exitcode.Success
	for ctx.Err() == nil {
		if !cfg.Quiet {
			fmt.Fprint(errOut, "wtask> ")
		}
		line, err := dash.ReadLine()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.UserError
			}
			return last
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "exit", "quit":
			return last
		case ShellCommand:
			fmt.Fprintln(errOut, "error: already in shell")
			last = exitcode.UserError
			continue
		}

		cmd, ok := d.registry.Find(fields[0])
		if !ok {
			fmt.Fprintf(errOut, "error: unknown command: %s\n", fields[0])
			last = exitcode.UserError
			continue
		}
		cmdArgs, code := parseFlags(cmd.Name(), fields[1:], errOut, cmd.RegisterFlags)
		if code != exitcode.Success {
			last = code
			continue
		}
		last = execute(ctx, cmd, cfg, dash, cmdArgs, out, errOut)
	}
	return last
}
