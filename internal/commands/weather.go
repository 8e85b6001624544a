package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"wtask/internal/config"
	"wtask/internal/dashboard"
	"wtask/internal/exitcode"
	"wtask/internal/output"
)

func init() {
	Register(&WeatherCmd{})
}

// WeatherCmd implements the weather command.
type WeatherCmd struct{}

func (c *WeatherCmd) Name() string      { return "weather" }
func (c *WeatherCmd) Aliases() []string { return nil }
func (c *WeatherCmd) Synopsis() string  { return "Show current weather for a city" }
func (c *WeatherCmd) Usage() string     { return "wtask weather [city...]" }
func (c *WeatherCmd) NeedsAuth() bool   { return false }

func (c *WeatherCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WeatherCmd) Run(ctx context.Context, cfg *config.Config, dash *dashboard.Dashboard, args []string, out, errOut io.Writer) int {
	city := strings.TrimSpace(strings.Join(args, " "))
	if city == "" {
		city = cfg.DefaultCity
	}

	if err := dash.Weather.Lookup(ctx, city); err != nil {
		return resultCode(err)
	}
	if snap, ok := dash.Weather.Snapshot(); ok {
		output.FormatWeather(out, snap)
	}
	return exitcode.Success
}
