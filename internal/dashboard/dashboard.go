// Package dashboard wires the session, task collection, weather panel and
// notification queue together.
package dashboard

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"wtask/internal/backend/openweather"
	"wtask/internal/backend/taskapi"
	"wtask/internal/config"
	"wtask/internal/notify"
	"wtask/internal/service"
	"wtask/internal/session"
	"wtask/internal/tasks"
	"wtask/internal/weather"
)

// Notification texts emitted when the session ends.
const (
	MsgSessionExpired = "session expired, please log in again"
	MsgLoggedOut      = "logged out"
)

// SweepInterval is how often Start removes expired notifications.
const SweepInterval = 500 * time.Millisecond

// Options overrides collaborators. Zero values select the HTTP clients
// built from the config.
type Options struct {
	HTTPClient *http.Client
	Auth       service.AuthService
	Tasks      service.TaskService
	Weather    service.WeatherService
	In         io.Reader
	NoteTTL    time.Duration
}

// Dashboard is one running instance of the app.
type Dashboard struct {
	Config  *config.Config
	Session *session.Store
	Tasks   *tasks.Controller
	Weather *weather.Panel
	Notes   *notify.Queue
	Prefs   config.Prefs
	Log     *slog.Logger

	// In supplies interactive input: shell lines and password prompts
	// read from the same buffer.
	In *bufio.Reader
}

// New builds a dashboard from cfg. The persisted credential and display
// preferences are read here, once.
func New(cfg *config.Config, log *slog.Logger, opts Options) *Dashboard {
	notes := notify.NewQueue(opts.NoteTTL)

	var api *taskapi.Client
	if opts.Auth == nil || opts.Tasks == nil {
		api = taskapi.New(cfg.APIURL, opts.HTTPClient, log)
	}

	auth := opts.Auth
	if auth == nil {
		auth = api
	}
	sess := session.Open(cfg.TokenPath(), auth, log)

	taskSvc := opts.Tasks
	if taskSvc == nil {
		taskSvc = api.WithTokenSource(sess)
	}

	weatherSvc := opts.Weather
	if weatherSvc == nil {
		weatherSvc = openweather.New(cfg.WeatherURL, cfg.WeatherAPIKey, cfg.WeatherLang, opts.HTTPClient, log)
	}

	in := opts.In
	if in == nil {
		in = os.Stdin
	}

	d := &Dashboard{
		Config:  cfg,
		Session: sess,
		Tasks:   tasks.New(taskSvc, sess, notes, log),
		Weather: weather.New(weatherSvc, notes),
		Notes:   notes,
		Prefs:   cfg.LoadPrefs(),
		Log:     log,
		In:      bufio.NewReader(in),
	}

	sess.OnSignOut(func(r session.Reason) {
		d.Tasks.Clear()
		if r == session.Expired {
			notes.Push(notify.Error, MsgSessionExpired)
			return
		}
		notes.Push(notify.Info, MsgLoggedOut)
	})
	return d
}

// Start runs background upkeep (notification expiry) until ctx is done.
func (d *Dashboard) Start(ctx context.Context) {
	go d.Notes.Run(ctx, SweepInterval)
}

// ReadLine reads one line from In without the trailing newline. io.EOF is
// returned only when nothing was read.
func (d *Dashboard) ReadLine() (string, error) {
	line, err := d.In.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
