// Package devserver is an in-memory task and auth backend for local
// development and tests. It speaks the same JSON API as the production
// backend: bearer-token task CRUD scoped per account, login and register.
package devserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"
)

// Defaults.
const (
	DefaultTokenTTL          = 6 * time.Hour
	DefaultHeartbeatInterval = 60 * time.Second
	DemoLogin                = "demo"
	DemoPassword             = "demo"
)

// Options configures a Server. Zero values select the defaults.
type Options struct {
	// Secret signs issued tokens. A random secret is generated when empty,
	// which invalidates tokens across restarts.
	Secret []byte

	// TokenTTL is the lifetime of issued tokens.
	TokenTTL time.Duration

	// BcryptCost is the password hashing cost.
	BcryptCost int

	// NoDemo skips seeding the demo account.
	NoDemo bool

	// Now returns the current time for token issuing and expiry checks.
	Now func() time.Time

	Log *slog.Logger
}

type account struct {
	id    int
	login string
	hash  []byte
}

type task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	accountID int
}

// Server holds accounts and tasks in memory.
type Server struct {
	secret []byte
	ttl    time.Duration
	cost   int
	log    *slog.Logger
	now    func() time.Time

	mu          sync.Mutex
	accounts    map[string]*account // by login
	tasks       []*task
	nextAccount int
	nextTask    int
}

// New creates a server, seeding the demo account unless disabled.
func New(opts Options) (*Server, error) {
	s := &Server{
		secret:      opts.Secret,
		ttl:         opts.TokenTTL,
		cost:        opts.BcryptCost,
		log:         opts.Log,
		now:         opts.Now,
		accounts:    make(map[string]*account),
		nextAccount: 1,
		nextTask:    1,
	}
	if len(s.secret) == 0 {
		s.secret = []byte(uuid.NewString())
	}
	if s.ttl <= 0 {
		s.ttl = DefaultTokenTTL
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}

	if !opts.NoDemo {
		if _, err := s.addAccount(DemoLogin, DemoPassword); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Handler returns the HTTP routes, all mounted under /api.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/weather", s.handleWeather).Methods(http.MethodGet)

	tasks := api.PathPrefix("/tasks").Subrouter()
	tasks.Use(s.requireAuth)
	tasks.HandleFunc("", s.handleListTasks).Methods(http.MethodGet)
	tasks.HandleFunc("", s.handleCreateTask).Methods(http.MethodPost)
	tasks.HandleFunc("/{taskID:[0-9]+}", s.handleDeleteTask).Methods(http.MethodDelete)
	tasks.HandleFunc("/{taskID:[0-9]+}/status", s.handleUpdateStatus).Methods(http.MethodPut)

	return r
}

// Run logs a heartbeat line every interval until ctx is done.
func (s *Server) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultHeartbeatInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			accounts, tasks := len(s.accounts), len(s.tasks)
			s.mu.Unlock()
			s.log.Info("backend running", "accounts", accounts, "tasks", tasks, "time", s.now().Format(time.RFC3339))
		}
	}
}

// addAccount stores a new account. The caller has validated the input.
func (s *Server) addAccount(login, password string) (*account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := &account{id: s.nextAccount, login: login, hash: hash}
	s.nextAccount++
	s.accounts[login] = acc
	return acc, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error body with the status text and a message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"status":  status,
		"error":   http.StatusText(status),
		"message": msg,
	})
}

// writeText writes a plain text body.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(msg))
}
