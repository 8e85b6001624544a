// Package session holds the authentication credential and persists it
// across runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"wtask/internal/service"
)

// Reason tells sign-out subscribers why the session ended.
type Reason int

const (
	// Manual is a user-initiated logout.
	Manual Reason = iota

	// Expired is a server-detected credential rejection.
	Expired
)

func (r Reason) String() string {
	if r == Expired {
		return "expired"
	}
	return "manual"
}

// Store is the single owner of the bearer credential. It reads the persisted
// token once in Open and writes it back on SignIn and SignOut.
//
// Store implements oauth2.TokenSource so HTTP clients can attach the current
// credential without reading it from anywhere else.
type Store struct {
	mu        sync.RWMutex
	path      string
	token     string
	auth      service.AuthService
	log       *slog.Logger
	listeners []func(Reason)
}

// Open creates a Store backed by the token file at path. A missing or
// corrupt file yields a signed-out store.
func Open(path string, auth service.AuthService, log *slog.Logger) *Store {
	s := &Store{path: path, auth: auth, log: log}
	tok, err := readToken(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		log.Warn("ignoring unreadable credential", "path", path, "err", err)
	default:
		s.token = tok
		log.Debug("credential loaded", "path", path)
	}
	return s
}

// OnSignOut registers fn to be called after the credential is cleared.
func (s *Store) OnSignOut(fn func(Reason)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Active reports whether a credential is present.
func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token implements oauth2.TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return nil, service.ErrNoCredential
	}
	return &oauth2.Token{AccessToken: s.token, TokenType: "Bearer"}, nil
}

// CurrentIdentity returns the user name embedded in the credential, if any.
// It never contacts the server.
func (s *Store) CurrentIdentity() (string, bool) {
	s.mu.RLock()
	tok := s.token
	s.mu.RUnlock()
	return Identity(tok)
}

// SignIn exchanges credentials for a token, persists it and activates it.
// On failure the previous state is left untouched.
func (s *Store) SignIn(ctx context.Context, login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return "", service.Validation("login", "login and password required")
	}

	tok, err := s.auth.Login(ctx, login, password)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(tok) == "" {
		return "", &service.Error{Kind: service.KindRequestFailed, Op: "login", Message: "server returned an empty token"}
	}

	if err := writeToken(s.path, tok); err != nil {
		return "", fmt.Errorf("failed to save token: %w", err)
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	s.log.Debug("signed in", "login", login)
	return tok, nil
}

// Register creates an account. It does not sign in.
func (s *Store) Register(ctx context.Context, login, password string) error {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return service.Validation("register", "login and password required")
	}
	return s.auth.Register(ctx, login, password)
}

// SignOut clears the credential from memory and disk and notifies
// subscribers. It returns false, without notifying, when nobody was signed in.
func (s *Store) SignOut(reason Reason) bool {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()
		return false
	}
	s.token = ""
	listeners := append([]func(Reason){}, s.listeners...)
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("failed to remove credential", "path", s.path, "err", err)
	}
	s.log.Debug("signed out", "reason", reason)

	for _, fn := range listeners {
		fn(reason)
	}
	return true
}

// readToken reads a token file written by writeToken.
func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("empty access token")
	}
	return tok.AccessToken, nil
}

// writeToken saves a bearer token to a file with mode 0600.
func writeToken(path, token string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
