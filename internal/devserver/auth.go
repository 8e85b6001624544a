package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// claims is the token payload. Subject carries the login.
type claims struct {
	AccountID int `json:"accountId"`
	jwt.RegisteredClaims
}

type ctxKey struct{}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	s.mu.Lock()
	acc, ok := s.accounts[req.Login]
	s.mu.Unlock()
	if !ok || bcrypt.CompareHashAndPassword(acc.hash, []byte(req.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.issueToken(acc)
	if err != nil {
		s.log.Error("failed to sign token", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	s.log.Debug("login", "login", acc.login)
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeText(w, http.StatusBadRequest, "login/password required")
		return
	}
	login := strings.TrimSpace(req.Login)
	if login == "" || strings.TrimSpace(req.Password) == "" {
		writeText(w, http.StatusBadRequest, "login/password required")
		return
	}

	s.mu.Lock()
	_, exists := s.accounts[login]
	s.mu.Unlock()
	if exists {
		writeText(w, http.StatusConflict, "login already exists")
		return
	}

	if _, err := s.addAccount(login, req.Password); err != nil {
		s.log.Error("failed to hash password", "err", err)
		writeText(w, http.StatusInternalServerError, "registration failed")
		return
	}
	s.log.Info("account registered", "login", login)
	writeText(w, http.StatusCreated, "registered")
}

func (s *Server) issueToken(acc *account) (string, error) {
	now := s.now()
	c := claims{
		AccountID: acc.id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// verifyToken checks the signature and expiry and returns the account id.
func (s *Server) verifyToken(raw string) (int, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[c.Subject]
	if !ok || acc.id != c.AccountID {
		return 0, errors.New("unknown account")
	}
	return acc.id, nil
}

// requireAuth rejects requests without a valid bearer token with 401 and
// stores the account id on the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		id, err := s.verifyToken(raw)
		if err != nil {
			s.log.Debug("token rejected", "err", err)
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func accountID(r *http.Request) int {
	id, _ := r.Context().Value(ctxKey{}).(int)
	return id
}
