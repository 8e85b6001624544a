package session_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"wtask/internal/logging"
	"wtask/internal/service"
	"wtask/internal/session"
	"wtask/internal/testutil"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

func TestIdentity(t *testing.T) {
	tests := []struct {
		name   string
		token  string
		want   string
		wantOK bool
	}{
		{"login claim", signed(t, jwt.MapClaims{"login": "alice", "sub": "other"}), "alice", true},
		{"username claim", signed(t, jwt.MapClaims{"username": "bob"}), "bob", true},
		{"user claim", signed(t, jwt.MapClaims{"user": "carol"}), "carol", true},
		{"sub claim", signed(t, jwt.MapClaims{"sub": "demo", "accountId": 1}), "demo", true},
		{"blank login falls through", signed(t, jwt.MapClaims{"login": " ", "sub": "dave"}), "dave", true},
		{"non-string claim", signed(t, jwt.MapClaims{"login": 42}), "", false},
		{"no usable claim", signed(t, jwt.MapClaims{"accountId": 7}), "", false},
		{"opaque token", "abc123", "", false},
		{"malformed segments", "a.b.c", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := session.Identity(tt.token)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func newStore(t *testing.T, auth service.AuthService) (*session.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg", "token.json")
	return session.Open(path, auth, logging.Discard()), path
}

func TestStore_SignInPersistsToken(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.Accounts["alice"] = "pw"
	fake.Tokens["alice"] = signed(t, jwt.MapClaims{"sub": "alice"})

	store, path := newStore(t, fake)
	if store.Active() {
		t.Fatal("expected new store to be signed out")
	}

	tok, err := store.SignIn(context.Background(), " alice ", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok != fake.Tokens["alice"] {
		t.Errorf("expected issued token, got %q", tok)
	}
	if !store.Active() {
		t.Error("expected store to be active after sign-in")
	}
	if name, ok := store.CurrentIdentity(); !ok || name != "alice" {
		t.Errorf("expected identity alice, got %q (%v)", name, ok)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("token file missing: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected mode 0600, got %o", info.Mode().Perm())
	}

	data, _ := os.ReadFile(path)
	var saved oauth2.Token
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("token file is not an oauth2 token: %v", err)
	}
	if saved.AccessToken != tok {
		t.Errorf("expected saved access token %q, got %q", tok, saved.AccessToken)
	}

	// A second store on the same file starts signed in.
	reopened := session.Open(path, fake, logging.Discard())
	if !reopened.Active() {
		t.Error("expected reopened store to restore the credential")
	}
}

func TestStore_TokenSource(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.Accounts["bob"] = "pw"
	store, _ := newStore(t, fake)

	if _, err := store.Token(); !errors.Is(err, service.ErrNoCredential) {
		t.Errorf("expected ErrNoCredential when signed out, got %v", err)
	}

	if _, err := store.SignIn(context.Background(), "bob", "pw"); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	tok, err := store.Token()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.AccessToken != "token-bob" || tok.Type() != "Bearer" {
		t.Errorf("unexpected token %+v", tok)
	}
}

func TestStore_SignInFailureLeavesStateUntouched(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.Accounts["alice"] = "pw"
	store, path := newStore(t, fake)

	_, err := store.SignIn(context.Background(), "alice", "wrong")
	if service.KindOf(err) != service.KindRejected {
		t.Errorf("expected rejected error, got %v", err)
	}
	if store.Active() {
		t.Error("expected store to stay signed out")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected no token file, stat err = %v", err)
	}
}

func TestStore_SignInValidation(t *testing.T) {
	fake := testutil.NewFakeService()
	store, _ := newStore(t, fake)

	for _, tc := range [][2]string{{"", "pw"}, {"  ", "pw"}, {"alice", ""}} {
		_, err := store.SignIn(context.Background(), tc[0], tc[1])
		if service.KindOf(err) != service.KindValidation {
			t.Errorf("SignIn(%q, %q): expected validation error, got %v", tc[0], tc[1], err)
		}
	}
	if fake.CallCount("Login") != 0 {
		t.Errorf("expected no backend call, got %d", fake.CallCount("Login"))
	}
}

func TestStore_EmptyTokenIsFailure(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.Accounts["alice"] = "pw"
	fake.Tokens["alice"] = ""
	store, _ := newStore(t, fake)

	if _, err := store.SignIn(context.Background(), "alice", "pw"); err == nil {
		t.Error("expected error for empty token")
	}
	if store.Active() {
		t.Error("expected store to stay signed out")
	}
}

func TestStore_SignOutNotifiesOnce(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.Accounts["alice"] = "pw"
	store, path := newStore(t, fake)

	var mu sync.Mutex
	var reasons []session.Reason
	store.OnSignOut(func(r session.Reason) {
		mu.Lock()
		reasons = append(reasons, r)
		mu.Unlock()
	})

	if store.SignOut(session.Manual) {
		t.Error("expected SignOut to report false when signed out")
	}

	if _, err := store.SignIn(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}

	var wg sync.WaitGroup
	var ended int
	var endedMu sync.Mutex
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.SignOut(session.Expired) {
				endedMu.Lock()
				ended++
				endedMu.Unlock()
			}
		}()
	}
	wg.Wait()

	if ended != 1 {
		t.Errorf("expected exactly one SignOut to succeed, got %d", ended)
	}
	if len(reasons) != 1 || reasons[0] != session.Expired {
		t.Errorf("expected one expired notification, got %v", reasons)
	}
	if store.Active() {
		t.Error("expected store to be signed out")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("expected token file removed, stat err = %v", err)
	}
}

func TestStore_CorruptTokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	store := session.Open(path, testutil.NewFakeService(), logging.Discard())
	if store.Active() {
		t.Error("expected corrupt token file to yield a signed-out store")
	}
}

func TestStore_Register(t *testing.T) {
	fake := testutil.NewFakeService()
	store, _ := newStore(t, fake)

	if err := store.Register(context.Background(), " carol ", "pw"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fake.Accounts["carol"] != "pw" {
		t.Error("expected trimmed login to be registered")
	}
	if store.Active() {
		t.Error("register must not sign in")
	}

	err := store.Register(context.Background(), "carol", "pw")
	if service.KindOf(err) != service.KindRejected {
		t.Errorf("expected rejected duplicate, got %v", err)
	}
}
