package openweather_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wtask/internal/backend/openweather"
	"wtask/internal/logging"
	"wtask/internal/service"
)

func newClient(t *testing.T, lang string, h http.HandlerFunc) *openweather.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return openweather.New(srv.URL, "key-1", lang, srv.Client(), logging.Discard())
}

func TestLookup_Success(t *testing.T) {
	var query map[string]string
	c := newClient(t, "de", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("expected /weather, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		query = map[string]string{"q": q.Get("q"), "appid": q.Get("appid"), "units": q.Get("units"), "lang": q.Get("lang")}
		w.Write([]byte(`{"name":"Berlin","main":{"temp":14.7},"weather":[{"description":"light rain"},{"description":"mist"}]}`))
	})

	snap, err := c.Lookup(context.Background(), " Berlin ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]string{"q": "Berlin", "appid": "key-1", "units": "metric", "lang": "de"}
	for k, v := range want {
		if query[k] != v {
			t.Errorf("query %s: expected %q, got %q", k, v, query[k])
		}
	}
	if snap.Place != "Berlin" || snap.Description != "light rain" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if snap.RoundedTemp() != 15 {
		t.Errorf("expected 15, got %d", snap.RoundedTemp())
	}
}

func TestLookup_NoLangWhenUnset(t *testing.T) {
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.URL.Query()["lang"]; ok {
			t.Error("expected no lang parameter")
		}
		w.Write([]byte(`{"name":"Oslo","main":{"temp":-3.2},"weather":[]}`))
	})

	snap, err := c.Lookup(context.Background(), "Oslo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Description != "" || snap.RoundedTemp() != -3 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestLookup_FailuresAreUniform(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unknown city", http.StatusNotFound, `{"cod":"404","message":"city not found"}`},
		{"bad key", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`},
		{"server error", http.StatusInternalServerError, ""},
		{"bad payload", http.StatusOK, `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.Lookup(context.Background(), "Atlantis")
			var e *service.Error
			if !errors.As(err, &e) {
				t.Fatalf("expected *service.Error, got %v", err)
			}
			if e.Kind != service.KindRequestFailed {
				t.Errorf("expected request failed, got %v", e.Kind)
			}
			if e.Message != openweather.ErrLookupFailed {
				t.Errorf("expected uniform message, got %q", e.Message)
			}
			if service.IsUnauthorized(err) {
				t.Error("weather failures must never end the session")
			}
		})
	}
}

func TestLookup_BlankCity(t *testing.T) {
	called := false
	c := newClient(t, "", func(w http.ResponseWriter, r *http.Request) { called = true })

	_, err := c.Lookup(context.Background(), "   ")
	if service.KindOf(err) != service.KindValidation {
		t.Errorf("expected validation error, got %v", err)
	}
	if called {
		t.Error("expected no request for a blank city")
	}
}
