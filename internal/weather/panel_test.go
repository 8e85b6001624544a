package weather_test

import (
	"context"
	"strings"
	"testing"

	"wtask/internal/notify"
	"wtask/internal/service"
	"wtask/internal/testutil"
	"wtask/internal/weather"
)

func TestLookup_Success(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Cities["berlin"] = service.Snapshot{Place: "Berlin", TempC: 14.7, Description: "clear sky"}
	notes := notify.NewQueue(0)
	panel := weather.New(svc, notes)

	if err := panel.Lookup(context.Background(), "Berlin"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	snap, ok := panel.Snapshot()
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if snap.RoundedTemp() != 15 || snap.Description != "clear sky" {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if panel.Err() != "" {
		t.Errorf("expected no error, got %q", panel.Err())
	}
	if active := notes.Active(); len(active) != 1 || active[0].Severity != notify.Success {
		t.Errorf("expected one success notification, got %+v", active)
	}
}

func TestLookup_FailureClearsSnapshot(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Cities["berlin"] = service.Snapshot{Place: "Berlin", TempC: 10}
	notes := notify.NewQueue(0)
	panel := weather.New(svc, notes)

	ctx := context.Background()
	panel.Lookup(ctx, "Berlin")
	notes.Drain()

	if err := panel.Lookup(ctx, "Atlantis"); err == nil {
		t.Fatal("expected error for unknown city")
	}
	if _, ok := panel.Snapshot(); ok {
		t.Error("expected snapshot to be cleared")
	}
	if !strings.Contains(panel.Err(), "city not found") {
		t.Errorf("expected error message, got %q", panel.Err())
	}
	active := notes.Active()
	if len(active) != 1 || active[0].Severity != notify.Error {
		t.Fatalf("expected one error notification, got %+v", active)
	}
	if !strings.HasPrefix(active[0].Text, "weather for Atlantis:") {
		t.Errorf("unexpected text %q", active[0].Text)
	}

	// A later success clears the error.
	panel.Lookup(ctx, "berlin")
	if panel.Err() != "" {
		t.Errorf("expected error cleared, got %q", panel.Err())
	}
}

func TestLookup_BlankCityIsIgnored(t *testing.T) {
	svc := testutil.NewFakeService()
	notes := notify.NewQueue(0)
	panel := weather.New(svc, notes)

	if err := panel.Lookup(context.Background(), "  "); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if svc.CallCount("Lookup") != 0 {
		t.Error("expected no lookup call")
	}
	if notes.Len() != 0 {
		t.Error("expected no notification")
	}
}
