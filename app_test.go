package main

import (
	"io"
	"log/slog"
	"testing"
)

func newTestApp() *App {
	return NewApp(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestApp_LoadSceneAndProbe(t *testing.T) {
	app := newTestApp()

	load := app.LoadScene(`
(line 0 0 10 0)
(circle 5 5 3)
`)
	if len(load.Errors) != 0 {
		t.Fatalf("load errors: %v", load.Errors)
	}
	if load.Entities != 2 {
		t.Fatalf("loaded %d entities, want 2", load.Entities)
	}

	res := app.Probe(0.1, 0.1, 0)
	if !res.Valid || res.Best == nil {
		t.Fatalf("probe near the line start found nothing: %+v", res)
	}
	if res.Best.Kind != "endpoint" {
		t.Errorf("best kind = %q, want endpoint", res.Best.Kind)
	}
	if res.Best.Point.X != 0 || res.Best.Point.Y != 0 {
		t.Errorf("best point = %+v, want (0,0)", res.Best.Point)
	}
	if len(res.Candidates) == 0 {
		t.Error("ranked candidate list empty for a valid probe")
	}
}

func TestApp_ProbeEmptyScene(t *testing.T) {
	app := newTestApp()
	res := app.Probe(0, 0, 0)
	if res.Valid || res.Best != nil {
		t.Errorf("probe of an empty scene = %+v, want invalid", res)
	}
}

func TestApp_LoadSceneErrorsKeepOldScene(t *testing.T) {
	app := newTestApp()
	if load := app.LoadScene(`(circle 0 0 5)`); load.Entities != 1 {
		t.Fatalf("initial load: %+v", load)
	}

	load := app.LoadScene(`(circle 0 0 -5)`)
	if len(load.Errors) == 0 {
		t.Fatal("invalid script loaded without errors")
	}

	// The previous scene still answers probes.
	if res := app.Probe(5.1, 0.1, 0); !res.Valid {
		t.Error("previous scene lost after a failed load")
	}
}

func TestApp_LoadSceneReplacesScene(t *testing.T) {
	app := newTestApp()
	app.LoadScene(`(circle 0 0 5)`)
	app.LoadScene(`(point 100 100)`)

	if res := app.Probe(5.1, 0.1, 0); res.Valid {
		t.Errorf("old scene still probeable: %+v", res)
	}
	res := app.Probe(100.1, 100.1, 0)
	if !res.Valid || res.Best.Kind != "node" {
		t.Errorf("probe = %+v, want the node at (100,100)", res)
	}
}

func TestApp_SnapperConfiguration(t *testing.T) {
	app := newTestApp()
	app.LoadScene(`(line 0 0 10 0)`)

	st := app.Snapper().Settings()
	st.Tolerance = 0.05
	app.Snapper().Configure(st)

	if res := app.Probe(0.3, 0.2, 0); res.Valid {
		t.Errorf("probe beyond the tightened tolerance = %+v, want invalid", res)
	}
}
