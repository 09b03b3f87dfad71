package main

import (
	"log/slog"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/plumbline/pkg/scene"
	"github.com/chazu/plumbline/pkg/script"
	"github.com/chazu/plumbline/pkg/snap"
)

// App wires the script engine, the scene store, and the snap engine
// together. It exposes serializable methods so a frontend binding layer
// can call it directly.
type App struct {
	engine  *script.Engine
	store   *scene.Store
	snapper *snap.Snapper
	logger  *slog.Logger
}

// ScriptErrorData is a JSON-serializable eval error for the frontend.
type ScriptErrorData struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// PointData is a JSON-serializable point.
type PointData struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CandidateData is a JSON-serializable snap candidate.
type CandidateData struct {
	Kind     string    `json:"kind"`
	Point    PointData `json:"point"`
	Entities []int     `json:"entities"`
	Distance float64   `json:"distance"`
}

// ProbeResult is the full result of one snap query.
type ProbeResult struct {
	Valid      bool            `json:"valid"`
	Best       *CandidateData  `json:"best,omitempty"`
	Candidates []CandidateData `json:"candidates"`
}

// LoadResult reports scene evaluation to the frontend.
type LoadResult struct {
	Entities int               `json:"entities"`
	Errors   []ScriptErrorData `json:"errors"`
}

// NewApp creates an App with an empty scene.
func NewApp(logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{
		engine: script.NewEngine(),
		store:  scene.NewStore(),
		logger: logger,
	}
	a.snapper = snap.New(a.store, logger)
	a.store.Subscribe(a.snapper)
	return a
}

// Snapper exposes the snap engine for direct configuration.
func (a *App) Snapper() *snap.Snapper { return a.snapper }

// LoadScene evaluates scene-script source, replacing the current scene.
func (a *App) LoadScene(source string) LoadResult {
	result := LoadResult{Errors: []ScriptErrorData{}}

	store, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.logger.Error("scene evaluation failed", "err", err)
		result.Errors = append(result.Errors, ScriptErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, ScriptErrorData{Line: e.Line, Message: e.Message})
		}
		return result
	}

	a.store = store
	a.snapper = snap.New(a.store, a.logger)
	a.store.Subscribe(a.snapper)
	result.Entities = store.Len()
	return result
}

func toCandidateData(c snap.Candidate) CandidateData {
	ids := make([]int, 0, len(c.Entities))
	for _, id := range c.Entities {
		ids = append(ids, int(id))
	}
	return CandidateData{
		Kind:     c.Kind.String(),
		Point:    PointData{X: c.Point.X, Y: c.Point.Y},
		Entities: ids,
		Distance: c.Distance,
	}
}

// Probe resolves a snap query at (x, y) with the given aperture in
// pixels and returns the best result plus the ranked candidate list.
func (a *App) Probe(x, y, aperturePx float64) ProbeResult {
	cursor := v3.Vec{X: x, Y: y}
	res := a.snapper.Resolve(cursor, aperturePx)
	all := a.snapper.ResolveAll(cursor, aperturePx)

	out := ProbeResult{Valid: res.Valid, Candidates: make([]CandidateData, 0, len(all))}
	if res.Valid {
		best := toCandidateData(res.Candidate)
		out.Best = &best
	}
	for _, c := range all {
		out.Candidates = append(out.Candidates, toCandidateData(c))
	}
	return out
}
