package script

import (
	"fmt"
	"strings"

	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/plumbline/pkg/geom"
	"github.com/chazu/plumbline/pkg/scene"
)

// sexpEntityRef wraps a scene.EntityID so builtins can return a handle
// the script can pass around.
type sexpEntityRef struct {
	id   scene.EntityID
	kind scene.EntityKind
}

func (r *sexpEntityRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(entity %s #%d)", r.kind, int(r.id))
}
func (r *sexpEntityRef) Type() *zygo.RegisteredType { return nil }

// isKW checks for a preprocessed keyword string and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs separates a builtin's arguments into keyword and positional.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); {
		if name, ok := isKW(args[i]); ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		return false, nil // nil -> false
	}
	return false, fmt.Errorf("expected bool, got %T (%s)", s, s.SexpString(nil))
}

// floats extracts n positional numbers for a builtin.
func floats(name string, pa kwArgs, n int) ([]float64, error) {
	if len(pa.positional) < n {
		return nil, fmt.Errorf("%s requires %d coordinates, got %d", name, n, len(pa.positional))
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		f, err := toFloat64(pa.positional[i])
		if err != nil {
			return nil, fmt.Errorf("%s: argument %d: %w", name, i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// applyLayer moves a freshly created entity to the :layer keyword's
// value when present.
func applyLayer(store *scene.Store, id scene.EntityID, pa kwArgs) error {
	v, ok := pa.kw["layer"]
	if !ok {
		return nil
	}
	layer, err := toString(v)
	if err != nil {
		return fmt.Errorf("layer: %w", err)
	}
	store.SetLayer(id, layer)
	return nil
}

// registerBuiltins installs the scene DSL into a zygomys environment.
// Builtins populate the provided store during evaluation.
//
//	(point x y)
//	(line x1 y1 x2 y2)           (xline x1 y1 x2 y2)
//	(circle cx cy r)             (arc cx cy r startDeg endDeg)
//	(ellipse cx cy major minor :rotation deg)
//	(polyline x1 y1 x2 y2 ... :closed true)
//
// Every form accepts :layer "name" and returns an entity reference.
func registerBuiltins(env *zygo.Zlisp, store *scene.Store) {

	entityRef := func(id scene.EntityID, pa kwArgs) (zygo.Sexp, error) {
		if err := applyLayer(store, id, pa); err != nil {
			return zygo.SexpNull, err
		}
		e, _ := store.Entity(id)
		return &sexpEntityRef{id: id, kind: e.Kind}, nil
	}

	env.AddFunction("point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floats("point", pa, 2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return entityRef(store.AddPoint(geom.Pt(f[0], f[1])), pa)
	})

	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floats("line", pa, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return entityRef(store.AddLine(geom.Pt(f[0], f[1]), geom.Pt(f[2], f[3])), pa)
	})

	env.AddFunction("xline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floats("xline", pa, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		return entityRef(store.AddConstructionLine(geom.Pt(f[0], f[1]), geom.Pt(f[2], f[3])), pa)
	})

	env.AddFunction("circle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floats("circle", pa, 3)
		if err != nil {
			return zygo.SexpNull, err
		}
		if f[2] <= 0 {
			return zygo.SexpNull, fmt.Errorf("circle: radius must be positive, got %v", f[2])
		}
		return entityRef(store.AddCircle(geom.Pt(f[0], f[1]), f[2]), pa)
	})

	env.AddFunction("arc", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floats("arc", pa, 5)
		if err != nil {
			return zygo.SexpNull, err
		}
		if f[2] <= 0 {
			return zygo.SexpNull, fmt.Errorf("arc: radius must be positive, got %v", f[2])
		}
		return entityRef(store.AddArc(geom.Pt(f[0], f[1]), f[2], f[3], f[4]), pa)
	})

	env.AddFunction("ellipse", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		f, err := floats("ellipse", pa, 4)
		if err != nil {
			return zygo.SexpNull, err
		}
		if f[2] <= 0 || f[3] <= 0 {
			return zygo.SexpNull, fmt.Errorf("ellipse: radii must be positive, got %v and %v", f[2], f[3])
		}
		rotation := 0.0
		if v, ok := pa.kw["rotation"]; ok {
			rotation, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("ellipse: rotation: %w", err)
			}
		}
		return entityRef(store.AddEllipse(geom.Pt(f[0], f[1]), f[2], f[3], rotation), pa)
	})

	env.AddFunction("polyline", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 4 || len(pa.positional)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("polyline requires an even number of coordinates, at least 4")
		}
		f, err := floats("polyline", pa, len(pa.positional))
		if err != nil {
			return zygo.SexpNull, err
		}
		pts := make([]v3.Vec, 0, len(f)/2)
		for i := 0; i < len(f); i += 2 {
			pts = append(pts, geom.Pt(f[i], f[i+1]))
		}
		closed := false
		if v, ok := pa.kw["closed"]; ok {
			closed, err = toBool(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polyline: closed: %w", err)
			}
		}
		id := store.AddPolyline(pts, closed)
		if id == scene.InvalidEntity {
			return zygo.SexpNull, fmt.Errorf("polyline: need at least two vertices")
		}
		return entityRef(id, pa)
	})
}
