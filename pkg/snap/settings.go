package snap

import (
	"log/slog"
	"math"
)

// Default settings values.
const (
	DefaultAperture     = 10.0 // screen pixels
	DefaultTolerance    = 1.0  // world units
	DefaultPixelSize    = 1.0  // world units per pixel
	DefaultPolarIncr    = 90.0 // degrees
	DefaultPolarTolDeg  = 2.0  // degrees
	defaultPriorityRank = 100  // rank for kinds missing from the table
)

// Settings configures a snap query. A Settings value handed to Configure
// is copied, so later mutation by the caller does not affect queries in
// flight.
type Settings struct {
	// Enabled is the master switch; when false every query resolves to
	// an invalid result.
	Enabled bool

	// Aperture is the screen-space radius in pixels within which a
	// candidate is eligible. Must be positive.
	Aperture float64

	// Tolerance is the world-space distance within which a candidate
	// must lie from the cursor. Must be positive.
	Tolerance float64

	// PixelSize converts screen pixels to world units (world per pixel).
	// Callers tracking a viewport update it on zoom. Must be positive.
	PixelSize float64

	// Modes enables individual snap kinds. Tracking kinds are governed
	// by the PolarTracking and ObjectTracking toggles instead.
	Modes map[Kind]bool

	// Priorities ranks snap kinds; a lower rank wins. Kinds missing from
	// the table rank last.
	Priorities map[Kind]int

	// PolarTracking enables polar alignment from the base point.
	PolarTracking bool
	// ObjectTracking enables alignment through acquired tracking points.
	ObjectTracking bool
	// PolarIncrementDeg adds every multiple of the increment to the
	// polar angle set; zero disables increment angles.
	PolarIncrementDeg float64
	// PolarAngles is the explicit polar angle set in degrees.
	PolarAngles []float64
	// PolarToleranceDeg is the angular window for tracking alignment.
	PolarToleranceDeg float64
}

// DefaultSettings returns the engine defaults: every object snap on,
// tracking off, the stock priority table, and cardinal polar angles.
func DefaultSettings() Settings {
	modes := make(map[Kind]bool, kindCount)
	for _, k := range []Kind{
		KindEndpoint, KindMidpoint, KindCenter, KindNode, KindQuadrant,
		KindIntersection, KindExtension, KindTangent, KindPerpendicular,
		KindParallel, KindNearest,
	} {
		modes[k] = true
	}
	return Settings{
		Enabled:           true,
		Aperture:          DefaultAperture,
		Tolerance:         DefaultTolerance,
		PixelSize:         DefaultPixelSize,
		Modes:             modes,
		Priorities:        defaultPriorities(),
		PolarIncrementDeg: DefaultPolarIncr,
		PolarAngles:       []float64{0, 90, 180, 270},
		PolarToleranceDeg: DefaultPolarTolDeg,
	}
}

// defaultPriorities ranks intersections above midpoints so a crossing
// wins even when a segment midpoint coincides with it.
func defaultPriorities() map[Kind]int {
	return map[Kind]int{
		KindEndpoint:       1,
		KindIntersection:   2,
		KindMidpoint:       3,
		KindCenter:         4,
		KindNode:           5,
		KindQuadrant:       6,
		KindExtension:      7,
		KindTangent:        8,
		KindPerpendicular:  9,
		KindParallel:       10,
		KindNearest:        11,
		KindPolarTracking:  12,
		KindObjectTracking: 13,
	}
}

// ModeEnabled reports whether an object snap kind is on.
func (s Settings) ModeEnabled(k Kind) bool {
	return s.Modes[k]
}

// Priority returns the rank of a kind, lower is better.
func (s Settings) Priority(k Kind) int {
	if r, ok := s.Priorities[k]; ok {
		return r
	}
	return defaultPriorityRank
}

// polarAngleSet returns the explicit angles merged with increment
// multiples, normalized and deduplicated.
func (s Settings) polarAngleSet() []float64 {
	seen := make(map[float64]bool)
	var out []float64
	addAngle := func(a float64) {
		a = math.Mod(a, 360)
		if a < 0 {
			a += 360
		}
		if !seen[a] {
			seen[a] = true
			out = append(out, a)
		}
	}
	for _, a := range s.PolarAngles {
		addAngle(a)
	}
	if s.PolarIncrementDeg > 0 {
		for a := 0.0; a < 360; a += s.PolarIncrementDeg {
			addAngle(a)
		}
	}
	return out
}

// clone deep-copies the settings so a configured value is immutable per
// query. Nil maps stay nil so clamp can tell "unset" from "all off".
func (s Settings) clone() Settings {
	c := s
	if s.Modes != nil {
		c.Modes = make(map[Kind]bool, len(s.Modes))
		for k, v := range s.Modes {
			c.Modes[k] = v
		}
	}
	if s.Priorities != nil {
		c.Priorities = make(map[Kind]int, len(s.Priorities))
		for k, v := range s.Priorities {
			c.Priorities[k] = v
		}
	}
	c.PolarAngles = append([]float64(nil), s.PolarAngles...)
	return c
}

// clamp validates the settings, replacing each invalid field with the
// value from prev (the last known good configuration). Problems are
// logged at warn level; the result is always usable.
func (s Settings) clamp(prev Settings, logger *slog.Logger) Settings {
	out := s.clone()
	if !(out.Aperture > 0) || math.IsNaN(out.Aperture) || math.IsInf(out.Aperture, 0) {
		logger.Warn("invalid snap aperture, keeping previous",
			"aperture", out.Aperture, "previous", prev.Aperture)
		out.Aperture = prev.Aperture
	}
	if !(out.Tolerance > 0) || math.IsNaN(out.Tolerance) || math.IsInf(out.Tolerance, 0) {
		logger.Warn("invalid snap tolerance, keeping previous",
			"tolerance", out.Tolerance, "previous", prev.Tolerance)
		out.Tolerance = prev.Tolerance
	}
	if !(out.PixelSize > 0) || math.IsNaN(out.PixelSize) || math.IsInf(out.PixelSize, 0) {
		logger.Warn("invalid pixel size, keeping previous",
			"pixelSize", out.PixelSize, "previous", prev.PixelSize)
		out.PixelSize = prev.PixelSize
	}
	if out.Modes == nil {
		out.Modes = prev.clone().Modes
	}
	if out.Priorities == nil {
		out.Priorities = prev.clone().Priorities
	}
	if out.PolarTracking && len(out.polarAngleSet()) == 0 {
		logger.Warn("polar tracking enabled with empty angle set, keeping previous angles")
		out.PolarAngles = append([]float64(nil), prev.PolarAngles...)
		out.PolarIncrementDeg = prev.PolarIncrementDeg
		if len(out.polarAngleSet()) == 0 {
			out.PolarAngles = []float64{0, 90, 180, 270}
		}
	}
	if !(out.PolarToleranceDeg > 0) {
		out.PolarToleranceDeg = prev.PolarToleranceDeg
		if !(out.PolarToleranceDeg > 0) {
			out.PolarToleranceDeg = DefaultPolarTolDeg
		}
	}
	return out
}
