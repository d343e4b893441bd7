package viewer

import (
	"math"

	"github.com/toposcope/toposcope/models"
	"github.com/toposcope/toposcope/theme"
)

// Options is the configuration surface exposed to the embedding
// application. Zero values fall back to the defaults from
// DefaultOptions, not to Go zero semantics; use DefaultOptions as the
// starting point and override fields.
type Options struct {
	// URL of the graph document to fetch. Ignored when Data is set.
	URL string

	// Data overrides fetched data with an in-memory graph.
	Data *models.Graph

	// Metadata shows the graph metadata overlay after load.
	Metadata bool

	// DefaultStyle keeps every node at the theme's uniform size. When
	// false, each node primitive is scaled by its Node.Size.
	DefaultStyle bool

	// LinkDistance is the rest length of link springs, in world units.
	LinkDistance float64

	// LinkStrength in (0, 1] overrides the degree-derived per-link
	// strength. Zero selects the automatic strength.
	LinkStrength float64

	// Theta is the Barnes-Hut accuracy parameter; lower is more accurate
	// and slower.
	Theta float64

	// DistanceMax bounds the reach of many-body repulsion.
	DistanceMax float64

	// Lifecycle and interaction callbacks. Nil callbacks select the
	// built-in behavior (info overlays for clicks).
	OnInit      func()
	OnLoad      func(*models.Graph)
	OnEnd       func()
	OnClickNode func(*models.Node)
	OnClickLink func(*models.Link)

	// InitialAnimation animates the settling phase in dynamic mode. When
	// false the driver pre-rolls the simulation so the first visible
	// frame is already settled.
	InitialAnimation bool

	// Static runs the layout to convergence synchronously before the
	// first render instead of animating it.
	Static bool

	// Drift adds ambient noise motion in dynamic mode once settled.
	Drift bool

	// Theme is the name of the color table to use.
	Theme string

	// Width and Height are the initial viewport size in pixels. Their
	// ratio is preserved across resizes.
	Width  float64
	Height float64
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		Metadata:         true,
		DefaultStyle:     true,
		LinkDistance:     30,
		LinkStrength:     0, // automatic, from node degrees
		Theta:            0.9,
		DistanceMax:      math.Inf(1),
		InitialAnimation: true,
		Theme:            theme.DefaultName,
		Width:            800,
		Height:           600,
	}
}

// Validate rejects configuration values the simulation cannot run with.
func (o *Options) Validate() error {
	if o.LinkStrength < 0 || o.LinkStrength > 1 {
		return &models.ConfigError{Field: "linkStrength", Reason: "must be in [0, 1]"}
	}
	if o.Theta <= 0 {
		return &models.ConfigError{Field: "theta", Reason: "must be positive"}
	}
	if o.Width <= 0 || o.Height <= 0 {
		return &models.ConfigError{Field: "size", Reason: "viewport dimensions must be positive"}
	}
	if o.URL == "" && o.Data == nil {
		return &models.ConfigError{Field: "url", Reason: "either url or data is required"}
	}
	return nil
}
