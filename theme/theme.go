// Package theme provides the named color tables used to style node and
// link primitives. Themes are resolved once by name; an unknown name is a
// configuration error the viewer degrades through rather than crashes on.
package theme

import (
	"fmt"

	"github.com/toposcope/toposcope/models"
)

// Theme is a resolved color table. All lookups are pure.
type Theme struct {
	Name             string
	Background       string
	NodeColor        string
	LinkColor        string
	LinkHoveredColor string
}

// DefaultName is the theme used when none is configured.
const DefaultName = "dark"

var themes = map[string]*Theme{
	"dark": {
		Name:             "dark",
		Background:       "#212121",
		NodeColor:        "#2979FF",
		LinkColor:        "#616161",
		LinkHoveredColor: "#00E676",
	},
	"light": {
		Name:             "light",
		Background:       "#f8f8f8",
		NodeColor:        "#4285F4",
		LinkColor:        "#AAAAAA",
		LinkHoveredColor: "#EA4335",
	},
	"surreal": {
		Name:             "surreal",
		Background:       "#1a1025",
		NodeColor:        "#FF6D00",
		LinkColor:        "#651FFF",
		LinkHoveredColor: "#C6FF00",
	},
}

// Resolve returns the theme registered under name. Unknown names are a
// ConfigError; callers keep their previous theme in that case.
func Resolve(name string) (*Theme, error) {
	t, ok := themes[name]
	if !ok {
		return nil, &models.ConfigError{
			Field:  "theme",
			Reason: fmt.Sprintf("unknown theme %q", name),
		}
	}
	return t, nil
}

// Names returns the registered theme names.
func Names() []string {
	return []string{"dark", "light", "surreal"}
}
