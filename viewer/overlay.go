package viewer

import "github.com/toposcope/toposcope/models"

// Overlay is the contract with the presentation panels (tooltip, node and
// link info, graph metadata). The panels themselves are external
// collaborators; the viewer only shows, updates, and hides them, and reads
// back visibility for idempotent toggling.
type Overlay interface {
	ShowTooltip(x, y float64, text string)
	HideTooltip()

	ShowNodeInfo(n *models.Node)
	ShowLinkInfo(l *models.Link)
	HideInfo()
	InfoVisible() bool

	ShowMetadata(g *models.Graph)
}

// NopOverlay discards every overlay operation. It is the default when the
// embedding application supplies no panels.
type NopOverlay struct{}

func (NopOverlay) ShowTooltip(x, y float64, text string) {}
func (NopOverlay) HideTooltip()                          {}
func (NopOverlay) ShowNodeInfo(n *models.Node)           {}
func (NopOverlay) ShowLinkInfo(l *models.Link)           {}
func (NopOverlay) HideInfo()                             {}
func (NopOverlay) InfoVisible() bool                     { return false }
func (NopOverlay) ShowMetadata(g *models.Graph)          {}
