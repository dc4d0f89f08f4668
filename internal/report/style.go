package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vrclog/vrcstats-go/pkg/vrcstats/instance"
)

// Gruvbox-inspired color palette.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorBlue   = lipgloss.Color("#83a598")
	colorPurple = lipgloss.Color("#d3869b")
	colorAqua   = lipgloss.Color("#689d6a")
	colorGray   = lipgloss.Color("#a89984")
	colorDim    = lipgloss.Color("#928374")
	colorFg     = lipgloss.Color("#ebdbb2")
	colorHeader = lipgloss.Color("#fe8019")
)

var categoryColors = map[instance.Category]lipgloss.Color{
	instance.FriendPlus:  colorPurple,
	instance.Friend:      colorBlue,
	instance.InvitePlus:  colorGreen,
	instance.Invite:      colorAqua,
	instance.Group:       colorYellow,
	instance.GroupPlus:   colorHeader,
	instance.GroupPublic: colorRed,
	instance.Public:      colorGray,
}

// styles are bound to one lipgloss renderer so the color profile follows
// the output writer rather than os.Stdout.
type styles struct {
	header lipgloss.Style
	dim    lipgloss.Style
	bold   lipgloss.Style
	bars   map[instance.Category]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	s := styles{
		header: r.NewStyle().Foreground(colorHeader).Bold(true),
		dim:    r.NewStyle().Foreground(colorDim),
		bold:   r.NewStyle().Foreground(colorFg).Bold(true),
		bars:   make(map[instance.Category]lipgloss.Style, len(categoryColors)),
	}
	for c, color := range categoryColors {
		s.bars[c] = r.NewStyle().Foreground(color)
	}
	return s
}

// newRenderer returns a renderer for w. Without color every style renders
// plain text. With color, a writer that is not a terminal still gets 256
// colors so "always" works through pipes.
func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch {
	case !color:
		r.SetColorProfile(termenv.Ascii)
	case r.ColorProfile() == termenv.Ascii:
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}
