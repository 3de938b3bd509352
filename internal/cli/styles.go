package cli

import (
	"io"

	"github.com/Cyclone1070/fastfs/internal/fastfs"
	"github.com/charmbracelet/lipgloss"
)

// Colors
const (
	colorDir     = lipgloss.Color("12")
	colorSymlink = lipgloss.Color("14")
	colorSuccess = lipgloss.Color("10")
	colorError   = lipgloss.Color("9")
	colorDim     = lipgloss.Color("241")
)

// styles renders for a single writer, so colors are dropped when it is not a terminal.
type styles struct {
	dir     lipgloss.Style
	symlink lipgloss.Style
	other   lipgloss.Style
	kind    lipgloss.Style
	success lipgloss.Style
	err     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		dir:     r.NewStyle().Foreground(colorDir).Bold(true),
		symlink: r.NewStyle().Foreground(colorSymlink),
		other:   r.NewStyle().Faint(true),
		kind:    r.NewStyle().Foreground(colorDim).Width(8),
		success: r.NewStyle().Foreground(colorSuccess).Bold(true),
		err:     r.NewStyle().Foreground(colorError).Bold(true),
	}
}

// entry renders a listing name styled by its kind. Directories get a trailing slash.
func (s styles) entry(e fastfs.DirEntry) string {
	switch e.Kind {
	case fastfs.KindDirectory:
		return s.dir.Render(e.Name + "/")
	case fastfs.KindSymlink:
		return s.symlink.Render(e.Name)
	case fastfs.KindOther:
		return s.other.Render(e.Name)
	default:
		return e.Name
	}
}
