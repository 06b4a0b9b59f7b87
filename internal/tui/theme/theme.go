package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// ButtonVariant is the closed set of button appearances. Rendering is a
// finite mapping from variant to style, not dynamic dispatch.
type ButtonVariant string

const (
	ButtonPrimary ButtonVariant = "primary"
	ButtonGhost   ButtonVariant = "ghost"
	ButtonDanger  ButtonVariant = "danger"
)

type Theme struct {
	Title      lipgloss.Style
	InertGlyph lipgloss.Style
	Section    lipgloss.Style
	ActiveLine lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateLoad  lipgloss.Style
	CardTitle  lipgloss.Style
	CardAuthor lipgloss.Style
	CardTag    lipgloss.Style
	PageActive lipgloss.Style
	PageIdle   lipgloss.Style
	Sidebar    lipgloss.Style

	buttons map[ButtonVariant]lipgloss.Style
}

func Default() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		InertGlyph: lipgloss.NewStyle().Foreground(cpOverlay1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		ActiveLine: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		CardTitle:  lipgloss.NewStyle().Bold(true).Foreground(cpText),
		CardAuthor: lipgloss.NewStyle().Foreground(cpLavender),
		CardTag:    lipgloss.NewStyle().Foreground(cpYellow),
		PageActive: lipgloss.NewStyle().Bold(true).Foreground(cpSurface0).Background(cpMauve).Padding(0, 1),
		PageIdle:   lipgloss.NewStyle().Foreground(cpSubtext1).Padding(0, 1),
		Sidebar: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, true, false, false).
			BorderForeground(cpOverlay1).
			PaddingRight(1),

		buttons: map[ButtonVariant]lipgloss.Style{
			ButtonPrimary: lipgloss.NewStyle().Bold(true).Foreground(cpSurface0).Background(cpLavender).Padding(0, 1),
			ButtonGhost:   lipgloss.NewStyle().Foreground(cpSubtext1).Padding(0, 1),
			ButtonDanger:  lipgloss.NewStyle().Bold(true).Foreground(cpRed).Padding(0, 1),
		},
	}
}

// RenderButton styles label for the given variant. Unknown variants fall
// back to the ghost style so every button stays renderable.
func (t Theme) RenderButton(variant ButtonVariant, label string) string {
	style, ok := t.buttons[variant]
	if !ok {
		style = t.buttons[ButtonGhost]
	}
	return style.Render(label)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
