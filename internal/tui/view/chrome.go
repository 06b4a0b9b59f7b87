package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	tuitheme "github.com/glabrego/frontpage/internal/tui/theme"
)

// SidebarWidth is the rendered column width of the open sidebar, border
// included. Mouse presses at or beyond this column land outside it.
const SidebarWidth = 22

func Header(width int, th tuitheme.Theme) string {
	left := th.InertGlyph.Render("≡") + " " + th.Title.Render("Front Page")
	right := th.InertGlyph.Render("[notifications]")
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// Sidebar renders the navigation column. Every entry is inert: rendered,
// wired to nothing.
func Sidebar(height int, th tuitheme.Theme) string {
	lines := []string{
		th.Section.Render("Navigation"),
		"",
		th.MetaValue.Render("  Stories"),
		th.MetaValue.Render("  Saved"),
		th.MetaValue.Render("  Settings"),
		"",
		th.RenderButton(tuitheme.ButtonDanger, "Log out"),
	}
	content := strings.Join(lines, "\n")
	return th.Sidebar.Width(SidebarWidth - 1).Height(height).Render(content)
}

func SortBar(field string, asc bool, th tuitheme.Theme) string {
	arrow := func(active bool) string {
		if !active {
			return ""
		}
		if asc {
			return " ↑"
		}
		return " ↓"
	}

	authorVariant := tuitheme.ButtonGhost
	titleVariant := tuitheme.ButtonGhost
	if field == "author" {
		authorVariant = tuitheme.ButtonPrimary
	} else {
		titleVariant = tuitheme.ButtonPrimary
	}

	return th.MetaLabel.Render("sort:") + " " +
		th.RenderButton(authorVariant, "Author"+arrow(field == "author")) + " " +
		th.RenderButton(titleVariant, "Title"+arrow(field == "title"))
}

// PaginationRow renders one numbered control per page, sized to totalPages.
func PaginationRow(current, totalPages int, th tuitheme.Theme) string {
	if totalPages <= 0 {
		return th.MetaLabel.Render("no pages")
	}
	parts := make([]string, 0, totalPages)
	for i := 0; i < totalPages; i++ {
		label := fmt.Sprintf("%d", i+1)
		if i == current {
			parts = append(parts, th.PageActive.Render(label))
			continue
		}
		parts = append(parts, th.PageIdle.Render(label))
	}
	return th.MetaLabel.Render("page:") + " " + strings.Join(parts, "")
}

type FooterParams struct {
	Page       int
	TotalPages int
	Shown      int
	Loading    bool
}

func Footer(p FooterParams, th tuitheme.Theme) string {
	state := th.StateIdle.Render("idle")
	if p.Loading {
		state = th.StateLoad.Render("loading")
	}
	parts := []string{
		th.InertGlyph.Render("[about]"),
		th.InertGlyph.Render("[contact]"),
		th.MetaLabel.Render("page") + " " + th.MetaValue.Render(fmt.Sprintf("%d/%d", p.Page+1, p.TotalPages)),
		th.MetaValue.Render(fmt.Sprintf("%d shown", p.Shown)),
		state,
	}
	return strings.Join(parts, " • ")
}

func Toolbar() string {
	return "j/k move | enter expand | x remove | a/t sort | h/l page | s sidebar | o open | y copy | r refetch | ? help | q quit"
}

// Layout joins the side column with the main pane and stacks the footer
// underneath.
func Layout(sidebar, main, footer string) string {
	content := main
	if sidebar != "" {
		content = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, main)
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, footer)
}
