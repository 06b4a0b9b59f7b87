package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glabrego/frontpage/internal/hnsearch"
	renderstory "github.com/glabrego/frontpage/internal/render/story"
	tuitheme "github.com/glabrego/frontpage/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type StoryCardParams struct {
	Story    hnsearch.Story
	Active   bool
	Expanded bool
	Width    int
}

// RenderStoryCard renders one list card. The collapsed form is a single
// line; the expanded form appends the detail block for exactly the one
// story holding the expansion slot.
func RenderStoryCard(p StoryCardParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	expandMarker := "+"
	if p.Expanded {
		expandMarker = "-"
	}

	title := strings.TrimSpace(p.Story.Title)
	if title == "" {
		title = "(untitled)"
	}
	author := th.CardAuthor.Render("by " + p.Story.Author)

	prefix := fmt.Sprintf(" %s %s ", cursorMarker, expandMarker)
	available := p.Width - visibleLen(prefix) - visibleLen(author) - 1
	if available < 1 {
		available = 1
	}
	title = truncateRunes(title, available)

	head := th.RenderActiveLine(p.Active, prefix+th.CardTitle.Render(title)+" "+author)
	if !p.Expanded {
		return head
	}

	return head + "\n" + detailBlock(p.Story, p.Width, th)
}

func detailBlock(s hnsearch.Story, width int, th tuitheme.Theme) string {
	indent := "     "
	lines := make([]string, 0, 8)

	meta := fmt.Sprintf("%d points, %d comments", s.Points, s.NumComments)
	lines = append(lines, indent+th.MetaValue.Render(meta))
	if s.CreatedAt != "" {
		lines = append(lines, indent+th.MetaLabel.Render("created ")+th.MetaValue.Render(s.CreatedAt))
	}
	if s.URL != "" {
		lines = append(lines, indent+th.MetaLabel.Render("url ")+th.MetaValue.Render(truncateRunes(s.URL, width-visibleLen(indent)-4)))
	}
	if len(s.Tags) > 0 {
		tags := make([]string, 0, len(s.Tags))
		for _, tag := range s.Tags {
			tags = append(tags, th.CardTag.Render(tag))
		}
		lines = append(lines, indent+strings.Join(tags, " "))
	}

	bodyWidth := width - len(indent)
	if bodyWidth < 20 {
		bodyWidth = 20
	}
	if body := renderstory.TextLines(s, bodyWidth); len(body) > 0 {
		lines = append(lines, "")
		for _, line := range body {
			lines = append(lines, indent+line)
		}
	}

	return strings.Join(lines, "\n")
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(reANSICodes.ReplaceAllString(s, ""))
}
