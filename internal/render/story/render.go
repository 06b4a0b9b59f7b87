package story

import (
	"html"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/glabrego/frontpage/internal/hnsearch"
)

// TextLines renders a story's self-post body into wrapped terminal lines.
// Ask/Show HN bodies carry a small HTML subset (paragraphs, breaks, links,
// inline code); anything unrecognized degrades to its text content.
func TextLines(s hnsearch.Story, width int) []string {
	raw := strings.TrimSpace(s.StoryText)
	if raw == "" {
		return nil
	}
	if width < 1 {
		width = 80
	}

	doc, err := nethtml.Parse(strings.NewReader("<html><body>" + raw + "</body></html>"))
	if err != nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}
	body := findBody(doc)
	if body == nil {
		return wrapText(strings.TrimSpace(html.UnescapeString(raw)), width)
	}

	var b strings.Builder
	writeNodeText(&b, body)

	out := make([]string, 0, 8)
	for i, paragraph := range splitParagraphs(b.String()) {
		if i > 0 {
			out = append(out, "")
		}
		out = append(out, wrapText(paragraph, width)...)
	}
	return out
}

func findBody(n *nethtml.Node) *nethtml.Node {
	if n.Type == nethtml.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func writeNodeText(b *strings.Builder, n *nethtml.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case nethtml.TextNode:
			b.WriteString(c.Data)
		case nethtml.ElementNode:
			switch c.Data {
			case "p":
				b.WriteString("\n\n")
				writeNodeText(b, c)
			case "br":
				b.WriteString("\n")
			case "a":
				writeNodeText(b, c)
				if href := attrValue(c, "href"); href != "" && href != innerText(c) {
					b.WriteString(" (" + href + ")")
				}
			default:
				writeNodeText(b, c)
			}
		}
	}
}

func innerText(n *nethtml.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode {
			b.WriteString(c.Data)
		} else {
			b.WriteString(innerText(c))
		}
	}
	return strings.TrimSpace(b.String())
}

func attrValue(n *nethtml.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func splitParagraphs(text string) []string {
	out := make([]string, 0, 4)
	for _, block := range strings.Split(text, "\n\n") {
		lines := make([]string, 0, 2)
		for _, line := range strings.Split(block, "\n") {
			collapsed := strings.Join(strings.Fields(line), " ")
			if collapsed != "" {
				lines = append(lines, collapsed)
			}
		}
		if len(lines) > 0 {
			out = append(out, strings.Join(lines, "\n"))
		}
	}
	return out
}

func wrapText(text string, width int) []string {
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, word[:width])
				word = word[width:]
			}

			if line == "" {
				line = word
				continue
			}
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}

	return out
}
