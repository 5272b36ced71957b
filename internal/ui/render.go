package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/musicbrief/internal/formatter"
	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/tidwall/gjson"
)

const (
	defaultWidth = 80
	minCardWidth = 24
)

// RenderCard draws one section as a bordered card in the section's accent color.
//
// Headed blocks show the heading in bold with the value beneath; list blocks put each item on a "• " line.
func RenderCard(cfg SectionConfig, blocks []models.Block, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	accent := lipgloss.Color(cfg.Color)

	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accent).Render(cfg.Icon + " " + cfg.Title),
	}

	heading := lipgloss.NewStyle().Bold(true)
	marker := lipgloss.NewStyle().Foreground(accent).Render("│ ")
	for _, b := range blocks {
		switch {
		case b.IsList():
			lines = append(lines, heading.Render(b.Heading))
			for _, item := range b.Items {
				lines = append(lines, "  • "+item)
			}
		case b.Heading != "" && len(b.Items) == 0 && b.Text == "":
			lines = append(lines, heading.Render(b.Heading))
		case b.Heading != "":
			lines = append(lines, heading.Render(b.Heading), "  "+b.Text)
		default:
			lines = append(lines, marker+b.Text)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(max(width-2, minCardWidth)).
		Render(strings.Join(lines, "\n"))
}

// RenderBrief renders one card per top-level key of brief, in document order.
func RenderBrief(brief *models.Brief, width int) string {
	if brief == nil {
		return ""
	}

	var cards []string
	brief.Each(func(key string, value gjson.Result) bool {
		cards = append(cards, RenderCard(LookupSection(key), formatter.Format(value), width))
		return true
	})
	return strings.Join(cards, "\n")
}
