// Package formatter turns generated briefs into renderable blocks and export documents (JSON, Markdown, CSV, plain text).
package formatter

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/tidwall/gjson"
)

// longLineThreshold is the rune count above which a comma-separated line is split into items.
const longLineThreshold = 50

// Format converts one brief section value into display blocks.
//
// Arrays yield one plain block per element. Objects yield one block per key in document order,
// headed by [Humanize] of the key. Anything else goes through the line heuristic of formatText.
func Format(value gjson.Result) []models.Block {
	switch {
	case value.IsArray():
		var blocks []models.Block
		value.ForEach(func(_, item gjson.Result) bool {
			blocks = append(blocks, models.Block{Text: Flatten(item)})
			return true
		})
		return blocks
	case value.IsObject():
		var blocks []models.Block
		value.ForEach(func(k, v gjson.Result) bool {
			blocks = append(blocks, formatEntry(k.String(), v))
			return true
		})
		return blocks
	default:
		return formatText(scalarString(value))
	}
}

func formatEntry(key string, v gjson.Result) models.Block {
	block := models.Block{Heading: Humanize(key)}
	if v.IsArray() {
		items := []string{}
		v.ForEach(func(_, item gjson.Result) bool {
			items = append(items, Flatten(item))
			return true
		})
		block.Items = items
		return block
	}
	block.Text = Flatten(v)
	return block
}

// formatText splits free text into blocks line by line. Rules are checked in order:
// a hyphen anywhere but the start splits the line on hyphens, a leading "-" or "•" is stripped,
// a long line containing commas splits on commas, and anything else is kept whole.
func formatText(text string) []models.Block {
	var blocks []models.Block
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case strings.Contains(line, "-") && !strings.HasPrefix(line, "-"):
			blocks = append(blocks, splitBlocks(line, "-")...)
		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•"):
			blocks = append(blocks, models.Block{Text: stripMarker(line)})
		case strings.Contains(line, ",") && utf8.RuneCountInString(line) > longLineThreshold:
			blocks = append(blocks, splitBlocks(line, ",")...)
		default:
			blocks = append(blocks, models.Block{Text: line})
		}
	}
	return blocks
}

func splitBlocks(line, sep string) []models.Block {
	var blocks []models.Block
	for _, part := range strings.Split(line, sep) {
		if part = strings.TrimSpace(part); part != "" {
			blocks = append(blocks, models.Block{Text: part})
		}
	}
	return blocks
}

// stripMarker removes a single leading list marker and the whitespace after it.
func stripMarker(line string) string {
	_, size := utf8.DecodeRuneInString(line)
	return strings.TrimLeftFunc(line[size:], unicode.IsSpace)
}

// Humanize turns a section key into a label: underscores become spaces and every word starts upper-case.
//
// A word starts at the beginning of the string or after any rune that is not a letter or digit.
func Humanize(key string) string {
	key = strings.ReplaceAll(key, "_", " ")

	var b strings.Builder
	b.Grow(len(key))
	boundary := true
	for _, r := range key {
		if boundary && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
		}
		boundary = !unicode.IsLetter(r) && !unicode.IsDigit(r)
		b.WriteRune(r)
	}
	return b.String()
}

// Flatten renders any value on a single line.
//
// Arrays join their flattened elements with ", ". Objects render "key: value" pairs joined with " | ",
// with underscores in keys replaced by spaces. Scalars use their plain string form and null is "null".
func Flatten(v gjson.Result) string {
	switch {
	case v.IsArray():
		var parts []string
		v.ForEach(func(_, item gjson.Result) bool {
			parts = append(parts, Flatten(item))
			return true
		})
		return strings.Join(parts, ", ")
	case v.IsObject():
		var parts []string
		v.ForEach(func(k, val gjson.Result) bool {
			parts = append(parts, strings.ReplaceAll(k.String(), "_", " ")+": "+Flatten(val))
			return true
		})
		return strings.Join(parts, " | ")
	default:
		return scalarString(v)
	}
}

func scalarString(v gjson.Result) string {
	if v.Type == gjson.Null {
		return "null"
	}
	return v.String()
}
