package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/shared"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

const (
	DefaultJSONFilename     = "brief-musical.json"
	DefaultPDFFilename      = "brief-musical.pdf"
	DefaultMarkdownFilename = "brief-musical.md"
	DefaultTextFilename     = "brief-musical.txt"
	DefaultCSVFilename      = "brief-musical.csv"
)

// TitleFunc returns the display title of a section key. A nil TitleFunc falls back to [Humanize].
type TitleFunc func(key string) string

// Width 0 keeps every array element on its own line.
var jsonOptions = &pretty.Options{Width: 0, Prefix: "", Indent: "  ", SortKeys: false}

// ExportToJSON returns the brief indented with two spaces, keys in their original order.
func ExportToJSON(brief *models.Brief) ([]byte, error) {
	if brief == nil {
		return nil, shared.ErrNoResult
	}
	return bytes.TrimRight(pretty.PrettyOptions(brief.Raw(), jsonOptions), "\n"), nil
}

// ExportToMarkdown renders the brief as a Markdown document with one second-level heading per section.
func ExportToMarkdown(brief *models.Brief, idea string, title TitleFunc) ([]byte, error) {
	if brief == nil {
		return nil, shared.ErrNoResult
	}
	title = titleOrHumanize(title)

	var buf bytes.Buffer
	buf.WriteString("# Brief musical\n\n")
	if idea = strings.TrimSpace(idea); idea != "" {
		buf.WriteString(fmt.Sprintf("> %s\n\n", idea))
	}

	for _, section := range sections(brief) {
		buf.WriteString(fmt.Sprintf("## %s\n\n", title(section.key)))
		for _, block := range section.blocks {
			switch {
			case block.IsList():
				buf.WriteString(fmt.Sprintf("**%s**\n\n", block.Heading))
				for _, item := range block.Items {
					buf.WriteString(fmt.Sprintf("- %s\n", item))
				}
				buf.WriteString("\n")
			case block.Heading != "":
				buf.WriteString(fmt.Sprintf("**%s**: %s\n\n", block.Heading, block.Text))
			default:
				buf.WriteString(fmt.Sprintf("- %s\n", block.Text))
			}
		}
		buf.WriteString("\n")
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ExportToText renders the brief as plain text, one indented section per key.
func ExportToText(brief *models.Brief, title TitleFunc) ([]byte, error) {
	if brief == nil {
		return nil, shared.ErrNoResult
	}
	title = titleOrHumanize(title)

	var buf bytes.Buffer
	for i, section := range sections(brief) {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(title(section.key) + "\n")
		for _, block := range section.blocks {
			switch {
			case block.IsList():
				buf.WriteString(fmt.Sprintf("  %s:\n", block.Heading))
				for _, item := range block.Items {
					buf.WriteString(fmt.Sprintf("    • %s\n", item))
				}
			case block.Heading != "":
				buf.WriteString(fmt.Sprintf("  %s: %s\n", block.Heading, block.Text))
			default:
				buf.WriteString(fmt.Sprintf("  %s\n", block.Text))
			}
		}
	}

	return buf.Bytes(), nil
}

// ExportToCSV writes one row per block with columns: Section, Heading, Text.
//
// List blocks join their items with "; ".
func ExportToCSV(brief *models.Brief) ([]byte, error) {
	if brief == nil {
		return nil, shared.ErrNoResult
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Section", "Heading", "Text"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, section := range sections(brief) {
		for _, block := range section.blocks {
			text := block.Text
			if block.IsList() {
				text = strings.Join(block.Items, "; ")
			}
			if err := writer.Write([]string{section.key, block.Heading, text}); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteJSONExport writes the indented brief to path, defaulting to [DefaultJSONFilename].
func WriteJSONExport(brief *models.Brief, path string) (string, error) {
	data, err := ExportToJSON(brief)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}
	return writeExport(orDefault(path, DefaultJSONFilename), append(data, '\n'))
}

// WritePDFExport writes PDF bytes rendered by the API to path, defaulting to [DefaultPDFFilename].
func WritePDFExport(data []byte, path string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty PDF document", shared.ErrExportFailed)
	}
	return writeExport(orDefault(path, DefaultPDFFilename), data)
}

// WriteMarkdownExport writes the Markdown rendering to path, defaulting to [DefaultMarkdownFilename].
func WriteMarkdownExport(brief *models.Brief, idea, path string, title TitleFunc) (string, error) {
	data, err := ExportToMarkdown(brief, idea, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}
	return writeExport(orDefault(path, DefaultMarkdownFilename), append(data, '\n'))
}

// WriteTextExport writes the plain text rendering to path, defaulting to [DefaultTextFilename].
func WriteTextExport(brief *models.Brief, path string, title TitleFunc) (string, error) {
	data, err := ExportToText(brief, title)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}
	return writeExport(orDefault(path, DefaultTextFilename), data)
}

// WriteCSVExport writes the CSV rendering to path, defaulting to [DefaultCSVFilename].
func WriteCSVExport(brief *models.Brief, path string) (string, error) {
	data, err := ExportToCSV(brief)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}
	return writeExport(orDefault(path, DefaultCSVFilename), data)
}

type section struct {
	key    string
	blocks []models.Block
}

func sections(brief *models.Brief) []section {
	var out []section
	brief.Each(func(key string, v gjson.Result) bool {
		out = append(out, section{key: key, blocks: Format(v)})
		return true
	})
	return out
}

func titleOrHumanize(title TitleFunc) TitleFunc {
	if title == nil {
		return Humanize
	}
	return title
}

func orDefault(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}

func writeExport(path string, data []byte) (string, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("%w: failed to create directory: %v", shared.ErrExportFailed, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("%w: failed to write %s: %v", shared.ErrExportFailed, path, err)
	}
	return path, nil
}
