package formatter

import (
	"reflect"
	"testing"

	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/tidwall/gjson"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []models.Block
	}{
		{
			name:  "array yields one block per element",
			input: `["Kick","Snare","Hi-hat"]`,
			want:  []models.Block{{Text: "Kick"}, {Text: "Snare"}, {Text: "Hi-hat"}},
		},
		{
			name:  "array of objects is flattened",
			input: `[{"name":"Serum","preset_type":"pad"},["a","b"],null]`,
			want: []models.Block{
				{Text: "name: Serum | preset type: pad"},
				{Text: "a, b"},
				{Text: "null"},
			},
		},
		{
			name:  "object yields headed blocks in key order",
			input: `{"root":"A","mode":"minor","alt_keys":["C",{"rel":"E"}],"chords":{"verse":"i-VI"}}`,
			want: []models.Block{
				{Heading: "Root", Text: "A"},
				{Heading: "Mode", Text: "minor"},
				{Heading: "Alt Keys", Items: []string{"C", "rel: E"}},
				{Heading: "Chords", Text: "verse: i-VI"},
			},
		},
		{
			name:  "empty array value keeps heading",
			input: `{"effects":[]}`,
			want:  []models.Block{{Heading: "Effects", Items: []string{}}},
		},
		{
			name:  "number",
			input: `140`,
			want:  []models.Block{{Text: "140"}},
		},
		{
			name:  "null",
			input: `null`,
			want:  []models.Block{{Text: "null"}},
		},
		{
			name:  "hyphen split",
			input: `"Intro - Verse - Drop"`,
			want:  []models.Block{{Text: "Intro"}, {Text: "Verse"}, {Text: "Drop"}},
		},
		{
			name:  "leading hyphen is stripped not split",
			input: `"-   sidechain the pads"`,
			want:  []models.Block{{Text: "sidechain the pads"}},
		},
		{
			name:  "bullet is stripped",
			input: `"• Kick on 1 and 3"`,
			want:  []models.Block{{Text: "Kick on 1 and 3"}},
		},
		{
			name:  "long comma line is split",
			input: `"Rhodes chaud, basse ronde, guitare muted, pads aériens, vocal chops"`,
			want: []models.Block{
				{Text: "Rhodes chaud"},
				{Text: "basse ronde"},
				{Text: "guitare muted"},
				{Text: "pads aériens"},
				{Text: "vocal chops"},
			},
		},
		{
			name:  "short comma line is kept",
			input: `"808, claps, shakers"`,
			want:  []models.Block{{Text: "808, claps, shakers"}},
		},
		{
			name:  "lines are trimmed and blanks dropped",
			input: `"  Couplet 1  \n\n   \nRefrain"`,
			want:  []models.Block{{Text: "Couplet 1"}, {Text: "Refrain"}},
		},
		{
			name:  "empty string",
			input: `""`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(gjson.Parse(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Format(%s) = %#v, want %#v", tt.input, got, tt.want)
			}
		})
	}

	t.Run("comma threshold counts runes", func(t *testing.T) {
		// 50 runes but more than 50 bytes
		line := "éééééééééé, éééééééééé, éééééééééé, éééééééééé, éé"
		if got := Format(gjson.Parse(`"` + line + `"`)); len(got) != 1 {
			t.Errorf("expected a 50-rune line to stay whole, got %d blocks", len(got))
		}
	})
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"mix_tips", "Mix Tips"},
		{"drums_patterns", "Drums Patterns"},
		{"bpm", "Bpm"},
		{"automation_tips_v2", "Automation Tips V2"},
		{"été_chaud", "Été Chaud"},
		{"mix-tips", "Mix-Tips"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Humanize(tt.input); got != tt.want {
				t.Errorf("Humanize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFlatten(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"string", `"Lo-fi"`, "Lo-fi"},
		{"number", `92.5`, "92.5"},
		{"bool", `true`, "true"},
		{"null", `null`, "null"},
		{"array", `["Am","F","C"]`, "Am, F, C"},
		{"object", `{"low_cut":"30Hz","comp_ratio":4}`, "low cut: 30Hz | comp ratio: 4"},
		{"nested", `{"eq":{"high_shelf":"+2dB"},"bus":["drums","bass"]}`, "eq: high shelf: +2dB | bus: drums, bass"},
		{"empty object", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Flatten(gjson.Parse(tt.input)); got != tt.want {
				t.Errorf("Flatten(%s) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
