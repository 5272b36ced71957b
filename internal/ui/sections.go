package ui

// SectionConfig is the presentation of one brief section.
type SectionConfig struct {
	Icon  string
	Title string
	Color string // hex accent color
}

const fallbackIcon, fallbackColor = "📝", "#6366f1"

var sectionConfigs = map[string]SectionConfig{
	"style":             {Icon: "🎨", Title: "Style Musical", Color: "#8b5cf6"},
	"bpm":               {Icon: "⏱️", Title: "Tempo", Color: "#ec4899"},
	"key":               {Icon: "🎹", Title: "Tonalité", Color: "#10b981"},
	"ambiance":          {Icon: "🌊", Title: "Ambiance", Color: "#f59e0b"},
	"structure":         {Icon: "🏗️", Title: "Structure", Color: "#3b82f6"},
	"instruments":       {Icon: "🎸", Title: "Instruments", Color: "#8b5cf6"},
	"drums_patterns":    {Icon: "🥁", Title: "Patterns de Batterie", Color: "#ef4444"},
	"presets_plugins":   {Icon: "🎛️", Title: "Presets & Plugins", Color: "#06b6d4"},
	"mix_tips":          {Icon: "🎚️", Title: "Conseils Mixage", Color: "#a855f7"},
	"mastering_tips":    {Icon: "✨", Title: "Conseils Mastering", Color: "#ec4899"},
	"effects":           {Icon: "🌀", Title: "Effets", Color: "#14b8a6"},
	"automation_tips":   {Icon: "🤖", Title: "Automation", Color: "#f59e0b"},
	"arrangement_guide": {Icon: "📐", Title: "Arrangement", Color: "#6366f1"},
}

// ExampleIdeas are offered in the idea input and by the examples command.
var ExampleIdeas = []string{
	"Beat trap sombre, 808 puissante, mélodie lo-fi",
	"Musique afro chill, positive et groovy",
	"Lo-fi hip-hop relaxante pour podcast",
	"EDM énergique pour intro podcast",
}

// LookupSection returns the presentation for key. Unknown keys get the note icon, the raw key as
// title, and the indigo accent.
func LookupSection(key string) SectionConfig {
	if cfg, ok := sectionConfigs[key]; ok {
		return cfg
	}
	return SectionConfig{Icon: fallbackIcon, Title: key, Color: fallbackColor}
}

// SectionTitle returns "icon title" for key. It fits [formatter.TitleFunc].
func SectionTitle(key string) string {
	cfg := LookupSection(key)
	return cfg.Icon + " " + cfg.Title
}
