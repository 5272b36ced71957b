package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	generate     key.Binding
	example      key.Binding
	toggleStream key.Binding
	copy         key.Binding
	saveJSON     key.Binding
	savePDF      key.Binding
	saveMarkdown key.Binding
	newIdea      key.Binding
	scroll       key.Binding
	quit         key.Binding
	forceQuit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		generate:     key.NewBinding(key.WithKeys("ctrl+s", "ctrl+g"), key.WithHelp("ctrl+s", "generate")),
		example:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "example idea")),
		toggleStream: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle stream")),
		copy:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy JSON")),
		saveJSON:     key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "save JSON")),
		savePDF:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "save PDF")),
		saveMarkdown: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "save Markdown")),
		newIdea:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new idea")),
		scroll:       key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQuit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) inputHelp() []key.Binding {
	return []key.Binding{k.generate, k.example, k.toggleStream, k.forceQuit}
}

func (k keyMap) resultHelp() []key.Binding {
	return []key.Binding{k.copy, k.saveJSON, k.savePDF, k.saveMarkdown, k.newIdea, k.scroll, k.quit}
}
