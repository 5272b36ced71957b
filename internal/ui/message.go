package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/musicbrief/internal/models"
	"github.com/desertthunder/musicbrief/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all messages produced by the TUI's own commands (Elm-style message union).
//
// Every message carries the generation or copy counter it belongs to so stale messages are ignored.
type Msg struct {
	kind MsgKind
	seq  int
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgProgressUpdate MsgKind = iota
	MsgGenerationComplete
	MsgExportComplete
	MsgCopiedExpired
)

type generationResult struct {
	brief *models.Brief
	err   error
}

type exportResult struct {
	label string
	path  string
	err   error
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(seq int, update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, seq: seq, data: update}
}

// generationCompleteMsg is the constructor for [MsgGenerationComplete]
func generationCompleteMsg(seq int, brief *models.Brief, err error) Msg {
	return Msg{kind: MsgGenerationComplete, seq: seq, data: generationResult{brief: brief, err: err}}
}

// exportCompleteMsg is the constructor for [MsgExportComplete]
func exportCompleteMsg(label, path string, err error) Msg {
	return Msg{kind: MsgExportComplete, data: exportResult{label: label, path: path, err: err}}
}

// copiedExpiredMsg is the constructor for [MsgCopiedExpired]
func copiedExpiredMsg(seq int) Msg {
	return Msg{kind: MsgCopiedExpired, seq: seq}
}
