// Package ui implements the interactive brief generator using bubbletea's Elm architecture.
//
// The TUI walks through three views:
//  1. [InputView] : Type an idea or cycle through the example ideas
//  2. [GeneratingView] : Spinner plus the accumulated stream text while the engine runs
//  3. [ResultView] : One colored card per brief section, with copy and export actions
//
// The [Model] receives engine progress through a channel pumped by waitForProgress commands. Every
// cycle gets a generation number so messages from an abandoned cycle are dropped.
//
// [RenderBrief] and [RenderCard] are also used by the CLI to print a brief outside the TUI.
package ui
