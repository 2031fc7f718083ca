// Package ui provides the terminal presentation layer: themed Lipgloss
// renderers for the room catalog, reservation list, batch summaries, and
// the per-day availability grid, plus small Bubble Tea models for the
// interactive booking form and yes/no confirmation prompts.
//
// # Themes
//
// Three color themes ship with the binary (Nightfox, Kanagawa, Slate);
// GetTheme falls back to Nightfox for unknown names, so a stale
// preference never breaks startup. Each theme carries a six-color room
// palette; a room's color is derived from its local catalog id modulo the
// palette size, which keeps colors stable between the catalog table and
// the calendar grid.
//
// # Renderers vs. Models
//
// The Render* methods on Styles are pure string builders for the
// non-interactive commands. The Bubble Tea models (FormModel,
// ConfirmModel) are used only when the CLI runs with --interactive; they
// collect input and expose it through Result/Accepted after the program
// exits, leaving the actual API work to the caller.
package ui
