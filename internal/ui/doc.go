// Package ui implements an interactive playlist exporter using bubbletea's Elm architecture.
//
// The TUI walks through the export in five views:
//  1. [PlaylistListView] : Browse the current user's playlists and mark the ones to export
//  2. [ItemListView] : Preview every item of one playlist
//  3. [ConfirmView] : Confirm the export with its format and directory
//  4. [ExportView] : Follow progress while the playlists are written
//  5. [ResultView] : Show the outcome of each playlist
//
// [Model] implements Init/Update/View and receives messages through the [Msg] union.
// Progress flows from [tasks.PlaylistEngine.BulkExport] over a channel that is drained one message at a time.
//
// Keys follow vim conventions (j/k, enter, esc, y/n, q) with contextual help from charmbracelet/bubbles/help.
package ui
