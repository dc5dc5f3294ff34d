// Package ui implements an interactive table viewer using bubbletea's Elm architecture.
//
// The viewer has two views:
//  1. [TableView] : scroll the rows of a result table
//  2. [StatsView] : mean, std, min and max of its numeric columns
//
// The [Model] implements bubbletea's Init/Update/View pattern. Ranking runs as a [tea.Cmd]
// and comes back through the Msg union type, so the visible table is only swapped in Update.
//
// Keyboard navigation uses vim-style bindings (j/k, s, d, r, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
