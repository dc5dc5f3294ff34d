package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/tracktab/internal/table"
)

// MsgKind enumerates all message types in the viewer.
type MsgKind int

// Msg represents all viewer messages (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgRanked MsgKind = iota
	MsgRestored
)

type rankedData struct {
	column string
	table  *table.Table
	err    error
}

// rankedMsg is the constructor for [MsgRanked]
func rankedMsg(column string, t *table.Table, err error) Msg {
	return Msg{kind: MsgRanked, data: rankedData{column: column, table: t, err: err}}
}

// restoredMsg is the constructor for [MsgRestored]
func restoredMsg() Msg {
	return Msg{kind: MsgRestored}
}
