package tui

import "messcut/internal/tui/messages"

// Re-export types from messages package for convenience
type ViewType = messages.ViewType

const (
	ViewCalendar = messages.ViewCalendar
	ViewSearch   = messages.ViewSearch
)

type SwitchViewMsg = messages.SwitchViewMsg
type DateSelectedMsg = messages.DateSelectedMsg
type SaveMarkMsg = messages.SaveMarkMsg
type UnmarkMsg = messages.UnmarkMsg
type JumpToDateMsg = messages.JumpToDateMsg
