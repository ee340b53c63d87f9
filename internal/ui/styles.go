package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	pkgtypes "github.com/vietdv277/awsprof/pkg/types"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Status indicators
const (
	ValidMark   = "✓"
	InvalidMark = "✗"
	NoticeMark  = "?"
	ActiveMark  = "●"
)

const (
	minWidth = 60
	maxWidth = 120
)

// Color palette
const (
	ColorBorder  = "240"
	ColorHeader  = "252"
	ColorName    = "81"
	ColorType    = "252"
	ColorValid   = "82"
	ColorInvalid = "203"
	ColorNotice  = "214"
	ColorMuted   = "240"
	ColorHint    = "245"
)

// Shared styles
var (
	BorderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	NameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	TypeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorType))
	ValidStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorValid))
	InvalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorInvalid))
	NoticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorNotice))
	MutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
)

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}

func formatOptional(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// statusText returns the plain status label of a profile and the style to render it with
func statusText(p pkgtypes.AWSProfile) (string, lipgloss.Style) {
	switch {
	case !p.IsValid:
		return InvalidMark + " invalid", InvalidStyle
	case p.ErrorMessage != "":
		return NoticeMark + " unverified", NoticeStyle
	default:
		return ValidMark + " valid", ValidStyle
	}
}
