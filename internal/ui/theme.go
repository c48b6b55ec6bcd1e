package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// questrank theme (CLI + TUI).

const (
	IconQuest   = "🗺️"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "📦"
	IconFire    = "🔥"
	IconSword   = "⚔"
	IconTimer   = "⏱"
	IconMoon    = "🌙"
	IconScroll  = "📜"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)
)

// rankColors run from gray at E to gold at S.
var rankColors = map[string]lipgloss.Color{
	"E": cMuted,
	"D": cGood,
	"C": lipgloss.Color("39"),
	"B": cPrimary,
	"A": cAccent,
	"S": cGold,
}

var printer = message.NewPrinter(language.English)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// RankBadge renders a rank letter in its color.
func RankBadge(rank string) string {
	c, ok := rankColors[rank]
	if !ok {
		c = cMuted
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render("[" + rank + "]")
}

// FormatXP renders an XP amount with thousands separators.
func FormatXP(xp int) string {
	return printer.Sprintf("%d XP", xp)
}

// SignedXP renders a delta with an explicit sign, green for gains and red for
// losses.
func SignedXP(delta int) string {
	switch {
	case delta > 0:
		return Good.Render(printer.Sprintf("+%d XP", delta))
	case delta < 0:
		return Bad.Render(printer.Sprintf("%d XP", delta))
	default:
		return Muted.Render("0 XP")
	}
}

func StatusText(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	switch s {
	case "done", "completed":
		return Good.Render(s)
	case "active":
		return H2.Render(s)
	case "paused", "pending":
		return Warn.Render(s)
	case "expired":
		return Bad.Render(s)
	default:
		return Muted.Render(status)
	}
}

// ProgressBar renders value/total as a fixed-width ASCII bar.
func ProgressBar(fraction float64, width int) string {
	if width <= 3 {
		width = 3
	}
	fraction = max(0, min(1, fraction))
	filled := min(width, int(fraction*float64(width)))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func Check(done bool) string {
	if done {
		return Good.Render("[x]")
	}
	return Muted.Render("[ ]")
}
