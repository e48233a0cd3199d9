package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal palette (ANSI 256).
var (
	colorAccent  = lipgloss.Color("36")
	colorOK      = lipgloss.Color("35")
	colorWarn    = lipgloss.Color("220")
	colorBad     = lipgloss.Color("167")
	colorCommand = lipgloss.Color("75")
	colorText    = lipgloss.Color("255")
	colorLabel   = lipgloss.Color("245")
	colorMuted   = lipgloss.Color("240")
)

var (
	// StyleHighlight marks the value the user should notice, such as the
	// configured flag field.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	// StyleDim renders secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorMuted)

	styleValue       = lipgloss.NewStyle().Foreground(colorText)
	styleLabel       = lipgloss.NewStyle().Foreground(colorLabel).Width(20)
	styleWarning     = lipgloss.NewStyle().Foreground(colorWarn)
	styleFlagged     = lipgloss.NewStyle().Foreground(colorBad)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// statusKind selects the leading icon of a status line.
type statusKind int

const (
	statusOK statusKind = iota
	statusFailed
	statusWarn
	statusNote
)

var statusIcons = map[statusKind]string{
	statusOK:     lipgloss.NewStyle().Foreground(colorOK).Render("✓"),
	statusFailed: lipgloss.NewStyle().Foreground(colorBad).Render("✗"),
	statusWarn:   lipgloss.NewStyle().Foreground(colorWarn).Render("!"),
	statusNote:   lipgloss.NewStyle().Foreground(colorLabel).Render("›"),
}

func printStatus(kind statusKind, msg string) {
	fmt.Println(statusIcons[kind] + " " + msg)
}

func printSuccess(format string, args ...any) {
	printStatus(statusOK, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(statusFailed, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(statusWarn, styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(statusNote, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, muted line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile lists one written artifact.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render("→") + " " + styleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + styleValue.Render(value))
}

// printStats prints issue, edge and flagged counts on a single line. The
// flagged count turns red when any issue is flagged.
func printStats(issueCount, edgeCount, flaggedCount int) {
	flagged := StyleDim
	if flaggedCount > 0 {
		flagged = styleFlagged
	}
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d issues", issueCount)),
		StyleDim.Render(fmt.Sprintf("%d edges", edgeCount)),
		flagged.Render(fmt.Sprintf("%d flagged", flaggedCount)),
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Println()
}
