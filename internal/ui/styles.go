// Package ui provides terminal styling for expire-issues output.
// Uses the Ayu color theme with adaptive light/dark mode support.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Ayu theme color palette
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300",
		Dark:  "#c2d94c",
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49",
		Dark:  "#ffb454",
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171",
		Dark:  "#f07178",
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99",
		Dark:  "#6c7680",
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6",
		Dark:  "#59c2ff",
	}
)

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
)

// Status icons, with plain fallbacks for terminals without emoji/unicode.
const (
	IconClosed  = "✓"
	IconPending = "·"
	IconDryRun  = "○"
	IconFail    = "✗"
)

var plainIcons = map[string]string{
	IconClosed:  "+",
	IconPending: "-",
	IconDryRun:  "o",
	IconFail:    "x",
}

// Icon returns icon, or its ASCII stand-in when emoji output is off.
func Icon(icon string) string {
	if ShouldUseEmoji() {
		return icon
	}
	if plain, ok := plainIcons[icon]; ok {
		return plain
	}
	return icon
}

func RenderPass(s string) string   { return PassStyle.Render(s) }
func RenderWarn(s string) string   { return WarnStyle.Render(s) }
func RenderFail(s string) string   { return FailStyle.Render(s) }
func RenderMuted(s string) string  { return MutedStyle.Render(s) }
func RenderAccent(s string) string { return AccentStyle.Render(s) }

// RenderClosedIcon renders the icon shown next to a closed issue.
func RenderClosedIcon() string {
	return PassStyle.Render(Icon(IconClosed))
}

// RenderPendingIcon renders the icon shown next to an issue left open.
func RenderPendingIcon() string {
	return MutedStyle.Render(Icon(IconPending))
}

// RenderDryRunIcon renders the icon shown next to an issue a dry run would close.
func RenderDryRunIcon() string {
	return WarnStyle.Render(Icon(IconDryRun))
}

// RenderFailIcon renders the failure icon.
func RenderFailIcon() string {
	return FailStyle.Render(Icon(IconFail))
}
