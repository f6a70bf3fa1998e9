package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Frame                 *lipgloss.Style
	Title                 *lipgloss.Style
	Button                *lipgloss.Style
	ButtonDisabled        *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Description           *lipgloss.Style
	Disabled              *lipgloss.Style
	Arrow                 *lipgloss.Style
	Info                  *lipgloss.Style
	Error                 *lipgloss.Style
	Footer                *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
	MetadataLabel         *lipgloss.Style
	MetadataValue         *lipgloss.Style
}

var defaultStyles = Styles{
	Frame: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	ButtonDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("238")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
	),
	Disabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true),
	),
	Arrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Italic(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")),
	),
	MetadataLabel: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	MetadataValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}

// DefaultScheme is the accent used when an option names no colour scheme.
const DefaultScheme = "blue"

var schemes = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("33"),
	"green":  lipgloss.Color("34"),
	"red":    lipgloss.Color("196"),
	"orange": lipgloss.Color("208"),
	"yellow": lipgloss.Color("220"),
	"purple": lipgloss.Color("135"),
	"pink":   lipgloss.Color("205"),
	"teal":   lipgloss.Color("37"),
	"gray":   lipgloss.Color("245"),
	"grey":   lipgloss.Color("245"),
}

// Scheme resolves a named colour scheme. Unknown names fall back to
// DefaultScheme; values that already look like colours ("#ff8800", "202")
// are used as given.
func Scheme(name string) lipgloss.Color {
	if c, ok := schemes[name]; ok {
		return c
	}
	if name != "" && (name[0] == '#' || isDigits(name)) {
		return lipgloss.Color(name)
	}
	return schemes[DefaultScheme]
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
