package tui

import "github.com/charmbracelet/lipgloss"

// Layout defaults.
const (
	defaultWidth  = 120
	defaultHeight = 30
	minHeight     = 5
	borderPadding = 2

	// chromeHeight is the number of rows taken by tabs, filter, footer and help.
	chromeHeight = 8

	filterInputCharLimit = 100
	filterInputWidth     = 40

	maxColumnWidth = 40
	minColumnWidth = 4
)

// Palette.
var (
	ColorHeader    = lipgloss.Color("63")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorBorder    = lipgloss.Color("238")
	ColorHighlight = lipgloss.Color("57")
	ColorSpinner   = lipgloss.Color("205")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorInfo      = lipgloss.Color("39")
)

// Shared styles.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorHeader).
			Padding(1, 2)

	NotificationStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(ColorCritical).
				Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorHeader).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorBorder)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(ColorHighlight)

	ActiveTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(ColorHighlight).
			Padding(0, 1)

	TabStyle = lipgloss.NewStyle().Foreground(ColorLabel).Padding(0, 1)
)
