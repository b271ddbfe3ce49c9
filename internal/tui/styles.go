package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary   = lipgloss.Color("62")
	colorMuted     = lipgloss.Color("241")
	colorAccent    = lipgloss.Color("204")
	colorSelected  = lipgloss.Color("229")
	colorBorder    = lipgloss.Color("238")
	colorTitleText = lipgloss.Color("252")
	colorSurface   = lipgloss.Color("235")
	colorSurface2  = lipgloss.Color("236")
	colorSuccess   = lipgloss.Color("78")
	colorDanger    = lipgloss.Color("160")
)

var (
	titleStyle         = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).MarginRight(2)
	statusStyle        = lipgloss.NewStyle().Foreground(colorTitleText)
	statusLoadingStyle = lipgloss.NewStyle().Foreground(colorAccent).Italic(true)
	metaLabelStyle     = lipgloss.NewStyle().Foreground(colorMuted).MarginRight(1)
	metaValueStyle     = lipgloss.NewStyle().Foreground(colorTitleText).MarginRight(3)
	modeInputStyle     = lipgloss.NewStyle().Foreground(colorAccent)
	shortcutHintStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	emptyStyle         = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
	errorStyle         = lipgloss.NewStyle().Foreground(colorAccent)
	pagerStyle         = lipgloss.NewStyle().Foreground(colorMuted)
	detailLabelStyle   = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	detailValueStyle   = lipgloss.NewStyle().Foreground(colorTitleText)
	activeMarkStyle    = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)

	topSectionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)
	mainSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(0, 1)
	mainSectionTitleStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	mainSectionTitleLine  = lipgloss.NewStyle()

	logTitleStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	logBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	helpHeadingStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	helpItemStyle    = lipgloss.NewStyle().Foreground(colorTitleText)
	helpFooterStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

var (
	modalBackdropStyle = lipgloss.NewStyle().Foreground(colorMuted).Faint(true)
	modalPanelStyle    = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Background(colorSurface).
				Padding(1, 2)
	modalTitleStyle      = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	modalLabelStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	modalDividerStyle    = lipgloss.NewStyle().Foreground(colorBorder)
	modalErrorStyle      = lipgloss.NewStyle().Foreground(colorAccent)
	modalHelpStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	modalInputStyle      = lipgloss.NewStyle().Foreground(colorTitleText)
	modalInputFocusStyle = lipgloss.NewStyle().Foreground(colorAccent)

	modalButtonStyle = lipgloss.NewStyle().
				Foreground(colorTitleText).
				Background(colorSurface2).
				Padding(0, 2)
	modalButtonFocusStyle = lipgloss.NewStyle().
				Foreground(colorSelected).
				Background(colorPrimary).
				Bold(true).
				Padding(0, 2)
	modalDangerButtonStyle = lipgloss.NewStyle().
				Foreground(colorDanger).
				Background(colorSurface2).
				Padding(0, 2)
	modalDangerFocusStyle = lipgloss.NewStyle().
				Foreground(colorSelected).
				Background(colorDanger).
				Bold(true).
				Padding(0, 2)
)
