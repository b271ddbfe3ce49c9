package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/scottbass3/dgui/internal/format"
	"github.com/scottbass3/dgui/internal/registry"
	"github.com/scottbass3/dgui/internal/registry/history"
)

func (m Model) renderApp() string {
	sections := []string{
		m.renderTopSection(),
		m.renderMainSection(),
	}
	if m.debug {
		sections = append(sections, m.renderLogs())
	}
	return strings.Join(sections, "\n")
}

func (m Model) renderTopSection() string {
	statusValue := strings.TrimSpace(m.status)
	if statusValue == "" {
		statusValue = format.Placeholder
	}
	statusLine := statusStyle.Render(statusValue)
	if m.isLoading() {
		statusLine = statusLoadingStyle.Render("Loading")
		if statusValue != format.Placeholder {
			statusLine = statusLoadingStyle.Render("Loading " + statusValue)
		}
	}
	headerLine := lipgloss.JoinHorizontal(lipgloss.Top, titleStyle.Render("dgui"), statusLine)
	metaLine := lipgloss.JoinHorizontal(
		lipgloss.Top,
		metaLabelStyle.Render("User"),
		metaValueStyle.Render(m.userLabel()),
		metaLabelStyle.Render("Registry"),
		metaValueStyle.Render(m.registryLabel()),
		metaLabelStyle.Render("Location"),
		metaValueStyle.Render(m.app.Nav.Location().Encode()),
	)
	lines := []string{
		headerLine,
		metaLine,
	}
	if inputLine := m.renderModeInputLine(); inputLine != "" {
		lines = append(lines, modeInputStyle.Render(inputLine))
	}
	lines = append(lines, shortcutHintStyle.Render(m.shortcutHintLine()))
	return topSectionStyle.Width(sectionPanelWidth(m.width)).Render(strings.Join(lines, "\n"))
}

func (m Model) userLabel() string {
	user, ok := m.app.Session.User()
	if !ok {
		return format.Placeholder
	}
	return user.Username
}

func (m Model) registryLabel() string {
	active, ok := m.app.Selection.Active()
	if !ok {
		return format.Placeholder
	}
	return fmt.Sprintf("%s (%s)", active.Name, registry.Host(active.URL))
}

func (m Model) renderMainSection() string {
	panelWidth := sectionPanelWidth(m.width)
	contentWidth := m.mainSectionContentWidth()
	titleLabel := focusLabel(m.focus)
	body := m.renderBody()
	if m.helpActive {
		titleLabel = "Help"
		body = m.renderHelpSectionBody()
	}
	title := mainSectionTitleStyle.Render(strings.ToUpper(titleLabel))
	titleLine := mainSectionTitleLine.
		Width(contentWidth).
		Align(lipgloss.Center).
		Render(title)
	content := strings.Join([]string{
		titleLine,
		body,
	}, "\n")
	return mainSectionStyle.Width(panelWidth).Render(content)
}

func sectionPanelWidth(width int) int {
	if width <= 0 {
		width = defaultRenderWidth
	}
	panelWidth := width - 2
	if panelWidth < 24 {
		panelWidth = width
	}
	if panelWidth < 1 {
		panelWidth = 1
	}
	return panelWidth
}

func (m Model) mainSectionContentWidth() int {
	contentWidth := sectionPanelWidth(m.width) - mainSectionHChromeChars
	if contentWidth < 1 {
		return 1
	}
	return contentWidth
}

func (m Model) renderModeInputLine() string {
	if m.commandActive {
		return m.commandInput.View()
	}
	if m.searchActive {
		return m.searchInput.View()
	}
	if m.supportsSearch() {
		if value := m.currentPageState().Search; value != "" {
			return m.searchInput.Prompt + value
		}
	}
	return ""
}

func (m Model) renderBody() string {
	sections := make([]string, 0, 4)
	if header := m.renderBodyHeader(); header != "" {
		sections = append(sections, header)
	}
	sections = append(sections, m.table.View())
	if footer := m.renderBodyFooter(); footer != "" {
		sections = append(sections, footer)
	}
	return strings.Join(sections, "\n")
}

// renderBodyHeader holds the image metadata of the detail view and the
// last load error.
func (m Model) renderBodyHeader() string {
	lines := make([]string, 0, 10)
	if m.focus == FocusDetail && m.hasInfo {
		lines = append(lines, m.renderDetailHeader()...)
	}
	if m.viewError != "" {
		lines = append(lines, errorStyle.Render(m.viewError))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderDetailHeader() []string {
	info := m.info
	var registryURL string
	if active, ok := m.app.Selection.Active(); ok {
		registryURL = active.URL
	}
	platform := format.Placeholder
	if info.Config.OS != "" || info.Config.Architecture != "" {
		platform = strings.Trim(info.Config.OS+"/"+info.Config.Architecture, "/")
	}
	size := info.TotalSize
	if size <= 0 {
		size = history.TotalSize(info)
	}
	layers := info.LayerCount
	if layers <= 0 {
		layers = len(history.Layers(info))
	}
	fields := []struct {
		label string
		value string
	}{
		{"Image", info.Repository + ":" + info.Tag},
		{"Digest", format.ShortenDigest(info.Digest)},
		{"Created", format.Date(info.Config.Created)},
		{"Platform", platform},
		{"Size", format.Bytes(size)},
		{"Layers", format.Count(layers)},
		{"Author", format.FirstNonEmpty(info.Config.Author, format.Placeholder)},
		{"Pull", registry.PullCommand(registryURL, info.Repository, info.Tag)},
		{"View", m.detailViewTabs()},
	}
	lines := make([]string, 0, len(fields))
	for _, field := range fields {
		lines = append(lines, detailLabelStyle.Render(field.label)+detailValueStyle.Render(field.value))
	}
	return lines
}

func (m Model) detailViewTabs() string {
	tabs := make([]string, 0, len(detailViews))
	for _, view := range detailViews {
		if view == m.detailView {
			tabs = append(tabs, "["+view.String()+"]")
			continue
		}
		tabs = append(tabs, view.String())
	}
	return strings.Join(tabs, "  ")
}

func (m Model) renderBodyFooter() string {
	lines := make([]string, 0, 2)
	if len(m.table.Rows()) == 0 {
		lines = append(lines, emptyStyle.Render(m.emptyBodyMessage()))
	}
	if pager := m.pagerLine(); pager != "" {
		lines = append(lines, pagerStyle.Render(pager))
	}
	return strings.Join(lines, "\n")
}

func (m Model) pagerLine() string {
	var total, totalPages int
	switch m.focus {
	case FocusRepositories:
		total, totalPages = m.repositories.Total, m.repositories.TotalPages
	case FocusTags:
		total, totalPages = m.tags.Total, m.tags.TotalPages
	default:
		return ""
	}
	state := m.currentPageState()
	line := fmt.Sprintf("Page %d/%d · %d per page · %d total", state.Page, maxInt(1, totalPages), state.PageSize, total)
	if state.Search != "" {
		line += fmt.Sprintf(" · search %q", state.Search)
	}
	return line
}

func (m Model) emptyBodyMessage() string {
	if m.isLoading() {
		return "Loading..."
	}
	switch m.focus {
	case FocusTags:
		if m.currentPageState().Search != "" {
			return "No tags match the search."
		}
		return "No tags in this repository."
	case FocusDetail:
		if m.detailView == detailViewLayers {
			return "No layers in this manifest."
		}
		return "No history recorded for this image."
	case FocusRegistries:
		return "No registries configured."
	default:
		if m.currentPageState().Search != "" {
			return "No repositories match the search."
		}
		return "No repositories."
	}
}
