package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/browse"
)

func (m *Model) handleEnter() tea.Cmd {
	switch m.focus {
	case FocusRepositories:
		repo, ok := m.selectedRepository()
		if !ok {
			return nil
		}
		m.app.Nav.SelectRepository(repo.Name)
		m.tags = api.Page[api.TagList]{}
		m.focus = FocusTags
		m.status = fmt.Sprintf("Loading tags for %s...", repo.Name)
		m.clearSearch()
		m.table.SetCursor(0)
		m.syncTable()
		return m.loadCurrent()
	case FocusTags:
		tag, ok := m.selectedTag()
		if !ok {
			return nil
		}
		loc := m.app.Nav.SelectTag(tag)
		m.info = api.ImageInfo{}
		m.hasInfo = false
		m.history = nil
		m.detailView = detailViewHistory
		m.focus = FocusDetail
		m.status = fmt.Sprintf("Loading %s:%s...", loc.Repository, loc.Tag)
		m.clearSearch()
		m.table.SetCursor(0)
		m.syncTable()
		return m.loadCurrent()
	case FocusRegistries:
		reg, ok := m.selectedRegistry()
		if !ok {
			return nil
		}
		m.openActivateConfirm(reg)
		return nil
	default:
		return nil
	}
}

func (m *Model) handleEscape() tea.Cmd {
	switch m.focus {
	case FocusRegistries:
		m.registries = nil
		m.focus = m.browseFocus()
		m.status = "Browsing " + m.app.Nav.Location().Encode()
		m.table.SetCursor(0)
		m.syncTable()
		return m.loadCurrent()
	case FocusDetail:
		m.app.Nav.Back()
		m.info = api.ImageInfo{}
		m.hasInfo = false
		m.history = nil
		m.focus = FocusTags
		m.table.SetCursor(0)
		m.syncTable()
		return m.loadCurrent()
	case FocusTags:
		if m.tagsQuery().Search != "" {
			return m.applySearch("")
		}
		m.app.Nav.Back()
		m.tags = api.Page[api.TagList]{}
		m.focus = FocusRepositories
		m.table.SetCursor(0)
		m.syncTable()
		return m.loadCurrent()
	default:
		if m.repositoriesQuery().Search != "" {
			return m.applySearch("")
		}
		return nil
	}
}

// openLocation jumps to an encoded browse location.
func (m *Model) openLocation(raw string) tea.Cmd {
	loc, err := browse.ParseLocation(raw)
	if err != nil {
		m.status = fmt.Sprintf("Cannot open %q: %v", raw, err)
		return nil
	}
	m.app.Nav.Restore(loc)
	m.clearData()
	m.clearSearch()
	m.focus = m.browseFocus()
	m.status = "Opening " + m.app.Nav.Location().Encode()
	m.table.SetCursor(0)
	m.syncTable()
	return m.loadCurrent()
}

func (m *Model) nextDetailView() {
	for i, view := range detailViews {
		if view == m.detailView {
			m.detailView = detailViews[(i+1)%len(detailViews)]
			break
		}
	}
	m.status = "Showing " + strings.ToLower(m.detailView.String())
	m.table.SetCursor(0)
	m.syncTable()
}

func (m *Model) openRegistries() tea.Cmd {
	if m.focus == FocusRegistries {
		return nil
	}
	m.registries = nil
	m.clearSearch()
	m.focus = FocusRegistries
	m.status = "Loading registries..."
	m.table.SetCursor(0)
	m.syncTable()
	return m.loadCurrent()
}

// loadCurrent starts the fetch of the focused view. An expired session is
// detected here, before any request goes out.
func (m *Model) loadCurrent() tea.Cmd {
	if !m.app.Authenticated() {
		m.expireSession()
		return nil
	}
	m.startLoading()
	return m.loadCurrentCmd()
}

func (m Model) selectedRepository() (api.RepositoryInfo, bool) {
	cursor := m.table.Cursor()
	if m.focus != FocusRepositories || cursor < 0 || cursor >= len(m.repositories.Data) {
		return api.RepositoryInfo{}, false
	}
	return m.repositories.Data[cursor], true
}

// selectedTag is the tag under the cursor, or the tag shown in the detail view.
func (m Model) selectedTag() (string, bool) {
	switch m.focus {
	case FocusTags:
		cursor := m.table.Cursor()
		tags := m.tags.Data.Tags
		if cursor < 0 || cursor >= len(tags) {
			return "", false
		}
		return tags[cursor], true
	case FocusDetail:
		tag := m.app.Nav.Location().Tag
		return tag, tag != ""
	default:
		return "", false
	}
}

func (m Model) selectedRegistry() (api.Registry, bool) {
	cursor := m.table.Cursor()
	if m.focus != FocusRegistries || cursor < 0 || cursor >= len(m.registries) {
		return api.Registry{}, false
	}
	return m.registries[cursor], true
}
