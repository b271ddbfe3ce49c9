package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/browse"
)

// refreshCurrent drops the cached reads behind the focused view and loads it
// again.
func (m *Model) refreshCurrent() tea.Cmd {
	loc := m.app.Nav.Location()
	switch m.focus {
	case FocusRegistries:
		m.app.API.Invalidate(api.NewKey(api.ResourceRegistries), api.NewKey(api.ResourceActiveRegistry))
		m.status = "Refreshing registries..."
	case FocusDetail:
		m.app.API.Invalidate(api.NewKey(api.ResourceImageInfo, loc.Repository, loc.Tag))
		m.status = fmt.Sprintf("Refreshing %s:%s...", loc.Repository, loc.Tag)
	case FocusTags:
		m.app.API.Invalidate(api.NewKey(api.ResourceTags, loc.Repository))
		m.status = fmt.Sprintf("Refreshing tags for %s...", loc.Repository)
	default:
		m.app.API.Invalidate(api.NewKey(api.ResourceRepositories))
		m.status = "Refreshing repositories..."
	}
	m.viewError = ""
	return m.loadCurrent()
}

func (m *Model) changePage(delta int) tea.Cmd {
	var total int
	var state browse.PageState
	switch m.focus {
	case FocusRepositories:
		total = m.repositories.TotalPages
		state = m.app.Nav.Repositories()
	case FocusTags:
		total = m.tags.TotalPages
		state = m.app.Nav.Tags()
	default:
		return nil
	}

	next := state.Page + delta
	if next < 1 {
		m.status = "Already on the first page"
		return nil
	}
	if next > maxInt(total, 1) {
		m.status = "Already on the last page"
		return nil
	}
	m.updatePageState(func(p *browse.PageState) { p.SetPage(next) })
	m.status = fmt.Sprintf("Page %d of %d", next, maxInt(total, 1))
	m.table.SetCursor(0)
	return m.loadCurrent()
}

func (m *Model) cyclePageSize() tea.Cmd {
	if m.focus != FocusRepositories && m.focus != FocusTags {
		return nil
	}
	state := m.updatePageState(func(p *browse.PageState) { p.NextPageSize() })
	m.status = fmt.Sprintf("Showing %d rows per page", state.PageSize)
	m.table.SetCursor(0)
	return m.loadCurrent()
}

// applySearch sets the server-side search of the focused listing.
func (m *Model) applySearch(value string) tea.Cmd {
	value = strings.TrimSpace(value)
	before := m.currentPageState().Search
	state := m.updatePageState(func(p *browse.PageState) { p.SetSearch(value) })
	m.searchInput.SetValue(state.Search)
	if state.Search == before {
		return nil
	}
	if state.Search == "" {
		m.status = "Search cleared"
	} else {
		m.status = fmt.Sprintf("Searching %q", state.Search)
	}
	m.table.SetCursor(0)
	return m.loadCurrent()
}

func (m *Model) updatePageState(fn func(*browse.PageState)) browse.PageState {
	if m.focus == FocusTags {
		return m.app.Nav.UpdateTags(fn)
	}
	return m.app.Nav.UpdateRepositories(fn)
}

func (m Model) currentPageState() browse.PageState {
	if m.focus == FocusTags {
		return m.app.Nav.Tags()
	}
	return m.app.Nav.Repositories()
}

func (m Model) supportsSearch() bool {
	return m.focus == FocusRepositories || m.focus == FocusTags
}

func (m *Model) openSearch() tea.Cmd {
	if !m.supportsSearch() {
		return nil
	}
	m.searchActive = true
	m.searchInput.SetValue(m.currentPageState().Search)
	cmd := m.searchInput.Focus()
	m.searchInput.CursorEnd()
	m.syncTable()
	return cmd
}

func (m *Model) stopSearchEditing() {
	m.searchActive = false
	m.searchInput.Blur()
}

func (m *Model) clearSearch() {
	m.stopSearchEditing()
	m.searchInput.SetValue("")
}
