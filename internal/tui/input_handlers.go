package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchActive {
		return m.handleSearchKey(msg)
	}

	switch {
	case isShortcut(msg, shortcutQuit):
		return m.openQuitConfirm()
	case isShortcut(msg, shortcutBack):
		return m, m.handleEscape()
	case isShortcut(msg, shortcutOpenCommand):
		return m.enterCommandMode()
	case isShortcut(msg, shortcutRefresh):
		return m, m.refreshCurrent()
	case isShortcut(msg, shortcutCopyLocation):
		m.copyLocation()
		return m, nil
	case isShortcut(msg, shortcutOpenRegistries):
		return m, m.openRegistries()
	}

	switch m.focus {
	case FocusRepositories, FocusTags:
		switch {
		case isShortcut(msg, shortcutOpenSearch):
			return m, m.openSearch()
		case isShortcut(msg, shortcutNextPage):
			return m, m.changePage(1)
		case isShortcut(msg, shortcutPrevPage):
			return m, m.changePage(-1)
		case isShortcut(msg, shortcutCyclePageSize):
			return m, m.cyclePageSize()
		case isShortcut(msg, shortcutOpenRepository), isShortcut(msg, shortcutOpenTag):
			return m, m.handleEnter()
		}
	case FocusRegistries:
		switch {
		case isShortcut(msg, shortcutActivateRegistry):
			m.activateSelectedRegistry()
			return m, nil
		case isShortcut(msg, shortcutTestRegistry):
			return m, m.testSelectedRegistry()
		}
	}

	if m.focus == FocusDetail && isShortcut(msg, shortcutNextDetailView) {
		m.nextDetailView()
		return m, nil
	}

	if m.focus == FocusTags || m.focus == FocusDetail {
		switch {
		case isShortcut(msg, shortcutDeleteTag):
			m.openDeleteConfirm()
			return m, nil
		case isShortcut(msg, shortcutCopyPullCommand):
			m.copyPullCommand()
			return m, nil
		case isShortcut(msg, shortcutDockerPull):
			return m, m.pullSelectedTagWithDocker()
		}
	}

	if m.handleTableNavKey(msg) {
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case isShortcut(msg, shortcutClearSearch):
		m.clearSearch()
		cmd := m.applySearch("")
		m.syncTable()
		return m, cmd
	case isShortcut(msg, shortcutApplySearch):
		value := m.searchInput.Value()
		m.stopSearchEditing()
		cmd := m.applySearch(value)
		m.syncTable()
		return m, cmd
	case msg.String() == "ctrl+c":
		m.stopSearchEditing()
		return m.openQuitConfirm()
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m *Model) handleTableNavKey(msg tea.KeyMsg) bool {
	rowCount := len(m.table.Rows())
	if rowCount == 0 {
		return false
	}
	step := maxInt(1, m.table.Height())

	switch {
	case isShortcut(msg, shortcutMoveUp):
		m.table.MoveUp(1)
		return true
	case isShortcut(msg, shortcutMoveDown):
		m.table.MoveDown(1)
		return true
	case isShortcut(msg, shortcutMovePageUp):
		m.table.MoveUp(step)
		return true
	case isShortcut(msg, shortcutMovePageDown):
		m.table.MoveDown(step)
		return true
	case isShortcut(msg, shortcutMoveHalfUp):
		m.table.MoveUp(maxInt(1, step/2))
		return true
	case isShortcut(msg, shortcutMoveHalfDown):
		m.table.MoveDown(maxInt(1, step/2))
		return true
	case isShortcut(msg, shortcutMoveTop):
		m.table.GotoTop()
		return true
	case isShortcut(msg, shortcutMoveBottom):
		m.table.GotoBottom()
		return true
	default:
		return false
	}
}
