package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const authFieldCount = 2

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.openQuitConfirm()
	case "tab", "down":
		m.authFocus = (m.authFocus + 1) % authFieldCount
		m.syncAuthFocus()
		return m, nil
	case "shift+tab", "up":
		m.authFocus--
		if m.authFocus < 0 {
			m.authFocus = authFieldCount - 1
		}
		m.syncAuthFocus()
		return m, nil
	case "enter":
		if m.authFocus == 0 {
			m.authFocus = 1
			m.syncAuthFocus()
			return m, nil
		}
		return m.submitAuth()
	}

	var cmd tea.Cmd
	switch m.authFocus {
	case 0:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	case 1:
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.authSubmitting {
		return m, nil
	}
	username := strings.TrimSpace(m.usernameInput.Value())
	password := m.passwordInput.Value()
	if username == "" || password == "" {
		m.authError = "Username and password are required"
		return m, nil
	}
	m.authSubmitting = true
	m.authError = ""
	m.status = "Logging in as " + username + "..."
	m.startLoading()
	return m, loginCmd(m.app, m.timeout, username, password)
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "shift+tab":
		m.confirmFocus = 0
	case "right", "l", "tab":
		m.confirmFocus = 1
	case "esc", "n":
		m.clearConfirm()
		return m, nil
	case "y":
		return m.resolveConfirm(true)
	case "enter":
		return m.resolveConfirm(m.confirmFocus == 1)
	case "ctrl+c", "q":
		if m.confirmAction == confirmActionQuit {
			return m.resolveConfirm(true)
		}
		m.clearConfirm()
		return m, nil
	}
	return m, nil
}

func (m Model) openQuitConfirm() (tea.Model, tea.Cmd) {
	m.confirmAction = confirmActionQuit
	m.confirmTitle = "Quit dgui?"
	if m.isLoading() {
		m.confirmMessage = "A request is still in progress."
	} else {
		m.confirmMessage = "Your session stays saved for the next start."
	}
	m.confirmFocus = 0
	return m, nil
}

func (m Model) openLogoutConfirm() (tea.Model, tea.Cmd) {
	m.confirmAction = confirmActionLogout
	m.confirmTitle = "Log out?"
	m.confirmMessage = "The saved session is removed."
	m.confirmFocus = 0
	return m, nil
}

func (m Model) resolveConfirm(accept bool) (tea.Model, tea.Cmd) {
	action := m.confirmAction
	target := m.confirmTarget
	m.clearConfirm()
	if !accept {
		return m, nil
	}
	switch action {
	case confirmActionQuit:
		return m, tea.Quit
	case confirmActionDeleteImage:
		return m, m.deleteImage(target.repository, target.tag)
	case confirmActionActivateRegistry:
		return m, m.activateRegistry(target.registryID, target.registryName)
	case confirmActionLogout:
		m.logout()
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) clearConfirm() {
	m.confirmAction = confirmActionNone
	m.confirmTitle = ""
	m.confirmMessage = ""
	m.confirmFocus = 0
	m.confirmTarget = confirmTarget{}
}
