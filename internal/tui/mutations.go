package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/api"
)

func deleteKey(repository, tag string) string {
	return "delete|" + repository + "|" + tag
}

func activateKey(id int64) string {
	return "activate|" + strconv.FormatInt(id, 10)
}

func testKey(id int64) string {
	return "test|" + strconv.FormatInt(id, 10)
}

// beginMutation marks key in flight. It reports false, leaving a status
// message, when the same mutation is still running.
func (m *Model) beginMutation(key, label string) bool {
	if _, busy := m.pending[key]; busy {
		m.status = fmt.Sprintf("%s is already in progress", label)
		return false
	}
	m.pending[key] = struct{}{}
	m.startLoading()
	return true
}

func (m *Model) finishMutation(key string) {
	delete(m.pending, key)
}

func (m Model) isPending(key string) bool {
	_, busy := m.pending[key]
	return busy
}

func (m *Model) openDeleteConfirm() {
	loc := m.app.Nav.Location()
	tag, ok := m.selectedTag()
	if !ok || loc.Repository == "" {
		m.status = "No tag selected to delete"
		return
	}
	if m.isPending(deleteKey(loc.Repository, tag)) {
		m.status = fmt.Sprintf("Delete of %s:%s is already in progress", loc.Repository, tag)
		return
	}
	m.confirmAction = confirmActionDeleteImage
	m.confirmTitle = fmt.Sprintf("Delete %s:%s?", loc.Repository, tag)
	m.confirmMessage = "The tag is removed from the active registry. This cannot be undone."
	m.confirmTarget = confirmTarget{repository: loc.Repository, tag: tag}
	m.confirmFocus = 0
}

func (m *Model) openActivateConfirm(reg api.Registry) {
	if reg.IsActive {
		m.status = fmt.Sprintf("%s is already the active registry", reg.Name)
		return
	}
	m.confirmAction = confirmActionActivateRegistry
	m.confirmTitle = fmt.Sprintf("Switch to %s?", reg.Name)
	m.confirmMessage = "Cached listings are dropped and browsing restarts from the root."
	m.confirmTarget = confirmTarget{registryID: reg.ID, registryName: reg.Name}
	m.confirmFocus = 1
}

func (m *Model) deleteImage(repository, tag string) tea.Cmd {
	if !m.beginMutation(deleteKey(repository, tag), "Delete of "+repository+":"+tag) {
		return nil
	}
	m.status = fmt.Sprintf("Deleting %s:%s...", repository, tag)
	return deleteImageCmd(m.app, m.timeout, repository, tag)
}

func (m *Model) activateRegistry(id int64, name string) tea.Cmd {
	if !m.beginMutation(activateKey(id), "Activation of "+name) {
		return nil
	}
	m.status = fmt.Sprintf("Switching to %s...", name)
	return activateRegistryCmd(m.app, m.timeout, id)
}

func (m *Model) testSelectedRegistry() tea.Cmd {
	reg, ok := m.selectedRegistry()
	if !ok {
		m.status = "No registry selected"
		return nil
	}
	if !m.beginMutation(testKey(reg.ID), "Connection test of "+reg.Name) {
		return nil
	}
	m.status = fmt.Sprintf("Testing connection to %s...", reg.Name)
	return testRegistryCmd(m.app, m.timeout, reg.ID, reg.Name)
}

func (m *Model) activateSelectedRegistry() {
	reg, ok := m.selectedRegistry()
	if !ok {
		m.status = "No registry selected"
		return
	}
	m.openActivateConfirm(reg)
}

func (m *Model) logout() {
	m.app.Logout()
	m.authRequired = true
	m.authError = ""
	m.authFocus = 0
	m.passwordInput.SetValue("")
	m.syncAuthFocus()
	m.clearData()
	m.clearSearch()
	m.helpActive = false
	m.focus = m.browseFocus()
	m.status = "Logged out"
	m.syncTable()
}
