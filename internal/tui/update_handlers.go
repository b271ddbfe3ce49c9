package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/browse"
	"github.com/scottbass3/dgui/internal/format"
	"github.com/scottbass3/dgui/internal/registry/history"
)

func (m Model) updateKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.helpActive {
		return m.handleHelpKey(msg)
	}
	if isHelpShortcut(msg) &&
		!m.commandActive &&
		!m.searchActive &&
		!m.isConfirmModalActive() &&
		!m.isAuthModalActive() {
		return m.openHelp()
	}
	if m.isConfirmModalActive() {
		return m.handleConfirmKey(msg)
	}
	if m.isAuthModalActive() {
		return m.handleAuthKey(msg)
	}
	if m.commandActive {
		return m.handleCommandKey(msg)
	}
	return m.handleKey(msg)
}

func (m Model) updateWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.syncTable()
	return m, nil
}

func (m Model) updateLoginMsg(msg loginMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	m.authSubmitting = false
	if msg.err != nil {
		m.authError = errorText(msg.err)
		m.status = "Login failed"
		return m, nil
	}
	m.authRequired = false
	m.authError = ""
	m.authFocus = 0
	m.passwordInput.SetValue("")
	m.syncAuthFocus()
	m.usernameInput.Blur()
	m.status = fmt.Sprintf("Logged in as %s", msg.user.Username)
	m.focus = m.browseFocus()
	return m, m.loadCurrent()
}

func (m Model) updateActiveRegistryMsg(msg activeRegistryMsg) (tea.Model, tea.Cmd) {
	if msg.err == nil {
		return m, nil
	}
	if api.IsAuth(msg.err) {
		m.expireSession()
		return m, nil
	}
	m.status = fmt.Sprintf("Active registry unavailable: %s", errorText(msg.err))
	return m, nil
}

func (m Model) updateRepositoriesMsg(msg repositoriesMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if m.focus != FocusRepositories || msg.query != m.repositoriesQuery() {
		return m, nil
	}
	if msg.err != nil {
		return m.failLoad("repositories", msg.err)
	}
	state := m.app.Nav.UpdateRepositories(func(p *browse.PageState) { p.Clamp(msg.page.TotalPages) })
	if state.Page != msg.query.Page {
		return m, m.loadCurrent()
	}
	m.repositories = msg.page
	m.viewError = ""
	m.status = fmt.Sprintf("Loaded %d of %d repositories", len(msg.page.Data), msg.page.Total)
	m.syncTable()
	return m, nil
}

func (m Model) updateTagsMsg(msg tagsMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if m.focus != FocusTags ||
		msg.repository != m.app.Nav.Location().Repository ||
		msg.query != m.tagsQuery() {
		return m, nil
	}
	if msg.err != nil {
		return m.failLoad("tags", msg.err)
	}
	state := m.app.Nav.UpdateTags(func(p *browse.PageState) { p.Clamp(msg.page.TotalPages) })
	if state.Page != msg.query.Page {
		return m, m.loadCurrent()
	}
	m.tags = msg.page
	m.viewError = ""
	m.status = fmt.Sprintf("Loaded %d of %d tags for %s", len(msg.page.Data.Tags), msg.page.Total, msg.repository)
	m.syncTable()
	return m, nil
}

func (m Model) updateImageInfoMsg(msg imageInfoMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	loc := m.app.Nav.Location()
	if m.focus != FocusDetail || loc.Repository != msg.repository || loc.Tag != msg.tag {
		return m, nil
	}
	if msg.err != nil {
		m.info = msg.info
		m.hasInfo = false
		m.history = nil
		if api.IsNotFound(msg.err) {
			m.viewError = fmt.Sprintf("%s:%s not found", msg.repository, msg.tag)
			m.status = m.viewError
			m.syncTable()
			return m, nil
		}
		return m.failLoad("image details", msg.err)
	}
	m.info = msg.info
	m.hasInfo = true
	m.history = history.Build(msg.info)
	m.viewError = ""
	m.status = fmt.Sprintf("Loaded %s:%s (%s)", msg.repository, msg.tag, format.Bytes(history.TotalSize(msg.info)))
	m.syncTable()
	return m, nil
}

func (m Model) updateRegistriesMsg(msg registriesMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if m.focus != FocusRegistries {
		return m, nil
	}
	if msg.err != nil {
		return m.failLoad("registries", msg.err)
	}
	m.registries = msg.registries
	m.viewError = ""
	m.status = fmt.Sprintf("Loaded %d registries", len(msg.registries))
	m.syncTable()
	return m, nil
}

func (m Model) updateActivateRegistryMsg(msg activateRegistryMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	m.finishMutation(activateKey(msg.id))
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.status = fmt.Sprintf("Failed to activate registry %d: %s", msg.id, errorText(msg.err))
		return m, nil
	}
	// Activation reset every cache and the navigator; start over from the root.
	m.clearData()
	m.clearSearch()
	m.focus = m.browseFocus()
	m.status = fmt.Sprintf("Active registry: %s (%s)", msg.registry.Name, msg.registry.URL)
	m.syncTable()
	return m, m.loadCurrent()
}

func (m Model) updateTestRegistryMsg(msg testRegistryMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	m.finishMutation(testKey(msg.id))
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.status = fmt.Sprintf("Connection test for %s failed: %s", msg.name, errorText(msg.err))
		return m, nil
	}
	if msg.result.Connected {
		m.status = fmt.Sprintf("%s: %s", msg.name, format.FirstNonEmpty(msg.result.Message, "connected"))
		return m, nil
	}
	m.status = fmt.Sprintf("%s: not connected: %s", msg.name, format.FirstNonEmpty(msg.result.Error, "unknown error"))
	return m, nil
}

func (m Model) updateDeleteImageMsg(msg deleteImageMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	m.finishMutation(deleteKey(msg.repository, msg.tag))
	reference := msg.repository + ":" + msg.tag
	if msg.err != nil {
		if api.IsAuth(msg.err) {
			m.expireSession()
			return m, nil
		}
		m.status = fmt.Sprintf("Failed to delete %s: %s", reference, errorText(msg.err))
		return m, nil
	}
	if m.focus == FocusRegistries {
		m.status = fmt.Sprintf("Deleted %s", reference)
		return m, nil
	}
	m.focus = m.browseFocus()
	m.hasInfo = false
	m.history = nil
	cmd := m.loadCurrent()
	m.status = fmt.Sprintf("Deleted %s", reference)
	m.syncTable()
	return m, cmd
}

func (m Model) updateDockerPullMsg(msg dockerPullMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.err != nil {
		m.status = fmt.Sprintf("Failed to pull %s: %v", msg.reference, msg.err)
		return m, nil
	}
	m.status = fmt.Sprintf("Pulled %s", msg.reference)
	return m, nil
}

func (m Model) updateLogMsg(msg logMsg) (tea.Model, tea.Cmd) {
	m.appendLog(string(msg))
	m.syncTable()
	if m.logCh != nil {
		return m, listenLogs(m.logCh)
	}
	return m, nil
}

// failLoad reports a failed read of the focused view. Auth failures end the
// session; anything else stays on the view with a retry hint.
func (m Model) failLoad(what string, err error) (tea.Model, tea.Cmd) {
	if api.IsAuth(err) {
		m.expireSession()
		return m, nil
	}
	m.viewError = fmt.Sprintf("Error loading %s: %s", what, errorText(err))
	m.status = m.viewError + " (r to retry)"
	m.syncTable()
	return m, nil
}

// expireSession returns to the login form after the server rejected the token.
func (m *Model) expireSession() {
	m.app.Logout()
	m.authRequired = true
	m.authSubmitting = false
	m.authError = "Session expired, log in again"
	m.authFocus = 0
	m.syncAuthFocus()
	m.clearData()
	m.clearSearch()
	m.clearConfirm()
	m.helpActive = false
	m.focus = m.browseFocus()
	m.status = "Logged out"
	m.syncTable()
}

func (m *Model) clearData() {
	m.repositories = api.Page[[]api.RepositoryInfo]{}
	m.tags = api.Page[api.TagList]{}
	m.info = api.ImageInfo{}
	m.hasInfo = false
	m.history = nil
	m.detailView = detailViewHistory
	m.registries = nil
	m.viewError = ""
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, api.ErrMutationPending) {
		return "already in progress"
	}
	var apiErr *api.Error
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return err.Error()
}
