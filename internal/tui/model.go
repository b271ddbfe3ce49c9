// Package tui is the interactive terminal front end of dgui.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/app"
	"github.com/scottbass3/dgui/internal/browse"
)

// NewModel builds the UI around a. When debug is set, request log lines
// received on logCh are shown in a pane below the main section.
func NewModel(a *app.App, debug bool, logCh <-chan string) Model {
	timeout := a.Config.Timeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search"
	search.CharLimit = 64
	search.Blur()

	tbl := table.New()
	tbl.SetStyles(tableStyles())
	tbl.SetHeight(defaultTableHeight)
	tbl.Focus()

	commandInput := textinput.New()
	commandInput.Prompt = ":"
	commandInput.Placeholder = "registry <id> | open <location> | logout"
	commandInput.CharLimit = 128
	commandInput.Blur()

	username := textinput.New()
	username.Prompt = ""
	username.Placeholder = "username"
	username.CharLimit = 128
	username.Blur()

	password := textinput.New()
	password.Prompt = ""
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '*'
	password.Blur()

	authRequired := !a.Authenticated()
	status := fmt.Sprintf("Server: %s", a.API.BaseURL())
	if authRequired {
		username.Focus()
		status = "Log in to continue"
	}

	m := Model{
		status:  status,
		app:     a,
		timeout: timeout,
		authState: authState{
			authRequired:  authRequired,
			usernameInput: username,
			passwordInput: password,
		},
		commandState: commandState{commandInput: commandInput},
		searchInput:  search,
		pending:      make(map[string]struct{}),
		table:        tbl,
		debug:        debug,
		logCh:        logCh,
		logMax:       maxLogLines,
	}
	m.focus = m.browseFocus()
	return m
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if !m.authRequired {
		cmds = append(cmds, loadActiveRegistryCmd(m.app, m.timeout), m.loadCurrentCmd())
	}
	if m.logCh != nil {
		cmds = append(cmds, listenLogs(m.logCh))
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.updateWindowSizeMsg(msg)
	case loginMsg:
		return m.updateLoginMsg(msg)
	case activeRegistryMsg:
		return m.updateActiveRegistryMsg(msg)
	case repositoriesMsg:
		return m.updateRepositoriesMsg(msg)
	case tagsMsg:
		return m.updateTagsMsg(msg)
	case imageInfoMsg:
		return m.updateImageInfoMsg(msg)
	case registriesMsg:
		return m.updateRegistriesMsg(msg)
	case activateRegistryMsg:
		return m.updateActivateRegistryMsg(msg)
	case testRegistryMsg:
		return m.updateTestRegistryMsg(msg)
	case deleteImageMsg:
		return m.updateDeleteImageMsg(msg)
	case dockerPullMsg:
		return m.updateDockerPullMsg(msg)
	case logMsg:
		return m.updateLogMsg(msg)
	}
	return m, nil
}

func (m Model) View() string {
	base := m.renderApp()
	switch {
	case m.isConfirmModalActive():
		return m.renderModal(base, m.renderConfirmModal())
	case m.isAuthModalActive():
		return m.renderModal(base, m.renderAuthModal())
	}
	return base
}

// browseFocus is the listing matching the navigator location.
func (m Model) browseFocus() Focus {
	switch m.app.Nav.Location().Level() {
	case browse.LevelTag:
		return FocusDetail
	case browse.LevelRepository:
		return FocusTags
	default:
		return FocusRepositories
	}
}

func (m *Model) startLoading() {
	m.loadingCount++
}

func (m *Model) stopLoading() {
	if m.loadingCount > 0 {
		m.loadingCount--
	}
}

func (m Model) isLoading() bool {
	return m.loadingCount > 0
}
