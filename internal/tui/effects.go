package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/app"
)

func listenLogs(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return logMsg(msg)
	}
}

func (m *Model) appendLog(entry string) {
	if entry == "" {
		return
	}
	m.logs = append(m.logs, entry)
	if m.logMax > 0 && len(m.logs) > m.logMax {
		m.logs = m.logs[len(m.logs)-m.logMax:]
	}
}

func (m *Model) syncAuthFocus() {
	switch m.authFocus {
	case 0:
		m.usernameInput.Focus()
		m.passwordInput.Blur()
	case 1:
		m.passwordInput.Focus()
		m.usernameInput.Blur()
	default:
		m.usernameInput.Blur()
		m.passwordInput.Blur()
	}
}

// loadCurrentCmd fetches whatever the focused view shows.
func (m Model) loadCurrentCmd() tea.Cmd {
	loc := m.app.Nav.Location()
	switch m.focus {
	case FocusRegistries:
		return loadRegistriesCmd(m.app, m.timeout)
	case FocusDetail:
		return loadImageInfoCmd(m.app, m.timeout, loc.Repository, loc.Tag)
	case FocusTags:
		return loadTagsCmd(m.app, m.timeout, loc.Repository, m.tagsQuery())
	default:
		return loadRepositoriesCmd(m.app, m.timeout, m.repositoriesQuery())
	}
}

func (m Model) repositoriesQuery() api.PageQuery {
	state := m.app.Nav.Repositories()
	return api.PageQuery{Page: state.Page, PageSize: state.PageSize, Search: state.Search}.Normalize()
}

func (m Model) tagsQuery() api.PageQuery {
	state := m.app.Nav.Tags()
	return api.PageQuery{Page: state.Page, PageSize: state.PageSize, Search: state.Search}.Normalize()
}

func loginCmd(a *app.App, timeout time.Duration, username, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		user, err := a.Login(ctx, username, password)
		return loginMsg{user: user, err: err}
	}
}

func loadActiveRegistryCmd(a *app.App, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		return activeRegistryMsg{err: a.Start(ctx)}
	}
}

func loadRepositoriesCmd(a *app.App, timeout time.Duration, q api.PageQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := a.API.Repositories(ctx, q)
		return repositoriesMsg{query: q, page: page, err: err}
	}
}

func loadTagsCmd(a *app.App, timeout time.Duration, repository string, q api.PageQuery) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		page, err := a.API.Tags(ctx, repository, q)
		return tagsMsg{repository: repository, query: q, page: page, err: err}
	}
}

func loadImageInfoCmd(a *app.App, timeout time.Duration, repository, tag string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		info, err := a.API.ImageInfo(ctx, repository, tag)
		return imageInfoMsg{repository: repository, tag: tag, info: info, err: err}
	}
}

func loadRegistriesCmd(a *app.App, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		registries, err := a.API.Registries(ctx)
		return registriesMsg{registries: registries, err: err}
	}
}

func activateRegistryCmd(a *app.App, timeout time.Duration, id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		registry, err := a.Activate(ctx, id)
		return activateRegistryMsg{id: id, registry: registry, err: err}
	}
}

func testRegistryCmd(a *app.App, timeout time.Duration, id int64, name string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		result, err := a.API.TestRegistry(ctx, id)
		return testRegistryMsg{id: id, name: name, result: result, err: err}
	}
}

func deleteImageCmd(a *app.App, timeout time.Duration, repository, tag string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := a.DeleteImage(ctx, repository, tag)
		return deleteImageMsg{repository: repository, tag: tag, err: err}
	}
}
