package tui

import (
	"fmt"
	"os/exec"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/registry"
)

var runDockerPull = dockerPull

// pullSelectedTagWithDocker pulls the selected tag from the active registry
// with the local docker CLI.
func (m *Model) pullSelectedTagWithDocker() tea.Cmd {
	reference, ok := m.selectedPullReference()
	if !ok {
		m.status = "No tag selected to pull"
		return nil
	}

	m.status = fmt.Sprintf("Pulling %s...", reference)
	m.startLoading()
	return pullSelectedTagCmd(reference)
}

func (m Model) selectedPullReference() (string, bool) {
	tag, ok := m.selectedTag()
	repository := m.app.Nav.Location().Repository
	if !ok || repository == "" {
		return "", false
	}
	var registryURL string
	if active, ok := m.app.Selection.Active(); ok {
		registryURL = active.URL
	}
	return registry.PullReference(registryURL, repository, tag), true
}

func pullSelectedTagCmd(reference string) tea.Cmd {
	return func() tea.Msg {
		return dockerPullMsg{reference: reference, err: runDockerPull(reference)}
	}
}

func dockerPull(reference string) error {
	cmd := exec.Command("docker", "pull", reference)
	output, err := cmd.CombinedOutput()
	if err == nil {
		return nil
	}

	details := strings.TrimSpace(string(output))
	if details == "" {
		return err
	}
	return fmt.Errorf("%w: %s", err, details)
}
