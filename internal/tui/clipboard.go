package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
)

var writeClipboard = clipboard.WriteAll

func (m *Model) copyPullCommand() bool {
	command, ok := m.selectedPullCommand()
	if !ok {
		m.status = "No tag selected to copy"
		return false
	}
	return m.copyText(command)
}

// copyLocation copies the encoded browse location, which --location and
// :open accept.
func (m *Model) copyLocation() bool {
	return m.copyText(m.app.Nav.Location().Encode())
}

func (m *Model) copyText(value string) bool {
	if err := writeClipboard(value); err != nil {
		m.status = fmt.Sprintf("Failed to copy %s: %v", value, err)
		return false
	}
	m.status = fmt.Sprintf("Copied %s", value)
	return true
}

func (m Model) selectedPullCommand() (string, bool) {
	tag, ok := m.selectedTag()
	repository := m.app.Nav.Location().Repository
	if !ok || repository == "" {
		return "", false
	}
	return m.app.PullCommand(repository, tag), true
}
