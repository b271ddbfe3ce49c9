package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/scottbass3/dgui/internal/format"
)

type commandDescriptor struct {
	Name    string
	Aliases []string
	Help    []commandHelp
	Run     func(Model, []string) (tea.Model, tea.Cmd)
}

func commandRegistry() []commandDescriptor {
	return []commandDescriptor{
		{
			Name: "help",
			Help: []commandHelp{
				{Command: "help", Usage: "Open the help page"},
			},
			Run: runHelpCommand,
		},
		{
			Name:    "registry",
			Aliases: []string{"reg", "registries"},
			Help: []commandHelp{
				{Command: "registry", Usage: "List configured registries"},
				{Command: "registry <id|name>", Usage: "Switch the active registry"},
			},
			Run: runRegistryCommand,
		},
		{
			Name:    "open",
			Aliases: []string{"goto"},
			Help: []commandHelp{
				{Command: "open <location>", Usage: "Jump to /images?repo=<repo>&tag=<tag>"},
			},
			Run: runOpenCommand,
		},
		{
			Name:    "repos",
			Aliases: []string{"root"},
			Help: []commandHelp{
				{Command: "repos", Usage: "Go back to the repository listing"},
			},
			Run: runReposCommand,
		},
		{
			Name: "whoami",
			Help: []commandHelp{
				{Command: "whoami", Usage: "Show the logged in user"},
			},
			Run: runWhoamiCommand,
		},
		{
			Name: "logout",
			Help: []commandHelp{
				{Command: "logout", Usage: "End the session"},
			},
			Run: runLogoutCommand,
		},
	}
}

func availableCommands() []commandHelp {
	registry := commandRegistry()
	entries := make([]commandHelp, 0, len(registry)*2)
	for _, cmd := range registry {
		entries = append(entries, cmd.Help...)
	}
	return entries
}

func resolveCommand(name string) (commandDescriptor, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return commandDescriptor{}, false
	}
	for _, descriptor := range commandRegistry() {
		if descriptor.Name == needle {
			return descriptor, true
		}
		for _, alias := range descriptor.Aliases {
			if alias == needle {
				return descriptor, true
			}
		}
	}
	return commandDescriptor{}, false
}

func commandSuggestions() []string {
	registry := commandRegistry()
	out := make([]string, 0, len(registry)*2)
	for _, descriptor := range registry {
		out = append(out, descriptor.Name)
		out = append(out, descriptor.Aliases...)
	}
	return out
}

func matchCommands(prefix string) []string {
	candidates := commandSuggestions()
	if prefix == "" {
		return candidates
	}
	prefix = strings.ToLower(prefix)
	out := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, prefix) {
			out = append(out, candidate)
		}
	}
	return out
}

func runHelpCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	return m.openHelp()
}

func runRegistryCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		return m, m.openRegistries()
	}
	target := strings.Join(args, " ")
	if id, err := strconv.ParseInt(target, 10, 64); err == nil {
		name := fmt.Sprintf("registry %d", id)
		for _, reg := range m.registries {
			if reg.ID == id {
				name = reg.Name
				break
			}
		}
		return m, m.activateRegistry(id, name)
	}
	for _, reg := range m.registries {
		if strings.EqualFold(reg.Name, target) {
			return m, m.activateRegistry(reg.ID, reg.Name)
		}
	}
	m.status = fmt.Sprintf("Unknown registry: %s (open :registry to list them)", target)
	return m, nil
}

func runOpenCommand(m Model, args []string) (tea.Model, tea.Cmd) {
	if len(args) == 0 {
		m.status = "Usage: open <location>"
		return m, nil
	}
	return m, m.openLocation(strings.Join(args, " "))
}

func runReposCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	return m, m.openLocation("/images")
}

func runWhoamiCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	user, ok := m.app.Session.User()
	if !ok {
		m.status = "Not logged in"
		return m, nil
	}
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	m.status = fmt.Sprintf("Logged in as %s (%s) until %s", user.Username, role, format.Time(m.app.Session.ExpiresAt()))
	return m, nil
}

func runLogoutCommand(m Model, _ []string) (tea.Model, tea.Cmd) {
	return m.openLogoutConfirm()
}
