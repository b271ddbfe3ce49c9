package tui

import (
	"slices"
	"strings"
	"testing"
)

func TestParseCommand(t *testing.T) {
	name, args := parseCommand("Registry  mirror eu")
	if name != "registry" {
		t.Fatalf("expected registry, got %q", name)
	}
	if len(args) != 2 || args[0] != "mirror" || args[1] != "eu" {
		t.Fatalf("unexpected args: %#v", args)
	}

	name, args = parseCommand("   ")
	if name != "" || args != nil {
		t.Fatalf("expected empty command, got %q %#v", name, args)
	}
}

func TestResolveCommandAlias(t *testing.T) {
	tests := map[string]string{
		"reg":        "registry",
		"registries": "registry",
		"goto":       "open",
		"root":       "repos",
		"WHOAMI":     "whoami",
	}
	for alias, want := range tests {
		cmd, ok := resolveCommand(alias)
		if !ok {
			t.Fatalf("expected %q to resolve", alias)
		}
		if cmd.Name != want {
			t.Fatalf("expected %q to resolve to %q, got %q", alias, want, cmd.Name)
		}
	}
	if _, ok := resolveCommand("github"); ok {
		t.Fatalf("expected unknown command to fail")
	}
}

func TestMatchCommands(t *testing.T) {
	matches := matchCommands("re")
	for _, want := range []string{"registry", "registries", "repos"} {
		if !slices.Contains(matches, want) {
			t.Fatalf("expected %q in %#v", want, matches)
		}
	}
	if slices.Contains(matches, "open") {
		t.Fatalf("unexpected match open in %#v", matches)
	}
}

func TestCommandAutocomplete(t *testing.T) {
	m, _ := newTestModel(t, true)
	m, _ = press(t, m, ":")
	m, _ = press(t, m, "who")

	if len(m.commandMatches) != 1 || m.commandMatches[0] != "whoami" {
		t.Fatalf("unexpected matches %#v", m.commandMatches)
	}
	m, _ = press(t, m, "tab")
	if got := m.commandInput.Value(); got != "whoami " {
		t.Fatalf("unexpected completion %q", got)
	}

	m, _ = press(t, m, "enter")
	if m.commandActive {
		t.Fatalf("expected command input to close")
	}
	if !strings.HasPrefix(m.status, "Logged in as admin (admin) until ") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestUnknownCommand(t *testing.T) {
	m, _ := newTestModel(t, true)
	m, _ = press(t, m, ":")
	m.commandInput.SetValue("dockerhub nginx")

	m, cmd := press(t, m, "enter")
	if cmd != nil {
		t.Fatalf("expected no command to run")
	}
	if m.status != "Unknown command: dockerhub" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestRegistryCommandUnknownName(t *testing.T) {
	m, _ := newTestModel(t, true)
	m, _ = press(t, m, ":")
	m.commandInput.SetValue("registry staging")

	m, _ = press(t, m, "enter")
	if !strings.HasPrefix(m.status, "Unknown registry: staging") {
		t.Fatalf("unexpected status %q", m.status)
	}
}
