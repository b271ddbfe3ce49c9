package tui

import (
	"errors"
	"strings"
	"testing"
)

func stubDockerPull(t *testing.T, err error) *[]string {
	t.Helper()
	var pulled []string
	original := runDockerPull
	runDockerPull = func(reference string) error {
		pulled = append(pulled, reference)
		return err
	}
	t.Cleanup(func() { runDockerPull = original })
	return &pulled
}

func TestDockerPullSelectedTag(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")
	m, _ = press(t, m, "j")
	pulled := stubDockerPull(t, nil)

	m, cmd := press(t, m, "p")
	if cmd == nil {
		t.Fatalf("expected a pull command")
	}
	if m.status != "Pulling localhost:5000/alpine:latest..." {
		t.Fatalf("unexpected status %q", m.status)
	}
	m = drive(t, m, cmd)

	if len(*pulled) != 1 || (*pulled)[0] != "localhost:5000/alpine:latest" {
		t.Fatalf("unexpected pulls %#v", *pulled)
	}
	if m.status != "Pulled localhost:5000/alpine:latest" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.isLoading() {
		t.Fatalf("expected loading to stop")
	}
}

func TestDockerPullFailure(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")
	stubDockerPull(t, errors.New("docker: command not found"))

	m = pressAndDrive(t, m, "p")

	if !strings.HasPrefix(m.status, "Failed to pull localhost:5000/alpine:3.19") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestDockerPullIgnoredOnRepositories(t *testing.T) {
	m, _ := newTestModel(t, true)
	pulled := stubDockerPull(t, nil)

	m = pressAndDrive(t, m, "p")

	if len(*pulled) != 0 {
		t.Fatalf("expected no pull from the repository listing, got %#v", *pulled)
	}
}
