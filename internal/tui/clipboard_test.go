package tui

import (
	"errors"
	"strings"
	"testing"
)

func stubClipboard(t *testing.T, err error) *string {
	t.Helper()
	var copied string
	original := writeClipboard
	writeClipboard = func(value string) error {
		if err != nil {
			return err
		}
		copied = value
		return nil
	}
	t.Cleanup(func() { writeClipboard = original })
	return &copied
}

func TestCopyPullCommand(t *testing.T) {
	tests := []struct {
		name     string
		depth    int
		wantCopy string
	}{
		{name: "tag listing", depth: 1, wantCopy: "docker pull localhost:5000/alpine:3.19"},
		{name: "detail view", depth: 2, wantCopy: "docker pull localhost:5000/alpine:3.19"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, _ := newTestModel(t, true)
			for i := 0; i < tc.depth; i++ {
				m = pressAndDrive(t, m, "enter")
			}
			copied := stubClipboard(t, nil)

			m, _ = press(t, m, "c")

			if *copied != tc.wantCopy {
				t.Fatalf("expected copied value %q, got %q", tc.wantCopy, *copied)
			}
			if !strings.Contains(m.status, tc.wantCopy) {
				t.Fatalf("expected status to include copied value, got %q", m.status)
			}
		})
	}
}

func TestCopyLocation(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")
	copied := stubClipboard(t, nil)

	m, _ = press(t, m, "y")

	if *copied != "/images?repo=alpine" {
		t.Fatalf("unexpected copied location %q", *copied)
	}
}

func TestCopyClipboardError(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")
	stubClipboard(t, errors.New("clipboard unavailable"))

	m, _ = press(t, m, "c")

	if !strings.Contains(m.status, "Failed to copy") {
		t.Fatalf("expected copy error status, got %q", m.status)
	}
}

func TestCopyPullCommandWithoutSelection(t *testing.T) {
	m, backend := newTestModel(t, true)
	backend.SetTags(1, "alpine")
	m = pressAndDrive(t, m, "enter")
	copied := stubClipboard(t, nil)

	m, _ = press(t, m, "c")

	if *copied != "" {
		t.Fatalf("expected nothing to be copied, got %q", *copied)
	}
	if m.status != "No tag selected to copy" {
		t.Fatalf("expected no selection status, got %q", m.status)
	}
}
