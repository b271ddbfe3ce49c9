package tui

import (
	"strings"
	"testing"

	"github.com/scottbass3/dgui/internal/browse"
)

func TestDeleteFromDetailReturnsToTags(t *testing.T) {
	m, backend := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")
	m = pressAndDrive(t, m, "enter")
	if m.focus != FocusDetail {
		t.Fatalf("expected detail focus, got %v", m.focus)
	}

	m, _ = press(t, m, "x")
	if m.confirmAction != confirmActionDeleteImage {
		t.Fatalf("expected delete confirmation")
	}
	if m.confirmTitle != "Delete alpine:3.19?" {
		t.Fatalf("unexpected confirm title %q", m.confirmTitle)
	}

	m = pressAndDrive(t, m, "y")

	if hits := backend.Hits("DELETE /images/delete"); hits != 1 {
		t.Fatalf("expected one delete request, got %d", hits)
	}
	if m.focus != FocusTags {
		t.Fatalf("expected tags focus after delete, got %v", m.focus)
	}
	if got := m.app.Nav.Location(); got != (browse.Location{Repository: "alpine"}) {
		t.Fatalf("unexpected location %#v", got)
	}
	if tags := m.tags.Data.Tags; len(tags) != 1 || tags[0] != "latest" {
		t.Fatalf("expected the deleted tag to be gone, got %#v", tags)
	}
	if len(m.pending) != 0 {
		t.Fatalf("expected no pending mutations, got %#v", m.pending)
	}
}

func TestDeleteCanBeCancelled(t *testing.T) {
	m, backend := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")

	m, _ = press(t, m, "x")
	m = pressAndDrive(t, m, "n")

	if m.confirmAction != confirmActionNone {
		t.Fatalf("expected confirmation to close")
	}
	if hits := backend.Hits("DELETE /images/delete"); hits != 0 {
		t.Fatalf("expected no delete request, got %d", hits)
	}
}

func TestPendingDeleteIsNotSubmittedTwice(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")

	first := m.deleteImage("alpine", "latest")
	if first == nil {
		t.Fatalf("expected a delete command")
	}
	if second := m.deleteImage("alpine", "latest"); second != nil {
		t.Fatalf("expected the second delete to be refused")
	}
	if !strings.Contains(m.status, "already in progress") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "x")
	if m.confirmAction != confirmActionNone {
		t.Fatalf("expected no confirmation while the delete is running")
	}

	m = drive(t, m, first)
	if m.isPending(deleteKey("alpine", "latest")) {
		t.Fatalf("expected pending mark to be cleared")
	}
}

func TestActivateRegistryResetsBrowsing(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = pressAndDrive(t, m, "enter")

	m = pressAndDrive(t, m, "R")
	if m.focus != FocusRegistries || len(m.registries) != 2 {
		t.Fatalf("expected registry listing, focus %v with %d rows", m.focus, len(m.registries))
	}

	m, _ = press(t, m, "enter")
	if m.confirmAction != confirmActionNone {
		t.Fatalf("activating the active registry needs no confirmation")
	}
	if !strings.Contains(m.status, "already the active registry") {
		t.Fatalf("unexpected status %q", m.status)
	}

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "enter")
	if m.confirmAction != confirmActionActivateRegistry {
		t.Fatalf("expected activation confirmation")
	}
	m = pressAndDrive(t, m, "enter")

	active, ok := m.app.Selection.Active()
	if !ok || active.ID != 2 {
		t.Fatalf("expected registry 2 to be active, got %#v", active)
	}
	if m.focus != FocusRepositories {
		t.Fatalf("expected repositories focus, got %v", m.focus)
	}
	if got := m.app.Nav.Location(); got != (browse.Location{}) {
		t.Fatalf("expected browsing to restart at the root, got %#v", got)
	}
	if len(m.repositories.Data) != 2 || m.repositories.Data[0].Name != "nginx" {
		t.Fatalf("expected the mirror repositories, got %#v", m.repositories.Data)
	}
}

func TestRegistryCommandActivatesByID(t *testing.T) {
	m, _ := newTestModel(t, true)

	m, _ = press(t, m, ":")
	m.commandInput.SetValue("registry 2")
	m = pressAndDrive(t, m, "enter")

	active, ok := m.app.Selection.Active()
	if !ok || active.Name != "mirror" {
		t.Fatalf("expected mirror to be active, got %#v", active)
	}
	if len(m.repositories.Data) != 2 {
		t.Fatalf("expected the mirror repositories, got %#v", m.repositories.Data)
	}
}

func TestTestRegistryReportsResult(t *testing.T) {
	m, _ := newTestModel(t, true)
	m = pressAndDrive(t, m, "R")

	m = pressAndDrive(t, m, "t")

	if m.status != "local: Connection successful" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if m.isPending(testKey(1)) {
		t.Fatalf("expected test to finish")
	}
}

func TestLogoutConfirmationEndsSession(t *testing.T) {
	m, _ := newTestModel(t, true)

	m, _ = press(t, m, ":")
	m.commandInput.SetValue("logout")
	m, _ = press(t, m, "enter")
	if m.confirmAction != confirmActionLogout {
		t.Fatalf("expected logout confirmation")
	}
	m, _ = press(t, m, "y")

	if !m.authRequired || m.app.Authenticated() {
		t.Fatalf("expected the session to end")
	}
	if len(m.repositories.Data) != 0 {
		t.Fatalf("expected listings to be cleared")
	}
}
