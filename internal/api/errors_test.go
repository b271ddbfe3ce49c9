package api

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		status      int
		body        string
		wantKind    ErrorKind
		wantMessage string
	}{
		{401, `{"error":"invalid or expired token"}`, KindAuth, "invalid or expired token"},
		{404, `{"error":"repository not found"}`, KindNotFound, "repository not found"},
		{400, `{"message":"name is required"}`, KindValidation, "name is required"},
		{409, ``, KindValidation, "Conflict"},
		{502, `bad gateway from proxy`, KindServer, "bad gateway from proxy"},
		{500, `{"error":""}`, KindServer, "Internal Server Error"},
	}
	for _, tt := range tests {
		err := newStatusError("GET", "/images/tags", tt.status, []byte(tt.body))
		if err.Kind != tt.wantKind {
			t.Fatalf("status %d: expected kind %q, got %q", tt.status, tt.wantKind, err.Kind)
		}
		if err.Message != tt.wantMessage {
			t.Fatalf("status %d: expected message %q, got %q", tt.status, tt.wantMessage, err.Message)
		}
	}
}

func TestErrorHelpers(t *testing.T) {
	err := fmt.Errorf("load tags: %w", newStatusError("GET", "/images/tags", 404, nil))
	if !IsNotFound(err) {
		t.Fatalf("expected wrapped not found error to be detected")
	}
	if IsAuth(err) || IsNetwork(err) || IsValidation(err) {
		t.Fatalf("expected only not found kind, got %q", KindOf(err))
	}
	if KindOf(errors.New("plain")) != "" {
		t.Fatalf("expected no kind for plain errors")
	}

	network := newTransportError("GET", "/registries", context.DeadlineExceeded)
	if !network.Transient() || network.Message != "request timed out" {
		t.Fatalf("expected transient timeout, got %+v", network)
	}
	if !errors.Is(network, context.DeadlineExceeded) {
		t.Fatalf("expected cause to be preserved")
	}
}

func TestPageQueryNormalize(t *testing.T) {
	tests := []struct {
		in   PageQuery
		want PageQuery
	}{
		{PageQuery{}, PageQuery{Page: 1, PageSize: 20}},
		{PageQuery{Page: -3, PageSize: 50}, PageQuery{Page: 1, PageSize: 50}},
		{PageQuery{Page: 4, PageSize: 15, Search: "  ngi "}, PageQuery{Page: 4, PageSize: 20, Search: "ngi"}},
		{PageQuery{Page: 2, PageSize: 100}, PageQuery{Page: 2, PageSize: 100}},
		{PageQuery{Page: 2, PageSize: 101}, PageQuery{Page: 2, PageSize: 20}},
	}
	for _, tt := range tests {
		if got := tt.in.Normalize(); got != tt.want {
			t.Fatalf("expected %+v, got %+v", tt.want, got)
		}
	}
}

func TestIsDigest(t *testing.T) {
	if !IsDigest("sha256:" + fmt.Sprintf("%064d", 0)) {
		t.Fatalf("expected sha256 digest to be detected")
	}
	for _, ref := range []string{"latest", "1.25", "sha256:abc"} {
		if IsDigest(ref) {
			t.Fatalf("expected %q to be treated as a tag", ref)
		}
	}
}
