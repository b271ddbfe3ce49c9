package history

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/scottbass3/dgui/internal/api"
)

func TestBuild(t *testing.T) {
	info := api.ImageInfo{
		Manifest: api.ImageManifest{
			Layers: []api.Descriptor{{Size: 100}, {Size: 200}},
		},
		Config: api.ImageConfig{
			History: []api.HistoryEntry{
				{Created: "2024-03-01T09:00:00Z", CreatedBy: "/bin/sh -c #(nop) ADD file:abc in / "},
				{Created: "2024-03-01T09:30:00Z", CreatedBy: "/bin/sh -c #(nop)  CMD [\"sh\"]", EmptyLayer: true},
				{Created: "2024-03-01T10:00:00.5Z", CreatedBy: "/bin/sh -c apk add nginx", Comment: " buildkit "},
				{Created: "bogus", CreatedBy: "RUN extra"},
			},
		},
	}

	want := []Entry{
		{CreatedBy: "RUN extra", Command: "RUN extra", SizeBytes: -1},
		{
			CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 5e8, time.UTC),
			CreatedBy: "/bin/sh -c apk add nginx",
			Command:   "apk add nginx",
			Comment:   "buildkit",
			SizeBytes: 200,
		},
		{
			CreatedAt:  time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
			CreatedBy:  "/bin/sh -c #(nop)  CMD [\"sh\"]",
			Command:    "CMD [\"sh\"]",
			SizeBytes:  -1,
			EmptyLayer: true,
		},
		{
			CreatedAt: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			CreatedBy: "/bin/sh -c #(nop) ADD file:abc in /",
			Command:   "ADD file:abc in /",
			SizeBytes: 100,
		},
	}
	if diff := cmp.Diff(want, Build(info)); diff != "" {
		t.Fatalf("history mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildWithoutHistory(t *testing.T) {
	if got := Build(api.ImageInfo{}); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestTotalSize(t *testing.T) {
	layers := []api.Descriptor{{Size: 10}, {Size: 20}}
	tests := []struct {
		info api.ImageInfo
		want int64
	}{
		{api.ImageInfo{TotalSize: 99, Manifest: api.ImageManifest{TotalSize: 50, Layers: layers}}, 99},
		{api.ImageInfo{Manifest: api.ImageManifest{TotalSize: 50, Layers: layers}}, 50},
		{api.ImageInfo{Manifest: api.ImageManifest{Layers: layers}}, 30},
	}
	for _, tt := range tests {
		if got := TotalSize(tt.info); got != tt.want {
			t.Fatalf("expected %d, got %d", tt.want, got)
		}
	}
}

func TestLayers(t *testing.T) {
	info := api.ImageInfo{Manifest: api.ImageManifest{Layers: []api.Descriptor{
		{Digest: "sha256:a", Size: 1},
		{Digest: "sha256:b", Size: 2},
	}}}
	got := Layers(info)
	if len(got) != 2 || got[0].Index != 1 || got[1].Digest != "sha256:b" {
		t.Fatalf("unexpected layers %+v", got)
	}
}

func TestLayersFields(t *testing.T) {
	info := api.ImageInfo{
		Manifest: api.ImageManifest{
			Layers: []api.Descriptor{
				{Digest: "sha256:aaa", MediaType: "application/vnd.oci.image.layer.v1.tar+gzip", Size: 100},
				{Digest: "sha256:bbb", MediaType: "application/vnd.oci.image.layer.v1.tar+gzip", Size: 200},
			},
		},
	}
	want := []Layer{
		{Index: 1, Digest: "sha256:aaa", MediaType: "application/vnd.oci.image.layer.v1.tar+gzip", SizeBytes: 100},
		{Index: 2, Digest: "sha256:bbb", MediaType: "application/vnd.oci.image.layer.v1.tar+gzip", SizeBytes: 200},
	}
	if diff := cmp.Diff(want, Layers(info)); diff != "" {
		t.Fatalf("unexpected layers (-want +got):\n%s", diff)
	}
}

func TestRuntimeConfig(t *testing.T) {
	info := api.ImageInfo{
		Config: api.ImageConfig{
			Config: api.ContainerConfig{
				Entrypoint:   []string{"/docker-entrypoint.sh"},
				Cmd:          []string{"nginx", "-g", "daemon off;"},
				WorkingDir:   "/srv",
				ExposedPorts: map[string]struct{}{"80/tcp": {}, "443/tcp": {}},
				Env:          []string{"PATH=/usr/bin", "NGINX_VERSION=1.25"},
				Labels:       map[string]string{"maintainer": "ops", "org.opencontainers.image.title": "web"},
			},
		},
	}
	want := []ConfigField{
		{Name: "Entrypoint", Value: "/docker-entrypoint.sh"},
		{Name: "Cmd", Value: "nginx -g daemon off;"},
		{Name: "WorkingDir", Value: "/srv"},
		{Name: "User", Value: "-"},
		{Name: "ExposedPorts", Value: "443/tcp, 80/tcp"},
		{Name: "Env", Value: "PATH=/usr/bin"},
		{Name: "Env", Value: "NGINX_VERSION=1.25"},
		{Name: "Label", Value: "maintainer=ops"},
		{Name: "Label", Value: "org.opencontainers.image.title=web"},
	}
	if diff := cmp.Diff(want, RuntimeConfig(info)); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestRuntimeConfigEmpty(t *testing.T) {
	got := RuntimeConfig(api.ImageInfo{})
	if len(got) != 5 {
		t.Fatalf("expected only the fixed fields, got %#v", got)
	}
	for _, field := range got {
		if field.Value != "-" {
			t.Fatalf("expected placeholder for %s, got %q", field.Name, field.Value)
		}
	}
}
