package registry

import "testing"

func TestPullReference(t *testing.T) {
	tests := []struct {
		name        string
		registryURL string
		repository  string
		tag         string
		want        string
	}{
		{
			name:        "registry url host is normalized",
			registryURL: "https://registry.example.com",
			repository:  "team/service",
			tag:         "v1.2.3",
			want:        "registry.example.com/team/service:v1.2.3",
		},
		{
			name:        "port is kept",
			registryURL: "http://localhost:5000/",
			repository:  "nginx",
			tag:         "1.25",
			want:        "localhost:5000/nginx:1.25",
		},
		{
			name:        "bare host with path",
			registryURL: "registry.example.com/v2/",
			repository:  "/service/",
			tag:         "",
			want:        "registry.example.com/service:latest",
		},
		{
			name:       "no registry host",
			repository: "library/nginx",
			tag:        "alpine",
			want:       "library/nginx:alpine",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := PullReference(tc.registryURL, tc.repository, tc.tag); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestPullCommand(t *testing.T) {
	got := PullCommand("https://registry.example.com", "team/service", "v1")
	want := "docker pull registry.example.com/team/service:v1"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
