package browse

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{}, "/images"},
		{Location{Repository: "nginx"}, "/images?repo=nginx"},
		{Location{Repository: "nginx", Tag: "1.25"}, "/images?repo=nginx&tag=1.25"},
		{Location{Repository: "library/nginx", Tag: "v1+build"}, "/images?repo=library%2Fnginx&tag=v1%2Bbuild"},
		{Location{Tag: "orphan"}, "/images"},
	}
	for _, tt := range tests {
		if got := tt.loc.Encode(); got != tt.want {
			t.Fatalf("expected %q, got %q", tt.want, got)
		}
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw  string
		want Location
	}{
		{"", Location{}},
		{"/images", Location{}},
		{"/images?repo=nginx", Location{Repository: "nginx"}},
		{"/images?repo=nginx&tag=1.25", Location{Repository: "nginx", Tag: "1.25"}},
		{"/images?tag=1.25&repo=nginx", Location{Repository: "nginx", Tag: "1.25"}},
		{"http://localhost:5173/images?repo=library%2Fnginx&tag=latest", Location{Repository: "library/nginx", Tag: "latest"}},
		{"?repo=redis", Location{Repository: "redis"}},
		{"repo=redis&tag=7", Location{Repository: "redis", Tag: "7"}},
		{"/images?tag=latest", Location{}},
		{"/images?repo=&tag=latest", Location{}},
	}
	for _, tt := range tests {
		got, err := ParseLocation(tt.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tt.raw, err)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("parse %q mismatch (-want +got):\n%s", tt.raw, diff)
		}
	}
}

func TestParseLocationErrors(t *testing.T) {
	for _, raw := range []string{"/registries?repo=nginx", "/images?repo=%zz"} {
		if _, err := ParseLocation(raw); !errors.Is(err, ErrInvalidLocation) {
			t.Fatalf("parse %q: expected ErrInvalidLocation, got %v", raw, err)
		}
	}
}

func TestLocationRoundTrip(t *testing.T) {
	for _, loc := range []Location{
		{},
		{Repository: "nginx"},
		{Repository: "team/app", Tag: "2024-01-01"},
	} {
		got, err := ParseLocation(loc.Encode())
		if err != nil {
			t.Fatalf("parse %q: %v", loc.Encode(), err)
		}
		if got != loc {
			t.Fatalf("expected %+v, got %+v", loc, got)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		loc  Location
		want Level
	}{
		{Location{}, LevelRoot},
		{Location{Repository: "nginx"}, LevelRepository},
		{Location{Repository: "nginx", Tag: "latest"}, LevelTag},
	}
	for _, tt := range tests {
		if got := tt.loc.Level(); got != tt.want {
			t.Fatalf("expected %s, got %s", tt.want, got)
		}
	}
}
