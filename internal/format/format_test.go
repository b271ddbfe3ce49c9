package format

import (
	"strings"
	"testing"
	"time"
)

func TestBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		decimals int
		want     string
	}{
		{name: "zero", bytes: 0, decimals: 2, want: "0 Bytes"},
		{name: "bytes keep precision", bytes: 512, decimals: 2, want: "512.00 Bytes"},
		{name: "one kilobyte", bytes: 1024, decimals: 2, want: "1.00 KB"},
		{name: "one decimal", bytes: 1536, decimals: 1, want: "1.5 KB"},
		{name: "negative decimals clamp to zero", bytes: 1536, decimals: -3, want: "2 KB"},
		{name: "megabytes", bytes: 5 * 1024 * 1024, decimals: 2, want: "5.00 MB"},
		{name: "gigabytes", bytes: 3 * 1024 * 1024 * 1024, decimals: 0, want: "3 GB"},
		{name: "terabyte is the largest unit", bytes: 2048 * 1024 * 1024 * 1024 * 1024, decimals: 2, want: "2048.00 TB"},
		{name: "negative input", bytes: -1, decimals: 2, want: "-"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := BytesPrecision(tc.bytes, tc.decimals); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if got := Bytes(1024); got != "1.00 KB" {
		t.Fatalf("expected default precision of two decimals, got %q", got)
	}
}

func TestDate(t *testing.T) {
	if got := Date(""); got != "-" {
		t.Fatalf("expected placeholder for empty input, got %q", got)
	}
	if got := Date("not a date"); got != "not a date" {
		t.Fatalf("expected unparsable input unchanged, got %q", got)
	}

	value := "2024-03-01T10:20:30.123456789Z"
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := parsed.Local().Format("2006-01-02 15:04:05")
	if got := Date(value); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestShortenDigest(t *testing.T) {
	sha := "sha256:" + strings.Repeat("ab", 32)
	got := ShortenDigest(sha)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
	if prefix := strings.TrimSuffix(got, "..."); len(prefix) != 19 || prefix != sha[:19] {
		t.Fatalf("expected first 19 characters, got %q", prefix)
	}

	if got := ShortenDigest("0123456789abcdef"); got != "0123456789ab..." {
		t.Fatalf("unexpected short form for plain digest: %q", got)
	}
	if got := ShortenDigest("abc"); got != "abc..." {
		t.Fatalf("expected short input to be kept, got %q", got)
	}
	if got := ShortenDigest(""); got != "-" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}

func TestDockerCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "/bin/sh -c #(nop) COPY file", want: "COPY file"},
		{in: "/bin/sh -c #(nop)  CMD [\"nginx\"]", want: "CMD [\"nginx\"]"},
		{in: "/bin/sh -c apt-get update ", want: "apt-get update"},
		{in: "RUN /bin/sh -c echo", want: "RUN /bin/sh -c echo"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		if got := DockerCommand(tc.in); got != tc.want {
			t.Fatalf("DockerCommand(%q): expected %q, got %q", tc.in, tc.want, got)
		}
	}
}

func TestCount(t *testing.T) {
	if got := Count(-1); got != "-" {
		t.Fatalf("expected placeholder, got %q", got)
	}
	if got := Count(12); got != "12" {
		t.Fatalf("expected 12, got %q", got)
	}
}
