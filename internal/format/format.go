// Package format holds the pure display helpers shared by the terminal UI and the CLI.
package format

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// Placeholder is rendered for absent values.
	Placeholder = "-"

	defaultDecimals = 2
	digestEllipsis  = "..."
	sha256Prefix    = "sha256:"
	sha256ShortLen  = 19
	digestShortLen  = 12
	dateLayout      = "2006-01-02 15:04:05"
)

var byteUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

var nopMarker = regexp.MustCompile(`#\(nop\)\s+`)

// Bytes renders n with two decimals, e.g. 1024 -> "1.00 KB".
func Bytes(n int64) string {
	return BytesPrecision(n, defaultDecimals)
}

// BytesPrecision renders n in base 1024 using the largest unit that keeps the
// scaled value at or above one. The decimal count is kept as is, trailing
// zeros included.
func BytesPrecision(n int64, decimals int) string {
	if n < 0 {
		return Placeholder
	}
	if n == 0 {
		return "0 Bytes"
	}
	if decimals < 0 {
		decimals = 0
	}
	value := float64(n)
	unit := 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}
	return strconv.FormatFloat(value, 'f', decimals, 64) + " " + byteUnits[unit]
}

// Date renders an RFC 3339 timestamp in local time. Values that do not parse
// are returned unchanged.
func Date(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return Placeholder
	}
	parsed, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return value
	}
	return Time(parsed)
}

func Time(value time.Time) string {
	if value.IsZero() {
		return Placeholder
	}
	return value.Local().Format(dateLayout)
}

// ShortenDigest keeps "sha256:" plus the first twelve hex characters of a
// sha256 digest, or the first twelve characters of anything else.
func ShortenDigest(digest string) string {
	if digest == "" {
		return Placeholder
	}
	limit := digestShortLen
	if strings.HasPrefix(digest, sha256Prefix) {
		limit = sha256ShortLen
	}
	if len(digest) > limit {
		digest = digest[:limit]
	}
	return digest + digestEllipsis
}

// DockerCommand strips the shell wrapper and the "#(nop)" marker that the
// docker builder records in image history.
func DockerCommand(command string) string {
	if command == "" {
		return ""
	}
	command = strings.TrimPrefix(command, "/bin/sh -c ")
	if loc := nopMarker.FindStringIndex(command); loc != nil {
		command = command[:loc[0]] + command[loc[1]:]
	}
	return strings.TrimSpace(command)
}

func Count(value int) string {
	if value < 0 {
		return Placeholder
	}
	return strconv.Itoa(value)
}

func FirstNonEmpty(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return value
}
