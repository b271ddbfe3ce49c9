package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/scottbass3/dgui/internal/api"
)

const logFileName = "dgui.log"

func logFilePath() (string, error) {
	return xdg.StateFile(filepath.Join("dgui", logFileName))
}

// makeRequestLogger feeds formatted request lines to ch, dropping lines when
// the reader falls behind.
func makeRequestLogger(ch chan<- string) api.RequestLogger {
	return func(log api.RequestLog) {
		entry := formatRequestLog(log)
		select {
		case ch <- entry:
		default:
		}
	}
}

func formatRequestLog(log api.RequestLog) string {
	var b strings.Builder
	b.WriteString(log.Method)
	b.WriteString(" ")
	b.WriteString(log.URL)
	if log.Status > 0 {
		b.WriteString(" -> ")
		b.WriteString(fmt.Sprintf("%d", log.Status))
	}
	if log.Duration > 0 {
		b.WriteString(" (")
		b.WriteString(log.Duration.Round(time.Millisecond).String())
		b.WriteString(")")
	}
	if len(log.Headers) == 0 {
		return b.String()
	}

	b.WriteString(" | ")
	keys := make([]string, 0, len(log.Headers))
	for key := range log.Headers {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for i, key := range keys {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.Join(log.Headers[key], ","))
	}
	return b.String()
}
