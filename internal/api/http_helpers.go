package api

import (
	"net/http"
	"net/url"
	"strings"
)

const redacted = "[redacted]"

func cloneHeader(header http.Header) map[string][]string {
	if len(header) == 0 {
		return nil
	}
	out := make(map[string][]string, len(header))
	for key, values := range header {
		if strings.EqualFold(key, "Authorization") {
			out[key] = []string{redacted}
			continue
		}
		copied := make([]string, len(values))
		copy(copied, values)
		out[key] = copied
	}
	return out
}

func resolveURL(base *url.URL, p string, query url.Values) string {
	if base == nil {
		parsed, err := url.Parse(p)
		if err != nil {
			return p
		}
		if query != nil {
			parsed.RawQuery = query.Encode()
		} else {
			parsed.RawQuery = ""
		}
		return parsed.String()
	}
	resolved := *base
	resolved.Path = strings.TrimSuffix(resolved.Path, "/") + p
	if query != nil {
		resolved.RawQuery = query.Encode()
	} else {
		resolved.RawQuery = ""
	}
	return resolved.String()
}
