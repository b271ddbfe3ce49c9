package browse

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const basePath = "/images"

var ErrInvalidLocation = errors.New("invalid location")

type Level int

const (
	LevelRoot Level = iota
	LevelRepository
	LevelTag
)

func (l Level) String() string {
	switch l {
	case LevelRepository:
		return "repository"
	case LevelTag:
		return "tag"
	default:
		return "root"
	}
}

// Location is the drill-down position of the image browser. A tag is only
// meaningful together with a repository.
type Location struct {
	Repository string
	Tag        string
}

func (l Location) Level() Level {
	switch {
	case l.Repository == "":
		return LevelRoot
	case l.Tag == "":
		return LevelRepository
	default:
		return LevelTag
	}
}

func (l Location) normalize() Location {
	l.Repository = strings.TrimSpace(l.Repository)
	l.Tag = strings.TrimSpace(l.Tag)
	if l.Repository == "" {
		l.Tag = ""
	}
	return l
}

// Encode renders the location as an addressable string such as
// /images?repo=nginx&tag=1.25.
func (l Location) Encode() string {
	l = l.normalize()
	if l.Repository == "" {
		return basePath
	}
	params := url.Values{}
	params.Set("repo", l.Repository)
	if l.Tag != "" {
		params.Set("tag", l.Tag)
	}
	// url.Values.Encode sorts keys, which keeps repo before tag.
	return basePath + "?" + params.Encode()
}

func (l Location) String() string {
	return l.Encode()
}

// ParseLocation decodes a full URL, a path with query or a bare query
// string. A tag without a repository decodes to the root.
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Location{}, nil
	}

	var query string
	switch {
	case strings.Contains(raw, "://") || strings.HasPrefix(raw, "/"):
		parsed, err := url.Parse(raw)
		if err != nil {
			return Location{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
		}
		if p := strings.TrimSuffix(parsed.Path, "/"); p != "" && p != basePath && !strings.HasSuffix(p, basePath) {
			return Location{}, fmt.Errorf("%w: unknown path %q", ErrInvalidLocation, parsed.Path)
		}
		query = parsed.RawQuery
	default:
		query = strings.TrimPrefix(raw, "?")
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %v", ErrInvalidLocation, err)
	}
	loc := Location{
		Repository: values.Get("repo"),
		Tag:        values.Get("tag"),
	}
	return loc.normalize(), nil
}
