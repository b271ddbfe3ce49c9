package api

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/scottbass3/dgui/internal/session"
)

const DefaultPageSize = 20

// AllowedPageSizes lists the page sizes the backend and the pagers agree on.
var AllowedPageSizes = []int{10, 20, 50, 100}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt int64        `json:"expires_at"`
	User      session.User `json:"user"`
}

type Registry struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Username  string    `json:"username"`
	IsActive  bool      `json:"is_active"`
	IsDefault bool      `json:"is_default"`
}

type RegistryCreate struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

// RegistryUpdate carries a partial update; empty fields are left untouched
// by the backend.
type RegistryUpdate struct {
	Name     string `json:"name,omitempty"`
	URL      string `json:"url,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

type ConnectionResult struct {
	Connected bool   `json:"connected"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

type Catalog struct {
	Repositories []string `json:"repositories"`
}

type RepositoryInfo struct {
	Name     string   `json:"name"`
	Tags     []string `json:"tags"`
	TagCount int      `json:"tag_count"`
}

type TagList struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

// Page is one page of a paginated listing.
type Page[T any] struct {
	Data       T   `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
}

type Descriptor struct {
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
	Digest    string `json:"digest"`
}

type ImageManifest struct {
	SchemaVersion int          `json:"schemaVersion"`
	MediaType     string       `json:"mediaType"`
	Config        Descriptor   `json:"config"`
	Layers        []Descriptor `json:"layers"`
	Digest        string       `json:"digest"`
	TotalSize     int64        `json:"totalSize"`
}

type ContainerConfig struct {
	Hostname     string              `json:"Hostname"`
	User         string              `json:"User"`
	ExposedPorts map[string]struct{} `json:"ExposedPorts"`
	Env          []string            `json:"Env"`
	Cmd          []string            `json:"Cmd"`
	WorkingDir   string              `json:"WorkingDir"`
	Entrypoint   []string            `json:"Entrypoint"`
	Labels       map[string]string   `json:"Labels"`
}

type HistoryEntry struct {
	Created    string `json:"created"`
	CreatedBy  string `json:"created_by"`
	EmptyLayer bool   `json:"empty_layer"`
	Comment    string `json:"comment"`
}

type RootFS struct {
	Type    string   `json:"type"`
	DiffIDs []string `json:"diff_ids"`
}

type ImageConfig struct {
	Architecture  string          `json:"architecture"`
	OS            string          `json:"os"`
	Created       string          `json:"created"`
	Author        string          `json:"author"`
	DockerVersion string          `json:"docker_version"`
	Config        ContainerConfig `json:"config"`
	History       []HistoryEntry  `json:"history"`
	RootFS        RootFS          `json:"rootfs"`
}

// ImageInfo is a snapshot of one tag at fetch time.
type ImageInfo struct {
	Repository string        `json:"name"`
	Tag        string        `json:"tag"`
	Digest     string        `json:"digest"`
	Manifest   ImageManifest `json:"manifest"`
	Config     ImageConfig   `json:"config"`
	TotalSize  int64         `json:"total_size"`
	LayerCount int           `json:"layer_count"`
}

// PageQuery selects one page of a listing. Search doubles as the tag filter
// for tag listings.
type PageQuery struct {
	Page     int
	PageSize int
	Search   string
}

// Normalize clamps the page to at least one and replaces page sizes outside
// AllowedPageSizes with DefaultPageSize.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if !IsAllowedPageSize(q.PageSize) {
		q.PageSize = DefaultPageSize
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func (q PageQuery) values() url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("page_size", strconv.Itoa(q.PageSize))
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	return values
}

func IsAllowedPageSize(size int) bool {
	for _, allowed := range AllowedPageSizes {
		if size == allowed {
			return true
		}
	}
	return false
}
