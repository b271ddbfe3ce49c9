// Package apitest runs an in-memory registry-management backend for tests.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/session"
)

const (
	Username = "admin"
	Password = "admin123"
	Token    = "test-token"
)

// Backend is a fake of the dgui backend. Every registry owns its own set of
// repositories; reads are scoped to the active one.
type Backend struct {
	Server *httptest.Server

	mu         sync.Mutex
	token      string
	expiresAt  int64
	registries []api.Registry
	images     map[int64]map[string][]string
	nextID     int64
	hits       map[string]int
	failures   map[string][]int
	delay      map[string]time.Duration
}

// New starts a backend with two registries; registry 1 is active.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		token:     Token,
		expiresAt: time.Now().Add(24 * time.Hour).Unix(),
		registries: []api.Registry{
			{ID: 1, Name: "local", URL: "http://localhost:5000", IsActive: true, IsDefault: true},
			{ID: 2, Name: "mirror", URL: "https://mirror.example.com"},
		},
		images: map[int64]map[string][]string{
			1: {"alpine": {"3.19", "latest"}},
			2: {
				"nginx": {"latest", "1.25", "1.24"},
				"redis": {"7"},
			},
		},
		nextID:   3,
		hits:     make(map[string]int),
		failures: make(map[string][]int),
		delay:    make(map[string]time.Duration),
	}
	b.Server = httptest.NewUnstartedServer(b.routes())
	b.Server.Config.SetKeepAlivesEnabled(false)
	b.Server.Start()
	t.Cleanup(b.Server.Close)
	return b
}

// URL is the API base address clients are configured with.
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

func (b *Backend) ExpiresAt() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.expiresAt
}

// Hits returns how many requests reached path, e.g. "GET /images/tags".
func (b *Backend) Hits(route string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[route]
}

// FailNext makes the next len(statuses) requests to route answer with the
// given statuses.
func (b *Backend) FailNext(route string, statuses ...int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[route] = append(b.failures[route], statuses...)
}

// Delay holds every request to route for d before answering.
func (b *Backend) Delay(route string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delay[route] = d
}

// RevokeToken invalidates the issued token so the next call answers 401.
func (b *Backend) RevokeToken() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.token = "revoked-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

// SetTags replaces the tags of repository in registry id.
func (b *Backend) SetTags(id int64, repository string, tags ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.images[id] == nil {
		b.images[id] = make(map[string][]string)
	}
	b.images[id][repository] = append([]string(nil), tags...)
}

func (b *Backend) routes() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, authenticated bool, fn func(http.ResponseWriter, *http.Request)) {
		route := pattern
		mux.HandleFunc(strings.Replace(pattern, " ", " /api", 1), func(w http.ResponseWriter, r *http.Request) {
			if b.intercept(w, route) {
				return
			}
			if authenticated && !b.authorized(r) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
				return
			}
			fn(w, r)
		})
	}

	handle("POST /login", false, b.login)
	handle("GET /user/me", true, b.currentUser)
	handle("POST /user/password", true, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"message": "password changed"})
	})
	handle("GET /registries", true, b.listRegistries)
	handle("POST /registries", true, b.createRegistry)
	handle("PUT /registries", true, b.updateRegistry)
	handle("DELETE /registries", true, b.deleteRegistry)
	handle("GET /registries/active", true, b.activeRegistry)
	handle("GET /registries/detail", true, b.registryDetail)
	handle("POST /registries/activate", true, b.activateRegistry)
	handle("GET /registries/test", true, b.testRegistry)
	handle("GET /images/catalog", true, b.catalog)
	handle("GET /images/repositories", true, b.repositories)
	handle("GET /images/tags", true, b.tags)
	handle("GET /images/manifest", true, b.manifest)
	handle("GET /images/info", true, b.info)
	handle("DELETE /images/delete", true, b.deleteImage)
	return mux
}

func (b *Backend) intercept(w http.ResponseWriter, route string) bool {
	b.mu.Lock()
	b.hits[route]++
	delay := b.delay[route]
	status := 0
	if queued := b.failures[route]; len(queued) > 0 {
		status = queued[0]
		b.failures[route] = queued[1:]
	}
	b.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if status == 0 {
		return false
	}
	writeJSON(w, status, map[string]string{"error": http.StatusText(status)})
	return true
}

func (b *Backend) authorized(r *http.Request) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return r.Header.Get("Authorization") == "Bearer "+b.token
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	if req.Username != Username || req.Password != Password {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		return
	}
	b.mu.Lock()
	b.token = Token
	resp := api.LoginResponse{
		Token:     b.token,
		ExpiresAt: b.expiresAt,
		User:      session.User{ID: 1, Username: Username, IsAdmin: true},
	}
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, resp)
}

func (b *Backend) currentUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, session.User{ID: 1, Username: Username, IsAdmin: true})
}

func (b *Backend) listRegistries(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	out := append([]api.Registry(nil), b.registries...)
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) createRegistry(w http.ResponseWriter, r *http.Request) {
	var req api.RegistryCreate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and url are required"})
		return
	}
	b.mu.Lock()
	for _, existing := range b.registries {
		if existing.Name == req.Name {
			b.mu.Unlock()
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "registry name already exists"})
			return
		}
	}
	registry := api.Registry{ID: b.nextID, Name: req.Name, URL: req.URL, Username: req.Username}
	b.nextID++
	b.registries = append(b.registries, registry)
	b.mu.Unlock()
	writeJSON(w, http.StatusCreated, registry)
}

func (b *Backend) updateRegistry(w http.ResponseWriter, r *http.Request) {
	var req api.RegistryUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	b.withRegistry(w, r, func(registry *api.Registry) {
		if req.Name != "" {
			registry.Name = req.Name
		}
		if req.URL != "" {
			registry.URL = req.URL
		}
		if req.Username != "" {
			registry.Username = req.Username
		}
		writeJSON(w, http.StatusOK, *registry)
	})
}

func (b *Backend) deleteRegistry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, registry := range b.registries {
		if registry.ID != id {
			continue
		}
		if registry.IsActive {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "cannot delete the active registry"})
			return
		}
		b.registries = append(b.registries[:i], b.registries[i+1:]...)
		writeJSON(w, http.StatusOK, map[string]string{"message": "registry deleted"})
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "registry not found"})
}

func (b *Backend) activeRegistry(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, registry := range b.registries {
		if registry.IsActive {
			writeJSON(w, http.StatusOK, registry)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active registry"})
}

func (b *Backend) registryDetail(w http.ResponseWriter, r *http.Request) {
	b.withRegistry(w, r, func(registry *api.Registry) {
		writeJSON(w, http.StatusOK, *registry)
	})
}

func (b *Backend) activateRegistry(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	index := -1
	for i := range b.registries {
		if b.registries[i].ID == id {
			index = i
		}
	}
	if index < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "registry not found"})
		return
	}
	for i := range b.registries {
		b.registries[i].IsActive = i == index
	}
	writeJSON(w, http.StatusOK, b.registries[index])
}

func (b *Backend) testRegistry(w http.ResponseWriter, r *http.Request) {
	b.withRegistry(w, r, func(registry *api.Registry) {
		if strings.Contains(registry.URL, "unreachable") {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "connection refused", "connected": false})
			return
		}
		writeJSON(w, http.StatusOK, api.ConnectionResult{Connected: true, Message: "Connection successful"})
	})
}

func (b *Backend) withRegistry(w http.ResponseWriter, r *http.Request, fn func(*api.Registry)) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.registries {
		if b.registries[i].ID == id {
			fn(&b.registries[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "registry not found"})
}

func (b *Backend) activeImages() map[string][]string {
	for _, registry := range b.registries {
		if registry.IsActive {
			return b.images[registry.ID]
		}
	}
	return nil
}

func (b *Backend) catalog(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	repos := sortedKeys(b.activeImages())
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, api.Catalog{Repositories: repos})
}

func (b *Backend) repositories(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)
	search := strings.ToLower(r.URL.Query().Get("search"))

	b.mu.Lock()
	images := b.activeImages()
	var matched []api.RepositoryInfo
	for _, name := range sortedKeys(images) {
		if search != "" && !strings.Contains(strings.ToLower(name), search) {
			continue
		}
		tags := images[name]
		matched = append(matched, api.RepositoryInfo{Name: name, Tags: append([]string(nil), tags...), TagCount: len(tags)})
	}
	b.mu.Unlock()

	data, total, totalPages := paginate(matched, page, pageSize)
	writeJSON(w, http.StatusOK, api.Page[[]api.RepositoryInfo]{
		Data: data, Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages,
	})
}

func (b *Backend) tags(w http.ResponseWriter, r *http.Request) {
	repo := r.URL.Query().Get("repo")
	if repo == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "repo parameter is required"})
		return
	}
	page, pageSize := pagination(r)
	search := strings.ToLower(r.URL.Query().Get("search"))

	b.mu.Lock()
	all, ok := b.activeImages()[repo]
	var matched []string
	for _, tag := range all {
		if search == "" || strings.Contains(strings.ToLower(tag), search) {
			matched = append(matched, tag)
		}
	}
	b.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "repository not found"})
		return
	}

	data, total, totalPages := paginate(matched, page, pageSize)
	writeJSON(w, http.StatusOK, api.Page[api.TagList]{
		Data:  api.TagList{Name: repo, Tags: data},
		Total: total, Page: page, PageSize: pageSize, TotalPages: totalPages,
	})
}

func (b *Backend) manifest(w http.ResponseWriter, r *http.Request) {
	repo, ref := r.URL.Query().Get("repo"), r.URL.Query().Get("ref")
	if !b.hasTag(repo, ref) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "manifest unknown"})
		return
	}
	writeJSON(w, http.StatusOK, Manifest(repo, ref))
}

func (b *Backend) info(w http.ResponseWriter, r *http.Request) {
	repo, tag := r.URL.Query().Get("repo"), r.URL.Query().Get("tag")
	if !b.hasTag(repo, tag) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "manifest unknown"})
		return
	}
	writeJSON(w, http.StatusOK, Info(repo, tag))
}

func (b *Backend) deleteImage(w http.ResponseWriter, r *http.Request) {
	repo, ref := r.URL.Query().Get("repo"), r.URL.Query().Get("ref")
	b.mu.Lock()
	defer b.mu.Unlock()
	images := b.activeImages()
	tags := images[repo]
	for i, tag := range tags {
		if tag == ref {
			images[repo] = append(tags[:i:i], tags[i+1:]...)
			writeJSON(w, http.StatusOK, map[string]string{"message": "image deleted"})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "manifest unknown"})
}

func (b *Backend) hasTag(repo, tag string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, existing := range b.activeImages()[repo] {
		if existing == tag {
			return true
		}
	}
	return false
}

// Manifest is the manifest served for every tag.
func Manifest(repo, tag string) api.ImageManifest {
	return api.ImageManifest{
		SchemaVersion: 2,
		MediaType:     "application/vnd.docker.distribution.manifest.v2+json",
		Config: api.Descriptor{
			MediaType: "application/vnd.docker.container.image.v1+json",
			Size:      1470,
			Digest:    "sha256:" + strings.Repeat("c", 64),
		},
		Layers: []api.Descriptor{
			{MediaType: "application/vnd.docker.image.rootfs.diff.tar.gzip", Size: 3 << 20, Digest: "sha256:" + strings.Repeat("a", 64)},
			{MediaType: "application/vnd.docker.image.rootfs.diff.tar.gzip", Size: 1536, Digest: "sha256:" + strings.Repeat("b", 64)},
		},
		Digest:    Digest(repo, tag),
		TotalSize: 3<<20 + 1536,
	}
}

// Info is the image info served for every tag.
func Info(repo, tag string) api.ImageInfo {
	manifest := Manifest(repo, tag)
	return api.ImageInfo{
		Repository: repo,
		Tag:        tag,
		Digest:     manifest.Digest,
		Manifest:   manifest,
		Config: api.ImageConfig{
			Architecture: "amd64",
			OS:           "linux",
			Created:      "2024-03-01T10:00:00Z",
			Config: api.ContainerConfig{
				Env:        []string{"PATH=/usr/local/bin:/usr/bin"},
				Cmd:        []string{"nginx", "-g", "daemon off;"},
				WorkingDir: "/",
			},
			History: []api.HistoryEntry{
				{Created: "2024-03-01T09:00:00Z", CreatedBy: "/bin/sh -c #(nop) ADD file:abc in / "},
				{Created: "2024-03-01T09:30:00Z", CreatedBy: "/bin/sh -c #(nop)  CMD [\"sh\"]", EmptyLayer: true},
				{Created: "2024-03-01T10:00:00Z", CreatedBy: "/bin/sh -c apk add nginx"},
			},
			RootFS: api.RootFS{Type: "layers", DiffIDs: []string{"sha256:" + strings.Repeat("d", 64), "sha256:" + strings.Repeat("e", 64)}},
		},
		TotalSize:  manifest.TotalSize,
		LayerCount: len(manifest.Layers),
	}
}

// Digest is the manifest digest served for repo:tag.
func Digest(repo, tag string) string {
	sum := 0
	for _, r := range repo + ":" + tag {
		sum = sum*31 + int(r)
	}
	return fmt.Sprintf("sha256:%064x", uint32(sum))
}

func pagination(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func paginate[T any](items []T, page, pageSize int) ([]T, int, int) {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, total, totalPages
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], total, totalPages
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.URL.Query().Get("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
