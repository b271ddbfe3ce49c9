package main

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/api/apitest"
	"github.com/scottbass3/dgui/internal/app"
)

type testEnv struct {
	backend     *apitest.Backend
	sessionFile string
	configFile  string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	return testEnv{
		backend:     apitest.New(t),
		sessionFile: filepath.Join(dir, "session.json"),
		configFile:  filepath.Join(dir, "config.yaml"),
	}
}

// run executes one dgui invocation and returns its stdout.
func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := newCLI()
	c.appOptions = []app.Option{app.WithRetryDelay(0)}
	root := newRootCmd(c)

	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{
		"--config", e.configFile,
		"--server", e.backend.URL(),
		"--session-file", e.sessionFile,
	}, args...))

	err := root.Execute()
	return stdout.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	require.NoError(t, err, "dgui %s", strings.Join(args, " "))
	return out
}

func (e testEnv) login(t *testing.T) {
	t.Helper()
	out := e.mustRun(t, "login", "-u", apitest.Username, "-p", apitest.Password)
	require.Contains(t, out, "Logged in as admin")
}

func TestLoginAndBrowse(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.login(t)

	out := env.mustRun(t, "whoami")
	assert.Contains(t, out, apitest.Username)
	assert.Contains(t, out, env.backend.URL())

	out = env.mustRun(t, "repos")
	assert.Contains(t, out, "alpine")
	assert.Contains(t, out, "Page 1/1 · 20 per page · 1 total")

	out = env.mustRun(t, "tags", "alpine")
	assert.Contains(t, out, "localhost:5000/alpine:3.19")
	assert.Contains(t, out, "localhost:5000/alpine:latest")

	out = env.mustRun(t, "inspect", "alpine", "latest")
	assert.Contains(t, out, "docker pull localhost:5000/alpine:latest")
	assert.Contains(t, out, "linux/amd64")
	assert.Contains(t, out, "apk add nginx")
	assert.Contains(t, out, "sha256:aaaaaaaaaaaa...")
	assert.Contains(t, out, "application/vnd.docker.image.rootfs.diff.tar.gzip")
	assert.Contains(t, out, "PATH=/usr/local/bin:/usr/bin")
	assert.Contains(t, out, "nginx -g daemon off;")
	assert.Contains(t, out, apitest.Digest("alpine", "latest"))

	out = env.mustRun(t, "rm", "alpine", "3.19")
	assert.Contains(t, out, "Deleted alpine:3.19")

	out = env.mustRun(t, "tags", "alpine")
	assert.NotContains(t, out, "alpine:3.19")
	assert.Equal(t, 1, env.backend.Hits("DELETE /images/delete"))
}

func TestPageBeyondLastIsClamped(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.login(t)

	out := env.mustRun(t, "repos", "--page", "9")
	assert.Contains(t, out, "alpine")
	assert.Contains(t, out, "Page 1/1 · 20 per page · 1 total")

	tags := make([]string, 25)
	for i := range tags {
		tags[i] = fmt.Sprintf("v%02d", i)
	}
	env.backend.SetTags(1, "alpine", tags...)

	out = env.mustRun(t, "tags", "alpine", "--page", "7")
	assert.Contains(t, out, "alpine:v24")
	assert.NotContains(t, out, "alpine:v00")
	assert.Contains(t, out, "Page 2/2 · 20 per page · 25 total")
}

func TestLoginPromptsForCredentials(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	out, err := env.run(t, apitest.Username+"\n"+apitest.Password+"\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin")

	out = env.mustRun(t, "catalog")
	assert.Equal(t, "alpine\n", out)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.run(t, "", "login", "-u", apitest.Username, "-p", "wrong")
	require.Error(t, err)
	assert.True(t, api.IsAuth(err), "expected auth error, got %v", err)

	_, err = env.run(t, "", "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestCommandsRequireSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	for _, args := range [][]string{
		{"repos"},
		{"tags", "alpine"},
		{"registries", "list"},
		{"rm", "alpine", "latest"},
	} {
		_, err := env.run(t, "", args...)
		assert.ErrorIs(t, err, errNotLoggedIn, "dgui %s", strings.Join(args, " "))
	}
	assert.Zero(t, env.backend.Hits("GET /images/repositories"))
}

func TestLogoutEndsSession(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.login(t)

	out := env.mustRun(t, "logout")
	assert.Contains(t, out, "Logged out")

	_, err := env.run(t, "", "repos")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestRegistriesLifecycle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.login(t)

	out := env.mustRun(t, "registries", "list")
	assert.Contains(t, out, "local")
	assert.Contains(t, out, "https://mirror.example.com")

	out = env.mustRun(t, "registries", "add", "--name", "staging", "--url", "https://staging.example.com")
	assert.Contains(t, out, "Added registry 3 (staging)")

	out = env.mustRun(t, "registries", "edit", "3", "--username", "bot")
	assert.Contains(t, out, "Updated registry 3 (staging)")

	out = env.mustRun(t, "registries", "use", "2")
	assert.Contains(t, out, "Active registry: mirror (https://mirror.example.com)")

	out = env.mustRun(t, "repos")
	assert.Contains(t, out, "nginx")
	assert.Contains(t, out, "redis")

	out = env.mustRun(t, "registries", "test", "2")
	assert.Contains(t, out, "Connection successful")

	out = env.mustRun(t, "registries", "rm", "3")
	assert.Contains(t, out, "Removed registry 3")

	_, err := env.run(t, "", "registries", "rm", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot delete the active registry")
}

func TestRegistryTestReportsUnreachable(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.login(t)
	env.mustRun(t, "registries", "add", "--name", "down", "--url", "https://unreachable.example.com")

	_, err := env.run(t, "", "registries", "test", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected: connection refused")
}

func TestRegistryIDValidation(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	_, err := env.run(t, "", "registries", "use", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid registry id "abc"`)
}

func TestFormatRequestLog(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		log  api.RequestLog
		want string
	}{
		{
			name: "method and url only",
			log:  api.RequestLog{Method: "GET", URL: "http://localhost:5008/api/registries"},
			want: "GET http://localhost:5008/api/registries",
		},
		{
			name: "status duration and sorted headers",
			log: api.RequestLog{
				Method:   "DELETE",
				URL:      "http://localhost:5008/api/images/delete?ref=1.0&repo=app",
				Status:   200,
				Duration: 1500 * time.Microsecond,
				Headers: map[string][]string{
					"X-Request-Id":  {"abc"},
					"Authorization": {"[redacted]"},
				},
			},
			want: "DELETE http://localhost:5008/api/images/delete?ref=1.0&repo=app -> 200 (2ms) | Authorization: [redacted]; X-Request-Id: abc",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, formatRequestLog(tc.log))
		})
	}
}

func TestMakeRequestLoggerDropsWhenFull(t *testing.T) {
	t.Parallel()
	ch := make(chan string, 1)
	logger := makeRequestLogger(ch)

	logger(api.RequestLog{Method: "GET", URL: "/first"})
	logger(api.RequestLog{Method: "GET", URL: "/second"})

	require.Len(t, ch, 1)
	assert.Equal(t, "GET /first", <-ch)
}
