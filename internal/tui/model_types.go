package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/app"
	"github.com/scottbass3/dgui/internal/registry/history"
	"github.com/scottbass3/dgui/internal/session"
)

type Focus int

const (
	FocusRepositories Focus = iota
	FocusTags
	FocusDetail
	FocusRegistries
)

// detailView selects what the detail table lists.
type detailView int

const (
	detailViewHistory detailView = iota
	detailViewLayers
	detailViewConfig
)

var detailViews = []detailView{detailViewHistory, detailViewLayers, detailViewConfig}

func (v detailView) String() string {
	switch v {
	case detailViewLayers:
		return "Layers"
	case detailViewConfig:
		return "Config"
	default:
		return "History"
	}
}

type confirmAction int

const (
	confirmActionNone confirmAction = iota
	confirmActionQuit
	confirmActionDeleteImage
	confirmActionActivateRegistry
	confirmActionLogout
)

const (
	defaultTableHeight      = 10
	minTableHeight          = 1
	maxLogLines             = 25
	maxVisibleLogs          = 5
	maxSearchWidth          = 40
	tableChromeLines        = 2
	mainSectionTitleLines   = 1
	mainSectionBorderLines  = 2
	mainSectionHChromeChars = 4
	defaultRenderWidth      = 80
	defaultRequestTimeout   = 30 * time.Second
)

type Model struct {
	width  int
	height int

	status string
	focus  Focus

	app     *app.App
	timeout time.Duration

	authState
	confirmState
	commandState

	searchActive bool
	searchInput  textinput.Model

	repositories api.Page[[]api.RepositoryInfo]
	tags         api.Page[api.TagList]
	info         api.ImageInfo
	hasInfo      bool
	history      []history.Entry
	detailView   detailView
	registries   []api.Registry
	viewError    string

	// pending holds the mutations in flight, keyed like mutationKey.
	pending map[string]struct{}

	table        table.Model
	tableColumns []table.Column

	helpActive bool

	debug  bool
	logCh  <-chan string
	logs   []string
	logMax int

	loadingCount int
}

type authState struct {
	authRequired   bool
	authError      string
	authFocus      int
	authSubmitting bool
	usernameInput  textinput.Model
	passwordInput  textinput.Model
}

type confirmState struct {
	confirmAction  confirmAction
	confirmTitle   string
	confirmMessage string
	confirmFocus   int
	confirmTarget  confirmTarget
}

type confirmTarget struct {
	repository   string
	tag          string
	registryID   int64
	registryName string
}

type commandState struct {
	commandActive  bool
	commandInput   textinput.Model
	commandMatches []string
	commandIndex   int
	commandError   string
}

type loginMsg struct {
	user session.User
	err  error
}

type activeRegistryMsg struct {
	err error
}

type repositoriesMsg struct {
	query api.PageQuery
	page  api.Page[[]api.RepositoryInfo]
	err   error
}

type tagsMsg struct {
	repository string
	query      api.PageQuery
	page       api.Page[api.TagList]
	err        error
}

type imageInfoMsg struct {
	repository string
	tag        string
	info       api.ImageInfo
	err        error
}

type registriesMsg struct {
	registries []api.Registry
	err        error
}

type activateRegistryMsg struct {
	id       int64
	registry api.Registry
	err      error
}

type testRegistryMsg struct {
	id     int64
	name   string
	result api.ConnectionResult
	err    error
}

type deleteImageMsg struct {
	repository string
	tag        string
	err        error
}

type dockerPullMsg struct {
	reference string
	err       error
}

type helpEntry struct {
	Keys   string
	Action string
}

type commandHelp struct {
	Command string
	Usage   string
}

type logMsg string
