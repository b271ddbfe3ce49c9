package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/scottbass3/dgui/internal/api"
	"github.com/scottbass3/dgui/internal/app"
	"github.com/scottbass3/dgui/internal/config"
	"github.com/scottbass3/dgui/internal/tui"
)

const requestLogBuffer = 256

var errNotLoggedIn = errors.New("not logged in: run dgui login first")

// cli carries the state shared by every command of one invocation.
type cli struct {
	loader     *config.Loader
	configPath string
	cfg        config.Config

	// appOptions are appended to every app built by this invocation.
	appOptions []app.Option
}

func newCLI() *cli {
	return &cli{loader: config.NewLoader()}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "dgui",
		Short:         "Browse and manage container registries from the terminal",
		Long:          "dgui talks to a registry management backend. Without a subcommand it starts the interactive browser.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runTUI()
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "Path to config file (defaults to $XDG_CONFIG_HOME/dgui/config.yaml)")
	flags.String("server", "", "Backend API base URL (e.g. http://localhost:5008/api)")
	flags.Bool("debug", false, "Log requests (request pane in the browser, debug logs on stderr otherwise)")
	flags.String("location", "", "Start location, e.g. /images?repo=nginx&tag=latest")
	flags.String("session-file", "", "Path of the saved session")

	root.AddCommand(
		newLoginCmd(c),
		newLogoutCmd(c),
		newWhoamiCmd(c),
		newPasswdCmd(c),
		newRegistriesCmd(c),
		newCatalogCmd(c),
		newReposCmd(c),
		newTagsCmd(c),
		newInspectCmd(c),
		newRmCmd(c),
	)
	return root
}

// setup binds the persistent flags over the configuration and loads it. The
// default config file is created the first time the browser starts.
func (c *cli) setup(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	bindings := map[string]string{
		config.KeyServer:      "server",
		config.KeyDebug:       "debug",
		config.KeyLocation:    "location",
		config.KeySessionFile: "session-file",
	}
	for key, name := range bindings {
		if err := c.loader.BindFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	if cmd == cmd.Root() && c.configPath == "" {
		if _, err := config.Ensure(""); err != nil {
			return fmt.Errorf("create default config: %w", err)
		}
	}
	cfg, err := c.loader.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *cli) newApp(logger *slog.Logger, requestLogger api.RequestLogger) (*app.App, error) {
	opts := []app.Option{app.WithLogger(logger), app.WithRequestLogger(requestLogger)}
	opts = append(opts, c.appOptions...)
	return app.New(c.cfg, opts...)
}

// openApp builds the app for a subcommand, logging to stderr. With --debug
// the API client logs every request at debug level.
func (c *cli) openApp(cmd *cobra.Command) (*app.App, error) {
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: c.cfg.Level()}))
	return c.newApp(logger, nil)
}

// openSession is openApp for commands that need a logged in user.
func (c *cli) openSession(cmd *cobra.Command) (*app.App, error) {
	a, err := c.openApp(cmd)
	if err != nil {
		return nil, err
	}
	if err := a.RequireSession(); err != nil {
		return nil, errNotLoggedIn
	}
	return a, nil
}

// runTUI starts the browser. Logs go to a file since the terminal belongs to
// the UI; request lines reach the debug pane through a buffered channel.
func (c *cli) runTUI() error {
	logFile, err := openLogFile()
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{Level: c.cfg.Level()}))

	var logCh chan string
	var requestLogger api.RequestLogger
	if c.cfg.Debug {
		logCh = make(chan string, requestLogBuffer)
		requestLogger = makeRequestLogger(logCh)
	}

	a, err := c.newApp(logger, requestLogger)
	if err != nil {
		return err
	}
	logger.Info("starting browser", "server", a.API.BaseURL(), "config", c.cfg.Path)

	program := tea.NewProgram(tui.NewModel(a, c.cfg.Debug, logCh), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

func openLogFile() (*os.File, error) {
	path, err := logFilePath()
	if err != nil {
		return nil, fmt.Errorf("resolve log file: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
