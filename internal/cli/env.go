package cli

import (
	"context"
	"io"

	"lunchpad-cli/internal/config"
	"lunchpad-cli/internal/discovery"
	"lunchpad-cli/internal/launcher"
	"lunchpad-cli/internal/logging"
	"lunchpad-cli/internal/mutate"
	"lunchpad-cli/internal/store"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// env is everything a command needs, built from the resolved config.
type env struct {
	cfg      config.Config
	log      *logrus.Logger
	layout   *store.Layout
	engine   *mutate.Engine
	scanner  *discovery.Scanner
	launcher *launcher.Launcher

	closeLog func() error
}

func (e *env) Close() error {
	if e.closeLog == nil {
		return nil
	}
	return e.closeLog()
}

// newEnv wires the collaborators without touching the saved layout. Log
// output goes to logOut; a nil logOut selects the configured log file.
func newEnv(app *App, logOut io.Writer) (*env, error) {
	cfg, err := config.Load(app.v)
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg}
	if logOut == nil {
		f, err := logging.OpenFile(cfg.LogFile)
		if err != nil {
			return nil, err
		}
		logOut = f
		e.closeLog = f.Close
	}
	e.log = logging.New(cfg.LogLevel, logOut)
	e.log.WithField("config", cfg.ConfigFile).WithField("data_dir", cfg.DataDir).Debug("configuration loaded")

	persist, err := store.Open(cfg.Storage, cfg.DataDir)
	if err != nil {
		_ = e.Close()
		return nil, err
	}
	e.layout = store.NewLayout(persist, e.log)
	e.engine = mutate.NewEngine(e.layout, mutate.WithFolderName(cfg.FolderName), mutate.WithLogger(e.log))
	e.scanner = discovery.NewScanner(e.log)
	e.launcher = launcher.New(launcher.WithLogger(e.log))
	return e, nil
}

// hydrate loads the saved layout, seeding it from discovery on first run.
func (e *env) hydrate(ctx context.Context) error {
	src, err := e.layout.Hydrate(ctx, e.scanner, e.cfg.AppDirs)
	if err != nil {
		return err
	}
	e.log.WithField("source", src).WithField("items", e.layout.Len()).Debug("layout hydrated")
	return nil
}

// loadEnv is newEnv plus hydrate, logging to the command's stderr.
func loadEnv(cmd *cobra.Command, app *App) (*env, error) {
	e, err := newEnv(app, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	if err := e.hydrate(cmd.Context()); err != nil {
		_ = e.Close()
		return nil, err
	}
	return e, nil
}
