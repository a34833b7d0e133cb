package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"lunchpad-cli/internal/discovery"

	"github.com/sirupsen/logrus"
)

// RunFunc starts a process and returns without waiting for it to exit.
type RunFunc func(ctx context.Context, name string, args ...string) error

// Launcher opens applications the way the host desktop expects.
type Launcher struct {
	goos string
	run  RunFunc
	log  logrus.FieldLogger
}

type Option func(*Launcher)

// WithRunner replaces the process starter.
func WithRunner(run RunFunc) Option {
	return func(l *Launcher) {
		if run != nil {
			l.run = run
		}
	}
}

// WithGOOS launches with the conventions of goos instead of the host's.
func WithGOOS(goos string) Option {
	return func(l *Launcher) { l.goos = goos }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(l *Launcher) {
		if log != nil {
			l.log = log.WithField("component", "launcher")
		}
	}
}

func New(opts ...Option) *Launcher {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	l := &Launcher{goos: runtime.GOOS, run: startDetached, log: discard}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open launches the application at path.
func (l *Launcher) Open(ctx context.Context, path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("empty application path")
	}
	name, args, err := l.command(path)
	if err != nil {
		return err
	}
	l.log.WithField("path", path).WithField("cmd", name).Debug("launching application")
	if err := l.run(ctx, name, args...); err != nil {
		return fmt.Errorf("launch %s: %w", filepath.Base(path), err)
	}
	return nil
}

func (l *Launcher) command(path string) (string, []string, error) {
	switch l.goos {
	case "darwin":
		return "open", []string{path}, nil
	case "windows":
		return "cmd", []string{"/C", "start", "", path}, nil
	default:
		if strings.HasSuffix(path, ".desktop") {
			entry, err := discovery.ReadDesktopFile(path)
			if err != nil {
				return "", nil, fmt.Errorf("read desktop entry: %w", err)
			}
			argv := ExecArgs(entry.Exec)
			if len(argv) == 0 {
				return "", nil, fmt.Errorf("desktop entry %s has no Exec command", filepath.Base(path))
			}
			return argv[0], argv[1:], nil
		}
		return "xdg-open", []string{path}, nil
	}
}

func startDetached(_ context.Context, name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
