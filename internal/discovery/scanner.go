package discovery

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"lunchpad-cli/internal/model"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Scanner lists installed applications. Every scan mints fresh ids and does
// not deduplicate across directories.
type Scanner struct {
	goos string
	log  logrus.FieldLogger
}

func NewScanner(log logrus.FieldLogger) *Scanner {
	return NewScannerFor(runtime.GOOS, log)
}

// NewScannerFor scans using the conventions of goos rather than the host's.
func NewScannerFor(goos string, log logrus.FieldLogger) *Scanner {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Scanner{goos: goos, log: log.WithField("component", "discovery")}
}

// Scan reads every directory concurrently and returns the applications
// sorted by lower-cased name. Missing or unreadable directories are skipped.
func (s *Scanner) Scan(ctx context.Context, dirs []string) ([]model.Application, error) {
	found := make([][]model.Application, len(dirs))

	g, ctx := errgroup.WithContext(ctx)
	for i, dir := range dirs {
		g.Go(func() error {
			apps, err := s.scanDir(ctx, dir)
			switch {
			case err == nil:
			case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
				return err
			case errors.Is(err, fs.ErrNotExist):
				s.log.WithField("dir", dir).Debug("application directory missing")
			default:
				s.log.WithError(err).WithField("dir", dir).Warn("failed to scan application directory")
			}
			found[i] = apps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []model.Application
	for _, apps := range found {
		out = append(out, apps...)
	}
	slices.SortStableFunc(out, func(a, b model.Application) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	s.log.WithField("apps", len(out)).WithField("dirs", len(dirs)).Debug("scan finished")
	return out, nil
}

func (s *Scanner) scanDir(ctx context.Context, dir string) ([]model.Application, error) {
	switch s.goos {
	case "darwin":
		return scanBundles(ctx, dir)
	case "windows":
		return scanShortcuts(ctx, dir)
	default:
		return s.scanDesktopEntries(ctx, dir)
	}
}

// scanBundles lists the *.app bundles directly inside dir.
func scanBundles(ctx context.Context, dir string) ([]model.Application, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var apps []model.Application
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".app") {
			continue
		}
		apps = append(apps, model.NewApplication(strings.TrimSuffix(name, ".app"), filepath.Join(dir, name)))
	}
	return apps, nil
}

func (s *Scanner) scanDesktopEntries(ctx context.Context, dir string) ([]model.Application, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	var apps []model.Application
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() || !strings.HasSuffix(path, ".desktop") {
			return nil
		}
		entry, perr := ReadDesktopFile(path)
		if perr != nil {
			s.log.WithError(perr).WithField("path", path).Debug("skipping unreadable desktop entry")
			return nil
		}
		if !entry.Launchable() {
			return nil
		}
		apps = append(apps, model.NewApplication(entry.Name, path))
		return nil
	})
	return apps, err
}

func scanShortcuts(ctx context.Context, dir string) ([]model.Application, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, err
	}
	var apps []model.Application
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if cerr := ctx.Err(); cerr != nil {
			return cerr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".lnk" && ext != ".exe" {
			return nil
		}
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		apps = append(apps, model.NewApplication(name, path))
		return nil
	})
	return apps, err
}
