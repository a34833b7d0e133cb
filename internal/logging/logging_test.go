package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LevelAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := New("info", &buf)

	log.Debug("hidden")
	log.WithField("component", "layout").Info("seeded")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=info")
	assert.Contains(t, out, "component=layout")
	assert.Contains(t, out, `msg=seeded`)
}

func TestParseLevel_FallsBackToWarn(t *testing.T) {
	assert.Equal(t, logrus.WarnLevel, ParseLevel(""))
	assert.Equal(t, logrus.WarnLevel, ParseLevel("loud"))
	assert.Equal(t, logrus.DebugLevel, ParseLevel(" debug "))
	assert.Equal(t, logrus.WarnLevel, New("nope", nil).GetLevel())
}

func TestOpenFile_AppendsAndCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "lunchpad.log")

	for _, msg := range []string{"first", "second"} {
		f, err := OpenFile(path)
		require.NoError(t, err)
		New("warn", f).Warn(msg)
		require.NoError(t, f.Close())
	}

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "msg=first")
	assert.Contains(t, string(b), "msg=second")
}
