package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	require.Equal(t, zerolog.WarnLevel, ParseLevel(" WARN "))
	require.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestSetupFile(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "chart.log")
	closeFn, err := Setup("warn", path)
	require.NoError(t, err)
	require.True(t, Enabled(zerolog.ErrorLevel))
	require.False(t, Enabled(zerolog.InfoLevel))

	log.Info().Msg("hidden")
	log.Warn().Int("cells", 3).Msg("layout skipped")
	closeFn()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.False(t, strings.Contains(out, "hidden"))
	require.Contains(t, out, `"cells":3`)
	require.Contains(t, out, "layout skipped")
}

func TestSetupBadFile(t *testing.T) {
	_, err := Setup("info", filepath.Join(t.TempDir(), "missing", "dir", "x.log"))
	require.Error(t, err)
}
