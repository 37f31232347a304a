package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logLevelMatches = map[string]zerolog.Level{
	"NONE":  zerolog.NoLevel,
	"TRACE": zerolog.TraceLevel,
	"DEBUG": zerolog.DebugLevel,
	"INFO":  zerolog.InfoLevel,
	"WARN":  zerolog.WarnLevel,
	"ERROR": zerolog.ErrorLevel,
	"FATAL": zerolog.FatalLevel,
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	if l, ok := logLevelMatches[strings.ToUpper(strings.TrimSpace(level))]; ok {
		return l
	}
	return zerolog.InfoLevel
}

func isTerminalAttached(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) && runtime.GOOS != "windows"
}

func consoleWriter(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}
}

// Setup configures the global logger. Logs go to stderr (pretty printed on a
// terminal) or, when file is set, appended to that file. The returned func
// closes the file.
func Setup(level, file string) (func(), error) {
	zerolog.SetGlobalLevel(ParseLevel(level))
	if file != "" {
		f, err := os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("error opening log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return func() { _ = f.Close() }, nil
	}
	if isTerminalAttached(os.Stderr) {
		log.Logger = log.Output(consoleWriter(os.Stderr))
	} else {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}
	return func() {}, nil
}

// Enabled checks if a specific logging level is enabled.
func Enabled(level zerolog.Level) bool {
	return level >= zerolog.GlobalLevel()
}
