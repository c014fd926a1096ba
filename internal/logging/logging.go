package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName is the name of the rotating log file inside the log directory.
const LogFileName = "resp-analyzer.log"

// Init initializes the global logger with dual sinks: os.Stderr and a rotating file.
// stdout is left alone; it carries results and the MCP stdio transport.
func Init(verbose bool) {
	// Load .env from the binary directory so LOGS_FOLDER is available before config.Load.
	exePath, err := os.Executable()
	if err == nil {
		_ = godotenv.Load(filepath.Join(filepath.Dir(exePath), ".env"))
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	logDir := os.Getenv("LOGS_FOLDER")
	if logDir == "" {
		if err == nil {
			logDir = filepath.Join(filepath.Dir(exePath), "logs")
		} else {
			logDir = "logs"
		}
	}

	w, ferr := newWriter(os.Stderr, logDir)
	if ferr != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging disabled: %v\n", ferr)
	}

	log.Logger = zerolog.New(w).
		With().
		Timestamp().
		Logger()
}

// newWriter combines a console writer with a rotating file in logDir.
// When logDir is not writable only the console writer is returned, together with the error.
func newWriter(console *os.File, logDir string) (io.Writer, error) {
	isTerminal := isatty.IsTerminal(console.Fd()) || isatty.IsCygwinTerminal(console.Fd())
	consoleWriter := zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.RFC3339,
		NoColor:    !isTerminal,
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return consoleWriter, fmt.Errorf("create log directory %q: %w", logDir, err)
	}

	testFile := filepath.Join(logDir, ".write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return consoleWriter, fmt.Errorf("log directory %q is not writable: %w", logDir, err)
	}
	_ = os.Remove(testFile)

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, LogFileName),
		MaxSize:    16, // megabytes
		MaxBackups: 8,
		MaxAge:     90, // days
		Compress:   true,
	}

	return zerolog.MultiLevelWriter(io.Writer(consoleWriter), fileWriter), nil
}
