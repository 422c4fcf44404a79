// Package logging builds the structured loggers used across the service.
// Every child logger carries a "source" key naming the subsystem that wrote
// the line.
package logging

import (
	"io"
	stdlog "log"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

const (
	SourceApp        = "app"
	SourceWeb        = "web"
	SourceWebRequest = "web_request"
	SourceDB         = "db"
	SourceReporting  = "reporting"
)

// Output formats accepted by LOG_FORMAT.
const (
	FormatLogfmt = "logfmt"
	FormatJSON   = "json"
	FormatText   = "text"
)

var root atomic.Pointer[log.Logger]

// New returns a root logger writing to w. An unknown level falls back to
// info and an unknown format to logfmt.
func New(w io.Writer, level, format string) *log.Logger {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Formatter:       formatter(format),
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339Nano,
		TimeFunction:    log.NowUTC,
	})
}

func formatter(format string) log.Formatter {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case FormatJSON:
		return log.JSONFormatter
	case FormatText:
		return log.TextFormatter
	default:
		return log.LogfmtFormatter
	}
}

// Init installs the process-wide root logger on stdout and sends the
// standard library's log package through it. Later calls replace the root;
// child loggers obtained earlier keep the old one.
func Init(level, format string) {
	l := New(os.Stdout, level, format)
	root.Store(l)

	stdlog.SetFlags(0)
	stdlog.SetOutput(l.With("source", SourceApp).StandardLog(log.StandardLogOptions{ForceLevel: log.InfoLevel}).Writer())
}

func base() *log.Logger {
	if l := root.Load(); l != nil {
		return l
	}
	root.CompareAndSwap(nil, New(os.Stdout, "info", FormatLogfmt))
	return root.Load()
}

// Logger returns a child of the root logger tagged with source.
func Logger(source string) *log.Logger {
	return base().With("source", source)
}

// StdLogger adapts the root logger for APIs that take a *log.Logger from the
// standard library, such as http.Server.ErrorLog. Lines are logged as errors.
func StdLogger(source string) *stdlog.Logger {
	return Logger(source).StandardLog(log.StandardLogOptions{ForceLevel: log.ErrorLevel})
}
