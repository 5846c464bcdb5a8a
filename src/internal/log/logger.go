package log

import (
	"bytes"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var (
	verbose     = false
	disableLogs = false
	forceStdErr = false
	// output overrides the stdout/stderr split when set.
	output io.Writer

	logPrefixes = map[logrus.Level]string{
		logrus.DebugLevel: "\033[37m[DBG]\033[0m", // White
		logrus.InfoLevel:  "\033[36m[INF]\033[0m", // Cyan
		logrus.WarnLevel:  "\033[33m[WRN]\033[0m", // Yellow
		logrus.ErrorLevel: "\033[31m[ERR]\033[0m", // Red
		logrus.FatalLevel: "\033[31m[ERR]\033[0m",
	}

	logger = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(discardFormatter{})
	l.SetLevel(logrus.InfoLevel)
	l.AddHook(&streamHook{formatter: prefixFormatter{}})
	return l
}

// prefixFormatter renders "<colored level> message\n".
type prefixFormatter struct{}

func (prefixFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(logPrefixes[entry.Level])
	b.WriteByte(' ')
	b.WriteString(entry.Message)
	b.WriteByte('\n')
	return b.Bytes(), nil
}

type discardFormatter struct{}

func (discardFormatter) Format(*logrus.Entry) ([]byte, error) {
	return nil, nil
}

// streamHook writes errors to stderr and everything else to stdout.
type streamHook struct {
	formatter logrus.Formatter
}

func (h *streamHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *streamHook) Fire(entry *logrus.Entry) error {
	if disableLogs {
		return nil
	}
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	switch {
	case output != nil:
		_, err = output.Write(line)
	case forceStdErr || entry.Level <= logrus.ErrorLevel:
		_, err = os.Stderr.Write(line)
	default:
		_, err = os.Stdout.Write(line)
	}
	return err
}

// SetVerbose sets the logging verbosity. If true, all log levels are displayed.
func SetVerbose(v bool) {
	verbose = v
	if v {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verbose
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs = true
}

// IsDisabled returns true if logging is disabled.
func IsDisabled() bool {
	return disableLogs
}

// SetForceStdErr sends every level to stderr, keeping stdout clean for command output.
func SetForceStdErr(v bool) {
	forceStdErr = v
}

// SetOutput redirects all log levels to w. Passing nil restores the stdout/stderr split.
func SetOutput(w io.Writer) {
	output = w
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	logger.Debugf(format, args...)
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logger.Infof(format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logger.Warnf(format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}

// Fatalf logs an error message and exits the program.
func Fatalf(format string, args ...interface{}) {
	logger.Fatalf(format, args...)
}
