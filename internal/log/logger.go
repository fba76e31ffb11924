package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"dndbridge/internal/errors"

	"github.com/sirupsen/logrus"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is a single structured key/value pair attached to a log line
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Option configures a Logger
type Option func(*options)

type options struct {
	out      io.Writer
	json     bool
	filePath string
}

// WithOutput sends log lines to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// WithJSON switches to one JSON object per line
func WithJSON() Option {
	return func(o *options) {
		o.json = true
	}
}

// WithFile additionally appends log lines to the file at path
func WithFile(path string) Option {
	return func(o *options) {
		o.filePath = path
	}
}

// Logger wraps a logrus logger with the dndbridge line format
type Logger struct {
	lr   *logrus.Logger
	file *os.File
}

// NewLogger creates a logger writing to stdout unless configured otherwise
func NewLogger(opts ...Option) *Logger {
	o := &options{out: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}

	l := &Logger{lr: logrus.New()}
	out := o.out
	if o.filePath != "" {
		f, err := os.OpenFile(o.filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", o.filePath, err)
		} else {
			l.file = f
			out = io.MultiWriter(o.out, f)
		}
	}
	l.lr.SetOutput(out)
	// Debug lines are filtered by SetDebug, not by the logrus level.
	l.lr.SetLevel(logrus.DebugLevel)
	if o.json {
		l.lr.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime:  "timestamp",
				logrus.FieldKeyLevel: "level",
				logrus.FieldKeyMsg:   "message",
			},
		})
	} else {
		l.lr.SetFormatter(lineFormatter{})
	}
	return l
}

// Configure replaces the package-level logger, closing the log file of the
// one it replaces
func Configure(opts ...Option) {
	prev := logger
	logger = NewLogger(opts...)
	if err := prev.Close(); err != nil {
		logger.Errorf("log: closing previous log file: %v", err)
	}
}

// Default returns the package-level logger
func Default() *Logger {
	return logger
}

// SetDebug turns debug output on or off for every logger
func SetDebug(debug bool) {
	isDebug = debug
}

// DebugEnabled reports whether debug lines are written
func DebugEnabled() bool {
	return isDebug
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// With returns an entry carrying the given fields
func (l *Logger) With(fields ...Field) *Entry {
	return l.entry().With(fields...)
}

// WithContext returns an entry bound to ctx
func (l *Logger) WithContext(ctx context.Context) *Entry {
	e := l.entry()
	if ctx != nil {
		e.e = e.e.WithContext(ctx)
	}
	return e
}

func (l *Logger) entry() *Entry {
	return &Entry{e: logrus.NewEntry(l.lr)}
}

func (l *Logger) Info(args ...interface{})                 { l.entry().Info(args...) }
func (l *Logger) Infof(format string, args ...interface{}) { l.entry().Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                 { l.entry().Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{}) { l.entry().Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                { l.entry().Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.entry().Errorf(format, args...)
}
func (l *Logger) Debug(args ...interface{}) { l.entry().Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.entry().Debugf(format, args...)
}

// Entry is a log line under construction
type Entry struct {
	e *logrus.Entry
}

// With adds fields to the entry
func (e *Entry) With(fields ...Field) *Entry {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Entry{e: e.e.WithFields(data)}
}

func (e *Entry) Info(args ...interface{})                 { e.e.Info(args...) }
func (e *Entry) Infof(format string, args ...interface{}) { e.e.Infof(format, args...) }
func (e *Entry) Warn(args ...interface{})                 { e.e.Warn(args...) }
func (e *Entry) Warnf(format string, args ...interface{}) { e.e.Warnf(format, args...) }
func (e *Entry) Error(args ...interface{})                { e.e.Error(args...) }
func (e *Entry) Errorf(format string, args ...interface{}) {
	e.e.Errorf(format, args...)
}

func (e *Entry) Debug(args ...interface{}) {
	if isDebug {
		e.e.Debug(args...)
	}
}

func (e *Entry) Debugf(format string, args ...interface{}) {
	if isDebug {
		e.e.Debugf(format, args...)
	}
}

// Package-level helpers on the default logger

func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// LogWithFields starts an entry with fields on the default logger
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError starts an entry describing err on the default logger
func LogWithError(err error) *Entry {
	return logger.With(ErrorFields(err)...)
}

// LogError logs err with msg at error level
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// ErrorFields flattens err into structured fields
func ErrorFields(err error) []Field {
	if err == nil {
		return []Field{F("error", "<nil>")}
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	var traceErr *errors.TraceError
	if errors.As(err, &traceErr) && traceErr.Step() >= 0 {
		fields = append(fields, F("step", traceErr.Step()))
	}
	return fields
}

// lineFormatter renders "[time] LEVEL: message key=value ..."
type lineFormatter struct{}

func (lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s", entry.Time.Format("2006-01-02 15:04:05"), levelName(entry.Level), entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, entry.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

func levelName(level logrus.Level) string {
	if level == logrus.WarnLevel {
		return "WARN"
	}
	return strings.ToUpper(level.String())
}
