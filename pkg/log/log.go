/*
Copyright 2025 The pdfcpu Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package log provides a logging abstraction for the timestamp source.
package log

import (
	"io"
	"os"

	"go.uber.org/zap"
)

// Logger defines an interface for logging messages.
type Logger interface {

	// Printf logs a formatted string.
	Printf(format string, args ...interface{})

	// Println logs a line.
	Println(args ...interface{})
}

type logger struct {
	log Logger
}

// tscore's 4 defined loggers. Warn sits between Info and the teacher's
// Trace/Debug pair because the classifier and builder need a level for
// skipped-but-recoverable attributes (§7: MalformedTimestampAttribute,
// UnknownAttribute) that isn't routine tracing.
var (
	Debug = &logger{}
	Info  = &logger{}
	Warn  = &logger{}
	Trace = &logger{}
)

// SetDebugLogger sets the debug logger.
func SetDebugLogger(log Logger) {
	Debug.log = log
}

// SetInfoLogger sets the info logger.
func SetInfoLogger(log Logger) {
	Info.log = log
}

// SetWarnLogger sets the warn logger.
func SetWarnLogger(log Logger) {
	Warn.log = log
}

// SetTraceLogger sets the trace logger.
func SetTraceLogger(log Logger) {
	Trace.log = log
}

type zapAdapter struct {
	s *zap.SugaredLogger
}

func (z zapAdapter) Printf(format string, args ...interface{}) { z.s.Infof(format, args...) }
func (z zapAdapter) Println(args ...interface{})               { z.s.Info(args...) }

func newZapAdapter(w io.Writer, name string) Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = ""
	if w == io.Discard {
		cfg.OutputPaths = []string{os.DevNull}
	} else {
		cfg.OutputPaths = []string{"stderr"}
	}
	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	return zapAdapter{s: l.Sugar().Named(name)}
}

// SetDefaultDebugLogger sets the default debug logger, backed by zap.
func SetDefaultDebugLogger() {
	SetDebugLogger(newZapAdapter(os.Stderr, "debug"))
}

// SetDefaultInfoLogger sets the default info logger, backed by zap.
func SetDefaultInfoLogger() {
	SetInfoLogger(newZapAdapter(os.Stderr, "info"))
}

// SetDefaultWarnLogger sets the default warn logger, backed by zap.
func SetDefaultWarnLogger() {
	SetWarnLogger(newZapAdapter(os.Stderr, "warn"))
}

// SetDefaultTraceLogger sets the default trace logger, backed by zap, discarded by default.
func SetDefaultTraceLogger() {
	SetTraceLogger(newZapAdapter(io.Discard, "trace"))
}

// SetDefaultLoggers sets all loggers to their zap-backed default.
func SetDefaultLoggers() {
	SetDefaultDebugLogger()
	SetDefaultInfoLogger()
	SetDefaultWarnLogger()
	SetDefaultTraceLogger()
}

// DisableLoggers turns off all logging.
func DisableLoggers() {
	SetDebugLogger(nil)
	SetInfoLogger(nil)
	SetWarnLogger(nil)
	SetTraceLogger(nil)
}

// Printf writes a formatted message to the log.
func (l *logger) Printf(format string, args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Printf(format, args...)
}

// Println writes a line to the log.
func (l *logger) Println(args ...interface{}) {
	if l.log == nil {
		return
	}
	l.log.Println(args...)
}
