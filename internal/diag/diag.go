// Package diag provides the diagnostic sink the loader reports through.
//
// Diagnostics are emitted at the point of detection so file context is
// preserved; callers decide how they are rendered. The default sink
// writes through charmbracelet/log, tests use a Collector.
package diag

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// Severity classifies a diagnostic
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

// Diagnostic is one reported condition, attached to the file which
// triggered it (empty path for configuration-level conditions)
type Diagnostic struct {
	Severity Severity
	Path     string
	Message  string
}

func (d Diagnostic) String() string {
	if d.Path == "" {
		return d.Message
	}

	return fmt.Sprintf("%s: %s", d.Path, d.Message)
}

// Sink receives diagnostics as they are detected
type Sink interface {
	Report(d Diagnostic)
}

// LogSink renders diagnostics through a charmbracelet logger
type LogSink struct {
	Logger *log.Logger
}

func (s *LogSink) Report(d Diagnostic) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	switch d.Severity {
	case SeverityWarning:
		logger.Warn(d.Message, "path", d.Path)
	case SeverityNote:
		logger.Info(d.Message, "path", d.Path)
	default:
		logger.Error(d.Message, "path", d.Path)
	}
}

// Collector accumulates diagnostics for inspection in tests
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Errors returns only the error-severity diagnostics
func (c *Collector) Errors() []Diagnostic {
	var errs []Diagnostic
	for _, d := range c.Diagnostics {
		if d.Severity == SeverityError {
			errs = append(errs, d)
		}
	}

	return errs
}

// Errorf reports an error diagnostic to sink
func Errorf(sink Sink, path, format string, args ...any) {
	sink.Report(Diagnostic{
		Severity: SeverityError,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf reports a warning diagnostic to sink
func Warnf(sink Sink, path, format string, args ...any) {
	sink.Report(Diagnostic{
		Severity: SeverityWarning,
		Path:     path,
		Message:  fmt.Sprintf(format, args...),
	})
}
