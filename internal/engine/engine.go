// Package engine abstracts the compilation engine that turns a
// textual interface into a serialized module. The driver treats it as
// a black box: it is configured, invoked once per build attempt, and
// either produces a payload plus the list of files it read, or fails
// with diagnostics of its own.
package engine

import (
	"github.com/modcache/smc/internal/config"
)

// Invocation describes one build attempt
type Invocation struct {
	// Config is the fully prepared sub-compilation configuration,
	// owned exclusively by this attempt
	Config *config.Build

	// InterfacePath is the textual interface being compiled
	InterfacePath string
}

// Output is a successful engine run
type Output struct {
	// Payload is the serialized compiled module, not yet wrapped in
	// the artifact container
	Payload []byte

	// Deps lists every file the engine read during the attempt, in
	// discovery order
	Deps []string
}

// Engine compiles one textual interface. Implementations must not
// write the final artifact themselves; the invoker owns the output
// path so writes stay all-or-nothing.
type Engine interface {
	Build(inv *Invocation) (*Output, error)
}

// CrashError indicates the engine terminated abnormally (fatal signal
// in a subprocess, or a panic in an in-process engine) rather than
// reporting diagnostics
type CrashError struct {
	Reason string
}

func (e *CrashError) Error() string {
	return "compilation engine crashed: " + e.Reason
}
