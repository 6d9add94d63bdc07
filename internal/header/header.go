// Package header parses the machine-readable comment block at the top
// of a textual module interface:
//
//	// swift-interface-format-version: 1.0
//	// swift-tools-version: Apple Swift version 4.2
//	// swift-module-flags: -module-name Foo -target arm64-apple-macos13.0
//
// The format-version and module-flags lines are mandatory; their
// absence marks the file as corrupt or foreign. The tools-version line
// is informational only.
package header

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/shell"
)

// Header comment keys
const (
	FormatVersionKey = "swift-interface-format-version"
	ToolsVersionKey  = "swift-tools-version"
	ModuleFlagsKey   = "swift-module-flags"
)

// FormatVersion is the interface format version this toolchain writes
// and supports. Anything with the same major version is accepted.
var FormatVersion = Version{Major: 1, Minor: 0}

var (
	// ErrVersionMissing indicates the format-version line is absent or malformed
	ErrVersionMissing = errors.New("missing or malformed " + FormatVersionKey + " line")

	// ErrFlagsMissing indicates the module-flags line is absent or malformed
	ErrFlagsMissing = errors.New("missing or malformed " + ModuleFlagsKey + " line")
)

var (
	versionRe = regexp.MustCompile(`(?m)^// ` + FormatVersionKey + `: ([0-9.]+)$`)
	toolsRe   = regexp.MustCompile(`(?m)^// ` + ToolsVersionKey + `: (.*)$`)
	flagsRe   = regexp.MustCompile(`(?m)^// ` + ModuleFlagsKey + `: (.*)$`)
)

// Version is an interface format version
type Version struct {
	Major int
	Minor int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// SameMajor reports whether other shares v's major version. Minor
// differences are compatible and ignored.
func (v Version) SameMajor(other Version) bool {
	return v.Major == other.Major
}

// ParseVersion parses "major" or "major.minor" (extra components are
// ignored) into a Version
func ParseVersion(s string) (Version, error) {
	parts := strings.Split(s, ".")
	if len(parts) == 0 || parts[0] == "" {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}

	v := Version{Major: major}
	if len(parts) > 1 && parts[1] != "" {
		minor, err := strconv.Atoi(parts[1])
		if err != nil {
			return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
		}

		v.Minor = minor
	}

	return v, nil
}

// Header is the parsed leading comment block of an interface file
type Header struct {
	// Version is the declared interface format version
	Version Version

	// ToolsVersion is the toolchain that emitted the interface, if recorded
	ToolsVersion string

	// Args is the embedded module-flags line tokenized with
	// shell-style quoting rules
	Args []string
}

// Parse extracts the header from interface file text
func Parse(data []byte) (*Header, error) {
	text := string(data)

	versMatch := versionRe.FindStringSubmatch(text)
	if versMatch == nil {
		return nil, ErrVersionMissing
	}

	vers, err := ParseVersion(versMatch[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVersionMissing, err)
	}

	flagsMatch := flagsRe.FindStringSubmatch(text)
	if flagsMatch == nil {
		return nil, ErrFlagsMissing
	}

	args, err := shell.Fields(flagsMatch[1], nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFlagsMissing, err)
	}

	hdr := &Header{
		Version: vers,
		Args:    args,
	}

	if toolsMatch := toolsRe.FindStringSubmatch(text); toolsMatch != nil {
		hdr.ToolsVersion = toolsMatch[1]
	}

	return hdr, nil
}

// Format renders the leading comment block for an interface file
func Format(vers Version, toolsVersion, flags string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "// %s: %s\n", FormatVersionKey, vers)
	fmt.Fprintf(&b, "// %s: %s\n", ToolsVersionKey, toolsVersion)
	fmt.Fprintf(&b, "// %s: %s\n", ModuleFlagsKey, flags)

	return b.String()
}
