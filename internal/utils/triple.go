package utils

import (
	"strings"
)

// Triple is a parsed target triple (e.g. "arm64-apple-macos13.0")
type Triple struct {
	Arch   string
	Vendor string
	OS     string
}

// ParseTriple parses a target triple string into its components.
// Returns nil if the string does not have at least arch-vendor-os.
func ParseTriple(t string) *Triple {
	parts := strings.SplitN(t, "-", 3)
	if len(parts) < 3 {
		return nil
	}

	for _, p := range parts {
		if p == "" {
			return nil
		}
	}

	return &Triple{
		Arch:   parts[0],
		Vendor: parts[1],
		OS:     parts[2],
	}
}
