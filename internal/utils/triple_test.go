package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTriple(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect *Triple
	}{
		{
			name:   "macos triple",
			input:  "arm64-apple-macos13.0",
			expect: &Triple{Arch: "arm64", Vendor: "apple", OS: "macos13.0"},
		},
		{
			name:   "linux triple with environment",
			input:  "x86_64-unknown-linux-gnu",
			expect: &Triple{Arch: "x86_64", Vendor: "unknown", OS: "linux-gnu"},
		},
		{
			name:   "missing components",
			input:  "arm64-apple",
			expect: nil,
		},
		{
			name:   "empty component",
			input:  "arm64--macos",
			expect: nil,
		},
		{
			name:   "empty string",
			input:  "",
			expect: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, ParseTriple(tt.input))
		})
	}
}
