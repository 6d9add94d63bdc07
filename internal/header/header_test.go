package header

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const goodInterface = `// swift-interface-format-version: 1.0
// swift-tools-version: Apple Swift version 4.2
// swift-module-flags: -module-name Foo -target arm64-apple-macos13.0

public struct Foo {}
`

func TestParse(t *testing.T) {
	hdr, err := Parse([]byte(goodInterface))
	require.NoError(t, err)

	assert.Equal(t, Version{Major: 1, Minor: 0}, hdr.Version)
	assert.Equal(t, "Apple Swift version 4.2", hdr.ToolsVersion)
	assert.Equal(t, []string{"-module-name", "Foo", "-target", "arm64-apple-macos13.0"}, hdr.Args)
}

func TestParse_QuotedFlags(t *testing.T) {
	text := "// swift-interface-format-version: 1.0\n" +
		`// swift-module-flags: -module-name Foo -I "/path with spaces" -DFLAG` + "\n"

	hdr, err := Parse([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, []string{"-module-name", "Foo", "-I", "/path with spaces", "-DFLAG"}, hdr.Args)
}

func TestParse_MissingVersion(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no version line", "// swift-module-flags: -module-name Foo\n"},
		{"version not anchored", "  // swift-interface-format-version: 1.0\n// swift-module-flags: x\n"},
		{"non-numeric version", "// swift-interface-format-version: abc\n// swift-module-flags: x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.text))
			assert.ErrorIs(t, err, ErrVersionMissing)
		})
	}
}

func TestParse_MissingFlags(t *testing.T) {
	_, err := Parse([]byte("// swift-interface-format-version: 1.0\npublic struct Foo {}\n"))
	assert.ErrorIs(t, err, ErrFlagsMissing)

	// Unterminated quote in the flags line is a flags error, not a
	// version error.
	_, err = Parse([]byte("// swift-interface-format-version: 1.0\n// swift-module-flags: -module-name \"Foo\n"))
	assert.ErrorIs(t, err, ErrFlagsMissing)
}

func TestParse_ToolsVersionOptional(t *testing.T) {
	hdr, err := Parse([]byte("// swift-interface-format-version: 1.2\n// swift-module-flags: -module-name Foo\n"))
	require.NoError(t, err)
	assert.Empty(t, hdr.ToolsVersion)
	assert.Equal(t, Version{Major: 1, Minor: 2}, hdr.Version)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		expect  Version
		wantErr bool
	}{
		{input: "1.0", expect: Version{Major: 1, Minor: 0}},
		{input: "2.7", expect: Version{Major: 2, Minor: 7}},
		{input: "3", expect: Version{Major: 3}},
		{input: "1.0.5", expect: Version{Major: 1, Minor: 0}},
		{input: "", wantErr: true},
		{input: "x.y", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expect, v)
		})
	}
}

func TestSameMajor(t *testing.T) {
	assert.True(t, Version{Major: 1, Minor: 0}.SameMajor(Version{Major: 1, Minor: 9}))
	assert.False(t, Version{Major: 1, Minor: 0}.SameMajor(Version{Major: 2, Minor: 0}))
}

func TestFormat_RoundTrip(t *testing.T) {
	text := Format(FormatVersion, "smc 1.0", "-module-name Foo -target arm64-apple-macos13.0")

	hdr, err := Parse([]byte(text))
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, hdr.Version)
	assert.Equal(t, "smc 1.0", hdr.ToolsVersion)
	assert.Equal(t, []string{"-module-name", "Foo", "-target", "arm64-apple-macos13.0"}, hdr.Args)
}
