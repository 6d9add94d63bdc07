package config

import (
	"os/exec"
	"strings"
	"sync"

	"github.com/modcache/smc/internal/version"
)

// compilerVersionOutput queries the frontend binary for its version
// string; replaced in tests
var compilerVersionOutput = func(compilerPath string) ([]byte, error) {
	return exec.Command(compilerPath, "--version").Output()
}

var (
	compilerVersionMu    sync.Mutex
	compilerVersionCache = map[string]string{}
)

// resolveCompilerVersion returns the toolchain version string that
// keys the cache: the first line of the frontend's own version output
// when the binary answers, this driver's version otherwise. One probe
// per compiler path per process.
func resolveCompilerVersion(compilerPath string) string {
	compilerVersionMu.Lock()
	defer compilerVersionMu.Unlock()

	if v, ok := compilerVersionCache[compilerPath]; ok {
		return v
	}

	v := version.Version
	if out, err := compilerVersionOutput(compilerPath); err == nil {
		firstLine, _, _ := strings.Cut(string(out), "\n")
		if firstLine = strings.TrimSpace(firstLine); firstLine != "" {
			v = firstLine
		}
	}

	compilerVersionCache[compilerPath] = v

	return v
}
