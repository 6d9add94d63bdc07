package engine

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/modcache/smc/internal/codes"
	"github.com/modcache/smc/internal/config"
)

// Commander interface for testing
type Commander interface {
	Run() error
}

// Exec invokes an external frontend binary as the compilation engine.
// The subprocess boundary doubles as the fault-isolating execution
// context: a frontend crash is an exit status, never a crash of this
// process.
type Exec struct {
	execCommand func(name string, args ...string) Commander
}

// NewExec creates an exec-backed engine
func NewExec() *Exec {
	return &Exec{
		execCommand: func(name string, args ...string) Commander {
			return exec.Command(name, args...)
		},
	}
}

// BuildArgs builds the frontend argument vector for one invocation.
// The frontend serializes the module payload to payloadPath and the
// list of files it read, one per line, to depsPath.
func (e *Exec) BuildArgs(cfg *config.Build, interfacePath, payloadPath, depsPath string) []string {
	args := []string{
		"-frontend",
		"-compile-module-from-interface", interfacePath,
		"-module-name", cfg.ModuleName,
		"-target", cfg.TargetTriple,
	}

	if cfg.SDKPath != "" {
		args = append(args, "-sdk", cfg.SDKPath)
	}

	if cfg.ResourceDir != "" {
		args = append(args, "-resource-dir", cfg.ResourceDir)
	}

	for _, p := range cfg.ImportSearchPaths {
		if p != "" {
			args = append(args, "-I", p)
		}
	}

	for _, p := range cfg.FrameworkSearchPaths {
		if p != "" {
			args = append(args, "-F", p)
		}
	}

	if cfg.SuppressWarnings {
		args = append(args, "-suppress-warnings")
	}

	if cfg.OptimizeForSpeed {
		args = append(args, "-O")
	}

	args = append(args, "-o", payloadPath, "-emit-dependencies-path", depsPath)

	return args
}

// Build runs the frontend against one interface file
func (e *Exec) Build(inv *Invocation) (*Output, error) {
	cfg := inv.Config

	workDir, err := os.MkdirTemp("", "smc-build-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	payloadPath := filepath.Join(workDir, "module.payload")
	depsPath := filepath.Join(workDir, "module.deps")
	args := e.BuildArgs(cfg, inv.InterfacePath, payloadPath, depsPath)

	if cfg.Verbose {
		e.PrintBuildInfo(cfg, inv.InterfacePath, args)
	}

	c := e.execCommand(cfg.CompilerPath, args...)
	if cmd, ok := c.(*exec.Cmd); ok && !cfg.Silent {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	if err := c.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			if codes.IsCrash(code) {
				return nil, &CrashError{Reason: fmt.Sprintf("exit code %d: %s", code, codes.GetErrorMessage(code))}
			}

			if !codes.IsSuccess(code) {
				return nil, fmt.Errorf("compilation failed (exit code %d): %s", code, codes.GetErrorMessage(code))
			}
		} else {
			return nil, fmt.Errorf("failed to run frontend: %w", err)
		}
	}

	payload, err := os.ReadFile(payloadPath)
	if err != nil {
		return nil, fmt.Errorf("frontend produced no output: %w", err)
	}

	deps, err := readDepsFile(depsPath)
	if err != nil {
		return nil, err
	}

	return &Output{Payload: payload, Deps: deps}, nil
}

// PrintBuildInfo prints verbose build information
func (e *Exec) PrintBuildInfo(cfg *config.Build, interfacePath string, args []string) {
	fmt.Printf("Compiler: %s\nModule: %s\nTarget: %s\nInterface: %s\nCommand: %s %s\n",
		cfg.CompilerPath, cfg.ModuleName, cfg.TargetTriple, interfacePath,
		cfg.CompilerPath, strings.Join(args, " "))
}

// readDepsFile parses the frontend's dependency listing, one path per line
func readDepsFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Frontend read nothing beyond the interface
		}

		return nil, fmt.Errorf("failed to read dependency listing: %w", err)
	}

	var deps []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			deps = append(deps, line)
		}
	}

	return deps, nil
}
