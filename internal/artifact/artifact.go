// Package artifact reads and writes the binary compiled-module
// container. The container carries the serialized module payload plus
// a small header with the module name, toolchain versions, and the
// dependency ledger recorded when the module was built.
//
// Layout:
//
//	8-byte magic ("SMCMOD" + format version + reserved byte)
//	4-byte little-endian header length
//	CBOR-encoded Header
//	payload bytes
//
// The header is encoded with Core Deterministic Encoding so the same
// logical module always produces identical bytes.
package artifact

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/afero"

	"github.com/modcache/smc/internal/ledger"
)

// Extension is the file extension of binary module artifacts
const Extension = ".swiftmodule"

const containerVersion = 1

// magic is the 8-byte container file signature
var magic = [8]byte{'S', 'M', 'C', 'M', 'O', 'D', containerVersion, 0}

// ErrInvalid indicates the file is not a valid module container.
// A candidate that fails with ErrInvalid is treated as stale, never
// loaded.
var ErrInvalid = errors.New("invalid module artifact")

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("artifact: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("artifact: CBOR decoder initialization failed: " + err.Error())
	}
}

// Header is the module metadata embedded in the container
type Header struct {
	// Name is the declared module name
	Name string `cbor:"name"`

	// ToolsVersion is the tools version recorded in the source interface
	ToolsVersion string `cbor:"tools_version,omitempty"`

	// CompilerVersion is the toolchain that produced this artifact
	CompilerVersion string `cbor:"compiler_version,omitempty"`

	// Dependencies is the ledger recorded at build time
	Dependencies []ledger.FileDependency `cbor:"deps"`
}

// Module is a decoded artifact
type Module struct {
	Header

	// Payload is the serialized compiled module
	Payload []byte
}

// Encode serializes mod into container bytes
func Encode(mod *Module) ([]byte, error) {
	hdr, err := encMode.Marshal(mod.Header)
	if err != nil {
		return nil, fmt.Errorf("failed to encode module header: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(magic[:])

	var hdrLen [4]byte
	binary.LittleEndian.PutUint32(hdrLen[:], uint32(len(hdr)))
	buf.Write(hdrLen[:])
	buf.Write(hdr)
	buf.Write(mod.Payload)

	return buf.Bytes(), nil
}

// Decode validates container bytes and extracts the module.
// Any structural problem is reported as ErrInvalid.
func Decode(data []byte) (*Module, error) {
	if len(data) < len(magic)+4 {
		return nil, fmt.Errorf("%w: truncated container", ErrInvalid)
	}

	if !bytes.Equal(data[:len(magic)], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrInvalid)
	}

	hdrLen := binary.LittleEndian.Uint32(data[len(magic) : len(magic)+4])
	rest := data[len(magic)+4:]
	if uint32(len(rest)) < hdrLen {
		return nil, fmt.Errorf("%w: truncated header", ErrInvalid)
	}

	var mod Module
	if err := decMode.Unmarshal(rest[:hdrLen], &mod.Header); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	mod.Payload = rest[hdrLen:]

	return &mod, nil
}

// Read opens and validates the artifact at path
func Read(fs afero.Fs, path string) (*Module, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	return Decode(data)
}

// Write atomically writes mod to path: the container is written to a
// temporary file in the destination directory and renamed into place,
// so a failed build never leaves a partial artifact visible. Last
// writer wins; there is no cross-process locking around a cache slot.
func Write(fs afero.Fs, path string, mod *Module) error {
	data, err := Encode(mod)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create temporary artifact: %w", err)
	}

	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("failed to write artifact: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("failed to close artifact: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		_ = fs.Remove(tmpPath)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	return nil
}

// LooksValidOrUnreadable reports whether path holds a plausibly
// loadable artifact: either the container validates, or the file
// exists but cannot be read (in which case the generic binary loader
// should get the chance to diagnose it). A missing file is neither.
func LooksValidOrUnreadable(fs afero.Fs, path string) bool {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return !os.IsNotExist(err)
	}

	_, err = Decode(data)

	return err == nil
}
