package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aigkit/pkg/aiger"
)

// =============================================================================
// Circuit Serialization API
// =============================================================================

// Marshal converts a parsed AIGER file to indented JSON bytes.
func Marshal(f *aiger.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeTo(f, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes a parsed AIGER file as JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write(f *aiger.File, w io.Writer) error {
	return writeTo(f, w)
}

// WriteFile writes a parsed AIGER file to a JSON file.
// The file is created with 0644 permissions.
func WriteFile(f *aiger.File, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return writeTo(f, out)
}

// Read decodes a JSON circuit from an io.Reader.
// Use ReadFile for files or pass bytes.NewReader for in-memory data.
func Read(r io.Reader) (*aiger.File, error) {
	return readFrom(r)
}

// ReadFile reads a JSON file and returns the decoded circuit.
// Returns validation errors for malformed circuits.
func ReadFile(path string) (*aiger.File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer in.Close()
	return readFrom(in)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeTo(f *aiger.File, w io.Writer) error {
	out := FromFile(f)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readFrom(r io.Reader) (*aiger.File, error) {
	var data Circuit
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToFile(data)
}
