// Package aiger reads and writes AIGER circuit files, the interchange
// format of the hardware model-checking world, in both the ASCII "aag"
// and the delta-compressed binary "aig" variants.
//
// A parsed file is a [File]: the circuit as an [aig.Graph] plus the
// optional symbol table and comment section, which carry names for
// humans and stay out of the graph itself. Literals on the wire are the
// packed form 2*id+negated, which is exactly [aig.Ref.Raw].
package aiger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/aigkit/pkg/aig"
)

// Sentinel errors for malformed files; test with errors.Is. Structural
// problems in the circuit itself (duplicate ids) surface as the graph
// package's sentinels.
var (
	// ErrBadHeader is returned for a missing or malformed "aag"/"aig"
	// header line, including M < I+L+A.
	ErrBadHeader = errors.New("malformed aiger header")

	// ErrBadLiteral is returned for unparsable, out-of-range, or
	// wrongly-negated literals.
	ErrBadLiteral = errors.New("invalid aiger literal")

	// ErrBadSymbol is returned for malformed or duplicate symbol entries.
	ErrBadSymbol = errors.New("malformed aiger symbol")

	// ErrTruncated is returned when the file ends before all declared
	// records are read.
	ErrTruncated = errors.New("truncated aiger file")
)

// Format selects the AIGER variant on write. Reads auto-detect.
type Format int

const (
	// FormatASCII is the human-readable "aag" variant.
	FormatASCII Format = iota

	// FormatBinary is the compact "aig" variant with implicit input and
	// latch numbering and delta-compressed gates.
	FormatBinary
)

// String returns "ascii" or "binary".
func (f Format) String() string {
	if f == FormatBinary {
		return "binary"
	}
	return "ascii"
}

// ParseFormat recognizes "ascii"/"aag" and "binary"/"aig".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "ascii", "aag":
		return FormatASCII, nil
	case "binary", "aig":
		return FormatBinary, nil
	}
	return 0, fmt.Errorf("unknown aiger format %q", s)
}

// SymbolTable names inputs, latches, and outputs by their position in the
// file, not by node id.
type SymbolTable struct {
	Inputs  map[int]string
	Latches map[int]string
	Outputs map[int]string
}

// Empty reports whether the table holds no names.
func (t SymbolTable) Empty() bool {
	return len(t.Inputs) == 0 && len(t.Latches) == 0 && len(t.Outputs) == 0
}

// File is a parsed AIGER file: the circuit plus everything around it.
type File struct {
	Graph    *aig.Graph
	Symbols  SymbolTable
	Comments []string
}

// Read parses an AIGER file, detecting the variant from the header tag.
func Read(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(3)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	switch string(magic) {
	case "aag":
		return readASCII(br)
	case "aig":
		return readBinary(br)
	}
	return nil, fmt.Errorf("%w: unknown tag %q", ErrBadHeader, magic)
}

// ReadFile opens and parses a circuit file.
func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open circuit: %w", err)
	}
	defer f.Close()

	parsed, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parsed, nil
}

// Write serializes the file in the requested variant. The binary variant
// renumbers the circuit, so a dangling reference or combinational cycle
// fails the write; the ASCII variant writes ids as stored.
func (f *File) Write(w io.Writer, format Format) error {
	bw := bufio.NewWriter(w)
	var err error
	switch format {
	case FormatASCII:
		err = writeASCII(bw, f)
	case FormatBinary:
		err = writeBinary(bw, f)
	default:
		return fmt.Errorf("unknown aiger format %d", format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}

// WriteFile serializes the file to disk.
func (f *File) WriteFile(path string, format Format) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := f.Write(out, format); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return out.Close()
}
