package cli

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/aigkit/pkg/aiger"
	apperrors "github.com/matzehuels/aigkit/pkg/errors"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name      string
		output    string
		formatStr string
		want      aiger.Format
	}{
		{"flag wins over extension", "out.aig", "ascii", aiger.FormatASCII},
		{"flag alias", "out.aag", "aig", aiger.FormatBinary},
		{"binary extension", "out.aig", "", aiger.FormatBinary},
		{"ascii extension", "out.aag", "", aiger.FormatASCII},
		{"unknown extension defaults ascii", "out.txt", "", aiger.FormatASCII},
		{"extension case insensitive", "out.AIG", "", aiger.FormatBinary},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := detectFormat(tt.output, tt.formatStr)
			if err != nil {
				t.Fatalf("detectFormat: %v", err)
			}
			if got != tt.want {
				t.Errorf("detectFormat(%q, %q) = %v, want %v", tt.output, tt.formatStr, got, tt.want)
			}
		})
	}
}

func TestDetectFormatUnknown(t *testing.T) {
	_, err := detectFormat("out.aag", "json")
	if code := apperrors.GetCode(err); code != apperrors.ErrCodeInvalidFormat {
		t.Fatalf("code = %q, want %q", code, apperrors.ErrCodeInvalidFormat)
	}
}

func TestRunConvertRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "and.aag")
	if err := os.WriteFile(src, []byte("aag 3 2 0 1 1\n2\n4\n6\n6 2 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := New(io.Discard, LogInfo)
	dst := filepath.Join(dir, "and.aig")
	if err := c.runConvert(src, dst, ""); err != nil {
		t.Fatalf("runConvert: %v", err)
	}

	file, err := aiger.ReadFile(dst)
	if err != nil {
		t.Fatalf("reading converted file: %v", err)
	}
	g := file.Graph
	if got := len(g.Inputs()); got != 2 {
		t.Errorf("inputs = %d, want 2", got)
	}
	if got := len(g.Gates()); got != 1 {
		t.Errorf("gates = %d, want 1", got)
	}
}
