// Package suite loads and runs golden-vector regression suites.
//
// A suite is a TOML manifest listing cases; each case names a circuit
// file, an input assignment, and the output bits it must produce:
//
//	[[case]]
//	name    = "half-adder sum"
//	file    = "adder.aag"
//	inputs  = "10"
//	outputs = "1"
//
// Bits are positional: inputs bind in declaration order and outputs
// compare in declaration order. Circuit paths resolve relative to the
// manifest's directory.
package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/aigkit/pkg/aiger"
)

// Sentinel errors for manifest problems; test with errors.Is.
var (
	// ErrEmptySuite is returned for a manifest without cases.
	ErrEmptySuite = errors.New("suite has no cases")

	// ErrBadCase is returned for a case missing its circuit file or
	// declaring outputs that do not match the circuit's width.
	ErrBadCase = errors.New("invalid suite case")
)

// Case is one golden vector.
type Case struct {
	Name    string `toml:"name"`
	File    string `toml:"file"`
	Inputs  string `toml:"inputs"`
	Outputs string `toml:"outputs"`
}

// Suite is a parsed manifest. Circuit paths resolve relative to Dir.
type Suite struct {
	Cases []Case `toml:"case"`
	Dir   string `toml:"-"`
}

// Load reads and validates a TOML manifest. Vectors are checked here so
// Run only ever sees well-formed cases; unnamed cases get a name derived
// from their file and position.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite: %w", err)
	}

	var s Suite
	if err := toml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse suite %s: %w", path, err)
	}
	if len(s.Cases) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySuite, path)
	}

	for i := range s.Cases {
		c := &s.Cases[i]
		if c.File == "" {
			return nil, fmt.Errorf("%w: case %d has no file", ErrBadCase, i)
		}
		if c.Name == "" {
			c.Name = fmt.Sprintf("%s #%d", c.File, i)
		}
		if _, err := ParseVector(c.Inputs); err != nil {
			return nil, fmt.Errorf("case %q inputs: %w", c.Name, err)
		}
		if _, err := ParseVector(c.Outputs); err != nil {
			return nil, fmt.Errorf("case %q outputs: %w", c.Name, err)
		}
	}

	s.Dir = filepath.Dir(path)
	return &s, nil
}

// Result is the outcome of one case.
type Result struct {
	Case Case
	Got  string // formatted output bits, empty when Err is set
	Err  error
}

// Passed reports whether the case produced exactly the expected outputs.
func (r Result) Passed() bool { return r.Err == nil && r.Got == r.Case.Outputs }

// Run evaluates every case and returns results in manifest order. Cases
// that fail to load or evaluate carry the error in their result; one
// broken circuit does not stop the rest of the suite.
func (s *Suite) Run() []Result {
	out := make([]Result, 0, len(s.Cases))
	for _, c := range s.Cases {
		out = append(out, s.run(c))
	}
	return out
}

func (s *Suite) run(c Case) Result {
	res := Result{Case: c}

	f, err := aiger.ReadFile(s.circuitPath(c.File))
	if err != nil {
		res.Err = err
		return res
	}

	inputs, err := ParseVector(c.Inputs)
	if err != nil {
		res.Err = err
		return res
	}

	values, err := f.Graph.Eval(inputs)
	if err != nil {
		res.Err = err
		return res
	}
	outs, err := f.Graph.OutputValues(values)
	if err != nil {
		res.Err = err
		return res
	}

	res.Got = FormatVector(outs)
	if len(res.Got) != len(c.Outputs) {
		res.Err = fmt.Errorf("%w: %q expects %d outputs, circuit has %d",
			ErrBadCase, c.Name, len(c.Outputs), len(res.Got))
	}
	return res
}

func (s *Suite) circuitPath(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(s.Dir, file)
}
