package aiger

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/aigkit/pkg/aig"
)

// header carries the five counts of the "aag M I L O A" problem line.
type header struct {
	m, i, l, o, a int
}

func parseHeader(line, tag string) (header, error) {
	parts := strings.Split(line, " ")
	if len(parts) != 6 || parts[0] != tag {
		return header{}, fmt.Errorf("%w: want %q M I L O A, got %q", ErrBadHeader, tag, line)
	}
	var vals [5]int
	for k, p := range parts[1:] {
		v, err := strconv.ParseUint(p, 10, 31)
		if err != nil {
			return header{}, fmt.Errorf("%w: %q is not a count", ErrBadHeader, p)
		}
		vals[k] = int(v)
	}
	h := header{m: vals[0], i: vals[1], l: vals[2], o: vals[3], a: vals[4]}
	if h.m < h.i+h.l+h.a {
		return header{}, fmt.Errorf("%w: M=%d < I+L+A=%d", ErrBadHeader, h.m, h.i+h.l+h.a)
	}
	return h, nil
}

// nextLine reads one newline-terminated record. A clean EOF before the
// record means the file stopped short of its declared counts.
func nextLine(br *bufio.Reader, kind string) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if err != io.EOF {
			return "", err
		}
		if line == "" {
			return "", fmt.Errorf("%w: missing %s record", ErrTruncated, kind)
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseLiteral reads a packed literal and bounds-checks it against the
// header's maximum variable index.
func parseLiteral(s string, max int) (aig.Ref, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadLiteral, s)
	}
	r := aig.FromRaw(uint32(v))
	if int(r.ID()) > max {
		return 0, fmt.Errorf("%w: %s exceeds max variable %d", ErrBadLiteral, r, max)
	}
	return r, nil
}

// parseDef reads a defining literal, which must be positive and non-zero:
// files define nodes, never their negations, and never the constant.
func parseDef(s string, max int, kind string) (uint32, error) {
	r, err := parseLiteral(s, max)
	if err != nil {
		return 0, err
	}
	if r.Negated() {
		return 0, fmt.Errorf("%w: %s definition %q is negated", ErrBadLiteral, kind, s)
	}
	if r.ID() == 0 {
		return 0, fmt.Errorf("%w: %s definition uses the constant", ErrBadLiteral, kind)
	}
	return r.ID(), nil
}

func readASCII(br *bufio.Reader) (*File, error) {
	line, err := nextLine(br, "header")
	if err != nil {
		return nil, err
	}
	h, err := parseHeader(line, "aag")
	if err != nil {
		return nil, err
	}

	g := aig.New()
	for k := 0; k < h.i; k++ {
		line, err := nextLine(br, "input")
		if err != nil {
			return nil, err
		}
		id, err := parseDef(line, h.m, "input")
		if err != nil {
			return nil, err
		}
		if err := g.AddInput(id); err != nil {
			return nil, err
		}
	}
	for k := 0; k < h.l; k++ {
		line, err := nextLine(br, "latch")
		if err != nil {
			return nil, err
		}
		parts := strings.Split(line, " ")
		if len(parts) != 2 {
			return nil, fmt.Errorf("%w: latch record %q, want \"current next\"", ErrBadLiteral, line)
		}
		id, err := parseDef(parts[0], h.m, "latch")
		if err != nil {
			return nil, err
		}
		next, err := parseLiteral(parts[1], h.m)
		if err != nil {
			return nil, err
		}
		if err := g.AddLatch(id, next); err != nil {
			return nil, err
		}
	}
	for k := 0; k < h.o; k++ {
		line, err := nextLine(br, "output")
		if err != nil {
			return nil, err
		}
		r, err := parseLiteral(line, h.m)
		if err != nil {
			return nil, err
		}
		g.AddOutput(r)
	}
	for k := 0; k < h.a; k++ {
		line, err := nextLine(br, "gate")
		if err != nil {
			return nil, err
		}
		parts := strings.Split(line, " ")
		if len(parts) != 3 {
			return nil, fmt.Errorf("%w: gate record %q, want \"lhs rhs0 rhs1\"", ErrBadLiteral, line)
		}
		id, err := parseDef(parts[0], h.m, "gate")
		if err != nil {
			return nil, err
		}
		a, err := parseLiteral(parts[1], h.m)
		if err != nil {
			return nil, err
		}
		b, err := parseLiteral(parts[2], h.m)
		if err != nil {
			return nil, err
		}
		if err := g.AddGate(id, a, b); err != nil {
			return nil, err
		}
	}

	f := &File{Graph: g}
	if err := readTrailer(br, f, h); err != nil {
		return nil, err
	}
	return f, nil
}

func readBinary(br *bufio.Reader) (*File, error) {
	line, err := nextLine(br, "header")
	if err != nil {
		return nil, err
	}
	h, err := parseHeader(line, "aig")
	if err != nil {
		return nil, err
	}
	// Binary numbering is gapless: inputs take variables 1..I, latches the
	// next L, gates the rest.
	if h.m != h.i+h.l+h.a {
		return nil, fmt.Errorf("%w: binary requires M = I+L+A, got M=%d I+L+A=%d", ErrBadHeader, h.m, h.i+h.l+h.a)
	}

	g := aig.New()
	for k := 0; k < h.i; k++ {
		if err := g.AddInput(uint32(k + 1)); err != nil {
			return nil, err
		}
	}
	for k := 0; k < h.l; k++ {
		line, err := nextLine(br, "latch")
		if err != nil {
			return nil, err
		}
		next, err := parseLiteral(line, h.m)
		if err != nil {
			return nil, err
		}
		if err := g.AddLatch(uint32(h.i+k+1), next); err != nil {
			return nil, err
		}
	}
	for k := 0; k < h.o; k++ {
		line, err := nextLine(br, "output")
		if err != nil {
			return nil, err
		}
		r, err := parseLiteral(line, h.m)
		if err != nil {
			return nil, err
		}
		g.AddOutput(r)
	}
	for k := 0; k < h.a; k++ {
		id := uint32(h.i + h.l + k + 1)
		lhs := id * 2
		d0, err := readVarint(br)
		if err != nil {
			return nil, err
		}
		d1, err := readVarint(br)
		if err != nil {
			return nil, err
		}
		if d0 == 0 || d0 > lhs {
			return nil, fmt.Errorf("%w: gate @%d delta0 %d out of range", ErrBadLiteral, id, d0)
		}
		rhs0 := lhs - d0
		if d1 > rhs0 {
			return nil, fmt.Errorf("%w: gate @%d delta1 %d out of range", ErrBadLiteral, id, d1)
		}
		if err := g.AddGate(id, aig.FromRaw(rhs0), aig.FromRaw(rhs0-d1)); err != nil {
			return nil, err
		}
	}

	f := &File{Graph: g}
	if err := readTrailer(br, f, h); err != nil {
		return nil, err
	}
	return f, nil
}

// readVarint decodes one AIGER 7-bit variable-length integer: little
// endian groups of 7 bits, high bit set while more bytes follow.
func readVarint(br *bufio.Reader) (uint32, error) {
	var x uint32
	var shift uint
	for {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				err = ErrTruncated
			}
			return 0, fmt.Errorf("gate delta: %w", err)
		}
		x |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return x, nil
		}
		shift += 7
		if shift > 28 {
			return 0, fmt.Errorf("%w: delta overflows 32 bits", ErrBadLiteral)
		}
	}
}

// readTrailer consumes the optional symbol table and comment section.
func readTrailer(br *bufio.Reader, f *File, h header) error {
	inComment := false
	for {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		done := err == io.EOF
		line = strings.TrimRight(line, "\r\n")
		switch {
		case line == "" && done:
			return nil
		case inComment:
			f.Comments = append(f.Comments, line)
		case strings.HasPrefix(line, "c"):
			inComment = true
		default:
			if err := f.addSymbol(line, h); err != nil {
				return err
			}
		}
		if done {
			return nil
		}
	}
}

func (f *File) addSymbol(line string, h header) error {
	if len(line) < 2 {
		return fmt.Errorf("%w: %q", ErrBadSymbol, line)
	}
	rest := line[1:]
	sp := strings.IndexByte(rest, ' ')
	if sp <= 0 {
		return fmt.Errorf("%w: %q", ErrBadSymbol, line)
	}
	pos, err := strconv.Atoi(rest[:sp])
	if err != nil || pos < 0 {
		return fmt.Errorf("%w: bad position in %q", ErrBadSymbol, line)
	}
	name := rest[sp+1:]
	if name == "" {
		return fmt.Errorf("%w: empty name in %q", ErrBadSymbol, line)
	}

	switch line[0] {
	case 'i':
		return put(&f.Symbols.Inputs, pos, h.i, name, line)
	case 'l':
		return put(&f.Symbols.Latches, pos, h.l, name, line)
	case 'o':
		return put(&f.Symbols.Outputs, pos, h.o, name, line)
	}
	return fmt.Errorf("%w: unknown kind in %q", ErrBadSymbol, line)
}

func put(table *map[int]string, pos, count int, name, line string) error {
	if pos >= count {
		return fmt.Errorf("%w: position %d out of range in %q", ErrBadSymbol, pos, line)
	}
	if *table == nil {
		*table = make(map[int]string)
	}
	if _, dup := (*table)[pos]; dup {
		return fmt.Errorf("%w: duplicate entry %q", ErrBadSymbol, line)
	}
	(*table)[pos] = name
	return nil
}
