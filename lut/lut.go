// Package lut implements the hardware LUT data model and its text
// encoding.
//
// Each of the 64 entries holds a quadratic coefficient triple encoded
// as three 32-bit IEEE-754 single-precision bit patterns. The on-disk
// format is one line per entry:
//
//	<index> h<c0 bits> h<c1 bits> h<c2 bits>
//
// with each bit pattern written as exactly 8 hex digits in big-endian
// order. The "h" prefix is the hardware-literal marker expected by the
// downstream HDL tooling (in place of the conventional "0x").
package lut

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/whyuwhyi/tanhv2/segment"
)

// NumEntries is the fixed table size. Write and Read enforce it.
const NumEntries = segment.NumSegments

// WordBytes is the storage cost of one coefficient word in hardware.
const WordBytes = 4

// PayloadBytes is the total hardware payload: three 32-bit words per entry.
const PayloadBytes = NumEntries * 3 * WordBytes

// Coeffs is one quadratic coefficient triple: C0 + C1*x + C2*x².
// The zero value is the triple emitted for inactive segments.
type Coeffs struct {
	C0 float64 `json:"c0"`
	C1 float64 `json:"c1"`
	C2 float64 `json:"c2"`
}

// Eval evaluates the quadratic at x using Horner's form.
func (c Coeffs) Eval(x float64) float64 {
	return c.C0 + x*(c.C1+x*c.C2)
}

// IsZero reports whether the triple is exactly (0, 0, 0).
func (c Coeffs) IsZero() bool {
	return c.C0 == 0 && c.C1 == 0 && c.C2 == 0
}

// Table is the complete ordered LUT, indexed directly by segment
// address. The fixed length is the coverage invariant: every address in
// [0, NumEntries) has exactly one entry by construction.
type Table [NumEntries]Coeffs

// FloatBits encodes f as a hardware literal: "h" followed by the 8 hex
// digits of the big-endian IEEE-754 single-precision bit pattern.
// The value is rounded to float32 before the bits are extracted.
func FloatBits(f float64) string {
	var buf [WordBytes]byte
	binary.BigEndian.PutUint32(buf[:], math.Float32bits(float32(f)))
	return fmt.Sprintf("h%02x%02x%02x%02x", buf[0], buf[1], buf[2], buf[3])
}

// ParseBits decodes a hardware literal produced by FloatBits back into
// the float32 it encodes.
func ParseBits(s string) (float32, error) {
	if len(s) != 9 || s[0] != 'h' {
		return 0, fmt.Errorf("lut: malformed hardware literal %q", s)
	}
	var bits uint32
	for _, r := range s[1:] {
		var d uint32
		switch {
		case r >= '0' && r <= '9':
			d = uint32(r - '0')
		case r >= 'a' && r <= 'f':
			d = uint32(r-'a') + 10
		case r >= 'A' && r <= 'F':
			d = uint32(r-'A') + 10
		default:
			return 0, fmt.Errorf("lut: malformed hardware literal %q", s)
		}
		bits = bits<<4 | d
	}
	return math.Float32frombits(bits), nil
}

// Write serializes the table in address order: one newline-terminated
// line per entry, single spaces between fields, no header.
func (t *Table) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, c := range t {
		if _, err := fmt.Fprintf(bw, "%d %s %s %s\n",
			i, FloatBits(c.C0), FloatBits(c.C1), FloatBits(c.C2)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Read parses a serialized table. It enforces the full-coverage
// invariant: exactly NumEntries lines with ascending indices 0..63.
// Coefficients are returned at float32 precision, the precision the
// table actually stores.
func Read(r io.Reader) (*Table, error) {
	var t Table

	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if n >= NumEntries {
			return nil, fmt.Errorf("lut: more than %d entries", NumEntries)
		}

		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("lut: entry %d: expected 4 fields, got %d", n, len(fields))
		}

		var idx int
		if _, err := fmt.Sscanf(fields[0], "%d", &idx); err != nil {
			return nil, fmt.Errorf("lut: entry %d: bad index %q: %w", n, fields[0], err)
		}
		if idx != n {
			return nil, fmt.Errorf("lut: entry %d: out-of-order index %d", n, idx)
		}

		var vals [3]float32
		for i, f := range fields[1:] {
			v, err := ParseBits(f)
			if err != nil {
				return nil, fmt.Errorf("lut: entry %d: %w", n, err)
			}
			vals[i] = v
		}

		t[n] = Coeffs{C0: float64(vals[0]), C1: float64(vals[1]), C2: float64(vals[2])}
		n++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if n != NumEntries {
		return nil, fmt.Errorf("lut: expected %d entries, got %d", NumEntries, n)
	}

	return &t, nil
}
