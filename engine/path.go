package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// PathCommand is one instruction of an SVG-compatible path description
type PathCommand interface {
	Encode() []byte
}

// MoveTo starts a new subpath at (X, Y)
type MoveTo struct {
	X, Y float64
}

func (c MoveTo) Encode() []byte {
	return []byte("M " + formatNumber(c.X) + " " + formatNumber(c.Y))
}

// LineTo draws a straight line to (X, Y)
type LineTo struct {
	X, Y float64
}

func (c LineTo) Encode() []byte {
	return []byte("L " + formatNumber(c.X) + " " + formatNumber(c.Y))
}

// ArcTo draws an elliptical arc to (X, Y)
type ArcTo struct {
	RX, RY   float64
	Rotation float64
	LargeArc bool
	Sweep    bool
	X, Y     float64
}

func (c ArcTo) Encode() []byte {
	parts := []string{
		"A",
		formatNumber(c.RX),
		formatNumber(c.RY),
		formatNumber(c.Rotation),
		formatFlag(c.LargeArc),
		formatFlag(c.Sweep),
		formatNumber(c.X),
		formatNumber(c.Y),
	}
	return []byte(strings.Join(parts, " "))
}

// ClosePath closes the current subpath
type ClosePath struct{}

func (ClosePath) Encode() []byte {
	return []byte("Z")
}

// Path is an ordered list of commands
type Path []PathCommand

func (p Path) Encode() []byte {
	buf := &bytes.Buffer{}
	for i, cmd := range p {
		if i > 0 {
			buf.WriteByte(' ')
		}
		buf.Write(cmd.Encode())
	}
	return buf.Bytes()
}

// String returns the path in SVG "d" attribute syntax
func (p Path) String() string {
	return string(p.Encode())
}

// Coordinates are rounded to 1e-6 on encoding so trigonometric noise
// (6.1e-15 instead of 0) never reaches the wire.
func formatNumber(v float64) string {
	v = math.Round(v*1e6) / 1e6
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// PathDecoder reads commands back out of a path description
type PathDecoder struct {
	tokens []string
	pos    int
}

func NewPathDecoder(d string) *PathDecoder {
	return &PathDecoder{tokens: tokenizePath(d)}
}

// Decode returns the next command, or io.EOF when the description is exhausted
func (d *PathDecoder) Decode() (PathCommand, error) {
	if d.pos >= len(d.tokens) {
		return nil, io.EOF
	}

	op := d.tokens[d.pos]
	d.pos++ // skip command letter

	switch op {
	case "M":
		nums, err := d.numbers(2)
		if err != nil {
			return nil, fmt.Errorf("moveto: %w", err)
		}
		return MoveTo{X: nums[0], Y: nums[1]}, nil
	case "L":
		nums, err := d.numbers(2)
		if err != nil {
			return nil, fmt.Errorf("lineto: %w", err)
		}
		return LineTo{X: nums[0], Y: nums[1]}, nil
	case "A":
		nums, err := d.numbers(7)
		if err != nil {
			return nil, fmt.Errorf("arcto: %w", err)
		}
		large, err := parseFlag(nums[3])
		if err != nil {
			return nil, fmt.Errorf("arcto large-arc: %w", err)
		}
		sweep, err := parseFlag(nums[4])
		if err != nil {
			return nil, fmt.Errorf("arcto sweep: %w", err)
		}
		return ArcTo{
			RX:       nums[0],
			RY:       nums[1],
			Rotation: nums[2],
			LargeArc: large,
			Sweep:    sweep,
			X:        nums[5],
			Y:        nums[6],
		}, nil
	case "Z", "z":
		return ClosePath{}, nil
	default:
		return nil, fmt.Errorf("unsupported path command %q at token %d", op, d.pos-1)
	}
}

func (d *PathDecoder) numbers(n int) ([]float64, error) {
	if d.pos+n > len(d.tokens) {
		return nil, errors.New("unexpected end of path")
	}
	nums := make([]float64, n)
	for i := range nums {
		v, err := strconv.ParseFloat(d.tokens[d.pos], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", d.tokens[d.pos])
		}
		nums[i] = v
		d.pos++
	}
	return nums, nil
}

func parseFlag(v float64) (bool, error) {
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("flag must be 0 or 1, got %g", v)
}

// ParsePath decodes an absolute M/L/A/Z path description
func ParsePath(d string) (Path, error) {
	decoder := NewPathDecoder(d)
	var path Path
	for {
		cmd, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return path, nil
		}
		if err != nil {
			return nil, err
		}
		path = append(path, cmd)
	}
}

// tokenizePath splits on whitespace and commas and separates command
// letters from the numbers glued to them ("M10,20" -> M 10 20).
func tokenizePath(d string) []string {
	var tokens []string
	var num strings.Builder
	flush := func() {
		if num.Len() > 0 {
			tokens = append(tokens, num.String())
			num.Reset()
		}
	}

	var prev rune
	for _, r := range d {
		switch {
		case unicode.IsSpace(r) || r == ',':
			flush()
		case r == 'e' || r == 'E':
			num.WriteRune(r) // exponent
		case unicode.IsLetter(r):
			flush()
			tokens = append(tokens, string(r))
		case r == '-' && num.Len() > 0 && prev != 'e' && prev != 'E':
			flush()
			num.WriteRune(r)
		default:
			num.WriteRune(r)
		}
		prev = r
	}
	flush()
	return tokens
}
