package capture

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// HexSource reads one hex encoded frame per line. Blank lines and lines
// starting with '#' are skipped; spaces, colons and dashes between bytes are
// ignored.
type HexSource struct {
	sc    *bufio.Scanner
	line  int
	index int
	opts  Options
}

var _ Source = (*HexSource)(nil)

func NewHexSource(r io.Reader, opts Options) *HexSource {
	if opts.MaxFrameBytes <= 0 {
		opts.MaxFrameBytes = DefaultOptions().MaxFrameBytes
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), 2*opts.MaxFrameBytes+1024)
	return &HexSource{sc: sc, opts: opts}
}

var hexSeparators = strings.NewReplacer(" ", "", "\t", "", ":", "", "-", "")

func (s *HexSource) Next() (Record, error) {
	for s.sc.Scan() {
		s.line++
		text := strings.TrimSpace(s.sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		s.index++
		data, err := ParseHex(text)
		if err != nil {
			return Record{}, &PacketError{Index: s.index, Err: fmt.Errorf("line %d: %w", s.line, err)}
		}
		rec := Record{Index: s.index, Data: data}
		if !s.opts.FCSPresent {
			rec.Data = appendFCS(data)
			rec.SyntheticFCS = true
		}
		if len(rec.Data) > s.opts.MaxFrameBytes {
			return Record{}, &PacketError{Index: s.index, Err: fmt.Errorf("%w: line %d is %d bytes", ErrFrameTooLarge, s.line, len(rec.Data))}
		}
		return rec, nil
	}
	if err := s.sc.Err(); err != nil {
		return Record{}, fmt.Errorf("capture: scan: %w", err)
	}
	return Record{}, io.EOF
}

// ParseHex decodes a frame written as hex, tolerating common byte separators
// and a leading 0x.
func ParseHex(text string) ([]byte, error) {
	text = hexSeparators.Replace(strings.TrimSpace(text))
	text = strings.TrimPrefix(strings.TrimPrefix(text, "0x"), "0X")
	return hex.DecodeString(text)
}
