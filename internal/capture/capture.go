package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"time"
)

var (
	ErrUnsupportedLinkType = errors.New("capture: unsupported link type")
	ErrFrameTooLarge       = errors.New("capture: frame exceeds size limit")
)

// PacketError is a failure confined to one record. The source stays usable and
// the next call moves on to the following record.
type PacketError struct {
	Index int
	Err   error
}

func (e *PacketError) Error() string {
	return fmt.Sprintf("capture: record %d: %v", e.Index, e.Err)
}

func (e *PacketError) Unwrap() error {
	return e.Err
}

// Record is one frame buffer, header through integrity field.
type Record struct {
	Index     int
	Timestamp time.Time
	Data      []byte
	// SyntheticFCS is set when the capture carried no FCS and one was appended.
	SyntheticFCS bool
}

// Source yields records until it returns io.EOF. A *PacketError skips one
// record; any other error ends the capture.
type Source interface {
	Next() (Record, error)
}

type Options struct {
	// FCSPresent tells whether raw (non-radiotap) captures keep the FCS.
	FCSPresent    bool
	MaxFrameBytes int
}

func DefaultOptions() Options {
	return Options{FCSPresent: true, MaxFrameBytes: 16 * 1024}
}

// appendFCS returns a copy of frame with a CRC-32 integrity field appended,
// little-endian as on the air. dot11.Decode reads the field big-endian, so the
// decoded IntegrityField holds the CRC byte-swapped, same as for a captured FCS.
func appendFCS(frame []byte) []byte {
	out := make([]byte, len(frame)+4)
	copy(out, frame)
	binary.LittleEndian.PutUint32(out[len(frame):], crc32.ChecksumIEEE(frame))
	return out
}
