package capture

import (
	"bufio"
	"fmt"
	"io"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// pcapng section header block type; byte-order independent.
var pcapngMagic = []byte{0x0A, 0x0D, 0x0D, 0x0A}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// PcapSource reads pcap or pcapng captures of raw 802.11 or radiotap frames.
type PcapSource struct {
	r     packetReader
	link  layers.LinkType
	opts  Options
	index int
}

var _ Source = (*PcapSource)(nil)

func OpenPcap(r io.Reader, opts Options) (*PcapSource, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, fmt.Errorf("capture: read magic: %w", err)
	}

	var pr packetReader
	if string(magic) == string(pcapngMagic) {
		pr, err = pcapgo.NewNgReader(br, pcapgo.DefaultNgReaderOptions)
	} else {
		pr, err = pcapgo.NewReader(br)
	}
	if err != nil {
		return nil, fmt.Errorf("capture: open: %w", err)
	}

	link := pr.LinkType()
	switch link {
	case layers.LinkTypeIEEE802_11, layers.LinkTypeIEEE80211Radio:
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLinkType, link)
	}
	if opts.MaxFrameBytes <= 0 {
		opts.MaxFrameBytes = DefaultOptions().MaxFrameBytes
	}
	return &PcapSource{r: pr, link: link, opts: opts}, nil
}

func (s *PcapSource) LinkType() layers.LinkType {
	return s.link
}

// Next returns io.EOF once the capture is exhausted. Malformed radiotap and
// oversized frames come back as *PacketError.
func (s *PcapSource) Next() (Record, error) {
	data, ci, err := s.r.ReadPacketData()
	if err != nil {
		return Record{}, err
	}
	s.index++
	rec := Record{Index: s.index, Timestamp: ci.Timestamp}

	switch s.link {
	case layers.LinkTypeIEEE80211Radio:
		rec.Data, rec.SyntheticFCS, err = stripRadioTap(data)
		if err != nil {
			return Record{}, &PacketError{Index: s.index, Err: err}
		}
	default:
		if s.opts.FCSPresent {
			rec.Data = append([]byte(nil), data...)
		} else {
			rec.Data = appendFCS(data)
			rec.SyntheticFCS = true
		}
	}
	if len(rec.Data) > s.opts.MaxFrameBytes {
		return Record{}, &PacketError{Index: s.index, Err: fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(rec.Data))}
	}
	return rec, nil
}

// stripRadioTap drops the radiotap preamble and any driver padding. Radiotap
// flags say whether the FCS is on the wire; when it is not, one is appended so
// the buffer keeps the decoder's input shape.
func stripRadioTap(data []byte) (frame []byte, synthetic bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			frame, synthetic, err = nil, false, fmt.Errorf("radiotap: malformed header: %v", r)
		}
	}()
	var rt layers.RadioTap
	if err := rt.DecodeFromBytes(data, gopacket.NilDecodeFeedback); err != nil {
		return nil, false, fmt.Errorf("radiotap: %w", err)
	}
	payload := rt.Payload
	if rt.Flags.FCS() {
		return append([]byte(nil), payload...), false, nil
	}
	// Newer gopacket releases already append a checksum for FCS-less frames.
	if len(payload) > len(data)-int(rt.Length) {
		return append([]byte(nil), payload...), true, nil
	}
	return appendFCS(payload), true, nil
}
