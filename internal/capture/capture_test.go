package capture

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
	"math/bits"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/dot11dec/internal/dot11"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// beacon-shaped management frame (type 01, subtype 1000) with a 4-byte body and FCS.
var testFrame = []byte{
	0x84, 0x00, 0x00, 0x00,
	0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	0x02, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x02, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x10, 0x00,
	0xde, 0xad, 0xbe, 0xef,
	0x11, 0x22, 0x33, 0x44,
}

func radiotapHeader(fcs bool) []byte {
	flags := byte(0)
	if fcs {
		flags = 0x10
	}
	return []byte{0x00, 0x00, 0x09, 0x00, 0x02, 0x00, 0x00, 0x00, flags}
}

func writePcap(t *testing.T, link layers.LinkType, packets ...[]byte) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	w := pcapgo.NewWriter(&buf)
	if err := w.WriteFileHeader(65536, link); err != nil {
		t.Fatalf("write header: %v", err)
	}
	for i, p := range packets {
		ci := gopacket.CaptureInfo{
			Timestamp:     time.Unix(1700000000+int64(i), 0),
			CaptureLength: len(p),
			Length:        len(p),
		}
		if err := w.WritePacket(ci, p); err != nil {
			t.Fatalf("write packet: %v", err)
		}
	}
	return &buf
}

func TestPcapRawFramesPassThrough(t *testing.T) {
	src, err := OpenPcap(writePcap(t, layers.LinkTypeIEEE802_11, testFrame, testFrame), DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for i := 1; i <= 2; i++ {
		rec, err := src.Next()
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if rec.Index != i || !bytes.Equal(rec.Data, testFrame) || rec.SyntheticFCS {
			t.Fatalf("unexpected record %+v", rec)
		}
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestPcapRawFramesWithoutFCS(t *testing.T) {
	noFCS := testFrame[:len(testFrame)-4]
	opts := DefaultOptions()
	opts.FCSPresent = false
	src, err := OpenPcap(writePcap(t, layers.LinkTypeIEEE802_11, noFCS), opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !rec.SyntheticFCS || len(rec.Data) != len(testFrame) {
		t.Fatalf("expected synthetic fcs, got %+v", rec)
	}
	if got := binary.LittleEndian.Uint32(rec.Data[len(noFCS):]); got != crc32.ChecksumIEEE(noFCS) {
		t.Fatalf("unexpected synthetic fcs %#x", got)
	}
	f, err := dot11.Decode(rec.Data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if want := bits.ReverseBytes32(crc32.ChecksumIEEE(noFCS)); f.IntegrityField != want {
		t.Fatalf("integrity field %#x, want byte-swapped crc %#x", f.IntegrityField, want)
	}
}

func TestPcapFramesUseDecoderTypeNumbering(t *testing.T) {
	// 0x80 is an IEEE beacon; the decoder numbers type 00 as control.
	ieeeBeacon := append([]byte{0x80}, testFrame[1:]...)
	src, err := OpenPcap(writePcap(t, layers.LinkTypeIEEE802_11, ieeeBeacon), DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	f, err := dot11.Decode(rec.Data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Control.Type.Kind != dot11.KindControl || f.Control.Type.Control != dot11.CtrlBlockAckRequest {
		t.Fatalf("expected Control(BlockAckRequest), got %s", f.Control.Type)
	}
}

func TestPcapRadioTapIsStripped(t *testing.T) {
	withFCS := append(radiotapHeader(true), testFrame...)
	src, err := OpenPcap(writePcap(t, layers.LinkTypeIEEE80211Radio, withFCS), DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !bytes.Equal(rec.Data, testFrame) || rec.SyntheticFCS {
		t.Fatalf("radiotap not stripped: % x", rec.Data)
	}
	f, err := dot11.Decode(rec.Data)
	if err != nil {
		t.Fatalf("decode stripped frame: %v", err)
	}
	if f.Control.Type.Management != dot11.MgmtBeacon || !f.Address1.IsBroadcast() {
		t.Fatalf("unexpected frame %s to %s", f.Control.Type, f.Address1)
	}
}

func TestPcapRadioTapWithoutFCSGetsOne(t *testing.T) {
	noFCS := testFrame[:len(testFrame)-4]
	src, err := OpenPcap(writePcap(t, layers.LinkTypeIEEE80211Radio, append(radiotapHeader(false), noFCS...)), DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !rec.SyntheticFCS || len(rec.Data) != len(testFrame) || !bytes.Equal(rec.Data[:len(noFCS)], noFCS) {
		t.Fatalf("unexpected record % x synthetic=%v", rec.Data, rec.SyntheticFCS)
	}
	if _, err := dot11.Decode(rec.Data); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestPcapngIsDetected(t *testing.T) {
	var buf bytes.Buffer
	w, err := pcapgo.NewNgWriter(&buf, layers.LinkTypeIEEE802_11)
	if err != nil {
		t.Fatalf("ng writer: %v", err)
	}
	ci := gopacket.CaptureInfo{Timestamp: time.Unix(1700000000, 0), CaptureLength: len(testFrame), Length: len(testFrame)}
	if err := w.WritePacket(ci, testFrame); err != nil {
		t.Fatalf("write packet: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	src, err := OpenPcap(&buf, DefaultOptions())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !bytes.Equal(rec.Data, testFrame) {
		t.Fatalf("unexpected data % x", rec.Data)
	}
}

func TestPcapRejectsOtherLinkTypes(t *testing.T) {
	_, err := OpenPcap(writePcap(t, layers.LinkTypeEthernet), DefaultOptions())
	if !errors.Is(err, ErrUnsupportedLinkType) {
		t.Fatalf("expected ErrUnsupportedLinkType, got %v", err)
	}
}

func TestPcapEnforcesFrameLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxFrameBytes = 16
	src, err := OpenPcap(writePcap(t, layers.LinkTypeIEEE802_11, testFrame), opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := src.Next(); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestPcapContinuesPastBadPacket(t *testing.T) {
	small := testFrame[:28]
	opts := DefaultOptions()
	opts.MaxFrameBytes = len(small)
	src, err := OpenPcap(writePcap(t, layers.LinkTypeIEEE802_11, testFrame, small), opts)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	_, err = src.Next()
	var perr *PacketError
	if !errors.As(err, &perr) || perr.Index != 1 || !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected packet error for record 1, got %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next after bad packet: %v", err)
	}
	if rec.Index != 2 || !bytes.Equal(rec.Data, small) {
		t.Fatalf("unexpected record index=%d % x", rec.Index, rec.Data)
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestHexSourceSkipsCommentsAndSeparators(t *testing.T) {
	input := strings.Join([]string{
		"# captured frames",
		"",
		"08:00:00:00 000000000000 000000000000 000000000000 00000000",
		"0x0800000000000000000000000000000000000000000000000000",
	}, "\n")
	src := NewHexSource(strings.NewReader(input), DefaultOptions())
	for i := 1; i <= 2; i++ {
		rec, err := src.Next()
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if rec.Index != i || len(rec.Data) != 26 {
			t.Fatalf("record %d: index=%d len=%d", i, rec.Index, len(rec.Data))
		}
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestHexSourceReportsBadLine(t *testing.T) {
	good := "08000000" + strings.Repeat("00", 18) + "0000" + "00000000"
	src := NewHexSource(strings.NewReader("# header\nzz\n"+good+"\n"), DefaultOptions())
	_, err := src.Next()
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
	var perr *PacketError
	if !errors.As(err, &perr) || perr.Index != 1 {
		t.Fatalf("expected packet error for record 1, got %v", err)
	}
	rec, err := src.Next()
	if err != nil {
		t.Fatalf("next after bad line: %v", err)
	}
	if rec.Index != 2 || len(rec.Data) != 28 {
		t.Fatalf("unexpected record index=%d len=%d", rec.Index, len(rec.Data))
	}
}
