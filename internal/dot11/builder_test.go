package dot11

import "encoding/binary"

// testFrame serialises a frame the way Decode expects to read it.
type testFrame struct {
	version  uint8
	kind     FrameKind
	code     uint8
	flags    Flags
	duration uint16
	addrs    [4]MAC
	seqCtl   uint16
	qos      uint16
	ht       uint32
	body     []byte
	fcs      uint32
}

func (tf testFrame) bytes() []byte {
	out := []byte{tf.code<<4 | uint8(tf.kind)<<2 | tf.version, byte(tf.flags)}
	out = binary.BigEndian.AppendUint16(out, tf.duration)
	for i := 0; i < 3; i++ {
		out = append(out, tf.addrs[i][:]...)
	}
	ft := ParseFrameType(tf.kind, tf.code)
	if ft.Kind == KindManagement || ft.Kind == KindData {
		out = binary.BigEndian.AppendUint16(out, tf.seqCtl)
	}
	if tf.flags&FlagToDS != 0 && tf.flags&FlagFromDS != 0 {
		out = append(out, tf.addrs[3][:]...)
	}
	if ft.IsQoSData() {
		out = binary.BigEndian.AppendUint16(out, tf.qos)
	}
	if tf.flags&FlagOrder != 0 && (ft.IsQoSData() || ft.IsAction()) {
		out = binary.BigEndian.AppendUint32(out, tf.ht)
	}
	out = append(out, tf.body...)
	return binary.BigEndian.AppendUint32(out, tf.fcs)
}

func mac(last byte) MAC {
	return MAC{0x02, 0x00, 0x00, 0x00, 0x00, last}
}
