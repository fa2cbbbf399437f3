package dot11

const (
	durationLen        = 2
	sequenceControlLen = 2
	qosControlLen      = 2
	htControlLen       = 4

	// IntegrityFieldLen is the trailing FCS width.
	IntegrityFieldLen = 4
	// MinFrameLen covers frame control, duration, three addresses and the FCS.
	// Management and data frames need two more bytes for sequence control.
	MinFrameLen = frameControlLen + durationLen + 3*addressLen + IntegrityFieldLen
	// MaxHeaderLen is the widest header: four addresses, sequence, QoS and HT control.
	MaxHeaderLen = frameControlLen + durationLen + 4*addressLen + sequenceControlLen + qosControlLen + htControlLen
)

// SequenceControl identifies a fragment within an MSDU sequence.
type SequenceControl struct {
	FragmentNumber uint8  `json:"fragment"`
	SequenceNumber uint16 `json:"sequence"`
}

// hasSequenceControl is true for management and data frames only.
func hasSequenceControl(t FrameType) bool {
	return t.Kind == KindManagement || t.Kind == KindData
}

func decodeSequenceControl(c *BitCursor) (SequenceControl, error) {
	if err := c.ByteAlign(); err != nil {
		return SequenceControl{}, err
	}
	frag, err := c.TakeBits(4)
	if err != nil {
		return SequenceControl{}, err
	}
	seq, err := c.TakeBits(12)
	if err != nil {
		return SequenceControl{}, err
	}
	if err := c.ByteAlign(); err != nil {
		return SequenceControl{}, err
	}
	return SequenceControl{FragmentNumber: uint8(frag), SequenceNumber: uint16(seq)}, nil
}

func hasQoSControl(t FrameType) bool {
	return t.IsQoSData()
}

// hasHTControl requires the order flag on a QoS data or management action frame.
func hasHTControl(fc FrameControl) bool {
	return fc.Order && (fc.Type.IsQoSData() || fc.Type.IsAction())
}

// minFrameLen is the shortest buffer that holds a frame of type t with none of
// the flag-dependent fields and an empty body.
func minFrameLen(t FrameType) int {
	if hasSequenceControl(t) {
		return MinFrameLen + sequenceControlLen
	}
	return MinFrameLen
}

// resolveBodyLength returns the body width between the header and the FCS.
// A buffer shorter than shortest is plain ErrTruncated. A buffer that holds the
// mandatory fields but not the ones the flags asked for reports
// ErrInconsistentLength.
func resolveBodyLength(total, consumed, shortest int) (int, error) {
	n := total - consumed - IntegrityFieldLen
	if n >= 0 {
		return n, nil
	}
	err := ErrTruncated
	if total >= shortest {
		err = ErrInconsistentLength
	}
	return 0, &DecodeError{Err: err, Offset: consumed}
}
