package dot11

import "fmt"

// State is a step of the frame assembler. Steps only move forward.
type State uint8

const (
	StateStart State = iota
	StateFrameControlDecoded
	StateAddressesDecoded
	StateSequenceControlResolved
	StateAddress4Resolved
	StateQoSResolved
	StateHTResolved
	StateBodyResolved
	StateIntegrityFieldRead
	StateDone
)

var stateNames = [...]string{
	StateStart:                   "start",
	StateFrameControlDecoded:     "frame_control_decoded",
	StateAddressesDecoded:        "addresses_decoded",
	StateSequenceControlResolved: "sequence_control_resolved",
	StateAddress4Resolved:        "address4_resolved",
	StateQoSResolved:             "qos_resolved",
	StateHTResolved:              "ht_resolved",
	StateBodyResolved:            "body_resolved",
	StateIntegrityFieldRead:      "integrity_field_read",
	StateDone:                    "done",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Decode parses exactly one MAC frame, header through integrity field. On
// failure the returned error is a *DecodeError and no partial frame is
// returned.
func Decode(buf []byte) (Frame, error) {
	a := assembler{cur: NewBitCursor(buf), total: len(buf)}
	for a.state != StateDone {
		if err := a.step(); err != nil {
			return Frame{}, a.fail(err)
		}
	}
	return a.frame, nil
}

type assembler struct {
	cur   *BitCursor
	total int
	state State
	frame Frame
}

func (a *assembler) step() error {
	f := &a.frame
	switch a.state {
	case StateStart:
		fc, err := decodeFrameControl(a.cur)
		if err != nil {
			return err
		}
		f.Control = fc

	case StateFrameControlDecoded:
		dur, err := a.cur.TakeUint16()
		if err != nil {
			return err
		}
		f.DurationID = dur
		for _, dst := range []*MAC{&f.Address1, &f.Address2, &f.Address3} {
			if *dst, err = decodeAddress(a.cur); err != nil {
				return err
			}
		}

	case StateAddressesDecoded:
		if hasSequenceControl(f.Control.Type) {
			sc, err := decodeSequenceControl(a.cur)
			if err != nil {
				return err
			}
			f.SequenceControl = &sc
		}

	case StateSequenceControlResolved:
		if HasAddress4(f.Control) {
			addr, err := decodeAddress(a.cur)
			if err != nil {
				return err
			}
			f.Address4 = &addr
		}

	case StateAddress4Resolved:
		if hasQoSControl(f.Control.Type) {
			qos, err := a.cur.TakeUint16()
			if err != nil {
				return err
			}
			f.QoSControl = &qos
		}

	case StateQoSResolved:
		if hasHTControl(f.Control) {
			ht, err := a.cur.TakeUint32()
			if err != nil {
				return err
			}
			f.HTControl = &ht
		}

	case StateHTResolved:
		n, err := resolveBodyLength(a.total, a.cur.Offset(), minFrameLen(f.Control.Type))
		if err != nil {
			return err
		}
		body, err := a.cur.TakeBytes(n)
		if err != nil {
			return err
		}
		f.Body = make([]byte, n)
		copy(f.Body, body)

	case StateBodyResolved:
		fcs, err := a.cur.TakeUint32()
		if err != nil {
			return err
		}
		f.IntegrityField = fcs
	}
	a.state++
	return nil
}

func (a *assembler) fail(err error) error {
	de, ok := err.(*DecodeError)
	if !ok {
		de = &DecodeError{Err: err, Offset: a.cur.Offset()}
	}
	de.State = a.state
	return de
}
