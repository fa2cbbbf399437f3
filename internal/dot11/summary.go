package dot11

import (
	"encoding/hex"
	"fmt"
)

// Summary is a flat, JSON friendly view of a decoded frame.
type Summary struct {
	Kind            string           `json:"kind"`
	Subtype         string           `json:"subtype"`
	SubtypeCode     uint8            `json:"subtype_code"`
	Reserved        bool             `json:"reserved,omitempty"`
	Flags           []string         `json:"flags,omitempty"`
	DurationID      uint16           `json:"duration_id"`
	Addresses       []AddressSummary `json:"addresses"`
	SequenceControl *SequenceControl `json:"sequence_control,omitempty"`
	QoSControl      *uint16          `json:"qos_control,omitempty"`
	HTControl       *uint32          `json:"ht_control,omitempty"`
	HeaderLen       int              `json:"header_len"`
	BodyLen         int              `json:"body_len"`
	Body            string           `json:"body,omitempty"`
	IntegrityField  string           `json:"integrity_field"`
}

type AddressSummary struct {
	Field int    `json:"field"`
	MAC   string `json:"mac"`
	Roles string `json:"roles"`
}

// Summarize flattens f. Body bytes are hex encoded when withBody is set.
func Summarize(f Frame, withBody bool) Summary {
	t := f.Control.Type
	s := Summary{
		Kind:            t.Kind.String(),
		Subtype:         t.Subtype(),
		SubtypeCode:     t.Code,
		Reserved:        t.Reserved(),
		Flags:           f.Control.Flags().Names(),
		DurationID:      f.DurationID,
		SequenceControl: f.SequenceControl,
		QoSControl:      f.QoSControl,
		HTControl:       f.HTControl,
		HeaderLen:       f.HeaderLen(),
		BodyLen:         len(f.Body),
		IntegrityField:  fmt.Sprintf("%08x", f.IntegrityField),
	}
	roles := f.Roles()
	for i, addr := range f.Addresses() {
		s.Addresses = append(s.Addresses, AddressSummary{
			Field: i + 1,
			MAC:   addr.String(),
			Roles: roles[i].String(),
		})
	}
	if withBody && len(f.Body) > 0 {
		s.Body = hex.EncodeToString(f.Body)
	}
	return s
}
