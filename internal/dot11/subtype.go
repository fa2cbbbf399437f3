package dot11

import "fmt"

// FrameKind is the 2-bit type field of Frame Control.
type FrameKind uint8

const (
	KindControl    FrameKind = 0b00
	KindManagement FrameKind = 0b01
	KindData       FrameKind = 0b10
	KindExtension  FrameKind = 0b11
)

func (k FrameKind) String() string {
	switch k {
	case KindControl:
		return "Control"
	case KindManagement:
		return "Management"
	case KindData:
		return "Data"
	case KindExtension:
		return "Extension"
	default:
		return fmt.Sprintf("FrameKind(%d)", uint8(k))
	}
}

type ManagementSubtype uint8

const (
	MgmtAssociationRequest ManagementSubtype = iota
	MgmtAssociationResponse
	MgmtReassociationRequest
	MgmtReassociationResponse
	MgmtProbeRequest
	MgmtProbeResponse
	MgmtTimingAdvertisement
	MgmtBeacon
	MgmtATIM
	MgmtDisassociation
	MgmtAuthentication
	MgmtDeauthentication
	MgmtAction
	MgmtActionNoAck
	MgmtReserved
)

var managementNames = [...]string{
	MgmtAssociationRequest:    "AssociationRequest",
	MgmtAssociationResponse:   "AssociationResponse",
	MgmtReassociationRequest:  "ReassociationRequest",
	MgmtReassociationResponse: "ReassociationResponse",
	MgmtProbeRequest:          "ProbeRequest",
	MgmtProbeResponse:         "ProbeResponse",
	MgmtTimingAdvertisement:   "TimingAdvertisement",
	MgmtBeacon:                "Beacon",
	MgmtATIM:                  "ATIM",
	MgmtDisassociation:        "Disassociation",
	MgmtAuthentication:        "Authentication",
	MgmtDeauthentication:      "Deauthentication",
	MgmtAction:                "Action",
	MgmtActionNoAck:           "ActionNoAck",
	MgmtReserved:              "Reserved",
}

func (s ManagementSubtype) String() string {
	if int(s) < len(managementNames) {
		return managementNames[s]
	}
	return "Reserved"
}

// ParseManagementSubtype maps a 4-bit management subtype code. Codes 0x7 and
// 0xF are reserved.
func ParseManagementSubtype(code uint8) ManagementSubtype {
	switch code & 0x0F {
	case 0x0:
		return MgmtAssociationRequest
	case 0x1:
		return MgmtAssociationResponse
	case 0x2:
		return MgmtReassociationRequest
	case 0x3:
		return MgmtReassociationResponse
	case 0x4:
		return MgmtProbeRequest
	case 0x5:
		return MgmtProbeResponse
	case 0x6:
		return MgmtTimingAdvertisement
	case 0x8:
		return MgmtBeacon
	case 0x9:
		return MgmtATIM
	case 0xA:
		return MgmtDisassociation
	case 0xB:
		return MgmtAuthentication
	case 0xC:
		return MgmtDeauthentication
	case 0xD:
		return MgmtAction
	case 0xE:
		return MgmtActionNoAck
	default:
		return MgmtReserved
	}
}

type ControlSubtype uint8

const (
	CtrlTrigger ControlSubtype = iota
	CtrlBeamformingReportPoll
	CtrlVHTNDPAnnouncement
	CtrlControlFrameExtension
	CtrlControlWrapper
	CtrlBlockAckRequest
	CtrlBlockAck
	CtrlPSPoll
	CtrlRTS
	CtrlCTS
	CtrlACK
	CtrlCFEnd
	CtrlCFEndCFAck
	CtrlReserved
)

var controlNames = [...]string{
	CtrlTrigger:               "Trigger",
	CtrlBeamformingReportPoll: "BeamformingReportPoll",
	CtrlVHTNDPAnnouncement:    "VHTNDPAnnouncement",
	CtrlControlFrameExtension: "ControlFrameExtension",
	CtrlControlWrapper:        "ControlWrapper",
	CtrlBlockAckRequest:       "BlockAckRequest",
	CtrlBlockAck:              "BlockAck",
	CtrlPSPoll:                "PSPoll",
	CtrlRTS:                   "RTS",
	CtrlCTS:                   "CTS",
	CtrlACK:                   "ACK",
	CtrlCFEnd:                 "CFEnd",
	CtrlCFEndCFAck:            "CFEndCFAck",
	CtrlReserved:              "Reserved",
}

func (s ControlSubtype) String() string {
	if int(s) < len(controlNames) {
		return controlNames[s]
	}
	return "Reserved"
}

// ParseControlSubtype maps a 4-bit control subtype code. Codes 0x0, 0x1 and
// 0x3 are reserved.
func ParseControlSubtype(code uint8) ControlSubtype {
	switch code & 0x0F {
	case 0x2:
		return CtrlTrigger
	case 0x4:
		return CtrlBeamformingReportPoll
	case 0x5:
		return CtrlVHTNDPAnnouncement
	case 0x6:
		return CtrlControlFrameExtension
	case 0x7:
		return CtrlControlWrapper
	case 0x8:
		return CtrlBlockAckRequest
	case 0x9:
		return CtrlBlockAck
	case 0xA:
		return CtrlPSPoll
	case 0xB:
		return CtrlRTS
	case 0xC:
		return CtrlCTS
	case 0xD:
		return CtrlACK
	case 0xE:
		return CtrlCFEnd
	case 0xF:
		return CtrlCFEndCFAck
	default:
		return CtrlReserved
	}
}

// DataSubtype holds the four independent bits of a data subtype nibble.
type DataSubtype struct {
	Ack     bool // CF-Ack, bit 0
	Poll    bool // CF-Poll, bit 1
	HasData bool // inverse of the null bit, bit 2
	QoS     bool // bit 3
}

const (
	dataBitAck  uint8 = 0x1
	dataBitPoll uint8 = 0x2
	dataBitNull uint8 = 0x4
	dataBitQoS  uint8 = 0x8
)

func ParseDataSubtype(code uint8) DataSubtype {
	return DataSubtype{
		Ack:     code&dataBitAck != 0,
		Poll:    code&dataBitPoll != 0,
		HasData: code&dataBitNull == 0,
		QoS:     code&dataBitQoS != 0,
	}
}

// Null reports a frame without payload semantics (null/keepalive).
func (s DataSubtype) Null() bool {
	return !s.HasData
}

// Code packs the bits back into the 4-bit subtype code.
func (s DataSubtype) Code() uint8 {
	var c uint8
	if s.Ack {
		c |= dataBitAck
	}
	if s.Poll {
		c |= dataBitPoll
	}
	if !s.HasData {
		c |= dataBitNull
	}
	if s.QoS {
		c |= dataBitQoS
	}
	return c
}

var dataNames = [16]string{
	"Data",
	"Data+CF-Ack",
	"Data+CF-Poll",
	"Data+CF-Ack+CF-Poll",
	"Null",
	"CF-Ack",
	"CF-Poll",
	"CF-Ack+CF-Poll",
	"QoS Data",
	"QoS Data+CF-Ack",
	"QoS Data+CF-Poll",
	"QoS Data+CF-Ack+CF-Poll",
	"QoS Null",
	"Reserved",
	"QoS CF-Poll",
	"QoS CF-Ack+CF-Poll",
}

// Name is the legacy subtype name for the bit combination.
func (s DataSubtype) Name() string {
	return dataNames[s.Code()]
}

func (s DataSubtype) String() string {
	return s.Name()
}

type ExtensionSubtype uint8

const (
	ExtDMGBeacon ExtensionSubtype = iota
	ExtReserved
)

func (s ExtensionSubtype) String() string {
	if s == ExtDMGBeacon {
		return "DMGBeacon"
	}
	return "Reserved"
}

func ParseExtensionSubtype(code uint8) ExtensionSubtype {
	if code&0x0F == 0 {
		return ExtDMGBeacon
	}
	return ExtReserved
}

// FrameType is a tagged variant: only the subtype field selected by Kind is
// meaningful. Code keeps the raw subtype bits so reserved values survive.
type FrameType struct {
	Kind       FrameKind
	Code       uint8
	Management ManagementSubtype
	Control    ControlSubtype
	Data       DataSubtype
	Extension  ExtensionSubtype
}

func ParseFrameType(kind FrameKind, code uint8) FrameType {
	t := FrameType{Kind: kind & 0x03, Code: code & 0x0F}
	switch t.Kind {
	case KindControl:
		t.Control = ParseControlSubtype(t.Code)
	case KindManagement:
		t.Management = ParseManagementSubtype(t.Code)
	case KindData:
		t.Data = ParseDataSubtype(t.Code)
	case KindExtension:
		t.Extension = ParseExtensionSubtype(t.Code)
	}
	return t
}

// Subtype names the subtype within its family.
func (t FrameType) Subtype() string {
	switch t.Kind {
	case KindControl:
		return t.Control.String()
	case KindManagement:
		return t.Management.String()
	case KindData:
		return t.Data.String()
	default:
		return t.Extension.String()
	}
}

func (t FrameType) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Subtype())
}

// Reserved reports whether the subtype code is unassigned in its family.
func (t FrameType) Reserved() bool {
	switch t.Kind {
	case KindControl:
		return t.Control == CtrlReserved
	case KindManagement:
		return t.Management == MgmtReserved
	case KindData:
		return t.Code == 0b1101
	default:
		return t.Extension == ExtReserved
	}
}

func (t FrameType) IsQoSData() bool {
	return t.Kind == KindData && t.Data.QoS
}

// IsAction reports a management Action or Action No Ack frame.
func (t FrameType) IsAction() bool {
	return t.Kind == KindManagement &&
		(t.Management == MgmtAction || t.Management == MgmtActionNoAck)
}
