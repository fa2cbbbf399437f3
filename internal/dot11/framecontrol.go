package dot11

import "strings"

const frameControlLen = 2

// FrameControl is the decoded 2-byte leading field of every MAC header.
type FrameControl struct {
	Version       uint8
	Type          FrameType
	ToDS          bool
	FromDS        bool
	MoreFragments bool
	Retry         bool
	PowerMgmt     bool
	MoreData      bool
	Protected     bool
	Order         bool
}

// Flags packs the eight flag bits in wire order, to_ds in bit 0.
type Flags uint8

const (
	FlagToDS Flags = 1 << iota
	FlagFromDS
	FlagMoreFragments
	FlagRetry
	FlagPowerMgmt
	FlagMoreData
	FlagProtected
	FlagOrder
)

var flagNames = [8]string{"ToDS", "FromDS", "MoreFragments", "Retry", "PowerMgmt", "MoreData", "Protected", "Order"}

// Names lists the set flags in wire order.
func (f Flags) Names() []string {
	var out []string
	for i, name := range flagNames {
		if f&(1<<uint(i)) != 0 {
			out = append(out, name)
		}
	}
	return out
}

func (f Flags) String() string {
	return strings.Join(f.Names(), ",")
}

func (fc FrameControl) Flags() Flags {
	var f Flags
	set := func(on bool, bit Flags) {
		if on {
			f |= bit
		}
	}
	set(fc.ToDS, FlagToDS)
	set(fc.FromDS, FlagFromDS)
	set(fc.MoreFragments, FlagMoreFragments)
	set(fc.Retry, FlagRetry)
	set(fc.PowerMgmt, FlagPowerMgmt)
	set(fc.MoreData, FlagMoreData)
	set(fc.Protected, FlagProtected)
	set(fc.Order, FlagOrder)
	return f
}

// decodeFrameControl reads the two Frame Control bytes. The cursor is MSB
// first, so byte 0 yields subtype, type, version and byte 1 yields the flags
// from order down to to_ds.
func decodeFrameControl(c *BitCursor) (FrameControl, error) {
	var fc FrameControl
	if err := c.ByteAlign(); err != nil {
		return fc, err
	}
	subtype, err := c.TakeBits(4)
	if err != nil {
		return fc, err
	}
	kind, err := c.TakeBits(2)
	if err != nil {
		return fc, err
	}
	version, err := c.TakeBits(2)
	if err != nil {
		return fc, err
	}
	if version != 0 {
		return fc, &DecodeError{Err: ErrUnsupportedVersion, Offset: 0}
	}
	fc.Version = uint8(version)
	fc.Type = ParseFrameType(FrameKind(kind), uint8(subtype))

	flags := []*bool{
		&fc.Order, &fc.Protected, &fc.MoreData, &fc.PowerMgmt,
		&fc.Retry, &fc.MoreFragments, &fc.FromDS, &fc.ToDS,
	}
	for _, dst := range flags {
		if *dst, err = c.TakeBool(); err != nil {
			return FrameControl{}, err
		}
	}
	if err := c.ByteAlign(); err != nil {
		return FrameControl{}, err
	}
	return fc, nil
}
