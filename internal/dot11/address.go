package dot11

import (
	"net"
	"strings"
)

const addressLen = 6

// MAC is a 6-byte IEEE 802 hardware address.
type MAC [addressLen]byte

// NewMAC builds an address from exactly six bytes.
func NewMAC(b []byte) (MAC, error) {
	var m MAC
	if len(b) != addressLen {
		return m, ErrInvalidAddress
	}
	copy(m[:], b)
	return m, nil
}

func (m MAC) HardwareAddr() net.HardwareAddr {
	return net.HardwareAddr(m[:])
}

func (m MAC) String() string {
	return m.HardwareAddr().String()
}

func (m MAC) IsBroadcast() bool {
	return m == MAC{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// Role is the meaning an address field carries for a given DS combination.
type Role uint8

const (
	RoleRA Role = 1 << iota
	RoleTA
	RoleDA
	RoleSA
	RoleBSSID
)

func (r Role) String() string {
	var parts []string
	for _, p := range []struct {
		bit  Role
		name string
	}{
		{RoleRA, "RA"}, {RoleTA, "TA"}, {RoleDA, "DA"}, {RoleSA, "SA"}, {RoleBSSID, "BSSID"},
	} {
		if r&p.bit != 0 {
			parts = append(parts, p.name)
		}
	}
	return strings.Join(parts, "=")
}

// AddressRoles holds the role of address fields 1 to 4; index 3 is zero
// unless the fourth address is present.
type AddressRoles [4]Role

// HasAddress4 is the presence predicate for the fourth address field.
func HasAddress4(fc FrameControl) bool {
	return fc.ToDS && fc.FromDS
}

// ResolveRoles maps the to_ds/from_ds combination onto address roles.
func ResolveRoles(fc FrameControl) AddressRoles {
	switch {
	case !fc.ToDS && !fc.FromDS:
		return AddressRoles{RoleRA | RoleDA, RoleTA | RoleSA, RoleBSSID}
	case !fc.ToDS && fc.FromDS:
		return AddressRoles{RoleRA | RoleDA, RoleTA | RoleBSSID, RoleSA}
	case fc.ToDS && !fc.FromDS:
		return AddressRoles{RoleRA | RoleBSSID, RoleTA | RoleSA, RoleDA}
	default:
		return AddressRoles{RoleRA, RoleTA, RoleDA, RoleSA}
	}
}

func decodeAddress(c *BitCursor) (MAC, error) {
	start := c.Offset()
	b, err := c.TakeBytes(addressLen)
	if err != nil {
		return MAC{}, err
	}
	m, err := NewMAC(b)
	if err != nil {
		return MAC{}, &DecodeError{Err: err, Offset: start}
	}
	return m, nil
}
