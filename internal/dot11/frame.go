package dot11

// Frame is one decoded MAC frame. Optional fields are nil when absent.
type Frame struct {
	Control         FrameControl
	DurationID      uint16
	Address1        MAC
	Address2        MAC
	Address3        MAC
	Address4        *MAC
	SequenceControl *SequenceControl
	QoSControl      *uint16
	HTControl       *uint32
	Body            []byte
	IntegrityField  uint32
}

// HeaderLen is the number of bytes ahead of the body.
func (f Frame) HeaderLen() int {
	n := frameControlLen + durationLen + 3*addressLen
	if f.SequenceControl != nil {
		n += sequenceControlLen
	}
	if f.Address4 != nil {
		n += addressLen
	}
	if f.QoSControl != nil {
		n += qosControlLen
	}
	if f.HTControl != nil {
		n += htControlLen
	}
	return n
}

// Len is the full frame width including the integrity field.
func (f Frame) Len() int {
	return f.HeaderLen() + len(f.Body) + IntegrityFieldLen
}

func (f Frame) Roles() AddressRoles {
	return ResolveRoles(f.Control)
}

// Addresses returns the present address fields in wire order.
func (f Frame) Addresses() []MAC {
	out := []MAC{f.Address1, f.Address2, f.Address3}
	if f.Address4 != nil {
		out = append(out, *f.Address4)
	}
	return out
}

// AddressFor returns the first address carrying role r.
func (f Frame) AddressFor(r Role) (MAC, bool) {
	roles := f.Roles()
	for i, addr := range f.Addresses() {
		if roles[i]&r != 0 {
			return addr, true
		}
	}
	return MAC{}, false
}

func (f Frame) Receiver() MAC {
	m, _ := f.AddressFor(RoleRA)
	return m
}

func (f Frame) Transmitter() MAC {
	m, _ := f.AddressFor(RoleTA)
	return m
}

func (f Frame) Destination() MAC {
	m, _ := f.AddressFor(RoleDA)
	return m
}

func (f Frame) Source() MAC {
	m, _ := f.AddressFor(RoleSA)
	return m
}

// BSSID is absent when both DS flags are set.
func (f Frame) BSSID() (MAC, bool) {
	return f.AddressFor(RoleBSSID)
}
