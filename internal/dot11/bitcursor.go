package dot11

import "encoding/binary"

// BitCursor walks a byte buffer bit by bit, most significant bit first.
type BitCursor struct {
	buf []byte
	pos int // absolute bit position
}

func NewBitCursor(buf []byte) *BitCursor {
	return &BitCursor{buf: buf}
}

// Offset is the byte offset of the next unread bit.
func (c *BitCursor) Offset() int {
	return c.pos >> 3
}

// BitOffset is the bit position inside the current byte.
func (c *BitCursor) BitOffset() int {
	return c.pos & 7
}

// Remaining is the number of unread bits.
func (c *BitCursor) Remaining() int {
	return len(c.buf)*8 - c.pos
}

// RemainingBytes is the number of whole unread bytes.
func (c *BitCursor) RemainingBytes() int {
	return c.Remaining() >> 3
}

// TakeBits consumes n bits (1..32) and returns them as an unsigned value.
func (c *BitCursor) TakeBits(n int) (uint32, error) {
	if n < 1 || n > 32 {
		return 0, c.fail(errBitWidth)
	}
	if c.Remaining() < n {
		return 0, c.fail(ErrTruncated)
	}
	var v uint32
	for i := 0; i < n; i++ {
		b := c.buf[c.pos>>3]
		v = v<<1 | uint32(b>>(7-uint(c.pos&7))&1)
		c.pos++
	}
	return v, nil
}

func (c *BitCursor) TakeBool() (bool, error) {
	v, err := c.TakeBits(1)
	return v == 1, err
}

// ByteAlign fails unless the cursor sits on a byte boundary.
func (c *BitCursor) ByteAlign() error {
	if c.pos&7 != 0 {
		return c.fail(errMisaligned)
	}
	return nil
}

// TakeBytes returns the next n bytes. The slice aliases the input buffer.
func (c *BitCursor) TakeBytes(n int) ([]byte, error) {
	if err := c.ByteAlign(); err != nil {
		return nil, err
	}
	if n < 0 || c.RemainingBytes() < n {
		return nil, c.fail(ErrTruncated)
	}
	start := c.Offset()
	c.pos += n * 8
	return c.buf[start : start+n], nil
}

func (c *BitCursor) TakeUint16() (uint16, error) {
	b, err := c.TakeBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *BitCursor) TakeUint32() (uint32, error) {
	b, err := c.TakeBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (c *BitCursor) fail(err error) error {
	return &DecodeError{Err: err, Offset: c.Offset()}
}
