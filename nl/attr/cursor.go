package attr

import "fmt"

// Cursor is a bounds-checked read view over a byte buffer.
// The zero Cursor is empty.
type Cursor struct {
	buf   []byte
	off   int
	limit int
}

// NewCursor creates a Cursor over the whole buffer.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf, limit: len(buf)}
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return c.limit - c.off
}

// EOF returns true if the cursor is at end of input.
func (c *Cursor) EOF() bool {
	return c.Remaining() == 0
}

// ErrUnlessEOF returns an error if there is unconsumed input.
func (c *Cursor) ErrUnlessEOF() error {
	if c.EOF() {
		return nil
	}
	return fmt.Errorf("%w: %d bytes remaining", ErrTail, c.Remaining())
}

// Advance moves the cursor forward by n bytes.
func (c *Cursor) Advance(n int) error {
	if n > c.Remaining() {
		return fmt.Errorf("%w: want %d bytes, have %d", ErrOutOfRange, n, c.Remaining())
	}
	c.off += n
	return nil
}

// Extract returns the next n bytes and advances past them.
// The returned slice shares the backing buffer.
func (c *Cursor) Extract(n int) ([]byte, error) {
	if n > c.Remaining() {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrOutOfRange, n, c.Remaining())
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

// Slice returns a sub-cursor bounded to the next n bytes, sharing the
// backing buffer, and advances the parent past them.
func (c *Cursor) Slice(n int) (*Cursor, error) {
	if n > c.Remaining() {
		return nil, fmt.Errorf("%w: want %d bytes, have %d", ErrOutOfRange, n, c.Remaining())
	}
	sub := &Cursor{buf: c.buf, off: c.off, limit: c.off + n}
	c.off += n
	return sub, nil
}

func (c *Cursor) String() string {
	return fmt.Sprintf("(%d bytes): %x", c.Remaining(), c.buf[c.off:c.limit])
}
