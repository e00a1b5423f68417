package attr

import (
	"encoding/binary"
	"fmt"
)

// ArrayOf returns a decode-only codec for repeated length-prefixed
// sub-records. Each element carries a 4-byte {length:u16, index:u16}
// header; the index is discarded and element order is preserved.
// Decode returns []any. Arrays appear only in kernel dump responses,
// so no encode path exists.
func ArrayOf(child Codec) Codec {
	return arrayCodec{child}
}

type arrayCodec struct {
	child Codec
}

func (ac arrayCodec) Decode(c *Cursor) (any, error) {
	var out []any
	for !c.EOF() {
		hdr, e := c.Extract(headerSize)
		if e != nil {
			return nil, fmt.Errorf("%w: array element header: %v", ErrIncomplete, e)
		}
		length := binary.NativeEndian.Uint16(hdr[0:2])
		if int(length) < headerSize {
			return nil, fmt.Errorf("%w: array element length %d below header size", ErrIncomplete, length)
		}

		sub, e := c.Slice(int(length) - headerSize)
		if e != nil {
			return nil, fmt.Errorf("%w: array element payload: %v", ErrIncomplete, e)
		}
		v, e := ac.child.Decode(sub)
		if e != nil {
			return nil, fmt.Errorf("array element %d: %w", len(out), e)
		}
		if e = sub.ErrUnlessEOF(); e != nil {
			return nil, fmt.Errorf("array element %d: %w", len(out), e)
		}
		out = append(out, v)
	}
	return out, nil
}

func (arrayCodec) Encode(eb *EncodingBuffer, v any) error {
	return fmt.Errorf("%w: array", ErrNoEncode)
}
