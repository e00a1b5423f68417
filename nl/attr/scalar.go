package attr

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/constraints"
)

// Fixed-width scalar codecs in host byte order.
// Decode returns the matching unsigned Go type.
var (
	U8  Codec = uintCodec[uint8]{1}
	U16 Codec = uintCodec[uint16]{2}
	U32 Codec = uintCodec[uint32]{4}
	U64 Codec = uintCodec[uint64]{8}
)

type uintCodec[T constraints.Unsigned] struct {
	width int
}

func (uc uintCodec[T]) Decode(c *Cursor) (any, error) {
	b, e := c.Extract(uc.width)
	if e != nil {
		return nil, e
	}
	switch uc.width {
	case 1:
		return T(b[0]), nil
	case 2:
		return T(binary.NativeEndian.Uint16(b)), nil
	case 4:
		return T(binary.NativeEndian.Uint32(b)), nil
	default:
		return T(binary.NativeEndian.Uint64(b)), nil
	}
}

func (uc uintCodec[T]) Encode(eb *EncodingBuffer, v any) error {
	n, e := uintValue(v)
	if e != nil {
		return e
	}
	if uc.width < 8 && n>>(8*uc.width) != 0 {
		return fmt.Errorf("%w: %d exceeds %d-bit width", ErrValueType, n, 8*uc.width)
	}
	b := make([]byte, uc.width)
	switch uc.width {
	case 1:
		b[0] = byte(n)
	case 2:
		binary.NativeEndian.PutUint16(b, uint16(n))
	case 4:
		binary.NativeEndian.PutUint32(b, uint32(n))
	default:
		binary.NativeEndian.PutUint64(b, n)
	}
	eb.Append(b)
	return nil
}

// uintValue converts any Go integer to uint64.
func uintValue(v any) (uint64, error) {
	switch n := v.(type) {
	case uint8:
		return uint64(n), nil
	case uint16:
		return uint64(n), nil
	case uint32:
		return uint64(n), nil
	case uint64:
		return n, nil
	case uint:
		return uint64(n), nil
	case int8:
		if n >= 0 {
			return uint64(n), nil
		}
	case int16:
		if n >= 0 {
			return uint64(n), nil
		}
	case int32:
		if n >= 0 {
			return uint64(n), nil
		}
	case int64:
		if n >= 0 {
			return uint64(n), nil
		}
	case int:
		if n >= 0 {
			return uint64(n), nil
		}
	default:
		return 0, fmt.Errorf("%w: %T is not an integer", ErrValueType, v)
	}
	return 0, fmt.Errorf("%w: negative value %v", ErrValueType, v)
}

// Bytes is a raw codec: it consumes all bytes remaining in its bounded
// cursor verbatim. Callers strip trailing NUL terminators themselves.
var Bytes Codec = bytesCodec{}

type bytesCodec struct{}

func (bytesCodec) Decode(c *Cursor) (any, error) {
	return c.Extract(c.Remaining())
}

func (bytesCodec) Encode(eb *EncodingBuffer, v any) error {
	switch b := v.(type) {
	case []byte:
		eb.Append(b)
	case string:
		eb.Append([]byte(b))
	default:
		return fmt.Errorf("%w: %T is not bytes", ErrValueType, v)
	}
	return nil
}

// Flag is a zero-size presence codec. Decode yields true; encode
// appends nothing.
var Flag Codec = flagCodec{}

type flagCodec struct{}

func (flagCodec) Decode(c *Cursor) (any, error) {
	return true, nil
}

func (flagCodec) Encode(eb *EncodingBuffer, v any) error {
	return nil
}
