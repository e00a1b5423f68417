// Package attr implements netlink attribute (TLV) encoding.
//
// Attributes and nlmsghdr fields are packed in host byte order, as the
// kernel expects on the local machine; the wire format is not portable
// across architectures.
package attr

// Codec encodes and decodes one value of a netlink attribute payload.
type Codec interface {
	// Decode reads a value from the cursor.
	// It consumes exactly the bytes representing the value.
	Decode(c *Cursor) (any, error)

	// Encode appends the wire representation of v to the buffer.
	Encode(eb *EncodingBuffer, v any) error
}

// headerSize is the size of an nlattr header: length:u16, type:u16.
const headerSize = 4

func align4(n int) int {
	return (n + 3) &^ 3
}
