package attr_test

import (
	"testing"

	"github.com/nlkit/nlkit/nl/attr"
)

func makeLinkSchema() *attr.Set {
	return attr.NewSet(
		attr.Def{Tag: 3, Name: "ifindex", Codec: attr.U32},
		attr.Def{Tag: 6, Name: "mac", Codec: attr.Bytes},
	)
}

func TestSetEncodeWire(t *testing.T) {
	assert, require := makeAR(t)
	s := makeLinkSchema()

	// u32 payload fills the record to the alignment boundary: no padding
	var eb attr.EncodingBuffer
	require.NoError(s.EncodeAll(&eb, map[string]any{"ifindex": uint32(0x01020304)}))
	wire := eb.Output()
	assert.Len(wire, 8)
	bytesEqual(assert, concat(u16b(8), u16b(3), u32b(0x01020304)), wire)

	// 3-byte payload: length field 7, one zero padding byte, 8 wire bytes
	eb = attr.EncodingBuffer{}
	require.NoError(s.EncodeAll(&eb, map[string]any{"mac": []byte{0xAA, 0xBB, 0xCC}}))
	wire = eb.Output()
	assert.Len(wire, 8)
	bytesEqual(assert, concat(u16b(7), u16b(6), []byte{0xAA, 0xBB, 0xCC, 0x00}), wire)
}

func TestSetPadding(t *testing.T) {
	assert, require := makeAR(t)
	s := makeLinkSchema()

	// padding P satisfies (L+P) mod 4 == 0 and 0 <= P <= 3
	for n := 0; n <= 9; n++ {
		var eb attr.EncodingBuffer
		require.NoError(s.EncodeAll(&eb, map[string]any{"mac": make([]byte, n)}))
		length := 4 + n
		pad := eb.Len() - length
		assert.GreaterOrEqual(pad, 0, "payload %d", n)
		assert.LessOrEqual(pad, 3, "payload %d", n)
		assert.Equal(0, (length+pad)%4, "payload %d", n)
	}
}

func TestSetRoundTrip(t *testing.T) {
	assert, require := makeAR(t)
	s := makeLinkSchema()

	mac := []byte{0x02, 0x00, 0x5E, 0x10, 0x20, 0x30}
	var eb attr.EncodingBuffer
	require.NoError(s.EncodeAll(&eb, map[string]any{
		"ifindex": uint32(4),
		"mac":     mac,
	}))
	wire := eb.Output()

	c := attr.NewCursor(wire)
	m, e := s.DecodeAll(c)
	require.NoError(e)
	assert.True(c.EOF(), "decoding a well-formed region consumes it entirely")
	assert.Equal(uint32(4), m["ifindex"])
	bytesEqual(assert, mac, m["mac"].([]byte))

	// canonical bytes reproduce exactly
	eb = attr.EncodingBuffer{}
	require.NoError(s.EncodeAll(&eb, m))
	bytesEqual(assert, wire, eb.Output())
}

func TestSetDecodeFaults(t *testing.T) {
	assert, _ := makeAR(t)
	s := makeLinkSchema()

	decode := func(wire []byte) error {
		_, e := s.DecodeAll(attr.NewCursor(wire))
		return e
	}

	// unknown attribute type
	e := decode(nlattr(99, u32b(1)))
	var unknown attr.UnknownAttrError
	if assert.ErrorAs(e, &unknown) {
		assert.Equal(uint16(99), unknown.Type)
		assert.Equal(uint16(8), unknown.Len)
	}

	// length field overruns the region
	assert.ErrorIs(decode(concat(u16b(12), u16b(3), u32b(1))), attr.ErrIncomplete)

	// length field below header size
	assert.ErrorIs(decode(concat(u16b(2), u16b(3))), attr.ErrIncomplete)

	// truncated header
	assert.ErrorIs(decode(u16b(8)), attr.ErrIncomplete)

	// sub-value not fully consumed: ifindex is u32 but 6 bytes are bounded
	assert.ErrorIs(decode(nlattr(3, make([]byte, 6))), attr.ErrTail)

	// sub-value longer than its bound: u32 inside a 2-byte bound
	assert.ErrorIs(decode(nlattr(3, make([]byte, 2))), attr.ErrOutOfRange)
}

func TestSetDuplicateLastWins(t *testing.T) {
	assert, require := makeAR(t)
	s := makeLinkSchema()

	wire := concat(
		nlattr(3, u32b(1)),
		nlattr(3, u32b(2)),
	)
	m, e := s.DecodeAll(attr.NewCursor(wire))
	require.NoError(e)
	assert.Equal(uint32(2), m["ifindex"])
}

func TestSetEncodeUnknownName(t *testing.T) {
	assert, _ := makeAR(t)
	s := makeLinkSchema()

	var eb attr.EncodingBuffer
	assert.ErrorIs(s.EncodeAll(&eb, map[string]any{"mtu": uint32(1500)}), attr.ErrUnknownName)
}

func TestSetNested(t *testing.T) {
	assert, require := makeAR(t)

	inner := attr.NewSet(
		attr.Def{Tag: 1, Name: "bitrate", Codec: attr.U16},
		attr.Def{Tag: 4, Name: "short_gi", Codec: attr.Flag},
	)
	outer := attr.NewSet(
		attr.Def{Tag: 8, Name: "tx_bitrate", Codec: inner},
	)

	wire := nlattr(8, concat(
		nlattr(1, u16b(540)),
		nlattr(4, nil),
	))
	m, e := outer.DecodeAll(attr.NewCursor(wire))
	require.NoError(e)
	tx := m["tx_bitrate"].(map[string]any)
	assert.Equal(uint16(540), tx["bitrate"])
	assert.Equal(true, tx["short_gi"])

	// nested sets encode through the same Codec interface
	var eb attr.EncodingBuffer
	require.NoError(outer.EncodeAll(&eb, m))
	bytesEqual(assert, wire, eb.Output())
}

func TestSetMissingFinalPadding(t *testing.T) {
	assert, require := makeAR(t)
	s := makeLinkSchema()

	// the kernel may omit padding after the final attribute
	wire := concat(u16b(7), u16b(6), []byte{0xAA, 0xBB, 0xCC})
	m, e := s.DecodeAll(attr.NewCursor(wire))
	require.NoError(e)
	bytesEqual(assert, []byte{0xAA, 0xBB, 0xCC}, m["mac"].([]byte))
}

func TestNewSetDuplicatePanics(t *testing.T) {
	assert, _ := makeAR(t)

	assert.Panics(func() {
		attr.NewSet(
			attr.Def{Tag: 1, Name: "a", Codec: attr.U8},
			attr.Def{Tag: 1, Name: "b", Codec: attr.U8},
		)
	})
	assert.Panics(func() {
		attr.NewSet(
			attr.Def{Tag: 1, Name: "a", Codec: attr.U8},
			attr.Def{Tag: 2, Name: "a", Codec: attr.U8},
		)
	})
}
