package attr_test

import (
	"encoding/binary"
	"testing"

	"github.com/nlkit/nlkit/nl/attr"
)

// arrayElem hand-builds one array element: {length, index} header + payload.
func arrayElem(index uint16, payload []byte) []byte {
	b := make([]byte, 4, 4+len(payload))
	binary.NativeEndian.PutUint16(b[0:2], uint16(4+len(payload)))
	binary.NativeEndian.PutUint16(b[2:4], index)
	return append(b, payload...)
}

func TestArrayDecode(t *testing.T) {
	assert, require := makeAR(t)

	op := attr.NewSet(
		attr.Def{Tag: 1, Name: "id", Codec: attr.U32},
		attr.Def{Tag: 2, Name: "flags", Codec: attr.U32},
	)
	ops := attr.ArrayOf(op)

	wire := concat(
		arrayElem(1, concat(nlattr(1, u32b(17)), nlattr(2, u32b(0x0C)))),
		arrayElem(2, nlattr(1, u32b(18))),
	)
	c := attr.NewCursor(wire)
	v, e := ops.Decode(c)
	require.NoError(e)
	assert.True(c.EOF())

	list := v.([]any)
	require.Len(list, 2)
	assert.Equal(map[string]any{"id": uint32(17), "flags": uint32(0x0C)}, list[0])
	assert.Equal(map[string]any{"id": uint32(18)}, list[1])
}

func TestArrayDecodeFaults(t *testing.T) {
	assert, _ := makeAR(t)

	ops := attr.ArrayOf(attr.NewSet(
		attr.Def{Tag: 1, Name: "id", Codec: attr.U32},
	))

	// element length overruns the region
	_, e := ops.Decode(attr.NewCursor(concat(u16b(20), u16b(0))))
	assert.ErrorIs(e, attr.ErrIncomplete)

	// truncated element header
	_, e = ops.Decode(attr.NewCursor(u16b(8)))
	assert.ErrorIs(e, attr.ErrIncomplete)

	// child decode fault surfaces
	_, e = ops.Decode(attr.NewCursor(arrayElem(0, nlattr(9, u32b(1)))))
	var unknown attr.UnknownAttrError
	assert.ErrorAs(e, &unknown)
}

func TestArrayEncodeUnsupported(t *testing.T) {
	assert, _ := makeAR(t)

	ops := attr.ArrayOf(attr.U32)
	var eb attr.EncodingBuffer
	assert.ErrorIs(ops.Encode(&eb, []any{uint32(1)}), attr.ErrNoEncode)
}
