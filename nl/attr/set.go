package attr

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// Def maps one attribute tag to its name and payload codec.
type Def struct {
	Tag   uint16
	Name  string
	Codec Codec
}

// Set is a tag-keyed schema of attributes at one nesting level.
// It is built once by NewSet and immutable thereafter.
// Set implements Codec, so a Set may appear as the payload codec of an
// attribute in an enclosing Set.
type Set struct {
	byTag  map[uint16]Def
	byName map[string]Def
}

var _ Codec = (*Set)(nil)

// NewSet builds a schema from attribute definitions.
// Tags and names must be unique within one Set; a duplicate is a
// schema-authoring defect and panics.
func NewSet(defs ...Def) *Set {
	s := &Set{
		byTag:  make(map[uint16]Def, len(defs)),
		byName: make(map[string]Def, len(defs)),
	}
	for _, def := range defs {
		if _, ok := s.byTag[def.Tag]; ok {
			panic(fmt.Sprintf("attr: duplicate tag %d", def.Tag))
		}
		if _, ok := s.byName[def.Name]; ok {
			panic(fmt.Sprintf("attr: duplicate name %s", def.Name))
		}
		s.byTag[def.Tag] = def
		s.byName[def.Name] = def
	}
	return s
}

// DecodeAll decodes attributes until the cursor is exhausted and
// merges them into one mapping. A later duplicate tag overwrites an
// earlier one.
func (s *Set) DecodeAll(c *Cursor) (map[string]any, error) {
	m := map[string]any{}
	for !c.EOF() {
		name, v, e := s.decodeOne(c)
		if e != nil {
			return nil, e
		}
		m[name] = v
	}
	return m, nil
}

// decodeOne decodes a single TLV attribute: header, payload bounded to
// exactly (length-4) bytes, then alignment padding.
func (s *Set) decodeOne(c *Cursor) (name string, v any, _ error) {
	hdr, e := c.Extract(headerSize)
	if e != nil {
		return "", nil, fmt.Errorf("%w: attribute header: %v", ErrIncomplete, e)
	}
	length := binary.NativeEndian.Uint16(hdr[0:2])
	typ := binary.NativeEndian.Uint16(hdr[2:4])
	if int(length) < headerSize {
		return "", nil, fmt.Errorf("%w: attribute length %d below header size", ErrIncomplete, length)
	}

	def, ok := s.byTag[typ]
	if !ok {
		return "", nil, UnknownAttrError{Type: typ, Len: length}
	}

	sub, e := c.Slice(int(length) - headerSize)
	if e != nil {
		return "", nil, fmt.Errorf("%w: attribute %s payload: %v", ErrIncomplete, def.Name, e)
	}
	if v, e = def.Codec.Decode(sub); e != nil {
		return "", nil, fmt.Errorf("attribute %s: %w", def.Name, e)
	}
	if e = sub.ErrUnlessEOF(); e != nil {
		return "", nil, fmt.Errorf("attribute %s: %w", def.Name, e)
	}

	// The kernel may omit padding after the final attribute.
	pad := align4(int(length)) - int(length)
	if pad > c.Remaining() {
		pad = c.Remaining()
	}
	c.Advance(pad)
	return def.Name, v, nil
}

// EncodeAll appends one TLV attribute per entry of attrs, in ascending
// tag order so output is deterministic.
func (s *Set) EncodeAll(eb *EncodingBuffer, attrs map[string]any) error {
	defs := make([]Def, 0, len(attrs))
	for name := range attrs {
		def, ok := s.byName[name]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownName, name)
		}
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Tag < defs[j].Tag })

	for _, def := range defs {
		if e := s.encodeOne(eb, def, attrs[def.Name]); e != nil {
			return fmt.Errorf("attribute %s: %w", def.Name, e)
		}
	}
	return nil
}

// encodeOne serializes the value into a scratch buffer to learn its
// length, then writes header, payload, and zero padding to 4-byte
// alignment. Padding is not counted in the length field.
func (s *Set) encodeOne(eb *EncodingBuffer, def Def, v any) error {
	var scratch EncodingBuffer
	if e := def.Codec.Encode(&scratch, v); e != nil {
		return e
	}

	length := headerSize + scratch.Len()
	hdr := make([]byte, headerSize)
	binary.NativeEndian.PutUint16(hdr[0:2], uint16(length))
	binary.NativeEndian.PutUint16(hdr[2:4], def.Tag)
	eb.Append(hdr)
	eb.Append(scratch.Output())

	if pad := align4(length) - length; pad > 0 {
		eb.Append(make([]byte, pad))
	}
	return nil
}

// Decode implements Codec for nested attribute sets.
func (s *Set) Decode(c *Cursor) (any, error) {
	return s.DecodeAll(c)
}

// Encode implements Codec for nested attribute sets.
func (s *Set) Encode(eb *EncodingBuffer, v any) error {
	attrs, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %T is not an attribute map", ErrValueType, v)
	}
	return s.EncodeAll(eb, attrs)
}
