package attr

import "fmt"

// RecordField is one fixed-width field of a Record codec.
type RecordField struct {
	Name  string
	Codec Codec
}

// Record returns a codec for a fixed ordered set of named fixed-width
// fields, packed contiguously without tags. Decode returns a
// map[string]any keyed by field name; encode reads values from such a
// map in field order.
func Record(fields ...RecordField) Codec {
	return recordCodec{fields}
}

type recordCodec struct {
	fields []RecordField
}

func (rc recordCodec) Decode(c *Cursor) (any, error) {
	m := make(map[string]any, len(rc.fields))
	for _, f := range rc.fields {
		v, e := f.Codec.Decode(c)
		if e != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, e)
		}
		m[f.Name] = v
	}
	return m, nil
}

func (rc recordCodec) Encode(eb *EncodingBuffer, v any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: %T is not a field map", ErrValueType, v)
	}
	for _, f := range rc.fields {
		fv, ok := m[f.Name]
		if !ok {
			return fmt.Errorf("%w: missing field %s", ErrUnknownName, f.Name)
		}
		if e := f.Codec.Encode(eb, fv); e != nil {
			return fmt.Errorf("field %s: %w", f.Name, e)
		}
	}
	return nil
}
