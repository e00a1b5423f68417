package attr

import (
	"errors"
	"fmt"
)

// Wire errors indicate malformed or unexpected network input.
var (
	ErrIncomplete = errors.New("incomplete input")
	ErrTail       = errors.New("attribute value not fully consumed")
)

// Usage errors indicate caller or schema-authoring mistakes.
var (
	ErrOutOfRange  = errors.New("cursor advanced past its bound")
	ErrValueType   = errors.New("value unsuitable for codec")
	ErrUnknownName = errors.New("attribute name not in schema")
	ErrNoEncode    = errors.New("codec is decode-only")
)

// UnknownAttrError indicates an attribute type absent from the schema.
type UnknownAttrError struct {
	Type uint16
	Len  uint16
}

func (e UnknownAttrError) Error() string {
	return fmt.Sprintf("unknown attribute type %d, len %d", e.Type, e.Len)
}
