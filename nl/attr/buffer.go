package attr

// EncodingBuffer is an append-only output accumulator.
// Zero value is an empty buffer.
type EncodingBuffer struct {
	parts  [][]byte
	length int
}

// Append appends a chunk. The buffer keeps a reference to p; callers
// must not modify it afterwards.
func (eb *EncodingBuffer) Append(p []byte) {
	eb.parts = append(eb.parts, p)
	eb.length += len(p)
}

// Len returns the logical length of the accumulated output.
func (eb *EncodingBuffer) Len() int {
	return eb.length
}

// Output concatenates all chunks. It should be called once, at a
// serialization boundary.
func (eb *EncodingBuffer) Output() []byte {
	out := make([]byte, 0, eb.length)
	for _, p := range eb.parts {
		out = append(out, p...)
	}
	return out
}
