package genl

import (
	"context"
	"fmt"

	"github.com/nlkit/nlkit/nl/an"
	"github.com/nlkit/nlkit/nl/nlsock"
)

// Recv returns an iterator over decoded reply messages.
// The iterator is lazy: each Next pulls at most one message from the
// transport. Replies are not correlated to any particular request.
func (c *Client) Recv(ctx context.Context) *Reply {
	return &Reply{c: c, ms: c.tr.Recv(ctx)}
}

// Query sends a request and returns the reply iterator.
func (c *Client) Query(ctx context.Context, family string, flags an.Flags, cmd string, version uint8, attrs map[string]any) (*Reply, error) {
	if e := c.Send(family, flags, cmd, version, attrs); e != nil {
		return nil, e
	}
	return c.Recv(ctx), nil
}

// Reply iterates over (command, attribute mapping) pairs of one
// response. A decode failure abandons the whole sequence.
type Reply struct {
	c  *Client
	ms *nlsock.Messages

	cmd   uint8
	attrs map[string]any
	err   error
}

// Next advances to the next decoded message.
func (r *Reply) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.ms.Next() {
		r.err = r.ms.Err()
		return false
	}

	f := r.c.byID[r.ms.Type()]
	if f == nil {
		r.err = fmt.Errorf("%w: message type %d", ErrNoFamily, r.ms.Type())
		return false
	}
	if f.Schema == nil {
		r.err = fmt.Errorf("%w: %s", ErrNoSchema, f.Name)
		return false
	}

	payload := r.ms.Payload()
	hdr, e := payload.Extract(headerSize)
	if e != nil {
		r.err = fmt.Errorf("genlmsghdr: %w", e)
		return false
	}
	attrs, e := f.Schema.DecodeAll(payload)
	if e != nil {
		r.err = fmt.Errorf("family %s: %w", f.Name, e)
		return false
	}

	r.cmd, r.attrs = hdr[0], attrs
	return true
}

// Cmd returns the command of the current message.
func (r *Reply) Cmd() uint8 {
	return r.cmd
}

// Attrs returns the decoded attribute mapping of the current message.
func (r *Reply) Attrs() map[string]any {
	return r.attrs
}

// Err returns the error that ended iteration, if any.
func (r *Reply) Err() error {
	return r.err
}
