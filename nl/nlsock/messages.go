package nlsock

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/nlkit/nlkit/nl/an"
	"github.com/nlkit/nlkit/nl/attr"
)

// Wire errors.
var (
	// ErrShortHeader indicates a datagram fragment smaller than nlmsghdr.
	ErrShortHeader = errors.New("truncated netlink header")
	// ErrShortMessage indicates a message length field exceeding the datagram.
	ErrShortMessage = errors.New("truncated netlink message")
)

// Recv returns an iterator over the messages of one response.
// The iterator is lazy and non-restartable: each Next performs at most
// one blocking socket read. ctx bounds every read; with
// context.Background() reads block indefinitely, matching the
// historical behavior of this protocol client.
func (tr *Transport) Recv(ctx context.Context) *Messages {
	return &Messages{tr: tr, ctx: ctx}
}

// Messages iterates over header-delimited sub-messages of a multi-part
// response. A message of type an.MsgTypeDone ends the sequence; a
// message without an.Multi set is yielded and then ends the sequence.
// Remaining datagram bytes after either terminator are discarded.
//
// Abandoning iteration early is safe and sends nothing to the kernel.
type Messages struct {
	tr  *Transport
	ctx context.Context

	cur     *attr.Cursor // unparsed remainder of current datagram
	typ     uint16
	payload *attr.Cursor
	done    bool
	err     error
}

// Next advances to the next message.
func (ms *Messages) Next() bool {
	if ms.done || ms.err != nil {
		return false
	}
	for {
		if ms.cur == nil || ms.cur.EOF() {
			if e := ms.read(); e != nil {
				ms.err = e
				return false
			}
		}

		hdr, e := ms.cur.Extract(headerSize)
		if e != nil {
			ms.err = fmt.Errorf("%w: %v", ErrShortHeader, e)
			return false
		}
		length := binary.NativeEndian.Uint32(hdr[0:4])
		typ := binary.NativeEndian.Uint16(hdr[4:6])
		flags := an.Flags(binary.NativeEndian.Uint16(hdr[6:8]))
		// sequence and pid are not matched against anything

		if typ == an.MsgTypeDone {
			ms.done, ms.cur = true, nil
			return false
		}
		if length < headerSize {
			ms.err = fmt.Errorf("%w: length field %d", ErrShortMessage, length)
			return false
		}
		payload, e := ms.cur.Slice(int(length) - headerSize)
		if e != nil {
			ms.err = fmt.Errorf("%w: %v", ErrShortMessage, e)
			return false
		}

		ms.typ, ms.payload = typ, payload
		if !flags.Has(an.Multi) {
			ms.done, ms.cur = true, nil
		}
		return true
	}
}

// Type returns the message type of the current message.
func (ms *Messages) Type() uint16 {
	return ms.typ
}

// Payload returns a cursor bounded to the current message payload.
func (ms *Messages) Payload() *attr.Cursor {
	return ms.payload
}

// Err returns the error that ended iteration, if any.
func (ms *Messages) Err() error {
	return ms.err
}

// read receives one datagram into the transport buffer.
func (ms *Messages) read() error {
	if e := ms.ctx.Err(); e != nil {
		return e
	}
	deadline, _ := ms.ctx.Deadline()
	if e := ms.tr.conn.SetRecvDeadline(deadline); e != nil {
		return e
	}

	n, e := ms.tr.conn.Recv(ms.tr.rxbuf)
	if e != nil {
		if errors.Is(e, unix.EAGAIN) || errors.Is(e, unix.EWOULDBLOCK) {
			if ce := ms.ctx.Err(); ce != nil {
				return ce
			}
			return context.DeadlineExceeded
		}
		return e
	}
	ms.cur = attr.NewCursor(ms.tr.rxbuf[:n])
	return nil
}
