// Package nltestenv provides an in-memory netlink socket for tests.
package nltestenv

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/nlkit/nlkit/nl/an"
)

// Conn is an in-memory nlsock.Conn fed by queued datagrams.
type Conn struct {
	// Sent collects datagrams written by the transport.
	Sent [][]byte

	// RecvQueue holds datagrams to be returned by Recv, one per call.
	RecvQueue [][]byte

	// RecvCalls counts Recv invocations, including failed ones.
	RecvCalls int

	// OnSend, if set, is invoked for every sent datagram. It may queue
	// responses into RecvQueue.
	OnSend func(b []byte)

	closed bool
}

// Send records the datagram.
func (c *Conn) Send(b []byte) error {
	d := append([]byte{}, b...)
	c.Sent = append(c.Sent, d)
	if c.OnSend != nil {
		c.OnSend(d)
	}
	return nil
}

// Recv pops the next queued datagram.
// An empty queue returns io.EOF, so a test that reads too far fails
// instead of blocking.
func (c *Conn) Recv(b []byte) (int, error) {
	c.RecvCalls++
	if len(c.RecvQueue) == 0 {
		return 0, io.EOF
	}
	d := c.RecvQueue[0]
	c.RecvQueue = c.RecvQueue[1:]
	return copy(b, d), nil
}

// SetRecvDeadline does nothing.
func (c *Conn) SetRecvDeadline(t time.Time) error {
	return nil
}

// Close marks the conn closed.
func (c *Conn) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called.
func (c *Conn) Closed() bool {
	return c.closed
}

// Message builds one wire message: nlmsghdr in host byte order
// followed by payload.
func Message(msgType uint16, flags an.Flags, seq, pid uint32, payload []byte) []byte {
	b := make([]byte, 16+len(payload))
	binary.NativeEndian.PutUint32(b[0:4], uint32(len(b)))
	binary.NativeEndian.PutUint16(b[4:6], msgType)
	binary.NativeEndian.PutUint16(b[6:8], uint16(flags))
	binary.NativeEndian.PutUint32(b[8:12], seq)
	binary.NativeEndian.PutUint32(b[12:16], pid)
	copy(b[16:], payload)
	return b
}

// Datagram concatenates messages into one receive buffer.
func Datagram(msgs ...[]byte) []byte {
	var d []byte
	for _, m := range msgs {
		d = append(d, m...)
	}
	return d
}
