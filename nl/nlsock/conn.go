package nlsock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Conn is a connectionless datagram socket toward the kernel.
type Conn interface {
	// Send writes one datagram.
	Send(b []byte) error

	// Recv reads one datagram into b and returns its length.
	Recv(b []byte) (int, error)

	// SetRecvDeadline bounds subsequent Recv calls.
	// A zero deadline means Recv blocks indefinitely.
	SetRecvDeadline(t time.Time) error

	// Close releases the socket.
	Close() error
}

// kernelConn is a raw AF_NETLINK socket.
type kernelConn struct {
	fd int
}

func dial(protocol int) (*kernelConn, error) {
	fd, e := unix.Socket(unix.AF_NETLINK, unix.SOCK_DGRAM, protocol)
	if e != nil {
		return nil, fmt.Errorf("socket(AF_NETLINK, SOCK_DGRAM, %d): %w", protocol, e)
	}
	if e := unix.Bind(fd, &unix.SockaddrNetlink{Family: unix.AF_NETLINK}); e != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind: %w", e)
	}
	return &kernelConn{fd: fd}, nil
}

func (kc *kernelConn) Send(b []byte) error {
	return unix.Sendto(kc.fd, b, 0, &unix.SockaddrNetlink{Family: unix.AF_NETLINK})
}

func (kc *kernelConn) Recv(b []byte) (int, error) {
	n, _, e := unix.Recvfrom(kc.fd, b, 0)
	return n, e
}

func (kc *kernelConn) SetRecvDeadline(t time.Time) error {
	var tv unix.Timeval
	if !t.IsZero() {
		d := time.Until(t)
		if d <= 0 {
			d = time.Microsecond
		}
		tv = unix.NsecToTimeval(d.Nanoseconds())
	}
	return unix.SetsockoptTimeval(kc.fd, unix.SOL_SOCKET, unix.SO_RCVTIMEO, &tv)
}

func (kc *kernelConn) Close() error {
	return unix.Close(kc.fd)
}
