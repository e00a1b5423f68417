// Package nlsock implements netlink message framing over an AF_NETLINK datagram socket.
package nlsock

import (
	"encoding/binary"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"github.com/nlkit/nlkit/core/logging"
	"github.com/nlkit/nlkit/nl/an"
)

var logger = logging.New("nlsock")

// headerSize is the size of nlmsghdr: length:u32, type:u16, flags:u16,
// sequence:u32, pid:u32, packed in host byte order.
const headerSize = 16

// RxBufferLength is the fixed receive buffer size. Kernel messages
// larger than this are not supported.
const RxBufferLength = 4096

// Config contains netlink transport configuration.
type Config struct {
	// Protocol is the netlink protocol number.
	// The default is NETLINK_GENERIC.
	Protocol int

	// PID identifies this endpoint in outgoing headers.
	// The default is the process id.
	PID uint32

	// Seq generates a sequence number for each outgoing message.
	// Sequence numbers are never matched against responses.
	// The default is a random 32-bit generator.
	Seq func() uint32

	// Conn overrides the kernel socket. This is intended for tests.
	Conn Conn
}

func (cfg *Config) applyDefaults() {
	if cfg.Protocol == 0 {
		cfg.Protocol = unix.NETLINK_GENERIC
	}
	if cfg.PID == 0 {
		cfg.PID = uint32(os.Getpid())
	}
	if cfg.Seq == nil {
		cfg.Seq = rand.Uint32
	}
}

// Transport sends and receives netlink messages over one connectionless
// socket. It is synchronous and assumes a single caller goroutine.
type Transport struct {
	cfg   Config
	conn  Conn
	rxbuf []byte
}

// New creates a Transport.
func New(cfg Config) (*Transport, error) {
	cfg.applyDefaults()
	conn := cfg.Conn
	if conn == nil {
		var e error
		if conn, e = dial(cfg.Protocol); e != nil {
			return nil, e
		}
	}
	logger.Debug("transport open",
		zap.Int("protocol", cfg.Protocol),
		zap.Uint32("pid", cfg.PID),
	)
	return &Transport{
		cfg:   cfg,
		conn:  conn,
		rxbuf: make([]byte, RxBufferLength),
	}, nil
}

// Send writes one message as a single datagram.
// an.Request is always set in the header flags.
// Send blocks until the kernel accepts the datagram; socket errors
// propagate unmodified.
func (tr *Transport) Send(msgType uint16, flags an.Flags, payload []byte) error {
	hdr := make([]byte, headerSize)
	binary.NativeEndian.PutUint32(hdr[0:4], uint32(headerSize+len(payload)))
	binary.NativeEndian.PutUint16(hdr[4:6], msgType)
	binary.NativeEndian.PutUint16(hdr[6:8], uint16(flags|an.Request))
	binary.NativeEndian.PutUint32(hdr[8:12], tr.cfg.Seq())
	binary.NativeEndian.PutUint32(hdr[12:16], tr.cfg.PID)
	return tr.conn.Send(append(hdr, payload...))
}

// Close closes the underlying socket.
func (tr *Transport) Close() error {
	return tr.conn.Close()
}
