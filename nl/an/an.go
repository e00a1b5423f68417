// Package an declares netlink and generic netlink assigned numbers.
package an

// Netlink message types reserved by the kernel.
const (
	MsgTypeNoop    = 0x01
	MsgTypeError   = 0x02
	MsgTypeDone    = 0x03
	MsgTypeOverrun = 0x04
)

// Flags is a set of nlmsghdr flag bits.
type Flags uint16

// nlmsghdr flag bits.
const (
	Request  Flags = 0x01
	Multi    Flags = 0x02
	Ack      Flags = 0x04
	Echo     Flags = 0x08
	DumpIntr Flags = 0x10

	Root   Flags = 0x100
	Match  Flags = 0x200
	Atomic Flags = 0x400
	Dump         = Root | Match
)

// Has reports whether every bit of sub is set in f.
func (f Flags) Has(sub Flags) bool {
	return f&sub == sub
}
