package oxmpkt

import "encoding/binary"

// Header views reinterpret a checked prefix of the frame as a wire
// header. Each view is a plain byte slice; accessors read at fixed
// offsets in network byte order. The caller must length-check against
// the Sizeof* constant before constructing a view.

const (
	SizeofEthernet = 14 // dst[6] src[6] type[2]
	SizeofDot1Q    = 18 // dst[6] src[6] tpid[2] tci[2] type[2]
	SizeofIPv4     = 20 // fixed part, header length is IHL*4
	SizeofARP      = 28 // ethernet/ipv4 layout
	SizeofTCP      = 20 // fixed part, header length is DataOff*4
	SizeofUDP      = 8
)

const (
	ethDstOff  = 0
	ethSrcOff  = 6
	ethTypeOff = 12
)

type Ethernet []byte

func (h Ethernet) DstAddr() []byte { return h[ethDstOff : ethDstOff+6] }
func (h Ethernet) SrcAddr() []byte { return h[ethSrcOff : ethSrcOff+6] }
func (h Ethernet) Type() uint16 { return binary.BigEndian.Uint16(h[ethTypeOff:]) }

const (
	dot1qTCIOff   = 12 + 2 // after the 0x8100 tpid
	dot1qTypeOff  = 16
	dot1qTagBytes = 4
)

// Dot1Q views a whole 802.1Q-tagged frame, addresses included.
// TCI returns the raw tag control info, priority and DEI bits in
// place; VLANID strips them.
type Dot1Q []byte

func (h Dot1Q) DstAddr() []byte { return h[ethDstOff : ethDstOff+6] }
func (h Dot1Q) SrcAddr() []byte { return h[ethSrcOff : ethSrcOff+6] }
func (h Dot1Q) TPID() uint16 { return binary.BigEndian.Uint16(h[ethTypeOff:]) }
func (h Dot1Q) TCI() uint16 { return binary.BigEndian.Uint16(h[dot1qTCIOff:]) }
func (h Dot1Q) VLANID() uint16 { return h.TCI() & 0x0fff }
func (h Dot1Q) Priority() uint8 { return uint8(h.TCI() >> 13) }
func (h Dot1Q) DEI() bool { return h.TCI()&0x1000 != 0 }
func (h Dot1Q) InnerType() uint16 { return binary.BigEndian.Uint16(h[dot1qTypeOff:]) }

const (
	ipv4ProtocolOff = 9
	ipv4SrcOff      = 12
	ipv4DstOff      = 16
)

type IPv4 []byte

func (h IPv4) Version() uint8 { return h[0] >> 4 }
func (h IPv4) TotalLen() uint16 {
	return binary.BigEndian.Uint16(h[2:])
}
func (h IPv4) TTL() uint8 { return h[8] }
func (h IPv4) Protocol() uint8 { return h[ipv4ProtocolOff] }
func (h IPv4) SrcAddr() []byte { return h[ipv4SrcOff : ipv4SrcOff+4] }
func (h IPv4) DstAddr() []byte { return h[ipv4DstOff : ipv4DstOff+4] }

// HeaderLen is IHL*4 and may exceed SizeofIPv4 when options are
// present. Values below SizeofIPv4 are malformed.
func (h IPv4) HeaderLen() int { return int(h[0]&0x0f) * 4 }

const (
	arpHwTypeOff   = 0
	arpProtTypeOff = 2
	arpHwLenOff    = 4
	arpProtLenOff  = 5
	arpOperOff     = 6
	arpSHAOff      = 8
	arpSPAOff      = 14
	arpTHAOff      = 18
	arpTPAOff      = 24
)

// ARP assumes the ethernet/ipv4 address layout; the parser only binds
// its fields after checking the type and length octets.
type ARP []byte

func (h ARP) HwType() uint16 { return binary.BigEndian.Uint16(h[arpHwTypeOff:]) }
func (h ARP) ProtType() uint16 { return binary.BigEndian.Uint16(h[arpProtTypeOff:]) }
func (h ARP) HwAddrLen() uint8 { return h[arpHwLenOff] }
func (h ARP) ProtAddrLen() uint8 { return h[arpProtLenOff] }
func (h ARP) Operation() uint16 { return binary.BigEndian.Uint16(h[arpOperOff:]) }
func (h ARP) SHA() []byte { return h[arpSHAOff : arpSHAOff+6] }
func (h ARP) SPA() []byte { return h[arpSPAOff : arpSPAOff+4] }
func (h ARP) THA() []byte { return h[arpTHAOff : arpTHAOff+6] }
func (h ARP) TPA() []byte { return h[arpTPAOff : arpTPAOff+4] }

const (
	tcpSrcOff     = 0
	tcpDstOff     = 2
	tcpDataOffOff = 12
	tcpFlagsOff   = 13
)

type TCP []byte

func (h TCP) SrcPort() uint16 { return binary.BigEndian.Uint16(h[tcpSrcOff:]) }
func (h TCP) DstPort() uint16 { return binary.BigEndian.Uint16(h[tcpDstOff:]) }
func (h TCP) Seq() uint32 { return binary.BigEndian.Uint32(h[4:]) }
func (h TCP) AckSeq() uint32 { return binary.BigEndian.Uint32(h[8:]) }
func (h TCP) HeaderLen() int { return int(h[tcpDataOffOff]>>4) * 4 }
func (h TCP) NS() bool { return h[tcpDataOffOff]&0x01 != 0 }
func (h TCP) Flags() TCPFlags { return TCPFlags(h[tcpFlagsOff]) }

// TCPFlags is the control-bit octet. NS lives in the low bit of the
// data-offset byte and is exposed through TCP.NS instead.
type TCPFlags uint8

const (
	TCPFlagFIN TCPFlags = 1 << iota
	TCPFlagSYN
	TCPFlagRST
	TCPFlagPSH
	TCPFlagACK
	TCPFlagURG
	TCPFlagECE
	TCPFlagCWR
)

func (flags TCPFlags) Has(flag TCPFlags) bool { return flags&flag != 0 }

const (
	udpSrcOff = 0
	udpDstOff = 2
)

type UDP []byte

func (h UDP) SrcPort() uint16 { return binary.BigEndian.Uint16(h[udpSrcOff:]) }
func (h UDP) DstPort() uint16 { return binary.BigEndian.Uint16(h[udpDstOff:]) }
func (h UDP) Length() uint16 { return binary.BigEndian.Uint16(h[4:]) }
