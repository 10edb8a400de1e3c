// Package oxmpkt is a zero-copy layered packet parser for the SDN data
// path. It overlays wire headers on a borrowed frame without copying
// payload and exposes the recognized protocol fields through OXM-style
// bindings for matching and in-place rewriting.
//
// Truncated or otherwise malformed frames are routine on a live
// network: every parse stage length-checks and simply stops descending
// when the remaining bytes cannot hold the next header, leaving the
// deeper fields unbound.
package oxmpkt

import (
	"encoding/binary"

	"golang.org/x/sys/unix"
)

// Parser borrows the frame; it never copies or owns it. The frame must
// outlive the parser, and Modify writes into it directly, so at most
// one goroutine may use a parser (or the underlying frame) at a time.
type Parser struct {
	data       []byte
	inPort     [4]byte // big-endian scratch word IN_PORT binds to
	vlanTagged bool
	bindings   [numFields]binding
	dhcpOpts   map[uint8]DHCPOption
}

// NewParser runs the full layered parse synchronously over data.
// IN_PORT is bound first, unconditionally, from port rather than from
// the frame.
func NewParser(data []byte, port uint32) *Parser {
	p := &Parser{data: data}
	binary.BigEndian.PutUint32(p.inPort[:], port)
	p.Bind(BindEntry{Field: FieldInPort, View: p.inPort[:]})

	if len(data) > 0 {
		p.parseL2(data)
	}
	return p
}

func (p *Parser) parseL2(data []byte) {
	if len(data) < SizeofEthernet {
		return
	}

	eth := Ethernet(data)
	if eth.Type() == unix.ETH_P_8021Q {
		if len(data) < SizeofDot1Q {
			return // tag truncated
		}
		tag := Dot1Q(data)
		p.vlanTagged = true
		p.Bind(
			BindEntry{Field: FieldEthType, View: data[dot1qTypeOff : dot1qTypeOff+2]},
			BindEntry{Field: FieldEthSrc, View: tag.SrcAddr()},
			BindEntry{Field: FieldEthDst, View: tag.DstAddr()},
			BindEntry{Field: FieldVLANVID, View: data[dot1qTCIOff : dot1qTCIOff+2]},
		)
		p.parseL3(tag.InnerType(), data[SizeofDot1Q:])
		return
	}

	p.vlanTagged = false
	p.Bind(
		BindEntry{Field: FieldEthType, View: data[ethTypeOff : ethTypeOff+2]},
		BindEntry{Field: FieldEthSrc, View: eth.SrcAddr()},
		BindEntry{Field: FieldEthDst, View: eth.DstAddr()},
		BindEntry{Field: FieldVLANVID, View: nil},
	)
	p.parseL3(eth.Type(), data[SizeofEthernet:])
}

func (p *Parser) parseL3(etherType uint16, data []byte) {
	switch etherType {
	case unix.ETH_P_IP:
		if len(data) < SizeofIPv4 {
			return
		}
		ip := IPv4(data)
		p.Bind(
			BindEntry{Field: FieldIPProto, View: data[ipv4ProtocolOff : ipv4ProtocolOff+1]},
			BindEntry{Field: FieldIPv4Src, View: ip.SrcAddr()},
			BindEntry{Field: FieldIPv4Dst, View: ip.DstAddr()},
		)

		hdrLen := ip.HeaderLen()
		if hdrLen >= SizeofIPv4 && len(data) > hdrLen {
			p.parseL4(ip.Protocol(), data[hdrLen:])
		}
	case unix.ETH_P_ARP:
		if len(data) < SizeofARP {
			return
		}
		arp := ARP(data)
		// Only ethernet/ipv4 ARP is usable; anything else stays
		// structurally parsed but unbound.
		if arp.HwType() != 1 || arp.ProtType() != unix.ETH_P_IP ||
			arp.HwAddrLen() != 6 || arp.ProtAddrLen() != 4 {
			return
		}
		p.Bind(
			BindEntry{Field: FieldARPOp, View: data[arpOperOff : arpOperOff+2]},
			BindEntry{Field: FieldARPSHA, View: arp.SHA()},
			BindEntry{Field: FieldARPTHA, View: arp.THA()},
			BindEntry{Field: FieldARPSPA, View: arp.SPA()},
			BindEntry{Field: FieldARPTPA, View: arp.TPA()},
		)
	case unix.ETH_P_IPV6:
		// not implemented
	}
}

func (p *Parser) parseL4(protocol uint8, data []byte) {
	switch protocol {
	case unix.IPPROTO_TCP:
		if len(data) < SizeofTCP {
			return
		}
		p.Bind(
			BindEntry{Field: FieldTCPSrc, View: data[tcpSrcOff : tcpSrcOff+2]},
			BindEntry{Field: FieldTCPDst, View: data[tcpDstOff : tcpDstOff+2]},
		)
	case unix.IPPROTO_UDP:
		if len(data) < SizeofUDP {
			return
		}
		udp := UDP(data)
		p.Bind(
			BindEntry{Field: FieldUDPSrc, View: data[udpSrcOff : udpSrcOff+2]},
			BindEntry{Field: FieldUDPDst, View: data[udpDstOff : udpDstOff+2]},
		)
		if len(data) > SizeofUDP && udp.SrcPort() == 68 && udp.DstPort() == 67 {
			p.parseDHCP(data[SizeofUDP:])
		}
	case unix.IPPROTO_ICMP:
		// not implemented
	}
}

// VLANTagged reports whether L2 carried an 802.1Q tag. False until an
// Ethernet header has actually been parsed.
func (p *Parser) VLANTagged() bool {
	return p.vlanTagged
}

// SerializeTo copies the (possibly rewritten) frame into dst and
// returns the byte count. A short dst silently truncates the copy, in
// line with the parser's tolerance of short buffers.
func (p *Parser) SerializeTo(dst []byte) int {
	return copy(dst, p.data)
}

// TotalBytes is the original frame length, regardless of how much of
// the frame the parse understood.
func (p *Parser) TotalBytes() int {
	return len(p.data)
}
