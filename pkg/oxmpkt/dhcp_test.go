package oxmpkt

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
)

func dhcpLayers(dhcp gopacket.SerializableLayer) []gopacket.SerializableLayer {
	eth := layers.Ethernet{
		DstMAC:       net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		SrcMAC:       net.HardwareAddr{86, 102, 96, 15, 235, 58},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IPv4(0, 0, 0, 0),
		DstIP:    net.IPv4(255, 255, 255, 255),
	}
	udp := layers.UDP{SrcPort: 68, DstPort: 67}
	udp.SetNetworkLayerForChecksum(&ip)
	return []gopacket.SerializableLayer{&eth, &ip, &udp, dhcp}
}

func TestParseDHCP(t *testing.T) {
	hwAddr := net.HardwareAddr{86, 102, 96, 15, 235, 58}
	dhcp := layers.DHCPv4{
		Operation:    layers.DHCPOpRequest,
		HardwareType: layers.LinkTypeEthernet,
		HardwareLen:  6,
		Xid:          0xdeadbeef,
		ClientIP:     net.IPv4zero,
		YourClientIP: net.IPv4zero,
		ClientHWAddr: hwAddr,
		Options: layers.DHCPOptions{
			layers.NewDHCPOption(layers.DHCPOptMessageType, []byte{2}),
		},
	}

	p := NewParser(serialize(t, dhcpLayers(&dhcp)...), 1)

	assert.Equal(t, uint64(68), p.Load(FieldUDPSrc, FieldUDPSrc.FullMask()))
	assert.Equal(t, uint64(67), p.Load(FieldUDPDst, FieldUDPDst.FullMask()))

	assert.Equal(t, uint64(1), p.Load(FieldDHCPOp, FieldDHCPOp.FullMask()))
	assert.Equal(t, uint64(0xdeadbeef), p.Load(FieldDHCPXid, FieldDHCPXid.FullMask()))
	assert.Equal(t, uint64(0), p.Load(FieldDHCPCiaddr, FieldDHCPCiaddr.FullMask()))
	assert.Equal(t, uint64(0), p.Load(FieldDHCPYiaddr, FieldDHCPYiaddr.FullMask()))
	assert.Equal(t, uint64(0x5666600feb3a), p.Load(FieldDHCPChaddr, FieldDHCPChaddr.FullMask()))

	opt, ok := p.DHCPOption(53)
	assert.Equal(t, true, ok)
	assert.Equal(t, DHCPOption{Code: 53, Length: 1, Value: []byte{2}}, opt)

	_, ok = p.DHCPOption(54)
	assert.Equal(t, false, ok)
}

func TestParseDHCPWrongPorts(t *testing.T) {
	// server->client direction must not descend into DHCP
	eth := layers.Ethernet{
		DstMAC:       net.HardwareAddr{86, 102, 96, 15, 235, 58},
		SrcMAC:       net.HardwareAddr{22, 70, 177, 58, 175, 3},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		IHL:      5,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IPv4(172, 16, 23, 1),
		DstIP:    net.IPv4(172, 16, 23, 2),
	}
	udp := layers.UDP{SrcPort: 67, DstPort: 68}
	udp.SetNetworkLayerForChecksum(&ip)
	dhcp := layers.DHCPv4{
		Operation:    layers.DHCPOpReply,
		HardwareType: layers.LinkTypeEthernet,
		HardwareLen:  6,
		Xid:          1,
		ClientIP:     net.IPv4zero,
		YourClientIP: net.IPv4zero,
		ClientHWAddr: eth.DstMAC,
	}

	p := NewParser(serialize(t, &eth, &ip, &udp, &dhcp), 1)
	assert.Equal(t, true, p.Bound(FieldUDPSrc))
	assert.Equal(t, false, p.Bound(FieldDHCPOp))
}

// raw DHCP payloads for the malformed cases, fixed part built by hand
func rawDHCPPayload(tail []byte) []byte {
	fixed := make([]byte, SizeofDHCP)
	fixed[dhcpOpOff] = 1
	fixed[dhcpXidOff] = 0x12
	return append(fixed, tail...)
}

func TestParseDHCPOptionOverrun(t *testing.T) {
	// declared option length runs past the buffer end
	tail := append([]byte{}, dhcpMagicCookie...)
	tail = append(tail, 53, 200, 1, 2, 3)
	payload := rawDHCPPayload(tail)

	p := NewParser(serialize(t, dhcpLayers(gopacket.Payload(payload))...), 1)

	assert.Equal(t, true, p.Bound(FieldDHCPOp))
	_, ok := p.DHCPOption(53)
	assert.Equal(t, false, ok)
}

func TestParseDHCPNoMagicCookie(t *testing.T) {
	payload := rawDHCPPayload([]byte{53, 1, 2, 0xff})

	p := NewParser(serialize(t, dhcpLayers(gopacket.Payload(payload))...), 1)

	assert.Equal(t, true, p.Bound(FieldDHCPOp))
	_, ok := p.DHCPOption(53)
	assert.Equal(t, false, ok)
}

func TestParseDHCPEndMarker(t *testing.T) {
	tail := append([]byte{}, dhcpMagicCookie...)
	tail = append(tail, 53, 1, 2, 0xff, 54, 1, 9) // nothing after 0xff counts
	payload := rawDHCPPayload(tail)

	p := NewParser(serialize(t, dhcpLayers(gopacket.Payload(payload))...), 1)

	opt, ok := p.DHCPOption(53)
	assert.Equal(t, true, ok)
	assert.Equal(t, []byte{2}, opt.Value)
	_, ok = p.DHCPOption(54)
	assert.Equal(t, false, ok)
}

func TestParseDHCPDuplicateCode(t *testing.T) {
	tail := append([]byte{}, dhcpMagicCookie...)
	tail = append(tail, 53, 1, 1, 53, 1, 3, 0xff)
	payload := rawDHCPPayload(tail)

	p := NewParser(serialize(t, dhcpLayers(gopacket.Payload(payload))...), 1)

	opt, ok := p.DHCPOption(53)
	assert.Equal(t, true, ok)
	assert.Equal(t, []byte{3}, opt.Value) // last occurrence wins
}

func TestParseDHCPShortFixedPart(t *testing.T) {
	p := NewParser(serialize(t, dhcpLayers(gopacket.Payload(make([]byte, SizeofDHCP-1)))...), 1)

	assert.Equal(t, true, p.Bound(FieldUDPSrc))
	assert.Equal(t, false, p.Bound(FieldDHCPOp))
	assert.Equal(t, false, p.Bound(FieldDHCPXid))
}
