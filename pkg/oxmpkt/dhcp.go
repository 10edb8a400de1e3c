package oxmpkt

import "bytes"

// DHCP fixed-format prefix, RFC 2131 §2 up to and including the first
// six chaddr bytes:
//
//	op[1] htype[1] hlen[1] hops[1] xid[4] secs[2] flags[2]
//	ciaddr[4] yiaddr[4] siaddr[4] giaddr[4] chaddr[6...]
const (
	SizeofDHCP = 34

	dhcpOpOff     = 0
	dhcpXidOff    = 4
	dhcpCiaddrOff = 12
	dhcpYiaddrOff = 16
	dhcpChaddrOff = 28

	dhcpOptionEnd = 0xff
)

// magic cookie marking the start of the option list
var dhcpMagicCookie = []byte{0x63, 0x82, 0x53, 0x63}

// DHCPOption is one (code, length, value) record from the option
// list. Value is a view into the frame, valid as long as the frame is.
type DHCPOption struct {
	Code   uint8
	Length uint8
	Value  []byte
}

// DHCPOption looks up an option by code. On duplicate codes the last
// occurrence in the list wins.
func (p *Parser) DHCPOption(code uint8) (DHCPOption, bool) {
	opt, ok := p.dhcpOpts[code]
	return opt, ok
}

func (p *Parser) parseDHCP(data []byte) {
	if len(data) < SizeofDHCP {
		return
	}
	p.Bind(
		BindEntry{Field: FieldDHCPOp, View: data[dhcpOpOff : dhcpOpOff+1]},
		BindEntry{Field: FieldDHCPXid, View: data[dhcpXidOff : dhcpXidOff+4]},
		BindEntry{Field: FieldDHCPCiaddr, View: data[dhcpCiaddrOff : dhcpCiaddrOff+4]},
		BindEntry{Field: FieldDHCPYiaddr, View: data[dhcpYiaddrOff : dhcpYiaddrOff+4]},
		BindEntry{Field: FieldDHCPChaddr, View: data[dhcpChaddrOff : dhcpChaddrOff+6]},
	)
	p.dhcpOpts = scanDHCPOptions(data[SizeofDHCP:])
}

// scanDHCPOptions searches the variable area for the magic cookie and
// walks the (code, length, value) list behind it. The walk stops at
// the end marker, at the end of the buffer, and at any option whose
// declared length runs past the buffer; an incomplete option is
// dropped rather than recorded short.
func scanDHCPOptions(data []byte) map[uint8]DHCPOption {
	i := bytes.Index(data, dhcpMagicCookie)
	if i < 0 {
		return nil
	}
	i += len(dhcpMagicCookie)

	var opts map[uint8]DHCPOption
	for i < len(data) {
		code := data[i]
		if code == dhcpOptionEnd {
			break
		}
		if i+2 > len(data) {
			break
		}
		length := data[i+1]
		if i+2+int(length) > len(data) {
			break
		}
		if opts == nil {
			opts = make(map[uint8]DHCPOption)
		}
		opts[code] = DHCPOption{
			Code:   code,
			Length: length,
			Value:  data[i+2 : i+2+int(length)],
		}
		i += 2 + int(length)
	}
	return opts
}
