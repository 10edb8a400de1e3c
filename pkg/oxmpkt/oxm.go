package oxmpkt

import (
	"encoding/json"
	"fmt"
)

// Field identifies a match field from the OpenFlow basic match set.
// It is the addressing unit for binding, Load and Modify.
type Field int

const (
	FieldInPort Field = iota
	FieldEthType
	FieldEthSrc
	FieldEthDst
	FieldVLANVID
	FieldIPProto
	FieldIPv4Src
	FieldIPv4Dst
	FieldARPOp
	FieldARPSHA
	FieldARPTHA
	FieldARPSPA
	FieldARPTPA
	FieldTCPSrc
	FieldTCPDst
	FieldUDPSrc
	FieldUDPDst
	FieldDHCPOp
	FieldDHCPXid
	FieldDHCPCiaddr
	FieldDHCPYiaddr
	FieldDHCPChaddr

	numFields
)

var fieldToStr = map[Field]string{
	FieldInPort:     "IN_PORT",
	FieldEthType:    "ETH_TYPE",
	FieldEthSrc:     "ETH_SRC",
	FieldEthDst:     "ETH_DST",
	FieldVLANVID:    "VLAN_VID",
	FieldIPProto:    "IP_PROTO",
	FieldIPv4Src:    "IPV4_SRC",
	FieldIPv4Dst:    "IPV4_DST",
	FieldARPOp:      "ARP_OP",
	FieldARPSHA:     "ARP_SHA",
	FieldARPTHA:     "ARP_THA",
	FieldARPSPA:     "ARP_SPA",
	FieldARPTPA:     "ARP_TPA",
	FieldTCPSrc:     "TCP_SRC",
	FieldTCPDst:     "TCP_DST",
	FieldUDPSrc:     "UDP_SRC",
	FieldUDPDst:     "UDP_DST",
	FieldDHCPOp:     "DHCP_OP",
	FieldDHCPXid:    "DHCP_XID",
	FieldDHCPCiaddr: "DHCP_CIADDR",
	FieldDHCPYiaddr: "DHCP_YIADDR",
	FieldDHCPChaddr: "DHCP_CHADDR",
}

var strToField = make(map[string]Field)

func init() {
	for field, str := range fieldToStr {
		strToField[str] = field
	}
}

// fieldWidths holds the wire width of each field in bytes.
// ETH_SRC/ETH_DST/ARP_SHA/ARP_THA/DHCP_CHADDR are 48-bit, the widest
// values this table carries.
var fieldWidths = [numFields]int{
	FieldInPort:     4,
	FieldEthType:    2,
	FieldEthSrc:     6,
	FieldEthDst:     6,
	FieldVLANVID:    2,
	FieldIPProto:    1,
	FieldIPv4Src:    4,
	FieldIPv4Dst:    4,
	FieldARPOp:      2,
	FieldARPSHA:     6,
	FieldARPTHA:     6,
	FieldARPSPA:     4,
	FieldARPTPA:     4,
	FieldTCPSrc:     2,
	FieldTCPDst:     2,
	FieldUDPSrc:     2,
	FieldUDPDst:     2,
	FieldDHCPOp:     1,
	FieldDHCPXid:    4,
	FieldDHCPCiaddr: 4,
	FieldDHCPYiaddr: 4,
	FieldDHCPChaddr: 6,
}

func (f Field) Valid() bool {
	return f >= 0 && f < numFields
}

// Width returns the field width in bytes.
func (f Field) Width() int {
	if !f.Valid() {
		return 0
	}
	return fieldWidths[f]
}

// FullMask returns a mask selecting every bit of the field.
func (f Field) FullMask() uint64 {
	return 1<<(uint(f.Width())*8) - 1
}

func (f Field) String() string {
	return fieldToStr[f]
}

func (f *Field) Set(s string) error {
	if field, ok := strToField[s]; ok {
		*f = field
		return nil
	}
	return fmt.Errorf("invalid oxm field: %s", s)
}

func (f Field) MarshalJSON() ([]byte, error) {
	s := f.String()
	if s == "" {
		return nil, fmt.Errorf("invalid oxm field: %d", f)
	}
	return json.Marshal(s)
}

func (f *Field) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	return f.Set(s)
}

// Fields returns the supported field set in id order.
func Fields() []Field {
	fields := make([]Field, 0, numFields)
	for f := Field(0); f < numFields; f++ {
		fields = append(fields, f)
	}
	return fields
}
