package rule

import (
	"bytes"
	"cmp"

	"github.com/sdnlab/flowpath/pkg/oxmpkt"
)

// MatchField is the general OXM value/mask predicate: it matches when
// the field is bound and its masked wire value equals the masked
// expected value. A zero Mask means the field's full width.
type MatchField struct {
	Field oxmpkt.Field `json:"field"`
	Value uint64       `json:"value"`
	Mask  uint64       `json:"mask,omitempty"`
}

func (MatchField) MatchType() MatchType {
	return MatchTypeField
}

func (m MatchField) mask() uint64 {
	if m.Mask == 0 {
		return m.Field.FullMask()
	}
	return m.Mask
}

func (m MatchField) Match(p *oxmpkt.Parser) bool {
	if !p.Bound(m.Field) {
		return false
	}
	return p.Load(m.Field, m.mask()) == m.Value&m.mask()
}

func (m MatchField) Compare(other Matcher) int {
	if m.MatchType() != other.MatchType() {
		return CompareMatcherType(m, other)
	}
	o := other.(MatchField)
	if c := cmp.Compare(m.Field, o.Field); c != 0 {
		return c
	}
	if c := cmp.Compare(m.Value, o.Value); c != 0 {
		return c
	}
	return cmp.Compare(m.Mask, o.Mask)
}

// MatchEtherType matches the (inner, for tagged frames) EtherType.
type MatchEtherType uint16

func (MatchEtherType) MatchType() MatchType {
	return MatchTypeEtherType
}

func (m MatchEtherType) Match(p *oxmpkt.Parser) bool {
	return p.Bound(oxmpkt.FieldEthType) &&
		p.Load(oxmpkt.FieldEthType, oxmpkt.FieldEthType.FullMask()) == uint64(m)
}

func (m MatchEtherType) Compare(other Matcher) int {
	if m.MatchType() != other.MatchType() {
		return CompareMatcherType(m, other)
	}
	return cmp.Compare(m, other.(MatchEtherType))
}

type MatchIPProto uint8

func (MatchIPProto) MatchType() MatchType {
	return MatchTypeIPProto
}

func (m MatchIPProto) Match(p *oxmpkt.Parser) bool {
	return p.Bound(oxmpkt.FieldIPProto) &&
		p.Load(oxmpkt.FieldIPProto, oxmpkt.FieldIPProto.FullMask()) == uint64(m)
}

func (m MatchIPProto) Compare(other Matcher) int {
	if m.MatchType() != other.MatchType() {
		return CompareMatcherType(m, other)
	}
	return cmp.Compare(m, other.(MatchIPProto))
}

type MatchVLANTagged bool

func (MatchVLANTagged) MatchType() MatchType {
	return MatchTypeVLANTagged
}

func (m MatchVLANTagged) Match(p *oxmpkt.Parser) bool {
	return p.VLANTagged() == bool(m)
}

func (m MatchVLANTagged) Compare(other Matcher) int {
	if m.MatchType() != other.MatchType() {
		return CompareMatcherType(m, other)
	}
	o := other.(MatchVLANTagged)
	if m == o {
		return 0
	}
	if !m {
		return -1
	}
	return 1
}

// MatchDHCPOption matches when the frame carries the DHCP option code
// and, when Value is non-nil, the option value equals Value exactly.
type MatchDHCPOption struct {
	Code  uint8  `json:"code"`
	Value []byte `json:"value,omitempty"`
}

func (MatchDHCPOption) MatchType() MatchType {
	return MatchTypeDHCPOption
}

func (m MatchDHCPOption) Match(p *oxmpkt.Parser) bool {
	opt, ok := p.DHCPOption(m.Code)
	if !ok {
		return false
	}
	return m.Value == nil || bytes.Equal(opt.Value, m.Value)
}

func (m MatchDHCPOption) Compare(other Matcher) int {
	if m.MatchType() != other.MatchType() {
		return CompareMatcherType(m, other)
	}
	o := other.(MatchDHCPOption)
	if c := cmp.Compare(m.Code, o.Code); c != 0 {
		return c
	}
	return bytes.Compare(m.Value, o.Value)
}
