package rule

import (
	"encoding/json"
	"fmt"

	"github.com/sdnlab/flowpath/pkg/oxmpkt"
)

type MatchType int

const (
	// OXM value/mask
	MatchTypeField MatchType = iota + 1

	// Protocol shorthands
	MatchTypeEtherType
	MatchTypeIPProto
	MatchTypeVLANTagged

	// DHCP option list
	MatchTypeDHCPOption
)

var matchTypeToStr = map[MatchType]string{
	MatchTypeField:      "Field",
	MatchTypeEtherType:  "EtherType",
	MatchTypeIPProto:    "IPProto",
	MatchTypeVLANTagged: "VLANTagged",
	MatchTypeDHCPOption: "DHCPOption",
}

var strToMatchType = make(map[string]MatchType)

func init() {
	for matchType, str := range matchTypeToStr {
		strToMatchType[str] = matchType
	}
}

func (t MatchType) String() string {
	return matchTypeToStr[t]
}

func (t *MatchType) Set(s string) error {
	if matchType, ok := strToMatchType[s]; ok {
		*t = matchType
		return nil
	}
	return fmt.Errorf("invalid match type: %s", s)
}

func (t MatchType) MarshalJSON() ([]byte, error) {
	s := t.String()
	if s == "" {
		return nil, fmt.Errorf("invalid match type: %d", t)
	}
	return json.Marshal(s)
}

func (t *MatchType) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	return t.Set(s)
}

func CompareMatchType(t1, t2 MatchType) int {
	return int(t1 - t2)
}

// Matcher evaluates one predicate against a parsed frame. Matchers
// must treat an unbound field as a non-match, never as an error: a
// frame that stopped parsing early simply does not match deeper rules.
type Matcher interface {
	MatchType() MatchType
	Match(*oxmpkt.Parser) bool
	Compare(Matcher) int
}

func CompareMatcherType(m1, m2 Matcher) int {
	return CompareMatchType(m1.MatchType(), m2.MatchType())
}

func newMatcher(matchType MatchType, data json.RawMessage) (Matcher, error) {
	switch matchType {
	case MatchTypeField:
		return unmarshalMatcher[MatchField](data)
	case MatchTypeEtherType:
		return unmarshalMatcher[MatchEtherType](data)
	case MatchTypeIPProto:
		return unmarshalMatcher[MatchIPProto](data)
	case MatchTypeVLANTagged:
		return unmarshalMatcher[MatchVLANTagged](data)
	case MatchTypeDHCPOption:
		return unmarshalMatcher[MatchDHCPOption](data)
	default:
		return nil, fmt.Errorf("invalid match type: %d", matchType)
	}
}

func unmarshalMatcher[T Matcher](data json.RawMessage) (Matcher, error) {
	var m T
	err := json.Unmarshal(data, &m)
	return m, err
}
