package rule

import (
	"encoding/json"
	"fmt"

	"github.com/sdnlab/flowpath/pkg/oxmpkt"
)

type TargetType int

const (
	TargetTypeDrop TargetType = iota + 1
	TargetTypeOutput
	TargetTypeSetField
)

var targetTypeToStr = map[TargetType]string{
	TargetTypeDrop:     "drop",
	TargetTypeOutput:   "output",
	TargetTypeSetField: "set-field",
}

var strToTargetType = make(map[string]TargetType)

func init() {
	for targetType, str := range targetTypeToStr {
		strToTargetType[str] = targetType
	}
}

func (t TargetType) String() string {
	return targetTypeToStr[t]
}

func (t *TargetType) Set(s string) error {
	if targetType, ok := strToTargetType[s]; ok {
		*t = targetType
		return nil
	}
	return fmt.Errorf("invalid target type: %s", s)
}

func (t TargetType) MarshalJSON() ([]byte, error) {
	s := t.String()
	if s == "" {
		return nil, fmt.Errorf("invalid target type: %d", t)
	}
	return json.Marshal(s)
}

func (t *TargetType) UnmarshalJSON(data []byte) error {
	var s string
	err := json.Unmarshal(data, &s)
	if err != nil {
		return err
	}
	return t.Set(s)
}

func (t TargetType) Compare(t1 TargetType) int {
	return int(t - t1)
}

// Verdict tells the pipeline what to do with the frame after the
// target ran.
type Verdict int

const (
	VerdictDrop Verdict = iota + 1
	VerdictOutput
)

// Target is the action side of a rule. Execute may rewrite the frame
// through the parser; the returned verdict drives forwarding.
type Target interface {
	TargetType() TargetType
	Execute(*oxmpkt.Parser) (Verdict, error)
	Compare(other Target) int
}

func CompareTargetType(t1, t2 Target) int {
	return t1.TargetType().Compare(t2.TargetType())
}

func newTarget(targetType TargetType, data json.RawMessage) (Target, error) {
	switch targetType {
	case TargetTypeDrop:
		var t TargetDrop
		return t, json.Unmarshal(data, &t)
	case TargetTypeOutput:
		var t TargetOutput
		return t, json.Unmarshal(data, &t)
	case TargetTypeSetField:
		var t TargetSetField
		return t, json.Unmarshal(data, &t)
	default:
		return nil, fmt.Errorf("invalid target type: %d", targetType)
	}
}

type TargetDrop struct{}

func (TargetDrop) TargetType() TargetType {
	return TargetTypeDrop
}

func (TargetDrop) Execute(*oxmpkt.Parser) (Verdict, error) {
	return VerdictDrop, nil
}

func (t TargetDrop) Compare(other Target) int {
	return CompareTargetType(t, other)
}

// TargetOutput forwards the frame out of an OpenFlow port.
type TargetOutput struct {
	Port uint32 `json:"port"`
}

func (TargetOutput) TargetType() TargetType {
	return TargetTypeOutput
}

func (TargetOutput) Execute(*oxmpkt.Parser) (Verdict, error) {
	return VerdictOutput, nil
}

func (t TargetOutput) Compare(other Target) int {
	if t.TargetType() != other.TargetType() {
		return CompareTargetType(t, other)
	}
	return int(int64(t.Port) - int64(other.(TargetOutput).Port))
}
