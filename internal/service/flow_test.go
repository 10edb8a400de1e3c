package service

import (
	"testing"

	"github.com/sdnlab/flowpath/internal/rule"
	"github.com/sdnlab/flowpath/pkg/oxmpkt"
	"github.com/stretchr/testify/assert"
)

// ipv4/tcp syn, 172.16.23.2:51998 > 172.16.23.1:1024
var synData = []byte{106, 16, 233, 55, 99, 172, 10, 20, 138, 88, 14, 20, 8, 0, 69, 0, 0, 60, 246, 122, 64, 0, 64, 6, 190, 29, 172, 16, 23, 2, 172, 16, 23, 1, 203, 30, 4, 0, 128, 116, 92, 195, 0, 0, 0, 0, 160, 2, 250, 240, 134, 82, 0, 0, 71, 69, 84, 32, 47, 32, 72, 84, 84, 80, 47, 49, 46, 49, 13, 10, 72, 111, 115, 116}

func TestRuleLifecycle(t *testing.T) {
	s := NewFlowService()

	id, err := s.AddRule(&rule.Rule{
		Matchers: []rule.Matcher{rule.MatchIPProto(6)},
		Target:   rule.TargetOutput{Port: 2},
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, id)

	r, err := s.QueryRule(id)
	assert.NoError(t, err)
	assert.Equal(t, id, r.ID)

	assert.NoError(t, s.DeleteRule(id))
	assert.Error(t, s.DeleteRule(id))
	_, err = s.QueryRule(id)
	assert.Error(t, err)
}

func TestAddRuleWithoutTarget(t *testing.T) {
	s := NewFlowService()
	_, err := s.AddRule(&rule.Rule{Matchers: []rule.Matcher{rule.MatchIPProto(6)}})
	assert.Error(t, err)
}

func TestHandlePacketInOutput(t *testing.T) {
	s := NewFlowService()
	_, err := s.AddRule(&rule.Rule{
		Matchers: []rule.Matcher{rule.MatchEtherType(0x0800), rule.MatchIPProto(6)},
		Target:   rule.TargetOutput{Port: 5},
	})
	assert.NoError(t, err)

	out, err := s.HandlePacketIn(append([]byte{}, synData...), 1)
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, uint32(5), out.Port)
		assert.Equal(t, synData, out.Data)
	}
	assert.Equal(t, uint64(1), s.Matched)
}

func TestHandlePacketInSetField(t *testing.T) {
	s := NewFlowService()
	_, err := s.AddRule(&rule.Rule{
		Matchers: []rule.Matcher{rule.MatchField{Field: oxmpkt.FieldTCPDst, Value: 1024}},
		Target: rule.TargetSetField{
			Port:    3,
			Patches: []rule.FieldPatch{{Field: oxmpkt.FieldTCPDst, Value: 8080}},
		},
	})
	assert.NoError(t, err)

	out, err := s.HandlePacketIn(append([]byte{}, synData...), 1)
	assert.NoError(t, err)
	if assert.NotNil(t, out) {
		assert.Equal(t, uint32(3), out.Port)
		p := oxmpkt.NewParser(out.Data, 1)
		assert.Equal(t, uint64(8080), p.Load(oxmpkt.FieldTCPDst, oxmpkt.FieldTCPDst.FullMask()))
	}
}

func TestHandlePacketInDrop(t *testing.T) {
	s := NewFlowService()
	_, err := s.AddRule(&rule.Rule{
		Matchers: []rule.Matcher{rule.MatchIPProto(6)},
		Target:   rule.TargetDrop{},
	})
	assert.NoError(t, err)

	out, err := s.HandlePacketIn(append([]byte{}, synData...), 1)
	assert.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, uint64(1), s.Dropped)
}

func TestHandlePacketInNoMatch(t *testing.T) {
	s := NewFlowService()
	_, err := s.AddRule(&rule.Rule{
		Matchers: []rule.Matcher{rule.MatchIPProto(17)},
		Target:   rule.TargetOutput{Port: 2},
	})
	assert.NoError(t, err)

	out, err := s.HandlePacketIn(append([]byte{}, synData...), 1)
	assert.NoError(t, err)
	assert.Nil(t, out)
	assert.Equal(t, uint64(0), s.Matched)
}

func TestHandlePacketInFirstMatchWins(t *testing.T) {
	s := NewFlowService()
	_, err := s.AddRule(&rule.Rule{
		Matchers: []rule.Matcher{rule.MatchIPProto(6)},
		Target:   rule.TargetOutput{Port: 2},
	})
	assert.NoError(t, err)
	_, err = s.AddRule(&rule.Rule{
		Matchers: []rule.Matcher{rule.MatchIPProto(6)},
		Target:   rule.TargetDrop{},
	})
	assert.NoError(t, err)

	out, err := s.HandlePacketIn(append([]byte{}, synData...), 1)
	assert.NoError(t, err)
	assert.NotNil(t, out)
}
