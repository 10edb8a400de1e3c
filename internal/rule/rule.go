package rule

import (
	"encoding/json"

	"github.com/sdnlab/flowpath/pkg/oxmpkt"
)

// Rule is one match/action entry of the data path: every matcher must
// hold for the target to run. Counters track frames and bytes the
// rule has handled.
type Rule struct {
	ID       int
	Matchers []Matcher
	Target   Target
	Bytes    uint64
	Packets  uint64
}

func (r *Rule) Match(p *oxmpkt.Parser) bool {
	for _, m := range r.Matchers {
		if !m.Match(p) {
			return false
		}
	}
	return true
}

// Matchers and targets cross the API as (type, value) envelopes so
// each concrete type can keep its own JSON shape.
type matcherWrapper struct {
	Type  MatchType       `json:"type"`
	Value json.RawMessage `json:"value"`
}

type targetWrapper struct {
	Type  TargetType      `json:"type"`
	Value json.RawMessage `json:"value"`
}

type ruleWrapper struct {
	ID       int              `json:"id,omitempty"`
	Matchers []matcherWrapper `json:"matchers"`
	Target   *targetWrapper   `json:"target"`
	Bytes    uint64           `json:"bytes,omitempty"`
	Packets  uint64           `json:"packets,omitempty"`
}

func (r Rule) MarshalJSON() ([]byte, error) {
	wrappedMatchers := make([]matcherWrapper, 0, len(r.Matchers))
	for _, m := range r.Matchers {
		data, err := json.Marshal(m)
		if err != nil {
			return nil, err
		}
		wrappedMatchers = append(wrappedMatchers, matcherWrapper{Type: m.MatchType(), Value: data})
	}

	var wrappedTarget *targetWrapper
	if r.Target != nil {
		data, err := json.Marshal(r.Target)
		if err != nil {
			return nil, err
		}
		wrappedTarget = &targetWrapper{Type: r.Target.TargetType(), Value: data}
	}

	return json.Marshal(ruleWrapper{
		ID:       r.ID,
		Matchers: wrappedMatchers,
		Target:   wrappedTarget,
		Bytes:    r.Bytes,
		Packets:  r.Packets,
	})
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var w ruleWrapper
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	r.ID = w.ID

	r.Matchers = make([]Matcher, len(w.Matchers))
	for i, mw := range w.Matchers {
		m, err := newMatcher(mw.Type, mw.Value)
		if err != nil {
			return err
		}
		r.Matchers[i] = m
	}

	if w.Target != nil {
		tgt, err := newTarget(w.Target.Type, w.Target.Value)
		if err != nil {
			return err
		}
		r.Target = tgt
	}

	r.Bytes = w.Bytes
	r.Packets = w.Packets
	return nil
}
