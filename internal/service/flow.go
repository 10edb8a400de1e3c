package service

import (
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/sdnlab/flowpath/internal/rule"
	"github.com/sdnlab/flowpath/pkg/oxmpkt"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// PacketOut is a frame to re-inject into the network.
type PacketOut struct {
	Port uint32
	Data []byte
}

// FlowService owns the rule table and runs the packet-in pipeline:
// parse, first-match, execute, serialize. Rule mutation and packet
// handling may race, so the table is lock-guarded; individual frames
// are still single-writer (see oxmpkt.Parser).
type FlowService struct {
	mu     *sync.RWMutex
	ruleID int
	rules  []*rule.Rule

	// per-packet debug logs are throttled so a busy link cannot
	// flood the log output
	logLimit *rate.Limiter

	PacketsIn uint64
	Matched   uint64
	Dropped   uint64
}

func NewFlowService() *FlowService {
	return &FlowService{
		mu:       &sync.RWMutex{},
		rules:    make([]*rule.Rule, 0, 64),
		logLimit: rate.NewLimiter(rate.Limit(10), 10),
	}
}

func (s *FlowService) QueryRule(ruleID int) (*rule.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.rules, ruleIDMatcher(ruleID))
	if idx == -1 {
		return nil, errors.Errorf("no such rule id: %d", ruleID)
	}
	return s.rules[idx], nil
}

func (s *FlowService) QueryRules() []*rule.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.rules)
}

func (s *FlowService) AddRule(r *rule.Rule) (int, error) {
	if r.Target == nil {
		return 0, errors.New("rule has no target")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ruleID++
	r.ID = s.ruleID
	s.rules = append(s.rules, r)

	logrus.WithFields(logrus.Fields{
		"rule_id": r.ID,
		"target":  r.Target.TargetType().String(),
	}).Info("Add rule")
	return r.ID, nil
}

func (s *FlowService) DeleteRule(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.rules, ruleIDMatcher(id))
	if idx == -1 {
		return errors.Errorf("no such rule id: %d", id)
	}
	s.rules = slices.Delete(s.rules, idx, idx+1)

	logrus.WithField("rule_id", id).Info("Delete rule")
	return nil
}

func ruleIDMatcher(ruleID int) func(r *rule.Rule) bool {
	return func(r *rule.Rule) bool { return r.ID == ruleID }
}

// HandlePacketIn parses a frame from an OpenFlow packet-in and runs
// it through the rule table. First matching rule wins. A nil PacketOut
// means the frame produced no output: dropped, or no rule matched.
func (s *FlowService) HandlePacketIn(data []byte, inPort uint32) (*PacketOut, error) {
	p := oxmpkt.NewParser(data, inPort)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.PacketsIn++

	for _, r := range s.rules {
		if !r.Match(p) {
			continue
		}
		r.Packets++
		r.Bytes += uint64(p.TotalBytes())
		s.Matched++

		verdict, err := r.Target.Execute(p)
		if err != nil {
			return nil, errors.Wrapf(err, "rule %d", r.ID)
		}
		if verdict == rule.VerdictDrop {
			s.Dropped++
			return nil, nil
		}

		out := &PacketOut{Port: outputPort(r.Target)}
		out.Data = make([]byte, p.TotalBytes())
		p.SerializeTo(out.Data)

		if s.logLimit.Allow() {
			logrus.WithFields(logrus.Fields{
				"rule_id":  r.ID,
				"in_port":  inPort,
				"out_port": out.Port,
				"bytes":    p.TotalBytes(),
			}).Debug("Packet out")
		}
		return out, nil
	}

	if s.logLimit.Allow() {
		logrus.WithFields(logrus.Fields{
			"in_port": inPort,
			"bytes":   p.TotalBytes(),
		}).Debug("No rule matched")
	}
	return nil, nil
}

func outputPort(t rule.Target) uint32 {
	switch tgt := t.(type) {
	case rule.TargetOutput:
		return tgt.Port
	case rule.TargetSetField:
		return tgt.Port
	}
	return 0
}
