package oxmpkt

import "fmt"

// ContractError reports a binding-contract violation: binding a field
// twice, rebinding a field that was never bound, or accessing a field
// that is not currently bound. These are dispatcher or caller bugs,
// never a property of the packet, so they surface as panics rather
// than error returns.
type ContractError struct {
	Op    string
	Field Field
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("oxmpkt: %s contract violated for field %s(%d)", e.Op, e.Field, int(e.Field))
}

type bindState uint8

const (
	stateUnbound bindState = iota
	stateAbsent            // bound to "no such field in this frame"
	stateBound
)

type binding struct {
	state bindState
	view  []byte
}

// BindEntry associates a field with its live bytes inside the frame.
// A nil View records the field as explicitly absent, which is distinct
// from never having been bound.
type BindEntry struct {
	Field Field
	View  []byte
}

// Bind installs entries into unbound slots. Binding an already-bound
// or absent field panics with a ContractError.
func (p *Parser) Bind(entries ...BindEntry) {
	for _, e := range entries {
		if !e.Field.Valid() || p.bindings[e.Field].state != stateUnbound {
			panic(&ContractError{Op: "bind", Field: e.Field})
		}
		p.bindings[e.Field] = newBinding(e.View)
	}
}

// Rebind overwrites entries that are already bound or absent, for
// callers that supersede a generic binding with a more specific one.
// Rebinding an untouched field panics with a ContractError.
func (p *Parser) Rebind(entries ...BindEntry) {
	for _, e := range entries {
		if !e.Field.Valid() || p.bindings[e.Field].state == stateUnbound {
			panic(&ContractError{Op: "rebind", Field: e.Field})
		}
		p.bindings[e.Field] = newBinding(e.View)
	}
}

func newBinding(view []byte) binding {
	if view == nil {
		return binding{state: stateAbsent}
	}
	return binding{state: stateBound, view: view}
}

// Bound reports whether the field currently has live bytes. Callers
// must check it (or BoundFields) before Load/Modify: requesting an
// unbound field is a contract violation, not tolerated input variance.
func (p *Parser) Bound(f Field) bool {
	return f.Valid() && p.bindings[f].state == stateBound
}

// BoundFields enumerates the bound fields in id order.
func (p *Parser) BoundFields() []Field {
	var fields []Field
	for f := Field(0); f < numFields; f++ {
		if p.bindings[f].state == stateBound {
			fields = append(fields, f)
		}
	}
	return fields
}

func (p *Parser) access(f Field) []byte {
	if !f.Valid() || p.bindings[f].state != stateBound {
		panic(&ContractError{Op: "access", Field: f})
	}
	return p.bindings[f].view
}
