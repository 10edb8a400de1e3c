package rule

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"
	"github.com/sdnlab/flowpath/pkg/oxmpkt"
)

// FieldPatch overwrites the masked bits of one OXM field in place.
// A zero Mask means the field's full width.
type FieldPatch struct {
	Field oxmpkt.Field `json:"field"`
	Value uint64       `json:"value"`
	Mask  uint64       `json:"mask,omitempty"`
}

func (p FieldPatch) mask() uint64 {
	if p.Mask == 0 {
		return p.Field.FullMask()
	}
	return p.Mask
}

func (p FieldPatch) compare(o FieldPatch) int {
	if c := cmp.Compare(p.Field, o.Field); c != 0 {
		return c
	}
	if c := cmp.Compare(p.Value, o.Value); c != 0 {
		return c
	}
	return cmp.Compare(p.Mask, o.Mask)
}

// TargetSetField rewrites the frame through the parser bindings and
// then forwards it out of Port. Patching a field the frame does not
// carry is a configuration error, reported rather than panicked: the
// rule, not the dispatcher, is wrong.
type TargetSetField struct {
	Patches []FieldPatch `json:"patches"`
	Port    uint32       `json:"port"`
}

func (TargetSetField) TargetType() TargetType {
	return TargetTypeSetField
}

func (t TargetSetField) Execute(p *oxmpkt.Parser) (Verdict, error) {
	for _, patch := range t.Patches {
		if !p.Bound(patch.Field) {
			return VerdictDrop, errors.Errorf("set-field: field %s not present in frame", patch.Field)
		}
		p.Modify(patch.Field, patch.Value, patch.mask())
	}
	return VerdictOutput, nil
}

func (t TargetSetField) Compare(other Target) int {
	if t.TargetType() != other.TargetType() {
		return CompareTargetType(t, other)
	}
	o := other.(TargetSetField)
	if c := slices.CompareFunc(t.Patches, o.Patches, FieldPatch.compare); c != 0 {
		return c
	}
	return cmp.Compare(t.Port, o.Port)
}
