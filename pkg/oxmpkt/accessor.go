package oxmpkt

// Load reads the field's live bytes at its wire width as a big-endian
// value and applies mask. The field must be bound; see Bound.
func (p *Parser) Load(f Field, mask uint64) uint64 {
	return loadBits(p.access(f)) & mask
}

// Modify replaces exactly the bits selected by mask with the
// corresponding bits of value and writes the result back into the
// frame in place. Bits outside mask keep their current wire value.
func (p *Parser) Modify(f Field, value, mask uint64) {
	view := p.access(f)
	next := (loadBits(view) &^ mask) | (value & mask)
	storeBits(view, next)
}

func loadBits(view []byte) uint64 {
	var v uint64
	for _, b := range view {
		v = v<<8 | uint64(b)
	}
	return v
}

func storeBits(view []byte, v uint64) {
	for i := len(view) - 1; i >= 0; i-- {
		view[i] = byte(v)
		v >>= 8
	}
}
