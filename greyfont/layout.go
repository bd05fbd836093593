package greyfont

import "github.com/raulmrio28-git/GreyBitType/layout"

// NewLayout builds a layout.Layout over loader, per spec.md §6's
// "Layout: new(loader, size, bitcount, bold, italic)". Loader itself
// implements format.Decoder, so this is a thin, host-agnostic wiring step
// rather than a reimplementation of layout.New.
func NewLayout(loader *Loader, size int16, bitCount int, bold, italic bool) *layout.Layout {
	return layout.New(loader, size, bitCount, bold, italic)
}
