// Package gbtype holds the data model and error taxonomy shared by every
// codec and transform in the font engine core: bitmaps, outlines, the
// tagged glyph-data union, and the small set of error kinds a decoder or
// encoder can return.
package gbtype

// NotFoundError indicates a glyph has no entry for the requested code point.
type NotFoundError struct {
	SubSystem string
	Code      uint32
}

func (err *NotFoundError) Error() string {
	return err.SubSystem + ": glyph not found"
}

// IsNotFound returns true if err is a *NotFoundError.
func IsNotFound(err error) bool {
	_, ok := err.(*NotFoundError)
	return ok
}

// InvalidArgumentError indicates a null or structurally invalid caller input,
// such as a bitmap whose dimensions don't match the codec it is encoded
// against.
type InvalidArgumentError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidArgumentError) Error() string {
	return err.SubSystem + ": invalid argument: " + err.Reason
}

// InvalidOutlineError indicates an outline violates the structural
// invariants in §4.7 of the design (bad contour end index, a dangling
// cubic-off point, and so on).
type InvalidOutlineError struct {
	Reason string
}

func (err *InvalidOutlineError) Error() string {
	return "invalid outline: " + err.Reason
}

// InvalidFormatError indicates a stream's contents don't match the format
// they were decoded as: wrong magic tag, an impossible header length, or a
// packed record whose declared length doesn't match its content.
type InvalidFormatError struct {
	SubSystem string
	Reason    string
}

func (err *InvalidFormatError) Error() string {
	return err.SubSystem + ": " + err.Reason
}

// PoolOverflowError indicates the rasterizer's caller-supplied cell pool is
// too small to render even a single scanline after repeated band splitting.
type PoolOverflowError struct {
	BandSize int
}

func (err *PoolOverflowError) Error() string {
	return "rasterizer: cell pool too small"
}

// UnsupportedError indicates a SetParam call named an unknown parameter, or
// asked for a bit depth / feature combination this codec does not support.
type UnsupportedError struct {
	SubSystem string
	Feature   string
}

func (err *UnsupportedError) Error() string {
	return err.SubSystem + ": " + err.Feature + " not supported"
}

// IsUnsupported returns true if err is an *UnsupportedError.
func IsUnsupported(err error) bool {
	_, ok := err.(*UnsupportedError)
	return ok
}
