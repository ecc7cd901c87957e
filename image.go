// ◄◄◄ image.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

// SampleType distinguishes the two in-memory sample encodings a raster can
// carry.
type SampleType int

const (
	SampleUint SampleType = iota
	SampleFloat32
)

// ImageType enumerates the channel layouts the core understands.
type ImageType int

const (
	ImgGray ImageType = iota
	ImgGrayAlpha
	ImgRGB
	ImgRGBAlpha
	ImgPalette
)

// NumChannels returns the number of interleaved channels this image type
// carries in memory (G / GA / RGB / RGBA; palette images carry one index
// channel, handled by the codec collaborator, not the core).
func (t ImageType) NumChannels() int {
	switch t {
	case ImgGray:
		return 1
	case ImgGrayAlpha:
		return 2
	case ImgRGB:
		return 3
	case ImgRGBAlpha:
		return 4
	case ImgPalette:
		return 1
	}
	return 0
}

func (t ImageType) HasAlpha() bool {
	return t == ImgGrayAlpha || t == ImgRGBAlpha
}

func (t ImageType) IsGrayscale() bool {
	return t == ImgGray || t == ImgGrayAlpha
}

// Orientation is one of the 8 variants by which logical coordinates are
// mapped to physical coordinates in the input buffer.
type Orientation int

const (
	OrientIdentity Orientation = iota
	OrientFlipH
	OrientFlipV
	Orient180
	OrientTranspose
	OrientRot90
	OrientRot270
	OrientTransverse
)

// apply maps a logical (x,y) coordinate, in an image of logical size
// w×h, to the physical coordinate this orientation reads from.
func (o Orientation) apply(x, y, w, h int) (px, py int) {
	switch o {
	case OrientIdentity:
		return x, y
	case OrientFlipH:
		return w - 1 - x, y
	case OrientFlipV:
		return x, h - 1 - y
	case Orient180:
		return w - 1 - x, h - 1 - y
	case OrientTranspose:
		return y, x
	case OrientRot90:
		return h - 1 - y, x
	case OrientRot270:
		return y, w - 1 - x
	case OrientTransverse:
		return h - 1 - y, w - 1 - x
	}
	return x, y
}

// PaletteEntry is one RGBA entry of a post-optimized output palette.
type PaletteEntry struct {
	R, G, B, A uint8
}

// Palette holds up to 256 entries. It is built by the (out-of-scope)
// post-optimizer after the core pipeline finishes; the core never
// constructs one itself, but the type lives here so a caller's output
// descriptor has somewhere to hang it.
type Palette struct {
	Entries []PaletteEntry
}

// Image is the core's raster type: dimensions, layout, sample encoding,
// a contiguous pixel buffer, and optional metadata. Multi-byte UINT
// samples are stored big-endian in Pix; FLOAT32 samples are host-endian.
type Image struct {
	Width, Height int
	Type          ImageType
	SampleType    SampleType
	BitDepth      int // 1,2,4,8,16 for UINT; 32 for FLOAT32
	BytesPerRow   int
	Pix           []byte

	Colorspace ColorspaceDescriptor
	Palette    *Palette

	// Optional metadata a codec collaborator may have populated.
	DensityX, DensityY float64 // 0 = unset
	RenderingIntent    string
	BkgdLabel          *ColorTriple // recorded background-color label
	TransparentColor   *ColorTriple // color-key transparency
	MaxColorCode       int          // 0 = use (1<<BitDepth)-1
}

// ColorTriple is a linear or encoded RGB triple, reused for background
// labels, color keys, and configured background colors.
type ColorTriple struct {
	R, G, B float64
}

// maxCode returns the maximum integer code representable at this image's
// bit depth, honoring an explicit MaxColorCode override (spec §6
// "per-channel max-color-code for reduced-bit-depth formats").
func (img *Image) maxCode() int {
	if img.MaxColorCode > 0 {
		return img.MaxColorCode
	}
	return (1 << uint(img.BitDepth)) - 1
}

// ChannelType names what a single channel, at any pipeline stage,
// represents.
type ChannelType int

const (
	ChanRed ChannelType = iota
	ChanGreen
	ChanBlue
	ChanAlpha
	ChanGray
)

// DitherFamily selects the quantization-rounding strategy (spec §4.7).
type DitherFamily int

const (
	DitherNone DitherFamily = iota
	DitherOrdered
	DitherRandom
	DitherErrorDiffusion
)

// DitherSubtype distinguishes variants within a DitherFamily.
type DitherSubtype int

const (
	DitherSubtypeDefault DitherSubtype = iota

	// DitherOrdered subtypes.
	OrderedDispersed
	OrderedHalftone

	// DitherErrorDiffusion subtypes, one per named kernel.
	ErrDiffFloydSteinberg
	ErrDiffJJN
	ErrDiffStucki
	ErrDiffBurkes
	ErrDiffSierra3
	ErrDiffSierra2
	ErrDiffSierraLite
	ErrDiffAtkinson
)

// DitherSettings configures the ditherer for one channel or channel
// group.
type DitherSettings struct {
	Family  DitherFamily
	Subtype DitherSubtype
	// SamePattern, when true and Family==DitherRandom, seeds the PRNG
	// per alpha-vs-color group rather than per individual channel.
	SamePattern bool
}

// ChannelInfo describes one channel at one pipeline stage (input,
// intermediate, or output), per spec §3.
type ChannelInfo struct {
	Type ChannelType

	MaxCode int

	NeedsUnassocAlpha bool
	CvtToGrayscale    bool

	// PrevIndex/NextIndex are indices (by position, -1 if none) into the
	// adjoining stage's channel list that this channel corresponds to.
	PrevIndex int
	NextIndex int

	Dither     DitherSettings
	ColorCount int // 0 = full depth

	// BkgdLinear is this channel's pre-composited background value in
	// linear light, used when the strategy selector chose EARLY
	// compositing.
	BkgdLinear float64
}

// GrayFormula selects the weighted-sum coefficients (or order-by-value
// mode) used to collapse RGB into a single gray intermediate channel.
type GrayFormula int

const (
	GrayLumaSRGB  GrayFormula = iota // 0.2126/0.7152/0.0722
	GrayLumaRec601               // 0.299/0.587/0.114 (Rec.601 compatibility)
	GrayOrderByValue
)

func (f GrayFormula) weights() (wr, wg, wb float64) {
	switch f {
	case GrayLumaRec601:
		return 0.299, 0.587, 0.114
	case GrayOrderByValue:
		// order-by-value reuses the sRGB luma weights, applied to the
		// sorted (not positional) channel values.
		return 0.2126, 0.7152, 0.0722
	default:
		return 0.2126, 0.7152, 0.0722
	}
}

// EdgePolicy is the rule applied when a filter's support crosses the
// image boundary (spec GLOSSARY).
type EdgePolicy int

const (
	EdgeStandard EdgePolicy = iota
	EdgeReplicate
	EdgeTransparent
)

// BackgroundStrategy is the strategy selector's decision for where, in
// the two-pass pipeline, a configured background color is composited.
type BackgroundStrategy int

const (
	BkgdNone BackgroundStrategy = iota
	BkgdEarly
	BkgdLate
)

// Dimension selects which axis a per-dimension setting applies to.
type Dimension int

const (
	DimVertical Dimension = iota
	DimHorizontal
	DimBoth
)

// ResizeSettings configures one dimension's resize (spec §3 "Resize
// settings"). Param1/Param2 are filter-family-specific: cubic B/C,
// or sinc-family lobes (Param1 only).
type ResizeSettings struct {
	Family FilterFamily
	Param1 float64
	Param2 float64

	Blur float64 // clamped to [0.0001, 10000]

	Edge EdgePolicy

	// ChannelOffset is a sub-pixel offset, in destination pixels, applied
	// only to R/G/B channels (not alpha/gray). Index 0=R,1=G,2=B.
	ChannelOffset [3]float64

	// Translation is a sub-pixel translation applied uniformly to all
	// channels in this dimension.
	Translation float64
}

func clampBlur(b float64) float64 {
	if b < 0.0001 {
		return 0.0001
	}
	if b > 10000 {
		return 10000
	}
	return b
}

// Background holds the configured solid/checkerboard background color,
// in linear light, used by EARLY/LATE compositing.
type Background struct {
	Enabled bool
	Color1  ColorTriple
	Alpha1  float64

	Checkerboard bool
	Color2       ColorTriple
	Alpha2       float64
	CellSize     int
}

// colorAt returns the background color (and its own alpha) for a given
// output pixel, honoring the checkerboard pattern if enabled.
func (bg *Background) colorAt(x, y int) (ColorTriple, float64) {
	if !bg.Checkerboard || bg.CellSize <= 0 {
		return bg.Color1, bg.Alpha1
	}
	cellX := (x / bg.CellSize) % 2
	cellY := (y / bg.CellSize) % 2
	if (cellX+cellY)%2 == 0 {
		return bg.Color1, bg.Alpha1
	}
	return bg.Color2, bg.Alpha2
}
