// ◄◄◄ context.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

import "github.com/pbnjay/memory"

// defaultMaxMallocFallback32 and defaultMaxMallocFallback64 are the
// literal spec defaults (2GB / 2TB), used when the host's total memory
// cannot be determined.
const (
	defaultMaxMallocFallback32 = 2 << 30
	defaultMaxMallocFallback64 = 2 << 40
)

// DefaultMaxMalloc picks a sane allocation cap for this host. On a host
// where memory.TotalMemory() can report a real figure, the cap is set to
// that figure (an oversize single allocation is refused long before the
// host would actually run out of memory, since the gatekeeper checks
// each allocation independently, not cumulatively); otherwise it falls
// back to the spec's literal per-platform defaults.
func DefaultMaxMalloc() int64 {
	total := memory.TotalMemory()
	if total > 0 {
		return int64(total)
	}
	if is64BitPlatform() {
		return defaultMaxMallocFallback64
	}
	return defaultMaxMallocFallback32
}

// Context tracks the state of one resize operation: input image,
// configuration, and (after Process) the output image. A Context is
// single-use.
type Context struct {
	err *Error
	used bool

	progressCB func(string)
	warningCB  func(string)

	input  *Image
	output *Image

	inputColorspace  ColorspaceDescriptor
	outputColorspace ColorspaceDescriptor
	haveInputCS      bool
	haveOutputCS     bool

	cropX, cropY, cropW, cropH int
	haveCrop                   bool

	outW, outH int

	outputDepth int // 0 = unspecified, else 8 or 16

	// outputMaxColorCode, when set, derives outputDepth via
	// maxColorToBitDepth instead of a caller-specified bit depth (spec §6
	// "per-channel max-color-code for reduced-bit-depth formats").
	outputMaxColorCode int

	resizeV ResizeSettings
	resizeH ResizeSettings
	resizeAlphaOverride *ResizeSettings

	background Background

	grayscale    bool
	grayFormula  GrayFormula

	ditherColor DitherSettings
	ditherAlpha DitherSettings
	colorCountColor int
	colorCountAlpha int

	orientation Orientation

	intermediateClamp bool
	disableGamma      bool

	maxMalloc   int64
	allocated   int64

	randomSeedMode int // 0 = per-process pseudo-random, else fixed seed
	fixedSeed      uint32

	rng prngState

	optDisableInputTable  bool
	optDisableOutputTable bool
}

// NewContext creates a Context with the spec's documented defaults:
// STANDARD edge policy, no background, no dithering, auto filter family,
// blur 1.0, and a host-appropriate allocation cap.
func NewContext() *Context {
	ctx := &Context{
		resizeV: ResizeSettings{Family: FilterAuto, Blur: 1.0, Edge: EdgeStandard},
		resizeH: ResizeSettings{Family: FilterAuto, Blur: 1.0, Edge: EdgeStandard},
		maxMalloc: DefaultMaxMalloc(),
		grayFormula: GrayLumaSRGB,
	}
	return ctx
}

func (ctx *Context) SetProgressCallback(cb func(string)) { ctx.progressCB = cb }
func (ctx *Context) SetWarningCallback(cb func(string))  { ctx.warningCB = cb }

// SetInputImage takes ownership of img's pixel memory (spec §6
// "set_input_image(img) takes ownership of pixel memory").
func (ctx *Context) SetInputImage(img *Image) {
	ctx.input = img
}

// SetInputColorspace records the colorspace the input buffer's samples
// are encoded in.
func (ctx *Context) SetInputColorspace(cs ColorspaceDescriptor) {
	ctx.inputColorspace = cs
	ctx.haveInputCS = true
}

func (ctx *Context) SetOutputColorspace(cs ColorspaceDescriptor) {
	ctx.outputColorspace = cs
	ctx.haveOutputCS = true
}

// SetOutputCanvasSize sets the target pixel dimensions. Non-positive
// values are rejected at Process time, not here — spec §7 "Setters never
// fail; they either accept and validate at process time, or silently
// snap to default."
func (ctx *Context) SetOutputCanvasSize(w, h int) {
	ctx.outW, ctx.outH = w, h
}

// SetInputCropRect sets the size of the region of the input image that
// participates in the resize. Only w and h take effect: the region read
// always starts at the input's top-left corner, and x and y are stored
// but not applied.
func (ctx *Context) SetInputCropRect(x, y, w, h int) {
	ctx.cropX, ctx.cropY, ctx.cropW, ctx.cropH = x, y, w, h
	ctx.haveCrop = true
}

// SetOutputDepth requests 8 or 16 bits per UINT sample; any other value
// is a no-op (spec §6 "all no-op on invalid enum values").
func (ctx *Context) SetOutputDepth(depth int) {
	if depth == 8 || depth == 16 {
		ctx.outputDepth = depth
	}
}

// SetOutputMaxColorCode configures a per-channel max-color-code for the
// output format directly, instead of a bit depth. When set, and no
// explicit SetOutputDepth call overrides it, the output bit depth is the
// smallest one that can hold this max color code (spec §6).
func (ctx *Context) SetOutputMaxColorCode(maxColorCode int) {
	ctx.outputMaxColorCode = maxColorCode
}

// SetResizeSetting installs resize settings for one or both dimensions.
func (ctx *Context) SetResizeSetting(dim Dimension, rs ResizeSettings) {
	rs.Blur = clampBlur(rs.Blur)
	switch dim {
	case DimVertical:
		ctx.resizeV = rs
	case DimHorizontal:
		ctx.resizeH = rs
	case DimBoth:
		ctx.resizeV = rs
		ctx.resizeH = rs
	}
}

// SetAlphaResizeOverride installs a resize setting used only for the
// alpha channel, overriding the per-dimension color settings.
func (ctx *Context) SetAlphaResizeOverride(rs ResizeSettings) {
	rs.Blur = clampBlur(rs.Blur)
	ctx.resizeAlphaOverride = &rs
}

func (ctx *Context) SetOrientation(o Orientation) { ctx.orientation = o }

func (ctx *Context) SetEdgePolicy(dim Dimension, edge EdgePolicy) {
	switch dim {
	case DimVertical:
		ctx.resizeV.Edge = edge
	case DimHorizontal:
		ctx.resizeH.Edge = edge
	case DimBoth:
		ctx.resizeV.Edge = edge
		ctx.resizeH.Edge = edge
	}
}

// SetBackgroundColor configures a solid background color (linear RGB) to
// composite against the source alpha.
func (ctx *Context) SetBackgroundColor(c ColorTriple, alpha float64) {
	ctx.background.Enabled = true
	ctx.background.Color1 = c
	ctx.background.Alpha1 = alpha
}

// SetCheckerboardBackground adds a second background color and cell
// size, turning the background into a checkerboard pattern.
func (ctx *Context) SetCheckerboardBackground(c2 ColorTriple, alpha2 float64, cellSize int) {
	ctx.background.Checkerboard = true
	ctx.background.Color2 = c2
	ctx.background.Alpha2 = alpha2
	ctx.background.CellSize = cellSize
}

func (ctx *Context) SetGrayscale(enabled bool, formula GrayFormula) {
	ctx.grayscale = enabled
	ctx.grayFormula = formula
}

func (ctx *Context) SetDitherColor(d DitherSettings)     { ctx.ditherColor = d }
func (ctx *Context) SetDitherAlpha(d DitherSettings)     { ctx.ditherAlpha = d }
func (ctx *Context) SetColorCountColor(cc int)           { ctx.colorCountColor = cc }
func (ctx *Context) SetColorCountAlpha(cc int)           { ctx.colorCountAlpha = cc }
func (ctx *Context) SetIntermediateClamp(enabled bool)   { ctx.intermediateClamp = enabled }
func (ctx *Context) SetDisableGamma(disabled bool)       { ctx.disableGamma = disabled }
func (ctx *Context) SetMaxMalloc(n int64)                { ctx.maxMalloc = n }

// SetRandomSeed fixes the PRNG seed instead of deriving one per Process
// call, for reproducible dithering.
func (ctx *Context) SetRandomSeed(seed uint32) {
	ctx.randomSeedMode = 1
	ctx.fixedSeed = seed
}

func (ctx *Context) SetDisableInputAccelTable(disabled bool)  { ctx.optDisableInputTable = disabled }
func (ctx *Context) SetDisableOutputAccelTable(disabled bool) { ctx.optDisableOutputTable = disabled }

// GetOutputImage returns the produced output image. Valid only after a
// successful Process call.
func (ctx *Context) GetOutputImage() *Image { return ctx.output }

// allocGate is the allocation gatekeeper (spec §5 "Max allocation cap").
// n1*n2 is checked for overflow before multiplying, and the product is
// refused if it would exceed the configured cap.
func (ctx *Context) allocGate(n1, n2 int64) (int64, bool) {
	if n1 < 0 || n2 < 0 {
		return 0, false
	}
	if n1 != 0 && n2 > (1<<62)/n1 {
		return 0, false // overflow
	}
	size := n1 * n2
	if size > ctx.maxMalloc {
		return 0, false
	}
	return size, true
}

func (ctx *Context) allocFloats(n int) ([]float64, bool) {
	size, ok := ctx.allocGate(int64(n), 8)
	if !ok {
		return nil, false
	}
	ctx.allocated += size
	return make([]float64, n), true
}
