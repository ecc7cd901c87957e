// ◄◄◄ orchestrate.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

// rgbaIndices returns the raw-channel index (into a linearPlane) of
// each of R,G,B,A for an image type, or -1 if that channel doesn't
// exist. Raw channel order in memory is R-G-B-A or G-A (spec §3).
func rgbaIndices(t ImageType) (r, g, b, a int) {
	switch t {
	case ImgGray:
		return -1, -1, -1, -1
	case ImgGrayAlpha:
		return -1, -1, -1, 1
	case ImgRGB:
		return 0, 1, 2, -1
	case ImgRGBAlpha:
		return 0, 1, 2, 3
	}
	return -1, -1, -1, -1
}

func grayAlphaIndices(t ImageType) (grayIdx, alphaIdx int) {
	switch t {
	case ImgGray:
		return 0, -1
	case ImgGrayAlpha:
		return 0, 1
	}
	return -1, -1
}

// combineGray applies the configured grayscale formula to a linear RGB
// triple (spec §4.5 step 3).
func combineGray(formula GrayFormula, r, g, b float64) float64 {
	wr, wg, wb := formula.weights()
	if formula == GrayOrderByValue {
		lo, mid, hi := r, g, b
		if lo > mid {
			lo, mid = mid, lo
		}
		if mid > hi {
			mid, hi = hi, mid
		}
		if lo > mid {
			lo, mid = mid, lo
		}
		return wb*lo + wg*mid + wr*hi
	}
	return wr*r + wg*g + wb*b
}

// resizer dispatches to one of the three row-resize variants chosen at
// weight-list construction time (spec §9 "the row resizer is one of
// three variants (std, nearest, null)").
type resizer struct {
	variant int // 0=std, 1=nearest, 2=null
	wl      *weightList
	srcLen  int
	dstLen  int
}

const (
	resizeVariantStd = iota
	resizeVariantNearest
	resizeVariantNull
)

func newResizer(rs ResizeSettings, srcLen, dstLen int, channelOffset float64, cache *weightListCache) resizer {
	translationActive := rs.Translation != 0 || channelOffset != 0
	f := resolvedFilter(rs, srcLen, dstLen, translationActive)

	if f.isPoint {
		if rs.Family == FilterNull || (rs.Family == FilterAuto && srcLen == dstLen && !translationActive) {
			return resizer{variant: resizeVariantNull, srcLen: srcLen, dstLen: dstLen}
		}
		return resizer{variant: resizeVariantNearest, srcLen: srcLen, dstLen: dstLen}
	}

	key := weightListKey{
		srcLen: srcLen, dstLen: dstLen, family: rs.Family,
		param1: rs.Param1, param2: rs.Param2, blur: rs.Blur,
		offset: rs.Translation + channelOffset, edge: rs.Edge,
	}
	wl := cache.get(key, func() *weightList {
		return buildWeightList(f, srcLen, dstLen, rs.Blur, rs.Translation+channelOffset, rs.Edge)
	})
	return resizer{variant: resizeVariantStd, wl: wl, srcLen: srcLen, dstLen: dstLen}
}

func (r resizer) run(in, out []float64) {
	switch r.variant {
	case resizeVariantStd:
		resizeRowStd(r.wl, in, out)
	case resizeVariantNearest:
		resizeRowNearest(r.srcLen, r.dstLen, in, out)
	default:
		resizeRowNull(r.srcLen, r.dstLen, in, out)
	}
}

// channelPlane is one fully-resized or in-progress channel buffer,
// row-major width*height.
type channelPlane struct {
	w, h int
	data []float64
}

func newChannelPlane(w, h int) *channelPlane {
	return &channelPlane{w: w, h: h, data: make([]float64, w*h)}
}

func (p *channelPlane) at(x, y int) float64     { return p.data[y*p.w+x] }
func (p *channelPlane) set(x, y int, v float64) { p.data[y*p.w+x] = v }

// pipeline holds everything process() accumulates while running, scoped
// to the lifetime of one Process call (spec §9 "scoped acquisition").
type pipeline struct {
	ctx    *Context
	input  *Image
	wCache *weightListCache

	srcW, srcH int // logical (post-orientation) input dimensions
	outW, outH int

	strategy strategyResult
	grayFmt  GrayFormula

	bg Background
}

// Process consumes ctx's configuration plus its input image and produces
// an output image. A Context is single-use: reprocessing fails with
// ErrInternal.
func (ctx *Context) Process() (*Image, error) {
	if ctx.used {
		ctx.setError(ErrInternal, "attempt to reprocess a used context")
		return nil, ctx.err
	}
	ctx.used = true

	if ctx.input == nil {
		ctx.setError(ErrConfig, "no input image set")
		return nil, ctx.err
	}
	if ctx.outW <= 0 || ctx.outH <= 0 {
		ctx.setError(ErrConfig, "invalid output dimensions")
		return nil, ctx.err
	}

	srcW, srcH := ctx.input.Width, ctx.input.Height
	if ctx.haveCrop {
		srcW, srcH = ctx.cropW, ctx.cropH
	}
	if ctx.orientation == OrientTranspose || ctx.orientation == OrientRot90 ||
		ctx.orientation == OrientRot270 || ctx.orientation == OrientTransverse {
		srcW, srcH = srcH, srcW
	}

	if _, ok := ctx.allocGate(int64(srcW), int64(srcH)); !ok {
		ctx.setError(ErrResource, "source image too large to process")
		return nil, ctx.err
	}
	if _, ok := ctx.allocGate(int64(ctx.outW), int64(ctx.outH)); !ok {
		ctx.setError(ErrResource, "target image too large")
		return nil, ctx.err
	}

	p := &pipeline{ctx: ctx, input: ctx.input, wCache: newWeightListCache(),
		srcW: srcW, srcH: srcH, outW: ctx.outW, outH: ctx.outH, grayFmt: ctx.grayFormula,
		bg: ctx.background}

	inCS := ctx.inputColorspace
	if !ctx.haveInputCS {
		inCS = CSDescrSRGB()
	}
	outCS := ctx.outputColorspace
	if !ctx.haveOutputCS {
		outCS = CSDescrSRGB()
	}

	edgeV, edgeH := ctx.resizeV.Edge, ctx.resizeH.Edge
	virtualAlphaEdge := edgeV == EdgeTransparent || edgeH == EdgeTransparent

	channelOffsetActive := ctx.resizeH.ChannelOffset != [3]float64{} || ctx.resizeV.ChannelOffset != [3]float64{}

	sres := selectStrategy(ctx, strategyInput{
		imgTypeIn:           ctx.input.Type,
		toGrayscale:         ctx.grayscale,
		hasBackground:       ctx.background.Enabled,
		bgHasTransparency:   ctx.background.Alpha1 < 1.0,
		checkerboard:        ctx.background.Checkerboard,
		channelOffsetActive: channelOffsetActive,
		virtualAlphaEdge:    virtualAlphaEdge,
		outputSupportsAlpha: true,
		outputSupports16Bit: true,
		outputIsHDRI:        false,
		wantDepth:           ctx.outputDepth,
		wantMaxColorCode:    ctx.outputMaxColorCode,
	})
	p.strategy = sres
	if ctx.background.Checkerboard && channelOffsetActive {
		p.bg.Checkerboard = false
	}

	inImg := *ctx.input
	inImg.Colorspace = inCS
	plane := linearizeInput(ctx, &inImg, ctx.orientation, srcW, srcH)

	out := &Image{
		Width: ctx.outW, Height: ctx.outH,
		Type:       sres.imgTypeOutput,
		SampleType: sres.outputSampleType,
		BitDepth:   sres.outputBitDepth,
		Colorspace: outCS,
	}
	if ctx.outputMaxColorCode > 0 {
		out.MaxColorCode = ctx.outputMaxColorCode
	}
	numOutCh := out.Type.NumChannels()
	out.BytesPerRow = rowByteSize(out.Width, numOutCh, out.BitDepth, out.SampleType)
	out.Pix = make([]byte, out.BytesPerRow*out.Height)

	outMaxCode := float64(out.maxCode())

	// ---- Alpha channel: Pass V then Pass H, fully resized, first. ----
	var resizedAlpha *channelPlane
	outHasAlpha := out.Type.HasAlpha()
	srcHasAlpha := ctx.input.Type.HasAlpha()
	needsAlphaPlane := outHasAlpha || (sres.bkgdStrategy == BkgdLate && (srcHasAlpha || virtualAlphaEdge))

	_, srcAlphaIdx := rgbaAlphaIndexFor(ctx.input.Type)
	if virtualAlphaEdge && srcAlphaIdx < 0 {
		srcAlphaIdx = -2 // sentinel: synthesized virtual alpha, value 1.0 everywhere in range
	}

	if needsAlphaPlane && (srcAlphaIdx >= 0 || srcAlphaIdx == -2) {
		alphaResizeV, alphaResizeH := ctx.resizeV, ctx.resizeH
		if ctx.resizeAlphaOverride != nil {
			alphaResizeV, alphaResizeH = *ctx.resizeAlphaOverride, *ctx.resizeAlphaOverride
		}

		vAlphaIn := make([]float64, p.srcH)
		intermedAlpha := newChannelPlane(srcW, p.outH)
		resV := newResizer(alphaResizeV, p.srcH, p.outH, 0, p.wCache)
		for x := 0; x < srcW; x++ {
			for y := 0; y < p.srcH; y++ {
				if srcAlphaIdx == -2 {
					vAlphaIn[y] = 1.0
				} else {
					vAlphaIn[y] = plane.at(srcAlphaIdx, x, y)
				}
			}
			vOut := make([]float64, p.outH)
			resV.run(vAlphaIn, vOut)
			if ctx.intermediateClamp {
				clampSlice(vOut)
			}
			for y := 0; y < p.outH; y++ {
				intermedAlpha.set(x, y, vOut[y])
			}
		}

		resizedAlpha = newChannelPlane(p.outW, p.outH)
		resH := newResizer(alphaResizeH, srcW, p.outW, 0, p.wCache)
		rowIn := make([]float64, srcW)
		rowOut := make([]float64, p.outW)
		for y := 0; y < p.outH; y++ {
			copy(rowIn, intermedAlpha.data[y*srcW:(y+1)*srcW])
			resH.run(rowIn, rowOut)
			copy(resizedAlpha.data[y*p.outW:(y+1)*p.outW], rowOut)
		}

		if outHasAlpha {
			q := &quantizer{cs: outCS, maxCode: outMaxCode, colorCount: ctx.colorCountAlpha, dither: ctx.ditherAlpha}
			if ctx.ditherAlpha.Family == DitherErrorDiffusion {
				q.errBuf = newDitherErrorBuffers(p.outW)
			}
			if ctx.ditherAlpha.Family == DitherRandom {
				rng := &prngState{}
				rng.seed(deriveProcessSeed(ctx, 1000))
				q.rng = rng
			}

			alphaOut := resizedAlpha
			if sres.bkgdStrategy == BkgdLate && p.bg.Enabled {
				// spec §4.5 step 2: LATE compositing against a background
				// with its own alpha recomputes the output alpha as
				// a + a_bg*(1-a), matching the formula already applied to
				// color components below.
				alphaOut = newChannelPlane(p.outW, p.outH)
				for y := 0; y < p.outH; y++ {
					for x := 0; x < p.outW; x++ {
						a := resizedAlpha.at(x, y)
						_, bgAlpha := p.bg.colorAt(x, y)
						alphaOut.set(x, y, a+bgAlpha*(1-a))
					}
				}
			}
			writeAlphaChannel(out, alphaOut, q)
		}
	}

	// ---- Color / gray channels ----
	if sres.imgTypeOutput.IsGrayscale() {
		p.processOneColorChannel(ctx, plane, out, resizedAlpha, outCS, outMaxCode, true, 0, 0)
	} else {
		rIdx, gIdx, bIdx, _ := rgbaIndices(ctx.input.Type)
		for ch := 0; ch < 3; ch++ {
			var srcIdx int
			switch ch {
			case 0:
				srcIdx = rIdx
			case 1:
				srcIdx = gIdx
			case 2:
				srcIdx = bIdx
			}
			p.processOneColorChannel(ctx, plane, out, resizedAlpha, outCS, outMaxCode, false, ch, srcIdx)
		}
	}

	ctx.output = out
	return out, nil
}

func rgbaAlphaIndexFor(t ImageType) (hasAlpha bool, idx int) {
	switch t {
	case ImgGrayAlpha:
		return true, 1
	case ImgRGBAlpha:
		return true, 3
	}
	return false, -1
}

// processOneColorChannel runs the full Pass V + Pass H for one output
// color (or gray) channel: premultiply/early-compositing in Pass V,
// unassoc-alpha division and late compositing in Pass H, then
// quantization.
func (p *pipeline) processOneColorChannel(ctx *Context, plane *linearPlane, out *Image,
	resizedAlpha *channelPlane, outCS ColorspaceDescriptor, outMaxCode float64,
	isGray bool, channelSlot int, srcIdx int) {

	srcHasAlpha := ctx.input.Type.HasAlpha()
	_, srcAlphaIdx := rgbaAlphaIndexFor(ctx.input.Type)

	rIdx, gIdx, bIdx, _ := rgbaIndices(ctx.input.Type)

	vIn := make([]float64, p.srcH)
	intermed := newChannelPlane(p.srcW, p.outH)

	offsetV := 0.0
	if channelSlot < 3 && !isGray {
		offsetV = ctx.resizeV.ChannelOffset[channelSlot]
	}
	resV := newResizer(ctx.resizeV, p.srcH, p.outH, offsetV, p.wCache)

	for x := 0; x < p.srcW; x++ {
		for y := 0; y < p.srcH; y++ {
			var s float64
			if isGray {
				var r, g, b float64
				if rIdx >= 0 {
					r, g, b = plane.at(rIdx, x, y), plane.at(gIdx, x, y), plane.at(bIdx, x, y)
				} else {
					r = plane.at(0, x, y)
					g, b = r, r
				}
				s = combineGray(p.grayFmt, r, g, b)
			} else {
				s = plane.at(srcIdx, x, y)
			}

			if srcHasAlpha {
				alpha := plane.at(srcAlphaIdx, x, y)
				if p.strategy.bkgdStrategy == BkgdEarly {
					bgc, _ := p.bg.colorAt(x, y)
					bgComp := bgComponent(channelSlot, isGray, bgc)
					s = alpha*s + (1-alpha)*bgComp
				} else {
					s = alpha * s
				}
			}

			vIn[y] = s
		}
		vOut := make([]float64, p.outH)
		resV.run(vIn, vOut)
		if ctx.intermediateClamp {
			clampSlice(vOut)
		}
		for y := 0; y < p.outH; y++ {
			intermed.set(x, y, vOut[y])
		}
	}

	offsetH := 0.0
	if channelSlot < 3 && !isGray {
		offsetH = ctx.resizeH.ChannelOffset[channelSlot]
	}
	resH := newResizer(ctx.resizeH, p.srcW, p.outW, offsetH, p.wCache)

	ditherSettings, colorCount := ctx.ditherColor, ctx.colorCountColor

	q := &quantizer{cs: outCS, maxCode: outMaxCode, colorCount: colorCount, dither: ditherSettings}
	if ditherSettings.Family == DitherErrorDiffusion {
		q.errBuf = newDitherErrorBuffers(p.outW)
	}
	if ditherSettings.Family == DitherRandom {
		// SamePattern seeds every channel in the color group identically,
		// rather than each R/G/B channel getting its own independent
		// noise pattern (spec §4.7).
		salt := channelSlot + 1
		if ditherSettings.SamePattern {
			salt = 1
		}
		rng := &prngState{}
		rng.seed(deriveProcessSeed(ctx, salt))
		q.rng = rng
	}
	if !ctx.optDisableOutputTable && ditherSettings.Family == DitherNone && colorCount == 0 && out.MaxColorCode == 0 {
		q.ncTable = buildNearestColorTable(ctx, outCS, ctx.input.BitDepth, out.BitDepth, p.outW, p.outH, out.SampleType)
	}

	needsUnassoc := srcHasAlpha && p.strategy.bkgdStrategy != BkgdEarly && resizedAlpha != nil

	rowIn := make([]float64, p.srcW)
	rowOut := make([]float64, p.outW)

	for y := 0; y < p.outH; y++ {
		copy(rowIn, intermed.data[y*p.srcW:(y+1)*p.srcW])
		resH.run(rowIn, rowOut)

		fwd := 1
		xs := make([]int, p.outW)
		if ditherSettings.Family == DitherErrorDiffusion && y%2 == 1 {
			fwd = -1
			for i := range xs {
				xs[i] = p.outW - 1 - i
			}
		} else {
			for i := range xs {
				xs[i] = i
			}
		}

		for _, x := range xs {
			s := rowOut[x]
			var alpha float64 = 1
			if resizedAlpha != nil {
				alpha = resizedAlpha.at(x, y)
			}

			if needsUnassoc && resizedAlpha != nil {
				if alpha == 0 {
					s = 0
				} else {
					s = s / alpha
				}
			}

			if p.strategy.bkgdStrategy == BkgdLate {
				bgc, bgAlpha := p.bg.colorAt(x, y)
				bgComp := bgComponent(channelSlot, isGray, bgc)
				if bgAlpha >= 1.0 {
					s = s*alpha + bgComp*(1-alpha)
				} else {
					s = s*alpha + bgComp*bgAlpha*(1-alpha)
				}
			}

			if out.SampleType == SampleFloat32 {
				writeFloatSample(out, x, y, channelSlot, q.quantizeFloat(s))
			} else {
				code := q.quantize(s, x, y, p.outW, fwd)
				writeUintSample(out, x, y, channelSlot, code)
			}
		}

		if ditherSettings.Family == DitherErrorDiffusion {
			q.errBuf.shiftRows()
		}
	}
}

// bgComponent picks the background triple's component matching this
// output channel slot (0=R,1=G,2=B, or the triple's luma-combined value
// for grayscale output).
func bgComponent(channelSlot int, isGray bool, c ColorTriple) float64 {
	if isGray {
		return combineGray(GrayLumaSRGB, c.R, c.G, c.B)
	}
	switch channelSlot {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

func clampSlice(s []float64) {
	for i, v := range s {
		if v < 0 {
			s[i] = 0
		} else if v > 1 {
			s[i] = 1
		}
	}
}

