// ◄◄◄ strategy.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

// strategyInput collects the inputs the strategy selector needs (spec
// §4.6).
type strategyInput struct {
	imgTypeIn       ImageType
	toGrayscale     bool
	hasBackground   bool
	bgHasTransparency bool
	checkerboard    bool
	channelOffsetActive bool
	virtualAlphaEdge bool // any dimension's edge policy is TRANSPARENT
	outputSupportsAlpha bool
	outputSupports16Bit bool
	outputIsHDRI        bool
	wantDepth           int // caller-requested output depth, 0 = unspecified
	wantMaxColorCode    int // caller-requested max color code, 0 = unspecified
}

// strategyResult is the strategy selector's decision (spec §4.6 Output).
type strategyResult struct {
	imgTypeIntermediate ImageType
	imgTypeOutput       ImageType
	bkgdStrategy        BackgroundStrategy
	bkgdReplacesAlpha   bool
	outputBitDepth      int
	outputSampleType    SampleType
}

// selectStrategy implements spec §4.6's decision rules in order,
// emitting warnings through ctx for every caller request it can't honor.
func selectStrategy(ctx *Context, in strategyInput) strategyResult {
	imgType := in.imgTypeIn

	// Virtual-alpha edge policy promotes GRAY->GRAY+ALPHA, RGB->RGB+ALPHA.
	if in.virtualAlphaEdge {
		switch imgType {
		case ImgGray:
			imgType = ImgGrayAlpha
		case ImgRGB:
			imgType = ImgRGBAlpha
		}
	}

	hasAlpha := imgType.HasAlpha()

	var intermediate ImageType
	if in.toGrayscale {
		if hasAlpha {
			intermediate = ImgGrayAlpha
		} else {
			intermediate = ImgGray
		}
	} else {
		intermediate = imgType
	}

	bkgdStrategy := BkgdNone
	bkgdReplacesAlpha := false

	if in.hasBackground {
		if in.channelOffsetActive {
			// EARLY is forced when a channel offset is active: offsets
			// don't compose with late compositing.
			bkgdStrategy = BkgdEarly
		} else {
			bkgdStrategy = BkgdLate
		}

		if !in.outputSupportsAlpha {
			ctx.warnf("output format has no transparency support; background color applied")
			if !in.bgHasTransparency {
				bkgdReplacesAlpha = true
			}
		}
	}

	if bkgdStrategy == BkgdEarly {
		// Drop the alpha channel from the intermediate image; each color
		// intermediate channel carries its own pre-composited background.
		switch intermediate {
		case ImgGrayAlpha:
			intermediate = ImgGray
		case ImgRGBAlpha:
			intermediate = ImgRGB
		}
	}

	outputType := intermediate
	if bkgdReplacesAlpha {
		switch outputType {
		case ImgGrayAlpha:
			outputType = ImgGray
		case ImgRGBAlpha:
			outputType = ImgRGB
		}
	}

	if in.channelOffsetActive && in.toGrayscale {
		ctx.warnf("channel offset disabled for grayscale output")
	}
	if in.checkerboard && in.channelOffsetActive {
		ctx.warnf("checkerboard background disabled while a channel offset is active")
	}

	outDepth := 8
	sampleType := SampleUint
	if in.outputIsHDRI {
		sampleType = SampleFloat32
		outDepth = 32
	} else if in.wantDepth > 8 && in.outputSupports16Bit {
		outDepth = 16
	} else if in.wantDepth > 8 && !in.outputSupports16Bit {
		ctx.warnf("reduced output depth to 8 bits: output format has no 16-bit support")
	} else if in.wantDepth == 0 && in.wantMaxColorCode > 0 {
		outDepth = maxColorToBitDepth(in.wantMaxColorCode)
		if outDepth > 8 && !in.outputSupports16Bit {
			outDepth = 8
			ctx.warnf("reduced output depth to 8 bits: output format has no 16-bit support")
		}
	}

	return strategyResult{
		imgTypeIntermediate: intermediate,
		imgTypeOutput:       outputType,
		bkgdStrategy:        bkgdStrategy,
		bkgdReplacesAlpha:   bkgdReplacesAlpha,
		outputBitDepth:      outDepth,
		outputSampleType:    sampleType,
	}
}
