// ◄◄◄ doc.go ►►►
// Copyright © 2012 Jason Summers

/*
Package imageworsener performs high-quality, colorspace-aware resizing and
format-targeted requantization of raster images.

A Context tracks the state of one resize operation, in roughly the same
way fpresize.FPObject does, but generalized to the full ImageWorsener
pipeline: arbitrary input/output colorspaces (sRGB, Rec.709, gamma, linear),
an explicit background-compositing strategy for alpha, and an output
quantizer with several dithering families instead of just "round to the
nearest uint8".

Typical use:

    ctx := imageworsener.NewContext()
    ctx.SetInputImage(img)
    ctx.SetInputColorspace(imageworsener.CSDescrSRGB())
    ctx.SetOutputCanvasSize(200, 100)
    ctx.SetResizeSetting(imageworsener.DimBoth, imageworsener.ResizeSettings{
        Family: imageworsener.FilterLanczos,
        Param1: 2, // lobes
        Blur:   1.0,
    })
    out, err := ctx.Process()

A Context is single-use: call Process once per Context. Create a new
Context (SetInputImage again) to resize another image.
*/
package imageworsener
