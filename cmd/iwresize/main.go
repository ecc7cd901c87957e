// ◄◄◄ main.go ►►►
// Copyright © 2012 Jason Summers

// Command iwresize is the command-line front end for the imageworsener
// core. It reads raw pixel dimensions and a target size, and drives
// Context through the same setter surface a library caller would use.
//
// File decoding/encoding is a collaborator this command does not
// implement (spec §1's codec collaborators are out of core scope); this
// front end expects a headerless raw RGBA8 stream on stdin, matching the
// width/height flags, and writes a raw RGBA8 stream to stdout.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/jsummers/imageworsener"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/pflag"
)

func main() {
	width := pflag.Int("w", 0, "Source image width")
	height := pflag.Int("h", 0, "Source image height")
	outWidth := pflag.Int("ow", 0, "Target width")
	outHeight := pflag.Int("oh", 0, "Target height")

	filterName := pflag.String("filter", "auto", "Resize filter: auto, nearest, null, box, triangle, quadratic, hermite, gaussian, cubic, lanczos, hann, blackman, sinc, mix")
	blurStr := pflag.String("blur", "1", "Blur factor, as a number or rational (e.g. 4/3)")
	cubicBStr := pflag.String("cubic-b", "0", "Cubic filter B parameter, as a number or rational")
	cubicCStr := pflag.String("cubic-c", "1/2", "Cubic filter C parameter, as a number or rational")
	lobes := pflag.Float64("lobes", 3, "Lobes for lanczos/hann/blackman/sinc")

	edgeName := pflag.String("edge", "standard", "Edge policy: standard, replicate, transparent")
	bgHex := pflag.String("bg", "", "Background color as RRGGBB hex, applied before/after resize")

	ditherName := pflag.String("dither", "none", "Dither family: none, ordered, random, errdiff")
	ditherSubtypeName := pflag.String("dither-subtype", "", "Dither subtype (family-specific)")

	csName := pflag.String("colorspace", "srgb", "Input/output colorspace: srgb, rec709, linear, gamma:G")
	outDepth := pflag.Int("depth", 8, "Output bit depth: 8 or 16")
	grayscale := pflag.Bool("gray", false, "Convert to grayscale")

	pflag.Parse()

	if *width <= 0 || *height <= 0 || *outWidth <= 0 || *outHeight <= 0 {
		log.Fatalf("usage: iwresize --w W --h H --ow OW --oh OH [options] <in.rgba >out.rgba")
	}

	cs := parseColorspace(*csName)

	ctx := imageworsener.NewContext()
	ctx.SetProgressCallback(func(msg string) { log.Printf("iwresize: %s", msg) })
	ctx.SetWarningCallback(func(msg string) { log.Printf("iwresize: warning: %s", msg) })

	ctx.SetInputColorspace(cs)
	ctx.SetOutputColorspace(cs)
	ctx.SetOutputCanvasSize(*outWidth, *outHeight)
	ctx.SetOutputDepth(*outDepth)

	rs := imageworsener.ResizeSettings{
		Family: parseFilterFamily(*filterName),
		Blur:   parseRational(*blurStr, 1),
	}
	switch rs.Family {
	case imageworsener.FilterCubic:
		rs.Param1 = parseRational(*cubicBStr, 0)
		rs.Param2 = parseRational(*cubicCStr, 0.5)
	case imageworsener.FilterLanczos, imageworsener.FilterHann, imageworsener.FilterBlackman, imageworsener.FilterSinc:
		rs.Param1 = *lobes
	}
	rs.Edge = parseEdgePolicy(*edgeName)
	ctx.SetResizeSetting(imageworsener.DimBoth, rs)

	if *bgHex != "" {
		c, err := parseHexColor(*bgHex)
		if err != nil {
			log.Fatalf("invalid -bg value: %v", err)
		}
		ctx.SetBackgroundColor(c, 1.0)
	}

	if *grayscale {
		ctx.SetGrayscale(true, imageworsener.GrayLumaSRGB)
	}

	ditherSettings := parseDither(*ditherName, *ditherSubtypeName)
	ctx.SetDitherColor(ditherSettings)
	ctx.SetDitherAlpha(ditherSettings)

	pix, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("reading stdin: %v", err)
	}
	wantLen := *width * *height * 4
	if len(pix) != wantLen {
		log.Fatalf("expected %d bytes of raw RGBA8 (w*h*4), got %d", wantLen, len(pix))
	}

	img := &imageworsener.Image{
		Width: *width, Height: *height,
		Type:        imageworsener.ImgRGBAlpha,
		SampleType:  imageworsener.SampleUint,
		BitDepth:    8,
		BytesPerRow: *width * 4,
		Pix:         pix,
		Colorspace:  cs,
	}
	ctx.SetInputImage(img)

	out, err := ctx.Process()
	if err != nil {
		log.Fatalf("process: %v", err)
	}

	if _, err := os.Stdout.Write(out.Pix); err != nil {
		log.Fatalf("writing stdout: %v", err)
	}
}

func parseFilterFamily(name string) imageworsener.FilterFamily {
	switch strings.ToLower(name) {
	case "nearest":
		return imageworsener.FilterNearest
	case "null":
		return imageworsener.FilterNull
	case "box":
		return imageworsener.FilterBox
	case "triangle":
		return imageworsener.FilterTriangle
	case "quadratic":
		return imageworsener.FilterQuadratic
	case "hermite":
		return imageworsener.FilterHermite
	case "gaussian":
		return imageworsener.FilterGaussian
	case "cubic":
		return imageworsener.FilterCubic
	case "lanczos":
		return imageworsener.FilterLanczos
	case "hann":
		return imageworsener.FilterHann
	case "blackman":
		return imageworsener.FilterBlackman
	case "sinc":
		return imageworsener.FilterSinc
	case "mix":
		return imageworsener.FilterMix
	default:
		return imageworsener.FilterAuto
	}
}

func parseEdgePolicy(name string) imageworsener.EdgePolicy {
	switch strings.ToLower(name) {
	case "replicate":
		return imageworsener.EdgeReplicate
	case "transparent":
		return imageworsener.EdgeTransparent
	default:
		return imageworsener.EdgeStandard
	}
}

func parseColorspace(name string) imageworsener.ColorspaceDescriptor {
	name = strings.ToLower(name)
	switch {
	case name == "rec709":
		return imageworsener.CSDescrRec709()
	case name == "linear":
		return imageworsener.CSDescrLinear()
	case strings.HasPrefix(name, "gamma:"):
		g := parseRational(strings.TrimPrefix(name, "gamma:"), 1)
		return imageworsener.CSDescrGamma(g)
	default:
		return imageworsener.CSDescrSRGB()
	}
}

func parseDither(family, subtype string) imageworsener.DitherSettings {
	d := imageworsener.DitherSettings{}
	switch strings.ToLower(family) {
	case "ordered":
		d.Family = imageworsener.DitherOrdered
		if strings.ToLower(subtype) == "halftone" {
			d.Subtype = imageworsener.OrderedHalftone
		} else {
			d.Subtype = imageworsener.OrderedDispersed
		}
	case "random":
		d.Family = imageworsener.DitherRandom
	case "errdiff":
		d.Family = imageworsener.DitherErrorDiffusion
		d.Subtype = parseErrDiffSubtype(subtype)
	default:
		d.Family = imageworsener.DitherNone
	}
	return d
}

func parseErrDiffSubtype(name string) imageworsener.DitherSubtype {
	switch strings.ToLower(name) {
	case "jjn":
		return imageworsener.ErrDiffJJN
	case "stucki":
		return imageworsener.ErrDiffStucki
	case "burkes":
		return imageworsener.ErrDiffBurkes
	case "sierra3":
		return imageworsener.ErrDiffSierra3
	case "sierra2":
		return imageworsener.ErrDiffSierra2
	case "sierra-lite", "sierralite":
		return imageworsener.ErrDiffSierraLite
	case "atkinson":
		return imageworsener.ErrDiffAtkinson
	default:
		return imageworsener.ErrDiffFloydSteinberg
	}
}

// parseHexColor reads a "#rrggbb" background color, clamps it with
// go-colorful the way any caller-supplied color gets sanitized, then
// converts it into the linear light the core pipeline composites in.
func parseHexColor(s string) (imageworsener.ColorTriple, error) {
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return imageworsener.ColorTriple{}, fmt.Errorf("bad background color %q: %w", s, err)
	}
	c = c.Clamped()

	cs := imageworsener.CSDescrSRGB()
	return imageworsener.ColorTriple{
		R: cs.ToLinear(c.R),
		G: cs.ToLinear(c.G),
		B: cs.ToLinear(c.B),
	}, nil
}

// parseRational restores the original CLI's "4/3"-style rational number
// parsing (imagew-cmd.c's iw_parse_number), since pflag alone only
// parses plain floats. Falls back to def on any parse failure.
func parseRational(s string, def float64) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if idx := strings.IndexByte(s, '/'); idx >= 0 {
		num, err1 := strconv.ParseFloat(s[:idx], 64)
		den, err2 := strconv.ParseFloat(s[idx+1:], 64)
		if err1 != nil || err2 != nil || den == 0 {
			return def
		}
		return num / den
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}
