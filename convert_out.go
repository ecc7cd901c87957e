// ◄◄◄ convert_out.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

// rowByteSize computes the packed bytes-per-row for an output raster,
// honoring sub-byte UINT bit depths (1/2/4) the way the original's
// buffer layout does.
func rowByteSize(width, numCh, bitDepth int, st SampleType) int {
	if st == SampleFloat32 {
		return width * numCh * 4
	}
	bits := width * numCh * bitDepth
	return (bits + 7) / 8
}

// writeUintSample packs one quantized output code into img's buffer,
// at the depth-appropriate bit position.
func writeUintSample(img *Image, x, y, channel, value int) {
	numCh := img.Type.NumChannels()
	rowStart := y * img.BytesPerRow
	setSampleAtDepth(img.Pix[rowStart:], x*numCh+channel, img.BitDepth, value)
}

// writeFloatSample writes one FLOAT32 output sample, host-endian per the
// documented buffer invariant for that sample type (spec §3; note this
// differs from writeUintSample's multi-byte path, which is big-endian).
func writeFloatSample(img *Image, x, y, channel int, value float32) {
	numCh := img.Type.NumChannels()
	off := y*img.BytesPerRow + (x*numCh+channel)*4
	setFloat32Host(img.Pix[off:off+4], value, false)
}

// writeAlphaChannel quantizes and writes a fully-resized alpha plane
// into img's alpha channel slot, grounded on fpconvert2.go's row-major
// output-writing pattern (generalized here to the core's output
// quantizer/ditherer instead of a simple LUT).
func writeAlphaChannel(img *Image, alpha *channelPlane, q *quantizer) {
	_, alphaSlot := rgbaAlphaIndexFor(img.Type)
	if alphaSlot < 0 {
		return
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			s := alpha.at(x, y)
			if img.SampleType == SampleFloat32 {
				writeFloatSample(img, x, y, alphaSlot, q.quantizeFloat(s))
			} else {
				code := q.quantize(s, x, y, img.Width, 1)
				writeUintSample(img, x, y, alphaSlot, code)
			}
		}
		if q.errBuf != nil {
			q.errBuf.shiftRows()
		}
	}
}
