// ◄◄◄ convert_in.go ►►►
// Copyright © 2012 Jason Summers

package imageworsener

import "runtime"

// linearPlane holds one input image, fully linearized: Channels[c] is a
// row-major W*H slice of linear-light samples for raw channel c (in
// input-buffer order: R,G,B,A or G,A), already passed through the
// orientation transform so index (y*W+x) is the logical pixel.
type linearPlane struct {
	w, h     int
	channels [][]float64
}

func (p *linearPlane) at(c, x, y int) float64 {
	return p.channels[c][y*p.w+x]
}

// linearizeInputWorkContext is the data shared read-only across workers,
// grounded on fpconvert1.go's srcToFPWorkContext / worker-pool pattern.
type linearizeInputWorkContext struct {
	img    *Image
	orient Orientation
	lut    *inputLinearTable
	plane  *linearPlane
	numCh  int
}

type linearizeInputWorkItem struct {
	logicalY int
	stopNow  bool
}

func (wc *linearizeInputWorkContext) convertRow(y int) {
	img := wc.img
	w, h := wc.plane.w, wc.plane.h
	bitDepth := img.BitDepth
	maxCode := float64(img.maxCode())
	cs := img.Colorspace

	for x := 0; x < w; x++ {
		px, py := wc.orient.apply(x, y, w, h)
		rowStart := py * img.BytesPerRow

		for c := 0; c < wc.numCh; c++ {
			var lin float64
			if img.SampleType == SampleFloat32 {
				off := rowStart + (px*wc.numCh+c)*4
				lin = float64(getFloat32Host(img.Pix[off:off+4], false))
			} else {
				code := getSampleAtDepth(img.Pix[rowStart:], px*wc.numCh+c, bitDepth)
				if wc.lut != nil {
					lin = wc.lut.lookup(code)
				} else {
					lin = cs.toLinear(float64(code) / maxCode)
				}
			}
			wc.plane.channels[c][y*w+x] = lin
		}
	}
}

func (wc *linearizeInputWorkContext) worker(queue chan linearizeInputWorkItem) {
	for {
		wi := <-queue
		if wi.stopNow {
			return
		}
		wc.convertRow(wi.logicalY)
	}
}

// linearizeInput converts every sample of img to linear light, producing
// one plane per raw channel. w,h are the logical (post-orientation)
// dimensions. numWorkers mirrors fpresize's goroutine-per-core pool.
func linearizeInput(ctx *Context, img *Image, orient Orientation, w, h int) *linearPlane {
	numCh := img.Type.NumChannels()

	plane := &linearPlane{w: w, h: h, channels: make([][]float64, numCh)}
	for c := 0; c < numCh; c++ {
		plane.channels[c] = make([]float64, w*h)
	}

	var lut *inputLinearTable
	if !ctx.optDisableInputTable && img.MaxColorCode == 0 {
		lut = buildInputLinearTable(img.Colorspace, img.BitDepth, w, h)
	}

	wc := &linearizeInputWorkContext{img: img, orient: orient, lut: lut, plane: plane, numCh: numCh}

	numWorkers := runtime.NumCPU()
	if numWorkers < 1 {
		numWorkers = 1
	}
	if numWorkers > h {
		numWorkers = h
		if numWorkers < 1 {
			numWorkers = 1
		}
	}

	queue := make(chan linearizeInputWorkItem)
	for i := 0; i < numWorkers; i++ {
		go wc.worker(queue)
	}
	for y := 0; y < h; y++ {
		queue <- linearizeInputWorkItem{logicalY: y}
	}

	// When all workers have received a stop order, we know all the work
	// is done: the channel is unbuffered and each worker only loops back
	// to receive once it has finished its current row.
	stop := linearizeInputWorkItem{stopNow: true}
	for i := 0; i < numWorkers; i++ {
		queue <- stop
	}

	return plane
}
