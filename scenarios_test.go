// ◄◄◄ scenarios_test.go ►►►

package imageworsener

import "testing"

func makeGrayImage(pixels []uint8, w, h int) *Image {
	return &Image{
		Width: w, Height: h,
		Type:        ImgGray,
		SampleType:  SampleUint,
		BitDepth:    8,
		BytesPerRow: w,
		Pix:         append([]byte(nil), pixels...),
		Colorspace:  CSDescrLinear(),
	}
}

func readGrayByte(img *Image, x, y int) int {
	return getSampleAtDepth(img.Pix[y*img.BytesPerRow:], x, img.BitDepth)
}

// Scenario 1: box downsample 2->1, 8-bit gray, no gamma.
func TestScenarioBoxDownsampleGray(t *testing.T) {
	in := makeGrayImage([]uint8{0, 128, 128, 255}, 4, 1)

	ctx := NewContext()
	ctx.SetInputImage(in)
	ctx.SetInputColorspace(CSDescrLinear())
	ctx.SetOutputColorspace(CSDescrLinear())
	ctx.SetOutputCanvasSize(2, 1)
	ctx.SetResizeSetting(DimBoth, ResizeSettings{Family: FilterBox, Blur: 1.0})

	out, err := ctx.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []int{64, 192}
	for x, w := range want {
		got := readGrayByte(out, x, 0)
		if diff := got - w; diff > 1 || diff < -1 {
			t.Errorf("box downsample pixel %d: got %d, want %d (±1)", x, got, w)
		}
	}
}

// Scenario 2: nearest upsample 2->4, 8-bit gray.
func TestScenarioNearestUpsampleGray(t *testing.T) {
	in := makeGrayImage([]uint8{10, 200}, 2, 1)

	ctx := NewContext()
	ctx.SetInputImage(in)
	ctx.SetInputColorspace(CSDescrLinear())
	ctx.SetOutputColorspace(CSDescrLinear())
	ctx.SetOutputCanvasSize(4, 1)
	ctx.SetResizeSetting(DimBoth, ResizeSettings{Family: FilterNearest, Blur: 1.0})

	out, err := ctx.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []int{10, 10, 200, 200}
	for x, w := range want {
		got := readGrayByte(out, x, 0)
		if got != w {
			t.Errorf("nearest upsample pixel %d: got %d, want %d", x, got, w)
		}
	}
}

// Scenario 3: triangle downsample 3->2 with edge policy REPLICATE.
func TestScenarioTriangleReplicateDownsample(t *testing.T) {
	in := makeGrayImage([]uint8{0, 128, 255}, 3, 1)

	ctx := NewContext()
	ctx.SetInputImage(in)
	ctx.SetInputColorspace(CSDescrLinear())
	ctx.SetOutputColorspace(CSDescrLinear())
	ctx.SetOutputCanvasSize(2, 1)
	ctx.SetResizeSetting(DimBoth, ResizeSettings{Family: FilterTriangle, Blur: 1.0, Edge: EdgeReplicate})

	out, err := ctx.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	want := []int{32, 223}
	for x, w := range want {
		got := readGrayByte(out, x, 0)
		if diff := got - w; diff > 1 || diff < -1 {
			t.Errorf("triangle+replicate pixel %d: got %d, want %d (±1)", x, got, w)
		}
	}
}

// Scenario 4: sRGB-aware 2x2->1x1 average of a red/black checkerboard.
func TestScenarioSRGBAwareCheckerboardAverage(t *testing.T) {
	pix := []byte{
		255, 0, 0, 255, 0, 0, 0, 255,
		0, 0, 0, 255, 255, 0, 0, 255,
	}
	in := &Image{
		Width: 2, Height: 2,
		Type:        ImgRGBAlpha,
		SampleType:  SampleUint,
		BitDepth:    8,
		BytesPerRow: 8,
		Pix:         pix,
		Colorspace:  CSDescrSRGB(),
	}

	ctx := NewContext()
	ctx.SetInputImage(in)
	ctx.SetInputColorspace(CSDescrSRGB())
	ctx.SetOutputColorspace(CSDescrSRGB())
	ctx.SetOutputCanvasSize(1, 1)
	ctx.SetResizeSetting(DimBoth, ResizeSettings{Family: FilterBox, Blur: 1.0})

	out, err := ctx.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	numCh := out.Type.NumChannels()
	redCode := getSampleAtDepth(out.Pix, 0*numCh+0, out.BitDepth)
	if redCode < 186 {
		t.Errorf("sRGB-aware average red channel = %d, want >= 186 (naive average would give ~128)", redCode)
	}
}

// Scenario 6: unassociated alpha preservation.
func TestScenarioUnassociatedAlphaPreservation(t *testing.T) {
	pix := []byte{
		255, 255, 255, 0,
		0, 0, 0, 255,
	}
	in := &Image{
		Width: 2, Height: 1,
		Type:        ImgRGBAlpha,
		SampleType:  SampleUint,
		BitDepth:    8,
		BytesPerRow: 8,
		Pix:         pix,
		Colorspace:  CSDescrLinear(),
	}

	ctx := NewContext()
	ctx.SetInputImage(in)
	ctx.SetInputColorspace(CSDescrLinear())
	ctx.SetOutputColorspace(CSDescrLinear())
	ctx.SetOutputCanvasSize(1, 1)
	ctx.SetResizeSetting(DimBoth, ResizeSettings{Family: FilterBox, Blur: 1.0})

	out, err := ctx.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	numCh := out.Type.NumChannels()
	r := getSampleAtDepth(out.Pix, 0, out.BitDepth)
	g := getSampleAtDepth(out.Pix, 1, out.BitDepth)
	b := getSampleAtDepth(out.Pix, 2, out.BitDepth)
	a := getSampleAtDepth(out.Pix, 3, out.BitDepth)
	_ = numCh

	for _, c := range []struct {
		name string
		got  int
	}{{"r", r}, {"g", g}, {"b", b}} {
		if c.got < -1 || c.got > 1 {
			t.Errorf("unassociated alpha: color channel %s = %d, want ~0 (the transparent pixel must contribute no color)", c.name, c.got)
		}
	}
	if diff := a - 128; diff > 1 || diff < -1 {
		t.Errorf("unassociated alpha: alpha = %d, want 128 (±1)", a)
	}
}
