// ◄◄◄ context_test.go ►►►

package imageworsener

import "testing"

func TestContextIsSingleUse(t *testing.T) {
	in := makeGrayImage([]uint8{0, 255}, 2, 1)

	ctx := NewContext()
	ctx.SetInputImage(in)
	ctx.SetOutputCanvasSize(1, 1)
	ctx.SetResizeSetting(DimBoth, ResizeSettings{Family: FilterBox, Blur: 1.0})

	if _, err := ctx.Process(); err != nil {
		t.Fatalf("first Process: %v", err)
	}
	if _, err := ctx.Process(); err == nil {
		t.Fatalf("second Process on the same Context should fail, got nil error")
	}
}

func TestAllocGateRejectsOverCap(t *testing.T) {
	ctx := NewContext()
	ctx.SetMaxMalloc(1000)

	if _, ok := ctx.allocGate(10, 10); !ok {
		t.Errorf("allocGate(10,10) with cap 1000 should be accepted")
	}
	if _, ok := ctx.allocGate(1001, 1); ok {
		t.Errorf("allocGate(1001,1) with cap 1000 should be rejected")
	}
}

func TestAllocGateRejectsOverflow(t *testing.T) {
	ctx := NewContext()
	ctx.SetMaxMalloc(1 << 62)

	if _, ok := ctx.allocGate(1<<40, 1<<40); ok {
		t.Errorf("allocGate should detect n1*n2 overflow and reject, not wrap around")
	}
}

func TestAllocGateRejectsNegative(t *testing.T) {
	ctx := NewContext()
	if _, ok := ctx.allocGate(-1, 10); ok {
		t.Errorf("allocGate should reject negative inputs")
	}
}

func TestProcessRejectsNonPositiveOutputSize(t *testing.T) {
	in := makeGrayImage([]uint8{0, 255}, 2, 1)

	ctx := NewContext()
	ctx.SetInputImage(in)
	ctx.SetOutputCanvasSize(0, 1)

	if _, err := ctx.Process(); err == nil {
		t.Fatalf("Process with a zero output dimension should return an error")
	}
}
