package physics

import "testing"

func TestToNDC(t *testing.T) {
	tr := &Transform{AspectRatio: 16.0 / 9.0, InverseScaleFactor: 10}

	tests := []struct {
		name   string
		p      Point
		wantX  float64
		wantY  float64
		camera Point
	}{
		{name: "origin is bottom-left", p: P(0, 0), wantX: -1, wantY: -1},
		{name: "far corner is top-right", p: P(160.0/9.0, 10), wantX: 1, wantY: 1},
		{name: "centre", p: P(80.0/9.0, 5), wantX: 0, wantY: 0},
		{name: "outside maps off-screen", p: P(-10, 20), wantX: -1 - 2*10/(16.0/9.0*10), wantY: 3},
		{name: "camera shift is added", p: P(0, 0), camera: P(0.25, -0.5), wantX: -0.75, wantY: -1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr.CameraShift = tt.camera
			x, y := tr.ToNDC(tt.p)
			if !approxEqual(x, tt.wantX, tolerance) || !approxEqual(y, tt.wantY, tolerance) {
				t.Errorf("ToNDC(%v) = (%v, %v), want (%v, %v)", tt.p, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestVirtualExtent(t *testing.T) {
	tr := &Transform{AspectRatio: 2, InverseScaleFactor: 10}
	if got := tr.VirtualWidth(); got != 20 {
		t.Errorf("VirtualWidth() = %v, want 20", got)
	}
	if got := tr.VirtualHeight(); got != 10 {
		t.Errorf("VirtualHeight() = %v, want 10", got)
	}
}
