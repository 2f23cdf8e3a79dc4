package water

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/koipond/pkg/math"
)

func TestFieldStartsFlat(t *testing.T) {
	f := NewField(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if h := f.HeightAt(x, y); h != 0 {
				t.Fatalf("fresh field height at (%d,%d) = %v, want 0", x, y, h)
			}
		}
	}
	if e := f.Energy(); e != 0 {
		t.Errorf("fresh field energy = %v, want 0", e)
	}
}

func TestEmptyFieldIsNoOp(t *testing.T) {
	f := NewField(0, 0)
	f.Step(0.995)
	f.Deposit(1, 1, 2, 1)
	if h := f.HeightAt(3, 3); h != 0 {
		t.Errorf("empty field height = %v, want 0", h)
	}
	if e := f.Energy(); e != 0 {
		t.Errorf("empty field energy = %v, want 0", e)
	}
}

func TestImpulsePropagatesToNeighbors(t *testing.T) {
	f := NewField(4, 4)

	// Radius 1 deposits the full strength at the center cell only.
	f.Deposit(2, 2, 1, 1)
	if h := f.HeightAt(2, 2); math32.Abs(h-1) > 1e-5 {
		t.Fatalf("impulse height = %v, want 1", h)
	}
	// The cosine falloff reaches zero exactly at the radius; float32
	// cos(pi/2) leaves a residue on the axis neighbors, nothing more.
	residue := math32.Abs(math32.Cos(math32.Pi / 2))
	if h := f.HeightAt(1, 2); math32.Abs(h) > residue+1e-7 {
		t.Fatalf("neighbor disturbed before stepping: %v", h)
	}

	f.Step(0.995)

	for _, n := range [][2]int{{1, 2}, {3, 2}, {2, 1}, {2, 3}} {
		if h := f.HeightAt(n[0], n[1]); math32.Abs(h) < 1e-3 {
			t.Errorf("neighbor (%d,%d) still neutral after one step", n[0], n[1])
		}
	}
	for _, c := range [][2]int{{0, 0}, {3, 0}, {0, 3}, {3, 3}} {
		if h := f.HeightAt(c[0], c[1]); math32.Abs(h) > 1e-4 {
			t.Errorf("corner (%d,%d) = %v, want neutral after one step", c[0], c[1], h)
		}
	}
}

func TestEnergyStaysBounded(t *testing.T) {
	for _, damping := range []float32{0.5, 0.9, 0.995} {
		f := NewField(16, 16)
		f.Deposit(8, 8, 1, 1)
		initial := f.Energy()

		bound := initial * 4
		for i := 0; i < 500; i++ {
			f.Step(damping)
			if e := f.Energy(); e > bound {
				t.Fatalf("damping %v: energy %v exceeded bound %v at step %d", damping, e, bound, i)
			}
		}
	}
}

func TestEnergyDecays(t *testing.T) {
	f := NewField(16, 16)
	f.Deposit(8, 8, 1, 1)

	// Sample energy every 50 steps; with damping well below 1 each
	// checkpoint must sit strictly below the previous one.
	const damping = 0.95
	prev := f.Energy()
	for checkpoint := 0; checkpoint < 4; checkpoint++ {
		for i := 0; i < 50; i++ {
			f.Step(damping)
		}
		e := f.Energy()
		if e >= prev {
			t.Fatalf("energy did not decay: %v -> %v at checkpoint %d", prev, e, checkpoint)
		}
		prev = e
	}

	// At 200 steps the residual is still ~3e-5; by 400 it has settled
	// onto the float32 noise floor.
	for i := 0; i < 200; i++ {
		f.Step(damping)
	}
	if e := f.Energy(); e > 1e-6 {
		t.Errorf("energy after 400 steps = %v, want near zero", e)
	}
}

func TestFlatFieldNormalIsUp(t *testing.T) {
	f := NewField(8, 8)

	want := math.Vec3{Y: 1}
	for _, c := range [][2]int{{0, 0}, {4, 4}, {7, 7}, {3, 0}} {
		if got := f.NormalAt(c[0], c[1]); got != want {
			t.Errorf("flat normal at (%d,%d) = %v, want %v", c[0], c[1], got, want)
		}
	}
}

func TestFlatFieldHasNoDisplacement(t *testing.T) {
	f := NewField(8, 8)
	n := f.NormalAt(4, 4)

	if d := Displacement(n, 0.1, 4, 1280, 720); d != (math.Vec2{}) {
		t.Errorf("flat displacement = %v, want zero", d)
	}
	if s := Shade(n); s != 0 {
		t.Errorf("flat shading term = %v, want 0", s)
	}
}

func TestDisturbedFieldTiltsNormal(t *testing.T) {
	f := NewField(8, 8)
	f.Deposit(4, 4, 2, 2)

	n := f.NormalAt(3, 4)
	if n == (math.Vec3{Y: 1}) {
		t.Error("normal next to a bump should tilt away from straight up")
	}

	d := Displacement(n, 0.1, 4, 1280, 720)
	if d == (math.Vec2{}) {
		t.Error("tilted normal should displace the background sample")
	}
}

func TestShadePiecewiseAdjustment(t *testing.T) {
	// dot(normalize(1,0,1), (0,0,1)) is 1/sqrt(2), above the highlight
	// threshold, so it gets the 1.5x boost.
	raw := float32(1) / math32.Sqrt(2)

	if got, want := Shade(math.Vec3{Z: 1}), raw*1.5; math32.Abs(got-want) > 1e-5 {
		t.Errorf("highlight Shade = %v, want %v", got, want)
	}
	if got, want := Shade(math.Vec3{Z: -1}), -raw*0.5; math32.Abs(got-want) > 1e-5 {
		t.Errorf("negative Shade = %v, want %v", got, want)
	}

	// A mild positive term below 0.5 passes through unchanged.
	mild := math.Vec3{X: 0.1, Y: 1, Z: 0.1}.Normalize()
	raw = math.Vec3{X: 1, Z: 1}.Normalize().Dot(mild)
	if raw <= 0 || raw > 0.5 {
		t.Fatalf("test normal out of intended band: %v", raw)
	}
	if got := Shade(mild); math32.Abs(got-raw) > 1e-5 {
		t.Errorf("mild Shade = %v, want untouched %v", got, raw)
	}
}

func TestCompositeTransparentBackgroundIsWhite(t *testing.T) {
	got := Composite([4]float32{0.2, 0.3, 0.4, 0}, 0)
	for c := 0; c < 3; c++ {
		want := DullFilter[c] * DepthFilter[c]
		if math32.Abs(got[c]-want) > 1e-5 {
			t.Errorf("channel %d = %v, want filtered white %v", c, got[c], want)
		}
	}
}

func TestCompositeFlatSurfacePassesBackground(t *testing.T) {
	ground := [4]float32{0.25, 0.5, 0.75, 1}
	got := Composite(ground, 0)
	for c := 0; c < 3; c++ {
		want := DullFilter[c] * DepthFilter[c] * ground[c]
		if math32.Abs(got[c]-want) > 1e-5 {
			t.Errorf("channel %d = %v, want %v", c, got[c], want)
		}
	}
}

func TestCompositeFullShineIsSky(t *testing.T) {
	got := Composite([4]float32{0.25, 0.5, 0.75, 1}, 1)
	for c := 0; c < 3; c++ {
		if math32.Abs(got[c]-SkyColor[c]) > 1e-5 {
			t.Errorf("channel %d = %v, want sky %v", c, got[c], SkyColor[c])
		}
	}
}

func TestDepositProfile(t *testing.T) {
	f := NewField(9, 9)
	f.Deposit(4, 4, 3, 1.2)

	if h := f.HeightAt(4, 4); math32.Abs(h-1.2) > 1e-5 {
		t.Errorf("center height = %v, want 1.2", h)
	}

	// Cosine falloff: strictly decreasing along the axis, zero at radius.
	h0 := f.HeightAt(4, 4)
	h1 := f.HeightAt(5, 4)
	h2 := f.HeightAt(6, 4)
	h3 := f.HeightAt(7, 4)
	if !(h0 > h1 && h1 > h2 && h2 > h3) {
		t.Errorf("falloff not monotonic: %v %v %v %v", h0, h1, h2, h3)
	}
	if math32.Abs(h3) > 1e-5 {
		t.Errorf("height at radius = %v, want 0", h3)
	}
	if h := f.HeightAt(8, 4); h != 0 {
		t.Errorf("height outside radius = %v, want 0", h)
	}
}

func TestDepositClampsToRange(t *testing.T) {
	f := NewField(5, 5)
	f.Deposit(2, 2, 1, 10)
	if h := f.HeightAt(2, 2); h != HeightRange {
		t.Errorf("overdriven height = %v, want clamp at %v", h, float32(HeightRange))
	}
}
