package water

import "testing"

func TestRainDeterministicWithSeed(t *testing.T) {
	a := NewRain(2.5, 3, 0.5, 42)
	b := NewRain(2.5, 3, 0.5, 42)

	for round := 0; round < 10; round++ {
		dropsA := a.Drops(100, 50)
		dropsB := b.Drops(100, 50)

		if len(dropsA) != len(dropsB) {
			t.Fatalf("round %d: drop counts differ: %d vs %d", round, len(dropsA), len(dropsB))
		}
		for i := range dropsA {
			if dropsA[i] != dropsB[i] {
				t.Fatalf("round %d drop %d differs: %+v vs %+v", round, i, dropsA[i], dropsB[i])
			}
		}
	}
}

func TestRainDropCountAndBounds(t *testing.T) {
	r := NewRain(2.5, 3, 0.5, 7)

	for round := 0; round < 50; round++ {
		drops := r.Drops(100, 50)
		if len(drops) != 2 && len(drops) != 3 {
			t.Fatalf("rate 2.5 produced %d drops", len(drops))
		}
		for _, d := range drops {
			if d.X < 0 || d.X >= 100 || d.Y < 0 || d.Y >= 50 {
				t.Fatalf("drop out of bounds: %+v", d)
			}
			if d.Radius != 3 || d.Strength != 0.5 {
				t.Fatalf("drop lost its parameters: %+v", d)
			}
		}
	}
}

func TestRainDisabled(t *testing.T) {
	if drops := NewRain(0, 3, 0.5, 1).Drops(100, 50); drops != nil {
		t.Errorf("zero rate produced drops: %v", drops)
	}
	if drops := NewRain(2, 3, 0.5, 1).Drops(0, 0); drops != nil {
		t.Errorf("degenerate field produced drops: %v", drops)
	}
}

func TestDropOnInertPlaneIsNoOp(t *testing.T) {
	p, err := NewPlane(0, 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Must not touch GL or panic.
	Drop{X: 2, Y: 2, Radius: 3, Strength: 1}.Apply(p)
	Sources{Drop{X: 1, Y: 1, Radius: 1, Strength: 1}, nil}.Apply(p)
}
