package geometry

import (
	"math"
	"math/rand"
	"testing"
)

func TestAngleDeg_RightAngle(t *testing.T) {
	// Rays along +X and +Y from the origin form a 90 degree angle.
	angle := AngleDeg(Point{X: 1, Y: 0}, Point{}, Point{X: 0, Y: 1})
	if math.Abs(angle-90) > 1e-9 {
		t.Errorf("expected 90 degrees, got %f", angle)
	}
}

func TestAngleDeg_StraightLine(t *testing.T) {
	angle := AngleDeg(Point{X: -1, Y: 0}, Point{}, Point{X: 1, Y: 0})
	if math.Abs(angle-180) > 1e-9 {
		t.Errorf("expected 180 degrees, got %f", angle)
	}
}

func TestAngleDeg_ReflexReflected(t *testing.T) {
	// A reflex configuration must be reflected back below 180.
	angle := AngleDeg(Point{X: 1, Y: 0}, Point{}, Point{X: 1, Y: -1})
	if angle < 0 || angle > 180 {
		t.Errorf("angle %f out of [0, 180]", angle)
	}
	if math.Abs(angle-45) > 1e-9 {
		t.Errorf("expected 45 degrees, got %f", angle)
	}
}

func TestAngleDeg_SymmetricAndBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 10000; i++ {
		first := Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}
		mid := Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}
		last := Point{X: rng.Float64()*200 - 100, Y: rng.Float64()*200 - 100}

		a := AngleDeg(first, mid, last)
		b := AngleDeg(last, mid, first)

		if a < 0 || a > 180 {
			t.Fatalf("angle %f out of [0, 180] for %v %v %v", a, first, mid, last)
		}
		if math.Abs(a-b) > 1e-9 {
			t.Fatalf("angle not symmetric: %f vs %f", a, b)
		}
	}
}

func TestAngleDeg_CoincidentPoints(t *testing.T) {
	// Degenerate input must still return a finite value.
	angle := AngleDeg(Point{X: 1, Y: 1}, Point{X: 1, Y: 1}, Point{X: 1, Y: 1})
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		t.Errorf("expected finite angle for coincident points, got %f", angle)
	}
	if angle < 0 || angle > 180 {
		t.Errorf("angle %f out of [0, 180]", angle)
	}
}

func TestDistance(t *testing.T) {
	d := Distance(Point{X: 0, Y: 0}, Point{X: 3, Y: 4})
	if math.Abs(d-5) > 1e-9 {
		t.Errorf("expected distance 5, got %f", d)
	}

	if Distance(Point{X: 2, Y: 2}, Point{X: 2, Y: 2}) != 0 {
		t.Error("expected distance 0 for identical points")
	}
}

func TestMidpoint(t *testing.T) {
	m := Midpoint(Point{X: 0, Y: 0}, Point{X: 4, Y: 2})
	if m.X != 2 || m.Y != 1 {
		t.Errorf("expected (2, 1), got (%f, %f)", m.X, m.Y)
	}
}
