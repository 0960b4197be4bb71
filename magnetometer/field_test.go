package magnetometer

import (
	"math"
	"testing"

	"github.com/HRadak/GDOrientationPerformanceAnalysis/orientation"
)

const Small = 1e-8

func TestDefaultReference(t *testing.T) {
	r := Reference(DefaultInclination, DefaultDeclination)
	want := orientation.Vector{X: 0.391801903, Z: 0.920049601}
	if d := NormDiff(r, want); d > Small {
		t.Errorf("reference %v differs from %v by %g", r, want, d)
	}
}

func TestReferenceRoundTrip(t *testing.T) {
	incs := []float64{0, 30, 66.9, 89, -45, -70}
	decs := []float64{0, 10, -15, 120, -170, 5}

	for i := range incs {
		r := Reference(incs[i], decs[i])
		if math.Abs(r.Norm()-1) > Small {
			t.Errorf("%d: norm %f", i, r.Norm())
		}
		if math.Abs(Inclination(r)-incs[i]) > 1e-6 || math.Abs(Declination(r)-decs[i]) > 1e-6 {
			t.Errorf("%d: got inclination %f declination %f, want %f %f",
				i, Inclination(r), Declination(r), incs[i], decs[i])
		}
	}
}
