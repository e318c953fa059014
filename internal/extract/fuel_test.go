package extract

import (
	"image"
	"image/color"
	"math"
	"testing"
)

// litGauge paints gauge strip s with a lit run of length litLen and makes
// its reference pair differ enough to pass the gate.
func litGauge(img *image.Gray, s gaugeStrip, litLen int) {
	img.SetGray(s.refX, s.refY, color.Gray{Y: 255})
	img.SetGray(s.refX2, s.refY2, color.Gray{Y: 0})
	for i := 0; i < litLen; i++ {
		img.SetGray(s.x+i, s.y, color.Gray{Y: 255})
	}
}

func TestReadStripFullnessMatchesLitRun(t *testing.T) {
	for _, litLen := range []int{1, 60, 120, 239} {
		img := image.NewGray(image.Rect(0, 0, 1920, 1080))
		litGauge(img, gaugeStrips[0], litLen)

		min, max := grayMinMax(img)
		got := readStrip(img, gaugeStrips[0], min, max)

		if got.length != litLen {
			t.Errorf("lit run %d: length %d", litLen, got.length)
		}
		want := float64(litLen) / StripLength * 100
		if math.Abs(got.fullness-want) > 1e-9 {
			t.Errorf("lit run %d: fullness %.4f, want %.4f", litLen, got.fullness, want)
		}
		if got.fullness < 0 || got.fullness > 100 {
			t.Errorf("fullness out of range: %v", got.fullness)
		}
	}
}

func TestReadStripGateBlocksInactiveGauge(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1920, 1080))
	s := gaugeStrips[1]

	// Fully lit strip but identical reference pixels: the gauge is unlit
	// and must read as empty regardless of strip contents.
	for i := 0; i < StripLength; i++ {
		img.SetGray(s.x+i, s.y, color.Gray{Y: 255})
	}
	img.SetGray(s.refX, s.refY, color.Gray{Y: 255})
	img.SetGray(s.refX2, s.refY2, color.Gray{Y: 255})

	min, max := grayMinMax(img)
	got := readStrip(img, s, min, max)
	if got.fullness != 0 || got.length != 0 {
		t.Fatalf("gated gauge read as (%v, %d), want (0, 0)", got.fullness, got.length)
	}
}

func TestReadStripNoLitPixels(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1920, 1080))
	s := gaugeStrips[2]
	img.SetGray(s.refX, s.refY, color.Gray{Y: 255})
	img.SetGray(s.refX2, s.refY2, color.Gray{Y: 0})

	// Strip stays dark except faint noise below the cutoff.
	img.SetGray(s.x+10, s.y, color.Gray{Y: 0})

	min, max := grayMinMax(img)
	got := readStrip(img, s, min, max)
	if got.fullness != 0 || got.length != 0 {
		t.Fatalf("dark strip read as (%v, %d), want (0, 0)", got.fullness, got.length)
	}
}

func TestReadStripReferenceOutOfBounds(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))
	min, max := grayMinMax(img)
	got := readStrip(img, gaugeStrips[0], min, max)
	if got.fullness != 0 || got.length != 0 {
		t.Fatalf("out-of-bounds gauge read as (%v, %d), want (0, 0)", got.fullness, got.length)
	}
}

func TestReadFuelLevelsMapsStripsToVehicles(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1920, 1080))
	litGauge(img, gaugeStrips[0], 120) // booster LOX at 50%
	litGauge(img, gaugeStrips[3], 60)  // ship CH4 at 25%

	sh, ss := ReadFuelLevels(img)

	if math.Abs(sh.LOX.Fullness-50) > 1e-9 {
		t.Errorf("booster LOX fullness %v, want 50", sh.LOX.Fullness)
	}
	if sh.CH4.Fullness != 0 {
		t.Errorf("booster CH4 fullness %v, want 0", sh.CH4.Fullness)
	}
	if math.Abs(ss.CH4.Fullness-25) > 1e-9 {
		t.Errorf("ship CH4 fullness %v, want 25", ss.CH4.Fullness)
	}
	if ss.LOX.Fullness != 0 {
		t.Errorf("ship LOX fullness %v, want 0", ss.LOX.Fullness)
	}
}
