package extract

import (
	"image"
	"image/color"
	"testing"
)

func TestEngineStatusOrderAndBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	img.Set(2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(4, 4, color.RGBA{R: 200, G: 255, B: 255, A: 255}) // one dim channel

	sets := map[string][]image.Point{
		"g": {{2, 2}, {4, 4}, {2, 2}, {-1, 5}, {5, 100}},
	}

	status := EngineStatus(img, sets, 230)
	got, ok := status["g"]
	if !ok {
		t.Fatal("missing group in result")
	}
	want := []bool{true, false, true, false, false}
	if len(got) != len(want) {
		t.Fatalf("got %d booleans, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("coordinate %d: got %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestEngineStatusOutOfBoundsIgnoresThreshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	sets := map[string][]image.Point{"g": {{100, 100}}}

	for _, threshold := range []uint8{0, 128, 255} {
		status := EngineStatus(img, sets, threshold)
		if status["g"][0] {
			t.Fatalf("out-of-bounds coordinate reported lit at threshold %d", threshold)
		}
	}
}

func TestEngineStatusThresholdBoundary(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 230, G: 230, B: 230, A: 255})
	img.Set(1, 0, color.RGBA{R: 229, G: 230, B: 230, A: 255})

	status := EngineStatus(img, map[string][]image.Point{"g": {{0, 0}, {1, 0}}}, 230)
	if !status["g"][0] {
		t.Error("pixel exactly at threshold should be lit")
	}
	if status["g"][1] {
		t.Error("pixel one below threshold on one channel should be unlit")
	}
}

func TestEngineStatusGenericImage(t *testing.T) {
	// Non-raster path goes through Image.At.
	img := image.NewCMYK(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.CMYK{}) // white in CMYK

	status := EngineStatus(img, map[string][]image.Point{"g": {{0, 0}, {1, 0}}}, 230)
	if !status["g"][0] || status["g"][1] {
		t.Fatalf("generic image path: got %v, want [true false]", status["g"])
	}
}

func TestEngineCoordinateSetSizes(t *testing.T) {
	wantSH := map[string]int{"central_stack": 3, "inner_ring": 10, "outer_ring": 20}
	for group, n := range wantSH {
		if got := len(SuperheavyEngines[group]); got != n {
			t.Errorf("superheavy %s: %d coordinates, want %d", group, got, n)
		}
	}
	wantSS := map[string]int{"rearth": 3, "rvac": 3}
	for group, n := range wantSS {
		if got := len(StarshipEngines[group]); got != n {
			t.Errorf("starship %s: %d coordinates, want %d", group, got, n)
		}
	}
}
