package extract

import (
	"image"

	"github.com/sanitaravel/starship-analyzer-sub000/internal/domain"
)

// Propellant gauge geometry on the broadcast overlay. Each gauge is a
// one-pixel-tall strip that fills left to right; a pair of reference pixels
// next to the strip distinguishes an unlit gauge from an empty one.
const (
	// StripLength is the gauge strip length in pixels.
	StripLength = 240

	// BrightnessCutoff is the normalized luma above which a strip pixel
	// counts as lit.
	BrightnessCutoff = 0.9

	// RefDiffGate is the minimum normalized difference between the two
	// reference pixels for a gauge to count as active at all. Below it the
	// gauge is unlit and the strip contents are noise.
	RefDiffGate = 0.2
)

// gaugeStrip locates one gauge: the strip origin and its two reference
// pixels. The second reference sits 5px to the side of the first.
type gaugeStrip struct {
	x, y         int
	refX, refY   int
	refX2, refY2 int
}

// The four gauges in fixed order: booster LOX, booster CH4, ship LOX,
// ship CH4.
var gaugeStrips = [4]gaugeStrip{
	{x: 275, y: 1007, refX: 255, refY: 1006, refX2: 260, refY2: 1006},
	{x: 275, y: 1042, refX: 227, refY: 1042, refX2: 222, refY2: 1042},
	{x: 1455, y: 1007, refX: 1435, refY: 1006, refX2: 1440, refY2: 1006},
	{x: 1455, y: 1037, refX: 1407, refY: 1037, refX2: 1402, refY2: 1037},
}

// stripResult is the reading of a single gauge strip.
type stripResult struct {
	fullness float64
	length   int
	refDiff  float64
}

// ReadFuelLevels reads all four propellant gauges off a grayscale frame and
// returns the booster and ship fill levels.
func ReadFuelLevels(gray *image.Gray) (superheavy, starship domain.FuelLevels) {
	min, max := grayMinMax(gray)

	var readings [4]stripResult
	for i, s := range gaugeStrips {
		readings[i] = readStrip(gray, s, min, max)
	}

	superheavy = domain.FuelLevels{
		LOX: domain.TankLevel{Fullness: readings[0].fullness},
		CH4: domain.TankLevel{Fullness: readings[1].fullness},
	}
	starship = domain.FuelLevels{
		LOX: domain.TankLevel{Fullness: readings[2].fullness},
		CH4: domain.TankLevel{Fullness: readings[3].fullness},
	}
	return superheavy, starship
}

// readStrip reads one gauge. globalMin/globalMax normalize the reference
// pixels against the whole frame; the strip itself is normalized locally
// over its own min-max range so the fill edge survives exposure changes.
func readStrip(gray *image.Gray, s gaugeStrip, globalMin, globalMax uint8) stripResult {
	bounds := gray.Bounds()
	if !image.Pt(s.refX, s.refY).In(bounds) || !image.Pt(s.refX2, s.refY2).In(bounds) {
		return stripResult{}
	}

	globalRange := float64(globalMax) - float64(globalMin)
	if globalRange == 0 {
		globalRange = 1
	}
	ref1 := (float64(gray.GrayAt(s.refX, s.refY).Y) - float64(globalMin)) / globalRange
	ref2 := (float64(gray.GrayAt(s.refX2, s.refY2).Y) - float64(globalMin)) / globalRange

	diff := ref1 - ref2
	if diff < 0 {
		diff = -diff
	}
	if diff <= RefDiffGate {
		return stripResult{refDiff: diff}
	}

	strip := stripLuma(gray, s)
	if len(strip) == 0 {
		return stripResult{refDiff: diff}
	}

	localMin, localMax := strip[0], strip[0]
	for _, v := range strip {
		if v < localMin {
			localMin = v
		}
		if v > localMax {
			localMax = v
		}
	}
	localRange := float64(localMax) - float64(localMin)
	if localRange == 0 {
		localRange = 1
	}

	rightmost := -1
	for i, v := range strip {
		if (float64(v)-float64(localMin))/localRange > BrightnessCutoff {
			rightmost = i
		}
	}
	if rightmost < 0 {
		return stripResult{refDiff: diff}
	}

	length := rightmost + 1
	return stripResult{
		fullness: float64(length) / StripLength * 100,
		length:   length,
		refDiff:  diff,
	}
}

// stripLuma extracts the strip's pixel row, clamped to the frame bounds.
func stripLuma(gray *image.Gray, s gaugeStrip) []uint8 {
	bounds := gray.Bounds()
	if s.y < bounds.Min.Y || s.y >= bounds.Max.Y {
		return nil
	}
	x0 := s.x
	if x0 < bounds.Min.X {
		x0 = bounds.Min.X
	}
	x1 := s.x + StripLength
	if x1 > bounds.Max.X {
		x1 = bounds.Max.X
	}
	if x0 >= x1 {
		return nil
	}

	row := make([]uint8, 0, x1-x0)
	for x := x0; x < x1; x++ {
		row = append(row, gray.GrayAt(x, s.y).Y)
	}
	return row
}
