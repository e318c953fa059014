package extract

import "image"

// WhiteThreshold is the default per-channel cutoff above which an engine
// indicator pixel counts as lit.
const WhiteThreshold = 230

// Engine indicator coordinates on the broadcast overlay, grouped per
// physical engine cluster. Calibrated per vehicle revision; the booster's
// 33 engines render as three concentric groups, the ship's six as two.
var (
	SuperheavyEngines = map[string][]image.Point{
		"central_stack": {{109, 970}, {120, 989}, {98, 989}},
		"inner_ring": {
			{102, 1018}, {82, 1006}, {74, 986}, {78, 964}, {94, 950},
			{116, 948}, {136, 958}, {144, 978}, {140, 1000}, {124, 1016},
		},
		"outer_ring": {
			{106, 1044}, {86, 1040}, {70, 1030}, {57, 1016}, {49, 998},
			{47, 980}, {51, 960}, {61, 944}, {75, 930}, {93, 922},
			{112, 920}, {131, 924}, {148, 934}, {161, 948}, {169, 966},
			{171, 986}, {167, 1005}, {157, 1022}, {143, 1034}, {125, 1042},
		},
	}

	StarshipEngines = map[string][]image.Point{
		"rearth": {{1801, 986}, {1830, 986}, {1815, 1012}},
		"rvac":   {{1764, 1024}, {1815, 937}, {1866, 1024}},
	}
)

// EngineStatus samples the frame at every coordinate of every group and
// reports one boolean per coordinate, in input order: true iff all three
// color channels are at or above threshold. Out-of-bounds coordinates are
// always false.
//
// This runs over every coordinate of both vehicles on every processed
// frame, so the per-pixel path avoids the color.Color boxing of Image.At
// for the common raster formats.
func EngineStatus(frame image.Image, sets map[string][]image.Point, threshold uint8) map[string][]bool {
	status := make(map[string][]bool, len(sets))
	bounds := frame.Bounds()

	for group, points := range sets {
		lit := make([]bool, len(points))
		for i, p := range points {
			if !image.Pt(p.X, p.Y).In(bounds) {
				continue
			}
			lit[i] = whiteAt(frame, p.X, p.Y, threshold)
		}
		status[group] = lit
	}
	return status
}

func whiteAt(frame image.Image, x, y int, threshold uint8) bool {
	switch img := frame.(type) {
	case *image.RGBA:
		i := img.PixOffset(x, y)
		return img.Pix[i] >= threshold && img.Pix[i+1] >= threshold && img.Pix[i+2] >= threshold
	case *image.NRGBA:
		i := img.PixOffset(x, y)
		return img.Pix[i] >= threshold && img.Pix[i+1] >= threshold && img.Pix[i+2] >= threshold
	case *image.Gray:
		return img.Pix[img.PixOffset(x, y)] >= threshold
	default:
		r, g, b, _ := frame.At(x, y).RGBA()
		t := uint32(threshold) << 8
		return r >= t && g >= t && b >= t
	}
}
