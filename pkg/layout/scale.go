package layout

// Scale maps value onto a bar length: value/maxScale*maxPixels.
// The result is not clamped, so values above maxScale produce bars longer
// than maxPixels. A non-positive maxScale yields 0.
func Scale(value, maxScale, maxPixels float64) float64 {
	if maxScale <= 0 {
		return 0
	}
	return (value / maxScale) * maxPixels
}
