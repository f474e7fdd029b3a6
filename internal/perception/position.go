// File: internal/perception/position.go
package perception

import "github.com/voxarm/voxarm-cli/api/schemas"

// Position tier thresholds, as fractions of the frame dimensions and of the
// frame area. These are load-bearing: downstream grasp planning assumes the
// exact tier boundaries.
const (
	lowerFraction = 0.33
	upperFraction = 0.66

	veryCloseAreaRatio = 0.15
	closeAreaRatio     = 0.08
	mediumAreaRatio    = 0.03
)

// EstimatePosition buckets a bounding box into coarse horizontal, vertical
// and depth tiers relative to the frame. It is a pure function: the same box
// and frame size always yield the same estimate.
func EstimatePosition(box schemas.BoundingBox, frameWidth, frameHeight int) schemas.Position {
	cx := box.CenterX
	cy := box.CenterY

	var horizontal schemas.Horizontal
	switch {
	case float64(cx) < float64(frameWidth)*lowerFraction:
		horizontal = schemas.HorizontalLeft
	case float64(cx) < float64(frameWidth)*upperFraction:
		horizontal = schemas.HorizontalCenter
	default:
		horizontal = schemas.HorizontalRight
	}

	var vertical schemas.Vertical
	switch {
	case float64(cy) < float64(frameHeight)*lowerFraction:
		vertical = schemas.VerticalTop
	case float64(cy) < float64(frameHeight)*upperFraction:
		vertical = schemas.VerticalMiddle
	default:
		vertical = schemas.VerticalBottom
	}

	areaRatio := float64(box.Area()) / float64(frameWidth*frameHeight)
	var depth schemas.Depth
	switch {
	case areaRatio > veryCloseAreaRatio:
		depth = schemas.DepthVeryClose
	case areaRatio > closeAreaRatio:
		depth = schemas.DepthClose
	case areaRatio > mediumAreaRatio:
		depth = schemas.DepthMedium
	default:
		depth = schemas.DepthFar
	}

	return schemas.Position{
		Horizontal: horizontal,
		Vertical:   vertical,
		Depth:      depth,
		X:          cx,
		Y:          cy,
	}
}
