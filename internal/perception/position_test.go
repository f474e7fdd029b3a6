// File: internal/perception/position_test.go
package perception

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/voxarm/voxarm-cli/api/schemas"
)

const (
	frameW = 100
	frameH = 100
)

// boxAt builds a box with the given center and size on the test frame.
func boxAt(cx, cy, w, h int) schemas.BoundingBox {
	return schemas.NewBoundingBox(cx-w/2, cy-h/2, cx+w/2, cy+h/2)
}

func TestEstimatePositionHorizontalVerticalTiers(t *testing.T) {
	tests := []struct {
		name       string
		cx, cy     int
		horizontal schemas.Horizontal
		vertical   schemas.Vertical
	}{
		{"far left top", 10, 10, schemas.HorizontalLeft, schemas.VerticalTop},
		{"just left of lower boundary", 32, 32, schemas.HorizontalLeft, schemas.VerticalTop},
		{"exactly on lower boundary resolves to middle tier", 33, 33, schemas.HorizontalCenter, schemas.VerticalMiddle},
		{"center middle", 50, 50, schemas.HorizontalCenter, schemas.VerticalMiddle},
		{"just below upper boundary", 65, 65, schemas.HorizontalCenter, schemas.VerticalMiddle},
		{"exactly on upper boundary resolves to outer tier", 66, 66, schemas.HorizontalRight, schemas.VerticalBottom},
		{"far right bottom", 90, 90, schemas.HorizontalRight, schemas.VerticalBottom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := EstimatePosition(boxAt(tt.cx, tt.cy, 4, 4), frameW, frameH)
			assert.Equal(t, tt.horizontal, pos.Horizontal)
			assert.Equal(t, tt.vertical, pos.Vertical)
			assert.Equal(t, tt.cx, pos.X)
			assert.Equal(t, tt.cy, pos.Y)
		})
	}
}

func TestEstimatePositionDepthTiers(t *testing.T) {
	tests := []struct {
		name  string
		w, h  int
		depth schemas.Depth
	}{
		{"tiny box is far", 4, 4, schemas.DepthFar},
		{"exactly 3 percent is far", 30, 10, schemas.DepthFar},
		{"above 3 percent is medium", 30, 12, schemas.DepthMedium},
		{"exactly 8 percent is medium", 40, 20, schemas.DepthMedium},
		{"above 8 percent is close", 40, 22, schemas.DepthClose},
		{"exactly 15 percent is close", 50, 30, schemas.DepthClose},
		{"above 15 percent is very close", 40, 40, schemas.DepthVeryClose},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := EstimatePosition(boxAt(50, 50, tt.w, tt.h), frameW, frameH)
			assert.Equal(t, tt.depth, pos.Depth)
		})
	}
}

func TestEstimatePositionIsPure(t *testing.T) {
	box := boxAt(20, 80, 30, 12)
	first := EstimatePosition(box, frameW, frameH)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, EstimatePosition(box, frameW, frameH))
	}
}
