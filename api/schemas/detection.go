// File: api/schemas/detection.go
package schemas

// BoundingBox is an axis-aligned pixel-space box with derived center and size.
type BoundingBox struct {
	X1      int `json:"x1"`
	Y1      int `json:"y1"`
	X2      int `json:"x2"`
	Y2      int `json:"y2"`
	CenterX int `json:"center_x"`
	CenterY int `json:"center_y"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// NewBoundingBox derives center and size from the corner coordinates.
func NewBoundingBox(x1, y1, x2, y2 int) BoundingBox {
	return BoundingBox{
		X1: x1, Y1: y1, X2: x2, Y2: y2,
		CenterX: (x1 + x2) / 2,
		CenterY: (y1 + y2) / 2,
		Width:   x2 - x1,
		Height:  y2 - y1,
	}
}

// Area returns the box area in pixels.
func (b BoundingBox) Area() int { return b.Width * b.Height }

// Detection is a single object reported by the detector, annotated with the
// graspability flag derived from the configured allow-set.
type Detection struct {
	Class      string      `json:"class_name"`
	Confidence float64     `json:"confidence"`
	Box        BoundingBox `json:"bbox"`
	Graspable  bool        `json:"is_graspable"`
}

// Horizontal, Vertical and Depth are the coarse position tiers derived from a
// bounding box relative to the frame dimensions.
type (
	Horizontal string
	Vertical   string
	Depth      string
)

const (
	HorizontalLeft   Horizontal = "left"
	HorizontalCenter Horizontal = "center"
	HorizontalRight  Horizontal = "right"

	VerticalTop    Vertical = "top"
	VerticalMiddle Vertical = "middle"
	VerticalBottom Vertical = "bottom"

	DepthVeryClose Depth = "very_close"
	DepthClose     Depth = "close"
	DepthMedium    Depth = "medium"
	DepthFar       Depth = "far"
)

// Position is a bucketed estimate of where an object sits in the scene, plus
// the raw pixel center it was derived from.
type Position struct {
	Horizontal Horizontal `json:"horizontal"`
	Vertical   Vertical   `json:"vertical"`
	Depth      Depth      `json:"depth"`
	X          int        `json:"x"`
	Y          int        `json:"y"`
}

// ScanResult is the perception payload for a full-scene scan.
type ScanResult struct {
	Envelope
	TotalObjects   int         `json:"total_objects"`
	GraspableCount int         `json:"graspable_count"`
	Detections     []Detection `json:"detections"`
	Graspable      []Detection `json:"graspable_objects"`
}

// FindResult is the perception payload for a targeted object search.
type FindResult struct {
	Envelope
	Found        bool       `json:"found"`
	Target       string     `json:"target"`
	TotalObjects int        `json:"total_objects"`
	Object       *Detection `json:"object,omitempty"`
	Position     *Position  `json:"position,omitempty"`
}
