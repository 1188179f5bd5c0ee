package models

// ShapeKind identifies one of the recognized debug annotation kinds.
type ShapeKind string

const (
	ShapePoint  ShapeKind = "point"
	ShapeLine   ShapeKind = "line"
	ShapeBox    ShapeKind = "box"
	ShapeCircle ShapeKind = "circle"
)

// ShapePayload is the tagged union of kind-specific annotation data.
// Each variant carries only the fields its kind requires; point shapes
// carry no payload (nil).
type ShapePayload interface {
	// PayloadKind returns the shape kind this payload belongs to.
	PayloadKind() ShapeKind
}

// LinePayload holds the end point of a line annotation.
type LinePayload struct {
	End Point `json:"end"`
}

// PayloadKind returns ShapeLine.
func (LinePayload) PayloadKind() ShapeKind { return ShapeLine }

// BoxPayload holds the size vector of a box annotation.
type BoxPayload struct {
	Size Point `json:"size"`
}

// PayloadKind returns ShapeBox.
func (BoxPayload) PayloadKind() ShapeKind { return ShapeBox }

// CirclePayload holds the radius of a circle annotation.
type CirclePayload struct {
	Radius float64 `json:"radius"`
}

// PayloadKind returns ShapeCircle.
func (CirclePayload) PayloadKind() ShapeKind { return ShapeCircle }

// DebugShape is a named visual annotation keyed by caller-supplied ID.
// Re-adding an existing ID overwrites the previous entry (last-write-wins).
type DebugShape struct {
	ID       string       `json:"id"`
	Position Point        `json:"position"`
	Kind     ShapeKind    `json:"kind"`
	Color    string       `json:"color,omitempty"`
	Payload  ShapePayload `json:"payload,omitempty"`
}
