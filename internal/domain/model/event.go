package model

// EventKind identifies a discrete game event.
type EventKind int

const (
	AttemptStarted EventKind = iota + 1
	ShotMade
)

func (k EventKind) String() string {
	switch k {
	case AttemptStarted:
		return "attempt_started"
	case ShotMade:
		return "shot_made"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by name in JSON payloads.
func (k EventKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Event is emitted at most once per kind per frame.
type Event struct {
	Kind  EventKind `json:"kind"`
	Frame int64     `json:"frame"`
}

// Color is an opaque RGB color plus its hex form.
type Color struct {
	R   uint8  `json:"r"`
	G   uint8  `json:"g"`
	B   uint8  `json:"b"`
	Hex string `json:"hex"`
}

// Annotation is a draw instruction for one detection.
type Annotation struct {
	Rect  Rect    `json:"rect"`
	Text  string  `json:"text"`
	Color Color   `json:"color"`
	Alpha float64 `json:"alpha"`
}

// FrameResult is the immutable outcome of processing one frame.
type FrameResult struct {
	Frame       int64        `json:"frame"`
	Degraded    bool         `json:"degraded"`
	Rim         *Rect        `json:"rim,omitempty"`
	Events      []Event      `json:"events"`
	Annotations []Annotation `json:"annotations"`
	// Skipped counts detections dropped as malformed or over the per-frame cap.
	Skipped int `json:"skipped"`
}

// Has reports whether the result contains an event of kind k.
func (r FrameResult) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
