package core

import (
	"encoding/json"
	"fmt"

	"github.com/lumipallolabs/metafolder/internal/model"
)

// DragPayload travels with a drag gesture. Grabbed is the pointer offset
// inside the dragged cell.
type DragPayload struct {
	Name     string  `json:"name"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	PosX     float64 `json:"pos_x"`
	PosY     float64 `json:"pos_y"`
	GrabbedX float64 `json:"grabbed_x"`
	GrabbedY float64 `json:"grabbed_y"`
}

// Bounds returns the cell rect captured at drag start
func (p DragPayload) Bounds() model.Rect {
	return model.Rect{X: p.PosX, Y: p.PosY, W: p.W, H: p.H}
}

// Encode serializes p for a drag transport
func (p DragPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// DecodeDragPayload parses a payload produced by Encode
func DecodeDragPayload(data []byte) (DragPayload, error) {
	var p DragPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return DragPayload{}, fmt.Errorf("decode drag payload: %w", err)
	}
	if p.Name == "" {
		return DragPayload{}, fmt.Errorf("decode drag payload: missing name")
	}
	return p, nil
}
