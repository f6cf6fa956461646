package game

import (
	"math"

	"github.com/spotit-game/spotit-backend/internal/content"
)

// Point is a cursor position in the normalized 0-100 coordinate space.
type Point struct {
	X float64
	Y float64
}

// IsHit reports whether p lands inside the hotspot's circle. A nil hotspot
// (no active target) is never a hit.
func IsHit(p Point, h *content.Hotspot) bool {
	if h == nil {
		return false
	}
	dx := p.X - h.X
	dy := p.Y - h.Y
	return math.Sqrt(dx*dx+dy*dy) <= h.Radius
}
