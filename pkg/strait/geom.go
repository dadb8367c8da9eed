package strait

import "math"

// Distance returns the straight-line distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// BoundingBox is an axis-aligned rectangle used for supply-line
// intersection tests.
type BoundingBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// BoxFromPoints returns the bounding box spanning two points.
func BoxFromPoints(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// Intersects reports whether two bounding boxes overlap.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX &&
		b.MinY <= o.MaxY && b.MaxY >= o.MinY
}

// Expand grows the box by buffer on all sides.
func (b BoundingBox) Expand(buffer float64) BoundingBox {
	return BoundingBox{
		MinX: b.MinX - buffer,
		MinY: b.MinY - buffer,
		MaxX: b.MaxX + buffer,
		MaxY: b.MaxY + buffer,
	}
}

// ContainsWithBuffer reports whether the point lies inside the box
// expanded by buffer on all sides.
func (b BoundingBox) ContainsWithBuffer(x, y, buffer float64) bool {
	return x >= b.MinX-buffer && x <= b.MaxX+buffer &&
		y >= b.MinY-buffer && y <= b.MaxY+buffer
}

// segmentPointDistance returns the distance from a point to the segment
// (x1,y1)-(x2,y2).
func segmentPointDistance(x1, y1, x2, y2, px, py float64) float64 {
	length := Distance(x1, y1, x2, y2)
	if length == 0 {
		return Distance(x1, y1, px, py)
	}
	t := ((px-x1)*(x2-x1) + (py-y1)*(y2-y1)) / (length * length)
	switch {
	case t < 0:
		return Distance(x1, y1, px, py)
	case t > 1:
		return Distance(x2, y2, px, py)
	default:
		projX := x1 + t*(x2-x1)
		projY := y1 + t*(y2-y1)
		return Distance(projX, projY, px, py)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
