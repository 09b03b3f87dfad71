// Package snap resolves the best geometric anchor point under a cursor:
// candidates are generated per entity and snap mode, tracking alignments
// are added, and an arbiter reduces them to one authoritative result.
package snap

// Kind enumerates the object snap modes.
type Kind int

const (
	KindNone Kind = iota
	KindEndpoint
	KindMidpoint
	KindCenter
	KindNode
	KindQuadrant
	KindIntersection
	KindExtension
	KindTangent
	KindPerpendicular
	KindParallel
	KindNearest
	KindPolarTracking
	KindObjectTracking
)

// kindCount is the number of Kind values, used when iterating all modes.
const kindCount = int(KindObjectTracking) + 1

func (k Kind) String() string {
	switch k {
	case KindEndpoint:
		return "endpoint"
	case KindMidpoint:
		return "midpoint"
	case KindCenter:
		return "center"
	case KindNode:
		return "node"
	case KindQuadrant:
		return "quadrant"
	case KindIntersection:
		return "intersection"
	case KindExtension:
		return "extension"
	case KindTangent:
		return "tangent"
	case KindPerpendicular:
		return "perpendicular"
	case KindParallel:
		return "parallel"
	case KindNearest:
		return "nearest"
	case KindPolarTracking:
		return "polar-tracking"
	case KindObjectTracking:
		return "object-tracking"
	default:
		return "none"
	}
}

// Description returns the user-facing explanation of a snap mode, for
// tooltips and status bars.
func (k Kind) Description() string {
	switch k {
	case KindEndpoint:
		return "Snap to the endpoint of a line, arc, or polyline segment"
	case KindMidpoint:
		return "Snap to the midpoint of a line or arc"
	case KindCenter:
		return "Snap to the center of a circle, arc, or ellipse"
	case KindNode:
		return "Snap to a point entity"
	case KindQuadrant:
		return "Snap to a quadrant point of a circle or ellipse"
	case KindIntersection:
		return "Snap to the intersection of two entities"
	case KindExtension:
		return "Snap to the extension of a line beyond its endpoints"
	case KindTangent:
		return "Snap to a tangent point on a circle or arc"
	case KindPerpendicular:
		return "Snap perpendicular to an entity"
	case KindParallel:
		return "Snap parallel to an entity through the base point"
	case KindNearest:
		return "Snap to the nearest point on an entity"
	case KindPolarTracking:
		return "Align to a polar tracking angle from the base point"
	case KindObjectTracking:
		return "Align to tracking lines through acquired points"
	default:
		return "No snap"
	}
}
