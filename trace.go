package hemesh

import "github.com/go-gl/mathgl/mgl64"

// ZeroDistancePolicy decides what happens to a leaf hit exactly at the ray
// origin (t == 0) during tree descent.
type ZeroDistancePolicy int

const (
	// RejectZeroDistance drops hits at t == 0. This is the default: a pick
	// ray starting on a surface does not report that surface.
	RejectZeroDistance ZeroDistancePolicy = iota
	// AcceptZeroDistance treats a hit at t == 0 like any other hit.
	AcceptZeroDistance
)

func (p ZeroDistancePolicy) String() string {
	switch p {
	case RejectZeroDistance:
		return "reject"
	case AcceptZeroDistance:
		return "accept"
	default:
		return "unknown"
	}
}

func (p ZeroDistancePolicy) allows(t float64) bool {
	return t != 0 || p == AcceptZeroDistance
}

// Nearest is the running result of a tree descent: the smallest accepted
// distance so far and the index of the leaf it came from.
type Nearest struct {
	T     float64
	Index int
	Valid bool
}

// NoHit is the starting value of a descent.
var NoHit = Nearest{Index: -1}

// Closer returns whichever of n and other is nearer. Invalid values lose to
// valid ones; on a tie n is kept.
func (n Nearest) Closer(other Nearest) Nearest {
	if !other.Valid {
		return n
	}
	if !n.Valid || other.T < n.T {
		return other
	}
	return n
}

// TraceOption configures a tree query.
type TraceOption func(*traceConfig)

type traceConfig struct {
	zero     ZeroDistancePolicy
	observer TraceObserver
}

func WithZeroDistance(policy ZeroDistancePolicy) TraceOption {
	return func(c *traceConfig) {
		c.zero = policy
	}
}

// WithObserver attaches an observer that is told about every leaf test and
// every change of the nearest hit.
func WithObserver(o TraceObserver) TraceOption {
	return func(c *traceConfig) {
		c.observer = o
	}
}

func newTraceConfig(opts []TraceOption) traceConfig {
	c := traceConfig{zero: RejectZeroDistance, observer: nopObserver{}}
	for _, opt := range opts {
		opt(&c)
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	return c
}

// RayNodeIntersect descends from node and returns nearest reduced with every
// accepted leaf hit below it. A subtree is skipped only when the ray misses
// its box; otherwise both children are always visited.
func RayNodeIntersect(r Ray, node TreeNode, nearest Nearest, opts ...TraceOption) Nearest {
	c := newTraceConfig(opts)
	return c.descend(r, node, nearest)
}

func (c *traceConfig) descend(r Ray, node TreeNode, nearest Nearest) Nearest {
	if node == nil || !RayBoxIntersect(r, node.Box()) {
		return nearest
	}

	if node.IsLeaf() {
		tri := node.Triangle()
		t, ok := RayTriangleIntersect(r, tri[0], tri[1], tri[2])
		c.observer.LeafTested(node.Index(), t, ok)
		if !ok || !c.zero.allows(t) {
			return nearest
		}

		candidate := Nearest{T: t, Index: node.Index(), Valid: true}
		best := nearest.Closer(candidate)
		if best != nearest {
			c.observer.NearestChanged(nearest, best)
		}
		return best
	}

	nearest = c.descend(r, node.Left(), nearest)
	return c.descend(r, node.Right(), nearest)
}

// RayTreeIntersect returns the nearest hit distance of r against tree. A
// result is reported only for distances strictly greater than zero.
func RayTreeIntersect(r Ray, tree Tree, opts ...TraceOption) (float64, bool) {
	nearest := traceTree(r, tree, opts)
	if !nearest.Valid || nearest.T <= 0 {
		return 0, false
	}
	return nearest.T, true
}

// TreeHit is the nearest leaf struck by a ray.
type TreeHit struct {
	Index int // leaf triangle index
	T     float64
	Point mgl64.Vec3
}

// RayTreeHit is RayTreeIntersect that also identifies the leaf. Unlike
// RayTreeIntersect it reports hits at t == 0 when AcceptZeroDistance is in
// effect.
func RayTreeHit(r Ray, tree Tree, opts ...TraceOption) (TreeHit, bool) {
	nearest := traceTree(r, tree, opts)
	if !nearest.Valid {
		return TreeHit{Index: -1}, false
	}
	return TreeHit{Index: nearest.Index, T: nearest.T, Point: r.At(nearest.T)}, true
}

func traceTree(r Ray, tree Tree, opts []TraceOption) Nearest {
	c := newTraceConfig(opts)
	c.observer.TraceStarted(r)
	var nearest Nearest
	if tree == nil {
		nearest = NoHit
	} else {
		nearest = c.descend(r, tree.Root(), NoHit)
	}
	c.observer.TraceFinished(nearest)
	return nearest
}
