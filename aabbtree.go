package hemesh

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// TreeNode is one node of a binary AABB tree. Internal nodes have two
// children; leaves hold exactly one triangle. Every node's box bounds all
// geometry below it.
type TreeNode interface {
	Box() Box
	IsLeaf() bool
	// Triangle and Index are only meaningful on leaves. Index identifies the
	// triangle in whatever list the tree was built from.
	Triangle() Triangle
	Index() int
	Left() TreeNode
	Right() TreeNode
}

// Tree is anything that exposes a root node. A nil root means an empty tree.
type Tree interface {
	Root() TreeNode
}

// AabbNode is the TreeNode implementation built by NewAabbTree.
type AabbNode struct {
	box      Box
	left     *AabbNode
	right    *AabbNode
	triangle Triangle
	index    int
}

func (n *AabbNode) Box() Box           { return n.box }
func (n *AabbNode) IsLeaf() bool       { return n.left == nil && n.right == nil }
func (n *AabbNode) Triangle() Triangle { return n.triangle }
func (n *AabbNode) Index() int         { return n.index }

func (n *AabbNode) Left() TreeNode {
	if n.left == nil {
		return nil
	}
	return n.left
}

func (n *AabbNode) Right() TreeNode {
	if n.right == nil {
		return nil
	}
	return n.right
}

// AabbTree is a bounding volume hierarchy over triangles with one triangle
// per leaf.
type AabbTree struct {
	root *AabbNode
	size int
}

type treeItem struct {
	triangle Triangle
	bounds   Box
	centroid mgl64.Vec3
	index    int
}

// NewAabbTree builds a tree over triangles by median split along the longest
// axis of the centroid bounds. Leaf i refers to triangles[i]. The input slice
// is not modified.
func NewAabbTree(triangles []Triangle) *AabbTree {
	if len(triangles) == 0 {
		return &AabbTree{}
	}

	items := make([]treeItem, len(triangles))
	for i, tri := range triangles {
		items[i] = treeItem{
			triangle: tri,
			bounds:   tri.Bounds(),
			centroid: tri.Centroid(),
			index:    i,
		}
	}

	return &AabbTree{
		root: buildAabbNode(items),
		size: len(triangles),
	}
}

func buildAabbNode(items []treeItem) *AabbNode {
	if len(items) == 1 {
		return &AabbNode{
			box:      items[0].bounds,
			triangle: items[0].triangle,
			index:    items[0].index,
		}
	}

	box := items[0].bounds
	centroids := BoxFromPoints(items[0].centroid)
	for _, it := range items[1:] {
		box = box.Union(it.bounds)
		centroids = centroids.Extend(it.centroid)
	}

	axis := centroids.LongestAxis()
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].centroid[axis] < items[j].centroid[axis]
	})

	mid := len(items) / 2
	return &AabbNode{
		box:   box,
		left:  buildAabbNode(items[:mid]),
		right: buildAabbNode(items[mid:]),
		index: -1,
	}
}

// Root returns nil for an empty tree.
func (t *AabbTree) Root() TreeNode {
	if t.root == nil {
		return nil
	}
	return t.root
}

// Len is the number of triangles in the tree.
func (t *AabbTree) Len() int {
	return t.size
}

// TreeStats describes the shape of a tree.
type TreeStats struct {
	Nodes    int
	Leaves   int
	MaxDepth int
}

func (t *AabbTree) Stats() TreeStats {
	var stats TreeStats
	var walk func(n *AabbNode, depth int)
	walk = func(n *AabbNode, depth int) {
		if n == nil {
			return
		}
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if n.IsLeaf() {
			stats.Leaves++
			return
		}
		walk(n.left, depth+1)
		walk(n.right, depth+1)
	}
	walk(t.root, 0)
	return stats
}
