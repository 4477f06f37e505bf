// Package scene provides the in-memory scene graph drawn by the renderer:
// transformable nodes, groups, meshes and point clouds.
package scene

import (
	"github.com/Faultbox/mars-globe/pkg/math"
)

// Object is anything that can live in the scene graph.
type Object interface {
	Base() *Node
}

// Node carries a local transform and a list of children.
type Node struct {
	Name     string
	Position math.Vec3
	Rotation math.Euler
	Scale    math.Vec3
	Visible  bool

	parent   *Node
	children []Object
}

// NewNode returns a visible node with unit scale.
func NewNode(name string) *Node {
	return &Node{
		Name:    name,
		Scale:   math.Splat(1),
		Visible: true,
	}
}

// Base returns the node itself.
func (n *Node) Base() *Node { return n }

// Parent returns the node this one is attached to, or nil.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the direct children in insertion order.
func (n *Node) Children() []Object { return n.children }

// Add attaches child to n, detaching it from any previous parent first.
func (n *Node) Add(child Object) {
	c := child.Base()
	if c == n {
		return
	}
	if c.parent != nil {
		c.parent.Remove(child)
	}
	c.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child from n. It reports whether child was found.
func (n *Node) Remove(child Object) bool {
	c := child.Base()
	for i, o := range n.children {
		if o.Base() == c {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// LocalMatrix returns T * R * S for this node.
func (n *Node) LocalMatrix() math.Mat4 {
	return math.Compose(n.Position, n.Rotation, n.Scale)
}

// WorldMatrix returns the product of all ancestor local matrices and this one.
func (n *Node) WorldMatrix() math.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul(m)
	}
	return m
}

// Traverse calls fn for n's object and every descendant, depth first.
// Invisible subtrees are skipped. world is the object's world matrix.
func Traverse(root Object, fn func(obj Object, world math.Mat4)) {
	traverse(root, math.Identity(), fn)
}

func traverse(obj Object, parentWorld math.Mat4, fn func(Object, math.Mat4)) {
	n := obj.Base()
	if !n.Visible {
		return
	}
	world := parentWorld.Mul(n.LocalMatrix())
	fn(obj, world)
	for _, c := range n.children {
		traverse(c, world, fn)
	}
}

// Materials returns the distinct mesh materials under root in depth-first
// order, including those of hidden nodes.
func Materials(root Object) []*Material {
	var mats []*Material
	seen := make(map[*Material]bool)
	var walk func(Object)
	walk = func(obj Object) {
		if m, ok := obj.(*Mesh); ok && m.Material != nil && !seen[m.Material] {
			seen[m.Material] = true
			mats = append(mats, m.Material)
		}
		for _, c := range obj.Base().children {
			walk(c)
		}
	}
	walk(root)
	return mats
}

// Group is a node with no geometry, used to pivot its children.
type Group struct {
	Node
}

// NewGroup creates an empty group.
func NewGroup(name string) *Group {
	return &Group{Node: *NewNode(name)}
}

// Scene is the root of the graph.
type Scene struct {
	Node
	Background [3]float32
}

// New creates an empty scene with a black background.
func New() *Scene {
	return &Scene{Node: *NewNode("scene")}
}
