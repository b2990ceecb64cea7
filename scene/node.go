package scene

import (
	"lightlab/core"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is a transform in the scene graph, optionally carrying a mesh.
// Its world matrix is cached until it or an ancestor moves.
type Node struct {
	Name          string
	Transform     core.Transform
	Parent        *Node
	Children      []*Node
	Mesh          *Mesh
	Visible       bool
	CastShadow    bool
	ReceiveShadow bool

	world      mgl32.Mat4
	worldValid bool
}

func NewNode(name string) *Node {
	return &Node{
		Name:      name,
		Transform: core.NewTransform(),
		Visible:   true,
	}
}

// NewMeshNode wraps mesh in a new node.
func NewMeshNode(name string, mesh *Mesh) *Node {
	n := NewNode(name)
	n.Mesh = mesh
	return n
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.invalidate()
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// GetWorldMatrix returns parentWorld * local.
func (n *Node) GetWorldMatrix() mgl32.Mat4 {
	if !n.worldValid {
		n.world = n.Transform.GetMatrix()
		if n.Parent != nil {
			n.world = n.Parent.GetWorldMatrix().Mul4(n.world)
		}
		n.worldValid = true
	}
	return n.world
}

// invalidate drops the cached world matrix of n and its subtree.
func (n *Node) invalidate() {
	if !n.worldValid {
		return
	}
	n.worldValid = false
	for _, child := range n.Children {
		child.invalidate()
	}
}

func (n *Node) SetPosition(pos mgl32.Vec3) {
	n.Transform.Position = pos
	n.invalidate()
}

// SetPositionY moves the node vertically, leaving X and Z untouched.
func (n *Node) SetPositionY(y float32) {
	n.Transform.Position[1] = y
	n.invalidate()
}

func (n *Node) SetRotation(rot mgl32.Quat) {
	n.Transform.Rotation = rot
	n.invalidate()
}

// SetRotationEuler sets rotation from intrinsic XYZ angles in radians; the
// Z rotation is applied to a vector first.
func (n *Node) SetRotationEuler(x, y, z float32) {
	q := mgl32.QuatRotate(x, mgl32.Vec3{1, 0, 0}).
		Mul(mgl32.QuatRotate(y, mgl32.Vec3{0, 1, 0})).
		Mul(mgl32.QuatRotate(z, mgl32.Vec3{0, 0, 1}))
	n.SetRotation(q.Normalize())
}

// Traverse calls fn for n and then for its descendants, depth first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, child := range n.Children {
		child.Traverse(fn)
	}
}
