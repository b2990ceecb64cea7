package scene

import (
	"lightlab/core"
)

// Scene owns the node tree, the light list and the single active camera.
// Nodes and lights are only ever added.
type Scene struct {
	Root       *Node
	Camera     *Camera
	Lights     []*Light
	Background core.Color
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Lights:     make([]*Light, 0),
		Background: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

// AddLight registers the light and, when it has a node without a parent,
// attaches that node to the root so it moves with the graph.
func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
	if light.Node != nil && light.Node.Parent == nil {
		s.Root.AddChild(light.Node)
	}
}

// GetVisibleNodes returns all nodes with meshes that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil {
			visible = append(visible, node)
		}
	})

	return visible
}

// Materials returns each distinct material referenced by a mesh in the
// graph, in traversal order.
func (s *Scene) Materials() []*Material {
	seen := make(map[*Material]bool)
	var out []*Material
	s.Root.Traverse(func(node *Node) {
		if node.Mesh == nil || node.Mesh.Material == nil {
			return
		}
		if m := node.Mesh.Material; !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	})
	return out
}
