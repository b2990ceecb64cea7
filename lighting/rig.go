package lighting

import (
	"math"
	"path/filepath"

	"lightlab/core"
	"lightlab/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureSource loads a texture asynchronously. onLoad runs on the frame
// thread once decoding succeeds and never runs on failure.
type TextureSource interface {
	Load(path string, onLoad func(*scene.Texture))
}

// bulbRadius is the radius of the visible bulb mesh in world units.
const bulbRadius = 0.02

// Rig is the constructed scene plus handles to everything the Updater and
// the renderer touch each frame.
type Rig struct {
	Scene  *scene.Scene
	Camera *scene.Camera

	Bulb         *scene.Light
	BulbMaterial *scene.Material
	Hemi         *scene.Light

	Floor *scene.Node
	Ball  *scene.Node
	Cubes [3]*scene.Node

	FloorMaterial *scene.Material
	CubeMaterial  *scene.Material
	BallMaterial  *scene.Material
}

// SurfaceMaterials returns the materials invalidated on a shadow toggle.
func (r *Rig) SurfaceMaterials() []*scene.Material {
	return []*scene.Material{r.FloorMaterial, r.CubeMaterial, r.BallMaterial}
}

// textureBinding describes one texture request: the file, its sampling
// parameters and the material slot it fills.
type textureBinding struct {
	file     string
	wrap     scene.WrapMode
	repeat   float32
	srgb     bool
	material func(r *Rig) *scene.Material
	assign   func(m *scene.Material, t *scene.Texture)
}

const textureAnisotropy = 4

var textureBindings = []textureBinding{
	{file: "Tile_BaseColor.jpg", wrap: scene.WrapRepeat, repeat: 30, srgb: true,
		material: floorMaterial, assign: func(m *scene.Material, t *scene.Texture) { m.Map = t }},
	{file: "Tile_Normal.jpg", wrap: scene.WrapRepeat, repeat: 30,
		material: floorMaterial, assign: func(m *scene.Material, t *scene.Texture) { m.NormalMap = t }},
	{file: "Tile_Roughness.jpg", wrap: scene.WrapRepeat, repeat: 30,
		material: floorMaterial, assign: func(m *scene.Material, t *scene.Texture) { m.RoughnessMap = t }},
	{file: "brick_diffuse.jpg", wrap: scene.WrapRepeat, repeat: 1, srgb: true,
		material: cubeMaterial, assign: func(m *scene.Material, t *scene.Texture) { m.Map = t }},
	{file: "brick_bump.jpg", wrap: scene.WrapRepeat, repeat: 1,
		material: cubeMaterial, assign: func(m *scene.Material, t *scene.Texture) { m.BumpMap = t }},
	{file: "earth_atmos_2048.jpg", wrap: scene.WrapClamp, repeat: 1, srgb: true,
		material: ballMaterial, assign: func(m *scene.Material, t *scene.Texture) { m.Map = t }},
	{file: "earth_specular_2048.jpg", wrap: scene.WrapClamp, repeat: 1, srgb: true,
		material: ballMaterial, assign: func(m *scene.Material, t *scene.Texture) { m.MetalnessMap = t }},
}

func floorMaterial(r *Rig) *scene.Material { return r.FloorMaterial }
func cubeMaterial(r *Rig) *scene.Material  { return r.CubeMaterial }
func ballMaterial(r *Rig) *scene.Material  { return r.BallMaterial }

// apply configures t for this binding, stores it in the material slot and
// marks the material for recompute. Applying the same texture again leaves
// the same state.
func (b textureBinding) apply(r *Rig, t *scene.Texture) {
	t.Wrap = b.wrap
	t.Repeat = mgl32.Vec2{b.repeat, b.repeat}
	t.Anisotropy = textureAnisotropy
	t.SRGB = b.srgb
	m := b.material(r)
	b.assign(m, t)
	m.NeedsUpdate = true
}

// BuildRig creates the camera, lights, floor, ball and cubes, and requests
// every texture from textures. It returns before any texture arrives; the
// scene renders untextured until the callbacks fire.
func BuildRig(assetsDir string, aspect float32, textures TextureSource) *Rig {
	s := scene.NewScene()
	r := &Rig{Scene: s}

	r.Camera = scene.NewCamera(mgl32.DegToRad(50), aspect, 0.1, 100)
	r.Camera.SetPosition(mgl32.Vec3{-4, 2, 4})
	r.Camera.LookAt(mgl32.Vec3{})
	s.SetCamera(r.Camera)

	// Bulb: a point light carrying a tiny emissive sphere.
	r.Bulb = scene.NewPointLight(core.ColorFromHex(0xffee88), 1, 100, 2)
	r.BulbMaterial = scene.NewStandardMaterial("bulb")
	r.BulbMaterial.Emissive = core.ColorFromHex(0xffffee)
	r.BulbMaterial.Color = core.ColorBlack
	bulbMesh := scene.CreateSphere(bulbRadius, 16, 8)
	bulbMesh.Material = r.BulbMaterial
	r.Bulb.Node.AddChild(scene.NewMeshNode("BulbMesh", bulbMesh))
	r.Bulb.Node.SetPosition(mgl32.Vec3{0, 2, 0})
	r.Bulb.CastShadow = true
	s.AddLight(r.Bulb)

	r.Hemi = scene.NewHemisphereLight(core.ColorFromHex(0xddeeff), core.ColorFromHex(0x0f0e0d), 0.02)
	s.AddLight(r.Hemi)

	r.FloorMaterial = scene.NewStandardMaterial("floor")

	r.CubeMaterial = scene.NewStandardMaterial("cube")
	r.CubeMaterial.Roughness = 0.7
	r.CubeMaterial.Color = core.ColorWhite
	r.CubeMaterial.BumpScale = 0.002
	r.CubeMaterial.Metalness = 0.2

	r.BallMaterial = scene.NewStandardMaterial("ball")
	r.BallMaterial.Color = core.ColorWhite
	r.BallMaterial.Roughness = 0.5
	r.BallMaterial.Metalness = 1.0

	floorMesh := scene.CreatePlane(20, 20, 1, 1)
	floorMesh.Material = r.FloorMaterial
	r.Floor = scene.NewMeshNode("Floor", floorMesh)
	r.Floor.ReceiveShadow = true
	r.Floor.SetRotationEuler(-math.Pi/2, 0, 0)
	s.AddNode(r.Floor)

	ballMesh := scene.CreateSphere(0.25, 32, 32)
	ballMesh.Material = r.BallMaterial
	r.Ball = scene.NewMeshNode("Ball", ballMesh)
	r.Ball.SetPosition(mgl32.Vec3{1, 0.25, 1})
	r.Ball.SetRotationEuler(0, math.Pi, 0)
	r.Ball.CastShadow = true
	s.AddNode(r.Ball)

	// The three cubes share one mesh and material.
	cubeMesh := scene.CreateBox(0.5, 0.5, 0.5)
	cubeMesh.Material = r.CubeMaterial
	for i := range r.Cubes {
		r.Cubes[i] = scene.NewMeshNode("Cube", cubeMesh)
	}
	r.Cubes[0].SetPosition(mgl32.Vec3{-0.5, 0.25, -1})
	r.Cubes[0].CastShadow = true
	s.AddNode(r.Cubes[0])

	r.Cubes[1].SetPosition(mgl32.Vec3{0, 0.25, -5})
	r.Cubes[1].CastShadow = true
	s.AddNode(r.Cubes[1])

	// Cube 3 is added untouched; the second placement lands on cube 2.
	r.Cubes[1].SetPosition(mgl32.Vec3{7, 0.25, 0})
	r.Cubes[1].CastShadow = true
	s.AddNode(r.Cubes[2])

	for _, b := range textureBindings {
		textures.Load(filepath.Join(assetsDir, b.file), func(t *scene.Texture) {
			b.apply(r, t)
		})
	}

	core.Logger().Info("scene built", "nodes", len(s.GetVisibleNodes()), "textures", len(textureBindings))
	return r
}
