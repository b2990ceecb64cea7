package scene

import (
	"math"

	"lightlab/core"

	"github.com/go-gl/mathgl/mgl32"
)

// CreateSphere generates a UV sphere. U wraps around Y starting at -X,
// V runs from the south pole (0) to the north pole (1).
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	var vertices []core.Vertex
	var indices []uint32

	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi := float32(math.Sin(phi))
		cosPhi := float32(math.Cos(phi))

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2.0 * math.Pi / float64(segments)
			sinTheta := float32(math.Sin(theta))
			cosTheta := float32(math.Cos(theta))

			normal := mgl32.Vec3{-cosTheta * sinPhi, cosPhi, sinTheta * sinPhi}
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       mgl32.Vec2{float32(seg) / float32(segments), 1 - float32(ring)/float32(rings)},
				Color:    core.ColorWhite,
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			if ring != 0 {
				indices = append(indices, current, next, current+1)
			}
			if ring != rings-1 {
				indices = append(indices, current+1, next, next+1)
			}
		}
	}

	m := CreateMeshFromData("Sphere", vertices, indices)
	ComputeTangents(m)
	return m
}

// CreatePlane generates a width x height plane in the XY plane facing +Z.
func CreatePlane(width, height float32, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 1 {
		widthSegments = 1
	}
	if heightSegments < 1 {
		heightSegments = 1
	}

	var vertices []core.Vertex
	var indices []uint32

	halfW := width / 2.0
	halfH := height / 2.0
	cols := widthSegments + 1

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			vertices = append(vertices, core.Vertex{
				Position: mgl32.Vec3{-halfW + u*width, halfH - v*height, 0},
				Normal:   mgl32.Vec3{0, 0, 1},
				UV:       mgl32.Vec2{u, 1 - v},
				Color:    core.ColorWhite,
			})
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)

			indices = append(indices, a, b, d)
			indices = append(indices, b, c, d)
		}
	}

	m := CreateMeshFromData("Plane", vertices, indices)
	ComputeTangents(m)
	return m
}

// boxFace describes one face of a box by its outward normal and two
// in-plane axes with u x v = normal.
type boxFace struct {
	normal, u, v mgl32.Vec3
}

var boxFaces = []boxFace{
	{normal: mgl32.Vec3{1, 0, 0}, u: mgl32.Vec3{0, 0, -1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{-1, 0, 0}, u: mgl32.Vec3{0, 0, 1}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, -1}},
	{normal: mgl32.Vec3{0, -1, 0}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 0, 1}},
	{normal: mgl32.Vec3{0, 0, 1}, u: mgl32.Vec3{1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
	{normal: mgl32.Vec3{0, 0, -1}, u: mgl32.Vec3{-1, 0, 0}, v: mgl32.Vec3{0, 1, 0}},
}

// CreateBox generates an axis-aligned box centered on the origin with one
// full 0..1 UV square per face.
func CreateBox(width, height, depth float32) *Mesh {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}
	scale := func(v mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{v[0] * half[0], v[1] * half[1], v[2] * half[2]}
	}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)

	for _, f := range boxFaces {
		c := scale(f.normal)
		u := scale(f.u)
		v := scale(f.v)
		corners := [4]mgl32.Vec3{
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
		}
		uvs := [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

		base := uint32(len(vertices))
		for i := range corners {
			vertices = append(vertices, core.Vertex{
				Position: corners[i],
				Normal:   f.normal,
				UV:       uvs[i],
				Color:    core.ColorWhite,
			})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	m := CreateMeshFromData("Box", vertices, indices)
	ComputeTangents(m)
	return m
}
