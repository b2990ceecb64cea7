package scene

import "github.com/go-gl/mathgl/mgl32"

// ComputeTangents fills per-vertex tangent (along +U) and bitangent (along +V)
// vectors for normal and bump mapping. Triangles with zero UV area are
// skipped; the primitive constructors call this before returning.
func ComputeTangents(m *Mesh) {
	tangents := make([]mgl32.Vec3, len(m.Vertices))
	bitangents := make([]mgl32.Vec3, len(m.Vertices))

	for f := 0; f+2 < len(m.Indices); f += 3 {
		tri := [3]uint32{m.Indices[f], m.Indices[f+1], m.Indices[f+2]}
		p0, p1, p2 := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]

		edgeU := p1.Position.Sub(p0.Position)
		edgeV := p2.Position.Sub(p0.Position)
		st1 := p1.UV.Sub(p0.UV)
		st2 := p2.UV.Sub(p0.UV)

		det := st1.X()*st2.Y() - st2.X()*st1.Y()
		if det == 0 {
			continue
		}
		inv := 1 / det
		tan := edgeU.Mul(st2.Y() * inv).Sub(edgeV.Mul(st1.Y() * inv))
		bit := edgeV.Mul(st1.X() * inv).Sub(edgeU.Mul(st2.X() * inv))
		for _, idx := range tri {
			tangents[idx] = tangents[idx].Add(tan)
			bitangents[idx] = bitangents[idx].Add(bit)
		}
	}

	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Tangent = orthoTangent(v.Normal, tangents[i])
		bit := bitangents[i]
		if bit.LenSqr() < 1e-8 {
			bit = v.Normal.Cross(v.Tangent)
		}
		v.Bitangent = bit.Normalize()
	}
}

// orthoTangent removes the normal component from t. A degenerate result is
// replaced by whichever world axis is least aligned with n.
func orthoTangent(n, t mgl32.Vec3) mgl32.Vec3 {
	t = t.Sub(n.Mul(n.Dot(t)))
	if t.LenSqr() >= 1e-8 {
		return t.Normalize()
	}
	axis := mgl32.Vec3{1, 0, 0}
	if absf(n.X()) >= 0.9 {
		axis = mgl32.Vec3{0, 1, 0}
	}
	return axis.Sub(n.Mul(n.Dot(axis))).Normalize()
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
