package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrDegenerateCone = errors.New("cone needs at least 3 segments")

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

// Cone builds a closed triangular fan. Vertex 0 is the apex at (0,0,height),
// vertices 1..N lie on the base circle in the z=0 plane starting at angle 0.
// Face i joins the apex with base vertex i and its successor.
func Cone(radius, height float64, segments int) (Mesh, error) {
	if segments < 3 {
		return Mesh{}, fmt.Errorf("cone r=%g h=%g n=%d: %w", radius, height, segments, ErrDegenerateCone)
	}

	verts := make([]mgl64.Vec3, 0, segments+1)
	verts = append(verts, mgl64.Vec3{0, 0, height})
	for i := range segments {
		a := 2 * math.Pi * float64(i) / float64(segments)
		verts = append(verts, mgl64.Vec3{radius * math.Cos(a), radius * math.Sin(a), 0})
	}

	faces := make([][3]int, segments)
	for i := range segments {
		faces[i] = [3]int{0, 1 + i, 1 + (i+1)%segments}
	}

	return Mesh{Vertices: verts, Faces: faces}, nil
}

// Validate reports out of range or repeated face indices.
func (m Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d: index %d out of range [0,%d)", i, idx, n)
			}
		}
		if f[0] == f[1] || f[1] == f[2] || f[0] == f[2] {
			return fmt.Errorf("face %d: repeated index %v", i, f)
		}
	}
	return nil
}

// Square returns a unit square in the xy plane centered on the origin, split
// in two triangles.
func Square(size float64) Mesh {
	h := size * .5
	return Mesh{
		Vertices: []mgl64.Vec3{
			{-h, -h, 0},
			{h, -h, 0},
			{h, h, 0},
			{-h, h, 0},
		},
		Faces: [][3]int{{0, 1, 2}, {0, 2, 3}},
	}
}
