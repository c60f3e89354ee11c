package geometry_test

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/geometry"
)

func TestCone(t *testing.T) {
	tests := []struct {
		name     string
		radius   float64
		height   float64
		segments int
		wantErr  bool
	}{
		{name: "triangle base", radius: 1, height: 2, segments: 3},
		{name: "arrow tip", radius: 0.5, height: 1, segments: 8},
		{name: "smooth", radius: 2, height: 0.1, segments: 64},
		{name: "two segments", radius: 1, height: 1, segments: 2, wantErr: true},
		{name: "zero segments", radius: 1, height: 1, segments: 0, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := geometry.Cone(tt.radius, tt.height, tt.segments)
			if err != nil {
				if !tt.wantErr {
					t.Fatalf("Cone() failed: %v", err)
				}
				if !errors.Is(err, geometry.ErrDegenerateCone) {
					t.Errorf("Cone() error = %v, want ErrDegenerateCone", err)
				}
				return
			}
			if tt.wantErr {
				t.Fatal("Cone() succeeded unexpectedly")
			}
			if got := len(m.Vertices); got != tt.segments+1 {
				t.Errorf("vertices = %d, want %d", got, tt.segments+1)
			}
			if got := len(m.Faces); got != tt.segments {
				t.Errorf("faces = %d, want %d", got, tt.segments)
			}
			if err := m.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
			if !m.Vertices[0].ApproxEqual(mgl64.Vec3{0, 0, tt.height}) {
				t.Errorf("apex = %v", m.Vertices[0])
			}
			for i, f := range m.Faces {
				want := [3]int{0, 1 + i, 1 + (i+1)%tt.segments}
				if f != want {
					t.Errorf("face %d = %v, want %v", i, f, want)
				}
			}
			// last face wraps back to the first base vertex
			if last := m.Faces[tt.segments-1]; last[2] != 1 {
				t.Errorf("last face = %v, does not close the fan", last)
			}
			for i, v := range m.Vertices[1:] {
				if math.Abs(v.Z()) > 1e-12 {
					t.Errorf("base vertex %d off plane: %v", i, v)
				}
				if r := math.Hypot(v.X(), v.Y()); math.Abs(r-tt.radius) > 1e-9 {
					t.Errorf("base vertex %d radius %g, want %g", i, r, tt.radius)
				}
			}
		})
	}
}

func TestConeDeterministic(t *testing.T) {
	a, _ := geometry.Cone(0.5, 1, 8)
	b, _ := geometry.Cone(0.5, 1, 8)
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs: %v != %v", i, a.Vertices[i], b.Vertices[i])
		}
	}
}

func TestAlignZ(t *testing.T) {
	tests := []struct {
		name   string
		dir    mgl64.Vec3
		wantOK bool
	}{
		{name: "x", dir: mgl64.Vec3{5, 0, 0}, wantOK: true},
		{name: "diagonal", dir: mgl64.Vec3{1, 2, 3}, wantOK: true},
		{name: "parallel", dir: mgl64.Vec3{0, 0, 2}, wantOK: true},
		{name: "anti parallel", dir: mgl64.Vec3{0, 0, -1}, wantOK: true},
		{name: "zero", dir: mgl64.Vec3{}, wantOK: false},
		{name: "nan", dir: mgl64.Vec3{math.NaN(), 0, 0}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angle, axis, ok := geometry.AlignZ(tt.dir)
			if ok != tt.wantOK {
				t.Fatalf("AlignZ() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if math.IsNaN(angle) || !geometry.Finite(axis) {
				t.Fatalf("AlignZ() produced NaN: %v %v", angle, axis)
			}
			got := geometry.TransformPoint(geometry.Rotation(angle, axis), geometry.AxisZ)
			want := tt.dir.Normalize()
			if !got.ApproxEqualThreshold(want, 1e-9) {
				t.Errorf("rotated +Z = %v, want %v", got, want)
			}
		})
	}
}
