package scene_test

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/scene"
)

func TestAttach(t *testing.T) {
	g := scene.New()
	a, err := g.Add(g.Root(), "a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := g.Add(a, "b")
	if err != nil {
		t.Fatal(err)
	}
	c, err := g.Add(b, "c")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		child   scene.NodeID
		parent  scene.NodeID
		wantErr error
	}{
		{name: "own ancestor", child: a, parent: c, wantErr: scene.ErrCycle},
		{name: "self", child: b, parent: b, wantErr: scene.ErrCycle},
		{name: "second parent", child: c, parent: a, wantErr: scene.ErrAttached},
		{name: "root", child: g.Root(), parent: a, wantErr: scene.ErrRoot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.Attach(tt.child, tt.parent)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Attach() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// a detached node can not be reattached below its own descendant
	if err := g.Detach(a); err != nil {
		t.Fatal(err)
	}
	if err := g.Attach(a, c); !errors.Is(err, scene.ErrCycle) {
		t.Errorf("Attach() = %v, want ErrCycle", err)
	}
	if err := g.Attach(a, g.Root()); err != nil {
		t.Errorf("Attach() back to root failed: %v", err)
	}
}

func TestFree(t *testing.T) {
	g := scene.New()
	parent, _ := g.Add(g.Root(), nil)
	child, _ := g.Add(parent, "child")

	if err := g.Free(parent); !errors.Is(err, scene.ErrStillAttached) {
		t.Fatalf("Free() attached = %v, want ErrStillAttached", err)
	}
	if err := g.Detach(parent); err != nil {
		t.Fatal(err)
	}
	if err := g.Free(parent); err != nil {
		t.Fatalf("Free() = %v", err)
	}
	if g.Alive(parent) {
		t.Error("parent still alive after Free")
	}
	if !g.Alive(child) {
		t.Fatal("child freed together with parent")
	}
	if p := g.Parent(child); !p.IsZero() {
		t.Errorf("orphan parent = %v, want none", p)
	}

	// reused slot must not resurrect the stale id
	fresh := g.Create("fresh")
	if g.Alive(parent) {
		t.Errorf("stale id %v alive after slot reuse by %v", parent, fresh)
	}
	if err := g.SetVisible(parent, false); !errors.Is(err, scene.ErrInvalidNode) {
		t.Errorf("SetVisible() stale = %v, want ErrInvalidNode", err)
	}
}

func TestFreeTree(t *testing.T) {
	g := scene.New()
	top, _ := g.Add(g.Root(), nil)
	for range 3 {
		n, _ := g.Add(top, "leaf")
		g.Add(n, "leaf")
	}
	if g.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", g.Len())
	}
	if err := g.FreeTree(top); err != nil {
		t.Fatal(err)
	}
	if g.Len() != 1 {
		t.Errorf("Len() after FreeTree = %d, want 1", g.Len())
	}
	if n := len(g.Children(g.Root())); n != 0 {
		t.Errorf("root children = %d, want 0", n)
	}
}

func TestWorldAndWalk(t *testing.T) {
	g := scene.New()
	axes, _ := g.Add(g.Root(), nil)
	g.Rotate(axes, -90, mgl64.Vec3{0, 1, 0})
	leaf, _ := g.Add(axes, "leaf")
	g.Translate(leaf, mgl64.Vec3{1, 0, 0})

	p := g.World(leaf).Mul4x1(mgl64.Vec4{0, 0, 0, 1}).Vec3()
	// x maps onto +z after -90 degrees around y
	if !p.ApproxEqualThreshold(mgl64.Vec3{0, 0, 1}, 1e-9) {
		t.Errorf("world origin = %v, want (0,0,1)", p)
	}

	var seen int
	g.Walk(func(id scene.NodeID, _ mgl64.Mat4, _ int, _ scene.Drawable) { seen++ })
	if seen != 1 {
		t.Errorf("Walk() visited %d drawables, want 1", seen)
	}
	g.SetVisible(axes, false)
	seen = 0
	g.Walk(func(id scene.NodeID, _ mgl64.Mat4, _ int, _ scene.Drawable) { seen++ })
	if seen != 0 {
		t.Errorf("Walk() visited %d drawables under hidden parent", seen)
	}
	if g.EffectiveVisible(leaf) {
		t.Error("EffectiveVisible() true under hidden parent")
	}
	if !g.Visible(leaf) {
		t.Error("Visible() own flag changed by parent")
	}
}

func TestScope(t *testing.T) {
	g := scene.New()
	s := scene.NewScope(g)
	a := s.Track(g.Create("a"))
	g.Attach(a, g.Root())
	b, _ := g.Add(g.Root(), nil)
	s.Track(b)
	g.Add(b, "child")

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if n := s.Dispose(); n != 2 {
		t.Errorf("Dispose() = %d, want 2", n)
	}
	if g.Len() != 1 {
		t.Errorf("graph Len() = %d after Dispose, want 1", g.Len())
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Dispose", s.Len())
	}
}
