package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/roffe/empol/pkg/geometry"
)

var (
	ErrInvalidNode   = errors.New("invalid or freed node")
	ErrAttached      = errors.New("node already has a parent")
	ErrStillAttached = errors.New("node must be detached before it is freed")
	ErrCycle         = errors.New("attach would create a cycle")
	ErrRoot          = errors.New("root node cannot be moved or freed")
)

// Drawable is the payload of a node. The renderer type switches on it.
type Drawable interface{}

// NodeID addresses a slot in the arena. The generation makes ids of freed
// slots invalid once the slot is reused.
type NodeID struct {
	index uint32
	gen   uint32
}

func (id NodeID) IsZero() bool { return id.gen == 0 }

func (id NodeID) String() string { return fmt.Sprintf("node(%d/%d)", id.index, id.gen) }

type node struct {
	gen      uint32
	alive    bool
	parent   NodeID
	children []NodeID
	local    mgl64.Mat4
	visible  bool
	depth    int
	item     Drawable
}

// Graph is an arena backed transform tree. Not safe for concurrent use, all
// access happens on the UI thread.
type Graph struct {
	nodes []node
	free  []uint32
	root  NodeID
	live  int
}

func New() *Graph {
	g := &Graph{}
	g.root = g.alloc(nil)
	return g
}

func (g *Graph) Root() NodeID { return g.root }

// Len returns the number of live nodes, root included.
func (g *Graph) Len() int { return g.live }

func (g *Graph) alloc(item Drawable) NodeID {
	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		g.nodes = append(g.nodes, node{})
		idx = uint32(len(g.nodes) - 1)
	}
	n := &g.nodes[idx]
	n.gen++
	n.alive = true
	n.parent = NodeID{}
	n.children = n.children[:0]
	n.local = mgl64.Ident4()
	n.visible = true
	n.depth = 0
	n.item = item
	g.live++
	return NodeID{index: idx, gen: n.gen}
}

func (g *Graph) get(id NodeID) (*node, error) {
	if id.gen == 0 || int(id.index) >= len(g.nodes) {
		return nil, fmt.Errorf("%s: %w", id, ErrInvalidNode)
	}
	n := &g.nodes[id.index]
	if !n.alive || n.gen != id.gen {
		return nil, fmt.Errorf("%s: %w", id, ErrInvalidNode)
	}
	return n, nil
}

// Alive reports whether id refers to a live node.
func (g *Graph) Alive(id NodeID) bool {
	_, err := g.get(id)
	return err == nil
}

// Create makes a detached node.
func (g *Graph) Create(item Drawable) NodeID {
	return g.alloc(item)
}

// Add creates a node and attaches it to parent.
func (g *Graph) Add(parent NodeID, item Drawable) (NodeID, error) {
	if _, err := g.get(parent); err != nil {
		return NodeID{}, err
	}
	id := g.alloc(item)
	if err := g.Attach(id, parent); err != nil {
		g.Free(id)
		return NodeID{}, err
	}
	return id, nil
}

// Attach makes child the last child of parent.
func (g *Graph) Attach(child, parent NodeID) error {
	c, err := g.get(child)
	if err != nil {
		return err
	}
	if _, err := g.get(parent); err != nil {
		return err
	}
	if child == g.root {
		return ErrRoot
	}
	for a := parent; !a.IsZero(); a = g.nodes[a.index].parent {
		if a == child {
			return fmt.Errorf("%s under %s: %w", child, parent, ErrCycle)
		}
	}
	if !c.parent.IsZero() {
		return fmt.Errorf("%s: %w", child, ErrAttached)
	}
	c.parent = parent
	p := &g.nodes[parent.index]
	p.children = append(p.children, child)
	return nil
}

// Detach removes id from its parent. Detaching a detached node is a no-op.
func (g *Graph) Detach(id NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	if id == g.root {
		return ErrRoot
	}
	if n.parent.IsZero() {
		return nil
	}
	p := &g.nodes[n.parent.index]
	if i := slices.Index(p.children, id); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	n.parent = NodeID{}
	return nil
}

// Free releases a detached node. Its children are left detached.
func (g *Graph) Free(id NodeID) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	if id == g.root {
		return ErrRoot
	}
	if !n.parent.IsZero() {
		return fmt.Errorf("%s: %w", id, ErrStillAttached)
	}
	for _, c := range n.children {
		g.nodes[c.index].parent = NodeID{}
	}
	n.children = n.children[:0]
	n.alive = false
	n.item = nil
	g.free = append(g.free, id.index)
	g.live--
	return nil
}

// FreeTree detaches id and frees it along with all of its descendants.
func (g *Graph) FreeTree(id NodeID) error {
	if err := g.Detach(id); err != nil {
		return err
	}
	n, _ := g.get(id)
	for _, c := range slices.Clone(n.children) {
		if err := g.FreeTree(c); err != nil {
			return err
		}
	}
	return g.Free(id)
}

// Parent returns the parent of id, zero for detached nodes and the root.
func (g *Graph) Parent(id NodeID) NodeID {
	n, err := g.get(id)
	if err != nil {
		return NodeID{}
	}
	return n.parent
}

func (g *Graph) Children(id NodeID) []NodeID {
	n, err := g.get(id)
	if err != nil {
		return nil
	}
	return slices.Clone(n.children)
}

func (g *Graph) Item(id NodeID) Drawable {
	n, err := g.get(id)
	if err != nil {
		return nil
	}
	return n.item
}

func (g *Graph) SetItem(id NodeID, item Drawable) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.item = item
	return nil
}

func (g *Graph) Local(id NodeID) mgl64.Mat4 {
	n, err := g.get(id)
	if err != nil {
		return mgl64.Ident4()
	}
	return n.local
}

func (g *Graph) SetLocal(id NodeID, m mgl64.Mat4) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.local = m
	return nil
}

func (g *Graph) ResetTransform(id NodeID) error {
	return g.SetLocal(id, mgl64.Ident4())
}

// Translate applies a translation on top of the current local transform.
func (g *Graph) Translate(id NodeID, v mgl64.Vec3) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.local = geometry.Translation(v).Mul4(n.local)
	return nil
}

// Rotate applies a rotation of angle degrees around axis on top of the
// current local transform.
func (g *Graph) Rotate(id NodeID, angle float64, axis mgl64.Vec3) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.local = geometry.Rotation(angle, axis).Mul4(n.local)
	return nil
}

func (g *Graph) SetVisible(id NodeID, v bool) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.visible = v
	return nil
}

func (g *Graph) Visible(id NodeID) bool {
	n, err := g.get(id)
	return err == nil && n.visible
}

// EffectiveVisible is true when id and every ancestor are visible and the
// chain reaches the root.
func (g *Graph) EffectiveVisible(id NodeID) bool {
	for a := id; ; {
		n, err := g.get(a)
		if err != nil || !n.visible {
			return false
		}
		if a == g.root {
			return true
		}
		if n.parent.IsZero() {
			return false
		}
		a = n.parent
	}
}

func (g *Graph) SetDepth(id NodeID, depth int) error {
	n, err := g.get(id)
	if err != nil {
		return err
	}
	n.depth = depth
	return nil
}

func (g *Graph) Depth(id NodeID) int {
	n, err := g.get(id)
	if err != nil {
		return 0
	}
	return n.depth
}

// World returns the product of the local transforms from the root down to id.
func (g *Graph) World(id NodeID) mgl64.Mat4 {
	m := mgl64.Ident4()
	for a := id; !a.IsZero(); {
		n, err := g.get(a)
		if err != nil {
			break
		}
		m = n.local.Mul4(m)
		a = n.parent
	}
	return m
}

// Visit is called by Walk for every visible node reachable from the root.
// depth is the inherited render order hint, a child without its own bias
// takes its parent's value.
type Visit func(id NodeID, world mgl64.Mat4, depth int, item Drawable)

// Walk visits visible nodes depth first in child order. Hidden nodes prune
// their subtree.
func (g *Graph) Walk(fn Visit) {
	g.walk(g.root, mgl64.Ident4(), 0, fn)
}

func (g *Graph) walk(id NodeID, parent mgl64.Mat4, depth int, fn Visit) {
	n := &g.nodes[id.index]
	if !n.visible {
		return
	}
	world := parent.Mul4(n.local)
	if n.depth != 0 {
		depth = n.depth
	}
	if n.item != nil {
		fn(id, world, depth, n.item)
	}
	for _, c := range n.children {
		g.walk(c, world, depth, fn)
	}
}
