package scene

// Scope remembers the subtrees created on behalf of one owner so they can be
// released together.
type Scope struct {
	g   *Graph
	ids []NodeID
}

func NewScope(g *Graph) *Scope {
	return &Scope{g: g}
}

// Track records id as owned by the scope and returns it.
func (s *Scope) Track(id NodeID) NodeID {
	s.ids = append(s.ids, id)
	return id
}

// Len counts tracked nodes that are still alive.
func (s *Scope) Len() int {
	var n int
	for _, id := range s.ids {
		if s.g.Alive(id) {
			n++
		}
	}
	return n
}

// Dispose frees every tracked subtree that is still alive and returns how
// many were released.
func (s *Scope) Dispose() int {
	var n int
	for i := len(s.ids) - 1; i >= 0; i-- {
		id := s.ids[i]
		if !s.g.Alive(id) {
			continue
		}
		if err := s.g.FreeTree(id); err == nil {
			n++
		}
	}
	s.ids = s.ids[:0]
	return n
}
