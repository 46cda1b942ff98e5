package shape

// IsDirectlyConstrained reports whether the shape itself carries a
// constraint trait.
func IsDirectlyConstrained(s *Shape) bool {
	for _, t := range s.Traits {
		if t.Constraint() {
			return true
		}
	}
	return false
}

// CanReachConstrainedShape reports whether s is constrained, either directly
// or through any member reachable from it. Required members count as
// constraints of the enclosing structure. Cycles are handled.
func (m *Model) CanReachConstrainedShape(s *Shape) bool {
	return m.canReach(s, make(map[ShapeID]bool))
}

func (m *Model) canReach(s *Shape, seen map[ShapeID]bool) bool {
	if s == nil || seen[s.ID] {
		return false
	}
	seen[s.ID] = true
	if IsDirectlyConstrained(s) {
		return true
	}
	for _, mem := range s.Members {
		if mem.IsRequired() {
			return true
		}
		if target, ok := m.shapes[mem.Target]; ok && m.canReach(target, seen) {
			return true
		}
	}
	return false
}

// Reachability is the set of shapes reachable from operation inputs.
type Reachability struct {
	set map[ShapeID]struct{}
}

// InputReachability walks every operation input of the model, following
// member targets, and returns the set of shapes that were visited.
func (m *Model) InputReachability() *Reachability {
	r := &Reachability{set: make(map[ShapeID]struct{})}
	for _, op := range m.ShapesOf(KindOperation) {
		if op.Input != "" {
			m.walk(op.Input, r.set)
		}
	}
	return r
}

func (m *Model) walk(id ShapeID, seen map[ShapeID]struct{}) {
	if _, ok := seen[id]; ok {
		return
	}
	s, ok := m.shapes[id]
	if !ok {
		return
	}
	seen[id] = struct{}{}
	for _, mem := range s.Members {
		m.walk(mem.Target, seen)
	}
}

// Reachable reports whether the shape can appear in operation input.
func (r *Reachability) Reachable(id ShapeID) bool {
	if r == nil {
		return false
	}
	_, ok := r.set[id]
	return ok
}

// Len returns the number of reachable shapes.
func (r *Reachability) Len() int {
	if r == nil {
		return 0
	}
	return len(r.set)
}
