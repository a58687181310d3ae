package behaviortree

// NodeState is the resumption record held for one node id. All fields
// default to zero/unset; Reset clears every field. SelectedChild and
// RandomSelection distinguish "index 0 was picked" from "nothing picked
// yet" with an explicit set flag rather than a sentinel index, since 0 is a
// valid child index.
type NodeState struct {
	RunningChild int // Sequence/Selector resumption index

	TickCounter    uint32 // Wait/Cooldown/Timeout accumulator
	IterationCount uint32 // Repeat/Retry counter

	SelectedChild    int // UtilitySelector sticky selection
	SelectedChildSet bool

	RandomSelection    int // RandomSelector/WeightedSelector sticky selection
	RandomSelectionSet bool
}

// Reset clears every field of s to its zero/unset default.
func (s *NodeState) Reset() {
	*s = NodeState{}
}

// StateSlab is the per-node resumption state, indexed by pre-order id. Its
// length always equals the owning tree's node count.
type StateSlab struct {
	states []NodeState
}

// NewStateSlab allocates a slab sized for size nodes (minimum 1).
func NewStateSlab(size int) *StateSlab {
	if size < 1 {
		size = 1
	}
	return &StateSlab{states: make([]NodeState, size)}
}

// Len returns the slab's length (the tree's node count).
func (s *StateSlab) Len() int { return len(s.states) }

// At returns a mutable pointer to the state record for id. It panics if id
// is out of range, the same way slice indexing would; the evaluator never
// constructs an out-of-range id so this is an invariant check, not a
// tick-time condition.
func (s *StateSlab) At(id int) *NodeState {
	return &s.states[id]
}

// ResetLocal clears only the state at id.
func (s *StateSlab) ResetLocal(id int) {
	s.states[id].Reset()
}

// ResetSubtree clears the state at id and every descendant, given the
// subtree's size (as returned by Size on the node at id).
func (s *StateSlab) ResetSubtree(id, size int) {
	for i := id; i < id+size; i++ {
		s.states[i].Reset()
	}
}

// ResetAll clears every entry in the slab.
func (s *StateSlab) ResetAll() {
	for i := range s.states {
		s.states[i].Reset()
	}
}
