package behaviortree

// Tree owns a built root node, its per-node state slab, its blackboard, and
// its tick counter, and exposes Tick as the only way to advance it.
type Tree[A any, C any] struct {
	root  Node[A, C]
	slab  *StateSlab
	bb    *Blackboard
	ticks uint64
}

// NewTree constructs a Tree over root, sizing the state slab from root's
// Size (minimum 1) and starting with an empty blackboard and a zero tick
// counter.
func NewTree[A any, C any](root Node[A, C]) *Tree[A, C] {
	return &Tree[A, C]{
		root: root,
		slab: NewStateSlab(Size(&root)),
		bb:   NewBlackboard(),
	}
}

// Tick advances the tick counter by delta (saturating), builds a
// TickContext around bb/rng, and evaluates the root at id 0. observer may be
// nil, in which case events are discarded. rng may be nil unless the tree
// takes a path that requires one, in which case the evaluator panics with
// *RNGError.
func (t *Tree[A, C]) Tick(delta uint32, rng RNG, actions ActionHandler[A], conditions ConditionHandler[C], observer Observer) Status {
	if observer == nil {
		observer = nopObserver
	}
	t.ticks = saturatingAddU64(t.ticks, uint64(delta))
	ctx := &TickContext{Tick: t.ticks, Delta: delta, BB: t.bb, RNG: rng}
	return tick(&t.root, 0, t.slab, ctx, actions, conditions, observer)
}

// Blackboard returns the tree's blackboard, for out-of-band reads and for
// seeding values between ticks.
func (t *Tree[A, C]) Blackboard() *Blackboard { return t.bb }

// Reset clears every node's state and the tick counter, leaving the
// blackboard untouched.
func (t *Tree[A, C]) Reset() {
	t.slab.ResetAll()
	t.ticks = 0
}

// ResetAll performs Reset and additionally clears the blackboard, bringing
// the tree to a state indistinguishable from a freshly constructed copy.
func (t *Tree[A, C]) ResetAll() {
	t.Reset()
	t.bb.Clear()
}

// TickCount returns the tree's accumulated tick counter.
func (t *Tree[A, C]) TickCount() uint64 { return t.ticks }

// NodeCount returns the number of pre-order ids the tree occupies (the state
// slab's length).
func (t *Tree[A, C]) NodeCount() int { return t.slab.Len() }

// Root returns the tree's root node for inspection.
func (t *Tree[A, C]) Root() *Node[A, C] { return &t.root }

func saturatingAddU64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}
