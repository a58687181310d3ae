package behaviortree

// TickContext carries everything one tick() call needs and lives only for
// the duration of that call: the tree's tick counter (after advancing by
// Δ), the Δ itself, a reference to the tree's blackboard, and an optional
// borrowed RNG. Handlers must not retain the Blackboard reference or RNG
// beyond the call that gave it to them.
type TickContext struct {
	Tick  uint64
	Delta uint32
	BB    *Blackboard
	RNG   RNG // nil if the caller supplied none
}
