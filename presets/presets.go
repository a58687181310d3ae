// Package presets provides illustrative factory trees over a shared action
// and condition vocabulary. They are not part of the behaviortree module's
// contract (preset trees are external collaborators, not engine internals),
// but they exercise the engine the way a real embedding frontend would, and
// give the demo binary something to tick.
package presets

import "github.com/brensch/behaviortree"

// Action identifies an NPC action. Kept as a small string enum so a
// handler table (behaviortree.ActionTable) can dispatch on it directly.
type Action string

const (
	ActionPatrol       Action = "patrol"
	ActionChaseTarget  Action = "chase_target"
	ActionFleeToCover  Action = "flee_to_cover"
	ActionHoldPosition Action = "hold_position"
	ActionApproach     Action = "approach"
	ActionRetreat      Action = "retreat"
)

// Condition identifies an NPC condition check.
type Condition string

const (
	ConditionTargetVisible Condition = "target_visible"
	ConditionHealthLow     Condition = "health_low"
)

// Blackboard keys shared by the preset trees and the demo world that drives
// them. Values are written by the embedding frontend once per tick before
// calling Tree.Tick.
const (
	KeyHealth         uint32 = 1 // Fixed, 0..1 fraction of max health
	KeySpaceControl   uint32 = 2 // Fixed, 0..1 fraction of reachable board controlled, grounded on voronoi area-control scoring
	KeyThreatDistance uint32 = 3 // Fixed, 0..1 normalized distance to the nearest threat
	KeyTargetDistance uint32 = 4 // Fixed, 0..1 normalized distance to the current target
	KeyHealthLow      uint32 = 5 // Bool, derived from KeyHealth each tick by the world before Tick

	// KeyApproachScore, KeyHoldScore, and KeyRetreatScore are the raw scores
	// SentryGuard's UtilitySelector reads directly (UtilitySelector scores
	// a blackboard key, not a Consideration), so the richer multi-factor
	// reasoning lives one layer up: ScoreSentryActions runs the Reasoner
	// over named considerations and writes its output here once per tick.
	KeyApproachScore uint32 = 100
	KeyHoldScore     uint32 = 101
	KeyRetreatScore  uint32 = 102
)

// PatrolChaseFlee builds a Selector that flees toward open space when
// health is low, chases a visible target otherwise, and falls back to
// patrolling. It is grounded on voronoi.go's area-control scoring: the
// world is expected to favor retreat directions with a higher KeySpaceControl
// reading before this tree is ticked.
func PatrolChaseFlee() behaviortree.Node[Action, Condition] {
	return behaviortree.NewBuilder[Action, Condition]().
		Selector().
		Sequence().
		Guard(KeyHealthLow).
		Action(ActionFleeToCover).
		End().
		Sequence().
		Condition(ConditionTargetVisible).
		Action(ActionChaseTarget).
		End().
		Action(ActionPatrol).
		End().
		Build()
}

// SentryGuard builds a UtilitySelector among approach/hold/retreat, the way
// a turret or stationary guard NPC would reason about engaging a target.
// It is grounded on maxn.go's per-actor utility comparison, generalized
// from a multi-agent game-tree search down to a single-tick utility pick
// over three precomputed scores (see ScoreSentryActions).
func SentryGuard() behaviortree.Node[Action, Condition] {
	return behaviortree.NewBuilder[Action, Condition]().
		UtilitySelector().
		Action(ActionApproach).
		UtilityID(KeyApproachScore).
		Action(ActionHoldPosition).
		UtilityID(KeyHoldScore).
		Action(ActionRetreat).
		UtilityID(KeyRetreatScore).
		End().
		Build()
}
