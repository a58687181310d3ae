package main

import (
	"fmt"
	"math/rand"

	"github.com/brensch/behaviortree"
	"github.com/brensch/behaviortree/presets"
)

// nodeLabel is a pre-order node's fixed rendering metadata (depth for
// indentation, a human label derived from its Kind), computed once at
// World construction since neither changes tick to tick.
type nodeLabel struct {
	depth int
	label string
}

// World simulates a single NPC driven by the sentry/guard preset tree. Each
// Step perturbs the blackboard inputs a little, runs the Reasoner-driven
// scoring pass, ticks the tree, and returns the resulting trace.
type World struct {
	tree   *behaviortree.Tree[presets.Action, presets.Condition]
	labels map[int]nodeLabel
	rng    *rand.Rand

	health         float64
	spaceControl   float64
	threatDistance float64
	targetDistance float64
}

// NewWorld builds a fresh sentry-guard world seeded with mid-range inputs.
func NewWorld(seed int64) *World {
	root := presets.SentryGuard()
	tree := behaviortree.NewTree[presets.Action, presets.Condition](root)

	w := &World{
		tree:           tree,
		labels:         labelNodes(tree.Root(), 0, 0, make(map[int]nodeLabel)),
		rng:            rand.New(rand.NewSource(seed)),
		health:         0.8,
		spaceControl:   0.5,
		threatDistance: 0.6,
		targetDistance: 0.5,
	}
	return w
}

func labelNodes(n *behaviortree.Node[presets.Action, presets.Condition], id, depth int, out map[int]nodeLabel) map[int]nodeLabel {
	out[id] = nodeLabel{depth: depth, label: describeNode(n)}
	nextID := id + 1
	for i := range n.Children {
		out = labelNodes(&n.Children[i], nextID, depth+1, out)
		nextID += behaviortree.Size(&n.Children[i])
	}
	if n.Child != nil {
		out = labelNodes(n.Child, nextID, depth+1, out)
	}
	return out
}

func describeNode(n *behaviortree.Node[presets.Action, presets.Condition]) string {
	switch n.Kind {
	case behaviortree.KindAction:
		return fmt.Sprintf("Action(%s)", n.Action)
	case behaviortree.KindCondition:
		return fmt.Sprintf("Condition(%s)", n.Condition)
	case behaviortree.KindUtilitySelector:
		return "UtilitySelector"
	case behaviortree.KindSelector:
		return "Selector"
	case behaviortree.KindSequence:
		return "Sequence"
	case behaviortree.KindWait:
		return fmt.Sprintf("Wait(%d)", n.WaitTicks)
	case behaviortree.KindParallel:
		return "Parallel"
	case behaviortree.KindRandomSelector:
		return "RandomSelector"
	case behaviortree.KindWeightedSelector:
		return "WeightedSelector"
	case behaviortree.KindDecorator:
		return "Decorator"
	default:
		return "Node"
	}
}

// jitter nudges v by a random amount in [-spread, spread], clamped to [0,1].
func (w *World) jitter(v, spread float64) float64 {
	next := v + (w.rng.Float64()*2-1)*spread
	if next < 0 {
		return 0
	}
	if next > 1 {
		return 1
	}
	return next
}

// Step advances the simulated world one tick: walks its inputs, writes them
// and their derived scores to the blackboard, ticks the tree under a
// collecting observer, and returns the chosen action alongside its trace.
func (w *World) Step() (presets.Action, collectedTrace) {
	w.health = w.jitter(w.health, 0.08)
	w.spaceControl = w.jitter(w.spaceControl, 0.1)
	w.threatDistance = w.jitter(w.threatDistance, 0.12)
	w.targetDistance = w.jitter(w.targetDistance, 0.12)

	bb := w.tree.Blackboard()
	bb.Set(presets.KeyHealth, behaviortree.FixedFromFloat(w.health))
	bb.Set(presets.KeySpaceControl, behaviortree.FixedFromFloat(w.spaceControl))
	bb.Set(presets.KeyThreatDistance, behaviortree.FixedFromFloat(w.threatDistance))
	bb.Set(presets.KeyTargetDistance, behaviortree.FixedFromFloat(w.targetDistance))
	bb.Set(presets.KeyHealthLow, behaviortree.Bool(w.health < 0.2))

	presets.ScoreSentryActions(bb)

	obs := newCollectingObserver(w.labels)
	var chosen presets.Action
	actions := behaviortree.ActionTable[presets.Action]{
		presets.ActionApproach:     func(ctx *behaviortree.TickContext) behaviortree.Status { chosen = presets.ActionApproach; return behaviortree.Success },
		presets.ActionHoldPosition: func(ctx *behaviortree.TickContext) behaviortree.Status { chosen = presets.ActionHoldPosition; return behaviortree.Success },
		presets.ActionRetreat:      func(ctx *behaviortree.TickContext) behaviortree.Status { chosen = presets.ActionRetreat; return behaviortree.Success },
	}
	conditions := behaviortree.ConditionTable[presets.Condition]{}

	w.tree.Tick(1, nil, actions, conditions, obs)
	return chosen, obs.trace(w.tree.TickCount())
}
