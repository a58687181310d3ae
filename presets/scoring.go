package presets

import "github.com/brensch/behaviortree"

// sentryActions names the three UtilityAction fits SentryGuard chooses
// among, expressed as considerations over the shared blackboard keys: an
// approach favors a close target, holding favors controlled space, and
// retreating favors low health and a near threat, falling to zero at full
// health or at the farthest threat distance (momentum-free; the guard
// re-evaluates fresh every tick rather than sticking to its last pick).
var sentryActions = []behaviortree.UtilityAction{
	behaviortree.NewUtilityAction("approach", 1, 0,
		behaviortree.NewConsideration(KeyTargetDistance, 0, 1, behaviortree.Linear(-1, 1), 1),
	),
	behaviortree.NewUtilityAction("hold", 1, 0,
		behaviortree.NewConsideration(KeySpaceControl, 0, 1, behaviortree.Linear(1, 0), 1),
	),
	behaviortree.NewUtilityAction("retreat", 1, 0,
		behaviortree.NewConsideration(KeyHealth, 0, 1, behaviortree.Linear(-1, 1), 1),
		behaviortree.NewConsideration(KeyThreatDistance, 0, 1, behaviortree.Linear(-1, 1), 1),
	),
}

// ScoreSentryActions runs the Reasoner's scoring projection over
// sentryActions against bb and writes each action's score back onto the
// blackboard key SentryGuard's UtilitySelector reads, so the richer
// multi-consideration reasoning and the tree's fast key-based argmax stay
// in sync every tick.
func ScoreSentryActions(bb *behaviortree.Blackboard) {
	reasoner := behaviortree.NewReasoner(behaviortree.HighestScore())
	scored := reasoner.ScoreAll(sentryActions, bb, -1)

	keys := map[int]uint32{0: KeyApproachScore, 1: KeyHoldScore, 2: KeyRetreatScore}
	for _, s := range scored {
		if key, ok := keys[s.Index]; ok {
			bb.Set(key, behaviortree.FixedFromFloat(s.Score))
		}
	}
}
