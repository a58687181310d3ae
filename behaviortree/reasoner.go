package behaviortree

import "sort"

type selectionKind int

const (
	methodHighestScore selectionKind = iota
	methodWeightedRandom
	methodTopN
)

// SelectionMethod names how a Reasoner picks one action among many.
type SelectionMethod struct {
	kind selectionKind
	n    int
}

// HighestScore selects the argmax over scores, ties broken by first
// occurrence.
func HighestScore() SelectionMethod { return SelectionMethod{kind: methodHighestScore} }

// WeightedRandom draws a uniform sample and selects proportionally to
// (clamped non-negative) score.
func WeightedRandom() SelectionMethod { return SelectionMethod{kind: methodWeightedRandom} }

// TopN restricts the draw to the n highest-scoring actions (clamped into
// [1, |actions|]) and picks uniformly among them.
func TopN(n int) SelectionMethod { return SelectionMethod{kind: methodTopN, n: n} }

// ScoredAction pairs an action's original index with its score.
type ScoredAction struct {
	Index int
	Score float64
}

// Reasoner selects one utility action among many by its configured Method.
type Reasoner struct {
	Method SelectionMethod
}

// NewReasoner constructs a Reasoner using method.
func NewReasoner(method SelectionMethod) Reasoner {
	return Reasoner{Method: method}
}

// ScoreAll scores every action (currentIndex, or -1 if none, marks the
// action ticked with isCurrent=true for momentum) and returns the results
// sorted descending by score; ties preserve original index order.
func (r Reasoner) ScoreAll(actions []UtilityAction, bb *Blackboard, currentIndex int) []ScoredAction {
	scored := make([]ScoredAction, len(actions))
	for i, a := range actions {
		scored[i] = ScoredAction{Index: i, Score: a.Score(bb, i == currentIndex)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}

// Select chooses one action index from actions according to r.Method.
// rng may be nil for HighestScore; WeightedRandom and TopN draw from it and
// panic with *RNGError if it is nil (WeightedRandom only draws when the
// total clamped score is positive).
func (r Reasoner) Select(actions []UtilityAction, bb *Blackboard, currentIndex int, rng RNG) int {
	if len(actions) == 0 {
		return 0
	}
	switch r.Method.kind {
	case methodWeightedRandom:
		return r.selectWeightedRandom(actions, bb, currentIndex, rng)
	case methodTopN:
		return r.selectTopN(actions, bb, currentIndex, rng)
	default:
		return r.selectHighestScore(actions, bb, currentIndex)
	}
}

func (r Reasoner) selectHighestScore(actions []UtilityAction, bb *Blackboard, currentIndex int) int {
	best := 0
	bestScore := actions[0].Score(bb, 0 == currentIndex)
	for i := 1; i < len(actions); i++ {
		s := actions[i].Score(bb, i == currentIndex)
		if s > bestScore {
			best, bestScore = i, s
		}
	}
	return best
}

func (r Reasoner) selectWeightedRandom(actions []UtilityAction, bb *Blackboard, currentIndex int, rng RNG) int {
	scores := make([]float64, len(actions))
	total := 0.0
	for i, a := range actions {
		s := a.Score(bb, i == currentIndex)
		if s < 0 {
			s = 0
		}
		scores[i] = s
		total += s
	}
	if total <= 0 {
		return 0
	}
	if rng == nil {
		panic(&RNGError{Node: "Reasoner.WeightedRandom"})
	}

	target := unitFromUint32(rng.NextUint32()) * total
	cumulative := 0.0
	for i, s := range scores {
		cumulative += s
		if cumulative > target {
			return i
		}
	}
	return len(actions) - 1
}

func (r Reasoner) selectTopN(actions []UtilityAction, bb *Blackboard, currentIndex int, rng RNG) int {
	if rng == nil {
		panic(&RNGError{Node: "Reasoner.TopN"})
	}

	n := r.Method.n
	if n < 1 {
		n = 1
	}
	if n > len(actions) {
		n = len(actions)
	}

	scored := r.ScoreAll(actions, bb, currentIndex)
	pick := int(rng.NextUint32() % uint32(n))
	return scored[pick].Index
}
