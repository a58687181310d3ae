package behaviortree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReasonerHighestScore(t *testing.T) {
	bb := NewBlackboard()
	bb.Set(1, FixedFromFloat(0.2))
	bb.Set(2, FixedFromFloat(0.8))

	actions := []UtilityAction{
		NewUtilityAction("a", 1, 0, linearConsideration(1)),
		NewUtilityAction("b", 1, 0, linearConsideration(2)),
	}
	r := NewReasoner(HighestScore())
	assert.Equal(t, 1, r.Select(actions, bb, -1, nil))
}

func TestReasonerHighestScoreEquivalence(t *testing.T) {
	bb := NewBlackboard()
	bb.Set(1, FixedFromFloat(0.3))
	bb.Set(2, FixedFromFloat(0.9))
	bb.Set(3, FixedFromFloat(0.1))

	actions := []UtilityAction{
		NewUtilityAction("a", 1, 0, linearConsideration(1)),
		NewUtilityAction("b", 1, 0, linearConsideration(2)),
		NewUtilityAction("c", 1, 0, linearConsideration(3)),
	}
	r := NewReasoner(HighestScore())

	scored := r.ScoreAll(actions, bb, -1)
	selected := r.Select(actions, bb, -1, nil)
	assert.Equal(t, scored[0].Index, selected, "HighestScore().select equals argmax(score_all)")
}

func TestReasonerHighestScoreFirstTieWins(t *testing.T) {
	bb := NewBlackboard()
	bb.Set(1, FixedFromFloat(0.5))
	bb.Set(2, FixedFromFloat(0.5))

	actions := []UtilityAction{
		NewUtilityAction("a", 1, 0, linearConsideration(1)),
		NewUtilityAction("b", 1, 0, linearConsideration(2)),
	}
	r := NewReasoner(HighestScore())
	assert.Equal(t, 0, r.Select(actions, bb, -1, nil))
}

func TestReasonerTopN(t *testing.T) {
	bb := NewBlackboard()
	bb.Set(1, FixedFromFloat(0.1))
	bb.Set(2, FixedFromFloat(0.5))
	bb.Set(3, FixedFromFloat(0.9))

	actions := []UtilityAction{
		NewUtilityAction("a", 1, 0, linearConsideration(1)),
		NewUtilityAction("b", 1, 0, linearConsideration(2)),
		NewUtilityAction("c", 1, 0, linearConsideration(3)),
	}
	r := NewReasoner(TopN(2))
	idx := r.Select(actions, bb, -1, NewFixedRNG(1))
	assert.True(t, idx == 1 || idx == 2, "TopN(2) must pick among the two highest-scoring actions")
}

func TestReasonerTopNRequiresRNG(t *testing.T) {
	bb := NewBlackboard()
	actions := []UtilityAction{NewUtilityAction("a", 1, 0)}
	r := NewReasoner(TopN(1))
	assert.Panics(t, func() { r.Select(actions, bb, -1, nil) })
}

func TestReasonerWeightedRandomDistribution(t *testing.T) {
	bb := NewBlackboard()
	bb.Set(1, FixedFromFloat(0.1))
	bb.Set(2, FixedFromFloat(0.9))

	actions := []UtilityAction{
		NewUtilityAction("a", 1, 0, linearConsideration(1)),
		NewUtilityAction("b", 1, 0, linearConsideration(2)),
	}
	r := NewReasoner(WeightedRandom())

	draws := make([]uint32, 500)
	for i := range draws {
		draws[i] = uint32(i) * 8_589_934
	}
	rng := NewFixedRNG(draws...)

	high, low := 0, 0
	for i := 0; i < 200; i++ {
		if r.Select(actions, bb, -1, rng) == 1 {
			high++
		} else {
			low++
		}
	}
	assert.Greater(t, high, low, "expected the higher-scoring action selected more often")
}

func TestReasonerWeightedRandomZeroTotalReturnsZero(t *testing.T) {
	bb := NewBlackboard()
	actions := []UtilityAction{
		NewUtilityAction("a", 0, 0),
		NewUtilityAction("b", 0, 0),
	}
	r := NewReasoner(WeightedRandom())
	assert.Equal(t, 0, r.Select(actions, bb, -1, nil), "zero total never draws from the RNG")
}

func TestReasonerWeightedRandomRequiresRNGWhenPositive(t *testing.T) {
	bb := NewBlackboard()
	actions := []UtilityAction{NewUtilityAction("a", 1, 0)}
	r := NewReasoner(WeightedRandom())
	assert.Panics(t, func() { r.Select(actions, bb, -1, nil) })
}

func TestReasonerScoreAllSortedDescending(t *testing.T) {
	bb := NewBlackboard()
	bb.Set(1, FixedFromFloat(0.1))
	bb.Set(2, FixedFromFloat(0.9))

	actions := []UtilityAction{
		NewUtilityAction("a", 1, 0, linearConsideration(1)),
		NewUtilityAction("b", 1, 0, linearConsideration(2)),
	}
	r := NewReasoner(HighestScore())
	scored := r.ScoreAll(actions, bb, -1)
	assert.Equal(t, 1, scored[0].Index)
	assert.Equal(t, 0, scored[1].Index)
}
