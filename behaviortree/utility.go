package behaviortree

import "math"

// UtilityAction scores a named action as the momentum-biased geometric mean
// of its considerations. The product form lets any consideration veto the
// action with a 0; the geometric mean keeps scale comparable across actions
// with different consideration counts; momentum gives hysteresis against
// rapid oscillation between near-tied actions.
type UtilityAction struct {
	Name           string
	Considerations []Consideration
	Weight         float64
	Momentum       float64
}

// NewUtilityAction constructs a UtilityAction.
func NewUtilityAction(name string, weight, momentum float64, considerations ...Consideration) UtilityAction {
	return UtilityAction{Name: name, Considerations: considerations, Weight: weight, Momentum: momentum}
}

// Score evaluates the action against bb. With no considerations it returns
// Weight. Otherwise it is the geometric mean of every consideration's value,
// times Weight, plus Momentum when isCurrent is true.
func (a UtilityAction) Score(bb *Blackboard, isCurrent bool) float64 {
	if len(a.Considerations) == 0 {
		return a.Weight
	}

	logSum := 0.0
	for _, c := range a.Considerations {
		v := c.Evaluate(bb)
		if v <= 0 {
			// product is 0 once any factor is 0; short-circuit rather than
			// feeding log(0) into the running sum.
			logSum = math.Inf(-1)
			break
		}
		logSum += math.Log(v)
	}

	var geoMean float64
	if math.IsInf(logSum, -1) {
		geoMean = 0
	} else {
		geoMean = math.Exp(logSum / float64(len(a.Considerations)))
	}

	score := geoMean * a.Weight
	if isCurrent {
		score += a.Momentum
	}
	return score
}
