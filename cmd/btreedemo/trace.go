package main

import (
	"github.com/brensch/behaviortree"
	"github.com/brensch/behaviortree/internal/visualize"
)

// collectedTrace is one tick's worth of observer events, already shaped for
// visualize.RenderPNG and for JSON archival.
type collectedTrace = visualize.Trace

// collectingObserver implements behaviortree.Observer, recording every
// exit and utility score in order and reshaping them into a
// visualize.Trace; enters are only tracked on a stack, not recorded. Utility scores are attributed to whichever node is
// currently on top of the enter stack, since OnUtilityScore always fires
// between a UtilitySelector's own OnEnter and its chosen child's OnEnter.
type collectingObserver struct {
	labels map[int]nodeLabel
	stack  []int
	events []visualize.NodeEvent
	scores []visualize.UtilityScore
}

func newCollectingObserver(labels map[int]nodeLabel) *collectingObserver {
	return &collectingObserver{labels: labels}
}

func (o *collectingObserver) OnEnter(id int) {
	o.stack = append(o.stack, id)
}

func (o *collectingObserver) OnExit(id int, status Status) {
	if n := len(o.stack); n > 0 {
		o.stack = o.stack[:n-1]
	}
	l := o.labels[id]
	o.events = append(o.events, visualize.NodeEvent{
		ID:     id,
		Depth:  l.depth,
		Label:  l.label,
		Status: status.String(),
	})
}

func (o *collectingObserver) OnBlackboardWrite(key uint32, value behaviortree.Value) {}

func (o *collectingObserver) OnUtilityScore(index int, score float64) {
	if n := len(o.stack); n > 0 {
		o.scores = append(o.scores, visualize.UtilityScore{NodeID: o.stack[n-1], Index: index, Score: score})
	}
}

func (o *collectingObserver) trace(tick uint64) collectedTrace {
	return visualize.Trace{Tick: tick, Events: o.events, Scores: o.scores}
}

// Status aliases behaviortree.Status so OnExit's signature in this file
// reads naturally alongside the Observer interface it implements.
type Status = behaviortree.Status
