package behaviortree

// childID returns the pre-order id of children[index], given the parent's own
// id. It walks earlier siblings summing their subtree sizes, mirroring the
// addressing rule in Size: child i's id is parent id + 1 + Σ sizes of earlier
// siblings.
func childID[A any, C any](children []Node[A, C], parentID, index int) int {
	id := parentID + 1
	for i := 0; i < index && i < len(children); i++ {
		id += Size(&children[i])
	}
	return id
}

// tick evaluates the subtree rooted at node (whose pre-order id is nodeID)
// against slab and ctx, dispatching to action/condition handlers and
// notifying observer. It is the sole recursive entry point; every node kind
// is wrapped in exactly one OnEnter/OnExit pair.
func tick[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	observer.OnEnter(nodeID)
	status := dispatch(node, nodeID, slab, ctx, actions, conditions, observer)
	observer.OnExit(nodeID, status)
	return status
}

func dispatch[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	switch node.Kind {
	case KindAction:
		return actions.Execute(node.Action, ctx)
	case KindCondition:
		if conditions.Check(node.Condition, ctx) {
			return Success
		}
		return Failure
	case KindWait:
		return tickWait(node, nodeID, slab, ctx)
	case KindSequence:
		return tickSequence(node, nodeID, slab, ctx, actions, conditions, observer)
	case KindSelector:
		return tickSelector(node, nodeID, slab, ctx, actions, conditions, observer)
	case KindParallel:
		return tickParallel(node, nodeID, slab, ctx, actions, conditions, observer)
	case KindRandomSelector:
		return tickRandomSelector(node, nodeID, slab, ctx, actions, conditions, observer)
	case KindWeightedSelector:
		return tickWeightedSelector(node, nodeID, slab, ctx, actions, conditions, observer)
	case KindUtilitySelector:
		return tickUtilitySelector(node, nodeID, slab, ctx, actions, conditions, observer)
	case KindDecorator:
		return tickDecorator(node, nodeID, slab, ctx, actions, conditions, observer)
	default:
		slab.ResetLocal(nodeID)
		return Failure
	}
}

func tickWait[A any, C any](node *Node[A, C], nodeID int, slab *StateSlab, ctx *TickContext) Status {
	if node.WaitTicks == 0 {
		slab.ResetLocal(nodeID)
		return Success
	}
	state := slab.At(nodeID)
	elapsed := saturatingAddU32(state.TickCounter, ctx.Delta)
	state.TickCounter = elapsed
	if elapsed >= node.WaitTicks {
		slab.ResetLocal(nodeID)
		return Success
	}
	return Running
}

func tickSequence[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	children := node.Children
	state := slab.At(nodeID)
	start := state.RunningChild
	if start > len(children) {
		start = len(children)
	}
	cid := childID(children, nodeID, start)
	result := Success

	for i := start; i < len(children); i++ {
		childStatus := tick(&children[i], cid, slab, ctx, actions, conditions, observer)
		switch childStatus {
		case Running:
			slab.At(nodeID).RunningChild = i
			result = Running
		case Failure:
			slab.ResetLocal(nodeID)
			result = Failure
		case Success:
			cid += Size(&children[i])
			continue
		}
		break
	}

	if result == Success {
		slab.ResetLocal(nodeID)
	}
	return result
}

func tickSelector[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	children := node.Children
	state := slab.At(nodeID)
	start := state.RunningChild
	if start > len(children) {
		start = len(children)
	}
	cid := childID(children, nodeID, start)
	result := Failure

	for i := start; i < len(children); i++ {
		childStatus := tick(&children[i], cid, slab, ctx, actions, conditions, observer)
		switch childStatus {
		case Running:
			slab.At(nodeID).RunningChild = i
			result = Running
		case Success:
			slab.ResetLocal(nodeID)
			result = Success
		case Failure:
			cid += Size(&children[i])
			continue
		}
		break
	}

	if result == Failure {
		slab.ResetLocal(nodeID)
	}
	return result
}

func tickParallel[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	children := node.Children
	successCount, failureCount := 0, 0
	cid := nodeID + 1

	for i := range children {
		switch tick(&children[i], cid, slab, ctx, actions, conditions, observer) {
		case Success:
			successCount++
		case Failure:
			failureCount++
		}
		cid += Size(&children[i])
	}

	switch node.Policy {
	case RequireOne:
		if successCount > 0 {
			return Success
		}
		if failureCount == len(children) {
			return Failure
		}
		return Running
	case RequireN:
		n := int(node.ParallelN)
		if successCount >= n {
			return Success
		}
		if len(children)-failureCount < n {
			return Failure
		}
		return Running
	default: // RequireAll
		if failureCount > 0 {
			return Failure
		}
		if successCount == len(children) {
			return Success
		}
		return Running
	}
}

// tickRandomSelector, tickWeightedSelector, and tickUtilitySelector share the
// same sticky-selection shape: a shape violation resets and fails; otherwise
// a prior valid selection resumes, else a new one is chosen; the chosen
// child is ticked and the selection clears once it stops Running.

func tickRandomSelector[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	children := node.Children
	if len(children) == 0 {
		slab.ResetLocal(nodeID)
		return Failure
	}

	state := slab.At(nodeID)
	var selected int
	if state.RandomSelectionSet && state.RandomSelection < len(children) {
		selected = state.RandomSelection
	} else {
		if ctx.RNG == nil {
			panic(&RNGError{Node: "RandomSelector"})
		}
		selected = int(ctx.RNG.NextUint32() % uint32(len(children)))
		state.RandomSelection = selected
		state.RandomSelectionSet = true
	}

	cid := childID(children, nodeID, selected)
	childStatus := tick(&children[selected], cid, slab, ctx, actions, conditions, observer)
	if childStatus != Running {
		slab.ResetLocal(nodeID)
	}
	return childStatus
}

func tickWeightedSelector[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	children := node.Children
	weights := node.Weights
	if len(children) == 0 || len(children) != len(weights) {
		slab.ResetLocal(nodeID)
		return Failure
	}

	state := slab.At(nodeID)
	var selected int
	if state.RandomSelectionSet && state.RandomSelection < len(children) {
		selected = state.RandomSelection
	} else {
		total := uint32(0)
		for _, w := range weights {
			total += w
		}
		if total == 0 {
			slab.ResetLocal(nodeID)
			return Failure
		}
		if ctx.RNG == nil {
			panic(&RNGError{Node: "WeightedSelector"})
		}
		roll := ctx.RNG.NextUint32() % total
		idx := 0
		for i, w := range weights {
			if roll < w {
				idx = i
				break
			}
			roll -= w
		}
		selected = idx
		state.RandomSelection = selected
		state.RandomSelectionSet = true
	}

	cid := childID(children, nodeID, selected)
	childStatus := tick(&children[selected], cid, slab, ctx, actions, conditions, observer)
	if childStatus != Running {
		slab.ResetLocal(nodeID)
	}
	return childStatus
}

func tickUtilitySelector[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	children := node.Children
	ids := node.UtilityIDs
	if len(children) == 0 || len(children) != len(ids) {
		slab.ResetLocal(nodeID)
		return Failure
	}

	state := slab.At(nodeID)
	var selected int
	if state.SelectedChildSet && state.SelectedChild < len(children) {
		selected = state.SelectedChild
	} else {
		best := 0
		bestScore := negInfinity
		for i, key := range ids {
			score := 0.0
			if v, ok := ctx.BB.Get(key); ok {
				score = v.Score()
			}
			observer.OnUtilityScore(i, score)
			if score > bestScore {
				bestScore = score
				best = i
			}
		}
		selected = best
		state.SelectedChild = selected
		state.SelectedChildSet = true
	}

	cid := childID(children, nodeID, selected)
	childStatus := tick(&children[selected], cid, slab, ctx, actions, conditions, observer)
	if childStatus != Running {
		slab.ResetLocal(nodeID)
	}
	return childStatus
}

// negInfinity seeds the UtilitySelector argmax scan below any real score,
// including negative ones, so the first candidate always replaces it.
const negInfinity = -1e308

func tickDecorator[A any, C any](
	node *Node[A, C],
	nodeID int,
	slab *StateSlab,
	ctx *TickContext,
	actions ActionHandler[A],
	conditions ConditionHandler[C],
	observer Observer,
) Status {
	child := node.Child
	cid := nodeID + 1

	switch node.DecoratorKind {
	case Inverter:
		return tick(child, cid, slab, ctx, actions, conditions, observer).Invert()

	case Repeat:
		n := node.Arg
		if n == 0 {
			slab.ResetSubtree(nodeID, Size(node))
			return Success
		}
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		switch childStatus {
		case Failure:
			slab.ResetSubtree(nodeID, Size(node))
			return Failure
		case Success:
			state := slab.At(nodeID)
			next := saturatingAddU32(state.IterationCount, 1)
			state.IterationCount = next
			if next >= n {
				slab.ResetSubtree(nodeID, Size(node))
				return Success
			}
			slab.ResetSubtree(cid, Size(child))
			return Running
		default: // Running
			return Running
		}

	case Retry:
		n := node.Arg
		if n == 0 {
			slab.ResetSubtree(nodeID, Size(node))
			return Failure
		}
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		switch childStatus {
		case Success:
			slab.ResetSubtree(nodeID, Size(node))
			return Success
		case Failure:
			state := slab.At(nodeID)
			attempts := saturatingAddU32(state.IterationCount, 1)
			state.IterationCount = attempts
			if attempts >= n {
				slab.ResetSubtree(nodeID, Size(node))
				return Failure
			}
			slab.ResetSubtree(cid, Size(child))
			return Running
		default: // Running
			return Running
		}

	case Cooldown:
		state := slab.At(nodeID)
		remaining := state.TickCounter
		if remaining > 0 {
			consumed := ctx.Delta
			if consumed > remaining {
				consumed = remaining
			}
			state.TickCounter = remaining - consumed
			return Failure
		}
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		if childStatus.Finished() {
			slab.At(nodeID).TickCounter = node.Arg
		}
		return childStatus

	case Guard:
		allowed := false
		if v, ok := ctx.BB.Get(node.Arg); ok {
			allowed = v.Truthy()
		}
		if allowed {
			return tick(child, cid, slab, ctx, actions, conditions, observer)
		}
		slab.ResetSubtree(cid, Size(child))
		return Failure

	case UntilSuccess:
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		switch childStatus {
		case Success:
			slab.ResetSubtree(nodeID, Size(node))
			return Success
		case Failure:
			slab.ResetSubtree(cid, Size(child))
			return Running
		default: // Running
			return Running
		}

	case UntilFail:
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		switch childStatus {
		case Failure:
			slab.ResetSubtree(nodeID, Size(node))
			return Failure
		case Success:
			slab.ResetSubtree(cid, Size(child))
			return Running
		default: // Running
			return Running
		}

	case Timeout:
		state := slab.At(nodeID)
		elapsed := saturatingAddU32(state.TickCounter, ctx.Delta)
		state.TickCounter = elapsed
		if elapsed >= node.Arg {
			slab.ResetSubtree(nodeID, Size(node))
			return Failure
		}
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		if childStatus.Finished() {
			slab.ResetLocal(nodeID)
		}
		return childStatus

	case ForceSuccess:
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		if childStatus == Running {
			return Running
		}
		return Success

	case ForceFailure:
		childStatus := tick(child, cid, slab, ctx, actions, conditions, observer)
		if childStatus == Running {
			return Running
		}
		return Failure

	default:
		slab.ResetSubtree(nodeID, Size(node))
		return Failure
	}
}

func saturatingAddU32(a, b uint32) uint32 {
	sum := a + b
	if sum < a {
		return ^uint32(0)
	}
	return sum
}
