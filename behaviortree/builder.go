package behaviortree

import "fmt"

// compositeType names the kind of frame open on the Builder's stack. It is a
// strict subset of NodeKind: UtilitySelector and WeightedSelector carry their
// own per-child metadata (utility ids / weights) the same way, so both get a
// frame kind here even though Parallel needs its policy remembered too.
type compositeType int

const (
	frameSequence compositeType = iota
	frameSelector
	frameParallel
	frameRandomSelector
	frameWeightedSelector
	frameUtilitySelector
)

type builderFrame[A any, C any] struct {
	kind      compositeType
	policy    ParallelPolicy
	parallelN uint32
	children  []Node[A, C]
	weights   []uint32
	utility   []uint32
}

// Builder assembles a Node tree programmatically: open a composite frame,
// push leaves and nested composites into it, optionally prefix pending
// decorators onto the next pushed node, and close the frame with End. Build
// validates the whole assembly once at the end.
//
// A Builder is consumed by value through each method in a fluent style:
// every method returns the (mutated) Builder so calls chain, e.g.
// NewBuilder().Sequence().Action(a).End().Build().
type Builder[A any, C any] struct {
	stack             []builderFrame[A, C]
	root              *Node[A, C]
	rootSet           bool
	pendingDecorators []DecoratorKind
	pendingArgs       []uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder[A any, C any]() Builder[A, C] {
	return Builder[A, C]{}
}

func (b Builder[A, C]) openFrame(kind compositeType, policy ParallelPolicy, n uint32) Builder[A, C] {
	b.stack = append(b.stack, builderFrame[A, C]{kind: kind, policy: policy, parallelN: n})
	return b
}

// Sequence opens a Sequence frame.
func (b Builder[A, C]) Sequence() Builder[A, C] { return b.openFrame(frameSequence, 0, 0) }

// Selector opens a Selector frame.
func (b Builder[A, C]) Selector() Builder[A, C] { return b.openFrame(frameSelector, 0, 0) }

// Parallel opens a Parallel frame under RequireAll or RequireOne.
func (b Builder[A, C]) Parallel(policy ParallelPolicy) Builder[A, C] {
	return b.openFrame(frameParallel, policy, 0)
}

// ParallelN opens a Parallel frame under RequireN(n).
func (b Builder[A, C]) ParallelN(n uint32) Builder[A, C] {
	return b.openFrame(frameParallel, RequireN, n)
}

// RandomSelector opens a RandomSelector frame.
func (b Builder[A, C]) RandomSelector() Builder[A, C] {
	return b.openFrame(frameRandomSelector, 0, 0)
}

// WeightedSelector opens a WeightedSelector frame; each child pushed into it
// must be followed by a Weight call before the next child or End.
func (b Builder[A, C]) WeightedSelector() Builder[A, C] {
	return b.openFrame(frameWeightedSelector, 0, 0)
}

// UtilitySelector opens a UtilitySelector frame; each child pushed into it
// must be followed by a UtilityID call before the next child or End.
func (b Builder[A, C]) UtilitySelector() Builder[A, C] {
	return b.openFrame(frameUtilitySelector, 0, 0)
}

// Action pushes an Action leaf, wrapped by any pending decorators.
func (b Builder[A, C]) Action(action A) Builder[A, C] {
	return b.pushNode(ActionNode[A, C](action))
}

// Condition pushes a Condition leaf, wrapped by any pending decorators.
func (b Builder[A, C]) Condition(condition C) Builder[A, C] {
	return b.pushNode(ConditionNode[A, C](condition))
}

// Wait pushes a Wait(ticks) leaf, wrapped by any pending decorators.
func (b Builder[A, C]) Wait(ticks uint32) Builder[A, C] {
	return b.pushNode(WaitNode[A, C](ticks))
}

// Decorator queues kind (with its argument, where meaningful) to wrap the
// next pushed leaf or closed composite. Multiple queued decorators prefix in
// LIFO order: the last one queued becomes the innermost wrapper, so the
// first one queued ends up outermost.
func (b Builder[A, C]) Decorator(kind DecoratorKind, arg uint32) Builder[A, C] {
	b.pendingDecorators = append(b.pendingDecorators, kind)
	b.pendingArgs = append(b.pendingArgs, arg)
	return b
}

// Inverter queues an Inverter decorator.
func (b Builder[A, C]) Inverter() Builder[A, C] { return b.Decorator(Inverter, 0) }

// Repeat queues a Repeat(n) decorator.
func (b Builder[A, C]) Repeat(n uint32) Builder[A, C] { return b.Decorator(Repeat, n) }

// Retry queues a Retry(n) decorator.
func (b Builder[A, C]) Retry(n uint32) Builder[A, C] { return b.Decorator(Retry, n) }

// Cooldown queues a Cooldown(ticks) decorator.
func (b Builder[A, C]) Cooldown(ticks uint32) Builder[A, C] { return b.Decorator(Cooldown, ticks) }

// Guard queues a Guard(key) decorator.
func (b Builder[A, C]) Guard(key uint32) Builder[A, C] { return b.Decorator(Guard, key) }

// UntilSuccess queues an UntilSuccess decorator.
func (b Builder[A, C]) UntilSuccess() Builder[A, C] { return b.Decorator(UntilSuccess, 0) }

// UntilFail queues an UntilFail decorator.
func (b Builder[A, C]) UntilFail() Builder[A, C] { return b.Decorator(UntilFail, 0) }

// Timeout queues a Timeout(ticks) decorator.
func (b Builder[A, C]) Timeout(ticks uint32) Builder[A, C] { return b.Decorator(Timeout, ticks) }

// ForceSuccess queues a ForceSuccess decorator.
func (b Builder[A, C]) ForceSuccess() Builder[A, C] { return b.Decorator(ForceSuccess, 0) }

// ForceFailure queues a ForceFailure decorator.
func (b Builder[A, C]) ForceFailure() Builder[A, C] { return b.Decorator(ForceFailure, 0) }

// Weight appends w to the open frame's weight list; valid only inside a
// WeightedSelector frame.
func (b Builder[A, C]) Weight(w uint32) Builder[A, C] {
	if len(b.stack) == 0 {
		panic(&BuildError{Err: ErrWeightOutsideList})
	}
	top := &b.stack[len(b.stack)-1]
	if top.kind != frameWeightedSelector {
		panic(&BuildError{Err: ErrWeightOutsideList})
	}
	top.weights = append(top.weights, w)
	return b
}

// UtilityID appends id to the open frame's utility-id list; valid only
// inside a UtilitySelector frame.
func (b Builder[A, C]) UtilityID(id uint32) Builder[A, C] {
	if len(b.stack) == 0 {
		panic(&BuildError{Err: ErrUtilityIDOutsideList})
	}
	top := &b.stack[len(b.stack)-1]
	if top.kind != frameUtilitySelector {
		panic(&BuildError{Err: ErrUtilityIDOutsideList})
	}
	top.utility = append(top.utility, id)
	return b
}

// End closes the innermost open frame, wraps it in any pending decorators,
// and installs it as a child of the new innermost frame (or as the root if
// none remains open). It panics with *BuildError if no frame is open.
func (b Builder[A, C]) End() Builder[A, C] {
	if len(b.stack) == 0 {
		panic(&BuildError{Err: ErrUnexpectedEnd})
	}
	top := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]

	var node Node[A, C]
	switch top.kind {
	case frameSequence:
		node = SequenceNode(top.children...)
	case frameSelector:
		node = SelectorNode(top.children...)
	case frameParallel:
		if top.policy == RequireN {
			node = ParallelNNode(top.parallelN, top.children...)
		} else {
			node = ParallelNode(top.policy, top.children...)
		}
	case frameRandomSelector:
		node = RandomSelectorNode(top.children...)
	case frameWeightedSelector:
		if len(top.children) != len(top.weights) {
			panic(&BuildError{
				Err:   ErrWeightMismatch,
				Frame: fmt.Sprintf("%d children, %d weights", len(top.children), len(top.weights)),
			})
		}
		node = WeightedSelectorNode(top.weights, top.children...)
	case frameUtilitySelector:
		if len(top.children) != len(top.utility) {
			panic(&BuildError{
				Err:   ErrWeightMismatch,
				Frame: fmt.Sprintf("%d children, %d utility ids", len(top.children), len(top.utility)),
			})
		}
		node = UtilitySelectorNode(top.utility, top.children...)
	}

	node = b.wrapPendingDecorators(node)
	return b.installNode(node)
}

// Build finalizes the assembly: it panics with *BuildError if any composite
// frame is still open, any decorator is still pending, or no root was ever
// produced; otherwise it returns that root.
func (b Builder[A, C]) Build() Node[A, C] {
	if len(b.stack) != 0 {
		panic(&BuildError{
			Err:   ErrUnclosedComposite,
			Frame: fmt.Sprintf("%d frame(s) left open", len(b.stack)),
		})
	}
	if len(b.pendingDecorators) != 0 {
		panic(&BuildError{
			Err:   ErrDanglingDecorator,
			Frame: fmt.Sprintf("%d decorator(s) with nothing to wrap", len(b.pendingDecorators)),
		})
	}
	if !b.rootSet {
		panic(&BuildError{Err: ErrNoRoot})
	}
	return *b.root
}

func (b Builder[A, C]) pushNode(node Node[A, C]) Builder[A, C] {
	node = b.wrapPendingDecorators(node)
	return b.installNode(node)
}

// wrapPendingDecorators consumes the pending-decorator stack in LIFO order:
// the most recently queued decorator becomes the innermost wrapper around
// node, so the first decorator ever queued for this node ends up outermost.
func (b *Builder[A, C]) wrapPendingDecorators(node Node[A, C]) Node[A, C] {
	for i := len(b.pendingDecorators) - 1; i >= 0; i-- {
		kind := b.pendingDecorators[i]
		arg := b.pendingArgs[i]
		node = decoratorNode(kind, arg, node)
	}
	b.pendingDecorators = nil
	b.pendingArgs = nil
	return node
}

func (b Builder[A, C]) installNode(node Node[A, C]) Builder[A, C] {
	if len(b.stack) > 0 {
		top := &b.stack[len(b.stack)-1]
		top.children = append(top.children, node)
		return b
	}
	if b.rootSet {
		panic(&BuildError{Err: ErrMultipleRoots})
	}
	b.root = &node
	b.rootSet = true
	return b
}
