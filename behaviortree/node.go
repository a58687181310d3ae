package behaviortree

// NodeKind discriminates the node variants: three leaves, six composites,
// and one parameterized decorator.
type NodeKind int

const (
	KindAction NodeKind = iota
	KindCondition
	KindWait
	KindSequence
	KindSelector
	KindParallel
	KindRandomSelector
	KindWeightedSelector
	KindUtilitySelector
	KindDecorator
)

// ParallelPolicy determines how a Parallel composite resolves its children's
// statuses into its own.
type ParallelPolicy int

const (
	RequireAll ParallelPolicy = iota
	RequireOne
	RequireN
)

// DecoratorKind discriminates the ten decorator behaviors. Each decorator
// wraps exactly one child.
type DecoratorKind int

const (
	Inverter DecoratorKind = iota
	Repeat
	Retry
	Cooldown
	Guard
	UntilSuccess
	UntilFail
	Timeout
	ForceSuccess
	ForceFailure
)

// Node is the tagged-union behavior tree node: Action(A) and Condition(C)
// leaves over the client's opaque identifier types, Wait, the six composite
// kinds, and the single-child Decorator. Only the fields relevant to Kind
// are meaningful; a Node is immutable once built, and all per-tick state
// lives in the parallel state slab addressed by pre-order id, not in the node
// itself.
type Node[A any, C any] struct {
	Kind NodeKind

	Action    A
	Condition C
	WaitTicks uint32

	Children []Node[A, C]

	Policy    ParallelPolicy
	ParallelN uint32

	Weights []uint32

	UtilityIDs []uint32

	DecoratorKind DecoratorKind
	Child         *Node[A, C]
	// Arg is the decorator's sole parameter, interpreted per DecoratorKind:
	// Repeat/Retry iteration count, Cooldown/Timeout tick count, or Guard's
	// blackboard key. Unused by Inverter, UntilSuccess, UntilFail,
	// ForceSuccess, ForceFailure.
	Arg uint32
}

// ActionNode constructs an Action leaf.
func ActionNode[A any, C any](action A) Node[A, C] {
	return Node[A, C]{Kind: KindAction, Action: action}
}

// ConditionNode constructs a Condition leaf.
func ConditionNode[A any, C any](condition C) Node[A, C] {
	return Node[A, C]{Kind: KindCondition, Condition: condition}
}

// WaitNode constructs a Wait(ticks) leaf.
func WaitNode[A any, C any](ticks uint32) Node[A, C] {
	return Node[A, C]{Kind: KindWait, WaitTicks: ticks}
}

// SequenceNode constructs a Sequence composite over children, in order.
func SequenceNode[A any, C any](children ...Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindSequence, Children: children}
}

// SelectorNode constructs a Selector composite over children, in order.
func SelectorNode[A any, C any](children ...Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindSelector, Children: children}
}

// ParallelNode constructs a Parallel composite under RequireAll or
// RequireOne. Use ParallelNNode for RequireN.
func ParallelNode[A any, C any](policy ParallelPolicy, children ...Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindParallel, Policy: policy, Children: children}
}

// ParallelNNode constructs a Parallel composite under RequireN(n).
func ParallelNNode[A any, C any](n uint32, children ...Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindParallel, Policy: RequireN, ParallelN: n, Children: children}
}

// RandomSelectorNode constructs a RandomSelector composite over children.
func RandomSelectorNode[A any, C any](children ...Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindRandomSelector, Children: children}
}

// WeightedSelectorNode constructs a WeightedSelector composite; len(weights)
// must equal len(children) (enforced at build time by the Builder, and
// tolerated as a tick-time Failure by the evaluator if violated directly).
func WeightedSelectorNode[A any, C any](weights []uint32, children ...Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindWeightedSelector, Weights: weights, Children: children}
}

// UtilitySelectorNode constructs a UtilitySelector composite; len(utilityIDs)
// must equal len(children).
func UtilitySelectorNode[A any, C any](utilityIDs []uint32, children ...Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindUtilitySelector, UtilityIDs: utilityIDs, Children: children}
}

func decoratorNode[A any, C any](kind DecoratorKind, arg uint32, child Node[A, C]) Node[A, C] {
	return Node[A, C]{Kind: KindDecorator, DecoratorKind: kind, Arg: arg, Child: &child}
}

// InvertNode wraps child, swapping Success and Failure.
func InvertNode[A any, C any](child Node[A, C]) Node[A, C] {
	return decoratorNode(Inverter, 0, child)
}

// RepeatNode wraps child, succeeding after n child successes (immediately
// for n=0) and propagating any child Failure.
func RepeatNode[A any, C any](n uint32, child Node[A, C]) Node[A, C] {
	return decoratorNode(Repeat, n, child)
}

// RetryNode wraps child, failing after n child failures (immediately for
// n=0) and propagating any child Success.
func RetryNode[A any, C any](n uint32, child Node[A, C]) Node[A, C] {
	return decoratorNode(Retry, n, child)
}

// CooldownNode wraps child, refusing to tick it again for ticks ticks after
// it last finished.
func CooldownNode[A any, C any](ticks uint32, child Node[A, C]) Node[A, C] {
	return decoratorNode(Cooldown, ticks, child)
}

// GuardNode ticks child only while blackboard key is truthy, else fails
// without ticking it.
func GuardNode[A any, C any](key uint32, child Node[A, C]) Node[A, C] {
	return decoratorNode(Guard, key, child)
}

// UntilSuccessNode re-runs child until it succeeds.
func UntilSuccessNode[A any, C any](child Node[A, C]) Node[A, C] {
	return decoratorNode(UntilSuccess, 0, child)
}

// UntilFailNode re-runs child until it fails.
func UntilFailNode[A any, C any](child Node[A, C]) Node[A, C] {
	return decoratorNode(UntilFail, 0, child)
}

// TimeoutNode wraps child, forcing Failure if it hasn't finished within
// ticks ticks of accumulated Δ.
func TimeoutNode[A any, C any](ticks uint32, child Node[A, C]) Node[A, C] {
	return decoratorNode(Timeout, ticks, child)
}

// ForceSuccessNode passes Running through and substitutes Success for any
// other child result.
func ForceSuccessNode[A any, C any](child Node[A, C]) Node[A, C] {
	return decoratorNode(ForceSuccess, 0, child)
}

// ForceFailureNode passes Running through and substitutes Failure for any
// other child result.
func ForceFailureNode[A any, C any](child Node[A, C]) Node[A, C] {
	return decoratorNode(ForceFailure, 0, child)
}

// Size returns 1 + the sum of every descendant's size: the number of
// pre-order ids the subtree rooted at n occupies.
func Size[A any, C any](n *Node[A, C]) int {
	switch n.Kind {
	case KindDecorator:
		return 1 + Size(n.Child)
	case KindAction, KindCondition, KindWait:
		return 1
	default:
		total := 1
		for i := range n.Children {
			total += Size(&n.Children[i])
		}
		return total
	}
}
