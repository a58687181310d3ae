package behaviortree

import "errors"

// Structural errors are raised by the Builder when a tree is assembled
// incorrectly. They are programming errors: the builder panics with a
// *BuildError wrapping one of these sentinels so callers can recover and
// errors.Is/As against the cause if they choose to.
var (
	ErrUnclosedComposite    = errors.New("behaviortree: composite frame left open at build")
	ErrDanglingDecorator    = errors.New("behaviortree: decorator with no leaf or composite to wrap")
	ErrWeightMismatch       = errors.New("behaviortree: selector child count does not match its weight or utility-id count")
	ErrMultipleRoots        = errors.New("behaviortree: build produced more than one root node")
	ErrNoRoot               = errors.New("behaviortree: build produced no root node")
	ErrUnexpectedEnd        = errors.New("behaviortree: end() called with no open frame")
	ErrWeightOutsideList    = errors.New("behaviortree: weight() called outside a weighted-selector frame")
	ErrUtilityIDOutsideList = errors.New("behaviortree: utilityID() called outside a utility-selector frame")
)

// ErrMissingRNG is the sentinel wrapped by RNGError, raised (by panic) when a
// tick takes a path that draws from the RNG (WeightedRandom, TopN,
// RandomSelector, or WeightedSelector selection) and none was supplied for
// that tick.
var ErrMissingRNG = errors.New("behaviortree: RNG required but not supplied")

// BuildError wraps a structural violation detected by the Builder.
type BuildError struct {
	Err   error
	Frame string // human-readable description of the offending frame, if any
}

func (e *BuildError) Error() string {
	if e.Frame == "" {
		return e.Err.Error()
	}
	return e.Err.Error() + ": " + e.Frame
}

func (e *BuildError) Unwrap() error { return e.Err }

// RNGError wraps ErrMissingRNG with the name of the node that needed it.
type RNGError struct {
	Node string
}

func (e *RNGError) Error() string {
	return ErrMissingRNG.Error() + ": " + e.Node
}

func (e *RNGError) Unwrap() error { return ErrMissingRNG }
