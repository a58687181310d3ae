package behaviortree

import (
	"math"
	"sort"
)

// ValueKind discriminates the variants a Value can hold.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFixed
	KindBool
	KindEntity
	KindVec2
)

// fixedScale is the ×1000 convention shared by every Fixed value: the
// integer stores the real value multiplied by 1000 (resolution 0.001).
const fixedScale = 1000

// Value is a discriminated blackboard value: Int, Fixed (a fixed-point
// scalar at ×1000 resolution), Bool, Entity (an opaque u32 handle), or Vec2
// (a pair of int32 components). The zero Value is KindInt with value 0.
type Value struct {
	kind ValueKind
	i    int64 // Int, Fixed (raw ×1000), Entity
	x, y int32 // Vec2
	b    bool  // Bool
}

// Int constructs an Int value.
func Int(v int32) Value { return Value{kind: KindInt, i: int64(v)} }

// Fixed constructs a Fixed value from its raw ×1000 integer representation.
func Fixed(raw int32) Value { return Value{kind: KindFixed, i: int64(raw)} }

// FixedFromFloat constructs a Fixed value from a floating input, multiplying
// by 1000 and truncating toward zero, per the fixed-point convention.
func FixedFromFloat(f float64) Value {
	return Value{kind: KindFixed, i: int64(f * fixedScale)}
}

// Bool constructs a Bool value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Entity constructs an Entity value from an opaque handle.
func Entity(id uint32) Value { return Value{kind: KindEntity, i: int64(id)} }

// Vec2 constructs a 2-vector value.
func Vec2(x, y int32) Value { return Value{kind: KindVec2, x: x, y: y} }

// Kind reports which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// Int32 returns the raw int32 payload for Int, Fixed (raw ×1000), or Entity
// values; it is 0 for Bool and Vec2.
func (v Value) Int32() int32 { return int32(v.i) }

// Vec2XY returns the two components of a Vec2 value; both are 0 for other
// kinds.
func (v Value) Vec2XY() (int32, int32) { return v.x, v.y }

// BoolVal returns the payload of a Bool value; false for other kinds.
func (v Value) BoolVal() bool { return v.b }

// Score is the scoring projection: the deterministic mapping from any
// blackboard value to a floating scalar, used by Consideration and by
// UtilitySelector's direct key scoring. Int → value; Fixed → value/1000;
// Bool → 1 or 0; Entity → value; Vec2 → Euclidean magnitude.
func (v Value) Score() float64 {
	switch v.kind {
	case KindInt, KindEntity:
		return float64(v.i)
	case KindFixed:
		return float64(v.i) / fixedScale
	case KindBool:
		if v.b {
			return 1
		}
		return 0
	case KindVec2:
		return vecMagnitude(v.x, v.y)
	default:
		return 0
	}
}

func vecMagnitude(x, y int32) float64 {
	fx, fy := float64(x), float64(y)
	return math.Sqrt(fx*fx + fy*fy)
}

// Truthy reports a Value's truthiness: non-zero int/fixed/entity, true
// bool, any non-zero component of Vec2.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindInt, KindFixed, KindEntity:
		return v.i != 0
	case KindBool:
		return v.b
	case KindVec2:
		return v.x != 0 || v.y != 0
	default:
		return false
	}
}

// Blackboard is a mapping from u32 keys to blackboard values with unique
// keys; last write wins. Iteration order (Keys) is sorted by key so reset
// and clear semantics are deterministic regardless of insertion order.
type Blackboard struct {
	values map[uint32]Value
}

// NewBlackboard returns an empty blackboard.
func NewBlackboard() *Blackboard {
	return &Blackboard{values: make(map[uint32]Value)}
}

// Get returns the value stored at key and whether it was present.
func (bb *Blackboard) Get(key uint32) (Value, bool) {
	v, ok := bb.values[key]
	return v, ok
}

// Set stores value at key, overwriting any prior value.
func (bb *Blackboard) Set(key uint32, value Value) {
	bb.values[key] = value
}

// Delete removes key, if present.
func (bb *Blackboard) Delete(key uint32) {
	delete(bb.values, key)
}

// Clear removes every entry.
func (bb *Blackboard) Clear() {
	bb.values = make(map[uint32]Value)
}

// Len reports the number of entries.
func (bb *Blackboard) Len() int { return len(bb.values) }

// Keys returns every key in ascending order.
func (bb *Blackboard) Keys() []uint32 {
	keys := make([]uint32, 0, len(bb.values))
	for k := range bb.values {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
