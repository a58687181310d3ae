package behaviortree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeLeaves(t *testing.T) {
	a := ActionNode[int, int](1)
	c := ConditionNode[int, int](1)
	w := WaitNode[int, int](3)
	assert.Equal(t, 1, Size(&a))
	assert.Equal(t, 1, Size(&c))
	assert.Equal(t, 1, Size(&w))
}

func TestSizeComposite(t *testing.T) {
	n := SequenceNode(
		ActionNode[int, int](1),
		SelectorNode(ActionNode[int, int](2), ActionNode[int, int](3)),
		ActionNode[int, int](4),
	)
	// root(1) + action(1) + selector(1) + action(1) + action(1) + action(1)
	assert.Equal(t, 6, Size(&n))
}

func TestSizeDecorator(t *testing.T) {
	n := InvertNode(RepeatNode(3, ActionNode[int, int](1)))
	assert.Equal(t, 3, Size(&n))
}

func TestPreOrderIdentityContiguous(t *testing.T) {
	// for every tree, the number of distinct ids equals the size computed
	// from the root, and child i's id equals parent id + 1 + sum of earlier
	// siblings' sizes.
	n := SequenceNode(
		ActionNode[int, int](1),
		SelectorNode(ActionNode[int, int](2), ActionNode[int, int](3)),
		WaitNode[int, int](1),
	)
	size := Size(&n)
	assert.Equal(t, 6, size)

	firstChildID := childID(n.Children, 0, 0)
	secondChildID := childID(n.Children, 0, 1)
	thirdChildID := childID(n.Children, 0, 2)
	assert.Equal(t, 1, firstChildID)
	assert.Equal(t, 2, secondChildID, "parent id(0) + 1 + size(first child)=1")
	assert.Equal(t, 5, thirdChildID,"parent id(0) + 1 + size(first)=1 + size(selector subtree)=3")
}

func TestStateSlabResetLocalVsSubtree(t *testing.T) {
	slab := NewStateSlab(4)
	for i := 0; i < 4; i++ {
		slab.At(i).TickCounter = uint32(i + 1)
	}

	slab.ResetLocal(1)
	assert.Equal(t, uint32(0), slab.At(1).TickCounter)
	assert.Equal(t, uint32(3), slab.At(2).TickCounter, "ResetLocal must not touch siblings")

	slab.ResetSubtree(2, 2)
	assert.Equal(t, uint32(0), slab.At(2).TickCounter)
	assert.Equal(t, uint32(0), slab.At(3).TickCounter)
	assert.Equal(t, uint32(1), slab.At(0).TickCounter, "ResetSubtree must not touch ids outside its range")
}

func TestStateSlabResetAll(t *testing.T) {
	slab := NewStateSlab(3)
	for i := 0; i < 3; i++ {
		slab.At(i).IterationCount = 5
	}
	slab.ResetAll()
	for i := 0; i < 3; i++ {
		assert.Equal(t, uint32(0), slab.At(i).IterationCount)
	}
}

func TestNodeStateSelectedChildSetFlag(t *testing.T) {
	var s NodeState
	assert.False(t, s.SelectedChildSet, "zero value has no selection, distinct from selecting index 0")
	s.SelectedChild = 0
	s.SelectedChildSet = true
	assert.True(t, s.SelectedChildSet)
	s.Reset()
	assert.False(t, s.SelectedChildSet)
}
