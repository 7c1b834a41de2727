package signboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeHierarchy(t *testing.T) {

	room := NewNode("Room")
	desk := NewNode("Desk")
	cup := NewModel(NewBoxMesh(1, 1, 1), "Cup")

	room.AddChildren(desk)
	desk.AddChildren(cup)

	assert.Equal(t, room, desk.Parent())
	assert.Equal(t, INode(room), cup.Root())
	assert.Equal(t, INode(cup), room.Get("Desk/Cup"))
	assert.Equal(t, INode(desk), cup.Get("../"))
	assert.Equal(t, INode(cup), FindByName(room, "Cup"))
	assert.Nil(t, FindByName(room, "Lamp"))
	assert.Len(t, room.ChildrenRecursive(), 2)

	// Reparenting moves the node instead of duplicating it.
	room.AddChildren(cup)
	assert.Empty(t, desk.Children())
	assert.Equal(t, 1, cup.Index())

	cup.Unparent()
	assert.Nil(t, cup.Parent())
	assert.Equal(t, -1, cup.Index())
	assert.Len(t, room.Children(), 1)

}

func TestNodeWorldTransform(t *testing.T) {

	parent := NewNode("Parent")
	child := NewNode("Child")
	parent.AddChildren(child)

	parent.SetLocalPosition(1, 2, 3)
	parent.SetLocalScale(2, 2, 2)
	child.SetLocalPosition(1, 0, 0)

	assert.True(t, child.WorldPosition().Equals(Vector3{3, 2, 3}), "world position %s", child.WorldPosition())

	// Moving the parent dirties the child's cached transform.
	parent.SetLocalPosition(0, 0, 0)
	assert.True(t, child.WorldPosition().Equals(Vector3{2, 0, 0}), "world position %s", child.WorldPosition())

	child.SetWorldPositionVec(Vector3{4, 4, 4})
	assert.True(t, child.LocalPosition().Equals(Vector3{2, 2, 2}), "local position %s", child.LocalPosition())

}

func TestNodeWalkStops(t *testing.T) {

	root := NewNode("Root")
	for _, name := range []string{"A", "B", "C"} {
		root.AddChildren(NewNode(name))
	}

	visited := []string{}
	root.Walk(func(n INode) bool {
		visited = append(visited, n.Name())
		return n.Name() != "B"
	})

	assert.Equal(t, []string{"Root", "A", "B"}, visited)

}

func TestNodeIDsAreUnique(t *testing.T) {
	a, b := NewNode("A"), NewNode("A")
	require.NotEqual(t, a.ID(), b.ID())
}

func TestNodeHierarchyAsString(t *testing.T) {

	root := NewNode("Board")
	sign := NewModel(NewBoxMesh(1, 1, 1), "Sign")
	sign.SetLocalPosition(0, 1, 0)
	root.AddChildren(sign)
	sign.AddChildren(NewDirectionalLight("Sun", 1, 1, 1, 1))

	tree := root.HierarchyAsString()

	assert.Equal(t, 3, strings.Count(tree, "\n"))
	assert.Contains(t, tree, "[ROOT] Board")
	assert.Contains(t, tree, "[MODEL] Sign : [0.00, 1.00, 0.00]")
	assert.Contains(t, tree, "[DIR] Sun")

}
