package signboard

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// NodeType represents a Node's type. Node types are categorized, and can be said to extend or "be of" more general types.
// For example, a DirectionalLight has a type of NodeTypeDirectionalLight. That type can also be said to be NodeTypeLight
// (because it is a light).
type NodeType string

const (
	NodeTypeNode   NodeType = "Node"       // NodeTypeNode represents any generic node
	NodeTypeModel  NodeType = "NodeModel"  // NodeTypeModel represents specifically a Model
	NodeTypeCamera NodeType = "NodeCamera" // NodeTypeCamera represents specifically a Camera

	NodeTypeLight            NodeType = "NodeLight"            // NodeTypeLight represents any generic light
	NodeTypeAmbientLight     NodeType = "NodeLightAmbient"     // NodeTypeAmbientLight represents specifically an ambient light
	NodeTypeDirectionalLight NodeType = "NodeLightDirectional" // NodeTypeDirectionalLight represents specifically a directional (sun) light
)

// Is returns true if a NodeType satisfies another NodeType category. A specific node type can be said to
// contain a more general one, but not vice-versa. For example, a Model (which has type NodeTypeModel) can be
// said to be a Node (NodeTypeNode), but the reverse is not true (a NodeTypeNode is not a NodeTypeModel).
func (nt NodeType) Is(other NodeType) bool {
	if nt == other {
		return true
	}
	return strings.Contains(string(nt), string(other))
}

// INode represents an object that exists in 3D space and can be positioned relative to an origin point.
// By default, this origin point is {0, 0, 0} (or world origin), but Nodes can be parented
// to other Nodes to change this origin (making their movements relative and their transforms
// successive). Models, Cameras, and Lights fully implement the INode interface by means of embedding Node.
type INode interface {
	// Name returns the object's name.
	Name() string
	// SetName sets the object's name.
	SetName(name string)
	// ID returns the object's unique ID.
	ID() uint64
	// Type returns the NodeType for this object.
	Type() NodeType

	// Parent returns the Node's parent. If the Node has no parent, this will return nil.
	Parent() INode
	setParent(INode)
	// Unparent unparents the Node from its parent, removing it from the scenegraph.
	Unparent()
	// Root returns the root node in this tree by recursively traversing this node's hierarchy of
	// parents upwards.
	Root() INode
	// Scene looks for the Node's parents recursively to return what scene it exists in.
	// If the node is not within a tree (i.e. unparented), this will return nil.
	Scene() *Scene
	// Index returns the index of the Node in its parent's children list.
	// If the node doesn't have a parent, its index will be -1.
	Index() int

	// Children returns a copy of the Node's children.
	Children() []INode
	// ChildrenRecursive returns the Node's recursive children (i.e. children, grandchildren, etc), depth-first.
	ChildrenRecursive() []INode
	// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
	// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
	AddChildren(...INode)
	// RemoveChildren removes the provided children from this object.
	RemoveChildren(...INode)
	// Walk calls the function for this Node and then each recursive child, depth-first and in child order.
	// Returning false from the callback stops the walk; Walk returns false if it was stopped.
	Walk(func(INode) bool) bool

	// Transform returns a Matrix4 indicating the global position, rotation, and scale of the object, transforming it by any parents'.
	// If there's no change between the previous Transform() call and this one, Transform() will return a cached version of the
	// transform for efficiency.
	Transform() Matrix4
	dirtyTransform()

	LocalPosition() Vector3
	// SetLocalPosition sets the object's local position (position relative to its parent).
	SetLocalPosition(x, y, z float32)
	SetLocalPositionVec(position Vector3)
	// LocalScale returns the object's local scale (scale relative to its parent).
	LocalScale() Vector3
	SetLocalScale(w, h, d float32)
	// LocalRotation returns the object's local rotation Matrix4.
	LocalRotation() Matrix4
	// SetLocalRotation sets the object's local rotation Matrix4 (relative to any parent).
	SetLocalRotation(rotation Matrix4)

	// WorldPosition returns the node's world position, taking into account its parenting hierarchy.
	WorldPosition() Vector3
	// SetWorldPositionVec sets the world position of the given object using the provided position vector.
	SetWorldPositionVec(position Vector3)
	// WorldRotation returns an absolute rotation Matrix4 representing the object's rotation.
	WorldRotation() Matrix4
	// WorldScale returns the object's absolute world scale.
	WorldScale() Vector3

	// Visible returns whether the Object is visible.
	Visible() bool
	// SetVisible sets the object's visibility. If recursive is true, all recursive children of this Node will have their visibility set the same way.
	SetVisible(visible, recursive bool)

	// Get searches a node's hierarchy using a string to find a specified node. The path is in the format of names of nodes, separated by forward
	// slashes ('/'), and is relative to the node you use to call Get. "../" goes up one level in the hierarchy.
	Get(path string) INode
	// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children.
	HierarchyAsString() string
	// Properties returns the object's Properties.
	Properties() *Properties
}

// Nodes can be created on asset loading goroutines, so IDs are handed out atomically.
var nodeID atomic.Uint64

// Node represents a minimal struct that fully implements the INode interface. Model, Camera, and the lights embed Node
// into their structs to automatically easily implement INode.
type Node struct {
	id               uint64 // Unique ID for this node
	name             string
	position         Vector3
	scale            Vector3
	rotation         Matrix4
	visible          bool
	props            *Properties
	children         []INode
	parent           INode
	self             INode // The outermost type embedding this Node (i.e. the *Model for a Model)
	cachedTransform  Matrix4
	isTransformDirty bool
	scene            *Scene // Only set on a Scene's root node
}

// NewNode returns a new Node.
func NewNode(name string) *Node {

	nb := &Node{
		id:               nodeID.Add(1),
		name:             name,
		scale:            Vector3{1, 1, 1},
		rotation:         NewMatrix4(),
		children:         []INode{},
		visible:          true,
		props:            NewProperties(),
		isTransformDirty: true,
		// We set this just in case we call a transform property getter before setting it and caching anything
		cachedTransform: NewMatrix4(),
	}

	nb.self = nb

	return nb
}

// ID returns the object's unique ID.
func (node *Node) ID() uint64 {
	return node.id
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the object's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Type returns the NodeType for this object.
func (node *Node) Type() NodeType {
	return NodeTypeNode
}

// Properties returns this object's Properties.
func (node *Node) Properties() *Properties {
	return node.props
}

// Transform returns a Matrix4 indicating the global position, rotation, and scale of the object, transforming it by any parents'.
// If there's no change between the previous Transform() call and this one, Transform() will return a cached version of the
// transform for efficiency.
func (node *Node) Transform() Matrix4 {

	// S * R * T * Parent

	if !node.isTransformDirty {
		return node.cachedTransform
	}

	transform := NewMatrix4Scale(node.scale.X, node.scale.Y, node.scale.Z)
	transform = transform.Mult(node.rotation)
	transform = transform.Mult(NewMatrix4Translate(node.position.X, node.position.Y, node.position.Z))

	if node.parent != nil {
		transform = transform.Mult(node.parent.Transform())
	}

	node.cachedTransform = transform
	node.isTransformDirty = false

	return transform

}

// dirtyTransform sets this Node and all recursive children's isTransformDirty flags to be true, indicating that they need to be
// rebuilt. This should be called when modifying the transformation properties (position, scale, rotation) of the Node.
func (node *Node) dirtyTransform() {

	for _, child := range node.children {
		child.dirtyTransform()
	}

	node.isTransformDirty = true

}

// LocalPosition returns a 3D Vector consisting of the object's local position (position relative to its parent). If this object has no parent, the position will be
// relative to world origin (0, 0, 0).
func (node *Node) LocalPosition() Vector3 {
	return node.position
}

// SetLocalPosition sets the object's local position (position relative to its parent). If this object has no parent, the position should be
// relative to world origin (0, 0, 0).
func (node *Node) SetLocalPosition(x, y, z float32) {
	node.position.X = x
	node.position.Y = y
	node.position.Z = z
	node.dirtyTransform()
}

// SetLocalPositionVec sets the object's local position (position relative to its parent).
func (node *Node) SetLocalPositionVec(position Vector3) {
	node.SetLocalPosition(position.X, position.Y, position.Z)
}

// LocalScale returns the object's local scale (scale relative to its parent). If this object has no parent, the scale will be absolute.
func (node *Node) LocalScale() Vector3 {
	return node.scale
}

// SetLocalScale sets the object's local scale (scale relative to its parent). If this object has no parent, the scale would be absolute.
func (node *Node) SetLocalScale(w, h, d float32) {
	node.scale.X = w
	node.scale.Y = h
	node.scale.Z = d
	node.dirtyTransform()
}

// LocalRotation returns the object's local rotation Matrix4.
func (node *Node) LocalRotation() Matrix4 {
	return node.rotation
}

// SetLocalRotation sets the object's local rotation Matrix4 (relative to any parent).
func (node *Node) SetLocalRotation(rotation Matrix4) {
	node.rotation = rotation
	node.dirtyTransform()
}

// WorldPosition returns a 3D Vector consisting of the object's world position (position relative to the world origin point of {0, 0, 0}).
func (node *Node) WorldPosition() Vector3 {
	// We don't want to have to decompose if we don't have to
	return node.Transform().Row(3).Vector3()
}

// SetWorldPositionVec sets the object's world position (position relative to the world origin point of {0, 0, 0}).
func (node *Node) SetWorldPositionVec(position Vector3) {

	if node.parent != nil {

		parentTransform := node.parent.Transform()
		parentPos, parentScale, parentRot := parentTransform.Decompose()

		pr := parentRot.Transposed().MultVec(position.Sub(parentPos))
		pr.X /= parentScale.X
		pr.Y /= parentScale.Y
		pr.Z /= parentScale.Z

		node.position = pr

	} else {
		node.position = position
	}

	node.dirtyTransform()

}

// WorldRotation returns an absolute rotation Matrix4 representing the object's rotation. Note that this is a bit slow as it
// requires decomposing the node's world transform, so you want to use node.LocalRotation() if you can and performance is a concern.
func (node *Node) WorldRotation() Matrix4 {
	_, _, rotation := node.Transform().Decompose()
	return rotation
}

// WorldScale returns the object's absolute world scale as a 3D vector (i.e. X, Y, and Z components).
func (node *Node) WorldScale() Vector3 {
	_, scale, _ := node.Transform().Decompose()
	return scale
}

// Parent returns the Node's parent. If the Node has no parent, this will return nil.
func (node *Node) Parent() INode {
	return node.parent
}

func (node *Node) setParent(parent INode) {
	node.parent = parent
}

// Root returns the root node in this tree by recursively traversing this node's hierarchy of parents upwards.
func (node *Node) Root() INode {

	if node.parent == nil {
		return node.self
	}

	parent := node.parent

	for parent.Parent() != nil {
		parent = parent.Parent()
	}

	return parent

}

// Scene looks for the Node's parents recursively to return what scene it exists in.
// If the node is not within a tree (i.e. unparented), this will return nil.
func (node *Node) Scene() *Scene {
	if root, ok := node.Root().(*Node); ok {
		return root.scene
	}
	return nil
}

// AddChildren parents the provided children Nodes to the passed parent Node, inheriting its transformations and being under it in the scenegraph
// hierarchy. If the children are already parented to other Nodes, they are unparented before doing so.
func (node *Node) AddChildren(children ...INode) {
	for _, child := range children {
		if child == nil || child == node.self {
			continue
		}
		if child.Parent() != nil {
			child.Parent().RemoveChildren(child)
		}
		child.setParent(node.self)
		child.dirtyTransform()
		node.children = append(node.children, child)
	}
}

// RemoveChildren removes the provided children from this object.
func (node *Node) RemoveChildren(children ...INode) {

	for _, child := range children {
		for i, c := range node.children {
			if c == child {
				child.setParent(nil)
				child.dirtyTransform()
				node.children[i] = nil
				node.children = append(node.children[:i], node.children[i+1:]...)
				break
			}
		}
	}

}

// Unparent unparents the Node from its parent, removing it from the scenegraph. Note that this needs to be overridden for objects that embed Node.
func (node *Node) Unparent() {
	if node.parent != nil {
		node.parent.RemoveChildren(node.self)
	}
}

// Index returns the index of the Node in its parent's children list.
// If the node doesn't have a parent, its index will be -1.
func (node *Node) Index() int {
	if node.parent != nil {
		for i, c := range node.parent.Children() {
			if c == node.self {
				return i
			}
		}
	}
	return -1
}

// Children returns a copy of the Node's children.
func (node *Node) Children() []INode {
	return append(make([]INode, 0, len(node.children)), node.children...)
}

// ChildrenRecursive returns all of the Node's recursive children (children, grandchildren, etc), depth-first.
func (node *Node) ChildrenRecursive() []INode {
	out := []INode{}
	for _, child := range node.children {
		out = append(out, child)
		out = append(out, child.ChildrenRecursive()...)
	}
	return out
}

// Walk calls the function for this Node and then each recursive child, depth-first and in child order.
func (node *Node) Walk(forEach func(INode) bool) bool {

	if !forEach(node.self) {
		return false
	}

	for _, child := range node.children {
		if !child.Walk(forEach) {
			return false
		}
	}

	return true

}

// Visible returns whether the Object is visible.
func (node *Node) Visible() bool {
	return node.visible
}

// SetVisible sets the object's visibility. If recursive is true, all recursive children of this Node will have their visibility set the same way.
func (node *Node) SetVisible(visible bool, recursive bool) {
	if recursive {
		for _, child := range node.children {
			child.SetVisible(visible, true)
		}
	}
	node.visible = visible
}

// Get searches a node's hierarchy using a string to find a specified node. The path is in the format of names of nodes, separated by forward
// slashes ('/'), and is relative to the node you use to call Get. As an example of Get, if you had a cup parented to a desk, which was
// parented to a room, that was finally parented to the root of the scene, it would be found at "Room/Desk/Cup". Note also that you can use "../" to
// "go up one" in the hierarchy (so cup.Get("../") would return the Desk node).
func (node *Node) Get(path string) INode {

	split := []string{}

	for _, s := range strings.Split(path, `/`) {
		if len(strings.TrimSpace(s)) > 0 {
			split = append(split, s)
		}
	}

	var search func(node INode) INode

	search = func(node INode) INode {

		if node == nil {
			return nil
		} else if len(split) == 0 {
			return node
		}

		if split[0] == ".." {
			split = split[1:]
			return search(node.Parent())
		}

		for _, child := range node.Children() {
			if child.Name() == split[0] {
				split = split[1:]
				return search(child)
			}
		}

		return nil

	}

	return search(node.self)

}

// FindByName returns the first Node (depth-first, including this one) with the given name, or nil if none exists.
func FindByName(root INode, name string) INode {
	var found INode
	root.Walk(func(n INode) bool {
		if n.Name() == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// HierarchyAsString returns a string displaying the hierarchy of this Node, and all recursive children.
// This is a useful function to debug the layout of a node tree, for example.
func (node *Node) HierarchyAsString() string {

	var printNode func(node INode, level int) string

	printNode = func(node INode, level int) string {

		prefix := ""

		if level == 0 {
			prefix = "ROOT"
		} else {

			nodeType := node.Type()

			if nodeType.Is(NodeTypeModel) {
				prefix = "MODEL"
			} else if nodeType.Is(NodeTypeCamera) {
				prefix = "CAM"
			} else if nodeType.Is(NodeTypeAmbientLight) {
				prefix = "AMB"
			} else if nodeType.Is(NodeTypeDirectionalLight) {
				prefix = "DIR"
			} else {
				prefix = "NODE"
			}

		}

		str := ""

		for i := 0; i < level; i++ {
			str += "    |"
		}

		wp := node.WorldPosition()
		wpStr := "[" + strconv.FormatFloat(float64(wp.X), 'f', 2, 32) + ", " + strconv.FormatFloat(float64(wp.Y), 'f', 2, 32) + ", " + strconv.FormatFloat(float64(wp.Z), 'f', 2, 32) + "]"

		if level > 0 {
			str += "-"
		}
		str += " [" + prefix + "] " + node.Name() + " : " + wpStr + "\n"

		for _, child := range node.Children() {
			str += printNode(child, level+1)
		}

		return str
	}

	return printNode(node.self, 0)
}
