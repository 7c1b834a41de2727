package signboard

// PropertyInteractive is the property marking a node of a loaded model as the one that reacts to the pointer.
const PropertyInteractive = "interactive"

// Properties is an unordered set of property names to values, carrying data on Nodes. Models loaded from glTF files get the
// custom properties ("extras") of their glTF node.
type Properties struct {
	props map[string]*Property
}

// NewProperties returns a new Properties object.
func NewProperties() *Properties {
	return &Properties{map[string]*Property{}}
}

// Clear clears the Properties object of all properties.
func (props *Properties) Clear() {
	props.props = map[string]*Property{}
}

// Remove removes the property specified from the Properties object.
func (props *Properties) Remove(propName string) {
	delete(props.props, propName)
}

// Has returns true if the Properties object has properties by all of the names specified, and false otherwise.
func (props *Properties) Has(propNames ...string) bool {
	for _, t := range propNames {
		if _, exists := props.props[t]; !exists {
			return false
		}
	}
	return true
}

// Get returns the Property associated with the specified property name, creating it (with a nil value) if it doesn't exist.
func (props *Properties) Get(propName string) *Property {
	if _, ok := props.props[propName]; !ok {
		props.props[propName] = &Property{}
	}
	return props.props[propName]
}

// Count returns the number of properties.
func (props *Properties) Count() int {
	return len(props.props)
}

// Property represents a single named value on a Node.
type Property struct {
	Value any
}

// Set sets the property's value to the given value.
func (prop *Property) Set(value any) {
	prop.Value = value
}

// IsBool returns true if the Property is a boolean value.
func (prop *Property) IsBool() bool {
	_, ok := prop.Value.(bool)
	return ok
}

// AsBool returns the value associated with the Property as a bool, or false if it isn't one.
func (prop *Property) AsBool() bool {
	b, _ := prop.Value.(bool)
	return b
}

// IsString returns true if the Property is a string.
func (prop *Property) IsString() bool {
	_, ok := prop.Value.(string)
	return ok
}

// AsString returns the value associated with the Property as a string, or an empty string if it isn't one.
func (prop *Property) AsString() string {
	s, _ := prop.Value.(string)
	return s
}

// IsFloat64 returns true if the Property is a float64. Numbers read from glTF extras are always float64s.
func (prop *Property) IsFloat64() bool {
	_, ok := prop.Value.(float64)
	return ok
}

// AsFloat64 returns the value associated with the Property as a float64, or 0 if it isn't one.
func (prop *Property) AsFloat64() float64 {
	f, _ := prop.Value.(float64)
	return f
}

// FindByProperty returns the first node (depth-first, starting with root) that has the named property set to true, or nil.
func FindByProperty(root INode, propName string) INode {
	var found INode
	if root == nil {
		return nil
	}
	root.Walk(func(n INode) bool {
		if n.Properties().Has(propName) && n.Properties().Get(propName).AsBool() {
			found = n
			return false
		}
		return true
	})
	return found
}
