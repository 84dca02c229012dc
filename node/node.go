package node

import (
	"strconv"

	"github.com/viant/typology/conv"
)

// Kind represents node kind
type Kind int

const (
	//NullKind represents null
	NullKind Kind = iota
	//ObjectKind represents ordered key to node mapping
	ObjectKind
	//ArrayKind represents ordered node sequence
	ArrayKind
	//StringKind represents string primitive
	StringKind
	//NumberKind represents number primitive kept as literal text
	NumberKind
	//BoolKind represents bool primitive
	BoolKind
)

func (k Kind) String() string {
	switch k {
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	case StringKind:
		return "string"
	case NumberKind:
		return "number"
	case BoolKind:
		return "bool"
	}
	return "null"
}

// Number represents number literal, i.e. 10, 1.0, 2.1E-5
type Number string

// Field represents object entry
type Field struct {
	Key   string
	Value *Node
}

// Node represents JSON like tree value
type Node struct {
	kind    Kind
	text    string
	boolean bool
	fields  []Field
	index   map[string]int
	items   []*Node
}

var null = &Node{kind: NullKind}

// Null returns null node
func Null() *Node {
	return null
}

// NewObject creates an empty object node
func NewObject() *Node {
	return &Node{kind: ObjectKind}
}

// NewArray creates an array node
func NewArray(items ...*Node) *Node {
	return &Node{kind: ArrayKind, items: items}
}

// NewString creates a string node
func NewString(value string) *Node {
	return &Node{kind: StringKind, text: value}
}

// NewNumber creates a number node from literal
func NewNumber(literal Number) *Node {
	return &Node{kind: NumberKind, text: string(literal)}
}

// NewInt creates an integral number node
func NewInt(value int64) *Node {
	return &Node{kind: NumberKind, text: strconv.FormatInt(value, 10)}
}

// NewUint creates an unsigned integral number node
func NewUint(value uint64) *Node {
	return &Node{kind: NumberKind, text: strconv.FormatUint(value, 10)}
}

// NewFloat creates a floating point number node, bitSize is 32 or 64
func NewFloat(value float64, bitSize int) (*Node, error) {
	literal, err := conv.FormatFloat(value, bitSize)
	if err != nil {
		return nil, err
	}
	return &Node{kind: NumberKind, text: literal}, nil
}

// NewBool creates a bool node
func NewBool(value bool) *Node {
	return &Node{kind: BoolKind, boolean: value}
}

// Kind returns node kind
func (n *Node) Kind() Kind {
	if n == nil {
		return NullKind
	}
	return n.kind
}

// IsNull returns true for null node
func (n *Node) IsNull() bool {
	return n.Kind() == NullKind
}

// Put sets object entry, it is a no-op for non object node. Existing key keeps its position and takes the new value
func (n *Node) Put(key string, value *Node) *Node {
	if n.kind != ObjectKind {
		return n
	}
	if value == nil {
		value = null
	}
	if n.index == nil {
		n.index = map[string]int{}
	}
	if i, ok := n.index[key]; ok {
		n.fields[i].Value = value
		return n
	}
	n.index[key] = len(n.fields)
	n.fields = append(n.fields, Field{Key: key, Value: value})
	return n
}

// Get returns object entry
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.index == nil {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.fields[i].Value, true
}

// Fields returns object entries in insertion order
func (n *Node) Fields() []Field {
	return n.fields
}

// Append appends array item, it is a no-op for non array node
func (n *Node) Append(item *Node) *Node {
	if n.kind != ArrayKind {
		return n
	}
	if item == nil {
		item = null
	}
	n.items = append(n.items, item)
	return n
}

// Items returns array items
func (n *Node) Items() []*Node {
	return n.items
}

// Len returns number of object entries or array items
func (n *Node) Len() int {
	switch n.Kind() {
	case ObjectKind:
		return len(n.fields)
	case ArrayKind:
		return len(n.items)
	}
	return 0
}

// Text returns string value or number literal
func (n *Node) Text() string {
	return n.text
}

// Literal returns number literal
func (n *Node) Literal() Number {
	return Number(n.text)
}

// Bool returns bool value
func (n *Node) Bool() bool {
	return n.boolean
}

// Interface returns primitive value as string, Number or bool, nil for null, node itself for containers
func (n *Node) Interface() interface{} {
	switch n.Kind() {
	case StringKind:
		return n.text
	case NumberKind:
		return Number(n.text)
	case BoolKind:
		return n.boolean
	case NullKind:
		return nil
	}
	return n
}

// Equal returns true if both nodes are structurally equal, object entries are compared in order
func (n *Node) Equal(other *Node) bool {
	if n.Kind() != other.Kind() {
		return false
	}
	switch n.Kind() {
	case NullKind:
		return true
	case StringKind, NumberKind:
		return n.text == other.text
	case BoolKind:
		return n.boolean == other.boolean
	case ArrayKind:
		if len(n.items) != len(other.items) {
			return false
		}
		for i, item := range n.items {
			if !item.Equal(other.items[i]) {
				return false
			}
		}
		return true
	}
	if len(n.fields) != len(other.fields) {
		return false
	}
	for i, field := range n.fields {
		candidate := other.fields[i]
		if field.Key != candidate.Key || !field.Value.Equal(candidate.Value) {
			return false
		}
	}
	return true
}
