package marshal

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/francoispqt/gojay"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/node"
)

var nullLiteral = []byte("null")

// Engine writes node tree as JSON text
type Engine struct {
	maxDepth int
}

// New creates marshal engine, maxDepth limits container nesting, zero means unlimited
func New(maxDepth int) *Engine {
	return &Engine{maxDepth: maxDepth}
}

// Marshal encodes node tree, object entries keep insertion order and number literals are written verbatim
func (e *Engine) Marshal(root *node.Node) ([]byte, error) {
	if err := e.validate(root, 0); err != nil {
		return nil, err
	}
	switch root.Kind() {
	case node.ObjectKind:
		return gojay.MarshalJSONObject(objectMarshaler{root})
	case node.ArrayKind:
		return gojay.MarshalJSONArray(arrayMarshaler{root})
	case node.StringKind:
		return gojay.Marshal(root.Text())
	case node.NumberKind:
		return []byte(root.Text()), nil
	case node.BoolKind:
		return []byte(strconv.FormatBool(root.Bool())), nil
	}
	return nullLiteral, nil
}

func (e *Engine) validate(n *node.Node, depth int) error {
	switch n.Kind() {
	case node.NumberKind:
		if !conv.ValidNumber(n.Text()) {
			return errors.Newf("json: invalid number literal %q", n.Text())
		}
	case node.ObjectKind:
		if e.maxDepth > 0 && depth >= e.maxDepth {
			return errors.Newf("json: exceeded max depth %d", e.maxDepth)
		}
		for _, field := range n.Fields() {
			if err := e.validate(field.Value, depth+1); err != nil {
				return err
			}
		}
	case node.ArrayKind:
		if e.maxDepth > 0 && depth >= e.maxDepth {
			return errors.Newf("json: exceeded max depth %d", e.maxDepth)
		}
		for _, item := range n.Items() {
			if err := e.validate(item, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

type objectMarshaler struct {
	node *node.Node
}

func (o objectMarshaler) MarshalJSONObject(enc *gojay.Encoder) {
	for _, field := range o.node.Fields() {
		value := field.Value
		switch value.Kind() {
		case node.ObjectKind:
			enc.AddObjectKey(field.Key, objectMarshaler{value})
		case node.ArrayKind:
			enc.AddArrayKey(field.Key, arrayMarshaler{value})
		case node.StringKind:
			enc.AddStringKey(field.Key, value.Text())
		case node.NumberKind:
			literal := gojay.EmbeddedJSON(value.Text())
			enc.AddEmbeddedJSONKey(field.Key, &literal)
		case node.BoolKind:
			enc.AddBoolKey(field.Key, value.Bool())
		default:
			enc.AddNullKey(field.Key)
		}
	}
}

func (o objectMarshaler) IsNil() bool {
	return false
}

type arrayMarshaler struct {
	node *node.Node
}

func (a arrayMarshaler) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range a.node.Items() {
		switch item.Kind() {
		case node.ObjectKind:
			enc.AddObject(objectMarshaler{item})
		case node.ArrayKind:
			enc.AddArray(arrayMarshaler{item})
		case node.StringKind:
			enc.AddString(item.Text())
		case node.NumberKind:
			literal := gojay.EmbeddedJSON(item.Text())
			enc.AddEmbeddedJSON(&literal)
		case node.BoolKind:
			enc.AddBool(item.Bool())
		default:
			enc.AddNull()
		}
	}
}

func (a arrayMarshaler) IsNil() bool {
	return false
}
