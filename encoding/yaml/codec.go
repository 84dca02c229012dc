// Package yaml provides YAML codec for node tree.
package yaml

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/node"
	"gopkg.in/yaml.v3"
)

// ContentType represents YAML MIME type
const ContentType = "application/yaml"

const (
	nullTag  = "!!null"
	boolTag  = "!!bool"
	strTag   = "!!str"
	intTag   = "!!int"
	floatTag = "!!float"
	mapTag   = "!!map"
	seqTag   = "!!seq"
	mergeTag = "!!merge"
)

// Codec converts node tree to and from YAML document
type Codec struct{}

// New creates YAML codec
func New() *Codec {
	return &Codec{}
}

// ContentType returns YAML MIME type
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes node tree as YAML document, mapping keys keep object order
func (c *Codec) Marshal(root *node.Node) ([]byte, error) {
	doc, err := toYAML(root)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(doc)
}

// Unmarshal decodes first YAML document into node tree
func (c *Codec) Unmarshal(data []byte) (*node.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "yaml: invalid document")
	}
	if doc.Kind == 0 {
		return node.Null(), nil
	}
	return fromYAML(&doc, 0)
}

func toYAML(n *node.Node) (*yaml.Node, error) {
	switch n.Kind() {
	case node.ObjectKind:
		ret := &yaml.Node{Kind: yaml.MappingNode, Tag: mapTag}
		for _, field := range n.Fields() {
			value, err := toYAML(field.Value)
			if err != nil {
				return nil, err
			}
			key := &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: field.Key}
			ret.Content = append(ret.Content, key, value)
		}
		return ret, nil
	case node.ArrayKind:
		ret := &yaml.Node{Kind: yaml.SequenceNode, Tag: seqTag}
		for _, item := range n.Items() {
			value, err := toYAML(item)
			if err != nil {
				return nil, err
			}
			ret.Content = append(ret.Content, value)
		}
		return ret, nil
	case node.StringKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: n.Text()}, nil
	case node.NumberKind:
		literal := n.Text()
		if !conv.ValidNumber(literal) {
			return nil, errors.Newf("yaml: invalid number literal %q", literal)
		}
		tag := intTag
		if !conv.IsIntegral(literal) {
			tag = floatTag
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: literal}, nil
	case node.BoolKind:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: boolTag, Value: strconv.FormatBool(n.Bool())}, nil
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}, nil
}

func fromYAML(y *yaml.Node, depth int) (*node.Node, error) {
	if depth > maxAliasDepth {
		return nil, errors.New("yaml: exceeded max depth")
	}
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return node.Null(), nil
		}
		return fromYAML(y.Content[0], depth)
	case yaml.AliasNode:
		return fromYAML(y.Alias, depth+1)
	case yaml.MappingNode:
		ret := node.NewObject()
		for i := 0; i+1 < len(y.Content); i += 2 {
			key, value := y.Content[i], y.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				return nil, errors.Newf("yaml: unsupported non scalar key at line %d", key.Line)
			}
			if key.ShortTag() == mergeTag {
				return nil, errors.Newf("yaml: merge keys are not supported at line %d", key.Line)
			}
			item, err := fromYAML(value, depth+1)
			if err != nil {
				return nil, err
			}
			ret.Put(key.Value, item)
		}
		return ret, nil
	case yaml.SequenceNode:
		ret := node.NewArray()
		for _, item := range y.Content {
			value, err := fromYAML(item, depth+1)
			if err != nil {
				return nil, err
			}
			ret.Append(value)
		}
		return ret, nil
	}
	return scalar(y)
}

const maxAliasDepth = 1000

func scalar(y *yaml.Node) (*node.Node, error) {
	switch y.ShortTag() {
	case nullTag:
		return node.Null(), nil
	case boolTag:
		var value bool
		if err := y.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, "yaml: invalid bool at line %d", y.Line)
		}
		return node.NewBool(value), nil
	case intTag:
		if conv.ValidNumber(y.Value) {
			return node.NewNumber(node.Number(y.Value)), nil
		}
		value, err := strconv.ParseInt(strings.ReplaceAll(y.Value, "_", ""), 0, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "yaml: invalid int at line %d", y.Line)
		}
		return node.NewInt(value), nil
	case floatTag:
		literal := strings.TrimPrefix(y.Value, "+")
		if conv.ValidNumber(literal) {
			return node.NewNumber(node.Number(literal)), nil
		}
		var value float64
		if err := y.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, "yaml: invalid float at line %d", y.Line)
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, errors.Newf("yaml: %v is not a valid number value at line %d", y.Value, y.Line)
		}
		return node.NewFloat(value, 64)
	}
	return node.NewString(y.Value), nil
}

var _ node.Codec = (*Codec)(nil)
