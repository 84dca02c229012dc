// Package bson provides BSON codec for node tree, only object roots are supported.
package bson

import (
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/node"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentType represents BSON MIME type
const ContentType = "application/bson"

// ErrNonDocumentRoot is returned when node tree root is not an object
var ErrNonDocumentRoot = errors.New("bson: root must be an object")

// Codec converts object node tree to and from BSON document.
// Integral literals are stored as int32 when they fit, int64 otherwise, the rest as double.
type Codec struct{}

// New creates BSON codec
func New() *Codec {
	return &Codec{}
}

// ContentType returns BSON MIME type
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes object node as BSON document
func (c *Codec) Marshal(root *node.Node) ([]byte, error) {
	if root.Kind() != node.ObjectKind {
		return nil, errors.Wrapf(ErrNonDocumentRoot, "got %v", root.Kind())
	}
	doc, err := toDocument(root)
	if err != nil {
		return nil, err
	}
	return bson.Marshal(doc)
}

// Unmarshal decodes BSON document into object node
func (c *Codec) Unmarshal(data []byte) (*node.Node, error) {
	var doc bson.D
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "bson: invalid document")
	}
	return fromDocument(doc)
}

func toDocument(n *node.Node) (bson.D, error) {
	ret := make(bson.D, 0, n.Len())
	for _, field := range n.Fields() {
		value, err := toValue(field.Value)
		if err != nil {
			return nil, err
		}
		ret = append(ret, bson.E{Key: field.Key, Value: value})
	}
	return ret, nil
}

func toValue(n *node.Node) (interface{}, error) {
	switch n.Kind() {
	case node.ObjectKind:
		return toDocument(n)
	case node.ArrayKind:
		ret := make(bson.A, 0, n.Len())
		for _, item := range n.Items() {
			value, err := toValue(item)
			if err != nil {
				return nil, err
			}
			ret = append(ret, value)
		}
		return ret, nil
	case node.StringKind:
		return n.Text(), nil
	case node.NumberKind:
		return toNumber(n.Text())
	case node.BoolKind:
		return n.Bool(), nil
	}
	return nil, nil
}

func toNumber(literal string) (interface{}, error) {
	if !conv.ValidNumber(literal) {
		return nil, errors.Newf("bson: invalid number literal %q", literal)
	}
	if conv.IsIntegral(literal) {
		if value, err := strconv.ParseInt(literal, 10, 64); err == nil {
			if value >= math.MinInt32 && value <= math.MaxInt32 {
				return int32(value), nil
			}
			return value, nil
		}
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "bson: number literal %q", literal)
	}
	return value, nil
}

func fromDocument(doc bson.D) (*node.Node, error) {
	ret := node.NewObject()
	for _, elem := range doc {
		value, err := fromValue(elem.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "bson: field %v", elem.Key)
		}
		ret.Put(elem.Key, value)
	}
	return ret, nil
}

func fromValue(value interface{}) (*node.Node, error) {
	switch actual := value.(type) {
	case nil, primitive.Null, primitive.Undefined:
		return node.Null(), nil
	case bson.D:
		return fromDocument(actual)
	case bson.M:
		return nil, errors.New("unordered document")
	case bson.A:
		ret := node.NewArray()
		for _, item := range actual {
			elem, err := fromValue(item)
			if err != nil {
				return nil, err
			}
			ret.Append(elem)
		}
		return ret, nil
	case string:
		return node.NewString(actual), nil
	case bool:
		return node.NewBool(actual), nil
	case int32:
		return node.NewInt(int64(actual)), nil
	case int64:
		return node.NewInt(actual), nil
	case float64:
		return node.NewFloat(actual, 64)
	case primitive.Decimal128:
		literal := actual.String()
		if !conv.ValidNumber(literal) {
			return nil, errors.Newf("unsupported decimal %v", literal)
		}
		return node.NewNumber(node.Number(literal)), nil
	case primitive.ObjectID:
		return node.NewString(actual.Hex()), nil
	case primitive.DateTime:
		return node.NewString(actual.Time().UTC().Format(time.RFC3339Nano)), nil
	case primitive.Symbol:
		return node.NewString(string(actual)), nil
	}
	return nil, errors.Newf("unsupported value type %T", value)
}

var _ node.Codec = (*Codec)(nil)
