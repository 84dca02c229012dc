// Package msgpack provides MessagePack codec for node tree.
package msgpack

import (
	"bytes"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/node"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// ContentType represents MessagePack MIME type
const ContentType = "application/msgpack"

const maxDepth = 1000

// Codec converts node tree to and from MessagePack.
// Integral number literals are encoded as int or uint, other literals as float64.
type Codec struct{}

// New creates MessagePack codec
func New() *Codec {
	return &Codec{}
}

// ContentType returns MessagePack MIME type
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes node tree
func (c *Codec) Marshal(root *node.Node) ([]byte, error) {
	buf := new(bytes.Buffer)
	enc := msgpack.NewEncoder(buf)
	if err := encode(enc, root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes node tree, trailing data is an error
func (c *Codec) Unmarshal(data []byte) (*node.Node, error) {
	reader := bytes.NewReader(data)
	dec := msgpack.NewDecoder(reader)
	ret, err := decode(dec, 0)
	if err != nil {
		return nil, err
	}
	if reader.Len() > 0 {
		return nil, errors.Newf("msgpack: %d bytes of trailing data", reader.Len())
	}
	return ret, nil
}

func encode(enc *msgpack.Encoder, n *node.Node) error {
	switch n.Kind() {
	case node.ObjectKind:
		if err := enc.EncodeMapLen(n.Len()); err != nil {
			return err
		}
		for _, field := range n.Fields() {
			if err := enc.EncodeString(field.Key); err != nil {
				return err
			}
			if err := encode(enc, field.Value); err != nil {
				return err
			}
		}
		return nil
	case node.ArrayKind:
		if err := enc.EncodeArrayLen(n.Len()); err != nil {
			return err
		}
		for _, item := range n.Items() {
			if err := encode(enc, item); err != nil {
				return err
			}
		}
		return nil
	case node.StringKind:
		return enc.EncodeString(n.Text())
	case node.NumberKind:
		return encodeNumber(enc, n.Text())
	case node.BoolKind:
		return enc.EncodeBool(n.Bool())
	}
	return enc.EncodeNil()
}

func encodeNumber(enc *msgpack.Encoder, literal string) error {
	if !conv.ValidNumber(literal) {
		return errors.Newf("msgpack: invalid number literal %q", literal)
	}
	if conv.IsIntegral(literal) {
		if value, err := strconv.ParseInt(literal, 10, 64); err == nil {
			return enc.EncodeInt(value)
		}
		if value, err := strconv.ParseUint(literal, 10, 64); err == nil {
			return enc.EncodeUint(value)
		}
	}
	value, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return errors.Wrapf(err, "msgpack: number literal %q", literal)
	}
	return enc.EncodeFloat64(value)
}

func decode(dec *msgpack.Decoder, depth int) (*node.Node, error) {
	code, err := dec.PeekCode()
	if err != nil {
		return nil, errors.Wrap(err, "msgpack: unexpected end of input")
	}
	switch {
	case code == msgpcode.Nil:
		return node.Null(), dec.DecodeNil()
	case code == msgpcode.True || code == msgpcode.False:
		value, err := dec.DecodeBool()
		if err != nil {
			return nil, err
		}
		return node.NewBool(value), nil
	case code == msgpcode.Uint64:
		value, err := dec.DecodeUint64()
		if err != nil {
			return nil, err
		}
		return node.NewUint(value), nil
	case msgpcode.IsFixedNum(code), code == msgpcode.Uint8, code == msgpcode.Uint16, code == msgpcode.Uint32,
		code == msgpcode.Int8, code == msgpcode.Int16, code == msgpcode.Int32, code == msgpcode.Int64:
		value, err := dec.DecodeInt64()
		if err != nil {
			return nil, err
		}
		return node.NewInt(value), nil
	case code == msgpcode.Float:
		value, err := dec.DecodeFloat32()
		if err != nil {
			return nil, err
		}
		return node.NewFloat(float64(value), 32)
	case code == msgpcode.Double:
		value, err := dec.DecodeFloat64()
		if err != nil {
			return nil, err
		}
		return node.NewFloat(value, 64)
	case msgpcode.IsString(code), msgpcode.IsBin(code):
		value, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}
		return node.NewString(value), nil
	case msgpcode.IsFixedMap(code), code == msgpcode.Map16, code == msgpcode.Map32:
		if depth >= maxDepth {
			return nil, errors.Newf("msgpack: exceeded max depth %d", maxDepth)
		}
		return decodeMap(dec, depth)
	case msgpcode.IsFixedArray(code), code == msgpcode.Array16, code == msgpcode.Array32:
		if depth >= maxDepth {
			return nil, errors.Newf("msgpack: exceeded max depth %d", maxDepth)
		}
		return decodeArray(dec, depth)
	}
	return nil, errors.Newf("msgpack: unsupported code %#x", code)
}

func decodeMap(dec *msgpack.Decoder, depth int) (*node.Node, error) {
	size, err := dec.DecodeMapLen()
	if err != nil {
		return nil, err
	}
	ret := node.NewObject()
	for i := 0; i < size; i++ {
		code, err := dec.PeekCode()
		if err != nil {
			return nil, err
		}
		if !msgpcode.IsString(code) {
			return nil, errors.Newf("msgpack: unsupported map key code %#x", code)
		}
		key, err := dec.DecodeString()
		if err != nil {
			return nil, err
		}
		value, err := decode(dec, depth+1)
		if err != nil {
			return nil, err
		}
		ret.Put(key, value)
	}
	return ret, nil
}

func decodeArray(dec *msgpack.Decoder, depth int) (*node.Node, error) {
	size, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, err
	}
	ret := node.NewArray()
	for i := 0; i < size; i++ {
		item, err := decode(dec, depth+1)
		if err != nil {
			return nil, err
		}
		ret.Append(item)
	}
	return ret, nil
}

var _ node.Codec = (*Codec)(nil)
