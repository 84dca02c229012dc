package json

import (
	jsonmarshal "github.com/viant/typology/encoding/json/marshal"
	jsonunmarshal "github.com/viant/typology/encoding/json/unmarshal"
	"github.com/viant/typology/node"
)

// ContentType represents JSON MIME type
const ContentType = "application/json"

var defaultCodec = New()

// Codec converts node tree to and from JSON text
type Codec struct {
	options   Options
	marshal   *jsonmarshal.Engine
	unmarshal *jsonunmarshal.Engine
}

// ContentType returns JSON MIME type
func (c *Codec) ContentType() string {
	return ContentType
}

// Marshal encodes node tree as JSON text
func (c *Codec) Marshal(root *node.Node) ([]byte, error) {
	return c.marshal.Marshal(root)
}

// Unmarshal decodes JSON text into node tree
func (c *Codec) Unmarshal(data []byte) (*node.Node, error) {
	return c.unmarshal.Unmarshal(data)
}

// Options returns resolved codec options
func (c *Codec) Options() Options {
	return c.options
}

// New creates JSON codec
func New(opts ...Option) *Codec {
	options := resolveOptions(opts)
	return &Codec{
		options:   options,
		marshal:   jsonmarshal.New(options.MaxDepth),
		unmarshal: jsonunmarshal.New(options.DuplicateKeyPolicy, options.MalformedPolicy, options.MaxDepth),
	}
}

// Marshal encodes node tree with default codec
func Marshal(root *node.Node) ([]byte, error) {
	return defaultCodec.Marshal(root)
}

// Unmarshal decodes JSON text with default codec
func Unmarshal(data []byte) (*node.Node, error) {
	return defaultCodec.Unmarshal(data)
}

var _ node.Codec = (*Codec)(nil)
