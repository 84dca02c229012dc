package unmarshal

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/francoispqt/gojay"
	"github.com/viant/typology/conv"
	"github.com/viant/typology/node"
)

// DuplicateKeyPolicy controls duplicate object key behavior.
type DuplicateKeyPolicy int

const (
	LastWins DuplicateKeyPolicy = iota
	ErrorOnDuplicate
)

// MalformedPolicy controls malformed JSON tolerance.
type MalformedPolicy int

const (
	// Tolerant accepts a trailing comma before a closing bracket or brace
	Tolerant MalformedPolicy = iota
	FailFast
)

// Engine reads JSON text into node tree
type Engine struct {
	DuplicateKeyPolicy DuplicateKeyPolicy
	MalformedPolicy    MalformedPolicy
	MaxDepth           int
}

// New creates unmarshal engine, maxDepth limits container nesting, zero means unlimited
func New(duplicates DuplicateKeyPolicy, malformed MalformedPolicy, maxDepth int) *Engine {
	return &Engine{DuplicateKeyPolicy: duplicates, MalformedPolicy: malformed, MaxDepth: maxDepth}
}

// Unmarshal decodes a single JSON document into node tree, object key order is preserved and number literals are kept verbatim
func (e *Engine) Unmarshal(data []byte) (*node.Node, error) {
	d := &scanner{engine: e, data: data}
	ret, err := d.parseValue(0)
	if err != nil {
		return nil, err
	}
	d.skipWS()
	if d.pos != len(d.data) {
		return nil, errors.Newf("json: unexpected trailing data at %d", d.pos)
	}
	return ret, nil
}

type scanner struct {
	engine *Engine
	data   []byte
	pos    int
}

func (d *scanner) skipWS() {
	for d.pos < len(d.data) {
		switch d.data[d.pos] {
		case ' ', '\t', '\n', '\r':
			d.pos++
		default:
			return
		}
	}
}

func (d *scanner) checkDepth(depth int) error {
	if d.engine.MaxDepth > 0 && depth >= d.engine.MaxDepth {
		return errors.Newf("json: exceeded max depth %d", d.engine.MaxDepth)
	}
	return nil
}

func (d *scanner) parseValue(depth int) (*node.Node, error) {
	d.skipWS()
	if d.pos >= len(d.data) {
		return nil, errors.New("json: unexpected end of input")
	}
	switch d.data[d.pos] {
	case '{':
		return d.parseObject(depth)
	case '[':
		return d.parseArray(depth)
	case '"':
		value, err := d.parseString()
		if err != nil {
			return nil, err
		}
		return node.NewString(value), nil
	case 't':
		if d.match("true") {
			return node.NewBool(true), nil
		}
	case 'f':
		if d.match("false") {
			return node.NewBool(false), nil
		}
	case 'n':
		if d.match("null") {
			return node.Null(), nil
		}
	default:
		return d.parseNumber()
	}
	return nil, errors.Newf("json: invalid token at %d", d.pos)
}

func (d *scanner) match(token string) bool {
	end := d.pos + len(token)
	if end > len(d.data) || string(d.data[d.pos:end]) != token {
		return false
	}
	d.pos = end
	return true
}

// closes reports whether a trailing comma is directly followed by the closing delimiter
func (d *scanner) closes(delimiter byte) (bool, error) {
	d.skipWS()
	if d.pos >= len(d.data) || d.data[d.pos] != delimiter {
		return false, nil
	}
	if d.engine.MalformedPolicy == FailFast {
		return false, errors.Newf("json: trailing comma at %d", d.pos)
	}
	d.pos++
	return true, nil
}

func (d *scanner) parseObject(depth int) (*node.Node, error) {
	if err := d.checkDepth(depth); err != nil {
		return nil, err
	}
	d.pos++
	ret := node.NewObject()
	d.skipWS()
	if d.pos < len(d.data) && d.data[d.pos] == '}' {
		d.pos++
		return ret, nil
	}
	for {
		d.skipWS()
		key, err := d.parseString()
		if err != nil {
			return nil, err
		}
		if d.engine.DuplicateKeyPolicy == ErrorOnDuplicate {
			if _, ok := ret.Get(key); ok {
				return nil, errors.Newf("json: duplicate field %q at %d", key, d.pos)
			}
		}
		d.skipWS()
		if d.pos >= len(d.data) || d.data[d.pos] != ':' {
			return nil, errors.Newf("json: expected ':' at %d", d.pos)
		}
		d.pos++
		value, err := d.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		ret.Put(key, value)
		d.skipWS()
		if d.pos >= len(d.data) {
			return nil, errors.New("json: unexpected end of input in object")
		}
		if d.data[d.pos] == '}' {
			d.pos++
			return ret, nil
		}
		if d.data[d.pos] != ',' {
			return nil, errors.Newf("json: expected ',' at %d", d.pos)
		}
		d.pos++
		if closed, err := d.closes('}'); err != nil || closed {
			return ret, err
		}
	}
}

func (d *scanner) parseArray(depth int) (*node.Node, error) {
	if err := d.checkDepth(depth); err != nil {
		return nil, err
	}
	d.pos++
	ret := node.NewArray()
	d.skipWS()
	if d.pos < len(d.data) && d.data[d.pos] == ']' {
		d.pos++
		return ret, nil
	}
	for {
		value, err := d.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}
		ret.Append(value)
		d.skipWS()
		if d.pos >= len(d.data) {
			return nil, errors.New("json: unexpected end of input in array")
		}
		if d.data[d.pos] == ']' {
			d.pos++
			return ret, nil
		}
		if d.data[d.pos] != ',' {
			return nil, errors.Newf("json: expected ',' at %d", d.pos)
		}
		d.pos++
		if closed, err := d.closes(']'); err != nil || closed {
			return ret, err
		}
	}
}

// parseString reads a quoted string, escaped text is decoded by gojay
func (d *scanner) parseString() (string, error) {
	if d.pos >= len(d.data) || d.data[d.pos] != '"' {
		return "", errors.Newf("json: expected string at %d", d.pos)
	}
	start := d.pos
	escaped, hasEscape := false, false
	for i := start + 1; i < len(d.data); i++ {
		c := d.data[i]
		if c == '"' && !escaped {
			d.pos = i + 1
			if !hasEscape {
				return string(d.data[start+1 : i]), nil
			}
			var value string
			if err := gojay.Unmarshal(d.data[start:d.pos], &value); err != nil {
				return "", errors.Wrapf(err, "json: invalid string at %d", start)
			}
			return strings.Clone(value), nil
		}
		if c == '\\' {
			escaped = !escaped
			hasEscape = true
			continue
		}
		if c < 0x20 {
			return "", errors.Newf("json: invalid control character in string at %d", i)
		}
		escaped = false
	}
	return "", errors.New("json: unterminated string")
}

func (d *scanner) parseNumber() (*node.Node, error) {
	start := d.pos
	for d.pos < len(d.data) {
		c := d.data[d.pos]
		if (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.' || c == 'e' || c == 'E' {
			d.pos++
			continue
		}
		break
	}
	literal := string(d.data[start:d.pos])
	if !conv.ValidNumber(literal) {
		if literal == "" {
			return nil, errors.Newf("json: invalid token at %d", start)
		}
		return nil, errors.Newf("json: invalid number %q at %d", literal, start)
	}
	return node.NewNumber(node.Number(literal)), nil
}
