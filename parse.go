package typology

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/viant/parsly"
)

type parser struct {
	expr    string
	cursor  *parsly.Cursor
	classes *Classes
	scope   *Class
}

// Parse parses type expression, i.e. Pair<Integer,List<String>>[]
func (c *Classes) Parse(expr string) (*Type, error) {
	if ret, ok := c.parsed.Get(expr); ok {
		return ret, nil
	}
	ret, err := c.ParseIn(expr, nil)
	if err != nil {
		return nil, err
	}
	c.parsed.Set(expr, ret)
	return ret, nil
}

// MustParse parses type expression or panics
func (c *Classes) MustParse(expr string) *Type {
	ret, err := c.Parse(expr)
	if err != nil {
		panic(err)
	}
	return ret
}

// ParseIn parses type expression declared inside scope class, scope formal parameters become type variables
func (c *Classes) ParseIn(expr string, scope *Class) (*Type, error) {
	p := &parser{
		expr:    expr,
		cursor:  parsly.NewCursor("", []byte(expr), 0),
		classes: c,
		scope:   scope,
	}
	ret, err := p.parseType()
	if err != nil {
		return nil, err
	}
	p.cursor.MatchAny(whitespaceMatcher)
	if p.cursor.Pos < len(p.cursor.Input) {
		return nil, p.errorf("unexpected %q", string(p.cursor.Input[p.cursor.Pos:]))
	}
	return ret, nil
}

func (p *parser) parseType() (*Type, error) {
	match := p.cursor.MatchAfterOptional(whitespaceMatcher, identifierMatcher)
	if match.Code != identifierToken {
		return nil, p.errorf("expected type name")
	}
	name := match.Text(p.cursor)
	var ret *Type
	if p.scope != nil && p.scope.ParamIndex(name) != -1 {
		ret = VarOf(p.scope.Name, name)
		if p.cursor.MatchAfterOptional(whitespaceMatcher, argsOpenMatcher).Code == argsOpenToken {
			return nil, p.errorf("type variable %v can not have type arguments", name)
		}
	} else {
		class, ok := p.classes.Lookup(name)
		if !ok {
			return nil, errors.Wrapf(ErrUnknownClass, "%v in %q", name, p.expr)
		}
		args, err := p.parseArgs()
		if err != nil {
			return nil, err
		}
		if len(args) > 0 && len(args) != len(class.Params) {
			return nil, p.errorf("%v expects %d type arguments, got %d", class.Name, len(class.Params), len(args))
		}
		ret = Of(class.Name, args...)
	}
	for p.cursor.MatchAfterOptional(whitespaceMatcher, arrayMatcher).Code == arrayToken {
		ret = ArrayOf(ret)
	}
	return ret, nil
}

func (p *parser) parseArgs() ([]*Type, error) {
	if p.cursor.MatchAfterOptional(whitespaceMatcher, argsOpenMatcher).Code != argsOpenToken {
		return nil, nil
	}
	var args []*Type
	for {
		arg, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		match := p.cursor.MatchAfterOptional(whitespaceMatcher, comaMatcher, argsCloseMatcher)
		switch match.Code {
		case comaToken:
			continue
		case argsCloseToken:
			return args, nil
		default:
			return nil, p.errorf("expected ',' or '>'")
		}
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidType, "%v at %d in %q", fmt.Sprintf(format, args...), p.cursor.Pos, p.expr)
}
