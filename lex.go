package typology

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	whitespaceToken = iota
	identifierToken
	argsOpenToken
	argsCloseToken
	comaToken
	arrayToken
)

var (
	whitespaceMatcher = parsly.NewToken(whitespaceToken, " ", matcher.NewWhiteSpace())
	identifierMatcher = parsly.NewToken(identifierToken, "identifier", &identifier{})
	argsOpenMatcher   = parsly.NewToken(argsOpenToken, "<", &literal{value: "<"})
	argsCloseMatcher  = parsly.NewToken(argsCloseToken, ">", &literal{value: ">"})
	comaMatcher       = parsly.NewToken(comaToken, ",", &literal{value: ","})
	arrayMatcher      = parsly.NewToken(arrayToken, "[]", &literal{value: "[]"})
)

// identifier matches qualified class or variable name
type identifier struct{}

func (i *identifier) Match(cursor *parsly.Cursor) (matched int) {
	input := cursor.Input[cursor.Pos:]
	for j, c := range input {
		if isIdentifierStart(c) || (j > 0 && (isDigit(c) || c == '.')) {
			matched++
			continue
		}
		break
	}
	return matched
}

type literal struct {
	value string
}

func (l *literal) Match(cursor *parsly.Cursor) (matched int) {
	input := cursor.Input[cursor.Pos:]
	if len(input) < len(l.value) || string(input[:len(l.value)]) != l.value {
		return 0
	}
	return len(l.value)
}

func isIdentifierStart(c byte) bool {
	return c == '_' || c == '$' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
