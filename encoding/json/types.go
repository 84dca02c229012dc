package json

import (
	jsonunmarshal "github.com/viant/typology/encoding/json/unmarshal"
)

// Mode controls compatibility vs strict behavior.
type Mode int

const (
	ModeCompat Mode = iota
	ModeStrict
)

// DuplicateKeyPolicy controls duplicate object key behavior.
type DuplicateKeyPolicy = jsonunmarshal.DuplicateKeyPolicy

const (
	LastWins         = jsonunmarshal.LastWins
	ErrorOnDuplicate = jsonunmarshal.ErrorOnDuplicate
)

// MalformedPolicy controls malformed JSON tolerance.
type MalformedPolicy = jsonunmarshal.MalformedPolicy

const (
	Tolerant = jsonunmarshal.Tolerant
	FailFast = jsonunmarshal.FailFast
)

// DefaultMaxDepth limits container nesting when no explicit depth is given
const DefaultMaxDepth = 1000

// Option configures codec
type Option interface {
	apply(*Options)
}

// Options represents codec options
type Options struct {
	Mode               Mode
	DuplicateKeyPolicy DuplicateKeyPolicy
	MalformedPolicy    MalformedPolicy
	MaxDepth           int

	setDuplicateKeyPolicy bool
	setMalformedPolicy    bool
}
