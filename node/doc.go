// Package node defines the intermediate tree exchanged between the conversion engine
// and text or binary codecs: ordered objects, arrays, string, number and bool
// primitives and null.
package node
