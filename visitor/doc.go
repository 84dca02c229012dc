// Package visitor offers generic visitors for common container types.
// It provides reflection-backed iteration over structs, maps, and slices,
// with simple callback-based traversal.
package visitor

