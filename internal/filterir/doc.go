// Package filterir provides the intermediate representation for catalog
// filter predicates.
//
// A filter is a binary tree: Branch nodes carry the logical connective
// (AND/OR) and Leaf nodes carry one comparison between an attribute or
// partition key and a constant. The tree is assembled by Builder from the
// postfix event stream a bottom-up parser emits, and is immutable once
// built.
//
// This package contains representation only. The dialect backends
// (internal/jdoql, internal/directsql) walk the tree and render fragments;
// filterir imports nothing internal so it remains the foundational layer
// with no circular dependencies.
//
// SEALED INTERFACES:
//
// Node and Value are sealed interfaces using the marker method pattern.
// Only types in this package implement them, which keeps type switches in
// the backends exhaustive:
//
//	switch n := node.(type) {
//	case *Branch:
//	    // connective
//	case *Leaf:
//	    // comparison
//	}
//
// Value is deliberately limited to StringValue and IntValue. The encoded
// partition name is the source of truth for how a constant is written as a
// string, and it only defines formatting for strings and 64-bit integers.
// Richer numeric kinds must not be added without extending the encoding
// first.
package filterir
