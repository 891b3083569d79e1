// Package jdoql compiles filter predicate trees to parameterized JDOQL
// fragments for the catalog's object-query engine.
//
// The entry point is Generator. A table-target generator rewrites leaf
// keys to object accessors (owner, last access time, property map lookups)
// and a partition-target generator compiles comparisons on partition keys,
// reducing equality tests to cheap substring tests on the stored encoded
// partition name wherever it can.
//
// Constants never appear inline in a fragment. Every constant is bound in
// the filterir.Params map under a generated name and the fragment
// references that name; the downstream executor binds the values. This is
// both the injection-safety measure and the executor's contract.
package jdoql
