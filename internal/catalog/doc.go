// Package catalog holds the schema-layer pieces the filter compiler
// depends on: the canonical partition-name encoding, the declared-type
// names for partition keys, and the well-known table attribute key names.
//
// The partition-name encoding is load-bearing for correctness. Stored
// partition identifiers are escaped "key=value" segments joined by "/",
// and the equality optimization in the dialect backends reduces key
// comparisons to substring tests on that encoded form. That reduction is
// only sound because EscapePathName escapes "=" and "/" inside keys and
// values, so an unescaped "=" or "/" in a stored name is always a
// structural boundary and a fragment like "ds=2020-01-01" cannot match a
// stored "ds=2020-01-011" once the delimiters are added.
package catalog
