package directsql

import (
	"fmt"
	"strings"

	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
	"github.com/roach88/partql/internal/jdoql"
)

// PartNameColumn is the column holding the encoded partition name.
const PartNameColumn = `"PARTITIONS"."PART_NAME"`

// Generator compiles a filter tree to a SQL WHERE-clause fragment over the
// encoded partition name. Each Generate call produces a fresh Params owned
// by the caller.
type Generator struct {
	keys []catalog.PartitionKey
}

// NewGenerator returns a generator for the given ordered partition key
// list.
func NewGenerator(keys []catalog.PartitionKey) *Generator {
	return &Generator{keys: keys}
}

// Generate compiles root and returns the fragment with its parameter map.
// A nil root is the always-true filter: empty fragment, empty params. On
// error no fragment or params are returned.
func (g *Generator) Generate(root filterir.Node) (string, *filterir.Params, error) {
	params := filterir.NewParams()
	if root == nil {
		return "", params, nil
	}
	frag, err := g.node(root, params)
	if err != nil {
		return "", nil, err
	}
	return frag, params, nil
}

func (g *Generator) node(n filterir.Node, params *filterir.Params) (string, error) {
	switch node := n.(type) {
	case *filterir.Branch:
		left, err := g.node(node.Left, params)
		if err != nil {
			return "", err
		}
		right, err := g.node(node.Right, params)
		if err != nil {
			return "", err
		}
		return "(" + left + " " + node.Op.SQL() + " " + right + ")", nil
	case *filterir.Leaf:
		return g.leaf(node, params)
	default:
		return "", fmt.Errorf("directsql: unsupported node type %T", n)
	}
}

func (g *Generator) leaf(leaf *filterir.Leaf, params *filterir.Params) (string, error) {
	if isTableFilterField(leaf.Key) {
		return "", &filterir.FilterError{
			Code:    filterir.ErrCodeUnsupportedKey,
			Message: "table attribute filters are not supported by the direct SQL path",
			Key:     leaf.Key,
		}
	}

	idx, ok := catalog.KeyIndex(g.keys, leaf.Key)
	if !ok {
		return "", &filterir.FilterError{
			Code:    filterir.ErrCodeUnresolvableKey,
			Message: fmt.Sprintf("specified key %q is not a partitioning key for the table", leaf.Key),
			Key:     leaf.Key,
		}
	}
	key := g.keys[idx]

	value, err := jdoql.PushdownValue(key, leaf)
	if err != nil {
		return "", err
	}

	if leaf.Op.IsEquality() {
		return equalsFilter(key.Name, value, idx, len(g.keys), leaf.Op == filterir.Equals, params)
	}

	accessor := valueAccessor(key.Name, idx, len(g.keys))
	return genericFragment(accessor, leaf, filterir.StringValue(value), params)
}

func isTableFilterField(key string) bool {
	return key == catalog.FilterFieldOwner ||
		key == catalog.FilterFieldLastAccess ||
		strings.HasPrefix(key, catalog.FilterFieldParams)
}

// genericFragment binds value and renders the comparison against a named
// placeholder. LIKE is only legal with the constant on the right.
func genericFragment(accessor string, leaf *filterir.Leaf, value filterir.Value, params *filterir.Params) (string, error) {
	if leaf.Op == filterir.Like && leaf.ValueOnLeft {
		return "", &filterir.FilterError{
			Code:    filterir.ErrCodeUnsupportedOperator,
			Message: "value must be on the right side of the LIKE operator",
			Key:     leaf.Key,
		}
	}
	name := params.Bind(value)
	if leaf.Op == filterir.Like {
		return accessor + " " + leaf.Op.SQL() + " :" + name, nil
	}
	if leaf.ValueOnLeft {
		return ":" + name + " " + leaf.Op.SQL() + " " + accessor, nil
	}
	return accessor + " " + leaf.Op.SQL() + " :" + name, nil
}

// valueAccessor builds the SQL expression extracting this key's value out
// of the encoded partition name: everything after the escaped "key="
// marker, up to the next "/" or the end of the name for the last key. The
// marker is safe to inline - escaping removes quotes from key names.
//
// instr finds the first occurrence of "key=", so no key name may be a
// suffix of an earlier key's name ("subkey=1/key=2" would locate key= at
// the wrong offset).
func valueAccessor(keyName string, keyPos, keyCount int) string {
	keyEqual := catalog.EscapePathName(keyName) + "="
	n := len(keyEqual)
	inner := fmt.Sprintf("substr(%s, instr(%s, '%s') + %d)", PartNameColumn, PartNameColumn, keyEqual, n)
	if keyPos == keyCount-1 {
		return inner
	}
	return fmt.Sprintf("substr(%s, 1, instr(substr(%s || '/', instr(%s, '%s') + %d), '/') - 1)",
		inner, PartNameColumn, PartNameColumn, keyEqual, n)
}
