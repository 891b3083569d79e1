package jdoql

import (
	"fmt"

	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
)

// Generator compiles a filter tree to a JDOQL fragment plus its parameter
// map. A Generator is stateless across calls; each Generate call produces
// a fresh Params owned by the caller.
type Generator struct {
	// keys is the table's ordered partition key list for partition-target
	// generation, nil for table-target generation.
	keys []catalog.PartitionKey
}

// NewTableGenerator returns a generator for filters over table attributes.
func NewTableGenerator() *Generator {
	return &Generator{}
}

// NewPartitionGenerator returns a generator for filters over the given
// ordered partition key list. The list must be non-empty for any leaf to
// resolve.
func NewPartitionGenerator(keys []catalog.PartitionKey) *Generator {
	return &Generator{keys: keys}
}

// Generate compiles root and returns the fragment with its parameter map.
// A nil root is the always-true filter: empty fragment, empty params. On
// error no fragment or params are returned at all - the caller never sees
// a partial compilation.
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
		return "(" + left + " " + node.Op.JDO() + " " + right + ")", nil
	case *filterir.Leaf:
		if g.keys != nil {
			return g.partitionLeaf(node, params)
		}
		return g.tableLeaf(node, params)
	default:
		return "", fmt.Errorf("jdoql: unsupported node type %T", n)
	}
}

// genericFragment binds value under a fresh parameter name and renders the
// comparison between accessor and that name, honoring the operand order of
// the source text. LIKE renders as a matches() call on the accessor and is
// only legal with the constant on the right.
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
		return accessor + "." + leaf.Op.JDO() + "(" + name + ")", nil
	}
	if leaf.ValueOnLeft {
		return name + " " + leaf.Op.JDO() + " " + accessor, nil
	}
	return accessor + " " + leaf.Op.JDO() + " " + name, nil
}
