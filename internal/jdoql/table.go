package jdoql

import (
	"fmt"
	"strings"

	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
)

// tableLeaf compiles a comparison against table-level attributes. The leaf
// key is rewritten to a canonical object accessor; the leaf itself is left
// untouched so a tree can be compiled more than once.
func (g *Generator) tableLeaf(leaf *filterir.Leaf, params *filterir.Params) (string, error) {
	accessor, value, err := tableAccessor(leaf)
	if err != nil {
		return "", err
	}
	return genericFragment(accessor, leaf, value, params)
}

// tableAccessor maps a well-known filter field name to its accessor
// expression and returns the (possibly coerced) constant to bind.
func tableAccessor(leaf *filterir.Leaf) (string, filterir.Value, error) {
	switch {
	case leaf.Key == catalog.FilterFieldOwner:
		return "this.owner", leaf.Value, nil

	case leaf.Key == catalog.FilterFieldLastAccess:
		// lastAccessTime is numeric; pattern matching is undefined for it.
		if leaf.Op == filterir.Like {
			return "", nil, &filterir.FilterError{
				Code:    filterir.ErrCodeUnsupportedOperator,
				Message: "LIKE is not supported for " + catalog.FilterFieldLastAccess,
				Key:     leaf.Key,
			}
		}
		return "this.lastAccessTime", leaf.Value, nil

	case strings.HasPrefix(leaf.Key, catalog.FilterFieldParams):
		// The persistence engine mishandles ordered comparisons on values
		// fetched through a dynamic map lookup, so properties only accept
		// equality.
		if !leaf.Op.IsEquality() {
			return "", nil, &filterir.FilterError{
				Code:    filterir.ErrCodeUnsupportedOperator,
				Message: fmt.Sprintf("only = and != are supported for %s filters", catalog.FilterFieldParams),
				Key:     leaf.Key,
			}
		}
		property := strings.TrimPrefix(leaf.Key, catalog.FilterFieldParams)
		accessor := `this.parameters.get("` + property + `")`
		// Properties are persisted as strings; coerce an integer constant
		// to its string form so the comparison is well-typed.
		return accessor, filterir.StringValue(leaf.Value.EncodedString()), nil

	default:
		return "", nil, &filterir.FilterError{
			Code:    filterir.ErrCodeUnsupportedKey,
			Message: "invalid key name in filter; use the filter field constants from internal/catalog",
			Key:     leaf.Key,
		}
	}
}
