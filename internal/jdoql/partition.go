package jdoql

import (
	"fmt"

	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
)

// partitionLeaf compiles a comparison against a partition key.
//
// Equality operators reduce to a substring test on the stored encoded
// partition name (see equalsFilter). Everything else goes through the
// generic path: an accessor expression extracts the key's value substring
// out of the encoded name and is compared against a bound parameter.
func (g *Generator) partitionLeaf(leaf *filterir.Leaf, params *filterir.Params) (string, error) {
	idx, ok := catalog.KeyIndex(g.keys, leaf.Key)
	if !ok {
		return "", &filterir.FilterError{
			Code:    filterir.ErrCodeUnresolvableKey,
			Message: fmt.Sprintf("specified key %q is not a partitioning key for the table", leaf.Key),
			Key:     leaf.Key,
		}
	}
	key := g.keys[idx]

	value, err := PushdownValue(key, leaf)
	if err != nil {
		return "", err
	}

	if leaf.Op.IsEquality() {
		return equalsFilter(key.Name, value, idx, len(g.keys), leaf.Op == filterir.Equals, params)
	}

	accessor := partitionValueAccessor(key.Name, idx, len(g.keys))
	return genericFragment(accessor, leaf, filterir.StringValue(value), params)
}

// PushdownValue validates the leaf's constant against the key's declared
// type and returns its encoded string form. The direct-SQL backend applies
// the same pushdown rules and shares this helper.
//
// String constants are legal on string-typed keys for every operator.
// Integral keys are only filterable with equality operators, and integer
// constants are only legal on integral keys - against the encoded name an
// integer is just its digit string, which orders incorrectly under any
// other comparison.
func PushdownValue(key catalog.PartitionKey, leaf *filterir.Leaf) (string, error) {
	integralOK := leaf.Op.IsEquality()

	if key.Type != catalog.TypeString && (!integralOK || !catalog.IsIntegralType(key.Type)) {
		return "", unsupportedValueError(leaf.Key, integralOK)
	}

	switch v := leaf.Value.(type) {
	case filterir.StringValue:
		return string(v), nil
	case filterir.IntValue:
		if !integralOK || !catalog.IsIntegralType(key.Type) {
			return "", unsupportedValueError(leaf.Key, integralOK)
		}
		return v.EncodedString(), nil
	default:
		return "", unsupportedValueError(leaf.Key, integralOK)
	}
}

func unsupportedValueError(key string, integralOK bool) error {
	msg := "filtering is supported only on partition keys of type string"
	if integralOK {
		msg += ", or integral types"
	}
	return &filterir.FilterError{
		Code:    filterir.ErrCodeUnsupportedValue,
		Message: msg,
		Key:     key,
	}
}

// partitionValueAccessor builds the JDOQL expression that extracts this
// key's value out of the encoded partition name. The encoded name is
// (key=value/)*(key=value), so the value starts right after the escaped
// "key=" marker and runs to the next "/", or to the end of the name when
// this key is the last one.
//
// The schema's declared key name is used rather than the leaf's spelling,
// since the stored names are encoded with the declared casing.
//
// indexOf finds the first occurrence of "key=", so no key name may be a
// suffix of an earlier key's name ("subkey=1/key=2" would locate key= at
// the wrong offset).
func partitionValueAccessor(keyName string, keyPos, keyCount int) string {
	keyEqual := catalog.EscapePathName(keyName) + "="
	n := len(keyEqual)
	if keyPos == keyCount-1 {
		return fmt.Sprintf("partitionName.substring(partitionName.indexOf(\"%s\")+%d)", keyEqual, n)
	}
	// Appending "/" before searching for the separator makes the
	// end-of-name case fall out of the same expression.
	return fmt.Sprintf(
		"partitionName.substring(partitionName.indexOf(\"%s\")+%d)"+
			".substring(0, partitionName.concat(\"/\").substring(partitionName.indexOf(\"%s\")+%d).indexOf(\"/\"))",
		keyEqual, n, keyEqual, n)
}
