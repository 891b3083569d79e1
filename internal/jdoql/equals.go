package jdoql

import (
	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
)

// equalsFilter compiles an equality or inequality on one partition key as
// a substring test on the stored encoded partition name, instead of
// extracting and comparing the decoded value.
//
// For a condition like ds="2020-01-01" it is enough to check whether the
// name contains "ds=2020-01-01" with the right delimiters. False matches
// are not possible: "=" is escaped inside keys and values, and the added
// "/" delimiters keep ds=2020-01-01 from matching a stored ds=2020-01-011.
// Integral equality works the same way, compared as part of the ds=1234
// digit string.
//
// The four cases over (position, count) are disjoint and exhaustive:
// a sole key compares the whole name, the last key is a suffix test, the
// first key a prefix test, and an interior key a containment test.
func equalsFilter(keyName, value string, keyPos, keyCount int, isEq bool, params *filterir.Params) (string, error) {
	fragment, err := catalog.MakePartName([]string{keyName}, []string{value})
	if err != nil {
		return "", &filterir.FilterError{
			Code:    filterir.ErrCodeUnsupportedValue,
			Message: err.Error(),
			Key:     keyName,
		}
	}

	switch {
	case keyCount == 1:
		// No other partition columns: the name is exactly the fragment.
		name := params.Bind(filterir.StringValue(fragment))
		if isEq {
			return "partitionName == " + name, nil
		}
		return "partitionName != " + name, nil

	case keyPos == keyCount-1:
		// Key at the end of the name: leading "/", no trailing "/".
		name := params.Bind(filterir.StringValue("/" + fragment))
		expr := "partitionName.endsWith(" + name + ")"
		if !isEq {
			expr = "!" + expr
		}
		return expr, nil

	case keyPos == 0:
		// Key at the beginning of the name: trailing "/", no leading "/".
		name := params.Bind(filterir.StringValue(fragment + "/"))
		expr := "partitionName.startsWith(" + name + ")"
		if !isEq {
			expr = "!" + expr
		}
		return expr, nil

	default:
		// Key in the middle of the name: delimited on both sides.
		name := params.Bind(filterir.StringValue("/" + fragment + "/"))
		if isEq {
			return "partitionName.indexOf(" + name + ") >= 0", nil
		}
		return "partitionName.indexOf(" + name + ") < 0", nil
	}
}
