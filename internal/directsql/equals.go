package directsql

import (
	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
)

// equalsFilter renders the four partition-name equality cases in SQL.
// Same case analysis as the JDOQL backend: sole key compares the whole
// name, last key is a suffix test, first key a prefix test, interior key a
// containment test. Named placeholders let the suffix test reference its
// parameter twice without binding it twice.
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
		name := params.Bind(filterir.StringValue(fragment))
		if isEq {
			return PartNameColumn + " = :" + name, nil
		}
		return PartNameColumn + " <> :" + name, nil

	case keyPos == keyCount-1:
		name := params.Bind(filterir.StringValue("/" + fragment))
		op := "="
		if !isEq {
			op = "<>"
		}
		return "substr(" + PartNameColumn + ", -length(:" + name + ")) " + op + " :" + name, nil

	case keyPos == 0:
		name := params.Bind(filterir.StringValue(fragment + "/"))
		op := "="
		if !isEq {
			op = "<>"
		}
		return "instr(" + PartNameColumn + ", :" + name + ") " + op + " 1", nil

	default:
		name := params.Bind(filterir.StringValue("/" + fragment + "/"))
		if isEq {
			return "instr(" + PartNameColumn + ", :" + name + ") > 0", nil
		}
		return "instr(" + PartNameColumn + ", :" + name + ") = 0", nil
	}
}
