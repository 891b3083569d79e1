package catalog

// Declared type names for partition keys, as the schema layer spells them.
const (
	TypeString   = "string"
	TypeTinyint  = "tinyint"
	TypeSmallint = "smallint"
	TypeInt      = "int"
	TypeBigint   = "bigint"
)

// IsIntegralType reports whether typeName is one of the integral declared
// types. Integral keys accept int64 filter constants, but only for
// equality operators - ordered comparisons on the encoded name would
// compare digit strings, not numbers.
func IsIntegralType(typeName string) bool {
	switch typeName {
	case TypeTinyint, TypeSmallint, TypeInt, TypeBigint:
		return true
	}
	return false
}
