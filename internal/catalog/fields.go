package catalog

// Well-known key names for table-level filters. Callers must use these
// constants; any other key name is rejected at compile time.
const (
	// FilterFieldOwner filters on the table owner.
	FilterFieldOwner = "catalog_filter_field_owner__"

	// FilterFieldLastAccess filters on the table's last access time. The
	// field is numeric, so LIKE is rejected for it.
	FilterFieldLastAccess = "catalog_filter_field_last_access__"

	// FilterFieldParams is the prefix for free-form table property
	// filters. The property name is whatever follows the prefix, and the
	// comparison becomes a map lookup keyed by it.
	FilterFieldParams = "catalog_filter_field_params__"
)
