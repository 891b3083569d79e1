package catalog

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// PartitionKey is one partition column: its name and declared type name.
type PartitionKey struct {
	Name string
	Type string
}

// KeyIndex resolves name to its 0-based position in keys. Matching is
// case-insensitive over NFC-normalized names, so a key stored as "Région"
// matches a filter written with a decomposed accent. Returns (-1, false)
// if the name is not a partition key.
func KeyIndex(keys []PartitionKey, name string) (int, bool) {
	want := norm.NFC.String(name)
	for i, k := range keys {
		if strings.EqualFold(norm.NFC.String(k.Name), want) {
			return i, true
		}
	}
	return -1, false
}
