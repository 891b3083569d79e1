package catalog

import (
	"fmt"
	"strings"
)

// Characters that must be percent-escaped inside a partition key or value.
// Control characters and DEL are escaped too; see needsEscaping.
const reservedPathChars = "\"#%'*/:=?\\{[]^"

func needsEscaping(c byte) bool {
	return c < ' ' || c == 0x7F || strings.IndexByte(reservedPathChars, c) >= 0
}

// EscapePathName escapes a single partition key or value for inclusion in
// an encoded partition name. Reserved characters become "%XX" with
// uppercase hex. The escaping is byte-wise, so multi-byte runes pass
// through untouched.
func EscapePathName(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if needsEscaping(c) {
			fmt.Fprintf(&sb, "%%%02X", c)
		} else {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// UnescapePathName is the inverse of EscapePathName. A '%' not followed by
// two hex digits is passed through verbatim rather than rejected, since
// names written before escaping was introduced may contain one.
func UnescapePathName(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, okHi := unhex(s[i+1])
			lo, okLo := unhex(s[i+2])
			if okHi && okLo {
				sb.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	}
	return 0, false
}

// MakePartName builds the canonical encoded name fragment for the given
// key/value pairs: escaped "key=value" segments joined by "/". A name made
// from a subset of a partition's keys is a substring of the name made from
// all of them, which is what the equality optimization relies on.
func MakePartName(keys []string, values []string) (string, error) {
	if len(keys) == 0 || len(keys) != len(values) {
		return "", fmt.Errorf("invalid partition key/value lists: %d key(s), %d value(s)", len(keys), len(values))
	}
	var segs []string
	for i, k := range keys {
		if k == "" {
			return "", fmt.Errorf("partition key name is empty at position %d", i)
		}
		if values[i] == "" {
			return "", fmt.Errorf("partition value for key %q is empty", k)
		}
		segs = append(segs, EscapePathName(k)+"="+EscapePathName(values[i]))
	}
	return strings.Join(segs, "/"), nil
}
