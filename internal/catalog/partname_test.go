package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapePathName(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "2020-01-01", "2020-01-01"},
		{"equals", "a=b", "a%3Db"},
		{"slash", "a/b", "a%2Fb"},
		{"mixed", "k=v/w", "k%3Dv%2Fw"},
		{"percent", "50%", "50%25"},
		{"quote and colon", `t:"x"`, "t%3A%22x%22"},
		{"control char", "a\tb", "a%09b"},
		{"multibyte passthrough", "café", "café"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := EscapePathName(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, UnescapePathName(got))
		})
	}
}

func TestUnescapePathName_Tolerant(t *testing.T) {
	// A '%' that does not start a valid escape passes through verbatim:
	// names written before escaping was introduced may contain one.
	assert.Equal(t, "100%", UnescapePathName("100%"))
	assert.Equal(t, "a%zz", UnescapePathName("a%zz"))
	assert.Equal(t, "a%2", UnescapePathName("a%2"))
}

func TestMakePartName(t *testing.T) {
	name, err := MakePartName([]string{"ds"}, []string{"2020-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "ds=2020-01-01", name)

	name, err = MakePartName([]string{"ds", "region"}, []string{"2020-01-01", "us"})
	require.NoError(t, err)
	assert.Equal(t, "ds=2020-01-01/region=us", name)

	// Reserved characters in values cannot fake a key boundary.
	name, err = MakePartName([]string{"ds"}, []string{"a=b/c"})
	require.NoError(t, err)
	assert.Equal(t, "ds=a%3Db%2Fc", name)
}

func TestMakePartName_SubsetIsSubstring(t *testing.T) {
	// The equality optimization assumes a name made from one key is a
	// substring of the name made from all keys.
	full, err := MakePartName([]string{"a", "b", "c"}, []string{"1", "2", "3"})
	require.NoError(t, err)
	part, err := MakePartName([]string{"b"}, []string{"2"})
	require.NoError(t, err)
	assert.Contains(t, full, "/"+part+"/")
}

func TestMakePartName_Invalid(t *testing.T) {
	_, err := MakePartName(nil, nil)
	assert.Error(t, err)

	_, err = MakePartName([]string{"ds"}, []string{"a", "b"})
	assert.Error(t, err)

	_, err = MakePartName([]string{""}, []string{"v"})
	assert.Error(t, err)

	_, err = MakePartName([]string{"ds"}, []string{""})
	assert.Error(t, err)
}

func TestIsIntegralType(t *testing.T) {
	for _, typ := range []string{TypeTinyint, TypeSmallint, TypeInt, TypeBigint} {
		assert.True(t, IsIntegralType(typ), typ)
	}
	assert.False(t, IsIntegralType(TypeString))
	assert.False(t, IsIntegralType("double"))
	assert.False(t, IsIntegralType(""))
}
