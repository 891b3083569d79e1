package directsql

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/partql/internal/catalog"
	"github.com/roach88/partql/internal/filterir"
)

func stringKeys(names ...string) []catalog.PartitionKey {
	keys := make([]catalog.PartitionKey, len(names))
	for i, n := range names {
		keys[i] = catalog.PartitionKey{Name: n, Type: catalog.TypeString}
	}
	return keys
}

func eqLeaf(key, value string) *filterir.Leaf {
	return &filterir.Leaf{Key: key, Op: filterir.Equals, Value: filterir.StringValue(value)}
}

func TestGenerate_SoleKey(t *testing.T) {
	gen := NewGenerator(stringKeys("ds"))

	frag, params, err := gen.Generate(eqLeaf("ds", "2020-01-01"))
	require.NoError(t, err)
	assert.Equal(t, `"PARTITIONS"."PART_NAME" = :filter_param_0`, frag)

	v, _ := params.Value("filter_param_0")
	assert.Equal(t, filterir.StringValue("ds=2020-01-01"), v)
}

func TestGenerate_FirstKeyIsPrefixTest(t *testing.T) {
	gen := NewGenerator(stringKeys("ds", "region"))

	frag, params, err := gen.Generate(eqLeaf("ds", "2020-01-01"))
	require.NoError(t, err)
	assert.Equal(t, `instr("PARTITIONS"."PART_NAME", :filter_param_0) = 1`, frag)

	v, _ := params.Value("filter_param_0")
	assert.Equal(t, filterir.StringValue("ds=2020-01-01/"), v)
}

func TestGenerate_LastKeyIsSuffixTest(t *testing.T) {
	gen := NewGenerator(stringKeys("ds", "region"))

	frag, params, err := gen.Generate(eqLeaf("region", "us"))
	require.NoError(t, err)
	assert.Equal(t,
		`substr("PARTITIONS"."PART_NAME", -length(:filter_param_0)) = :filter_param_0`,
		frag)

	// Referenced twice, bound once.
	require.Equal(t, 1, params.Len())
	v, _ := params.Value("filter_param_0")
	assert.Equal(t, filterir.StringValue("/region=us"), v)
}

func TestGenerate_InteriorKeyIsContainmentTest(t *testing.T) {
	gen := NewGenerator(stringKeys("a", "b", "c"))

	frag, params, err := gen.Generate(eqLeaf("b", "y"))
	require.NoError(t, err)
	assert.Equal(t, `instr("PARTITIONS"."PART_NAME", :filter_param_0) > 0`, frag)

	v, _ := params.Value("filter_param_0")
	assert.Equal(t, filterir.StringValue("/b=y/"), v)
}

func TestGenerate_NotEquals(t *testing.T) {
	testCases := []struct {
		name     string
		keys     []catalog.PartitionKey
		key      string
		wantFrag string
	}{
		{"sole key", stringKeys("ds"), "ds",
			`"PARTITIONS"."PART_NAME" <> :filter_param_0`},
		{"first key", stringKeys("ds", "b"), "ds",
			`instr("PARTITIONS"."PART_NAME", :filter_param_0) <> 1`},
		{"last key", stringKeys("a", "ds"), "ds",
			`substr("PARTITIONS"."PART_NAME", -length(:filter_param_0)) <> :filter_param_0`},
		{"interior key", stringKeys("a", "ds", "c"), "ds",
			`instr("PARTITIONS"."PART_NAME", :filter_param_0) = 0`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			leaf := &filterir.Leaf{Key: tc.key, Op: filterir.NotEquals, Value: filterir.StringValue("v")}
			frag, _, err := NewGenerator(tc.keys).Generate(leaf)
			require.NoError(t, err)
			assert.Equal(t, tc.wantFrag, frag)
		})
	}
}

func TestGenerate_FallbackAccessors(t *testing.T) {
	gen := NewGenerator(stringKeys("ds", "region"))

	t.Run("last key runs to end of name", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "region", Op: filterir.GreaterThan, Value: filterir.StringValue("m")}
		frag, _, err := gen.Generate(leaf)
		require.NoError(t, err)
		assert.Equal(t,
			`substr("PARTITIONS"."PART_NAME", instr("PARTITIONS"."PART_NAME", 'region=') + 7) > :filter_param_0`,
			frag)
	})

	t.Run("non-last key cut at separator", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "ds", Op: filterir.LessOrEqual, Value: filterir.StringValue("2020-06-01")}
		frag, _, err := gen.Generate(leaf)
		require.NoError(t, err)
		assert.Equal(t,
			`substr(substr("PARTITIONS"."PART_NAME", instr("PARTITIONS"."PART_NAME", 'ds=') + 3), 1, `+
				`instr(substr("PARTITIONS"."PART_NAME" || '/', instr("PARTITIONS"."PART_NAME", 'ds=') + 3), '/') - 1)`+
				` <= :filter_param_0`,
			frag)
	})

	t.Run("value on left", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "region", Op: filterir.LessThan, Value: filterir.StringValue("m"), ValueOnLeft: true}
		frag, _, err := gen.Generate(leaf)
		require.NoError(t, err)
		assert.Equal(t,
			`:filter_param_0 < substr("PARTITIONS"."PART_NAME", instr("PARTITIONS"."PART_NAME", 'region=') + 7)`,
			frag)
	})
}

func TestGenerate_Like(t *testing.T) {
	gen := NewGenerator(stringKeys("ds", "region"))

	leaf := &filterir.Leaf{Key: "region", Op: filterir.Like, Value: filterir.StringValue("u%")}
	frag, _, err := gen.Generate(leaf)
	require.NoError(t, err)
	assert.Equal(t,
		`substr("PARTITIONS"."PART_NAME", instr("PARTITIONS"."PART_NAME", 'region=') + 7) like :filter_param_0`,
		frag)

	leaf.ValueOnLeft = true
	_, _, err = gen.Generate(leaf)
	require.Error(t, err)
	assert.True(t, filterir.HasCode(err, filterir.ErrCodeUnsupportedOperator))
}

func TestGenerate_RejectsTableFilterFields(t *testing.T) {
	gen := NewGenerator(stringKeys("ds"))

	for _, key := range []string{
		catalog.FilterFieldOwner,
		catalog.FilterFieldLastAccess,
		catalog.FilterFieldParams + "retention",
	} {
		_, _, err := gen.Generate(eqLeaf(key, "x"))
		require.Error(t, err, key)
		assert.True(t, filterir.HasCode(err, filterir.ErrCodeUnsupportedKey), key)
	}
}

func TestGenerate_UnresolvableKey(t *testing.T) {
	gen := NewGenerator(stringKeys("ds"))

	_, _, err := gen.Generate(eqLeaf("hour", "12"))
	require.Error(t, err)
	assert.True(t, filterir.HasCode(err, filterir.ErrCodeUnresolvableKey))
}

func TestGenerate_IntegerValues(t *testing.T) {
	keys := []catalog.PartitionKey{
		{Name: "ds", Type: catalog.TypeString},
		{Name: "bucket", Type: catalog.TypeBigint},
	}
	gen := NewGenerator(keys)

	t.Run("integer equals on integral key", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "bucket", Op: filterir.Equals, Value: filterir.IntValue(7)}
		frag, params, err := gen.Generate(leaf)
		require.NoError(t, err)
		assert.Equal(t,
			`substr("PARTITIONS"."PART_NAME", -length(:filter_param_0)) = :filter_param_0`,
			frag)
		v, _ := params.Value("filter_param_0")
		assert.Equal(t, filterir.StringValue("/bucket=7"), v)
	})

	t.Run("integer against string key fails", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "ds", Op: filterir.Equals, Value: filterir.IntValue(7)}
		_, _, err := gen.Generate(leaf)
		require.Error(t, err)
		assert.True(t, filterir.HasCode(err, filterir.ErrCodeUnsupportedValue))
	})

	t.Run("ordered comparison on integral key fails", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "bucket", Op: filterir.LessThan, Value: filterir.IntValue(7)}
		_, _, err := gen.Generate(leaf)
		require.Error(t, err)
		assert.True(t, filterir.HasCode(err, filterir.ErrCodeUnsupportedValue))
	})
}

func TestGenerate_EmptyTree(t *testing.T) {
	frag, params, err := NewGenerator(stringKeys("ds")).Generate(nil)
	require.NoError(t, err)
	assert.Equal(t, "", frag)
	assert.Equal(t, 0, params.Len())
}

// seedPartitions loads encoded names into an in-memory store shaped like
// the metadata backend and returns it.
func seedPartitions(t *testing.T, names ...string) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE "PARTITIONS" ("PART_NAME" TEXT NOT NULL)`)
	require.NoError(t, err)
	for _, name := range names {
		_, err = db.Exec(`INSERT INTO "PARTITIONS" ("PART_NAME") VALUES (?)`, name)
		require.NoError(t, err)
	}
	return db
}

func selectMatching(t *testing.T, db *sql.DB, frag string, params *filterir.Params) []string {
	t.Helper()
	args := make([]interface{}, 0, params.Len())
	for _, name := range params.Names() {
		v, _ := params.Value(name)
		args = append(args, sql.Named(name, v.EncodedString()))
	}

	query := `SELECT "PART_NAME" FROM "PARTITIONS"`
	if frag != "" {
		query += " WHERE " + frag
	}
	query += " ORDER BY rowid"

	rows, err := db.Query(query, args...)
	require.NoError(t, err)
	defer rows.Close()

	var matched []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		matched = append(matched, name)
	}
	require.NoError(t, rows.Err())
	return matched
}

func TestGenerate_ExecutesAgainstStoredNames(t *testing.T) {
	db := seedPartitions(t,
		"ds=2020-01-01/region=us",
		"ds=2020-01-01/region=eu",
		"ds=2020-01-02/region=us",
		"ds=2020-01-011/region=us",
	)
	gen := NewGenerator(stringKeys("ds", "region"))

	t.Run("conjunction of both keys", func(t *testing.T) {
		var b filterir.Builder
		b.PushLeaf(eqLeaf("ds", "2020-01-01"))
		b.PushLeaf(eqLeaf("region", "us"))
		b.PushConnective(filterir.And)

		frag, params, err := gen.Generate(b.Root())
		require.NoError(t, err)

		// ds=2020-01-011 shares a prefix with ds=2020-01-01 but the "/"
		// delimiter in the bound fragment keeps it out.
		assert.Equal(t,
			[]string{"ds=2020-01-01/region=us"},
			selectMatching(t, db, frag, params))
	})

	t.Run("suffix match", func(t *testing.T) {
		frag, params, err := gen.Generate(eqLeaf("region", "us"))
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"ds=2020-01-01/region=us", "ds=2020-01-02/region=us", "ds=2020-01-011/region=us"},
			selectMatching(t, db, frag, params))
	})

	t.Run("not equals", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "region", Op: filterir.NotEquals, Value: filterir.StringValue("us")}
		frag, params, err := gen.Generate(leaf)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"ds=2020-01-01/region=eu"},
			selectMatching(t, db, frag, params))
	})

	t.Run("ordered comparison on extracted value", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "ds", Op: filterir.GreaterThan, Value: filterir.StringValue("2020-01-01")}
		frag, params, err := gen.Generate(leaf)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"ds=2020-01-02/region=us", "ds=2020-01-011/region=us"},
			selectMatching(t, db, frag, params))
	})

	t.Run("like on extracted value", func(t *testing.T) {
		leaf := &filterir.Leaf{Key: "region", Op: filterir.Like, Value: filterir.StringValue("u%")}
		frag, params, err := gen.Generate(leaf)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"ds=2020-01-01/region=us", "ds=2020-01-02/region=us", "ds=2020-01-011/region=us"},
			selectMatching(t, db, frag, params))
	})

	t.Run("empty filter keeps everything", func(t *testing.T) {
		frag, params, err := gen.Generate(nil)
		require.NoError(t, err)
		assert.Len(t, selectMatching(t, db, frag, params), 4)
	})
}

func TestGenerate_ExecutesSoleKey(t *testing.T) {
	db := seedPartitions(t, "ds=2020-01-01", "ds=2020-01-02", "ds=2020-01-011")
	gen := NewGenerator(stringKeys("ds"))

	frag, params, err := gen.Generate(eqLeaf("ds", "2020-01-01"))
	require.NoError(t, err)
	assert.Equal(t, []string{"ds=2020-01-01"}, selectMatching(t, db, frag, params))
}
