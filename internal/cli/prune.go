package cli

import (
	"bufio"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"

	"github.com/roach88/partql/internal/filterir"
)

// PruneResult is the prune command's success payload.
type PruneResult struct {
	Fragment string   `json:"fragment"`
	Total    int      `json:"total"`
	Matched  []string `json:"matched"`
}

// NewPruneCommand creates the prune command.
func NewPruneCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune <filter-document> <partition-names-file>",
		Short: "Apply a partition filter to a list of encoded partition names",
		Long: `Compile a partition filter document to the direct SQL dialect and run it
against the given encoded partition names (one per line), printing the
names that survive. The names are loaded into an in-memory SQLite table
shaped like the catalog's partition store.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(rootOpts, args[0], args[1], cmd)
		},
	}
	return cmd
}

func runPrune(opts *RootOptions, docPath, namesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, err := compileDocument(docPath, DialectSQL, formatter)
	if err != nil {
		return outputFilterError(formatter, err)
	}

	names, err := readPartitionNames(namesPath)
	if err != nil {
		return outputFilterError(formatter, WrapExitError(ExitCommandError, "reading partition names", err))
	}
	formatter.VerboseLog("Loaded %d partition name(s) from %s", len(names), namesPath)

	matched, err := Prune(names, result.Fragment, result.Params)
	if err != nil {
		return outputFilterError(formatter, WrapExitError(ExitCommandError, "executing filter", err))
	}

	out := &PruneResult{Fragment: result.Fragment, Total: len(names), Matched: matched}
	if formatter.Format == "json" {
		return formatter.Success(out)
	}
	fmt.Fprintf(formatter.Writer, "✓ %d of %d partition(s) match\n", len(matched), len(names))
	for _, name := range matched {
		fmt.Fprintln(formatter.Writer, name)
	}
	return nil
}

// Prune loads the encoded names into an in-memory SQLite table and returns
// the ones the compiled fragment selects, in input order. An empty
// fragment is the always-true filter and keeps everything.
func Prune(names []string, fragment string, params []BoundParam) ([]string, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE "PARTITIONS" ("PART_NAME" TEXT NOT NULL)`); err != nil {
		return nil, fmt.Errorf("creating partition table: %w", err)
	}
	insert, err := db.Prepare(`INSERT INTO "PARTITIONS" ("PART_NAME") VALUES (?)`)
	if err != nil {
		return nil, err
	}
	defer insert.Close()
	for _, name := range names {
		if _, err := insert.Exec(name); err != nil {
			return nil, fmt.Errorf("inserting partition name %q: %w", name, err)
		}
	}

	query := `SELECT "PART_NAME" FROM "PARTITIONS"`
	if fragment != "" {
		query += " WHERE " + fragment
	}
	query += " ORDER BY rowid"

	args := make([]interface{}, 0, len(params))
	for _, p := range params {
		args = append(args, sql.Named(p.Name, p.Value))
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("executing filter query: %w", err)
	}
	defer rows.Close()

	var matched []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		matched = append(matched, name)
	}
	return matched, rows.Err()
}

func readPartitionNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}

// ParamArgs converts bound parameters to named driver arguments. Exposed
// for callers embedding the compiled fragment in their own queries.
func ParamArgs(params *filterir.Params) []interface{} {
	args := make([]interface{}, 0, params.Len())
	for _, name := range params.Names() {
		v, _ := params.Value(name)
		args = append(args, sql.Named(name, paramValue(v)))
	}
	return args
}
