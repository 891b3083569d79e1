package cli

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/roach88/partql/internal/directsql"
	"github.com/roach88/partql/internal/filterir"
	"github.com/roach88/partql/internal/jdoql"
)

// Dialect names for the --dialect flag.
const (
	DialectJDOQL = "jdoql"
	DialectSQL   = "sql"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Dialect string
}

// BoundParam is one generated parameter and its bound value.
type BoundParam struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
}

// CompileResult is the compile command's success payload.
type CompileResult struct {
	Target   string       `json:"target"`
	Dialect  string       `json:"dialect"`
	Fragment string       `json:"fragment"`
	Params   []BoundParam `json:"params"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <filter-document>",
		Short: "Compile a filter document to a query fragment",
		Long: `Compile a filter document (YAML or CUE) to a parameterized query fragment.

The document declares the target (table or partition), the partition key
schema, and the predicate as a postfix event list. The output is the
fragment plus the generated parameter bindings.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", DialectJDOQL, "target dialect (jdoql|sql)")

	return cmd
}

func runCompile(opts *CompileOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	result, err := compileDocument(path, opts.Dialect, formatter)
	if err != nil {
		return outputFilterError(formatter, err)
	}
	return outputCompileSuccess(formatter, result)
}

// compileDocument loads, builds, and compiles a filter document in the
// given dialect. Shared by the compile and prune commands.
func compileDocument(path, dialect string, formatter *OutputFormatter) (*CompileResult, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "loading filter document", err)
	}
	formatter.VerboseLog("Loaded %s: target=%s, %d predicate event(s)", path, doc.Target, len(doc.Predicate))

	root, err := doc.BuildTree()
	if err != nil {
		return nil, WrapExitError(ExitFailure, "building predicate tree", err)
	}

	gen, err := newGenerator(doc, dialect)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "selecting dialect", err)
	}

	fragment, params, err := gen.Generate(root)
	if err != nil {
		return nil, err
	}
	return &CompileResult{
		Target:   doc.Target,
		Dialect:  dialect,
		Fragment: fragment,
		Params:   boundParams(params),
	}, nil
}

// fragmentGenerator is the shared dialect backend surface.
type fragmentGenerator interface {
	Generate(filterir.Node) (string, *filterir.Params, error)
}

func newGenerator(doc *Document, dialect string) (fragmentGenerator, error) {
	switch dialect {
	case DialectJDOQL:
		if doc.Target == TargetTable {
			return jdoql.NewTableGenerator(), nil
		}
		return jdoql.NewPartitionGenerator(doc.PartitionKeys()), nil
	case DialectSQL:
		if doc.Target == TargetTable {
			return nil, fmt.Errorf("the sql dialect supports partition targets only")
		}
		return directsql.NewGenerator(doc.PartitionKeys()), nil
	default:
		return nil, fmt.Errorf("invalid dialect %q: must be %q or %q", dialect, DialectJDOQL, DialectSQL)
	}
}

func boundParams(params *filterir.Params) []BoundParam {
	out := make([]BoundParam, 0, params.Len())
	for _, name := range params.Names() {
		v, _ := params.Value(name)
		out = append(out, BoundParam{Name: name, Value: paramValue(v)})
	}
	return out
}

// paramValue maps a filter constant to its native Go form for JSON output
// and driver binding.
func paramValue(v filterir.Value) interface{} {
	switch val := v.(type) {
	case filterir.StringValue:
		return string(val)
	case filterir.IntValue:
		return int64(val)
	default:
		return v.EncodedString()
	}
}

func outputCompileSuccess(formatter *OutputFormatter, result *CompileResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %s filter (%s)\n\n", result.Target, result.Dialect)
	if result.Fragment == "" {
		fmt.Fprintln(formatter.Writer, "Fragment: (empty - always true)")
		return nil
	}
	fmt.Fprintf(formatter.Writer, "Fragment: %s\n", result.Fragment)

	if len(result.Params) > 0 {
		fmt.Fprintln(formatter.Writer)
		table := tablewriter.NewWriter(formatter.Writer)
		table.SetHeader([]string{"Parameter", "Value"})
		for _, p := range result.Params {
			table.Append([]string{p.Name, fmt.Sprintf("%v", p.Value)})
		}
		table.Render()
	}
	return nil
}

// outputFilterError renders a compilation failure and maps it to the right
// exit code. Predicate validation failures exit 1; command errors exit 2.
func outputFilterError(formatter *OutputFormatter, err error) error {
	if exitErr, ok := err.(*ExitError); ok {
		_ = formatter.Error(fmt.Sprintf("E%d", exitErr.Code), exitErr.Error(), nil)
		return exitErr
	}
	if code := filterir.CodeOf(err); code != "" {
		_ = formatter.Error(string(code), err.Error(), nil)
		return WrapExitError(ExitFailure, string(code), err)
	}
	_ = formatter.Error("ERROR", err.Error(), nil)
	return WrapExitError(ExitFailure, "compilation failed", err)
}
