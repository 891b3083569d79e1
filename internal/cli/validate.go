package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// ValidateResult is the validate command's success payload.
type ValidateResult struct {
	Target   string   `json:"target"`
	Events   int      `json:"events"`
	Dialects []string `json:"dialects"` // dialects the document compiles under
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <filter-document>",
		Short: "Validate a filter document without emitting a fragment",
		Long: `Load a filter document, build the predicate tree, and compile it under
every dialect that applies to its target. Reports the first failure, or
the set of dialects the document is valid for.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	doc, err := LoadDocument(path)
	if err != nil {
		return outputFilterError(formatter, WrapExitError(ExitCommandError, "loading filter document", err))
	}

	root, err := doc.BuildTree()
	if err != nil {
		return outputFilterError(formatter, WrapExitError(ExitFailure, "building predicate tree", err))
	}

	dialects := []string{DialectJDOQL}
	if doc.Target == TargetPartition {
		dialects = append(dialects, DialectSQL)
	}
	for _, dialect := range dialects {
		gen, err := newGenerator(doc, dialect)
		if err != nil {
			return outputFilterError(formatter, WrapExitError(ExitCommandError, "selecting dialect", err))
		}
		if _, _, err := gen.Generate(root); err != nil {
			formatter.VerboseLog("%s compilation failed: %v", dialect, err)
			return outputFilterError(formatter, err)
		}
	}

	result := &ValidateResult{Target: doc.Target, Events: len(doc.Predicate), Dialects: dialects}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "✓ Valid %s filter: %d event(s), dialects %v\n",
		result.Target, result.Events, result.Dialects)
	return nil
}
