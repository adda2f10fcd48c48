// Command ramify compiles a ramify source file to a native executable
// (spec §4.7), following the same flag shape as the Rust prototype's
// clap_app! (FILE positional, -d/--debug) with two additions the
// expanded spec calls for: --emit-only to inspect the generated Go
// without invoking the host compiler, and --out to name the binary.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ramify/internal/driver"
)

var (
	debug    bool
	emitOnly bool
	outPath  string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ramify FILE",
		Short:         "Compiles the ramify programming language",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "print the compiled combinator term")
	cmd.Flags().BoolVar(&emitOnly, "emit-only", false, "write the generated Go source and skip the host build")
	cmd.Flags().StringVarP(&outPath, "out", "o", "main", "path of the compiled executable")
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	inputFile := args[0]
	src, err := os.ReadFile(inputFile)
	if err != nil {
		return fmt.Errorf("input file %q doesn't exist", inputFile)
	}

	result, compileErr := driver.Compile(src)
	if compileErr != nil {
		return compileErr
	}

	if debug {
		fmt.Fprintln(cmd.ErrOrStderr(), "compiled combinator:", color.GreenString(result.Combinator.String()))
	}
	for _, w := range result.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("warning:"), w.Message)
	}

	if emitOnly {
		outFile := outPath + ".go"
		if err := os.WriteFile(outFile, []byte(result.Source), 0o644); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", outFile)
		return nil
	}

	if err := driver.Build(result, outPath); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("compilation successful"))
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a pipeline error to a process exit status: 65
// (EX_DATAERR) for anything diagnosable in the source itself, 70
// (EX_SOFTWARE) when the host Go compiler is the one that failed
// (DESIGN.md, deviation 4: distinguishing the two rather than the Rust
// prototype's uniform failure).
func exitCode(err error) int {
	var de *driver.Error
	if errors.As(err, &de) && de.Stage == driver.StageBuild {
		return 70
	}
	return 65
}
