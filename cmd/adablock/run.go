package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonwraymond/adablock/block"
	"github.com/jonwraymond/adablock/params"
)

// runOptions are the header arguments given as flags.
type runOptions struct {
	unit       string
	adaVersion int
	assertions bool
	prove      bool
	mode       string
	level      string
	extra      []string
}

func newRunCmd(a *app) *cobra.Command {
	var (
		opts    runOptions
		asTable bool
	)

	cmd := &cobra.Command{
		Use:   "run [file|-]",
		Short: "Compile and run, or prove, one Ada block",
		Long: `Reads an Ada block from a file, or from stdin when the file is "-" or
omitted, and runs it. Header arguments are given as flags or as repeated
--param key=value pairs; only flags that are set are passed on.

Program and toolchain output is printed byte for byte. With --table, output
recognized as a table is printed as tab-separated rows instead.`,
		Example: `  adablock run hello.adb
  adablock run --unit hello --ada-version 2012 --assertions hello.adb
  adablock run --prove --level silver inc.adb
  echo 'procedure Hello is begin null; end Hello;' | adablock run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := readSource(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			p, err := opts.params(cmd.Flags().Changed)
			if err != nil {
				return err
			}
			exec, err := a.executor()
			if err != nil {
				return err
			}

			res, err := exec.Execute(cmd.Context(), block.Request{Source: source, Params: p})
			if err != nil {
				return err
			}
			if err := printResult(cmd.OutOrStdout(), res, asTable); err != nil {
				return err
			}
			if !res.OK() {
				return errBlockFailed
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.unit, params.KeyUnit, "", "Name artifacts after this unit instead of a counter")
	f.IntVar(&opts.adaVersion, params.KeyAdaVersion, 0, "Ada language version, e.g. 95, 2005, 2012, 2022")
	f.BoolVar(&opts.assertions, params.KeyAssertions, false, "Enable assertions")
	f.BoolVar(&opts.prove, params.KeyProve, false, "Prove with gnatprove instead of compiling and running")
	f.StringVar(&opts.mode, params.KeyMode, "", "gnatprove --mode")
	f.StringVar(&opts.level, params.KeyLevel, "", "gnatprove --level")
	f.StringArrayVarP(&opts.extra, "param", "p", nil, "Header argument as key=value (repeatable)")
	f.BoolVar(&asTable, "table", false, "Print tabular output as tab-separated rows")
	return cmd
}

// params builds the raw header arguments from the flags that were set.
// --param pairs are applied last.
func (o runOptions) params(changed func(string) bool) (map[string]any, error) {
	p := make(map[string]any)
	if changed(params.KeyUnit) {
		p[params.KeyUnit] = o.unit
	}
	if changed(params.KeyAdaVersion) {
		p[params.KeyAdaVersion] = o.adaVersion
	}
	if changed(params.KeyAssertions) {
		p[params.KeyAssertions] = o.assertions
	}
	if changed(params.KeyProve) {
		p[params.KeyProve] = o.prove
	}
	if changed(params.KeyMode) {
		p[params.KeyMode] = o.mode
	}
	if changed(params.KeyLevel) {
		p[params.KeyLevel] = o.level
	}
	for _, kv := range o.extra {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%w: --param %q is not key=value", params.ErrInvalidParameter, kv)
		}
		p[k] = v
	}
	return p, nil
}

func readSource(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 0 || args[0] == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return "", fmt.Errorf("reading source: %w", err)
	}
	return string(data), nil
}

// printResult writes the captured text verbatim. With asTable, a detected
// table is written tab-separated instead.
func printResult(w io.Writer, res block.Result, asTable bool) error {
	if !asTable || !res.Value.IsTable() {
		_, err := io.WriteString(w, res.Value.Text)
		return err
	}
	for _, row := range res.Value.Table {
		if _, err := fmt.Fprintln(w, strings.Join(row, "\t")); err != nil {
			return err
		}
	}
	return nil
}
